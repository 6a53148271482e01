package api

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/bloomcal/internal/db"
	"github.com/terraincognita07/bloomcal/internal/services"
	"gorm.io/gorm"
)

const (
	testSecretKey = "test-secret-key-0123456789abcdef"
	testEmail     = "owner@example.com"
	testPassword  = "StrongPass1"
)

var testNow = time.Date(2025, time.February, 10, 9, 30, 0, 0, time.UTC)

func newTestApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	databasePath := filepath.Join(t.TempDir(), "bloomcal-api-test.db")
	database, err := db.OpenSQLite(databasePath)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() {
		_ = db.Close(database)
	})

	handler, err := NewHandler(database, Config{
		SecretKey:       testSecretKey,
		Location:        time.UTC,
		PredictionCount: 1,
		Now:             func() time.Time { return testNow },
	})
	if err != nil {
		t.Fatalf("init handler: %v", err)
	}

	app := fiber.New()
	RegisterRoutes(app, handler)
	return app, database
}

func createTestUser(t *testing.T, database *gorm.DB, email string) {
	t.Helper()

	service := services.NewAuthService(db.NewRepositories(database).Users)
	if _, err := service.RegisterUser(email, testPassword); err != nil {
		t.Fatalf("register user: %v", err)
	}
}

func loginAndExtractAuthCookie(t *testing.T, app *fiber.App, email string, password string) string {
	t.Helper()

	response := doJSONRequest(t, app, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    email,
		"password": password,
	})
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		t.Fatalf("expected login status 200, got %d", response.StatusCode)
	}
	for _, cookie := range response.Cookies() {
		if cookie.Name == authCookieName && cookie.Value != "" {
			return cookie.Name + "=" + cookie.Value
		}
	}

	t.Fatal("auth cookie is missing in login response")
	return ""
}

// newSignedInApp returns an app with one registered user and that user's
// auth cookie.
func newSignedInApp(t *testing.T) (*fiber.App, string) {
	t.Helper()

	app, database := newTestApp(t)
	createTestUser(t, database, testEmail)
	return app, loginAndExtractAuthCookie(t, app, testEmail, testPassword)
}

func doJSONRequest(t *testing.T, app *fiber.App, method string, target string, cookie string, body any) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request body: %v", err)
		}
		reader = strings.NewReader(string(payload))
	}

	request := httptest.NewRequest(method, target, reader)
	if body != nil {
		request.Header.Set("Content-Type", "application/json")
	}
	if cookie != "" {
		request.Header.Set("Cookie", cookie)
	}

	response, err := app.Test(request, -1)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, target, err)
	}
	return response
}

func decodeJSONResponse(t *testing.T, response *http.Response, target any) {
	t.Helper()
	defer response.Body.Close()

	if err := json.NewDecoder(response.Body).Decode(target); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

func saveTestEntry(t *testing.T, app *fiber.App, cookie string, date string, document map[string]any) {
	t.Helper()

	response := doJSONRequest(t, app, http.MethodPost, "/api/entries/"+date, cookie, document)
	defer response.Body.Close()
	if response.StatusCode != http.StatusOK {
		t.Fatalf("expected save status 200 for %s, got %d", date, response.StatusCode)
	}
}

// seedTwoCycles stores two period starts four weeks apart with a positive
// test in between.
func seedTwoCycles(t *testing.T, app *fiber.App, cookie string) {
	t.Helper()

	saveTestEntry(t, app, cookie, "2025-01-01", map[string]any{"phase": "day1-period"})
	saveTestEntry(t, app, cookie, "2025-01-15", map[string]any{"opk": 1.4})
	saveTestEntry(t, app, cookie, "2025-01-29", map[string]any{"phase": "day1-period"})
}

func hasMark(marks []markResponse, date string, category string) bool {
	for _, mark := range marks {
		if mark.Date == date && mark.Category == category {
			return true
		}
	}
	return false
}
