package api

import (
	"net/http"
	"testing"
)

func TestEntryLifecycle(t *testing.T) {
	t.Parallel()

	app, cookie := newSignedInApp(t)

	response := doJSONRequest(t, app, http.MethodPost, "/api/entries/2025-01-15?source=Import", cookie, map[string]any{
		"opk":   "solid",
		"notes": "afternoon test",
	})
	var saved entryResponse
	decodeJSONResponse(t, response, &saved)
	if response.StatusCode != http.StatusOK {
		t.Fatalf("expected save status 200, got %d", response.StatusCode)
	}
	if saved.Date != "2025-01-15" || saved.Source != "import" || saved.Document["opk"] != "solid" {
		t.Fatalf("unexpected saved entry %+v", saved)
	}

	saveTestEntry(t, app, cookie, "2025-01-15", map[string]any{"opk": "flashing"})
	saveTestEntry(t, app, cookie, "2025-01-01", map[string]any{"phase": "day1-period"})

	var listed []entryResponse
	decodeJSONResponse(t, doJSONRequest(t, app, http.MethodGet, "/api/entries", cookie, nil), &listed)
	if len(listed) != 2 {
		t.Fatalf("expected 2 entries after upsert, got %d", len(listed))
	}
	if listed[0].Date != "2025-01-01" || listed[1].Date != "2025-01-15" {
		t.Fatalf("expected entries ordered by date, got %s and %s", listed[0].Date, listed[1].Date)
	}
	if listed[1].Document["opk"] != "flashing" || listed[1].Source != "manual" {
		t.Fatalf("expected replaced document for 2025-01-15, got %+v", listed[1])
	}

	var fetched entryResponse
	getResponse := doJSONRequest(t, app, http.MethodGet, "/api/entries/2025-01-01", cookie, nil)
	decodeJSONResponse(t, getResponse, &fetched)
	if getResponse.StatusCode != http.StatusOK || fetched.Document["phase"] != "day1-period" {
		t.Fatalf("unexpected fetched entry %d %+v", getResponse.StatusCode, fetched)
	}

	deleteResponse := doJSONRequest(t, app, http.MethodDelete, "/api/entries/2025-01-01", cookie, nil)
	deleteResponse.Body.Close()
	if deleteResponse.StatusCode != http.StatusOK {
		t.Fatalf("expected delete status 200, got %d", deleteResponse.StatusCode)
	}

	missingResponse := doJSONRequest(t, app, http.MethodGet, "/api/entries/2025-01-01", cookie, nil)
	missingResponse.Body.Close()
	if missingResponse.StatusCode != http.StatusNotFound {
		t.Fatalf("expected status 404 after delete, got %d", missingResponse.StatusCode)
	}
}

func TestSaveEntryValidation(t *testing.T) {
	t.Parallel()

	app, cookie := newSignedInApp(t)

	tests := []struct {
		name   string
		target string
		body   any
	}{
		{name: "invalid date", target: "/api/entries/2025-13-01", body: map[string]any{"opk": "solid"}},
		{name: "empty document", target: "/api/entries/2025-01-01", body: map[string]any{}},
		{name: "document date mismatch", target: "/api/entries/2025-01-05", body: map[string]any{"date": "2025-01-01", "opk": "solid"}},
	}

	for _, test := range tests {
		response := doJSONRequest(t, app, http.MethodPost, test.target, cookie, test.body)
		response.Body.Close()
		if response.StatusCode != http.StatusBadRequest {
			t.Fatalf("%s: expected status 400, got %d", test.name, response.StatusCode)
		}
	}

	deleteResponse := doJSONRequest(t, app, http.MethodDelete, "/api/entries/yesterday", cookie, nil)
	deleteResponse.Body.Close()
	if deleteResponse.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected delete with invalid date to return 400, got %d", deleteResponse.StatusCode)
	}
}

func TestEntriesAreScopedToUser(t *testing.T) {
	t.Parallel()

	app, database := newTestApp(t)
	createTestUser(t, database, testEmail)
	createTestUser(t, database, "other@example.com")

	ownerCookie := loginAndExtractAuthCookie(t, app, testEmail, testPassword)
	otherCookie := loginAndExtractAuthCookie(t, app, "other@example.com", testPassword)

	saveTestEntry(t, app, ownerCookie, "2025-01-01", map[string]any{"phase": "day1-period"})

	var listed []entryResponse
	decodeJSONResponse(t, doJSONRequest(t, app, http.MethodGet, "/api/entries", otherCookie, nil), &listed)
	if len(listed) != 0 {
		t.Fatalf("expected other user to see no entries, got %d", len(listed))
	}
}
