package db

import (
	"time"

	"github.com/terraincognita07/bloomcal/internal/models"
	"gorm.io/gorm"
)

type UserRepository struct {
	database *gorm.DB
}

func NewUserRepository(database *gorm.DB) *UserRepository {
	return &UserRepository{database: database}
}

// withEmail matches rows by normalized email so lookups hit the expression
// index.
func withEmail(email string) func(*gorm.DB) *gorm.DB {
	return func(query *gorm.DB) *gorm.DB {
		return query.Where("lower(trim(email)) = ?", email)
	}
}

func (repo *UserRepository) CountUsers() (int64, error) {
	var total int64
	err := repo.database.Model(&models.User{}).Count(&total).Error
	return total, err
}

func (repo *UserRepository) FindByID(userID uint) (models.User, error) {
	var user models.User
	err := repo.database.Take(&user, userID).Error
	return user, err
}

func (repo *UserRepository) FindByNormalizedEmail(email string) (models.User, error) {
	var user models.User
	err := repo.database.Scopes(withEmail(email)).Take(&user).Error
	return user, err
}

func (repo *UserRepository) ExistsByNormalizedEmail(email string) (bool, error) {
	var total int64
	err := repo.database.Model(&models.User{}).Scopes(withEmail(email)).Count(&total).Error
	return total > 0, err
}

func (repo *UserRepository) Create(user *models.User) error {
	return repo.database.Create(user).Error
}

// UpdatePassword stores a new hash and stamps the change time, which revokes
// sessions issued before it.
func (repo *UserRepository) UpdatePassword(email string, passwordHash string, changedAt time.Time) (bool, error) {
	result := repo.database.Model(&models.User{}).
		Scopes(withEmail(email)).
		Updates(map[string]any{
			"password_hash":       passwordHash,
			"password_changed_at": changedAt.UTC(),
		})
	return result.RowsAffected > 0, result.Error
}

// DeleteAccount removes the user together with every stored entry.
func (repo *UserRepository) DeleteAccount(userID uint) error {
	return repo.database.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&models.Entry{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.User{}, userID).Error
	})
}
