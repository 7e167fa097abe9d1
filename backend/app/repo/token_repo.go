package repo

import (
	"territorios/backend/app/models"

	"gorm.io/gorm"
)

type TokenRepository struct{ db *gorm.DB }

func NewTokenRepository(db *gorm.DB) *TokenRepository { return &TokenRepository{db: db} }

func (r *TokenRepository) Count() (int64, error) {
	var count int64
	return count, r.db.Model(&models.Token{}).Count(&count).Error
}

func (r *TokenRepository) FindByToken(token string) (*models.Token, error) {
	var t models.Token
	if err := r.db.Where("token = ?", token).First(&t).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *TokenRepository) Create(t *models.Token) error { return r.db.Create(t).Error }

func (r *TokenRepository) Save(t *models.Token) error { return r.db.Save(t).Error }

func (r *TokenRepository) ListAll() ([]models.Token, error) {
	var ts []models.Token
	return ts, r.db.Order("id asc").Find(&ts).Error
}

// CreateFirstAdmin inserts the bootstrap admin only while the table is still
// empty. The count check and the insert share one transaction so two racing
// first logins cannot both win.
func (r *TokenRepository) CreateFirstAdmin(t *models.Token) (bool, error) {
	created := false
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Token{}).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return nil
		}
		if err := tx.Create(t).Error; err != nil {
			return err
		}
		created = true
		return nil
	})
	return created, err
}
