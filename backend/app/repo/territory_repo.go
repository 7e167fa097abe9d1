package repo

import (
	"territorios/backend/app/models"

	"gorm.io/gorm"
)

type TerritoryRepository struct{ db *gorm.DB }

func NewTerritoryRepository(db *gorm.DB) *TerritoryRepository {
	return &TerritoryRepository{db: db}
}

func (r *TerritoryRepository) Create(t *models.Territory) error { return r.db.Create(t).Error }

func (r *TerritoryRepository) FindByID(id uint) (*models.Territory, error) {
	var t models.Territory
	if err := r.db.First(&t, id).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *TerritoryRepository) Save(t *models.Territory) error { return r.db.Save(t).Error }

func (r *TerritoryRepository) Delete(id uint) (int64, error) {
	res := r.db.Delete(&models.Territory{}, id)
	return res.RowsAffected, res.Error
}

// ListPage returns up to limit rows with id > afterID in ascending id order.
// doneRecently narrows the page when non-nil.
func (r *TerritoryRepository) ListPage(afterID uint, limit int, doneRecently *bool) ([]models.Territory, error) {
	q := r.db.Where("id > ?", afterID).Order("id asc").Limit(limit)
	if doneRecently != nil {
		q = q.Where("done_recently = ?", *doneRecently)
	}
	var ts []models.Territory
	return ts, q.Find(&ts).Error
}

func (r *TerritoryRepository) SearchByName(q string, limit int) ([]models.Territory, error) {
	var ts []models.Territory
	return ts, r.db.Where("name LIKE ?", "%"+q+"%").Order("id asc").Limit(limit).Find(&ts).Error
}

func (r *TerritoryRepository) ListAll() ([]models.Territory, error) {
	var ts []models.Territory
	return ts, r.db.Order("id asc").Find(&ts).Error
}

func (r *TerritoryRepository) ListByRegion(region string) ([]models.Territory, error) {
	var ts []models.Territory
	return ts, r.db.Where("region = ?", region).Order("id asc").Find(&ts).Error
}

func (r *TerritoryRepository) Count() (int64, error) {
	var count int64
	return count, r.db.Model(&models.Territory{}).Count(&count).Error
}
