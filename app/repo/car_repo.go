package repo

import (
	"errors"

	"carmarket/app/models"

	"gorm.io/gorm"
)

type CarRepository struct{ db *gorm.DB }

func NewCarRepository(db *gorm.DB) *CarRepository { return &CarRepository{db: db} }

func (r *CarRepository) Create(c *models.Car) error { return r.db.Create(c).Error }

func (r *CarRepository) Get(id string) (*models.Car, error) {
	var c models.Car
	err := r.db.Where("id = ?", id).First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CarRepository) Save(c *models.Car) error { return r.db.Save(c).Error }

func (r *CarRepository) Delete(id string) error {
	return r.db.Where("id = ?", id).Delete(&models.Car{}).Error
}

// ListVisible returns visible listings matching the filter, newest first.
func (r *CarRepository) ListVisible(f CarFilter, limit int) ([]models.Car, error) {
	var cars []models.Car
	q := r.db.Model(&models.Car{}).Where("visible = ?", true)
	q = f.Apply(q)
	q = q.Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	err := q.Find(&cars).Error
	return cars, err
}

// ListAll returns every listing including hidden ones, for the admin panel.
func (r *CarRepository) ListAll() ([]models.Car, error) {
	var cars []models.Car
	err := r.db.Order("created_at DESC").Find(&cars).Error
	return cars, err
}

func (r *CarRepository) ListByOwner(userID uint) ([]models.Car, error) {
	var cars []models.Car
	err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&cars).Error
	return cars, err
}

func (r *CarRepository) SetVisibility(id string, visible bool) error {
	return r.db.Model(&models.Car{}).Where("id = ?", id).Update("visible", visible).Error
}
