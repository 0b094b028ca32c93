package repo

import (
	"errors"

	"carmarket/app/models"

	"gorm.io/gorm"
)

type FavoriteRepository struct{ db *gorm.DB }

func NewFavoriteRepository(db *gorm.DB) *FavoriteRepository { return &FavoriteRepository{db: db} }

func (r *FavoriteRepository) Exists(userID uint, carID string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Favorite{}).Where("user_id = ? AND car_id = ?", userID, carID).Count(&count).Error
	return count > 0, err
}

func (r *FavoriteRepository) Add(userID uint, carID string) error {
	err := r.db.Create(&models.Favorite{UserID: userID, CarID: carID}).Error
	// A concurrent add may have won the race; the pair is favorited either way.
	if err != nil && errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil
	}
	return err
}

func (r *FavoriteRepository) Remove(userID uint, carID string) error {
	return r.db.Where("user_id = ? AND car_id = ?", userID, carID).Delete(&models.Favorite{}).Error
}

// CarIDs returns the ids of the user's favorited cars, newest bookmark first.
func (r *FavoriteRepository) CarIDs(userID uint) ([]string, error) {
	var ids []string
	err := r.db.Model(&models.Favorite{}).Where("user_id = ?", userID).
		Order("created_at DESC").
		Pluck("car_id", &ids).Error
	return ids, err
}

// RemoveByCar drops every bookmark pointing at a deleted listing.
func (r *FavoriteRepository) RemoveByCar(carID string) error {
	return r.db.Where("car_id = ?", carID).Delete(&models.Favorite{}).Error
}

// RemoveByUser drops every bookmark held by a deleted user.
func (r *FavoriteRepository) RemoveByUser(userID uint) error {
	return r.db.Where("user_id = ?", userID).Delete(&models.Favorite{}).Error
}
