package models

import "time"

// Favorite marks a (user, car) bookmark. Existence implies "favorited".
type Favorite struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	UserID    uint   `gorm:"uniqueIndex:idx_fav_user_car;not null" json:"user_id"`
	CarID     string `gorm:"uniqueIndex:idx_fav_user_car;size:64;not null" json:"car_id"`
	CreatedAt time.Time `json:"created_at"`
}
