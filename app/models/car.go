package models

import "time"

// Car is a marketplace listing. IDs are opaque uuid strings so documents can
// be referenced from image keys and favorites without a numeric sequence.
type Car struct {
	ID           string    `gorm:"primaryKey;size:64" json:"id"`
	Brand        string    `gorm:"size:64;index" json:"brand"`
	Model        string    `gorm:"size:128;index" json:"model"`
	Year         int       `json:"year"`
	Mileage      int       `json:"mileage"`
	Fuel         string    `gorm:"size:32" json:"fuel"`
	Gearbox      string    `gorm:"size:32" json:"gearbox"`
	Power        int       `json:"power"`
	Price        int       `json:"price"`
	Condition    string    `gorm:"size:32" json:"condition"`
	BodyType     string    `gorm:"size:32" json:"body_type"`
	DriveType    string    `gorm:"size:32" json:"drive_type"`
	Color        string    `gorm:"size:32" json:"color"`
	Doors        int       `json:"doors"`
	Seats        int       `json:"seats"`
	EngineSize   int       `json:"engine_size"`
	VIN          string    `gorm:"size:32" json:"vin,omitempty"`
	LicensePlate string    `gorm:"size:32" json:"license_plate,omitempty"`
	Features     string    `gorm:"type:text" json:"features"`
	Description  string    `gorm:"type:text" json:"description"`
	Images       []string  `gorm:"serializer:json" json:"images"`
	UserID       uint      `gorm:"index;not null" json:"user_id"`
	Visible      bool      `gorm:"not null" json:"visible"`
	CreatedAt    time.Time `gorm:"index" json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
