package dto

import "carmarket/app/models"

type CarRequest struct {
	Brand        string   `json:"brand"`
	Model        string   `json:"model"`
	Year         int      `json:"year"`
	Mileage      int      `json:"mileage"`
	Fuel         string   `json:"fuel"`
	Gearbox      string   `json:"gearbox"`
	Power        int      `json:"power"`
	Price        int      `json:"price"`
	Condition    string   `json:"condition"`
	BodyType     string   `json:"body_type"`
	DriveType    string   `json:"drive_type"`
	Color        string   `json:"color"`
	Doors        int      `json:"doors"`
	Seats        int      `json:"seats"`
	EngineSize   int      `json:"engine_size"`
	VIN          string   `json:"vin"`
	LicensePlate string   `json:"license_plate"`
	Features     string   `json:"features"`
	Description  string   `json:"description"`
	Images       []string `json:"images"`
}

func (r CarRequest) ToModel() *models.Car {
	return &models.Car{
		Brand:        r.Brand,
		Model:        r.Model,
		Year:         r.Year,
		Mileage:      r.Mileage,
		Fuel:         r.Fuel,
		Gearbox:      r.Gearbox,
		Power:        r.Power,
		Price:        r.Price,
		Condition:    r.Condition,
		BodyType:     r.BodyType,
		DriveType:    r.DriveType,
		Color:        r.Color,
		Doors:        r.Doors,
		Seats:        r.Seats,
		EngineSize:   r.EngineSize,
		VIN:          r.VIN,
		LicensePlate: r.LicensePlate,
		Features:     r.Features,
		Description:  r.Description,
		Images:       r.Images,
	}
}
