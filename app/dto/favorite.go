package dto

type FavoriteRequest struct {
	CarID string `json:"car_id"`
}

type ToggleResponse struct {
	CarID     string `json:"car_id"`
	Favorited bool   `json:"favorited"`
}
