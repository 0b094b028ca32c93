package dto

type UploadRequest struct {
	Filename string `json:"filename"`
}

type VisibilityResponse struct {
	CarID   string `json:"car_id"`
	Visible bool   `json:"visible"`
}
