package controllers

import (
	"encoding/json"
	"net/http"

	"carmarket/app/dto"
	"carmarket/app/middleware"
	"carmarket/app/services"
)

type FavoriteController struct{ Favorites *services.FavoriteService }

func NewFavoriteController(favorites *services.FavoriteService) *FavoriteController {
	return &FavoriteController{Favorites: favorites}
}

func decodeCarID(w http.ResponseWriter, r *http.Request) (string, bool) {
	var req dto.FavoriteRequest
	_ = json.NewDecoder(r.Body).Decode(&req)
	if req.CarID == "" {
		writeError(w, http.StatusBadRequest, "car_id is required")
		return "", false
	}
	return req.CarID, true
}

func (c *FavoriteController) List(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaims(r.Context())
	if claims == nil {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	cars, err := c.Favorites.List(claims.UserID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, cars)
}

func (c *FavoriteController) Add(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaims(r.Context())
	if claims == nil {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	carID, ok := decodeCarID(w, r)
	if !ok {
		return
	}
	if err := c.Favorites.Add(claims.UserID, carID); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dto.ToggleResponse{CarID: carID, Favorited: true})
}

func (c *FavoriteController) Remove(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaims(r.Context())
	if claims == nil {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	carID, ok := decodeCarID(w, r)
	if !ok {
		return
	}
	if err := c.Favorites.Remove(claims.UserID, carID); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dto.ToggleResponse{CarID: carID, Favorited: false})
}

func (c *FavoriteController) Toggle(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaims(r.Context())
	if claims == nil {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	carID, ok := decodeCarID(w, r)
	if !ok {
		return
	}
	favorited, err := c.Favorites.Toggle(claims.UserID, carID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dto.ToggleResponse{CarID: carID, Favorited: favorited})
}
