package controllers

import (
	"net/http"
	"strconv"

	"carmarket/app/middleware"
	"carmarket/app/services"
)

// AdminController backs the admin panel: manage all users and all listings,
// hidden ones included. Routes are mounted behind RequireAdmin.
type AdminController struct {
	Users     *services.UserService
	Cars      *services.CarService
	Favorites *services.FavoriteService
}

func NewAdminController(users *services.UserService, cars *services.CarService, favorites *services.FavoriteService) *AdminController {
	return &AdminController{Users: users, Cars: cars, Favorites: favorites}
}

func (c *AdminController) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := c.Users.List()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, users)
}

// DeleteUser removes the account together with everything it owns: each of
// the user's listings (images and bookmarks included) and the bookmarks the
// user placed on other listings.
func (c *AdminController) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid user id")
		return
	}
	claims := middleware.GetClaims(r.Context())
	owned, err := c.Cars.ListByOwner(uint(id))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	for _, car := range owned {
		if err := c.Cars.Delete(r.Context(), claims, car.ID); err != nil {
			writeServiceError(w, err)
			return
		}
	}
	if err := c.Favorites.PurgeUser(uint(id)); err != nil {
		writeServiceError(w, err)
		return
	}
	if err := c.Users.Delete(claims, uint(id)); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (c *AdminController) ListCars(w http.ResponseWriter, r *http.Request) {
	cars, err := c.Cars.ListAll()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, cars)
}

func (c *AdminController) DeleteCar(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaims(r.Context())
	if err := c.Cars.Delete(r.Context(), claims, r.PathValue("id")); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
