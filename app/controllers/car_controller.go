package controllers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"carmarket/app/dto"
	"carmarket/app/middleware"
	"carmarket/app/repo"
	"carmarket/app/services"
)

const defaultListLimit = 50

type CarController struct{ Cars *services.CarService }

func NewCarController(cars *services.CarService) *CarController {
	return &CarController{Cars: cars}
}

func filterFromQuery(r *http.Request) repo.CarFilter {
	q := r.URL.Query()
	return repo.CarFilter{
		Brand:     q.Get("brand"),
		Model:     q.Get("model"),
		MinPrice:  q.Get("minPrice"),
		MaxPrice:  q.Get("maxPrice"),
		MinYear:   q.Get("minYear"),
		MaxYear:   q.Get("maxYear"),
		Fuel:      q.Get("fuel"),
		Condition: q.Get("condition"),
		BodyType:  q.Get("bodyType"),
		DriveType: q.Get("driveType"),
		Gearbox:   q.Get("gearbox"),
		Query:     q.Get("q"),
	}
}

func (c *CarController) List(w http.ResponseWriter, r *http.Request) {
	limit := defaultListLimit
	if s := r.URL.Query().Get("limit"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			limit = n
		}
	}
	cars, err := c.Cars.Browse(filterFromQuery(r), limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, cars)
}

func (c *CarController) Get(w http.ResponseWriter, r *http.Request) {
	car, err := c.Cars.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, car)
}

func (c *CarController) Create(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaims(r.Context())
	if claims == nil {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	var req dto.CarRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid body")
		return
	}
	if req.Brand == "" || req.Model == "" {
		writeError(w, http.StatusBadRequest, "brand and model are required")
		return
	}
	car := req.ToModel()
	if err := c.Cars.Create(claims, car); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, car)
}

func (c *CarController) Update(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaims(r.Context())
	if claims == nil {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	var req dto.CarRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid body")
		return
	}
	car, err := c.Cars.Update(r.Context(), claims, r.PathValue("id"), req.ToModel())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, car)
}

func (c *CarController) Delete(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaims(r.Context())
	if claims == nil {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	if err := c.Cars.Delete(r.Context(), claims, r.PathValue("id")); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (c *CarController) ToggleVisibility(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaims(r.Context())
	if claims == nil {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	id := r.PathValue("id")
	visible, err := c.Cars.ToggleVisibility(r.Context(), claims, id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dto.VisibilityResponse{CarID: id, Visible: visible})
}

// Mine lists the caller's own listings, hidden ones included.
func (c *CarController) Mine(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaims(r.Context())
	if claims == nil {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	cars, err := c.Cars.ListByOwner(claims.UserID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, cars)
}
