package ui

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"carmarket/app/dto"
	jwtutil "carmarket/app/jwt"
	"carmarket/app/models"
	"carmarket/app/services"
)

// Session holds the authenticated connection to the marketplace API.
// It doubles as the uploader and listing writer behind the new-listing form.
type Session struct {
	BaseURL string
	Token   string
	hc      *http.Client
}

func NewSession() *Session {
	return &Session{hc: &http.Client{Timeout: 30 * time.Second}}
}

func (s *Session) do(method, path string, body any, out any) error {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return err
		}
	}
	req, err := http.NewRequest(method, s.BaseURL+path, &buf)
	if err != nil {
		return err
	}
	if s.Token != "" {
		req.Header.Set("Authorization", "Bearer "+s.Token)
	}
	resp, err := s.hc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		var e struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&e)
		if e.Error != "" {
			return fmt.Errorf("%s %s: %s", method, path, e.Error)
		}
		return fmt.Errorf("%s %s: status %d", method, path, resp.StatusCode)
	}
	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}

func (s *Session) Login(baseURL, username, password string) error {
	s.BaseURL = strings.TrimRight(baseURL, "/")
	var tok dto.TokenResponse
	if err := s.do(http.MethodPost, "/login", dto.LoginRequest{Username: username, Password: password}, &tok); err != nil {
		return err
	}
	s.Token = tok.AccessToken
	return nil
}

func (s *Session) ListCars() ([]models.Car, error) {
	var cars []models.Car
	err := s.do(http.MethodGet, "/api/admin/cars", nil, &cars)
	return cars, err
}

func (s *Session) DeleteCar(id string) error {
	return s.do(http.MethodDelete, "/api/admin/cars/"+id, nil, nil)
}

func (s *Session) ToggleVisibility(id string) (bool, error) {
	var resp dto.VisibilityResponse
	err := s.do(http.MethodPost, "/api/cars/"+id+"/visibility", nil, &resp)
	return resp.Visible, err
}

// Upload implements form.Uploader: presign, PUT the bytes, return the public URL.
func (s *Session) Upload(ctx context.Context, filename string, data []byte) (string, error) {
	var grant services.PresignedUpload
	if err := s.do(http.MethodPost, "/api/upload", dto.UploadRequest{Filename: filename}, &grant); err != nil {
		return "", err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, grant.UploadURL, bytes.NewReader(data))
	if err != nil {
		return "", err
	}
	resp, err := s.hc.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 256))
		return "", fmt.Errorf("upload %s: status %d %s", grant.Key, resp.StatusCode, msg)
	}
	return grant.PublicURL, nil
}

// CreateOrUpdate implements form.ListingWriter over the REST API. The server
// resolves the actor from the bearer token, so the claims argument is unused.
func (s *Session) CreateOrUpdate(_ context.Context, _ *jwtutil.Claims, car *models.Car) (*models.Car, error) {
	req := dto.CarRequest{
		Brand: car.Brand, Model: car.Model, Year: car.Year, Mileage: car.Mileage,
		Fuel: car.Fuel, Gearbox: car.Gearbox, Power: car.Power, Price: car.Price,
		Condition: car.Condition, BodyType: car.BodyType, DriveType: car.DriveType,
		Color: car.Color, Doors: car.Doors, Seats: car.Seats, EngineSize: car.EngineSize,
		VIN: car.VIN, LicensePlate: car.LicensePlate,
		Features: car.Features, Description: car.Description, Images: car.Images,
	}
	var out models.Car
	if car.ID == "" {
		if err := s.do(http.MethodPost, "/api/cars", req, &out); err != nil {
			return nil, err
		}
		return &out, nil
	}
	if err := s.do(http.MethodPut, "/api/cars/"+car.ID, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
