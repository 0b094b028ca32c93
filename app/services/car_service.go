package services

import (
	"context"
	"errors"
	"strings"

	"carmarket/app/cache"
	jwtutil "carmarket/app/jwt"
	"carmarket/app/models"
	"carmarket/app/repo"
	"carmarket/app/storage"
	"carmarket/global"

	"github.com/google/uuid"
)

type CarService struct {
	cars  *repo.CarRepository
	favs  *repo.FavoriteRepository
	store storage.Store
	cache *cache.ListingCache
}

func NewCarService(cars *repo.CarRepository, favs *repo.FavoriteRepository, store storage.Store, c *cache.ListingCache) *CarService {
	return &CarService{cars: cars, favs: favs, store: store, cache: c}
}

// Create persists a new listing owned by the caller. Visibility defaults on.
func (s *CarService) Create(claims *jwtutil.Claims, car *models.Car) error {
	if claims == nil {
		return ErrForbidden
	}
	if car.ID == "" {
		car.ID = uuid.NewString()
	}
	car.UserID = claims.UserID
	car.Visible = true
	return s.cars.Create(car)
}

func (s *CarService) Get(ctx context.Context, id string) (*models.Car, error) {
	if car, ok := s.cache.Get(ctx, id); ok {
		return car, nil
	}
	car, err := s.cars.Get(id)
	if err != nil {
		return nil, err
	}
	if car == nil {
		return nil, ErrNotFound
	}
	s.cache.Set(ctx, car)
	return car, nil
}

func (s *CarService) Browse(f repo.CarFilter, limit int) ([]models.Car, error) {
	return s.cars.ListVisible(f, limit)
}

func (s *CarService) ListAll() ([]models.Car, error)                 { return s.cars.ListAll() }
func (s *CarService) ListByOwner(userID uint) ([]models.Car, error) { return s.cars.ListByOwner(userID) }

// Update replaces the mutable fields of a listing, owner-or-admin only.
// Owner, creation time and visibility survive the update; hiding a listing
// goes through ToggleVisibility, never through an edit.
func (s *CarService) Update(ctx context.Context, claims *jwtutil.Claims, id string, in *models.Car) (*models.Car, error) {
	existing, err := s.cars.Get(id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrNotFound
	}
	if !CanMutate(claims, existing.UserID) {
		return nil, ErrForbidden
	}
	in.ID = existing.ID
	in.UserID = existing.UserID
	in.CreatedAt = existing.CreatedAt
	in.Visible = existing.Visible
	if err := s.cars.Save(in); err != nil {
		return nil, err
	}
	s.cache.Invalidate(ctx, id)
	return in, nil
}

// CreateOrUpdate backs the form wizard's final submission.
func (s *CarService) CreateOrUpdate(ctx context.Context, claims *jwtutil.Claims, car *models.Car) (*models.Car, error) {
	if car.ID == "" {
		if err := s.Create(claims, car); err != nil {
			return nil, err
		}
		return car, nil
	}
	return s.Update(ctx, claims, car.ID, car)
}

// Delete removes the listing, its bookmarks, and one stored object per
// attached image. Storage failures are logged and do not block the delete.
func (s *CarService) Delete(ctx context.Context, claims *jwtutil.Claims, id string) error {
	car, err := s.cars.Get(id)
	if err != nil {
		return err
	}
	if car == nil {
		return ErrNotFound
	}
	if !CanMutate(claims, car.UserID) {
		return ErrForbidden
	}
	for _, url := range car.Images {
		key := KeyFromURL(url)
		if key == "" {
			continue
		}
		if err := s.store.Delete(key); err != nil && !errors.Is(err, storage.ErrNotFound) {
			global.Logger.Warn().Err(err).Str("key", key).Msg("delete image")
		}
	}
	if err := s.favs.RemoveByCar(id); err != nil {
		return err
	}
	if err := s.cars.Delete(id); err != nil {
		return err
	}
	s.cache.Invalidate(ctx, id)
	return nil
}

// ToggleVisibility flips the listing's public visibility, owner-or-admin only.
func (s *CarService) ToggleVisibility(ctx context.Context, claims *jwtutil.Claims, id string) (bool, error) {
	car, err := s.cars.Get(id)
	if err != nil {
		return false, err
	}
	if car == nil {
		return false, ErrNotFound
	}
	if !CanMutate(claims, car.UserID) {
		return false, ErrForbidden
	}
	next := !car.Visible
	if err := s.cars.SetVisibility(id, next); err != nil {
		return false, err
	}
	s.cache.Invalidate(ctx, id)
	return next, nil
}

// KeyFromURL maps a public image URL back to its object key.
func KeyFromURL(url string) string {
	i := strings.LastIndex(url, "/")
	if i < 0 || i == len(url)-1 {
		return ""
	}
	return url[i+1:]
}
