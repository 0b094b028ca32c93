package services

import (
	"carmarket/app/models"
	"carmarket/app/repo"
)

type FavoriteService struct {
	favs *repo.FavoriteRepository
	cars *repo.CarRepository
}

func NewFavoriteService(favs *repo.FavoriteRepository, cars *repo.CarRepository) *FavoriteService {
	return &FavoriteService{favs: favs, cars: cars}
}

// Toggle flips the (user, car) bookmark and returns the new state.
// Last-write-wins under concurrent toggles, matching the source behavior.
func (s *FavoriteService) Toggle(userID uint, carID string) (bool, error) {
	car, err := s.cars.Get(carID)
	if err != nil {
		return false, err
	}
	if car == nil {
		return false, ErrNotFound
	}
	favorited, err := s.favs.Exists(userID, carID)
	if err != nil {
		return false, err
	}
	if favorited {
		return false, s.favs.Remove(userID, carID)
	}
	return true, s.favs.Add(userID, carID)
}

func (s *FavoriteService) Add(userID uint, carID string) error {
	car, err := s.cars.Get(carID)
	if err != nil {
		return err
	}
	if car == nil {
		return ErrNotFound
	}
	return s.favs.Add(userID, carID)
}

func (s *FavoriteService) Remove(userID uint, carID string) error {
	return s.favs.Remove(userID, carID)
}

// PurgeUser drops every bookmark held by the user, part of account removal.
func (s *FavoriteService) PurgeUser(userID uint) error {
	return s.favs.RemoveByUser(userID)
}

// List returns the user's favorited cars, newest bookmark first.
func (s *FavoriteService) List(userID uint) ([]models.Car, error) {
	ids, err := s.favs.CarIDs(userID)
	if err != nil {
		return nil, err
	}
	cars := make([]models.Car, 0, len(ids))
	for _, id := range ids {
		car, err := s.cars.Get(id)
		if err != nil {
			return nil, err
		}
		if car != nil {
			cars = append(cars, *car)
		}
	}
	return cars, nil
}
