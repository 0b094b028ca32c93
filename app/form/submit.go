package form

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	jwtutil "carmarket/app/jwt"
	"carmarket/app/models"
)

// Uploader pushes one image to object storage and returns its public URL.
type Uploader interface {
	Upload(ctx context.Context, filename string, data []byte) (string, error)
}

// ListingWriter persists the composed listing.
type ListingWriter interface {
	CreateOrUpdate(ctx context.Context, claims *jwtutil.Claims, car *models.Car) (*models.Car, error)
}

// Submitter runs the submission protocol once the wizard is done: gate on
// having at least one image, upload new images in parallel, concatenate the
// resulting URLs with the retained ones, coerce numeric fields, and persist.
type Submitter struct {
	Uploader Uploader
	Cars     ListingWriter
}

// Submit executes the protocol. On a missing-image failure the wizard is
// routed back to the images step and persistence is never touched.
func (s *Submitter) Submit(ctx context.Context, claims *jwtutil.Claims, w *Wizard) (*models.Car, error) {
	if w.ImageCount() == 0 {
		w.Step = StepImages
		w.Done = false
		return nil, ErrNoImages
	}

	urls := make([]string, len(w.Fields.NewImages))
	errs := make([]error, len(w.Fields.NewImages))
	var wg sync.WaitGroup
	for i, img := range w.Fields.NewImages {
		wg.Add(1)
		go func(i int, img PendingImage) {
			defer wg.Done()
			urls[i], errs[i] = s.Uploader.Upload(ctx, img.Filename, img.Data)
		}(i, img)
	}
	wg.Wait()
	for _, err := range errs {
		if err != nil {
			return nil, fmt.Errorf("upload image: %w", err)
		}
	}

	images := append(append([]string{}, w.Fields.ExistingImages...), urls...)
	car := w.compose(images)
	return s.Cars.CreateOrUpdate(ctx, claims, car)
}

// compose coerces the raw fields into a listing record.
func (w *Wizard) compose(images []string) *models.Car {
	f := &w.Fields
	return &models.Car{
		ID:           w.CarID,
		Brand:        f.Brand,
		Model:        f.Model,
		Year:         atoi(f.Year),
		Mileage:      atoi(f.Mileage),
		Fuel:         f.Fuel,
		Gearbox:      f.Gearbox,
		Power:        atoi(f.Power),
		Price:        atoi(f.Price),
		Condition:    f.Condition,
		BodyType:     f.BodyType,
		DriveType:    f.DriveType,
		Color:        f.Color,
		Doors:        atoi(f.Doors),
		Seats:        atoi(f.Seats),
		EngineSize:   atoi(f.EngineSize),
		VIN:          f.VIN,
		LicensePlate: f.LicensePlate,
		Features:     f.Features,
		Description:  f.Description,
		Images:       images,
	}
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
