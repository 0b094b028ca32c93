// Package form drives the multi-step listing form: five linear steps with
// per-step validation gating, and the submission protocol that turns the
// collected fields into a stored listing.
package form

import (
	"errors"
	"fmt"
	"strconv"
)

type Step int

const (
	StepBasic Step = iota
	StepTechnical
	StepFeatures
	StepImages
	StepReview

	numSteps = 5
)

var stepNames = [numSteps]string{"basic info", "technical details", "features", "images", "review"}

func (s Step) String() string {
	if s < 0 || s >= numSteps {
		return fmt.Sprintf("step(%d)", int(s))
	}
	return stepNames[s]
}

var (
	ErrStepLocked = errors.New("step not reachable yet")
	ErrNoImages   = errors.New("at least one image is required")
)

// PendingImage is a newly selected image that has not been uploaded yet.
type PendingImage struct {
	Filename string
	Data     []byte
}

// Fields holds the raw form inputs. Numeric fields stay strings until
// submission, when they are coerced.
type Fields struct {
	Brand        string
	Model        string
	Year         string
	Price        string
	Mileage      string
	Fuel         string
	Gearbox      string
	Power        string
	Condition    string
	BodyType     string
	DriveType    string
	Color        string
	Doors        string
	Seats        string
	EngineSize   string
	VIN          string
	LicensePlate string
	Features     string
	Description  string

	// ExistingImages are public URLs retained from the listing being edited.
	ExistingImages []string
	NewImages      []PendingImage
}

// Wizard is the step state machine. The zero value is not usable; call New.
type Wizard struct {
	Step   Step
	Fields Fields
	// CarID is empty for a new listing and set when editing.
	CarID string
	// Done is set once Next succeeds on the review step; the caller then
	// runs the submission protocol.
	Done bool

	completed [numSteps]bool
}

func New() *Wizard { return &Wizard{} }

// NewEdit seeds a wizard from an existing listing's fields. Every step is
// considered completed so the user can jump straight to any of them.
func NewEdit(carID string, f Fields) *Wizard {
	w := &Wizard{CarID: carID, Fields: f}
	for i := range w.completed {
		w.completed[i] = true
	}
	return w
}

// Next validates the current step and advances. On the review step it marks
// the wizard done instead of advancing.
func (w *Wizard) Next() error {
	if err := w.ValidateStep(w.Step); err != nil {
		return err
	}
	w.completed[w.Step] = true
	if w.Step == StepReview {
		w.Done = true
		return nil
	}
	w.Step++
	return nil
}

// Back moves one step back. Always allowed; never validates.
func (w *Wizard) Back() {
	if w.Step > 0 {
		w.Step--
	}
}

// Jump moves directly to a step. Only completed steps and the
// immediately-next step are reachable; the latter validates like Next.
func (w *Wizard) Jump(to Step) error {
	if to < 0 || to >= numSteps {
		return fmt.Errorf("no such step %d", int(to))
	}
	if to <= w.Step || w.completed[to] {
		w.Step = to
		return nil
	}
	if to == w.Step+1 {
		return w.Next()
	}
	return ErrStepLocked
}

// Completed reports whether a step has ever passed validation.
func (w *Wizard) Completed(s Step) bool {
	return s >= 0 && s < numSteps && w.completed[s]
}

// ImageCount counts retained plus newly selected images.
func (w *Wizard) ImageCount() int {
	return len(w.Fields.ExistingImages) + len(w.Fields.NewImages)
}

// ValidateStep checks the fields declared for one step.
func (w *Wizard) ValidateStep(s Step) error {
	f := &w.Fields
	switch s {
	case StepBasic:
		if f.Brand == "" {
			return fieldErr("brand", "required")
		}
		if f.Model == "" {
			return fieldErr("model", "required")
		}
		year, err := strconv.Atoi(f.Year)
		if err != nil || year < 1900 || year > 2100 {
			return fieldErr("year", "must be a valid year")
		}
		price, err := strconv.Atoi(f.Price)
		if err != nil || price <= 0 {
			return fieldErr("price", "must be a positive number")
		}
	case StepTechnical:
		if _, err := strconv.Atoi(f.Mileage); err != nil {
			return fieldErr("mileage", "must be a number")
		}
		if f.Fuel == "" {
			return fieldErr("fuel", "required")
		}
		if f.Gearbox == "" {
			return fieldErr("gearbox", "required")
		}
		for _, opt := range []struct{ name, v string }{
			{"power", f.Power}, {"doors", f.Doors}, {"seats", f.Seats}, {"engine size", f.EngineSize},
		} {
			if opt.v == "" {
				continue
			}
			if _, err := strconv.Atoi(opt.v); err != nil {
				return fieldErr(opt.name, "must be a number")
			}
		}
	case StepFeatures, StepImages, StepReview:
		// Free-text and image selection have no per-step gate; the image
		// requirement is enforced at submission.
	}
	return nil
}

func fieldErr(field, reason string) error {
	return fmt.Errorf("%s: %s", field, reason)
}
