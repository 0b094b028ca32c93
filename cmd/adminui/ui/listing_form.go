package ui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"carmarket/app/form"
	"carmarket/app/models"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type listingSavedMsg *models.Car

// ListingFormModel drives the five-step listing wizard in the terminal.
// Each step shows its own inputs; Enter on the last input advances, Esc goes
// back, and finishing the review step runs the submission protocol.
type ListingFormModel struct {
	Session *Session
	Wizard  *form.Wizard
	Inputs  []textinput.Model
	// ImagePaths holds the raw comma-separated paths typed on the images step.
	ImagePaths string
	FocusIdx   int
	Err        error
	Submitting bool
}

type fieldSpec struct {
	prompt      string
	placeholder string
	get         func(*form.Fields) *string
}

var stepFields = map[form.Step][]fieldSpec{
	form.StepBasic: {
		{"Brand: ", "Toyota", func(f *form.Fields) *string { return &f.Brand }},
		{"Model: ", "Camry", func(f *form.Fields) *string { return &f.Model }},
		{"Year: ", "2022", func(f *form.Fields) *string { return &f.Year }},
		{"Price: ", "25000", func(f *form.Fields) *string { return &f.Price }},
	},
	form.StepTechnical: {
		{"Mileage: ", "12000", func(f *form.Fields) *string { return &f.Mileage }},
		{"Fuel: ", "petrol", func(f *form.Fields) *string { return &f.Fuel }},
		{"Gearbox: ", "automatic", func(f *form.Fields) *string { return &f.Gearbox }},
		{"Power: ", "204", func(f *form.Fields) *string { return &f.Power }},
		{"Condition: ", "used", func(f *form.Fields) *string { return &f.Condition }},
		{"Body type: ", "sedan", func(f *form.Fields) *string { return &f.BodyType }},
		{"Drive type: ", "fwd", func(f *form.Fields) *string { return &f.DriveType }},
		{"Color: ", "silver", func(f *form.Fields) *string { return &f.Color }},
		{"Doors: ", "4", func(f *form.Fields) *string { return &f.Doors }},
		{"Seats: ", "5", func(f *form.Fields) *string { return &f.Seats }},
		{"Engine size: ", "2500", func(f *form.Fields) *string { return &f.EngineSize }},
	},
	form.StepFeatures: {
		{"Features: ", "AC, cruise control", func(f *form.Fields) *string { return &f.Features }},
		{"Description: ", "", func(f *form.Fields) *string { return &f.Description }},
		{"VIN: ", "", func(f *form.Fields) *string { return &f.VIN }},
		{"License plate: ", "", func(f *form.Fields) *string { return &f.LicensePlate }},
	},
}

func NewListingFormModel(s *Session) ListingFormModel {
	m := ListingFormModel{Session: s, Wizard: form.New()}
	m.buildInputs()
	return m
}

func (m *ListingFormModel) buildInputs() {
	m.FocusIdx = 0
	switch m.Wizard.Step {
	case form.StepImages:
		in := textinput.New()
		in.Prompt = "Image paths (comma separated): "
		in.Placeholder = "/tmp/front.jpg, /tmp/back.jpg"
		in.SetValue(m.ImagePaths)
		in.Focus()
		m.Inputs = []textinput.Model{in}
	case form.StepReview:
		m.Inputs = nil
	default:
		specs := stepFields[m.Wizard.Step]
		m.Inputs = make([]textinput.Model, len(specs))
		for i, spec := range specs {
			in := textinput.New()
			in.Prompt = spec.prompt
			in.Placeholder = spec.placeholder
			in.SetValue(*spec.get(&m.Wizard.Fields))
			m.Inputs[i] = in
		}
		if len(m.Inputs) > 0 {
			m.Inputs[0].Focus()
		}
	}
}

// flush copies input values back into the wizard fields.
func (m *ListingFormModel) flush() {
	switch m.Wizard.Step {
	case form.StepImages:
		if len(m.Inputs) == 1 {
			m.ImagePaths = m.Inputs[0].Value()
		}
	case form.StepReview:
	default:
		specs := stepFields[m.Wizard.Step]
		for i, spec := range specs {
			*spec.get(&m.Wizard.Fields) = strings.TrimSpace(m.Inputs[i].Value())
		}
	}
}

// loadImages reads the selected files into pending images.
func (m *ListingFormModel) loadImages() error {
	m.Wizard.Fields.NewImages = nil
	for _, p := range strings.Split(m.ImagePaths, ",") {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		data, err := os.ReadFile(p)
		if err != nil {
			return fmt.Errorf("read %s: %w", p, err)
		}
		m.Wizard.Fields.NewImages = append(m.Wizard.Fields.NewImages, form.PendingImage{
			Filename: filepath.Base(p),
			Data:     data,
		})
	}
	return nil
}

func (m ListingFormModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m ListingFormModel) Update(msg tea.Msg) (ListingFormModel, tea.Cmd) {
	if m.Submitting {
		if err, ok := msg.(errMsg); ok {
			m.Err = err
			m.Submitting = false
		}
		return m, nil
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyEsc:
			m.flush()
			m.Wizard.Back()
			m.buildInputs()
			m.Err = nil
			return m, nil
		case tea.KeyEnter:
			if m.FocusIdx < len(m.Inputs)-1 {
				m.Inputs[m.FocusIdx].Blur()
				m.FocusIdx++
				m.Inputs[m.FocusIdx].Focus()
				return m, nil
			}
			return m.advance()
		case tea.KeyTab, tea.KeyDown:
			m.cycle(1)
		case tea.KeyShiftTab, tea.KeyUp:
			m.cycle(-1)
		}
	case errMsg:
		m.Err = msg
		return m, nil
	}

	cmds := make([]tea.Cmd, len(m.Inputs))
	for i := range m.Inputs {
		m.Inputs[i], cmds[i] = m.Inputs[i].Update(msg)
	}
	return m, tea.Batch(cmds...)
}

func (m *ListingFormModel) cycle(delta int) {
	if len(m.Inputs) == 0 {
		return
	}
	m.Inputs[m.FocusIdx].Blur()
	m.FocusIdx = (m.FocusIdx + delta + len(m.Inputs)) % len(m.Inputs)
	m.Inputs[m.FocusIdx].Focus()
}

func (m ListingFormModel) advance() (ListingFormModel, tea.Cmd) {
	m.flush()
	if m.Wizard.Step == form.StepImages {
		if err := m.loadImages(); err != nil {
			m.Err = err
			return m, nil
		}
	}
	if err := m.Wizard.Next(); err != nil {
		m.Err = err
		return m, nil
	}
	m.Err = nil
	if m.Wizard.Done {
		m.Submitting = true
		return m, m.submitCmd
	}
	m.buildInputs()
	return m, textinput.Blink
}

func (m ListingFormModel) submitCmd() tea.Msg {
	sub := &form.Submitter{Uploader: m.Session, Cars: m.Session}
	car, err := sub.Submit(context.Background(), nil, m.Wizard)
	if err != nil {
		return errMsg(err)
	}
	return listingSavedMsg(car)
}

func (m ListingFormModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("New listing - step %d/5: %s", int(m.Wizard.Step)+1, m.Wizard.Step)) + "\n\n")

	if m.Submitting {
		b.WriteString(statusMessageStyle("Uploading images and saving..."))
		return b.String()
	}

	if m.Wizard.Step == form.StepReview {
		f := m.Wizard.Fields
		b.WriteString(fmt.Sprintf("%s %s (%s), %s km, %s\n", f.Brand, f.Model, f.Year, f.Mileage, f.Fuel))
		b.WriteString(fmt.Sprintf("Price: %s · Gearbox: %s · Images: %d\n\n", f.Price, f.Gearbox, m.Wizard.ImageCount()))
		b.WriteString(blurredStyle.Render("Enter to submit, Esc to go back"))
	} else {
		for i := range m.Inputs {
			b.WriteString(m.Inputs[i].View())
			b.WriteRune('\n')
		}
		b.WriteString("\n")
		b.WriteString(blurredStyle.Render("Enter to continue, Esc to go back"))
	}

	if m.Err != nil {
		b.WriteString("\n\n")
		b.WriteString(errorMessageStyle(m.Err.Error()))
	}
	return b.String()
}
