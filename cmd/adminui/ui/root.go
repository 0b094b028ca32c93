package ui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

type view int

const (
	viewLogin view = iota
	viewListings
	viewForm
)

type RootModel struct {
	Session  *Session
	Active   view
	Login    LoginModel
	Listings ListingsModel
	Form     ListingFormModel
	Width    int
	Height   int
}

func NewRootModel(defaultServer string) RootModel {
	s := NewSession()
	return RootModel{
		Session: s,
		Active:  viewLogin,
		Login:   NewLoginModel(s, defaultServer),
		Width:   100,
		Height:  30,
	}
}

func (m RootModel) Init() tea.Cmd {
	return m.Login.Init()
}

func (m RootModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}

	case loginDoneMsg:
		m.Active = viewListings
		m.Listings = NewListingsModel(m.Session, m.Width, m.Height)
		return m, m.Listings.Init()

	case newListingMsg:
		m.Active = viewForm
		m.Form = NewListingFormModel(m.Session)
		return m, m.Form.Init()

	case listingSavedMsg:
		m.Active = viewListings
		if msg != nil {
			m.Listings.Status = fmt.Sprintf("saved listing %s", msg.ID)
		}
		return m, m.Listings.refreshCmd
	}

	var cmd tea.Cmd
	switch m.Active {
	case viewLogin:
		m.Login, cmd = m.Login.Update(msg)
	case viewListings:
		m.Listings, cmd = m.Listings.Update(msg)
	case viewForm:
		m.Form, cmd = m.Form.Update(msg)
	}
	return m, cmd
}

func (m RootModel) View() string {
	var body string
	switch m.Active {
	case viewLogin:
		body = m.Login.View()
	case viewListings:
		body = m.Listings.View()
	case viewForm:
		body = m.Form.View()
	}
	return docStyle.Render(body)
}
