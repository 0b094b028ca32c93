package ui

import (
	"fmt"
	"strconv"

	"carmarket/app/models"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type listingsMsg []models.Car

type actionDoneMsg string

type newListingMsg struct{}

type ListingsModel struct {
	Session *Session
	Table   table.Model
	Cars    []models.Car
	Status  string
	Err     error
}

func NewListingsModel(s *Session, width, height int) ListingsModel {
	columns := []table.Column{
		{Title: "ID", Width: 36},
		{Title: "Brand", Width: 12},
		{Title: "Model", Width: 14},
		{Title: "Year", Width: 6},
		{Title: "Price", Width: 10},
		{Title: "Visible", Width: 8},
	}

	h := height - 10
	if h < 5 {
		h = 5
	}
	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(h),
	)

	sStyle := table.DefaultStyles()
	sStyle.Header = sStyle.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	sStyle.Selected = sStyle.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(sStyle)

	return ListingsModel{Session: s, Table: t}
}

func (m ListingsModel) Init() tea.Cmd {
	return m.refreshCmd
}

func (m ListingsModel) refreshCmd() tea.Msg {
	cars, err := m.Session.ListCars()
	if err != nil {
		return errMsg(err)
	}
	return listingsMsg(cars)
}

func (m ListingsModel) selectedID() string {
	row := m.Table.SelectedRow()
	if len(row) == 0 {
		return ""
	}
	return row[0]
}

func (m ListingsModel) Update(msg tea.Msg) (ListingsModel, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "r":
			return m, m.refreshCmd
		case "n":
			return m, func() tea.Msg { return newListingMsg{} }
		case "d":
			id := m.selectedID()
			if id == "" {
				return m, nil
			}
			return m, func() tea.Msg {
				if err := m.Session.DeleteCar(id); err != nil {
					return errMsg(err)
				}
				return actionDoneMsg("deleted " + id)
			}
		case "v":
			id := m.selectedID()
			if id == "" {
				return m, nil
			}
			return m, func() tea.Msg {
				visible, err := m.Session.ToggleVisibility(id)
				if err != nil {
					return errMsg(err)
				}
				return actionDoneMsg(fmt.Sprintf("%s visible=%t", id, visible))
			}
		case "q":
			return m, tea.Quit
		}

	case listingsMsg:
		m.Cars = msg
		m.Err = nil
		rows := make([]table.Row, 0, len(m.Cars))
		for _, c := range m.Cars {
			rows = append(rows, table.Row{
				c.ID, c.Brand, c.Model,
				strconv.Itoa(c.Year), strconv.Itoa(c.Price), strconv.FormatBool(c.Visible),
			})
		}
		m.Table.SetRows(rows)
		return m, nil

	case actionDoneMsg:
		m.Status = string(msg)
		return m, m.refreshCmd

	case errMsg:
		m.Err = msg
		return m, nil
	}

	m.Table, cmd = m.Table.Update(msg)
	return m, cmd
}

func (m ListingsModel) View() string {
	s := titleStyle.Render("Carmarket - Listings") + "\n\n"
	s += m.Table.View() + "\n\n"
	s += blurredStyle.Render("r refresh · n new · d delete · v toggle visibility · q quit")
	if m.Status != "" {
		s += "\n" + statusMessageStyle(m.Status)
	}
	if m.Err != nil {
		s += "\n" + errorMessageStyle(m.Err.Error())
	}
	return s
}
