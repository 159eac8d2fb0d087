package ui

import "github.com/charmbracelet/lipgloss"

// Styles contains all the style definitions for the UI
type Styles struct {
	Title     lipgloss.Style
	Header    lipgloss.Style
	Collapsed lipgloss.Style
	Member    lipgloss.Style
	Cursor    lipgloss.Style
	Counter   lipgloss.Style
	Dim       lipgloss.Style
	Status    lipgloss.Style
	Error     lipgloss.Style
	Main      lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")).
			MarginBottom(1),
		Header:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("51")), // cyan
		Collapsed: lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Member:    lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		Cursor:    lipgloss.NewStyle().Background(lipgloss.Color("238")),
		Counter:   lipgloss.NewStyle().Foreground(lipgloss.Color("214")), // yellow
		Dim:       lipgloss.NewStyle().Faint(true),
		Status: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			MarginTop(1),
		Error: lipgloss.NewStyle().Foreground(lipgloss.Color("203")), // red
		Main:  lipgloss.NewStyle().Padding(1, 2),
	}
}
