package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/simonbystrom/taskboard/internal/config"
)

// Styles holds every lipgloss style the UI renders with. It is built once
// from the configured colors and handed to each view.
type Styles struct {
	Title        lipgloss.Style
	Header       lipgloss.Style
	Column       lipgloss.Style
	ColumnFocus  lipgloss.Style
	Card         lipgloss.Style
	Selected     lipgloss.Style
	Dragging     lipgloss.Style
	PriorityLow  lipgloss.Style
	PriorityMed  lipgloss.Style
	PriorityHigh lipgloss.Style
	Done         lipgloss.Style
	Notification lipgloss.Style
	Success      lipgloss.Style
	Help         lipgloss.Style
	Border       lipgloss.Style
	WizardTitle  lipgloss.Style
	WizardActive lipgloss.Style
	WizardDim    lipgloss.Style
	Error        lipgloss.Style
	Spinner      lipgloss.Style
	Label        lipgloss.Style
}

func NewStyles(c config.Colors) Styles {
	return Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(c.Title)).
			Padding(0, 1),
		Header: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(c.Header)),
		Column: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(c.ColumnBorder)).
			Padding(0, 1),
		ColumnFocus: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(c.ColumnFocus)).
			Padding(0, 1),
		Card: lipgloss.NewStyle(),
		Selected: lipgloss.NewStyle().
			Background(lipgloss.Color(c.SelectedBG)).
			Foreground(lipgloss.Color(c.SelectedFG)),
		Dragging: lipgloss.NewStyle().
			Foreground(lipgloss.Color(c.Dragging)).
			Bold(true),
		PriorityLow: lipgloss.NewStyle().
			Foreground(lipgloss.Color(c.PriorityLow)),
		PriorityMed: lipgloss.NewStyle().
			Foreground(lipgloss.Color(c.PriorityMed)),
		PriorityHigh: lipgloss.NewStyle().
			Foreground(lipgloss.Color(c.PriorityHigh)).
			Bold(true),
		Done: lipgloss.NewStyle().
			Foreground(lipgloss.Color(c.Done)),
		Notification: lipgloss.NewStyle().
			Foreground(lipgloss.Color(c.Notification)).
			Italic(true),
		Success: lipgloss.NewStyle().
			Foreground(lipgloss.Color(c.Success)),
		Help: lipgloss.NewStyle().
			Foreground(lipgloss.Color(c.Help)),
		Border: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(c.Border)).
			Padding(1, 2),
		WizardTitle: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(c.WizardTitle)).
			MarginBottom(1),
		WizardActive: lipgloss.NewStyle().
			Foreground(lipgloss.Color(c.WizardActive)),
		WizardDim: lipgloss.NewStyle().
			Foreground(lipgloss.Color(c.WizardDim)),
		Error: lipgloss.NewStyle().
			Foreground(lipgloss.Color(c.Error)).
			Bold(true),
		Spinner: lipgloss.NewStyle().
			Foreground(lipgloss.Color(c.Spinner)),
		Label: lipgloss.NewStyle().
			Foreground(lipgloss.Color(c.WizardDim)).
			Width(12),
	}
}
