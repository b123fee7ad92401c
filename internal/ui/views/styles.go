package views

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles contains all the style definitions for the UI
type Styles struct {
	Title          lipgloss.Style
	Section        lipgloss.Style
	SectionFocused lipgloss.Style
	Dim            lipgloss.Style
	Status         lipgloss.Style
	Help           lipgloss.Style
	Main           lipgloss.Style
	Highlight      lipgloss.Style
	Checked        lipgloss.Style
	Code           lipgloss.Style
	URL            lipgloss.Style
	Webcal         lipgloss.Style
	Button         lipgloss.Style
	ButtonFocused  lipgloss.Style
	StatusError    lipgloss.Style
	StatusWarning  lipgloss.Style
	StatusLoading  lipgloss.Style
	StatusSuccess  lipgloss.Style
	PopupSuccess   lipgloss.Style
	PopupError     lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")).
			MarginBottom(1),
		Section:        lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("241")),
		SectionFocused: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		Dim:            lipgloss.NewStyle().Faint(true),
		Status: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			MarginTop(1),
		Help: lipgloss.NewStyle().Faint(true),
		Main: lipgloss.NewStyle().
			Padding(1, 2),
		Highlight:     lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),
		Checked:       lipgloss.NewStyle().Foreground(lipgloss.Color("78")),
		Code:          lipgloss.NewStyle().Foreground(lipgloss.Color("220")),
		URL:           lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		Webcal:        lipgloss.NewStyle().Foreground(lipgloss.Color("51")).Underline(true),
		Button:        lipgloss.NewStyle().Padding(0, 1).Background(lipgloss.Color("238")),
		ButtonFocused: lipgloss.NewStyle().Padding(0, 1).Background(lipgloss.Color("99")).Bold(true),
		StatusError:   lipgloss.NewStyle().Foreground(lipgloss.Color("203")), // red
		StatusWarning: lipgloss.NewStyle().Foreground(lipgloss.Color("214")), // yellow
		StatusLoading: lipgloss.NewStyle().Foreground(lipgloss.Color("241")), // gray
		StatusSuccess: lipgloss.NewStyle().Foreground(lipgloss.Color("78")),  // green
		PopupSuccess: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(1, 3).
			BorderForeground(lipgloss.Color("78")),
		PopupError: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(1, 3).
			BorderForeground(lipgloss.Color("203")),
	}
}
