package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/noborus/ov/oviewer"
)

// helpPagerMsg contains the result of a help pager command
type helpPagerMsg struct {
	err error
}

type helpEntry struct {
	keys string
	desc string
}

type helpSection struct {
	title   string
	entries []helpEntry
}

var helpSections = []helpSection{
	{"Navigation", []helpEntry{
		{"Tab/Shift+Tab", "Next/previous section"},
		{"↑/↓, j/k", "Move within a section"},
		{"gg/G", "First/last row"},
	}},
	{"Selection", []helpEntry{
		{"Space/Enter", "Pick a group, toggle a course or option"},
		{"x/Backspace", "Clear the group or all courses"},
	}},
	{"Calendar link", []helpEntry{
		{"c/y", "Copy the https link to the clipboard"},
	}},
	{"Other", []helpEntry{
		{"?", "Show this help"},
		{"q", "Quit"},
	}},
}

// HelpRenderer handles help content rendering
type HelpRenderer struct{}

// NewHelpRenderer creates a new help renderer
func NewHelpRenderer() *HelpRenderer {
	return &HelpRenderer{}
}

// RenderHelpContent generates the help text shown in the pager
func (r *HelpRenderer) RenderHelpContent() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("99")).
		MarginBottom(1)

	sectionStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("39")).
		MarginTop(1)

	keyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("220"))

	descStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("252"))

	noteStyle := lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("241"))

	width := 0
	for _, sec := range helpSections {
		for _, e := range sec.entries {
			if w := lipgloss.Width(e.keys); w > width {
				width = w
			}
		}
	}

	var help strings.Builder
	help.WriteString(titleStyle.Render("DSchema-1 Help"))
	help.WriteString("\n")

	for i, sec := range helpSections {
		if i > 0 {
			help.WriteString("\n")
		}
		help.WriteString(sectionStyle.Render(sec.title))
		help.WriteString("\n")
		for _, e := range sec.entries {
			pad := strings.Repeat(" ", width-lipgloss.Width(e.keys)+2)
			help.WriteString(fmt.Sprintf("  %s%s%s\n", keyStyle.Render(e.keys), pad, descStyle.Render(e.desc)))
		}
	}

	help.WriteString("\n")
	help.WriteString(noteStyle.Render("  The link refreshes on every change once a group and at least one course are selected."))
	help.WriteString("\n")
	help.WriteString(noteStyle.Render("  Subscribe with the webcal:// form to keep your calendar app in sync."))

	return help.String()
}

// HelpOps handles help operations
type HelpOps struct {
	program *tea.Program
}

// NewHelpOps creates a new help operations instance
func NewHelpOps(program *tea.Program) *HelpOps {
	return &HelpOps{
		program: program,
	}
}

// ShowHelpInPager shows help content using ov pager
func (h *HelpOps) ShowHelpInPager(helpContent string) error {
	if h == nil || h.program == nil {
		return fmt.Errorf("program not set")
	}

	if err := h.program.ReleaseTerminal(); err != nil {
		return err
	}

	defer func() {
		// Give ov time to exit before taking the terminal back
		time.Sleep(100 * time.Millisecond)
		_ = h.program.RestoreTerminal()
	}()

	root, err := oviewer.NewRoot(strings.NewReader(helpContent))
	if err != nil {
		return err
	}

	// Keep our screen intact after ov exits
	config := oviewer.NewConfig()
	config.IsWriteOnExit = false
	config.IsWriteOriginal = false
	root.SetConfig(config)

	return root.Run()
}
