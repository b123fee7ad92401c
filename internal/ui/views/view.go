package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"

	"dschema/internal/domain"
	"dschema/internal/selection"
	"dschema/internal/ui/state"
)

// Title is shown at the top of the screen
const Title = "DSchema-1 | Subscribe"

// Modifier labels, in row order
var ModifierLabels = [state.ModifierCount]string{
	"Improved titles (Course | Type)",
	"Include exams and signups",
}

// ViewState contains all the state needed for rendering
type ViewState struct {
	Width         int
	Height        int
	Selection     selection.State
	Sections      []state.Section
	Focus         state.Section
	Cursors       map[state.Section]int
	StatusMessage string
	StatusIsError bool
	Popup         *state.Popup
	HelpModel     help.Model
	Keys          help.KeyMap
}

// Renderer handles all view rendering
type Renderer struct {
	styles      *Styles
	popupRender *PopupRenderer
}

// NewRenderer creates a new renderer
func NewRenderer() *Renderer {
	styles := NewStyles()
	return &Renderer{
		styles:      styles,
		popupRender: NewPopupRenderer(styles),
	}
}

// Render produces the complete view
func (r *Renderer) Render(vs ViewState) string {
	content := &strings.Builder{}

	content.WriteString(r.renderTitle(vs))
	content.WriteString("\n")

	for i, sec := range vs.Sections {
		if i > 0 {
			content.WriteString("\n")
		}
		switch sec {
		case state.SectionGroups:
			content.WriteString(r.renderGroups(vs))
		case state.SectionCourses:
			content.WriteString(r.renderCourses(vs))
		case state.SectionModifiers:
			content.WriteString(r.renderModifiers(vs))
		case state.SectionSubscription:
			content.WriteString(r.renderSubscription(vs))
		}
	}

	if vs.Selection.Group == nil {
		content.WriteString("\n")
		content.WriteString(r.styles.Dim.Render("Choose your group to get started."))
		content.WriteString("\n")
	} else if len(vs.Selection.Courses) == 0 {
		content.WriteString("\n")
		content.WriteString(r.styles.Dim.Render("Select at least one course to get a calendar link."))
		content.WriteString("\n")
	}

	if vs.StatusMessage != "" {
		style := r.styles.Status
		if vs.StatusIsError {
			style = style.Foreground(lipgloss.Color("203"))
		}
		content.WriteString(style.Render(vs.StatusMessage))
		content.WriteString("\n")
	}

	// Push the help line to the bottom
	helpText := r.styles.Help.Render("Press ? for help")
	if vs.Keys != nil {
		helpText = vs.HelpModel.View(vs.Keys)
	}
	currentLines := strings.Count(content.String(), "\n") + 1
	availableLines := vs.Height - 2
	if availableLines <= 0 {
		availableLines = 22
	}
	if padding := availableLines - currentLines - 1; padding > 0 {
		content.WriteString(strings.Repeat("\n", padding))
	}
	content.WriteString("\n")
	content.WriteString(helpText)

	mainStyle := r.styles.Main
	if vs.Height > 0 {
		mainStyle = mainStyle.MaxHeight(vs.Height)
	}
	finalContent := mainStyle.Render(content.String())

	if vs.Popup != nil {
		style := r.styles.PopupSuccess
		if vs.Popup.IsError {
			style = r.styles.PopupError
		}
		body := r.styles.Title.UnsetMarginBottom().Render(vs.Popup.Title)
		if vs.Popup.Body != "" {
			body += "\n\n" + vs.Popup.Body
		}
		body += "\n\n" + r.styles.Dim.Render("enter to dismiss")
		return r.popupRender.RenderPopupOverlay(finalContent, body, vs.Height, vs.Width, style)
	}

	return finalContent
}

func (r *Renderer) renderTitle(vs ViewState) string {
	logo := r.styles.Title.Render(Title)

	var indicator string
	switch {
	case vs.Selection.Refreshing():
		indicator = r.styles.StatusLoading.Render("↻ Refreshing")
	case vs.Selection.Stale():
		indicator = r.styles.StatusWarning.Render("⚠ Out of date")
	}
	if indicator == "" {
		return logo
	}

	termWidth := vs.Width
	if termWidth <= 0 {
		termWidth = 80
	}
	// Account for main container padding
	padding := termWidth - 4 - lipgloss.Width(logo) - lipgloss.Width(indicator)
	if padding < 2 {
		padding = 2
	}
	return logo + strings.Repeat(" ", padding) + indicator
}

func (r *Renderer) sectionHeader(vs ViewState, sec state.Section, label string) string {
	if vs.Focus == sec {
		return r.styles.SectionFocused.Render("▸ " + label)
	}
	return r.styles.Section.Render("  " + label)
}

// row renders one list line with cursor marker and highlight
func (r *Renderer) row(vs ViewState, sec state.Section, idx int, text string) string {
	if vs.Focus == sec && vs.Cursors[sec] == idx {
		return r.styles.Highlight.Render("  › ") + text
	}
	return "    " + text
}

func (r *Renderer) renderGroups(vs ViewState) string {
	var b strings.Builder
	b.WriteString(r.sectionHeader(vs, state.SectionGroups, "Group"))
	b.WriteString("\n")
	for i, g := range domain.Groups() {
		mark := "( )"
		if vs.Selection.Group != nil && vs.Selection.Group.Value == g.Value {
			mark = r.styles.Checked.Render("(•)")
		}
		b.WriteString(r.row(vs, state.SectionGroups, i, fmt.Sprintf("%s %s", mark, g.Label)))
		b.WriteString("\n")
	}
	return b.String()
}

func (r *Renderer) renderCourses(vs ViewState) string {
	var b strings.Builder
	b.WriteString(r.sectionHeader(vs, state.SectionCourses, fmt.Sprintf("Courses (%d selected)", len(vs.Selection.Courses))))
	b.WriteString("\n")
	for i, c := range domain.Courses() {
		mark := "[ ]"
		if vs.Selection.HasCourse(c.Value) {
			mark = r.styles.Checked.Render("[x]")
		}
		text := fmt.Sprintf("%s %s  %s", mark, r.styles.Code.Render(c.Value), c.Label)
		b.WriteString(r.row(vs, state.SectionCourses, i, text))
		b.WriteString("\n")
	}
	return b.String()
}

func (r *Renderer) renderModifiers(vs ViewState) string {
	values := [state.ModifierCount]bool{
		vs.Selection.Modifiers.LocationNormalization,
		vs.Selection.Modifiers.IncludeExams,
	}

	var b strings.Builder
	b.WriteString(r.sectionHeader(vs, state.SectionModifiers, "Options"))
	b.WriteString("\n")
	for i, label := range ModifierLabels {
		mark := "[ ]"
		if values[i] {
			mark = r.styles.Checked.Render("[x]")
		}
		b.WriteString(r.row(vs, state.SectionModifiers, i, fmt.Sprintf("%s %s", mark, label)))
		b.WriteString("\n")
	}
	return b.String()
}

func (r *Renderer) renderSubscription(vs ViewState) string {
	sel := vs.Selection

	var b strings.Builder
	b.WriteString(r.sectionHeader(vs, state.SectionSubscription, "Calendar link"))
	b.WriteString("\n")

	switch {
	case sel.HasURL():
		b.WriteString(fmt.Sprintf("    Subscribe: %s\n", r.styles.Webcal.Render(sel.WebcalURL())))
		b.WriteString(fmt.Sprintf("    URL:       %s\n", r.styles.URL.Render(sel.CalendarURL)))
		button := r.styles.Button.Render("Copy URL")
		if vs.Focus == state.SectionSubscription {
			button = r.styles.ButtonFocused.Render("Copy URL")
		}
		b.WriteString(r.row(vs, state.SectionSubscription, 0, button))
		b.WriteString("\n")
	case sel.Refreshing():
		b.WriteString(r.styles.StatusLoading.Render("    Generating calendar link..."))
		b.WriteString("\n")
	}

	if sel.RefreshErr != nil {
		msg := "could not generate calendar link"
		if sel.HasURL() {
			msg = "could not refresh calendar link; showing the previous one"
		}
		b.WriteString(r.styles.StatusError.Render(fmt.Sprintf("    %s: %v", msg, sel.RefreshErr)))
		b.WriteString("\n")
	}
	return b.String()
}
