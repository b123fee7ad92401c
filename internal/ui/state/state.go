package state

import (
	"dschema/internal/domain"
	"dschema/internal/selection"
)

// Section identifies one focusable block of the screen
type Section int

const (
	SectionGroups Section = iota
	SectionCourses
	SectionModifiers
	SectionSubscription
)

func (s Section) String() string {
	switch s {
	case SectionGroups:
		return "groups"
	case SectionCourses:
		return "courses"
	case SectionModifiers:
		return "modifiers"
	case SectionSubscription:
		return "subscription"
	default:
		return "unknown"
	}
}

// ModifierCount is the number of rows in the modifiers section
const ModifierCount = 2

// Popup is a transient acknowledgment shown over the main view
type Popup struct {
	ID      int
	Title   string
	Body    string
	IsError bool
}

// AppState contains the UI-only state; selections live in the selection store
type AppState struct {
	Focus   Section
	Cursors map[Section]int

	// UI state
	Width         int
	Height        int
	StatusMessage string
	StatusIsError bool
	Popup         *Popup
	InPagerMode   bool

	nextPopupID int
}

// NewAppState creates a new application state
func NewAppState() *AppState {
	return &AppState{
		Focus:   SectionGroups,
		Cursors: make(map[Section]int),
	}
}

// VisibleSections lists the sections shown for the given selection.
// Courses and modifiers appear once a group is chosen; the subscription
// block only while courses are non-empty.
func VisibleSections(sel selection.State) []Section {
	sections := []Section{SectionGroups}
	if sel.Group != nil {
		sections = append(sections, SectionCourses, SectionModifiers)
	}
	if sel.ShowSubscription() {
		sections = append(sections, SectionSubscription)
	}
	return sections
}

// SectionLen returns the number of rows in a section
func SectionLen(sec Section) int {
	switch sec {
	case SectionGroups:
		return len(domain.Groups())
	case SectionCourses:
		return len(domain.Courses())
	case SectionModifiers:
		return ModifierCount
	case SectionSubscription:
		return 1
	default:
		return 0
	}
}

// Cursor returns the row under the cursor in the focused section
func (s *AppState) Cursor() int {
	return s.Cursors[s.Focus]
}

// MoveCursor moves the cursor by delta, clamped to the section
func (s *AppState) MoveCursor(delta int) {
	s.SetCursor(s.Cursors[s.Focus] + delta)
}

// SetCursor places the cursor in the focused section, clamped to its rows
func (s *AppState) SetCursor(idx int) {
	n := SectionLen(s.Focus)
	if idx >= n {
		idx = n - 1
	}
	if idx < 0 {
		idx = 0
	}
	s.Cursors[s.Focus] = idx
}

// FocusNext moves focus to the following visible section, wrapping around
func (s *AppState) FocusNext(visible []Section) {
	s.shiftFocus(visible, 1)
}

// FocusPrev moves focus to the preceding visible section, wrapping around
func (s *AppState) FocusPrev(visible []Section) {
	s.shiftFocus(visible, -1)
}

func (s *AppState) shiftFocus(visible []Section, step int) {
	if len(visible) == 0 {
		return
	}
	idx := indexOf(visible, s.Focus)
	if idx < 0 {
		s.Focus = visible[0]
		return
	}
	s.Focus = visible[(idx+step+len(visible))%len(visible)]
}

// ClampFocus moves focus back to the nearest earlier visible section when
// the focused one disappeared
func (s *AppState) ClampFocus(visible []Section) {
	if indexOf(visible, s.Focus) >= 0 || len(visible) == 0 {
		return
	}
	best := visible[0]
	for _, sec := range visible {
		if sec < s.Focus {
			best = sec
		}
	}
	s.Focus = best
}

// ShowPopup replaces any current popup and returns its id
func (s *AppState) ShowPopup(title, body string, isError bool) int {
	s.nextPopupID++
	s.Popup = &Popup{ID: s.nextPopupID, Title: title, Body: body, IsError: isError}
	return s.nextPopupID
}

// DismissPopup hides the popup; a non-zero id only dismisses that popup
func (s *AppState) DismissPopup(id int) bool {
	if s.Popup == nil || (id != 0 && s.Popup.ID != id) {
		return false
	}
	s.Popup = nil
	return true
}

// SetStatus sets the status bar message
func (s *AppState) SetStatus(msg string, isError bool) {
	s.StatusMessage = msg
	s.StatusIsError = isError
}

func indexOf(sections []Section, sec Section) int {
	for i, candidate := range sections {
		if candidate == sec {
			return i
		}
	}
	return -1
}
