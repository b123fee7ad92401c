package selection

import (
	"errors"

	"dschema/internal/domain"
)

// ErrEmptyURL is recorded when the service answers with an empty link
var ErrEmptyURL = errors.New("url service returned an empty url")

// State holds the user's selections and the last calendar URL.
// It is a value type; transitions return a new State.
type State struct {
	Group     *domain.Group
	Courses   []domain.Course
	Modifiers domain.Modifiers

	// CalendarURL is the https feed URL as received, empty until the first
	// successful round trip. It is only ever replaced by a newer non-empty value.
	CalendarURL string

	LastIssued uint64 // sequence number of the most recent submission
	InFlight   int    // submissions without a response yet
	RefreshErr error  // failure of the latest submission, nil once it succeeds
}

// New returns the initial state: no group, the given course set, default modifiers
func New(defaultCourses []domain.Course) State {
	return State{
		Courses:   domain.UniqueCourses(defaultCourses),
		Modifiers: domain.DefaultModifiers(),
	}
}

// Derivation maps the current selections to a request
func (s State) Derivation() Derivation {
	return Derive(s.Group, s.Courses, s.Modifiers)
}

// HasURL reports whether a calendar URL was ever produced
func (s State) HasURL() bool {
	return s.CalendarURL != ""
}

// WebcalURL is recomputed from CalendarURL on every call
func (s State) WebcalURL() string {
	return ToWebcal(s.CalendarURL)
}

// ShowSubscription reports whether the subscription section should be visible
func (s State) ShowSubscription() bool {
	return s.Group != nil && len(s.Courses) > 0
}

// Refreshing reports whether any submission is still waiting for a response
func (s State) Refreshing() bool {
	return s.InFlight > 0
}

// Stale reports whether the shown URL may not match the current selection
// because the latest refresh failed
func (s State) Stale() bool {
	return s.RefreshErr != nil && s.HasURL()
}

// HasCourse reports whether a course code is part of the selection
func (s State) HasCourse(value string) bool {
	for _, c := range s.Courses {
		if c.Value == value {
			return true
		}
	}
	return false
}

// clone detaches slices and pointers so transitions never alias the caller's state
func (s State) clone() State {
	out := s
	out.Courses = append([]domain.Course(nil), s.Courses...)
	if s.Group != nil {
		g := *s.Group
		out.Group = &g
	}
	return out
}
