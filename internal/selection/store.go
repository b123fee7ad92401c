package selection

import (
	"sync"

	"dschema/internal/domain"
)

// Store is a mutex-guarded SelectionStore for callers that touch the state
// from more than one goroutine. Every operation replaces the whole State
// under the lock, so readers never observe a half-applied response.
type Store struct {
	mu    sync.RWMutex
	state State
}

// NewStore creates a store seeded with the default course selection
func NewStore(defaultCourses []domain.Course) *Store {
	return &Store{state: New(defaultCourses)}
}

// Snapshot returns a copy of the current state
func (s *Store) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.clone()
}

// CalendarURL returns the current https URL
func (s *Store) CalendarURL() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.CalendarURL
}

// WebcalURL returns the webcal form of the current URL
func (s *Store) WebcalURL() string {
	return ToWebcal(s.CalendarURL())
}

func (s *Store) transition(fn func(State) (State, []Effect)) []Effect {
	s.mu.Lock()
	defer s.mu.Unlock()
	next, effects := fn(s.state)
	s.state = next
	return effects
}

// Init runs the startup derivation
func (s *Store) Init() []Effect {
	return s.transition(Init)
}

// SetGroup replaces the selected group
func (s *Store) SetGroup(g *domain.Group) []Effect {
	return s.transition(func(st State) (State, []Effect) { return SetGroup(st, g) })
}

// SetCourses replaces the course selection
func (s *Store) SetCourses(courses []domain.Course) []Effect {
	return s.transition(func(st State) (State, []Effect) { return SetCourses(st, courses) })
}

// ToggleCourse adds or removes one course
func (s *Store) ToggleCourse(c domain.Course) []Effect {
	return s.transition(func(st State) (State, []Effect) { return ToggleCourse(st, c) })
}

// SetLocationModifier replaces the location-normalization flag
func (s *Store) SetLocationModifier(v bool) []Effect {
	return s.transition(func(st State) (State, []Effect) { return SetLocationModifier(st, v) })
}

// SetExamModifier replaces the exam/signup flag
func (s *Store) SetExamModifier(v bool) []Effect {
	return s.transition(func(st State) (State, []Effect) { return SetExamModifier(st, v) })
}

// CopyURL returns the copy effect for the current URL, if any
func (s *Store) CopyURL() []Effect {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return CopyURL(s.state)
}

// ApplyURL folds a successful response into the state
func (s *Store) ApplyURL(seq uint64, url string) Outcome {
	s.mu.Lock()
	defer s.mu.Unlock()
	next, outcome := ApplyURL(s.state, seq, url)
	s.state = next
	return outcome
}

// ApplyFailure records a failed submission
func (s *Store) ApplyFailure(seq uint64, err error) Outcome {
	s.mu.Lock()
	defer s.mu.Unlock()
	next, outcome := ApplyFailure(s.state, seq, err)
	s.state = next
	return outcome
}
