package selection

import "dschema/internal/domain"

// Effect describes work the caller must perform after a transition
type Effect interface {
	isEffect()
}

// SubmitEffect asks the caller to send Request to the URL-generation service
// and report the outcome with ApplyURL or ApplyFailure using Seq.
type SubmitEffect struct {
	Seq     uint64
	Request domain.SubscriptionRequest
}

func (SubmitEffect) isEffect() {}

// CopyEffect asks the caller to place URL on the clipboard
type CopyEffect struct {
	URL string
}

func (CopyEffect) isEffect() {}

// Outcome tells how a response was folded into the state
type Outcome int

const (
	OutcomeApplied  Outcome = iota // URL replaced
	OutcomeStale                   // response belongs to a superseded request
	OutcomeRejected                // latest request answered with an unusable URL
	OutcomeFailed                  // latest request failed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeApplied:
		return "applied"
	case OutcomeStale:
		return "stale"
	case OutcomeRejected:
		return "rejected"
	case OutcomeFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Init runs the startup derivation. With no group selected it yields no effects,
// but it is always evaluated so a later group choice follows the same path.
func Init(s State) (State, []Effect) {
	return s.clone().submit()
}

// SetGroup replaces the selected group; nil clears it
func SetGroup(s State, g *domain.Group) (State, []Effect) {
	next := s.clone()
	next.Group = nil
	if g != nil {
		gg := *g
		next.Group = &gg
	}
	return next.submit()
}

// SetCourses replaces the course set wholesale. An empty set is accepted and
// leaves CalendarURL untouched.
func SetCourses(s State, courses []domain.Course) (State, []Effect) {
	next := s.clone()
	next.Courses = domain.UniqueCourses(courses)
	return next.submit()
}

// SetLocationModifier replaces the location-normalization flag
func SetLocationModifier(s State, v bool) (State, []Effect) {
	next := s.clone()
	next.Modifiers.LocationNormalization = v
	return next.submit()
}

// SetExamModifier replaces the exam/signup flag
func SetExamModifier(s State, v bool) (State, []Effect) {
	next := s.clone()
	next.Modifiers.IncludeExams = v
	return next.submit()
}

// ToggleCourse adds or removes a course and commits the full resulting set
func ToggleCourse(s State, c domain.Course) (State, []Effect) {
	courses := make([]domain.Course, 0, len(s.Courses)+1)
	found := false
	for _, existing := range s.Courses {
		if existing.Value == c.Value {
			found = true
			continue
		}
		courses = append(courses, existing)
	}
	if !found {
		courses = append(courses, c)
	}
	return SetCourses(s, courses)
}

// CopyURL yields a copy effect for the exact https URL, or nothing before
// the first URL exists
func CopyURL(s State) []Effect {
	if !s.HasURL() {
		return nil
	}
	return []Effect{CopyEffect{URL: s.CalendarURL}}
}

// submit derives from the complete current state and issues a new sequence
// number when the selection is ready
func (s State) submit() (State, []Effect) {
	req, ok := s.Derivation().Request()
	if !ok {
		return s, nil
	}

	s.LastIssued++
	s.InFlight++
	s.RefreshErr = nil
	return s, []Effect{SubmitEffect{Seq: s.LastIssued, Request: req}}
}

// ApplyURL folds a successful response into the state. Only the response to
// the most recently issued request may replace CalendarURL (last request wins);
// earlier responses are reported as stale whatever order they arrive in.
func ApplyURL(s State, seq uint64, url string) (State, Outcome) {
	next := s.clone()
	next.settle()

	if seq != next.LastIssued {
		return next, OutcomeStale
	}
	if url == "" {
		next.RefreshErr = ErrEmptyURL
		return next, OutcomeRejected
	}

	next.CalendarURL = url
	next.RefreshErr = nil
	return next, OutcomeApplied
}

// ApplyFailure records a failed submission. The last known URL is kept.
func ApplyFailure(s State, seq uint64, err error) (State, Outcome) {
	next := s.clone()
	next.settle()

	if seq != next.LastIssued {
		return next, OutcomeStale
	}
	next.RefreshErr = err
	return next, OutcomeFailed
}

func (s *State) settle() {
	if s.InFlight > 0 {
		s.InFlight--
	}
}
