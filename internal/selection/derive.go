package selection

import "dschema/internal/domain"

// Kind distinguishes a complete selection from one that cannot be submitted yet
type Kind int

const (
	// KindIncomplete means no group is chosen or the course set is empty.
	// It is an expected state, not an error.
	KindIncomplete Kind = iota
	// KindReady means the selection maps to a well-formed request
	KindReady
)

func (k Kind) String() string {
	switch k {
	case KindReady:
		return "ready"
	default:
		return "incomplete"
	}
}

// Derivation is the result of mapping selections to a request
type Derivation struct {
	Kind    Kind
	request domain.SubscriptionRequest
}

// Request returns the derived request when the selection is ready
func (d Derivation) Request() (domain.SubscriptionRequest, bool) {
	if d.Kind != KindReady {
		return domain.SubscriptionRequest{}, false
	}
	req := d.request
	req.Courses = append([]string(nil), d.request.Courses...)
	return req, true
}

// Derive builds the canonical request for the given selections. Courses are
// sent by code, never by label.
func Derive(group *domain.Group, courses []domain.Course, mods domain.Modifiers) Derivation {
	if group == nil || len(courses) == 0 {
		return Derivation{Kind: KindIncomplete}
	}

	return Derivation{
		Kind: KindReady,
		request: domain.SubscriptionRequest{
			Group:       group.Value,
			ModLocation: mods.LocationNormalization,
			ModExam:     mods.IncludeExams,
			Courses:     domain.CourseValues(courses),
		},
	}
}
