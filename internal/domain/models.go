package domain

// Group represents a lab/seminar subgroup a student belongs to
type Group struct {
	Value string // short code, e.g. "A"
	Label string // display string
}

// Course represents a university course
type Course struct {
	Value string // course code, e.g. "EDA452"
	Label string // display name
}

// Modifiers alter how the generated calendar feed presents its content
type Modifiers struct {
	LocationNormalization bool // improved titles and location text
	IncludeExams          bool // include exam and signup events
}

// DefaultModifiers returns the modifiers used before the user touches them
func DefaultModifiers() Modifiers {
	return Modifiers{
		LocationNormalization: true,
		IncludeExams:          true,
	}
}

// SubscriptionRequest is the payload sent to the URL-generation service.
// Field order matches the wire body.
type SubscriptionRequest struct {
	Group       string   `json:"group"`
	ModLocation bool     `json:"modLocation"`
	ModExam     bool     `json:"modExam"`
	Courses     []string `json:"courses"`
}
