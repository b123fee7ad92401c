package domain

import "fmt"

var groups = []Group{
	{Value: "A", Label: "Group A"},
	{Value: "B", Label: "Group B"},
	{Value: "C", Label: "Group C"},
	{Value: "D", Label: "Group D"},
	{Value: "E", Label: "Group E"},
	{Value: "F", Label: "Group F"},
	{Value: "G", Label: "Group G"},
}

var courses = []Course{
	{Value: "EDA452", Label: "Grundläggande datorteknik"},
	{Value: "TDA555", Label: "Intro till funktionell programmering"},
	{Value: "TMV211", Label: "Inledande diskret matematik"},
	{Value: "DAT044", Label: "Intro till OOP"},
}

// Groups returns the fixed set of selectable groups
func Groups() []Group {
	return append([]Group(nil), groups...)
}

// Courses returns the fixed set of selectable courses
func Courses() []Course {
	return append([]Course(nil), courses...)
}

// DefaultCourses returns the starter course selection
func DefaultCourses() []Course {
	return Courses()
}

// DefaultCourseValues returns the course codes of the starter selection
func DefaultCourseValues() []string {
	return CourseValues(DefaultCourses())
}

// FindGroup looks up a group by its short code
func FindGroup(value string) (Group, bool) {
	for _, g := range groups {
		if g.Value == value {
			return g, true
		}
	}
	return Group{}, false
}

// FindCourse looks up a course by its code
func FindCourse(value string) (Course, bool) {
	for _, c := range courses {
		if c.Value == value {
			return c, true
		}
	}
	return Course{}, false
}

// CoursesByValue resolves course codes against the catalog, keeping order and
// dropping repeats
func CoursesByValue(values []string) ([]Course, error) {
	out := make([]Course, 0, len(values))
	for _, v := range values {
		c, ok := FindCourse(v)
		if !ok {
			return nil, fmt.Errorf("unknown course %q", v)
		}
		out = append(out, c)
	}
	return UniqueCourses(out), nil
}

// UniqueCourses removes courses whose value was already seen, preserving order
func UniqueCourses(in []Course) []Course {
	seen := make(map[string]bool, len(in))
	out := make([]Course, 0, len(in))
	for _, c := range in {
		if seen[c.Value] {
			continue
		}
		seen[c.Value] = true
		out = append(out, c)
	}
	return out
}

// CourseValues maps courses to their codes
func CourseValues(in []Course) []string {
	out := make([]string, len(in))
	for i, c := range in {
		out[i] = c.Value
	}
	return out
}
