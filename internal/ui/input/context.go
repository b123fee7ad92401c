package input

import (
	"dschema/internal/selection"
	"dschema/internal/ui/state"
)

// ModelContext implements the Context interface for the input handler
type ModelContext struct {
	State     *state.AppState
	Selection selection.State
}

// FocusedSection returns the section holding focus
func (c *ModelContext) FocusedSection() state.Section {
	return c.State.Focus
}

// CursorIndex returns the row under the cursor in the focused section
func (c *ModelContext) CursorIndex() int {
	return c.State.Cursor()
}

func (c *ModelContext) HasGroup() bool {
	return c.Selection.Group != nil
}

func (c *ModelContext) HasURL() bool {
	return c.Selection.HasURL()
}
