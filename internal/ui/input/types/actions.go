package types

// Navigation actions
type NavigateAction struct {
	Direction string // "up", "down", "home", "end"
}

func (a NavigateAction) Type() string { return "navigate" }

type FocusAction struct {
	Direction string // "next" or "prev"
}

func (a FocusAction) Type() string { return "focus" }

// Selection actions

// ActivateAction acts on the row under the cursor: picks a group, toggles a
// course or modifier, or copies the link
type ActivateAction struct{}

func (a ActivateAction) Type() string { return "activate" }

// ClearAction empties the focused section's selection
type ClearAction struct{}

func (a ClearAction) Type() string { return "clear" }

// Command actions
type CopyAction struct{}

func (a CopyAction) Type() string { return "copy" }

type ToggleHelpAction struct{}

func (a ToggleHelpAction) Type() string { return "toggle_help" }

type DismissAction struct{}

func (a DismissAction) Type() string { return "dismiss" }

// Mode transition actions
type ChangeModeAction struct {
	Mode Mode
}

func (a ChangeModeAction) Type() string { return "change_mode" }

type QuitAction struct {
	Force bool // true for Ctrl+C, false for 'q'
}

func (a QuitAction) Type() string { return "quit" }
