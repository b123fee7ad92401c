package modes

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"dschema/internal/ui/input/types"
	"dschema/internal/ui/state"
)

type NormalMode struct {
	lastKeyWasG bool
	lastGTime   time.Time
}

func NewNormalMode() *NormalMode {
	return &NormalMode{}
}

func (m *NormalMode) Name() string {
	return "normal"
}

func (m *NormalMode) Enter(ctx types.Context) []types.Action {
	return nil
}

func (m *NormalMode) Exit(ctx types.Context) []types.Action {
	return nil
}

func (m *NormalMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	key := msg.String()

	// Any other key cancels the 'g' prefix
	if key != "g" {
		m.lastKeyWasG = false
	}

	switch key {
	case "ctrl+c":
		return []types.Action{types.QuitAction{Force: true}}, true

	case "q":
		return []types.Action{types.QuitAction{Force: false}}, true

	case "tab":
		return []types.Action{types.FocusAction{Direction: "next"}}, true

	case "shift+tab":
		return []types.Action{types.FocusAction{Direction: "prev"}}, true

	case "up", "k":
		return []types.Action{types.NavigateAction{Direction: "up"}}, true

	case "down", "j":
		return []types.Action{types.NavigateAction{Direction: "down"}}, true

	case "home":
		return []types.Action{types.NavigateAction{Direction: "home"}}, true

	case "end", "G":
		return []types.Action{types.NavigateAction{Direction: "end"}}, true

	case "g":
		if m.lastKeyWasG && time.Since(m.lastGTime) < 500*time.Millisecond {
			// gg - go to top
			m.lastKeyWasG = false
			return []types.Action{types.NavigateAction{Direction: "home"}}, true
		}
		m.lastKeyWasG = true
		m.lastGTime = time.Now()
		return nil, true

	case "enter", " ", "space":
		return []types.Action{types.ActivateAction{}}, true

	case "backspace", "delete", "x":
		// Only groups and courses hold a clearable selection
		switch ctx.FocusedSection() {
		case state.SectionGroups:
			if ctx.HasGroup() {
				return []types.Action{types.ClearAction{}}, true
			}
		case state.SectionCourses:
			return []types.Action{types.ClearAction{}}, true
		}
		return nil, true

	case "c", "y":
		return []types.Action{types.CopyAction{}}, true

	case "?":
		return []types.Action{types.ToggleHelpAction{}}, true
	}

	return nil, false
}
