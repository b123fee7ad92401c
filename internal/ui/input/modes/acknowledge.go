package modes

import (
	tea "github.com/charmbracelet/bubbletea"

	"dschema/internal/ui/input/types"
)

// AcknowledgeMode is active while a copy result popup is shown
type AcknowledgeMode struct{}

func NewAcknowledgeMode() *AcknowledgeMode {
	return &AcknowledgeMode{}
}

func (m *AcknowledgeMode) Name() string {
	return "acknowledge"
}

func (m *AcknowledgeMode) Enter(ctx types.Context) []types.Action {
	return nil
}

func (m *AcknowledgeMode) Exit(ctx types.Context) []types.Action {
	return []types.Action{types.DismissAction{}}
}

func (m *AcknowledgeMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	switch msg.String() {
	case "ctrl+c":
		return []types.Action{types.QuitAction{Force: true}}, true
	case "enter", "esc", " ", "space", "q":
		return []types.Action{types.ChangeModeAction{Mode: types.ModeNormal}}, true
	}

	// Other keys are ignored while the popup is open
	return nil, true
}
