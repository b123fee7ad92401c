package commands

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	log "github.com/sirupsen/logrus"

	"dschema/internal/clipboard"
	"dschema/internal/eventbus"
	"dschema/internal/selection"
	"dschema/internal/urlservice"
)

// DefaultTimeout bounds a single URL service round trip
const DefaultTimeout = 15 * time.Second

// Executor turns selection effects into tea commands
type Executor struct {
	ctx *CommandContext
}

// NewExecutor creates a new command executor
func NewExecutor(client urlservice.Client, clip clipboard.Clipboard, bus eventbus.EventBus, timeout time.Duration) *Executor {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Executor{
		ctx: &CommandContext{
			Client:    client,
			Clipboard: clip,
			Bus:       bus,
			Timeout:   timeout,
		},
	}
}

// Run executes every effect and batches the resulting commands
func (e *Executor) Run(effects []selection.Effect) tea.Cmd {
	var cmds []tea.Cmd
	for _, effect := range effects {
		if cmd := e.command(effect); cmd != nil {
			cmds = append(cmds, cmd.Execute())
		}
	}
	switch len(cmds) {
	case 0:
		return nil
	case 1:
		return cmds[0]
	default:
		return tea.Batch(cmds...)
	}
}

func (e *Executor) command(effect selection.Effect) Command {
	switch eff := effect.(type) {
	case selection.SubmitEffect:
		return NewSubmitCommand(e.ctx, eff)
	case selection.CopyEffect:
		return NewCopyCommand(e.ctx, eff.URL)
	default:
		log.Warnf("unhandled effect %T", effect)
		return nil
	}
}
