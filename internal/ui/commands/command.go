package commands

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	log "github.com/sirupsen/logrus"

	"dschema/internal/clipboard"
	"dschema/internal/eventbus"
	"dschema/internal/selection"
	"dschema/internal/urlservice"
)

// Command represents an executable action
type Command interface {
	Execute() tea.Cmd
}

// CommandContext provides context for command execution
type CommandContext struct {
	Client    urlservice.Client
	Clipboard clipboard.Clipboard
	Bus       eventbus.EventBus
	Timeout   time.Duration
}

// URLGeneratedMsg carries a successful response for submission Seq
type URLGeneratedMsg struct {
	Seq     uint64
	URL     string
	Elapsed time.Duration
}

// URLFailedMsg carries a failed submission
type URLFailedMsg struct {
	Seq     uint64
	Err     error
	Elapsed time.Duration
}

// CopyResultMsg reports the outcome of a clipboard copy
type CopyResultMsg struct {
	URL    string
	Method clipboard.Method
	Err    error
}

// SubmitCommand sends one subscription request to the URL service
type SubmitCommand struct {
	ctx    *CommandContext
	effect selection.SubmitEffect
}

// NewSubmitCommand creates a new submit command
func NewSubmitCommand(ctx *CommandContext, effect selection.SubmitEffect) *SubmitCommand {
	return &SubmitCommand{ctx: ctx, effect: effect}
}

// Execute publishes the submission and returns the round trip as a tea.Cmd
func (c *SubmitCommand) Execute() tea.Cmd {
	if c.ctx.Bus != nil {
		c.ctx.Bus.Publish(eventbus.SubmissionIssuedEvent{
			Seq:     c.effect.Seq,
			Request: c.effect.Request,
		})
	}
	log.WithFields(log.Fields{
		"seq":     c.effect.Seq,
		"group":   c.effect.Request.Group,
		"courses": len(c.effect.Request.Courses),
	}).Info("submitting selection")

	client, timeout, effect := c.ctx.Client, c.ctx.Timeout, c.effect
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		start := time.Now()
		url, err := client.GenerateURL(ctx, effect.Request)
		elapsed := time.Since(start)
		if err != nil {
			return URLFailedMsg{Seq: effect.Seq, Err: err, Elapsed: elapsed}
		}
		return URLGeneratedMsg{Seq: effect.Seq, URL: url, Elapsed: elapsed}
	}
}

// CopyCommand places the calendar URL on the clipboard
type CopyCommand struct {
	ctx *CommandContext
	url string
}

// NewCopyCommand creates a new copy command
func NewCopyCommand(ctx *CommandContext, url string) *CopyCommand {
	return &CopyCommand{ctx: ctx, url: url}
}

// Execute returns the copy as a tea.Cmd
func (c *CopyCommand) Execute() tea.Cmd {
	clip, url := c.ctx.Clipboard, c.url
	return func() tea.Msg {
		if clip == nil {
			return CopyResultMsg{URL: url, Err: clipboard.ErrUnavailable}
		}
		method, err := clip.Copy(url)
		return CopyResultMsg{URL: url, Method: method, Err: err}
	}
}
