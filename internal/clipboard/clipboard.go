package clipboard

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/atotto/clipboard"
	"github.com/aymanbagabas/go-osc52/v2"
	log "github.com/sirupsen/logrus"
)

// ErrUnavailable is returned when no clipboard mechanism accepted the text
var ErrUnavailable = errors.New("clipboard unavailable")

// Method names the mechanism that performed a copy
type Method string

const (
	MethodSystem Method = "system"
	MethodOSC52  Method = "osc52"
)

// Clipboard places text on the user's clipboard
type Clipboard interface {
	Copy(text string) (Method, error)
}

// Copier writes to the system clipboard and falls back to an OSC 52 escape
// sequence on the terminal when no system clipboard tool is present.
// The clipboard is held for the duration of one Copy call only.
type Copier struct {
	mu       sync.Mutex
	write    func(string) error
	fallback io.Writer
}

// New returns a Copier using the system clipboard. A nil fallback disables OSC 52.
func New(fallback io.Writer) *Copier {
	write := clipboard.WriteAll
	if clipboard.Unsupported {
		write = nil
	}
	return NewWithWriter(write, fallback)
}

// NewWithWriter returns a Copier with a custom system writer. A nil write
// means there is no system clipboard.
func NewWithWriter(write func(string) error, fallback io.Writer) *Copier {
	return &Copier{write: write, fallback: fallback}
}

// Copy places text on the clipboard and reports which mechanism did it
func (c *Copier) Copy(text string) (method Method, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	defer func() {
		if r := recover(); r != nil {
			method = ""
			err = fmt.Errorf("%w: %v", ErrUnavailable, r)
		}
	}()

	var systemErr error
	if c.write != nil {
		if systemErr = c.write(text); systemErr == nil {
			return MethodSystem, nil
		}
		log.WithError(systemErr).Debug("system clipboard write failed")
	}

	if c.fallback == nil {
		if systemErr != nil {
			return "", fmt.Errorf("%w: %v", ErrUnavailable, systemErr)
		}
		return "", ErrUnavailable
	}

	seq := osc52.New(text)
	if inTmux() {
		seq = seq.Tmux()
	}
	if _, err := seq.WriteTo(c.fallback); err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return MethodOSC52, nil
}

func inTmux() bool {
	return os.Getenv("TMUX") != "" ||
		strings.HasPrefix(os.Getenv("TERM"), "tmux") ||
		strings.HasPrefix(os.Getenv("TERM"), "screen")
}
