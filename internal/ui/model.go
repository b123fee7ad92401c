package ui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	log "github.com/sirupsen/logrus"

	"dschema/internal/clipboard"
	"dschema/internal/domain"
	"dschema/internal/eventbus"
	"dschema/internal/selection"
	"dschema/internal/ui/commands"
	"dschema/internal/ui/input"
	inputtypes "dschema/internal/ui/input/types"
	"dschema/internal/ui/state"
	"dschema/internal/ui/views"
	"dschema/internal/urlservice"
)

const (
	statusTimeout = 3 * time.Second
	popupTimeout  = 2 * time.Second
)

// Deps are the collaborators the model drives
type Deps struct {
	Store     *selection.Store
	Client    urlservice.Client
	Clipboard clipboard.Clipboard
	Bus       eventbus.EventBus
	Timeout   time.Duration
}

// Model represents the UI state
type Model struct {
	bus   eventbus.EventBus
	store *selection.Store
	state *state.AppState

	help help.Model
	keys input.KeyMap

	renderer     *views.Renderer
	cmdExecutor  *commands.Executor
	inputHandler *input.Handler
	helpOps      *HelpOps

	program *tea.Program
}

// NewModel creates a new UI model
func NewModel(deps Deps) *Model {
	store := deps.Store
	if store == nil {
		store = selection.NewStore(domain.DefaultCourses())
	}

	return &Model{
		bus:          deps.Bus,
		store:        store,
		state:        state.NewAppState(),
		help:         help.New(),
		keys:         input.DefaultKeyMap(),
		renderer:     views.NewRenderer(),
		cmdExecutor:  commands.NewExecutor(deps.Client, deps.Clipboard, deps.Bus, deps.Timeout),
		inputHandler: input.New(),
		helpOps:      NewHelpOps(nil),
	}
}

// SetProgram sets the program reference for terminal management
func (m *Model) SetProgram(p *tea.Program) {
	m.program = p
	m.helpOps = NewHelpOps(p)
}

// Init runs the startup derivation
func (m *Model) Init() tea.Cmd {
	return m.cmdExecutor.Run(m.store.Init())
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.state.Width = msg.Width
		m.state.Height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		actions := m.inputHandler.HandleKey(msg, m.context())

		var cmds []tea.Cmd
		for _, action := range actions {
			if cmd := m.processAction(action); cmd != nil {
				cmds = append(cmds, cmd)
			}
		}
		return m, tea.Batch(cmds...)

	default:
		return m.handleNonKeyboardMsg(msg)
	}
}

// View renders the UI
func (m *Model) View() string {
	if m.state.InPagerMode {
		return ""
	}
	if m.state.Width == 0 {
		return "Loading..."
	}

	sel := m.store.Snapshot()
	return m.renderer.Render(views.ViewState{
		Width:         m.state.Width,
		Height:        m.state.Height,
		Selection:     sel,
		Sections:      state.VisibleSections(sel),
		Focus:         m.state.Focus,
		Cursors:       m.state.Cursors,
		StatusMessage: m.state.StatusMessage,
		StatusIsError: m.state.StatusIsError,
		Popup:         m.state.Popup,
		HelpModel:     m.help,
		Keys:          m.keys,
	})
}

func (m *Model) context() *input.ModelContext {
	return &input.ModelContext{
		State:     m.state,
		Selection: m.store.Snapshot(),
	}
}

func (m *Model) publish(event eventbus.DomainEvent) {
	if m.bus != nil {
		m.bus.Publish(event)
	}
}

// processAction executes a single input action
func (m *Model) processAction(action inputtypes.Action) tea.Cmd {
	log.Debugf("processAction: %T", action)
	switch a := action.(type) {
	case inputtypes.NavigateAction:
		switch a.Direction {
		case "up":
			m.state.MoveCursor(-1)
		case "down":
			m.state.MoveCursor(1)
		case "home":
			m.state.SetCursor(0)
		case "end":
			m.state.SetCursor(state.SectionLen(m.state.Focus) - 1)
		}

	case inputtypes.FocusAction:
		visible := state.VisibleSections(m.store.Snapshot())
		if a.Direction == "prev" {
			m.state.FocusPrev(visible)
		} else {
			m.state.FocusNext(visible)
		}

	case inputtypes.ActivateAction:
		return m.activate()

	case inputtypes.ClearAction:
		var effects []selection.Effect
		switch m.state.Focus {
		case state.SectionGroups:
			effects = m.store.SetGroup(nil)
		case state.SectionCourses:
			effects = m.store.SetCourses(nil)
		}
		return m.afterSelectionChange(effects)

	case inputtypes.CopyAction:
		return m.copyURL()

	case inputtypes.ToggleHelpAction:
		return m.fetchHelpPager(NewHelpRenderer().RenderHelpContent())

	case inputtypes.DismissAction:
		m.state.DismissPopup(0)

	case inputtypes.QuitAction:
		log.WithField("force", a.Force).Info("quitting")
		return tea.Quit
	}

	return nil
}

// activate acts on the row under the cursor in the focused section
func (m *Model) activate() tea.Cmd {
	cursor := m.state.Cursor()
	sel := m.store.Snapshot()

	var effects []selection.Effect
	switch m.state.Focus {
	case state.SectionGroups:
		groups := domain.Groups()
		if cursor >= len(groups) {
			return nil
		}
		g := groups[cursor]
		// Reselecting the current group only retries a failed refresh
		if sel.Group != nil && sel.Group.Value == g.Value && sel.RefreshErr == nil {
			return nil
		}
		effects = m.store.SetGroup(&g)

	case state.SectionCourses:
		courses := domain.Courses()
		if cursor >= len(courses) {
			return nil
		}
		effects = m.store.ToggleCourse(courses[cursor])

	case state.SectionModifiers:
		switch cursor {
		case 0:
			effects = m.store.SetLocationModifier(!sel.Modifiers.LocationNormalization)
		case 1:
			effects = m.store.SetExamModifier(!sel.Modifiers.IncludeExams)
		}

	case state.SectionSubscription:
		return m.copyURL()
	}

	return m.afterSelectionChange(effects)
}

// afterSelectionChange keeps focus on a visible section and runs the effects
func (m *Model) afterSelectionChange(effects []selection.Effect) tea.Cmd {
	m.state.ClampFocus(state.VisibleSections(m.store.Snapshot()))
	return m.cmdExecutor.Run(effects)
}

func (m *Model) copyURL() tea.Cmd {
	effects := m.store.CopyURL()
	if len(effects) == 0 {
		m.state.SetStatus("No calendar link yet", false)
		return clearStatusAfter(statusTimeout)
	}
	return m.cmdExecutor.Run(effects)
}

// fetchHelpPager returns a command that shows help using ov pager
func (m *Model) fetchHelpPager(helpContent string) tea.Cmd {
	if m.program == nil {
		return nil
	}
	return func() tea.Msg {
		m.program.Send(pauseRenderingMsg{})
		err := m.helpOps.ShowHelpInPager(helpContent)
		m.program.Send(resumeRenderingMsg{})
		return helpPagerMsg{err: err}
	}
}

func (m *Model) handleNonKeyboardMsg(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case commands.URLGeneratedMsg:
		m.applyURL(msg)
		return m, nil

	case commands.URLFailedMsg:
		return m, m.applyFailure(msg)

	case commands.CopyResultMsg:
		return m, m.showCopyResult(msg)

	case dismissPopupMsg:
		if m.state.Popup == nil || m.state.Popup.ID != msg.id {
			return m, nil
		}
		var cmds []tea.Cmd
		for _, action := range m.inputHandler.ChangeMode(inputtypes.ModeNormal, m.context()) {
			if cmd := m.processAction(action); cmd != nil {
				cmds = append(cmds, cmd)
			}
		}
		// The popup may have been shown outside acknowledge mode
		m.state.DismissPopup(msg.id)
		return m, tea.Batch(cmds...)

	case helpPagerMsg:
		if msg.err != nil {
			log.WithError(msg.err).Warn("help pager failed")
		}
		return m, nil

	case pauseRenderingMsg:
		m.state.InPagerMode = true
		return m, nil

	case resumeRenderingMsg:
		m.state.InPagerMode = false
		return m, nil

	case clearStatusMsg:
		m.state.SetStatus("", false)
		return m, nil
	}

	return m, nil
}

func (m *Model) applyURL(msg commands.URLGeneratedMsg) {
	outcome := m.store.ApplyURL(msg.Seq, msg.URL)
	logger := log.WithFields(log.Fields{"seq": msg.Seq, "outcome": outcome, "elapsed": msg.Elapsed})

	switch outcome {
	case selection.OutcomeApplied:
		logger.Info("calendar link updated")
		m.publish(eventbus.URLUpdatedEvent{Seq: msg.Seq, URL: msg.URL, Elapsed: msg.Elapsed})
	case selection.OutcomeStale:
		latest := m.store.Snapshot().LastIssued
		logger.WithField("latest", latest).Debug("discarding superseded response")
		m.publish(eventbus.ResponseDiscardedEvent{Seq: msg.Seq, Latest: latest})
	case selection.OutcomeRejected:
		logger.Warn("url service returned an empty link")
		m.publish(eventbus.SubmissionFailedEvent{Seq: msg.Seq, Err: selection.ErrEmptyURL, Elapsed: msg.Elapsed})
	}
}

func (m *Model) applyFailure(msg commands.URLFailedMsg) tea.Cmd {
	outcome := m.store.ApplyFailure(msg.Seq, msg.Err)
	logger := log.WithFields(log.Fields{"seq": msg.Seq, "outcome": outcome, "elapsed": msg.Elapsed})

	if outcome == selection.OutcomeStale {
		latest := m.store.Snapshot().LastIssued
		logger.WithError(msg.Err).Debug("ignoring failure of superseded request")
		m.publish(eventbus.ResponseDiscardedEvent{Seq: msg.Seq, Latest: latest})
		return nil
	}

	logger.WithError(msg.Err).Error("could not generate calendar link")
	m.publish(eventbus.SubmissionFailedEvent{Seq: msg.Seq, Err: msg.Err, Elapsed: msg.Elapsed})
	m.state.SetStatus("Could not reach the calendar service", true)
	return clearStatusAfter(statusTimeout)
}

func (m *Model) showCopyResult(msg commands.CopyResultMsg) tea.Cmd {
	var id int
	if msg.Err != nil {
		log.WithError(msg.Err).Warn("copy failed")
		m.publish(eventbus.CopyFailedEvent{Err: msg.Err})
		id = m.state.ShowPopup("Could not copy the link",
			fmt.Sprintf("%v\n\nCopy it manually:\n%s", msg.Err, msg.URL), true)
	} else {
		log.WithField("method", msg.Method).Info("calendar link copied")
		m.publish(eventbus.URLCopiedEvent{Method: string(msg.Method)})
		body := "The calendar link is on your clipboard."
		if msg.Method == clipboard.MethodOSC52 {
			body = "The calendar link was sent to your terminal clipboard."
		}
		id = m.state.ShowPopup("Link copied", body, false)
	}

	var cmds []tea.Cmd
	for _, action := range m.inputHandler.ChangeMode(inputtypes.ModeAcknowledge, m.context()) {
		if cmd := m.processAction(action); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	if msg.Err == nil {
		cmds = append(cmds, dismissPopupAfter(id, popupTimeout))
	}
	return tea.Batch(cmds...)
}

func clearStatusAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg { return clearStatusMsg{} })
}

func dismissPopupAfter(id int, d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg { return dismissPopupMsg{id: id} })
}
