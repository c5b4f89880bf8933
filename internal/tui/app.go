// Package tui provides the terminal user interface for the registration wizard.
package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"
	"github.com/saltmarsh/regwiz/internal/client"
	"github.com/saltmarsh/regwiz/internal/store"
	"github.com/saltmarsh/regwiz/internal/wizard"
)

// Model is the main TUI model. It owns the wizard controller and turns the
// controller's call effects into tea commands; call results come back as
// messages and are handed to the controller, whose state guards drop
// anything stale.
type Model struct {
	controller *wizard.Controller
	client     *client.Client
	store      *store.Store

	width  int
	height int

	form      FormModel
	indicator NetIndicator

	showHelp     bool
	showHistory  bool
	history      []*store.Registration
	historyErr   error
	historyLimit int
}

// preRegisterResultMsg resolves the pre-register call.
type preRegisterResultMsg struct {
	token string
	err   error
}

// registerResultMsg resolves the register call.
type registerResultMsg struct {
	result string
	err    error
}

// historyLoadedMsg delivers the registration history for the overlay.
type historyLoadedMsg struct {
	regs []*store.Registration
	err  error
}

// New creates the TUI model. The store may be nil, which disables the
// history overlay and recording.
func New(controller *wizard.Controller, c *client.Client, s *store.Store, historyLimit int) Model {
	r, _ := controller.State().(wizard.Ready)
	return Model{
		controller:   controller,
		client:       c,
		store:        s,
		form:         NewFormModel(controller.Host(), r.Name, r.PortInput),
		indicator:    NewNetIndicator(),
		historyLimit: historyLimit,
	}
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.form.Focus(),
		m.indicator.Init(),
	)
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case preRegisterResultMsg:
		m.controller.OnPreRegisterResult(msg.token, msg.err)
		m.indicator.SetActivity(NetActivityIdle)
		return m, nil

	case registerResultMsg:
		m.controller.OnRegisterResult(msg.result, msg.err)
		m.indicator.SetActivity(NetActivityIdle)
		m.recordIfRegistered()
		return m, nil

	case historyLoadedMsg:
		m.history = msg.regs
		m.historyErr = msg.err
		return m, nil

	case NetIndicatorTickMsg:
		var cmd tea.Cmd
		m.indicator, cmd = m.indicator.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Ctrl+C quits from anywhere, including while typing.
	if key.Matches(msg, keys.ForceQuit) {
		return m, tea.Quit
	}

	// Overlays swallow keys until dismissed.
	if m.showHelp {
		m.showHelp = false
		return m, nil
	}
	if m.showHistory {
		if key.Matches(msg, keys.History) || key.Matches(msg, keys.Escape) {
			m.showHistory = false
		}
		return m, nil
	}

	// While the form is editable, most keys belong to the text inputs.
	if _, ok := m.controller.State().(wizard.Ready); ok {
		return m.handleFormKey(msg)
	}

	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, keys.History):
		return m.openHistory()

	case key.Matches(msg, keys.Reset):
		m.reset()
		return m, m.form.Focus()

	case key.Matches(msg, keys.Enter):
		if call := m.controller.SubmitRegister(); call != nil {
			m.indicator.SetActivity(NetActivityRegister)
			return m, m.issueRegister(call)
		}
		return m, nil
	}

	return m, nil
}

func (m Model) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Escape):
		return m, tea.Quit

	case key.Matches(msg, keys.Tab):
		m.form.FocusNext()
		return m, nil

	case key.Matches(msg, keys.ShiftTab):
		m.form.FocusPrev()
		return m, nil

	case key.Matches(msg, keys.Enter):
		m.syncForm()
		if call := m.controller.SubmitPreRegister(); call != nil {
			m.indicator.SetActivity(NetActivityPreRegister)
			return m, m.issuePreRegister(call)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.form, cmd = m.form.Update(msg)
	m.syncForm()
	return m, cmd
}

// syncForm pushes the form values into the controller. The controller
// ignores the edits outside Ready, so this is safe to call unconditionally.
func (m *Model) syncForm() {
	m.controller.SetHost(m.form.Host())
	m.controller.SetName(m.form.Name())
	m.controller.SetPort(m.form.Port())
}

// reset re-seeds the wizard and projects the seeded values back into the
// form fields.
func (m *Model) reset() {
	m.controller.Reset()
	m.indicator.SetActivity(NetActivityIdle)

	if r, ok := m.controller.State().(wizard.Ready); ok {
		m.form.Seed(m.controller.Host(), r.Name, r.PortInput)
	}
}

func (m Model) openHistory() (tea.Model, tea.Cmd) {
	if m.store == nil {
		return m, nil
	}
	m.showHistory = true

	s, limit := m.store, m.historyLimit
	return m, func() tea.Msg {
		regs, err := s.RecentRegistrations(limit)
		return historyLoadedMsg{regs: regs, err: err}
	}
}

// recordIfRegistered persists a completed registration. Best effort: a
// store failure is logged and never surfaces as a wizard error.
func (m *Model) recordIfRegistered() {
	if m.store == nil {
		return
	}
	s, ok := m.controller.State().(wizard.Registered)
	if !ok {
		return
	}

	if _, err := m.store.RecordRegistration(s.Name, m.controller.Host(), s.Port, s.Token, s.Result); err != nil {
		log.Warn().Err(err).Msg("failed to record registration")
	}
}

func (m Model) issuePreRegister(call *wizard.PreRegisterCall) tea.Cmd {
	c := m.client
	return func() tea.Msg {
		token, err := c.PreRegister(context.Background(), call.Host, call.Port, call.Name)
		return preRegisterResultMsg{token: token, err: err}
	}
}

func (m Model) issueRegister(call *wizard.RegisterCall) tea.Cmd {
	c := m.client
	return func() tea.Msg {
		result, err := c.Register(context.Background(), call.Host, call.Port, call.Token)
		return registerResultMsg{result: result, err: err}
	}
}

// Key bindings
var keys = struct {
	Quit      key.Binding
	ForceQuit key.Binding
	Help      key.Binding
	Escape    key.Binding
	Enter     key.Binding
	Tab       key.Binding
	ShiftTab  key.Binding
	Reset     key.Binding
	History   key.Binding
}{
	Quit:      key.NewBinding(key.WithKeys("q")),
	ForceQuit: key.NewBinding(key.WithKeys("ctrl+c")),
	Help:      key.NewBinding(key.WithKeys("?")),
	Escape:    key.NewBinding(key.WithKeys("esc")),
	Enter:     key.NewBinding(key.WithKeys("enter")),
	Tab:       key.NewBinding(key.WithKeys("tab")),
	ShiftTab:  key.NewBinding(key.WithKeys("shift+tab")),
	Reset:     key.NewBinding(key.WithKeys("r")),
	History:   key.NewBinding(key.WithKeys("h")),
}
