package tui

import (
	"errors"
	"regexp"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/saltmarsh/regwiz/internal/client"
	"github.com/saltmarsh/regwiz/internal/store"
	"github.com/saltmarsh/regwiz/internal/wizard"
)

// ansiRegex matches ANSI escape codes
var ansiRegex = regexp.MustCompile(`\x1b\[[0-9;]*m`)

// stripANSI removes all ANSI escape codes from a string
func stripANSI(s string) string {
	return ansiRegex.ReplaceAllString(s, "")
}

func setupTestModel(t *testing.T) (Model, func()) {
	t.Helper()

	s, err := store.OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory() error: %v", err)
	}

	controller := wizard.New("localhost", "3000")
	model := New(controller, client.New(), s, 50)
	model.width = 80
	model.height = 24

	cleanup := func() {
		s.Close()
	}

	return model, cleanup
}

// pressKey runs one key through Update and returns the updated model and
// any command.
func pressKey(t *testing.T, m Model, msg tea.KeyMsg) (Model, tea.Cmd) {
	t.Helper()

	newModel, cmd := m.Update(msg)
	return newModel.(Model), cmd
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestModelInit(t *testing.T) {
	m, cleanup := setupTestModel(t)
	defer cleanup()

	if cmd := m.Init(); cmd == nil {
		t.Error("expected Init to return a command")
	}
}

func TestModelViewWithZeroSize(t *testing.T) {
	m, cleanup := setupTestModel(t)
	defer cleanup()

	m.width = 0
	m.height = 0

	if view := m.View(); view != "Loading..." {
		t.Errorf("expected 'Loading...', got %s", view)
	}
}

func TestModelWindowResize(t *testing.T) {
	m, cleanup := setupTestModel(t)
	defer cleanup()

	newModel, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	m = newModel.(Model)

	if m.width != 120 || m.height != 40 {
		t.Errorf("expected 120x40, got %dx%d", m.width, m.height)
	}
}

func TestFormViewShowsFields(t *testing.T) {
	m, cleanup := setupTestModel(t)
	defer cleanup()

	view := stripANSI(m.View())
	for _, want := range []string{"Host", "Name", "Port", "3000", "localhost"} {
		if !strings.Contains(view, want) {
			t.Errorf("expected view to contain %q", want)
		}
	}
}

func TestTypingUpdatesController(t *testing.T) {
	m, cleanup := setupTestModel(t)
	defer cleanup()

	// Name field has initial focus.
	m, _ = pressKey(t, m, keyRunes("alice"))

	r, ok := m.controller.State().(wizard.Ready)
	if !ok {
		t.Fatalf("expected Ready, got %s", wizard.StateName(m.controller.State()))
	}
	if r.Name != "alice" {
		t.Errorf("expected controller name=alice, got %q", r.Name)
	}
}

func TestSubmitWithInvalidPort(t *testing.T) {
	m, cleanup := setupTestModel(t)
	defer cleanup()

	m.form.inputs[fieldPort].SetValue("not-a-port")
	m.syncForm()

	m, cmd := pressKey(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	if cmd != nil {
		t.Error("expected no call command for invalid port")
	}
	if _, ok := m.controller.State().(wizard.Ready); !ok {
		t.Fatalf("expected Ready, got %s", wizard.StateName(m.controller.State()))
	}
	if view := stripANSI(m.View()); !strings.Contains(view, "non-numeric port") {
		t.Error("expected field error in view")
	}
}

func TestSubmitWithValidPort(t *testing.T) {
	m, cleanup := setupTestModel(t)
	defer cleanup()

	m.form.inputs[fieldName].SetValue("alice")
	m.syncForm()

	m, cmd := pressKey(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	if cmd == nil {
		t.Fatal("expected a call command")
	}
	if _, ok := m.controller.State().(wizard.PreRegistering); !ok {
		t.Fatalf("expected PreRegistering, got %s", wizard.StateName(m.controller.State()))
	}
	if m.indicator.Activity() != NetActivityPreRegister {
		t.Error("expected pre-register activity on the indicator")
	}
}

// submitPreRegister walks a model into PreRegistering.
func submitPreRegister(t *testing.T, m Model) Model {
	t.Helper()

	m.form.inputs[fieldName].SetValue("alice")
	m.syncForm()

	m, cmd := pressKey(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a call command")
	}
	return m
}

func TestPreRegisterResult(t *testing.T) {
	m, cleanup := setupTestModel(t)
	defer cleanup()

	m = submitPreRegister(t, m)

	newModel, _ := m.Update(preRegisterResultMsg{token: "TOK123"})
	m = newModel.(Model)

	if _, ok := m.controller.State().(wizard.PreRegistered); !ok {
		t.Fatalf("expected PreRegistered, got %s", wizard.StateName(m.controller.State()))
	}
	if m.indicator.Activity() != NetActivityIdle {
		t.Error("expected indicator back to idle")
	}
	if view := stripANSI(m.View()); !strings.Contains(view, "TOK123") {
		t.Error("expected token in view")
	}
}

func TestPreRegisterFailure(t *testing.T) {
	m, cleanup := setupTestModel(t)
	defer cleanup()

	m = submitPreRegister(t, m)

	newModel, _ := m.Update(preRegisterResultMsg{err: errors.New("http error 500: boom")})
	m = newModel.(Model)

	if _, ok := m.controller.State().(wizard.PreRegisterFailed); !ok {
		t.Fatalf("expected PreRegisterFailed, got %s", wizard.StateName(m.controller.State()))
	}
	view := stripANSI(m.View())
	if !strings.Contains(view, "boom") {
		t.Error("expected error message in view")
	}
	if !strings.Contains(view, "start over") {
		t.Error("expected reset hint in view")
	}
}

func TestFullFlowRecordsHistory(t *testing.T) {
	m, cleanup := setupTestModel(t)
	defer cleanup()

	m = submitPreRegister(t, m)

	newModel, _ := m.Update(preRegisterResultMsg{token: "TOK123"})
	m = newModel.(Model)

	m, cmd := pressKey(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a register call command")
	}

	newModel, _ = m.Update(registerResultMsg{result: "welcome aboard, alice"})
	m = newModel.(Model)

	s, ok := m.controller.State().(wizard.Registered)
	if !ok {
		t.Fatalf("expected Registered, got %s", wizard.StateName(m.controller.State()))
	}
	if s.Result != "welcome aboard, alice" {
		t.Errorf("unexpected result: %q", s.Result)
	}

	regs, err := m.store.RecentRegistrations(10)
	if err != nil {
		t.Fatalf("RecentRegistrations() error: %v", err)
	}
	if len(regs) != 1 {
		t.Fatalf("expected 1 recorded registration, got %d", len(regs))
	}
	if regs[0].Name != "alice" || regs[0].Token != "TOK123" {
		t.Errorf("unexpected recorded registration: %+v", regs[0])
	}
}

func TestStaleResultAfterReset(t *testing.T) {
	m, cleanup := setupTestModel(t)
	defer cleanup()

	m = submitPreRegister(t, m)

	// Reset while the call is in flight.
	m, _ = pressKey(t, m, keyRunes("r"))
	if _, ok := m.controller.State().(wizard.Ready); !ok {
		t.Fatalf("expected Ready after reset, got %s", wizard.StateName(m.controller.State()))
	}

	// The late result must be dropped.
	newModel, _ := m.Update(preRegisterResultMsg{token: "TOK123"})
	m = newModel.(Model)

	r, ok := m.controller.State().(wizard.Ready)
	if !ok {
		t.Fatalf("expected Ready, got %s", wizard.StateName(m.controller.State()))
	}
	if r.Name != "alice" || r.PortInput != "3000" {
		t.Errorf("reset did not seed form values: %+v", r)
	}
}

func TestResetSeedsFormFields(t *testing.T) {
	m, cleanup := setupTestModel(t)
	defer cleanup()

	m = submitPreRegister(t, m)
	m, _ = pressKey(t, m, keyRunes("r"))

	if m.form.Name() != "alice" {
		t.Errorf("expected name field re-seeded, got %q", m.form.Name())
	}
	if m.form.Port() != "3000" {
		t.Errorf("expected port field re-seeded, got %q", m.form.Port())
	}
}

func TestHelpOverlay(t *testing.T) {
	m, cleanup := setupTestModel(t)
	defer cleanup()

	// Help is reachable outside the form.
	m = submitPreRegister(t, m)
	m, _ = pressKey(t, m, keyRunes("?"))

	if view := stripANSI(m.View()); !strings.Contains(view, "Keyboard Shortcuts") {
		t.Error("expected help overlay")
	}

	// Any key closes it.
	m, _ = pressKey(t, m, keyRunes("x"))
	if view := stripANSI(m.View()); strings.Contains(view, "Keyboard Shortcuts") {
		t.Error("expected help overlay closed")
	}
}

func TestHistoryOverlay(t *testing.T) {
	m, cleanup := setupTestModel(t)
	defer cleanup()

	if _, err := m.store.RecordRegistration("carol", "localhost", 3000, "TOK9", "ok"); err != nil {
		t.Fatalf("RecordRegistration() error: %v", err)
	}

	m = submitPreRegister(t, m)

	m, cmd := pressKey(t, m, keyRunes("h"))
	if cmd == nil {
		t.Fatal("expected a history load command")
	}

	newModel, _ := m.Update(cmd())
	m = newModel.(Model)

	view := stripANSI(m.View())
	if !strings.Contains(view, "Registration history") {
		t.Error("expected history overlay")
	}
	if !strings.Contains(view, "carol") {
		t.Error("expected recorded registration in history view")
	}

	// h closes it again.
	m, _ = pressKey(t, m, keyRunes("h"))
	if view := stripANSI(m.View()); strings.Contains(view, "Registration history") {
		t.Error("expected history overlay closed")
	}
}

func TestDistinctViewsPerState(t *testing.T) {
	m, cleanup := setupTestModel(t)
	defer cleanup()

	// Ready
	if view := stripANSI(m.View()); !strings.Contains(view, "Host") {
		t.Error("Ready view missing form")
	}

	// PreRegistering
	m = submitPreRegister(t, m)
	if view := stripANSI(m.View()); !strings.Contains(view, "Requesting a registration token") {
		t.Error("PreRegistering view missing in-flight text")
	}

	// PreRegistered
	newModel, _ := m.Update(preRegisterResultMsg{token: "TOK123"})
	m = newModel.(Model)
	if view := stripANSI(m.View()); !strings.Contains(view, "Token received") {
		t.Error("PreRegistered view missing token text")
	}

	// Registering
	m, _ = pressKey(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if view := stripANSI(m.View()); !strings.Contains(view, "Registering alice") {
		t.Error("Registering view missing in-flight text")
	}

	// Registered
	newModel, _ = m.Update(registerResultMsg{result: "done"})
	m = newModel.(Model)
	if view := stripANSI(m.View()); !strings.Contains(view, "Registered!") {
		t.Error("Registered view missing success text")
	}
}
