package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/saltmarsh/regwiz/internal/wizard"
)

// View renders the UI.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	if m.showHelp {
		return RenderHelp(m.width, m.height)
	}
	if m.showHistory {
		return m.renderHistory()
	}

	var b strings.Builder
	b.WriteString(headerStyle.Render("⬡ regwiz — server registration"))
	b.WriteString("\n")
	b.WriteString(m.renderSteps())
	b.WriteString("\n\n")
	b.WriteString(m.renderState())
	b.WriteString("\n\n")
	b.WriteString(m.renderStatusBar())

	return b.String()
}

// renderSteps draws the three-step progress line.
func (m Model) renderSteps() string {
	state := m.controller.State()

	type step struct {
		label string
		done  bool
	}

	var tokenHeld, registered bool
	if _, ok := wizard.TokenOf(state); ok {
		tokenHeld = true
	}
	if _, ok := state.(wizard.Registered); ok {
		registered = true
	}

	steps := []step{
		{"1 details", true},
		{"2 token", tokenHeld},
		{"3 registered", registered},
	}

	active := activeStep(state)

	parts := make([]string, 0, len(steps))
	for i, s := range steps {
		switch {
		case i == active:
			parts = append(parts, stepActiveStyle.Render("▸ "+s.label))
		case s.done:
			parts = append(parts, stepDoneStyle.Render("✓ "+s.label))
		default:
			parts = append(parts, stepStyle.Render("  "+s.label))
		}
	}

	return strings.Join(parts, dimmedStyle.Render("  ──  "))
}

func activeStep(state wizard.State) int {
	switch state.(type) {
	case wizard.Ready, wizard.PreRegistering, wizard.PreRegisterFailed:
		return 0
	case wizard.PreRegistered, wizard.Registering, wizard.RegisterFailed:
		return 1
	default:
		return 2
	}
}

// renderState draws the body for the active wizard state.
func (m Model) renderState() string {
	switch s := m.controller.State().(type) {
	case wizard.Ready:
		return m.renderForm(s)

	case wizard.PreRegistering:
		return boxStyle.Render(fmt.Sprintf(
			"Requesting a registration token for %s\nfrom %s:%d ...",
			s.Name, m.controller.Host(), s.Port,
		))

	case wizard.PreRegisterFailed:
		return boxStyle.Render(
			errorStyle.Render("Pre-register failed") + "\n\n" +
				s.Err + "\n\n" +
				dimmedStyle.Render("press r to start over"),
		)

	case wizard.PreRegistered:
		return boxStyle.Render(
			"Token received for "+s.Name+":\n\n"+
				tokenStyle.Render(s.Token)+"\n\n"+
				dimmedStyle.Render("press enter to complete registration"),
		)

	case wizard.Registering:
		return boxStyle.Render(fmt.Sprintf(
			"Registering %s with %s:%d ...",
			s.Name, m.controller.Host(), s.Port,
		))

	case wizard.RegisterFailed:
		return boxStyle.Render(
			errorStyle.Render("Registration failed") + "\n\n" +
				s.Err + "\n\n" +
				dimmedStyle.Render("press r to start over"),
		)

	case wizard.Registered:
		return resultBoxStyle.Render(
			successStyle.Render("Registered!") + "\n\n" +
				s.Result + "\n\n" +
				dimmedStyle.Render("press r to register another, h for history"),
		)
	}

	return ""
}

func (m Model) renderForm(s wizard.Ready) string {
	body := m.form.View()

	if s.FieldError != "" {
		body += "\n\n" + errorStyle.Render("✗ "+s.FieldError)
	}

	hint := "enter to request a token"
	if !m.controller.CanSubmit() {
		hint = "enter a numeric port to continue"
	}
	body += "\n\n" + dimmedStyle.Render(hint)

	return boxStyle.Render(body)
}

func (m Model) renderStatusBar() string {
	var hints string
	if _, ok := m.controller.State().(wizard.Ready); ok {
		hints = "tab: next field • enter: submit • esc: quit"
	} else {
		hints = "r: reset • h: history • ?: help • q: quit"
	}

	return m.indicator.View() + "  " + statusBarStyle.Render(hints)
}

func (m Model) renderHistory() string {
	var lines []string
	lines = append(lines, titleStyle.Render("⌛ Registration history"))
	lines = append(lines, "")

	switch {
	case m.historyErr != nil:
		lines = append(lines, errorStyle.Render("failed to load history: "+m.historyErr.Error()))
	case len(m.history) == 0:
		lines = append(lines, dimmedStyle.Render("no registrations yet"))
	default:
		for _, reg := range m.history {
			line := fmt.Sprintf(
				"%s  %s  %s:%d",
				reg.CreatedAt.Local().Format("2006-01-02 15:04"),
				padRight(reg.Name, 16),
				reg.Host, reg.Port,
			)
			lines = append(lines, stepStyle.Render(line))
		}
	}

	lines = append(lines, "")
	lines = append(lines, dimmedStyle.Render("press h or esc to close"))

	return boxStyle.Render(strings.Join(lines, "\n"))
}

// padRight pads a possibly styled string to the given display width.
func padRight(s string, width int) string {
	gap := width - lipgloss.Width(s)
	if gap <= 0 {
		return s
	}
	return s + strings.Repeat(" ", gap)
}
