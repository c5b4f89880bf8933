package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Form field indices, in focus order.
const (
	fieldHost = iota
	fieldName
	fieldPort
	fieldCount
)

// FormModel holds the editable registration form: target host, display
// name and port.
type FormModel struct {
	inputs  [fieldCount]textinput.Model
	focused int
}

// NewFormModel creates the form with the given seed values.
func NewFormModel(host, name, port string) FormModel {
	var f FormModel

	hostInput := textinput.New()
	hostInput.Placeholder = "localhost"
	hostInput.CharLimit = 253
	hostInput.Width = 30
	hostInput.SetValue(host)

	nameInput := textinput.New()
	nameInput.Placeholder = "display name"
	nameInput.CharLimit = 64
	nameInput.Width = 30
	nameInput.SetValue(name)

	portInput := textinput.New()
	portInput.Placeholder = "3000"
	portInput.CharLimit = 10
	portInput.Width = 30
	portInput.SetValue(port)

	f.inputs[fieldHost] = hostInput
	f.inputs[fieldName] = nameInput
	f.inputs[fieldPort] = portInput

	f.focused = fieldName
	f.inputs[f.focused].Focus()

	return f
}

// Host returns the host field value.
func (f FormModel) Host() string {
	return f.inputs[fieldHost].Value()
}

// Name returns the name field value.
func (f FormModel) Name() string {
	return f.inputs[fieldName].Value()
}

// Port returns the port field value, verbatim.
func (f FormModel) Port() string {
	return f.inputs[fieldPort].Value()
}

// Focus returns the command to start the cursor blinking.
func (f FormModel) Focus() tea.Cmd {
	return textinput.Blink
}

// FocusNext moves focus to the next field, wrapping around.
func (f *FormModel) FocusNext() {
	f.setFocus((f.focused + 1) % fieldCount)
}

// FocusPrev moves focus to the previous field, wrapping around.
func (f *FormModel) FocusPrev() {
	f.setFocus((f.focused + fieldCount - 1) % fieldCount)
}

func (f *FormModel) setFocus(idx int) {
	f.inputs[f.focused].Blur()
	f.focused = idx
	f.inputs[f.focused].Focus()
}

// Update routes a message to the focused input.
func (f FormModel) Update(msg tea.Msg) (FormModel, tea.Cmd) {
	var cmd tea.Cmd
	f.inputs[f.focused], cmd = f.inputs[f.focused].Update(msg)
	return f, cmd
}

// Seed replaces all field values, keeping focus on the name field. Used
// when a reset projects the last known name/port back into the form.
func (f *FormModel) Seed(host, name, port string) {
	f.inputs[fieldHost].SetValue(host)
	f.inputs[fieldName].SetValue(name)
	f.inputs[fieldPort].SetValue(port)
	f.setFocus(fieldName)
	f.inputs[f.focused].CursorEnd()
}

// View renders the form fields with the focused label highlighted.
func (f FormModel) View() string {
	labels := [fieldCount]string{"Host", "Name", "Port"}

	rows := make([]string, 0, fieldCount)
	for i := 0; i < fieldCount; i++ {
		label := labelStyle.Render(labels[i])
		if i == f.focused {
			label = labelFocusedStyle.Render(labels[i])
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, padRight(label, 6), f.inputs[i].View()))
	}

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}
