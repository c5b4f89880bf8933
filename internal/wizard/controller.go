package wizard

import (
	"errors"
	"strconv"
)

// ErrNonNumericPort is the single validation error the wizard produces.
var ErrNonNumericPort = errors.New("non-numeric port")

// ValidatePort parses a port field value. It is the single point of truth
// for submit gating: base-10, no surrounding whitespace, non-negative.
func ValidatePort(text string) (int, error) {
	n, err := strconv.Atoi(text)
	if err != nil || n < 0 {
		return 0, ErrNonNumericPort
	}
	return n, nil
}

// PreRegisterCall describes the pre-register request the shell must issue.
type PreRegisterCall struct {
	Host string
	Port int
	Name string
}

// RegisterCall describes the register request the shell must issue.
type RegisterCall struct {
	Host  string
	Port  int
	Token string
}

// Controller owns the wizard state and computes transitions. It performs no
// I/O itself: the submit methods return call descriptions and the shell
// delivers results back via the OnXxxResult methods.
//
// Any intent or result arriving in a state it is not listed for is a silent
// no-op. That guard is what drops stale responses after a reset.
type Controller struct {
	host  string
	state State
}

// New creates a controller in Ready with an empty name and the given
// defaults for host and port input.
func New(host, defaultPort string) *Controller {
	return &Controller{
		host:  host,
		state: Ready{PortInput: defaultPort},
	}
}

// State returns the active wizard state.
func (c *Controller) State() State {
	return c.state
}

// Host returns the target host.
func (c *Controller) Host() string {
	return c.host
}

// SetName replaces the display name. Ready only.
func (c *Controller) SetName(text string) {
	r, ok := c.state.(Ready)
	if !ok {
		return
	}
	r.Name = text
	c.state = r
}

// SetPort replaces the port input verbatim, with no live validation.
// Ready only.
func (c *Controller) SetPort(text string) {
	r, ok := c.state.(Ready)
	if !ok {
		return
	}
	r.PortInput = text
	c.state = r
}

// SetHost replaces the target host. Ready only, same guard as the form
// fields.
func (c *Controller) SetHost(text string) {
	if _, ok := c.state.(Ready); !ok {
		return
	}
	c.host = text
}

// CanSubmit reports whether the submit control should be enabled: Ready
// with a port input that currently validates.
func (c *Controller) CanSubmit() bool {
	r, ok := c.state.(Ready)
	if !ok {
		return false
	}
	_, err := ValidatePort(r.PortInput)
	return err == nil
}

// SubmitPreRegister validates the form and, if it passes, moves to
// PreRegistering and returns the call to issue. On a validation failure the
// state stays Ready with a field error and no call is issued (nil return).
func (c *Controller) SubmitPreRegister() *PreRegisterCall {
	r, ok := c.state.(Ready)
	if !ok {
		return nil
	}

	port, err := ValidatePort(r.PortInput)
	if err != nil {
		r.FieldError = err.Error()
		c.state = r
		return nil
	}

	c.state = PreRegistering{Name: r.Name, Port: port}
	return &PreRegisterCall{Host: c.host, Port: port, Name: r.Name}
}

// OnPreRegisterResult resolves the pre-register call. Ignored unless a
// pre-register call is in flight.
func (c *Controller) OnPreRegisterResult(token string, err error) {
	s, ok := c.state.(PreRegistering)
	if !ok {
		return
	}
	if err != nil {
		c.state = PreRegisterFailed{Name: s.Name, Port: s.Port, Err: err.Error()}
		return
	}
	c.state = PreRegistered{Name: s.Name, Port: s.Port, Token: token}
}

// SubmitRegister moves from PreRegistered to Registering and returns the
// call to issue.
func (c *Controller) SubmitRegister() *RegisterCall {
	s, ok := c.state.(PreRegistered)
	if !ok {
		return nil
	}
	c.state = Registering{Name: s.Name, Port: s.Port, Token: s.Token}
	return &RegisterCall{Host: c.host, Port: s.Port, Token: s.Token}
}

// OnRegisterResult resolves the register call. Ignored unless a register
// call is in flight.
func (c *Controller) OnRegisterResult(result string, err error) {
	s, ok := c.state.(Registering)
	if !ok {
		return
	}
	if err != nil {
		c.state = RegisterFailed{Name: s.Name, Port: s.Port, Token: s.Token, Err: err.Error()}
		return
	}
	c.state = Registered{Name: s.Name, Port: s.Port, Token: s.Token, Result: result}
}

// Reset returns to a fresh Ready seeded with the current name and port.
// Valid from every state; a Ready state keeps its original port input.
func (c *Controller) Reset() {
	if r, ok := c.state.(Ready); ok {
		c.state = Ready{Name: r.Name, PortInput: r.PortInput}
		return
	}

	portInput := ""
	if port, ok := PortOf(c.state); ok {
		portInput = strconv.Itoa(port)
	}
	c.state = Ready{Name: NameOf(c.state), PortInput: portInput}
}
