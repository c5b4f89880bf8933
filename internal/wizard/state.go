// Package wizard implements the registration wizard state machine.
//
// The wizard walks a user through registering against a game server in two
// steps: a pre-register call that yields a token, then a register call that
// redeems it. All state lives in a single tagged variant owned by the
// Controller; transitions are the only way to change variant.
package wizard

// State is the wizard state. Exactly one variant is active at a time.
type State interface {
	isState()
}

// Ready is the editable form. It is the only state in which the form
// fields accept edits.
type Ready struct {
	Name      string
	PortInput string
	// FieldError is the client-side validation message from a rejected
	// submit. Empty otherwise; Reset never seeds it.
	FieldError string
}

// PreRegistering means the pre-register call is in flight.
type PreRegistering struct {
	Name string
	Port int
}

// PreRegisterFailed is terminal until reset.
type PreRegisterFailed struct {
	Name string
	Port int
	Err  string
}

// PreRegistered means the pre-register call succeeded and a token is held.
type PreRegistered struct {
	Name  string
	Port  int
	Token string
}

// Registering means the register call is in flight.
type Registering struct {
	Name  string
	Port  int
	Token string
}

// RegisterFailed is terminal until reset.
type RegisterFailed struct {
	Name  string
	Port  int
	Token string
	Err   string
}

// Registered is the terminal success state.
type Registered struct {
	Name   string
	Port   int
	Token  string
	Result string
}

func (Ready) isState()             {}
func (PreRegistering) isState()    {}
func (PreRegisterFailed) isState() {}
func (PreRegistered) isState()     {}
func (Registering) isState()       {}
func (RegisterFailed) isState()    {}
func (Registered) isState()        {}

// StateName returns a stable identifier for the active variant.
func StateName(s State) string {
	switch s.(type) {
	case Ready:
		return "ready"
	case PreRegistering:
		return "pre_registering"
	case PreRegisterFailed:
		return "pre_register_failed"
	case PreRegistered:
		return "pre_registered"
	case Registering:
		return "registering"
	case RegisterFailed:
		return "register_failed"
	case Registered:
		return "registered"
	default:
		return "unknown"
	}
}

// NameOf returns the display name carried by any variant.
func NameOf(s State) string {
	switch v := s.(type) {
	case Ready:
		return v.Name
	case PreRegistering:
		return v.Name
	case PreRegisterFailed:
		return v.Name
	case PreRegistered:
		return v.Name
	case Registering:
		return v.Name
	case RegisterFailed:
		return v.Name
	case Registered:
		return v.Name
	default:
		return ""
	}
}

// PortOf returns the validated port of any post-Ready variant. Ready carries
// only the raw input string, so ok is false there.
func PortOf(s State) (int, bool) {
	switch v := s.(type) {
	case PreRegistering:
		return v.Port, true
	case PreRegisterFailed:
		return v.Port, true
	case PreRegistered:
		return v.Port, true
	case Registering:
		return v.Port, true
	case RegisterFailed:
		return v.Port, true
	case Registered:
		return v.Port, true
	default:
		return 0, false
	}
}

// TokenOf returns the pre-register token where one is held.
func TokenOf(s State) (string, bool) {
	switch v := s.(type) {
	case PreRegistered:
		return v.Token, true
	case Registering:
		return v.Token, true
	case RegisterFailed:
		return v.Token, true
	case Registered:
		return v.Token, true
	default:
		return "", false
	}
}

// ErrorOf returns the failure message of a failed variant.
func ErrorOf(s State) (string, bool) {
	switch v := s.(type) {
	case PreRegisterFailed:
		return v.Err, true
	case RegisterFailed:
		return v.Err, true
	default:
		return "", false
	}
}

// InFlight reports whether a network call is outstanding.
func InFlight(s State) bool {
	switch s.(type) {
	case PreRegistering, Registering:
		return true
	default:
		return false
	}
}
