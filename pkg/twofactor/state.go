package twofactor

import "fmt"

// State represents a credential's position in the two-factor lifecycle.
type State string

const (
	StateNotConfigured       State = "not_configured"
	StatePendingVerification State = "pending_verification"
	StateEnabled             State = "enabled"
	StateDisabled            State = "disabled"
)

// Action is the closed set of transitions a Verify call can request. It is a
// typed variant rather than a wire string so the verification path can
// dispatch through exhaustive switches.
type Action int

const (
	// ActionNone is a plain login-time challenge: verify the code, persist a
	// consumed backup code if one was used, change no state otherwise.
	ActionNone Action = iota
	// ActionEnable flips the credential to Enabled after a successful
	// verification from PendingVerification (or Enabled, if re-provisioned).
	ActionEnable
	// ActionDisable clears the credential after a successful verification
	// from Enabled: secret removed, backup codes emptied, flag lowered.
	ActionDisable
)

func (a Action) String() string {
	switch a {
	case ActionNone:
		return "challenge"
	case ActionEnable:
		return "enable"
	case ActionDisable:
		return "disable"
	default:
		return fmt.Sprintf("action(%d)", int(a))
	}
}

// ParseAction maps the wire representation to the typed variant. The empty
// string is a plain challenge; anything outside the closed set is rejected.
func ParseAction(s string) (Action, error) {
	switch s {
	case "":
		return ActionNone, nil
	case "enable":
		return ActionEnable, nil
	case "disable":
		return ActionDisable, nil
	default:
		return ActionNone, fmt.Errorf("%w: %q", ErrUnknownAction, s)
	}
}

// NextState returns the state a successful verification with the given
// action moves the credential to, or ErrInvalidTransition when the action is
// not allowed from the current state. Setup is the only other entry point
// into the machine: it moves any state to PendingVerification by overwriting
// the row.
func NextState(current State, action Action) (State, error) {
	switch action {
	case ActionNone:
		return current, nil
	case ActionEnable:
		switch current {
		case StatePendingVerification, StateEnabled:
			return StateEnabled, nil
		default:
			return current, fmt.Errorf("%w: cannot enable from %s", ErrInvalidTransition, current)
		}
	case ActionDisable:
		if current == StateEnabled {
			return StateDisabled, nil
		}
		return current, fmt.Errorf("%w: cannot disable from %s", ErrInvalidTransition, current)
	default:
		return current, fmt.Errorf("%w: %s", ErrUnknownAction, action)
	}
}
