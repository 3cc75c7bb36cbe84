package dialog

import "fmt"

type State int

const (
	StateIdle State = iota
	StateAwaitingConfirmation
	StateAwaitingSignature
	StateAwaitingInclusion
	StateDone
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateAwaitingConfirmation:
		return "awaiting confirmation"
	case StateAwaitingSignature:
		return "awaiting signature"
	case StateAwaitingInclusion:
		return "awaiting inclusion"
	case StateDone:
		return "done"
	case StateFailed:
		return "failed"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// IsTerminal reports whether the submission ended, successfully or not.
func (s State) IsTerminal() bool {
	return s == StateDone || s == StateFailed
}

// InFlight reports whether a submission is running.
func (s State) InFlight() bool {
	return s == StateAwaitingSignature || s == StateAwaitingInclusion
}

func (s State) statusText() string {
	switch s {
	case StateAwaitingConfirmation:
		return "Confirm transaction"
	case StateAwaitingSignature:
		return "Waiting for signature..."
	case StateAwaitingInclusion:
		return "Waiting for inclusion in a block..."
	case StateDone:
		return "Transaction included"
	case StateFailed:
		return "Transaction failed"
	default:
		return ""
	}
}
