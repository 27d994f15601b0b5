package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors surfaced by the store layer. The HTTP layer maps these to
// not-found responses; the core never panics on them.
var (
	ErrSessionNotFound = errors.New("session not found")
	ErrResumeNotFound  = errors.New("staged resume not found")
)

// InvalidTransitionError reports an attempted state transition that is not in
// the allowed-target set for the current state. It is the only error class
// the interview core lets escape during an active turn.
type InvalidTransitionError struct {
	From InterviewState
	To   InterviewState
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid state transition: %s -> %s", e.From, e.To)
}

// SessionInactiveError reports an operation attempted against a session whose
// state does not admit it (not yet started, or already terminal).
type SessionInactiveError struct {
	ID    string
	State InterviewState
}

func (e *SessionInactiveError) Error() string {
	return fmt.Sprintf("session %s is not active (state %s)", e.ID, e.State)
}
