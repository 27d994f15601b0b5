// Package interview implements the interview session core: the state machine
// defining legal lifecycle transitions, the deterministic next-action policy,
// and the flow controller that orchestrates LLM calls around both.
package interview

import (
	"github.com/hirevox/interview-engine/internal/domain"
)

// validTransitions is the single source of truth for which state pairs are
// legal. Terminal states have no outgoing edges.
var validTransitions = map[domain.InterviewState][]domain.InterviewState{
	domain.StateNotStarted:  {domain.StateGreeting, domain.StateCancelled},
	domain.StateGreeting:    {domain.StatePreplanning, domain.StateCancelled},
	domain.StatePreplanning: {domain.StateQuestioning, domain.StateCancelled},
	domain.StateQuestioning: {
		domain.StateFollowUp,
		domain.StateTransitioning,
		domain.StateConcluding,
		domain.StateCancelled,
	},
	domain.StateFollowUp: {
		domain.StateFollowUp, // repeated follow-ups on the same topic
		domain.StateTransitioning,
		domain.StateConcluding,
		domain.StateCancelled,
	},
	domain.StateTransitioning: {
		domain.StateQuestioning,
		domain.StateConcluding,
		domain.StateCancelled,
	},
	domain.StateConcluding: {domain.StateCompleted},
	domain.StateCompleted:  {},
	domain.StateCancelled:  {},
}

// CanTransition reports whether moving from current to target is legal.
func CanTransition(current, target domain.InterviewState) bool {
	for _, allowed := range validTransitions[current] {
		if allowed == target {
			return true
		}
	}
	return false
}

// Transition moves the session into target, or returns an
// InvalidTransitionError leaving the session untouched. It has no side
// effects beyond the state field.
func Transition(session *domain.Session, target domain.InterviewState) error {
	if !CanTransition(session.State, target) {
		return &domain.InvalidTransitionError{From: session.State, To: target}
	}
	session.State = target
	return nil
}

// IsTerminal reports whether the state admits no further transitions.
func IsTerminal(state domain.InterviewState) bool {
	return state == domain.StateCompleted || state == domain.StateCancelled
}

// IsActive reports whether the state represents an interview in progress:
// anything past NOT_STARTED that has not yet terminated.
func IsActive(state domain.InterviewState) bool {
	switch state {
	case domain.StateGreeting,
		domain.StatePreplanning,
		domain.StateQuestioning,
		domain.StateFollowUp,
		domain.StateTransitioning,
		domain.StateConcluding:
		return true
	}
	return false
}
