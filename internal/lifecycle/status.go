// Package lifecycle owns the applicant status state machine. Scorers are
// pure and never touch status; only the workers drive transitions.
package lifecycle

import "resume-workers/internal/models"

// Transition table: pending -> parsing -> processing -> one of the three
// terminal states. failed is reachable from every non-terminal state.
var transitions = map[models.ApplicantStatus][]models.ApplicantStatus{
	models.StatusPending:    {models.StatusParsing, models.StatusFailed},
	models.StatusParsing:    {models.StatusProcessing, models.StatusFailed},
	models.StatusProcessing: {models.StatusCompleted, models.StatusDisqualified, models.StatusFailed},
}

// IsTerminal reports whether no further transition can leave the status.
func IsTerminal(s models.ApplicantStatus) bool {
	switch s {
	case models.StatusCompleted, models.StatusFailed, models.StatusDisqualified:
		return true
	}
	return false
}

// CanTransition reports whether moving from one status to another is legal.
func CanTransition(from, to models.ApplicantStatus) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}
