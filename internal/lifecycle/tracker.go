package lifecycle

import (
	"fmt"

	"resume-workers/internal/models"
)

// Tracker follows one applicant's status through a job and rejects writes
// that violate the transition table. Workers route every status update
// through a Tracker so an illegal sequence fails loudly instead of being
// silently persisted.
type Tracker struct {
	current models.ApplicantStatus
}

// NewTracker starts tracking from the status the applicant holds when the
// job begins.
func NewTracker(start models.ApplicantStatus) *Tracker {
	return &Tracker{current: start}
}

// Current returns the last status the tracker advanced to.
func (t *Tracker) Current() models.ApplicantStatus {
	return t.current
}

// Check reports whether moving to the next status is legal, without
// moving. Callers validate with Check before the status write and commit
// with Advance after it, so a failed write leaves the tracker on the
// status the platform actually holds.
func (t *Tracker) Check(to models.ApplicantStatus) error {
	if !CanTransition(t.current, to) {
		return fmt.Errorf("illegal status transition %s -> %s", t.current, to)
	}
	return nil
}

// Advance moves to the next status, or errors when the transition table
// forbids it. The tracker only moves on success.
func (t *Tracker) Advance(to models.ApplicantStatus) error {
	if err := t.Check(to); err != nil {
		return err
	}
	t.current = to
	return nil
}
