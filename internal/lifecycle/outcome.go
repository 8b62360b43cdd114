package lifecycle

import "resume-workers/internal/models"

type outcomeKind int

const (
	kindSuccess outcomeKind = iota
	kindDisqualified
	kindFailed
)

// ScoringOutcome is the tagged result of one scoring pass. Disqualification
// is a successful short-circuited outcome, not an error; only Failed carries
// an error.
type ScoringOutcome struct {
	kind   outcomeKind
	result *models.ScoreResult
	reason string
	err    error
}

// Success wraps a completed score result.
func Success(result *models.ScoreResult) ScoringOutcome {
	return ScoringOutcome{kind: kindSuccess, result: result}
}

// Disqualified marks an applicant who failed the hard skills gate. The
// partial result holds the matched skills persisted before short-circuiting.
func Disqualified(reason string, partial *models.ScoreResult) ScoringOutcome {
	return ScoringOutcome{kind: kindDisqualified, reason: reason, result: partial}
}

// Failed wraps an unrecoverable scoring error.
func Failed(err error) ScoringOutcome {
	return ScoringOutcome{kind: kindFailed, err: err}
}

// IsSuccess reports a fully scored pass.
func (o ScoringOutcome) IsSuccess() bool { return o.kind == kindSuccess }

// IsDisqualified reports a short-circuited skills-gate outcome.
func (o ScoringOutcome) IsDisqualified() bool { return o.kind == kindDisqualified }

// IsFailed reports an aborted pass.
func (o ScoringOutcome) IsFailed() bool { return o.kind == kindFailed }

// Result returns the score result for Success, or the partial result for
// Disqualified. Nil for Failed.
func (o ScoringOutcome) Result() *models.ScoreResult { return o.result }

// Reason returns the human-readable disqualification reason.
func (o ScoringOutcome) Reason() string { return o.reason }

// Err returns the failure cause, nil unless Failed.
func (o ScoringOutcome) Err() error { return o.err }

// Status maps the outcome to its terminal applicant status.
func (o ScoringOutcome) Status() models.ApplicantStatus {
	switch o.kind {
	case kindDisqualified:
		return models.StatusDisqualified
	case kindFailed:
		return models.StatusFailed
	default:
		return models.StatusCompleted
	}
}
