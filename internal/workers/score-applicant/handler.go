// Package scoreapplicant implements the scoring worker: run the full
// scoring pass for one applicant/job pair and persist the outcome. Skills
// act as a hard gate; an applicant the skills oracle disqualifies is
// finalized without spending the remaining model calls.
package scoreapplicant

import (
	"context"
	"encoding/json"
	"time"

	stderrors "resume-workers/internal/common/errors"
	"resume-workers/internal/common/logger"
	"resume-workers/internal/common/metrics"
	"resume-workers/internal/common/queue"
	"resume-workers/internal/lifecycle"
	"resume-workers/internal/models"
	"resume-workers/internal/scoring"
)

const (
	TaskType = "score-applicant"
)

// PlatformAPI is the slice of the platform client this worker uses.
type PlatformAPI interface {
	SetStatus(ctx context.Context, applicantID int64, status models.ApplicantStatus, reason string) error
	UpdateMatchedSkills(ctx context.Context, applicantID int64, judgments []models.SkillJudgment) error
	UpdateExperienceRelevance(ctx context.Context, applicantID int64, periods []models.ExperiencePeriod) error
	UpdateScores(ctx context.Context, applicantID int64, result *models.ScoreResult) error
}

type Handler struct {
	config *Config
	engine *scoring.Engine
	api    PlatformAPI
	logger logger.Logger
}

func NewHandler(config *Config, engine *scoring.Engine, api PlatformAPI, log logger.Logger) *Handler {
	return &Handler{
		config: config,
		engine: engine,
		api:    api,
		logger: log.WithFields(map[string]interface{}{"taskType": TaskType}),
	}
}

func (h *Handler) Handle(ctx context.Context, msg *queue.Message) {
	start := time.Now()

	var input Input
	if err := json.Unmarshal(msg.Data, &input); err != nil || input.ApplicantID == 0 {
		h.logger.Error("dropping malformed scoring job", map[string]interface{}{
			"messageId": msg.ID,
			"error":     err,
		})
		metrics.JobsFailed.WithLabelValues(TaskType, string(stderrors.ErrCodeMessageParseFailed)).Inc()
		return
	}

	log := h.logger.WithFields(map[string]interface{}{
		"applicantId": input.ApplicantID,
		"messageId":   msg.ID,
	})
	log.Info("processing job", nil)

	ctx, cancel := context.WithTimeout(ctx, h.config.Timeout)
	defer cancel()

	// Scoring jobs are enqueued by the extraction stage, so the applicant
	// arrives in processing.
	tracker := lifecycle.NewTracker(models.StatusProcessing)

	applicant, job, err := input.Decode()
	if err != nil {
		h.failApplicant(ctx, log, input.ApplicantID, tracker, err)
		return
	}

	outcome := h.engine.Score(ctx, applicant, job)

	switch {
	case outcome.IsDisqualified():
		err = h.finalizeDisqualified(ctx, input.ApplicantID, tracker, outcome)
	case outcome.IsFailed():
		h.failApplicant(ctx, log, input.ApplicantID, tracker, outcome.Err())
		return
	default:
		err = h.finalizeCompleted(ctx, input.ApplicantID, tracker, outcome.Result())
	}
	if err != nil {
		// Persistence failed partway; earlier writes stay as they are.
		h.failApplicant(ctx, log, input.ApplicantID, tracker, err)
		return
	}

	metrics.JobsCompleted.WithLabelValues(TaskType).Inc()
	metrics.JobDuration.WithLabelValues(TaskType).Observe(time.Since(start).Seconds())
	log.Info("scoring finished", map[string]interface{}{
		"status":     string(outcome.Status()),
		"durationMs": time.Since(start).Milliseconds(),
	})
}

// finalizeDisqualified persists the skills verdict that triggered the gate,
// then flips the applicant to disqualified with the verdict as reason.
func (h *Handler) finalizeDisqualified(ctx context.Context, applicantID int64, tracker *lifecycle.Tracker, outcome lifecycle.ScoringOutcome) error {
	metrics.ApplicantsDisqualified.Inc()

	if err := h.api.UpdateMatchedSkills(ctx, applicantID, outcome.Result().SkillJudgments); err != nil {
		return err
	}
	return h.setStatus(ctx, applicantID, tracker, models.StatusDisqualified, outcome.Reason())
}

func (h *Handler) finalizeCompleted(ctx context.Context, applicantID int64, tracker *lifecycle.Tracker, result *models.ScoreResult) error {
	if err := h.api.UpdateMatchedSkills(ctx, applicantID, result.SkillJudgments); err != nil {
		return err
	}
	if err := h.api.UpdateExperienceRelevance(ctx, applicantID, result.Experiences); err != nil {
		return err
	}
	if err := h.api.UpdateScores(ctx, applicantID, result); err != nil {
		return err
	}
	return h.setStatus(ctx, applicantID, tracker, models.StatusCompleted, "")
}

// setStatus persists a status only after the lifecycle table admits the
// transition. The tracker commits after the write so a failed write keeps
// it on the status the platform holds.
func (h *Handler) setStatus(ctx context.Context, applicantID int64, tracker *lifecycle.Tracker, to models.ApplicantStatus, reason string) error {
	if err := tracker.Check(to); err != nil {
		return err
	}
	if err := h.api.SetStatus(ctx, applicantID, to, reason); err != nil {
		return err
	}
	return tracker.Advance(to)
}

func (h *Handler) failApplicant(ctx context.Context, log logger.Logger, applicantID int64, tracker *lifecycle.Tracker, cause error) {
	code := stderrors.CodeOf(cause)
	if code == "" {
		code = "INTERNAL_ERROR"
	}
	metrics.JobsFailed.WithLabelValues(TaskType, string(code)).Inc()
	log.WithError(cause).Error("scoring failed", map[string]interface{}{"errorCode": code})

	// The job context may itself be the failure (deadline expired), so the
	// terminal status write runs on a detached context with its own
	// deadline.
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
	defer cancel()

	if err := h.setStatus(ctx, applicantID, tracker, models.StatusFailed, cause.Error()); err != nil {
		log.WithError(err).Error("could not mark applicant failed", nil)
	}
}
