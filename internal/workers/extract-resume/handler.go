// Package extractresume implements the resume ingestion worker: fetch the
// PDF from object storage, pull out its text, have the extraction model
// structure it, persist the parsed fields, and hand the applicant off to
// the scoring stage.
package extractresume

import (
	"context"
	"encoding/json"
	"time"

	stderrors "resume-workers/internal/common/errors"
	"resume-workers/internal/common/logger"
	"resume-workers/internal/common/metrics"
	"resume-workers/internal/common/pdf"
	"resume-workers/internal/common/queue"
	"resume-workers/internal/lifecycle"
	"resume-workers/internal/models"
)

const (
	TaskType = "process-resume"
)

// ObjectStore fetches resume PDFs by storage key.
type ObjectStore interface {
	Get(ctx context.Context, objectKey string) ([]byte, error)
}

// Extractor structures raw resume text.
type Extractor interface {
	ExtractResume(ctx context.Context, resumeText string) (*models.ParsedResume, error)
}

// PlatformAPI is the slice of the platform client this worker uses.
type PlatformAPI interface {
	SetStatus(ctx context.Context, applicantID int64, status models.ApplicantStatus, reason string) error
	UpdateParsedData(ctx context.Context, applicantID int64, parsed *models.ParsedResume) error
	QueueScoring(ctx context.Context, applicantID int64) error
}

type Handler struct {
	config  *Config
	store   ObjectStore
	oracle  Extractor
	api     PlatformAPI
	logger  logger.Logger
	extract func(data []byte) (string, error)
}

func NewHandler(config *Config, store ObjectStore, oracle Extractor, api PlatformAPI, log logger.Logger) *Handler {
	return &Handler{
		config:  config,
		store:   store,
		oracle:  oracle,
		api:     api,
		logger:  log.WithFields(map[string]interface{}{"taskType": TaskType}),
		extract: pdf.ExtractText,
	}
}

func (h *Handler) Handle(ctx context.Context, msg *queue.Message) {
	start := time.Now()

	var input Input
	if err := json.Unmarshal(msg.Data, &input); err != nil || input.ApplicantID == 0 {
		// Without an applicant ID there is no record to fail; drop it.
		h.logger.Error("dropping malformed extraction job", map[string]interface{}{
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

	tracker := lifecycle.NewTracker(models.StatusPending)

	if err := h.execute(ctx, log, &input, tracker); err != nil {
		h.failApplicant(ctx, log, input.ApplicantID, tracker, err)
		return
	}

	metrics.JobsCompleted.WithLabelValues(TaskType).Inc()
	metrics.JobDuration.WithLabelValues(TaskType).Observe(time.Since(start).Seconds())
	log.Info("resume extracted and queued for scoring", map[string]interface{}{
		"durationMs": time.Since(start).Milliseconds(),
	})
}

func (h *Handler) execute(ctx context.Context, log logger.Logger, input *Input, tracker *lifecycle.Tracker) error {
	// The applicant only enters parsing once we hold usable text; a
	// missing or unreadable PDF fails straight from pending.
	data, err := h.store.Get(ctx, input.ResumePath)
	if err != nil {
		return err
	}

	text, err := h.extract(data)
	if err != nil {
		return err
	}
	if text == "" {
		log.Warn("resume has no text layer, extracting from empty text", map[string]interface{}{
			"resumePath": input.ResumePath,
		})
	}

	if err := h.setStatus(ctx, input.ApplicantID, tracker, models.StatusParsing, ""); err != nil {
		return err
	}

	parsed, err := h.oracle.ExtractResume(ctx, text)
	if err != nil {
		return err
	}

	if err := h.api.UpdateParsedData(ctx, input.ApplicantID, parsed); err != nil {
		return err
	}

	if err := h.setStatus(ctx, input.ApplicantID, tracker, models.StatusProcessing, ""); err != nil {
		return err
	}

	return h.api.QueueScoring(ctx, input.ApplicantID)
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
	log.WithError(cause).Error("extraction failed", map[string]interface{}{"errorCode": code})

	// The job context may itself be the failure (deadline expired), so the
	// terminal status write runs on a detached context with its own
	// deadline. Best effort beyond that; the API may be down.
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
	defer cancel()

	if err := h.setStatus(ctx, applicantID, tracker, models.StatusFailed, cause.Error()); err != nil {
		log.WithError(err).Error("could not mark applicant failed", nil)
	}
}
