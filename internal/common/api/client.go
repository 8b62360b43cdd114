// Package api implements the client for the recruiting platform's
// persistence API. Every mutation the pipeline makes (status, parsed
// fields, judgments, scores) goes through here; workers never write to the
// platform database directly.
package api

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"resume-workers/internal/common/config"
	stderrors "resume-workers/internal/common/errors"
	"resume-workers/internal/models"
)

// Client talks to the platform's tRPC mutation endpoints.
type Client struct {
	http *resty.Client
}

func NewClient(cfg config.APIConfig) *Client {
	http := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(time.Duration(cfg.Timeout) * time.Second).
		SetHeader("Content-Type", "application/json").
		SetHeader("x-api-key", cfg.APIKey)

	return &Client{http: http}
}

// post wraps every mutation: tRPC expects the input under a "json" key, and
// any non-2xx response becomes a PersistenceError.
func (c *Client) post(ctx context.Context, endpoint string, input interface{}) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(map[string]interface{}{"json": input}).
		Post(endpoint)
	if err != nil {
		return stderrors.NewPersistenceError(endpoint, err)
	}
	if resp.IsError() {
		return stderrors.NewPersistenceError(endpoint,
			fmt.Errorf("status %d: %s", resp.StatusCode(), resp.String()))
	}
	return nil
}

// SetStatus updates the applicant's pipeline status, with an optional
// human-readable reason for terminal states.
func (c *Client) SetStatus(ctx context.Context, applicantID int64, status models.ApplicantStatus, reason string) error {
	input := map[string]interface{}{
		"applicantId": applicantID,
		"statusAI":    string(status),
	}
	if reason != "" {
		input["statusReasonAI"] = reason
	}
	return c.post(ctx, "/api/trpc/applicant.updateStatusAI", input)
}

// UpdateParsedData persists the structured fields extracted from a resume.
// Skills go over the wire as one comma-joined string; that is how the
// platform stores them.
func (c *Client) UpdateParsedData(ctx context.Context, applicantID int64, parsed *models.ParsedResume) error {
	return c.post(ctx, "/api/trpc/applicant.updateParsedDataAI", map[string]interface{}{
		"applicantId":                  applicantID,
		"parsedHighestEducationDegree": parsed.HighestEducationDegree,
		"parsedEducationField":         parsed.EducationField,
		"parsedTimezone":               parsed.Timezone,
		"parsedSkills":                 strings.Join(parsed.Skills, ", "),
		"experiencePeriods":            parsed.ExperiencePeriods,
	})
}

// UpdateMatchedSkills persists per-skill judgments. Called before the
// disqualification decision so matched skills survive a short-circuit.
func (c *Client) UpdateMatchedSkills(ctx context.Context, applicantID int64, judgments []models.SkillJudgment) error {
	return c.post(ctx, "/api/trpc/applicant.updateMatchedSkillsAI", map[string]interface{}{
		"applicantId": applicantID,
		"skills":      judgments,
	})
}

// UpdateExperienceRelevance persists the relevance-annotated periods.
func (c *Client) UpdateExperienceRelevance(ctx context.Context, applicantID int64, periods []models.ExperiencePeriod) error {
	return c.post(ctx, "/api/trpc/applicant.updateExperienceRelevanceAI", map[string]interface{}{
		"applicantId": applicantID,
		"experiences": periods,
	})
}

// UpdateScores persists the four sub-scores, the overall score, and total
// relevant years.
func (c *Client) UpdateScores(ctx context.Context, applicantID int64, result *models.ScoreResult) error {
	return c.post(ctx, "/api/trpc/applicant.updateScoresAI", map[string]interface{}{
		"applicantId":       applicantID,
		"skillsScore":       result.SkillsScore,
		"experienceScore":   result.ExperienceScore,
		"educationScore":    result.EducationScore,
		"timezoneScore":     result.TimezoneScore,
		"overallScore":      result.OverallScore,
		"yearsOfExperience": result.YearsOfExperience,
	})
}

// QueueScoring asks the platform to enqueue a scoring job for the
// applicant. The platform owns the queue payload (it joins in the current
// applicant and job records).
func (c *Client) QueueScoring(ctx context.Context, applicantID int64) error {
	if err := c.post(ctx, "/api/trpc/applicant.queueScoreResume", map[string]interface{}{
		"applicantId": applicantID,
	}); err != nil {
		return &stderrors.StandardError{
			Code:      stderrors.ErrCodeQueueScoringFailed,
			Message:   "failed to enqueue scoring job",
			Details:   err.Error(),
			Retryable: true,
			Timestamp: time.Now().UTC(),
		}
	}
	return nil
}
