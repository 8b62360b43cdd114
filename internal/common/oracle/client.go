// Package oracle wraps the generative-AI models behind the four judgment
// operations the pipeline needs: resume structuring, field-of-study
// similarity, skills matching, and experience relevance tagging. Models are
// black boxes that return best-effort JSON; every response is cleaned and
// shape-validated before anything downstream touches it.
package oracle

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/tidwall/gjson"
	"google.golang.org/genai"

	"resume-workers/internal/common/config"
	stderrors "resume-workers/internal/common/errors"
	"resume-workers/internal/common/metrics"
	"resume-workers/internal/models"
	"resume-workers/internal/scoring"
)

// Client holds one genai connection and the per-flavor model names.
type Client struct {
	client  *genai.Client
	cfg     config.OracleConfig
	timeout time.Duration
}

// NewClient creates the oracle client against the Gemini API backend.
func NewClient(ctx context.Context, cfg config.OracleConfig) (*Client, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, fmt.Errorf("oracle api key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	return &Client{
		client:  client,
		cfg:     cfg,
		timeout: time.Duration(cfg.Timeout) * time.Second,
	}, nil
}

// generate sends one prompt to the named model and returns the cleaned
// textual response. Low temperature: these are extraction tasks, not
// creative ones.
func (c *Client) generate(ctx context.Context, oracleName, model, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	start := time.Now()
	cfg := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(float32(0.1)),
	}
	resp, err := c.client.Models.GenerateContent(ctx, model, genai.Text(prompt), cfg)
	metrics.OracleDuration.WithLabelValues(oracleName).Observe(time.Since(start).Seconds())

	if err != nil {
		metrics.OracleRequests.WithLabelValues(oracleName, "error").Inc()
		if ctx.Err() == context.DeadlineExceeded {
			return "", stderrors.NewOracleError(stderrors.ErrCodeOracleTimeout, err)
		}
		return "", stderrors.NewOracleError(stderrors.ErrCodeOracleQueryFailed, err)
	}

	text := CleanResponse(resp.Text())
	if text == "" {
		metrics.OracleRequests.WithLabelValues(oracleName, "empty").Inc()
		return "", stderrors.NewInvalidOutputError(fmt.Sprintf("model %s returned no text", model))
	}

	metrics.OracleRequests.WithLabelValues(oracleName, "ok").Inc()
	return text, nil
}

// ExtractResume structures raw resume text into degree, field, timezone,
// skills, and experience periods.
func (c *Client) ExtractResume(ctx context.Context, resumeText string) (*models.ParsedResume, error) {
	prompt := extractionPrompt(resumeText)
	text, err := c.generate(ctx, "extraction", c.cfg.ExtractionModel, prompt)
	if err != nil {
		return nil, err
	}

	if err := validate(extractionSchema, text); err != nil {
		return nil, err
	}
	return decodeParsedResume(text), nil
}

// FieldSimilarity judges how close two field-of-study strings are, 0-100.
// The model answers with a bare number, but some return {"score": n}; both
// are accepted.
func (c *Client) FieldSimilarity(ctx context.Context, jobField, applicantField string) (float64, error) {
	prompt := fieldSimilarityPrompt(jobField, applicantField)
	text, err := c.generate(ctx, "field_similarity", c.cfg.FieldMatchModel, prompt)
	if err != nil {
		return 0, stderrors.NewOracleError(stderrors.ErrCodeFieldSimilarityError, err)
	}

	return parseSimilarity(text)
}

// parseSimilarity reads the similarity answer, which is a bare number or
// {"score": n}, and rejects anything outside the 0-100 scale so a
// hallucinated value cannot leak into the education blend.
func parseSimilarity(text string) (float64, error) {
	var score float64
	if v := gjson.Get(text, "score"); v.Exists() {
		score = v.Float()
	} else {
		parsed, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
		if err != nil {
			return 0, stderrors.NewInvalidOutputError(
				fmt.Sprintf("field similarity is not numeric: %q", text))
		}
		score = parsed
	}

	if score < 0 || score > 100 {
		return 0, stderrors.NewInvalidOutputError(
			fmt.Sprintf("field similarity %v is outside 0-100", score))
	}
	return score, nil
}

// MatchSkills returns per-job-skill judgments plus the disqualification
// flag. The disqualification policy (required skills entirely missing)
// lives in the model.
func (c *Client) MatchSkills(ctx context.Context, jobSkills, applicantSkills []string) (*scoring.SkillsMatchResult, error) {
	prompt, err := skillsPrompt(jobSkills, applicantSkills)
	if err != nil {
		return nil, err
	}
	text, err := c.generate(ctx, "skills_match", c.cfg.SkillsModel, prompt)
	if err != nil {
		return nil, err
	}

	if err := validate(skillsSchema, text); err != nil {
		return nil, err
	}

	var result scoring.SkillsMatchResult
	if err := json.Unmarshal([]byte(text), &result); err != nil {
		return nil, stderrors.NewInvalidOutputError(err.Error())
	}
	return &result, nil
}

// TagRelevance returns the given periods annotated with per-period
// relevance to the target job title. Everything except the relevant flag is
// echoed from the input; the input copy is what gets annotated, so a model
// that mangles a period cannot corrupt stored data.
func (c *Client) TagRelevance(ctx context.Context, periods []models.ExperiencePeriod, jobTitle string) ([]models.ExperiencePeriod, error) {
	prompt, err := relevancePrompt(periods, jobTitle)
	if err != nil {
		return nil, err
	}
	text, err := c.generate(ctx, "relevance", c.cfg.RelevanceModel, prompt)
	if err != nil {
		return nil, err
	}

	if err := validate(relevanceSchema, text); err != nil {
		return nil, err
	}
	return applyRelevance(periods, text), nil
}

// decodeParsedResume reads the validated extraction response. gjson
// tolerates models emitting years as numbers instead of strings.
func decodeParsedResume(text string) *models.ParsedResume {
	parsed := &models.ParsedResume{
		HighestEducationDegree: gjson.Get(text, "highestEducationDegree").String(),
		EducationField:         gjson.Get(text, "educationField").String(),
		Timezone:               gjson.Get(text, "timezone").String(),
	}

	for _, s := range gjson.Get(text, "skills").Array() {
		if skill := strings.TrimSpace(s.String()); skill != "" {
			parsed.Skills = append(parsed.Skills, skill)
		}
	}

	for _, p := range gjson.Get(text, "experiencePeriods").Array() {
		parsed.ExperiencePeriods = append(parsed.ExperiencePeriods, models.ExperiencePeriod{
			JobTitle:   p.Get("jobTitle").String(),
			StartYear:  p.Get("startYear").String(),
			StartMonth: p.Get("startMonth").String(),
			EndYear:    p.Get("endYear").String(),
			EndMonth:   p.Get("endMonth").String(),
		})
	}

	return parsed
}

// applyRelevance copies the model's per-index relevant flags onto the
// original periods. Extra entries in the response are ignored; missing ones
// leave the default false.
func applyRelevance(periods []models.ExperiencePeriod, text string) []models.ExperiencePeriod {
	out := make([]models.ExperiencePeriod, len(periods))
	copy(out, periods)

	annotated := gjson.Get(text, "experiencePeriods").Array()
	for i := range out {
		if i >= len(annotated) {
			break
		}
		entry := annotated[i]
		rel := entry.Get("relevant")
		if !rel.Exists() {
			rel = entry.Get("isRelevant")
		}
		out[i].Relevant = rel.Bool()
	}
	return out
}
