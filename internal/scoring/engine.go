package scoring

import (
	"context"
	"fmt"
	"strings"

	"resume-workers/internal/lifecycle"
	"resume-workers/internal/models"
)

// Engine sequences the sub-scorers for one applicant/job pair. Skills run
// first: a disqualifying skills verdict short-circuits the pass so the
// remaining model calls are never spent on an applicant who failed the
// hard gate.
type Engine struct {
	skills     *SkillsScorer
	education  *EducationScorer
	experience *ExperienceScorer
}

func NewEngine(skills *SkillsScorer, education *EducationScorer, experience *ExperienceScorer) *Engine {
	return &Engine{
		skills:     skills,
		education:  education,
		experience: experience,
	}
}

// Score runs the full pass and returns a tagged outcome. Sub-scorer errors
// abort the pass; there is no partial-score fallback.
func (e *Engine) Score(ctx context.Context, applicant *models.Applicant, job *models.JobPosting) lifecycle.ScoringOutcome {
	skillsScore, err := e.skills.Score(ctx, job.Skills, applicant.SkillList())
	if err != nil {
		return lifecycle.Failed(err)
	}

	if skillsScore.Disqualified {
		partial := &models.ScoreResult{
			SkillsScore:    skillsScore.Score,
			Disqualified:   true,
			SkillJudgments: skillsScore.Judgments,
		}
		return lifecycle.Disqualified(disqualificationReason(skillsScore.Judgments), partial)
	}

	// The remaining three scorers have no data dependency on each other.
	educationScore, err := e.education.Score(ctx,
		applicant.ParsedHighestEducationDegree, applicant.ParsedEducationField,
		job.EducationDegree, job.EducationField)
	if err != nil {
		return lifecycle.Failed(err)
	}

	tzMatch, err := MatchTimezones(applicant.ParsedTimezone, job.Timezone)
	if err != nil {
		return lifecycle.Failed(err)
	}

	expScore, err := e.experience.Score(ctx, applicant.Experiences, job.YearsOfExperience, job.Title)
	if err != nil {
		return lifecycle.Failed(err)
	}

	weights := Weights{
		Education:  job.EducationWeight,
		Skills:     job.SkillsWeight,
		Timezone:   job.TimezoneWeight,
		Experience: job.ExperienceWeight,
	}

	return lifecycle.Success(&models.ScoreResult{
		EducationScore:    educationScore,
		SkillsScore:       skillsScore.Score,
		TimezoneScore:     tzMatch.Score,
		ExperienceScore:   expScore.Score,
		OverallScore:      Overall(educationScore, skillsScore.Score, tzMatch.Score, expScore.Score, weights),
		YearsOfExperience: expScore.YearsOfExperience,
		SkillJudgments:    skillsScore.Judgments,
		Experiences:       expScore.Periods,
	})
}

func disqualificationReason(judgments []models.SkillJudgment) string {
	var missing []string
	for _, j := range judgments {
		if j.MatchType == models.MatchMissing {
			missing = append(missing, j.JobSkillName)
		}
	}
	if len(missing) == 0 {
		return "required skills not met"
	}
	return fmt.Sprintf("missing required skills: %s", strings.Join(missing, ", "))
}
