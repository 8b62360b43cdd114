package scoring

import (
	"context"

	stderrors "resume-workers/internal/common/errors"
	"resume-workers/internal/models"
)

// SkillsMatchResult is what the skills-match oracle returns: one judgment
// per job skill plus a hard-gate disqualification flag. The disqualification
// policy lives in the model, not here.
type SkillsMatchResult struct {
	Judgments    []models.SkillJudgment `json:"jobSkillJudgments"`
	Disqualified bool                   `json:"disqualified"`
}

// SkillsMatcher asks the oracle to judge the applicant's skills against the
// job's required skill names.
type SkillsMatcher interface {
	MatchSkills(ctx context.Context, jobSkills, applicantSkills []string) (*SkillsMatchResult, error)
}

// SkillsScore is the weighted coverage output of one skills pass.
type SkillsScore struct {
	Score        float64
	Judgments    []models.SkillJudgment
	Disqualified bool
}

// SkillsScorer aggregates per-skill oracle judgments into a weighted
// coverage score.
type SkillsScorer struct {
	matcher SkillsMatcher
}

func NewSkillsScorer(matcher SkillsMatcher) *SkillsScorer {
	return &SkillsScorer{matcher: matcher}
}

// Score computes (Σ weight*raw / Σ weight) * 100 over the oracle's
// judgments. Weights are looked up by exact name from the job's skill list;
// a judgment whose name matches nothing contributes weight 0 rather than
// failing, since models occasionally paraphrase skill names. The score is
// computed even when the oracle flags disqualification; the caller decides
// whether to short-circuit.
func (s *SkillsScorer) Score(ctx context.Context, jobSkills models.JobSkillList, applicantSkills []string) (*SkillsScore, error) {
	result, err := s.matcher.MatchSkills(ctx, jobSkills.Names(), applicantSkills)
	if err != nil {
		return nil, stderrors.NewOracleError(stderrors.ErrCodeSkillsMatchFailed, err)
	}

	weights := jobSkills.WeightByName()

	var totalWeight, totalWeighted float64
	judgments := make([]models.SkillJudgment, 0, len(result.Judgments))
	for _, j := range result.Judgments {
		weight := weights[j.JobSkillName]
		j.WeightedScore = weight * j.RawScore
		totalWeight += weight
		totalWeighted += j.WeightedScore
		judgments = append(judgments, j)
	}

	score := 0.0
	if totalWeight > 0 {
		score = totalWeighted / totalWeight * 100
	}

	return &SkillsScore{
		Score:        score,
		Judgments:    judgments,
		Disqualified: result.Disqualified,
	}, nil
}
