package models

// SkillMatchType is the oracle's verdict for one job skill.
type SkillMatchType string

const (
	MatchExplicit SkillMatchType = "explicit"
	MatchImplied  SkillMatchType = "implied"
	MatchMissing  SkillMatchType = "missing"
)

// SkillJudgment is one per-job-skill oracle judgment. RawScore is 0-1;
// WeightedScore is filled in by the scorer, not the oracle.
type SkillJudgment struct {
	JobSkillName          string         `json:"jobSkillName"`
	MatchType             SkillMatchType `json:"matchType"`
	ApplicantSkillMatched string         `json:"applicantSkillMatched,omitempty"`
	RawScore              float64        `json:"rawScore"`
	WeightedScore         float64        `json:"weightedScore"`
}

// ScoreResult is the full output of one scoring pass. On disqualification
// only the skills fields are populated.
type ScoreResult struct {
	EducationScore    float64 `json:"educationScore"`
	SkillsScore       float64 `json:"skillsScore"`
	TimezoneScore     float64 `json:"timezoneScore"`
	ExperienceScore   float64 `json:"experienceScore"`
	OverallScore      float64 `json:"overallScore"`
	YearsOfExperience float64 `json:"yearsOfExperience"`

	Disqualified bool `json:"disqualified"`

	SkillJudgments []SkillJudgment    `json:"skillJudgments,omitempty"`
	Experiences    []ExperiencePeriod `json:"experiences,omitempty"`
}
