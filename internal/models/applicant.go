// Package models holds the domain types shared by the workers, the scoring
// engine, and the platform API client. JSON tags follow the platform's
// camelCase field names.
package models

import "strings"

// ApplicantStatus is the pipeline stage of one application.
type ApplicantStatus string

const (
	StatusPending      ApplicantStatus = "pending"
	StatusParsing      ApplicantStatus = "parsing"
	StatusProcessing   ApplicantStatus = "processing"
	StatusCompleted    ApplicantStatus = "completed"
	StatusFailed       ApplicantStatus = "failed"
	StatusDisqualified ApplicantStatus = "disqualified"
)

// ExperiencePeriod is one employment period from a resume. Year and month
// fields are strings because they carry sentinel values alongside numbers:
// "Present" for ongoing roles and "None" for unknown months.
type ExperiencePeriod struct {
	JobTitle   string `json:"jobTitle"`
	StartYear  string `json:"startYear"`
	StartMonth string `json:"startMonth"`
	EndYear    string `json:"endYear"`
	EndMonth   string `json:"endMonth"`
	Relevant   bool   `json:"isRelevant"`
}

// Applicant mirrors the platform's applicant record, including the parsed
// resume fields an earlier extraction pass persisted.
type Applicant struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`

	ParsedHighestEducationDegree string `json:"parsedHighestEducationDegree"`
	ParsedEducationField         string `json:"parsedEducationField"`
	ParsedTimezone               string `json:"parsedTimezone"`
	ParsedSkills                 string `json:"parsedSkills"`

	Experiences []ExperiencePeriod `json:"experiences"`

	Status ApplicantStatus `json:"statusAI"`
}

// SkillList splits the stored comma-separated skills string into trimmed
// names. The platform stores skills as one string column.
func (a *Applicant) SkillList() []string {
	return splitCommaList(a.ParsedSkills)
}

func splitCommaList(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
