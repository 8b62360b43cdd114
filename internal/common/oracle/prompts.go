package oracle

import (
	"encoding/json"
	"fmt"
	"strings"

	"resume-workers/internal/models"
)

const extractionTemplate = `You are a resume parser. Extract structured data from the resume text below.

Respond with ONLY a JSON object, no prose, in exactly this shape:
{
  "highestEducationDegree": "None" | "High School" | "Bachelor" | "Master" | "PhD",
  "educationField": "<field of study, empty string if none>",
  "timezone": "<GMT offset like GMT+5:30, empty string if not determinable>",
  "skills": ["<skill>", ...],
  "experiencePeriods": [
    {
      "jobTitle": "<title>",
      "startYear": "<4-digit year>",
      "startMonth": "<month name, or None if unknown>",
      "endYear": "<4-digit year, or Present if ongoing>",
      "endMonth": "<month name, Present if ongoing, None if unknown>"
    }
  ]
}

Rules:
- Pick the single highest completed degree.
- Infer the timezone from the candidate's location when stated.
- List skills as short canonical names.
- One entry per distinct employment period, most recent first.

Resume text:
%s`

const fieldSimilarityTemplate = `Rate the similarity between two fields of study on a 0-100 scale, where 100 means the same field and 0 means entirely unrelated. Closely related disciplines score high.

Required field: %s
Candidate field: %s

Respond with ONLY the number.`

const skillsTemplate = `You are matching a candidate's skills against a job's required skills.

Job skills:
%s

Candidate skills:
%s

For EVERY job skill produce one judgment:
- "explicit": the candidate lists the skill (possibly under a synonym); rawScore 1.
- "implied": the candidate's other skills strongly imply it; rawScore between 0 and 1.
- "missing": no evidence; rawScore 0.

Set "disqualified" to true only when skills essential to the role are entirely missing.

Respond with ONLY a JSON object in exactly this shape:
{
  "jobSkillJudgments": [
    {
      "jobSkillName": "<job skill, verbatim>",
      "matchType": "explicit" | "implied" | "missing",
      "applicantSkillMatched": "<candidate skill matched, empty if missing>",
      "rawScore": <0-1>
    }
  ],
  "disqualified": <true|false>
}`

const relevanceTemplate = `You are judging which of a candidate's past roles are relevant experience for a target job.

Target job title: %s

Experience periods:
%s

Respond with ONLY a JSON object echoing the periods in the SAME order, each with a "relevant" boolean:
{
  "experiencePeriods": [
    {"jobTitle": "<title>", "relevant": <true|false>}
  ]
}

A role is relevant when its day-to-day work would transfer to the target job.`

func extractionPrompt(resumeText string) string {
	return fmt.Sprintf(extractionTemplate, resumeText)
}

func fieldSimilarityPrompt(jobField, applicantField string) string {
	return fmt.Sprintf(fieldSimilarityTemplate, jobField, applicantField)
}

func skillsPrompt(jobSkills, applicantSkills []string) (string, error) {
	if len(jobSkills) == 0 {
		return "", fmt.Errorf("no job skills to match")
	}
	return fmt.Sprintf(skillsTemplate,
		bulleted(jobSkills), bulleted(applicantSkills)), nil
}

func relevancePrompt(periods []models.ExperiencePeriod, jobTitle string) (string, error) {
	encoded, err := json.MarshalIndent(periods, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode experience periods: %w", err)
	}
	return fmt.Sprintf(relevanceTemplate, jobTitle, string(encoded)), nil
}

func bulleted(items []string) string {
	if len(items) == 0 {
		return "- (none)"
	}
	var b strings.Builder
	for _, item := range items {
		b.WriteString("- ")
		b.WriteString(item)
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}
