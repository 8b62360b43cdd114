package models

import (
	"encoding/json"
	"fmt"
)

// JobSkill is one required skill with its unnormalized importance weight.
type JobSkill struct {
	Name   string  `json:"name"`
	Weight float64 `json:"weight"`
}

// JobSkillList accepts both storage formats the platform has used: a JSON
// array of {name, weight} objects, and the legacy comma-separated string
// where every skill carries weight 1.
type JobSkillList []JobSkill

func (l *JobSkillList) UnmarshalJSON(data []byte) error {
	var structured []JobSkill
	if err := json.Unmarshal(data, &structured); err == nil {
		*l = structured
		return nil
	}

	var legacy string
	if err := json.Unmarshal(data, &legacy); err != nil {
		return fmt.Errorf("job skills are neither a list nor a string: %s", data)
	}

	names := splitCommaList(legacy)
	skills := make(JobSkillList, 0, len(names))
	for _, name := range names {
		skills = append(skills, JobSkill{Name: name, Weight: 1})
	}
	*l = skills
	return nil
}

// Names returns the skill names in list order.
func (l JobSkillList) Names() []string {
	names := make([]string, 0, len(l))
	for _, s := range l {
		names = append(names, s.Name)
	}
	return names
}

// WeightByName returns a name-to-weight lookup table.
func (l JobSkillList) WeightByName() map[string]float64 {
	weights := make(map[string]float64, len(l))
	for _, s := range l {
		weights[s.Name] = s.Weight
	}
	return weights
}

// JobPosting mirrors the platform's job record. The four category weights
// are stored as string-encoded decimals ("0.5"), hence the ,string tags.
type JobPosting struct {
	ID                int64        `json:"id"`
	Title             string       `json:"title"`
	EducationDegree   string       `json:"educationDegree"`
	EducationField    string       `json:"educationField"`
	Timezone          string       `json:"timezone"`
	YearsOfExperience int          `json:"yearsOfExperience"`
	Skills            JobSkillList `json:"skills"`

	SkillsWeight     float64 `json:"skillsWeight,string"`
	ExperienceWeight float64 `json:"experienceWeight,string"`
	EducationWeight  float64 `json:"educationWeight,string"`
	TimezoneWeight   float64 `json:"timezoneWeight,string"`
}
