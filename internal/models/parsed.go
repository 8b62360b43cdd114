package models

// ParsedResume is the structured output of the resume extraction model.
type ParsedResume struct {
	HighestEducationDegree string             `json:"highestEducationDegree"`
	EducationField         string             `json:"educationField"`
	Timezone               string             `json:"timezone"`
	Skills                 []string           `json:"skills"`
	ExperiencePeriods      []ExperiencePeriod `json:"experiencePeriods"`
}
