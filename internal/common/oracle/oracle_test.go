package oracle

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	stderrors "resume-workers/internal/common/errors"
	"resume-workers/internal/models"
	"resume-workers/internal/scoring"
)

func TestCleanResponse(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected string
	}{
		{
			name:     "plain JSON untouched",
			raw:      `{"score": 80}`,
			expected: `{"score": 80}`,
		},
		{
			name:     "json code fence",
			raw:      "```json\n{\"score\": 80}\n```",
			expected: `{"score": 80}`,
		},
		{
			name:     "bare code fence",
			raw:      "```\n{\"score\": 80}\n```",
			expected: `{"score": 80}`,
		},
		{
			name:     "think preamble stripped",
			raw:      "Let me reason about this.</think>{\"score\": 80}",
			expected: `{"score": 80}`,
		},
		{
			name:     "think preamble then fence",
			raw:      "thoughts</think>\n```json\n{\"score\": 80}\n```",
			expected: `{"score": 80}`,
		},
		{
			name:     "surrounding whitespace",
			raw:      "\n\n  42  \n",
			expected: "42",
		},
		{
			name:     "empty",
			raw:      "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CleanResponse(tt.raw))
		})
	}
}

func TestValidateExtraction(t *testing.T) {
	valid := `{
		"highestEducationDegree": "Master",
		"educationField": "Computer Science",
		"timezone": "GMT+2",
		"skills": ["Go", "Redis"],
		"experiencePeriods": [
			{"jobTitle": "Engineer", "startYear": "2019", "startMonth": "March",
			 "endYear": "Present", "endMonth": "Present"}
		]
	}`
	require.NoError(t, validate(extractionSchema, valid))

	t.Run("unknown degree rejected", func(t *testing.T) {
		bad := `{
			"highestEducationDegree": "Doctorate",
			"educationField": "", "timezone": "", "skills": [], "experiencePeriods": []
		}`
		err := validate(extractionSchema, bad)
		require.Error(t, err)
		assert.True(t, stderrors.IsCode(err, stderrors.ErrCodeOracleInvalidOutput))
	})

	t.Run("missing field rejected", func(t *testing.T) {
		bad := `{"highestEducationDegree": "Bachelor"}`
		require.Error(t, validate(extractionSchema, bad))
	})

	t.Run("non-JSON rejected", func(t *testing.T) {
		require.Error(t, validate(extractionSchema, "the candidate has a Master degree"))
	})

	t.Run("every ladder degree accepted", func(t *testing.T) {
		for _, degree := range []string{"None", "High School", "Bachelor", "Master", "PhD"} {
			doc := fmt.Sprintf(`{
				"highestEducationDegree": %q,
				"educationField": "", "timezone": "", "skills": [], "experiencePeriods": []
			}`, degree)
			require.NoError(t, validate(extractionSchema, doc), degree)
		}
	})

	t.Run("numeric years accepted", func(t *testing.T) {
		numeric := `{
			"highestEducationDegree": "Bachelor",
			"educationField": "Physics", "timezone": "GMT+0", "skills": [],
			"experiencePeriods": [
				{"jobTitle": "Analyst", "startYear": 2016, "startMonth": 1,
				 "endYear": 2018, "endMonth": 12}
			]
		}`
		require.NoError(t, validate(extractionSchema, numeric))
	})
}

func TestDecodeParsedResume(t *testing.T) {
	text := `{
		"highestEducationDegree": "PhD",
		"educationField": "Mathematics",
		"timezone": "GMT+5:30",
		"skills": [" Go ", "", "Kubernetes"],
		"experiencePeriods": [
			{"jobTitle": "Researcher", "startYear": 2016, "startMonth": "March",
			 "endYear": "Present", "endMonth": "Present"}
		]
	}`

	parsed := decodeParsedResume(text)

	assert.Equal(t, "PhD", parsed.HighestEducationDegree)
	assert.Equal(t, "Mathematics", parsed.EducationField)
	assert.Equal(t, "GMT+5:30", parsed.Timezone)
	assert.Equal(t, []string{"Go", "Kubernetes"}, parsed.Skills)

	require.Len(t, parsed.ExperiencePeriods, 1)
	period := parsed.ExperiencePeriods[0]
	assert.Equal(t, "Researcher", period.JobTitle)
	assert.Equal(t, "2016", period.StartYear, "numeric year coerced to string")
	assert.Equal(t, "Present", period.EndYear)
}

// An extracted degree must score against the ladder the jobs use; the
// platform spells it "High School", in both the job form and the ladder.
func TestExtractedDegreeRanksOnLadder(t *testing.T) {
	text := `{
		"highestEducationDegree": "High School",
		"educationField": "General", "timezone": "GMT+0", "skills": [],
		"experiencePeriods": []
	}`
	require.NoError(t, validate(extractionSchema, text))

	parsed := decodeParsedResume(text)
	assert.Equal(t, 1, scoring.DegreeValue(parsed.HighestEducationDegree))
	assert.Equal(t, 100.0, scoring.DegreeScore(parsed.HighestEducationDegree, "High School"))
}

func TestValidateSkills(t *testing.T) {
	valid := `{
		"jobSkillJudgments": [
			{"jobSkillName": "Python", "matchType": "explicit",
			 "applicantSkillMatched": "Python", "rawScore": 1},
			{"jobSkillName": "Kafka", "matchType": "missing",
			 "applicantSkillMatched": "", "rawScore": 0}
		],
		"disqualified": false
	}`
	require.NoError(t, validate(skillsSchema, valid))

	t.Run("bad match type rejected", func(t *testing.T) {
		bad := `{
			"jobSkillJudgments": [
				{"jobSkillName": "Python", "matchType": "partial", "rawScore": 0.5}
			],
			"disqualified": false
		}`
		require.Error(t, validate(skillsSchema, bad))
	})

	t.Run("raw score out of range rejected", func(t *testing.T) {
		bad := `{
			"jobSkillJudgments": [
				{"jobSkillName": "Python", "matchType": "explicit", "rawScore": 1.5}
			],
			"disqualified": false
		}`
		require.Error(t, validate(skillsSchema, bad))
	})

	t.Run("missing disqualified flag rejected", func(t *testing.T) {
		bad := `{"jobSkillJudgments": []}`
		require.Error(t, validate(skillsSchema, bad))
	})
}

func TestApplyRelevance(t *testing.T) {
	periods := []models.ExperiencePeriod{
		{JobTitle: "Backend Engineer", StartYear: "2016", StartMonth: "January", EndYear: "2019", EndMonth: "June"},
		{JobTitle: "Barista", StartYear: "2014", StartMonth: "May", EndYear: "2015", EndMonth: "December"},
	}

	t.Run("flags copied by index", func(t *testing.T) {
		text := `{"experiencePeriods": [
			{"jobTitle": "Backend Engineer", "relevant": true},
			{"jobTitle": "Barista", "relevant": false}
		]}`
		tagged := applyRelevance(periods, text)
		require.Len(t, tagged, 2)
		assert.True(t, tagged[0].Relevant)
		assert.False(t, tagged[1].Relevant)
		// Dates carried from input, not the model.
		assert.Equal(t, "2016", tagged[0].StartYear)
	})

	t.Run("isRelevant alias accepted", func(t *testing.T) {
		text := `{"experiencePeriods": [
			{"jobTitle": "Backend Engineer", "isRelevant": true},
			{"jobTitle": "Barista", "isRelevant": false}
		]}`
		tagged := applyRelevance(periods, text)
		assert.True(t, tagged[0].Relevant)
	})

	t.Run("short response leaves rest untagged", func(t *testing.T) {
		text := `{"experiencePeriods": [{"jobTitle": "Backend Engineer", "relevant": true}]}`
		tagged := applyRelevance(periods, text)
		require.Len(t, tagged, 2)
		assert.True(t, tagged[0].Relevant)
		assert.False(t, tagged[1].Relevant)
	})

	t.Run("input slice not mutated", func(t *testing.T) {
		text := `{"experiencePeriods": [{"relevant": true}, {"relevant": true}]}`
		_ = applyRelevance(periods, text)
		assert.False(t, periods[0].Relevant)
	})
}

func TestParseSimilarity(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected float64
		wantErr  bool
	}{
		{name: "bare number", text: "85", expected: 85},
		{name: "decimal", text: "72.5", expected: 72.5},
		{name: "score object", text: `{"score": 60}`, expected: 60},
		{name: "bounds", text: "100", expected: 100},
		{name: "zero", text: "0", expected: 0},
		{name: "above scale rejected", text: "250", wantErr: true},
		{name: "negative rejected", text: "-5", wantErr: true},
		{name: "score object above scale rejected", text: `{"score": 250}`, wantErr: true},
		{name: "prose rejected", text: "very similar", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseSimilarity(tt.text)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, stderrors.IsCode(err, stderrors.ErrCodeOracleInvalidOutput))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestSkillsPromptRequiresJobSkills(t *testing.T) {
	_, err := skillsPrompt(nil, []string{"Go"})
	require.Error(t, err)
}
