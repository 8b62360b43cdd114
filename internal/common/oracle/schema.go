package oracle

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	stderrors "resume-workers/internal/common/errors"
)

// Each oracle flavor has a JSON Schema its responses must satisfy before
// anything is decoded. Validation failures surface as ORACLE_INVALID_OUTPUT
// and the job fails rather than scoring on garbage.

const extractionSchemaJSON = `{
  "type": "object",
  "required": ["highestEducationDegree", "educationField", "timezone", "skills", "experiencePeriods"],
  "properties": {
    "highestEducationDegree": {
      "type": "string",
      "enum": ["None", "High School", "Bachelor", "Master", "PhD"]
    },
    "educationField": {"type": "string"},
    "timezone": {"type": "string"},
    "skills": {
      "type": "array",
      "items": {"type": "string"}
    },
    "experiencePeriods": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["jobTitle", "startYear", "startMonth", "endYear", "endMonth"],
        "properties": {
          "jobTitle": {"type": "string"},
          "startYear": {"type": ["string", "integer"]},
          "startMonth": {"type": ["string", "integer"]},
          "endYear": {"type": ["string", "integer"]},
          "endMonth": {"type": ["string", "integer"]}
        }
      }
    }
  }
}`

const skillsSchemaJSON = `{
  "type": "object",
  "required": ["jobSkillJudgments", "disqualified"],
  "properties": {
    "jobSkillJudgments": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["jobSkillName", "matchType", "rawScore"],
        "properties": {
          "jobSkillName": {"type": "string"},
          "matchType": {
            "type": "string",
            "enum": ["explicit", "implied", "missing"]
          },
          "applicantSkillMatched": {"type": "string"},
          "rawScore": {"type": "number", "minimum": 0, "maximum": 1}
        }
      }
    },
    "disqualified": {"type": "boolean"}
  }
}`

const relevanceSchemaJSON = `{
  "type": "object",
  "required": ["experiencePeriods"],
  "properties": {
    "experiencePeriods": {
      "type": "array",
      "items": {
        "type": "object",
        "properties": {
          "jobTitle": {"type": "string"},
          "relevant": {"type": "boolean"},
          "isRelevant": {"type": "boolean"}
        }
      }
    }
  }
}`

var (
	extractionSchema = mustCompile(extractionSchemaJSON)
	skillsSchema     = mustCompile(skillsSchemaJSON)
	relevanceSchema  = mustCompile(relevanceSchemaJSON)
)

func mustCompile(schema string) *gojsonschema.Schema {
	compiled, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(schema))
	if err != nil {
		panic(fmt.Sprintf("oracle: bad schema: %v", err))
	}
	return compiled
}

func validate(schema *gojsonschema.Schema, text string) error {
	result, err := schema.Validate(gojsonschema.NewStringLoader(text))
	if err != nil {
		return stderrors.NewInvalidOutputError(fmt.Sprintf("response is not JSON: %v", err))
	}
	if !result.Valid() {
		var problems []string
		for _, desc := range result.Errors() {
			problems = append(problems, desc.String())
		}
		return stderrors.NewInvalidOutputError(strings.Join(problems, "; "))
	}
	return nil
}
