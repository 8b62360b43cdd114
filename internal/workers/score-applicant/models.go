package scoreapplicant

import (
	"encoding/json"
	"fmt"

	stderrors "resume-workers/internal/common/errors"
	"resume-workers/internal/models"
)

// Input is the queue payload for one scoring job. The applicant and job
// records arrive as JSON-encoded strings (the producer serializes each
// record separately before building the envelope).
type Input struct {
	ApplicantID   int64  `json:"applicantId"`
	ApplicantData string `json:"applicantData"`
	JobData       string `json:"jobData"`
}

// Decode unpacks the nested applicant and job records.
func (in *Input) Decode() (*models.Applicant, *models.JobPosting, error) {
	var applicant models.Applicant
	if err := json.Unmarshal([]byte(in.ApplicantData), &applicant); err != nil {
		return nil, nil, stderrors.NewParseError(stderrors.ErrCodeMessageParseFailed,
			fmt.Sprintf("applicantData: %v", err))
	}

	var job models.JobPosting
	if err := json.Unmarshal([]byte(in.JobData), &job); err != nil {
		return nil, nil, stderrors.NewParseError(stderrors.ErrCodeMessageParseFailed,
			fmt.Sprintf("jobData: %v", err))
	}

	return &applicant, &job, nil
}
