package extractresume

// Input is the queue payload for one extraction job.
type Input struct {
	ApplicantID int64  `json:"applicantId"`
	ResumePath  string `json:"resumePath"`
}
