package scoring

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeFieldMatcher struct {
	score float64
	err   error
	calls int
}

func (f *fakeFieldMatcher) FieldSimilarity(_ context.Context, _, _ string) (float64, error) {
	f.calls++
	return f.score, f.err
}

func TestDegreeScore(t *testing.T) {
	tests := []struct {
		name      string
		applicant string
		required  string
		want      float64
	}{
		{name: "exact match", applicant: "Bachelor", required: "Bachelor", want: 100},
		{name: "one rung over", applicant: "Master", required: "Bachelor", want: 110},
		{name: "phd over high school", applicant: "PhD", required: "High School", want: 130},
		{name: "one rung under", applicant: "Bachelor", required: "Master", want: 100.0 * 2 / 3},
		{name: "no degree vs bachelor", applicant: "None", required: "Bachelor", want: 0},
		{name: "unknown degree ranks zero", applicant: "Bootcamp Certificate", required: "Bachelor", want: 0},
		{name: "required none always satisfied", applicant: "None", required: "None", want: 100},
		{name: "required unknown always satisfied", applicant: "Bachelor", required: "Diploma", want: 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, DegreeScore(tt.applicant, tt.required), 1e-9)
		})
	}
}

func TestDegreeScoreSelfMatch(t *testing.T) {
	for _, degree := range []string{"High School", "Bachelor", "Master", "PhD"} {
		assert.Equal(t, 100.0, DegreeScore(degree, degree), degree)
	}
}

func TestEducationScorer(t *testing.T) {
	matcher := &fakeFieldMatcher{score: 80}
	scorer := NewEducationScorer(matcher)

	score, err := scorer.Score(context.Background(), "Bachelor", "Computer Science", "Bachelor", "Software Engineering")
	require.NoError(t, err)
	// 100*0.6 + 80*0.4
	assert.InDelta(t, 92.0, score, 1e-9)
	assert.Equal(t, 1, matcher.calls)
}

func TestEducationScorerOracleError(t *testing.T) {
	matcher := &fakeFieldMatcher{err: errors.New("model unavailable")}
	scorer := NewEducationScorer(matcher)

	_, err := scorer.Score(context.Background(), "Bachelor", "CS", "Bachelor", "CS")
	assert.Error(t, err)
}
