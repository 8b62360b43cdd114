package lifecycle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume-workers/internal/models"
)

func TestTrackerFollowsLegalPath(t *testing.T) {
	tr := NewTracker(models.StatusPending)

	require.NoError(t, tr.Advance(models.StatusParsing))
	require.NoError(t, tr.Advance(models.StatusProcessing))
	require.NoError(t, tr.Advance(models.StatusCompleted))
	assert.Equal(t, models.StatusCompleted, tr.Current())
}

func TestTrackerCanFailFromAnyStage(t *testing.T) {
	for _, start := range []models.ApplicantStatus{
		models.StatusPending, models.StatusParsing, models.StatusProcessing,
	} {
		tr := NewTracker(start)
		assert.NoError(t, tr.Advance(models.StatusFailed), string(start))
	}
}

func TestTrackerRejectsIllegalTransitions(t *testing.T) {
	tests := []struct {
		name string
		from models.ApplicantStatus
		to   models.ApplicantStatus
	}{
		{name: "skipping ahead", from: models.StatusPending, to: models.StatusCompleted},
		{name: "leaving a terminal state", from: models.StatusFailed, to: models.StatusParsing},
		{name: "going backwards", from: models.StatusProcessing, to: models.StatusParsing},
		{name: "double terminal", from: models.StatusCompleted, to: models.StatusFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := NewTracker(tt.from)
			err := tr.Advance(tt.to)
			require.Error(t, err)
			assert.Equal(t, tt.from, tr.Current(), "tracker must not move on a rejected transition")
		})
	}
}

func TestTrackerCheckDoesNotMove(t *testing.T) {
	tr := NewTracker(models.StatusPending)

	require.NoError(t, tr.Check(models.StatusParsing))
	assert.Equal(t, models.StatusPending, tr.Current())

	require.Error(t, tr.Check(models.StatusCompleted))
}
