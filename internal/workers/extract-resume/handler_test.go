package extractresume

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	stderrors "resume-workers/internal/common/errors"
	"resume-workers/internal/common/logger"
	"resume-workers/internal/common/queue"
	"resume-workers/internal/models"
)

type fakeStore struct {
	data map[string][]byte
}

func (f *fakeStore) Get(_ context.Context, key string) ([]byte, error) {
	if data, ok := f.data[key]; ok {
		return data, nil
	}
	return nil, stderrors.NewNotFoundError(key)
}

type fakeExtractor struct {
	parsed  *models.ParsedResume
	err     error
	gotText string
}

func (f *fakeExtractor) ExtractResume(_ context.Context, text string) (*models.ParsedResume, error) {
	f.gotText = text
	return f.parsed, f.err
}

type fakeAPI struct {
	statuses      []models.ApplicantStatus
	reasons       []string
	statusCtxErrs []error
	parsed        *models.ParsedResume
	queued        []int64
	statusErr     error
	parsedErr     error
	queueErr      error
}

func (f *fakeAPI) SetStatus(ctx context.Context, _ int64, status models.ApplicantStatus, reason string) error {
	f.statuses = append(f.statuses, status)
	f.reasons = append(f.reasons, reason)
	f.statusCtxErrs = append(f.statusCtxErrs, ctx.Err())
	return f.statusErr
}

func (f *fakeAPI) UpdateParsedData(_ context.Context, _ int64, parsed *models.ParsedResume) error {
	f.parsed = parsed
	return f.parsedErr
}

func (f *fakeAPI) QueueScoring(_ context.Context, applicantID int64) error {
	f.queued = append(f.queued, applicantID)
	return f.queueErr
}

func newTestHandler(store *fakeStore, oracle *fakeExtractor, api *fakeAPI) *Handler {
	h := NewHandler(LoadConfig(), store, oracle, api, logger.NewNop())
	h.extract = func(data []byte) (string, error) { return string(data), nil }
	return h
}

func message(t *testing.T, input Input) *queue.Message {
	t.Helper()
	data, err := json.Marshal(input)
	require.NoError(t, err)
	return &queue.Message{ID: "msg-1", Name: TaskType, Data: data}
}

func TestHandlerHappyPath(t *testing.T) {
	store := &fakeStore{data: map[string][]byte{
		"resumes/19.pdf": []byte("resume text here"),
	}}
	parsed := &models.ParsedResume{
		HighestEducationDegree: "Master",
		Timezone:               "GMT+2",
		Skills:                 []string{"Go"},
	}
	oracle := &fakeExtractor{parsed: parsed}
	api := &fakeAPI{}

	h := newTestHandler(store, oracle, api)
	h.Handle(context.Background(), message(t, Input{ApplicantID: 19, ResumePath: "resumes/19.pdf"}))

	assert.Equal(t, "resume text here", oracle.gotText)
	assert.Equal(t, parsed, api.parsed)
	assert.Equal(t, []models.ApplicantStatus{models.StatusParsing, models.StatusProcessing}, api.statuses)
	assert.Equal(t, []int64{19}, api.queued)
}

func TestHandlerMissingObjectFailsFromPending(t *testing.T) {
	store := &fakeStore{data: map[string][]byte{}}
	api := &fakeAPI{}

	h := newTestHandler(store, &fakeExtractor{}, api)
	h.Handle(context.Background(), message(t, Input{ApplicantID: 19, ResumePath: "resumes/missing.pdf"}))

	// The applicant never entered parsing: the PDF fetch precedes the
	// transition, so a miss goes straight from pending to failed.
	require.Len(t, api.statuses, 1)
	assert.Equal(t, models.StatusFailed, api.statuses[0])
	assert.Contains(t, api.reasons[0], "OBJECT_NOT_FOUND")
	assert.Empty(t, api.queued, "failed applicant must not reach scoring")
}

func TestHandlerOracleFailureFailsApplicant(t *testing.T) {
	store := &fakeStore{data: map[string][]byte{"r.pdf": []byte("text")}}
	oracle := &fakeExtractor{err: stderrors.NewInvalidOutputError("not JSON")}
	api := &fakeAPI{}

	h := newTestHandler(store, oracle, api)
	h.Handle(context.Background(), message(t, Input{ApplicantID: 19, ResumePath: "r.pdf"}))

	assert.Equal(t, models.StatusFailed, api.statuses[len(api.statuses)-1])
	assert.Nil(t, api.parsed)
	assert.Empty(t, api.queued)
}

func TestHandlerQueueScoringFailureFailsApplicant(t *testing.T) {
	store := &fakeStore{data: map[string][]byte{"r.pdf": []byte("text")}}
	oracle := &fakeExtractor{parsed: &models.ParsedResume{}}
	api := &fakeAPI{queueErr: errors.New("redis down")}

	h := newTestHandler(store, oracle, api)
	h.Handle(context.Background(), message(t, Input{ApplicantID: 19, ResumePath: "r.pdf"}))

	// Parsed data was persisted before the enqueue failed and stays put.
	assert.NotNil(t, api.parsed)
	assert.Equal(t, models.StatusFailed, api.statuses[len(api.statuses)-1])
}

func TestHandlerDropsMalformedMessage(t *testing.T) {
	api := &fakeAPI{}
	h := newTestHandler(&fakeStore{}, &fakeExtractor{}, api)

	h.Handle(context.Background(), &queue.Message{ID: "m", Name: TaskType, Data: []byte("not json")})
	h.Handle(context.Background(), message(t, Input{ResumePath: "no-applicant.pdf"}))

	assert.Empty(t, api.statuses, "no applicant to update")
}

func TestHandlerTerminalWriteSurvivesExpiredContext(t *testing.T) {
	store := &fakeStore{data: map[string][]byte{"r.pdf": []byte("text")}}
	oracle := &fakeExtractor{err: stderrors.NewOracleError(stderrors.ErrCodeOracleTimeout, context.DeadlineExceeded)}
	api := &fakeAPI{}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	h := newTestHandler(store, oracle, api)
	h.Handle(ctx, message(t, Input{ApplicantID: 19, ResumePath: "r.pdf"}))

	// The failed status still lands even though the job context is dead:
	// the terminal write runs on a detached context.
	require.NotEmpty(t, api.statuses)
	last := len(api.statuses) - 1
	assert.Equal(t, models.StatusFailed, api.statuses[last])
	assert.NoError(t, api.statusCtxErrs[last])
}

func TestHandlerEmptyTextStillExtracts(t *testing.T) {
	store := &fakeStore{data: map[string][]byte{"scan.pdf": []byte("")}}
	oracle := &fakeExtractor{parsed: &models.ParsedResume{}}
	api := &fakeAPI{}

	h := newTestHandler(store, oracle, api)
	h.Handle(context.Background(), message(t, Input{ApplicantID: 7, ResumePath: "scan.pdf"}))

	assert.Equal(t, []int64{7}, api.queued)
}
