package analysis

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chatModelMock counts calls so tests can assert that validation
// short-circuits before any provider round trip.
type chatModelMock struct {
	reply string
	err   error
	calls int
}

func (m *chatModelMock) Ask(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	m.calls++
	if m.err != nil {
		return "", m.err
	}
	return m.reply, nil
}

const goodReply = `{"score":85,"keywordMatch":70,"missingKeywords":["Python"],"suggestions":["Add metrics"],"strengths":["Clear formatting"],"improvements":["Add certifications"]}`

var sampleResume = json.RawMessage(`{"name":"Jane Doe","skills":["Go","SQL"]}`)

func TestAnalyze_EmptyInputsRejectedBeforeProviderCall(t *testing.T) {
	cases := []struct {
		name   string
		resume json.RawMessage
		jobDsc string
	}{
		{"nil resume", nil, "Job desc"},
		{"empty resume", json.RawMessage(``), "Job desc"},
		{"null resume", json.RawMessage(`null`), "Job desc"},
		{"empty object resume", json.RawMessage(`{}`), "Job desc"},
		{"empty job description", sampleResume, ""},
		{"blank job description", sampleResume, "   "},
		{"both empty", nil, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			mock := &chatModelMock{reply: goodReply}
			svc := NewService(nil, mock, "test-model", 0)

			_, err := svc.Analyze(context.Background(), uuid.New(), tc.resume, tc.jobDsc)
			assert.ErrorIs(t, err, ErrValidation)
			assert.Equal(t, 0, mock.calls)
		})
	}
}

func TestAnalyze_ParsesSixFieldReply(t *testing.T) {
	mock := &chatModelMock{reply: goodReply}
	svc := NewService(nil, mock, "test-model", 0)
	owner := uuid.New()

	out, err := svc.Analyze(context.Background(), owner, sampleResume, "Job desc")
	require.NoError(t, err)
	assert.Equal(t, 1, mock.calls)

	assert.Equal(t, owner, out.OwnerID)
	assert.Equal(t, "test-model", out.Model)
	assert.Equal(t, float64(85), out.Result.Score)
	assert.Equal(t, float64(70), out.Result.KeywordMatch)
	assert.Equal(t, []string{"Python"}, out.Result.MissingKeywords)
	assert.Equal(t, []string{"Add metrics"}, out.Result.Suggestions)
	assert.Equal(t, []string{"Clear formatting"}, out.Result.Strengths)
	assert.Equal(t, []string{"Add certifications"}, out.Result.Improvements)
}

func TestAnalyze_SalvagesFencedReply(t *testing.T) {
	mock := &chatModelMock{reply: "```json\n" + goodReply + "\n```"}
	svc := NewService(nil, mock, "test-model", 0)

	out, err := svc.Analyze(context.Background(), uuid.New(), sampleResume, "Job desc")
	require.NoError(t, err)
	assert.Equal(t, float64(85), out.Result.Score)
}

func TestAnalyze_NonJSONReplyFails(t *testing.T) {
	mock := &chatModelMock{reply: "Sure, here's my analysis: the resume looks fine."}
	svc := NewService(nil, mock, "test-model", 0)

	_, err := svc.Analyze(context.Background(), uuid.New(), sampleResume, "Job desc")
	assert.ErrorIs(t, err, ErrBadModelOutput)
	assert.NotErrorIs(t, err, ErrProviderCall)
}

func TestAnalyze_ScoreOutOfRangeFails(t *testing.T) {
	cases := []string{
		`{"score":120,"keywordMatch":70,"missingKeywords":[],"suggestions":[],"strengths":[],"improvements":[]}`,
		`{"score":-5,"keywordMatch":70,"missingKeywords":[],"suggestions":[],"strengths":[],"improvements":[]}`,
		`{"score":85,"keywordMatch":101,"missingKeywords":[],"suggestions":[],"strengths":[],"improvements":[]}`,
	}
	for _, reply := range cases {
		mock := &chatModelMock{reply: reply}
		svc := NewService(nil, mock, "test-model", 0)

		_, err := svc.Analyze(context.Background(), uuid.New(), sampleResume, "Job desc")
		assert.ErrorIs(t, err, ErrBadModelOutput)
	}
}

func TestAnalyze_MissingListsNormalizedToEmpty(t *testing.T) {
	mock := &chatModelMock{reply: `{"score":50,"keywordMatch":40}`}
	svc := NewService(nil, mock, "test-model", 0)

	out, err := svc.Analyze(context.Background(), uuid.New(), sampleResume, "Job desc")
	require.NoError(t, err)
	assert.NotNil(t, out.Result.MissingKeywords)
	assert.Empty(t, out.Result.MissingKeywords)
	assert.NotNil(t, out.Result.Suggestions)
	assert.NotNil(t, out.Result.Strengths)
	assert.NotNil(t, out.Result.Improvements)
}

func TestAnalyze_ProviderFailureIsDistinctFromParseFailure(t *testing.T) {
	mock := &chatModelMock{err: errors.New("connection refused")}
	svc := NewService(nil, mock, "test-model", 0)

	_, err := svc.Analyze(context.Background(), uuid.New(), sampleResume, "Job desc")
	assert.ErrorIs(t, err, ErrProviderCall)
	assert.NotErrorIs(t, err, ErrBadModelOutput)
}

func TestAnalyze_PromptCarriesBothDocuments(t *testing.T) {
	var captured string
	mock := &capturingChat{reply: goodReply, capture: &captured}
	svc := NewService(nil, mock, "test-model", 0)

	_, err := svc.Analyze(context.Background(), uuid.New(), sampleResume, "Senior Go engineer, Kubernetes")
	require.NoError(t, err)
	assert.Contains(t, captured, `"Jane Doe"`)
	assert.Contains(t, captured, "Senior Go engineer, Kubernetes")
	assert.Contains(t, captured, "keywordMatch")
}

type capturingChat struct {
	reply   string
	capture *string
}

func (m *capturingChat) Ask(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	*m.capture = userPrompt
	return m.reply, nil
}

func TestTruncate_KeepsRuneBoundaries(t *testing.T) {
	s := "résumé — инженер"
	for max := 0; max <= len(s); max++ {
		out := truncate(s, max)
		assert.True(t, utf8.ValidString(out), "max=%d", max)
		assert.LessOrEqual(t, len(out), max)
		assert.True(t, strings.HasPrefix(s, out))
	}
	assert.Equal(t, s, truncate(s, len(s)+10))
}
