package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"carematch/internal/domain"
)

func newSuggestionFixture(rec Recommender) (*SuggestionServiceImpl, *requestRepoMock, *providerRepoMock, *assignmentRepoMock) {
	requests := &requestRepoMock{}
	providers := &providerRepoMock{providers: []domain.Provider{
		{ID: 1, Name: "Anna", Specialty: "nursing"},
		{ID: 2, Name: "Boris", Specialty: "physiotherapy"},
	}}
	assignments := &assignmentRepoMock{}
	assignmentSvc := NewAssignmentService(assignments, requests, providers, zap.NewNop())
	svc := NewSuggestionService(rec, requests, providers, assignments, assignmentSvc, zap.NewNop())
	return svc, requests, providers, assignments
}

func seedSuggestionRequest(requests *requestRepoMock, family *domain.Family) {
	day := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	requests.requests = append(requests.requests, domain.CareRequest{
		ID:        1,
		FamilyID:  1,
		CareType:  "nursing",
		StartTime: day.Add(10 * time.Hour),
		EndTime:   day.Add(12 * time.Hour),
		Family:    family,
	})
}

func TestSuggestReturnsRecommendation(t *testing.T) {
	rec := &recommenderMock{answer: `{"providerId": 1, "name": "Anna", "reasoning": "подходит по специализации"}`}
	svc, requests, _, _ := newSuggestionFixture(rec)
	seedSuggestionRequest(requests, nil)

	result, err := svc.Suggest(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), result.RequestID)
	assert.Equal(t, int64(1), result.Suggestion.ProviderID)
	assert.Equal(t, "Anna", result.Suggestion.Name)
	assert.Equal(t, "подходит по специализации", result.Suggestion.Reasoning)
	assert.False(t, result.HasConflict)
}

func TestSuggestParsesMarkdownFencedAnswer(t *testing.T) {
	rec := &recommenderMock{answer: "```json\n{\"providerId\": 2, \"name\": \"Boris\", \"reasoning\": \"свободен в это время\"}\n```"}
	svc, requests, _, _ := newSuggestionFixture(rec)
	seedSuggestionRequest(requests, nil)

	result, err := svc.Suggest(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, int64(2), result.Suggestion.ProviderID)
	assert.Equal(t, "Boris", result.Suggestion.Name)
}

func TestSuggestInvalidModelAnswer(t *testing.T) {
	rec := &recommenderMock{answer: "извините, не могу выбрать специалиста"}
	svc, requests, _, _ := newSuggestionFixture(rec)
	seedSuggestionRequest(requests, nil)

	_, err := svc.Suggest(context.Background(), 1)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSuggestUnknownProviderInAnswer(t *testing.T) {
	rec := &recommenderMock{answer: `{"providerId": 404, "name": "Nobody", "reasoning": "..."}`}
	svc, requests, _, _ := newSuggestionFixture(rec)
	seedSuggestionRequest(requests, nil)

	_, err := svc.Suggest(context.Background(), 1)
	assert.ErrorIs(t, err, domain.ErrProviderNotFound)
}

func TestSuggestRequestNotFound(t *testing.T) {
	rec := &recommenderMock{answer: `{"providerId": 1, "name": "Anna", "reasoning": "..."}`}
	svc, _, _, _ := newSuggestionFixture(rec)

	_, err := svc.Suggest(context.Background(), 404)
	assert.ErrorIs(t, err, domain.ErrRequestNotFound)
}

func TestSuggestMarksConflict(t *testing.T) {
	rec := &recommenderMock{answer: `{"providerId": 1, "name": "Anna", "reasoning": "..."}`}
	svc, requests, _, assignments := newSuggestionFixture(rec)
	seedSuggestionRequest(requests, nil)

	day := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	seedAssignment(assignments, 1, 99, 1, day.Add(11*time.Hour), day.Add(13*time.Hour))

	result, err := svc.Suggest(context.Background(), 1)
	require.NoError(t, err)
	assert.True(t, result.HasConflict)
}

func TestSuggestPromptContents(t *testing.T) {
	rec := &recommenderMock{answer: `{"providerId": 1, "name": "Anna", "reasoning": "..."}`}
	svc, requests, _, _ := newSuggestionFixture(rec)
	seedSuggestionRequest(requests, &domain.Family{ID: 1, Name: "Ивановы", Consistency: false})

	_, err := svc.Suggest(context.Background(), 1)
	require.NoError(t, err)

	assert.Contains(t, rec.prompt, "Care Type: nursing")
	assert.Contains(t, rec.prompt, "id:1, Anna (nursing)")
	assert.Contains(t, rec.prompt, "id:2, Boris (physiotherapy)")
	assert.Contains(t, rec.prompt, "flexible with different providers")
	assert.NotContains(t, rec.prompt, "IMPORTANT")
}

func TestSuggestPromptIncludesFamilyHistory(t *testing.T) {
	rec := &recommenderMock{answer: `{"providerId": 1, "name": "Anna", "reasoning": "..."}`}
	svc, requests, providers, assignments := newSuggestionFixture(rec)
	seedSuggestionRequest(requests, &domain.Family{ID: 1, Name: "Ивановы", Consistency: true})

	day := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	provider, _ := providers.GetByID(context.Background(), 1)
	assignments.add(domain.ProviderAssignment{
		Assignment: domain.Assignment{
			ID:         1,
			RequestID:  50,
			ProviderID: 1,
			Provider:   provider,
			Request: &domain.CareRequest{
				ID:       50,
				FamilyID: 1,
				CareType: "nursing",
			},
		},
		CareType:  "nursing",
		StartTime: day.Add(9 * time.Hour),
		EndTime:   day.Add(11 * time.Hour),
	})

	_, err := svc.Suggest(context.Background(), 1)
	require.NoError(t, err)

	assert.Contains(t, rec.prompt, "Previous assignments for this family")
	assert.Contains(t, rec.prompt, "Anna (nursing) for nursing")
	assert.Contains(t, rec.prompt, "prefers consistency")
}

func TestSuggestRecommenderNotConfigured(t *testing.T) {
	svc, requests, _, _ := newSuggestionFixture(nil)
	seedSuggestionRequest(requests, nil)

	_, err := svc.Suggest(context.Background(), 1)
	assert.Error(t, err)
}
