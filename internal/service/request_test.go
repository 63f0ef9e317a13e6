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

func newRequestFixture() (*RequestServiceImpl, *familyRepoMock, *requestRepoMock, *assignmentRepoMock) {
	families := &familyRepoMock{families: []domain.Family{{ID: 1, Name: "Ивановы"}}}
	requests := &requestRepoMock{}
	assignments := &assignmentRepoMock{}
	svc := NewRequestService(requests, families, assignments, zap.NewNop())
	return svc, families, requests, assignments
}

func TestRequestCreate(t *testing.T) {
	svc, _, _, _ := newRequestFixture()
	day := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

	id, err := svc.Create(context.Background(), domain.CreateRequestDTO{
		FamilyID:  1,
		CareType:  "nursing",
		StartTime: day.Add(9 * time.Hour),
		EndTime:   day.Add(12 * time.Hour),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)
}

func TestRequestCreateInvalidInterval(t *testing.T) {
	svc, _, _, _ := newRequestFixture()
	day := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

	// конец раньше начала
	_, err := svc.Create(context.Background(), domain.CreateRequestDTO{
		FamilyID:  1,
		CareType:  "nursing",
		StartTime: day.Add(12 * time.Hour),
		EndTime:   day.Add(9 * time.Hour),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// нулевая длительность тоже не принимается
	_, err = svc.Create(context.Background(), domain.CreateRequestDTO{
		FamilyID:  1,
		CareType:  "nursing",
		StartTime: day.Add(9 * time.Hour),
		EndTime:   day.Add(9 * time.Hour),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRequestCreateFamilyNotFound(t *testing.T) {
	svc, _, _, _ := newRequestFixture()
	day := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

	_, err := svc.Create(context.Background(), domain.CreateRequestDTO{
		FamilyID:  404,
		CareType:  "nursing",
		StartTime: day.Add(9 * time.Hour),
		EndTime:   day.Add(12 * time.Hour),
	})
	assert.ErrorIs(t, err, domain.ErrFamilyNotFound)
}

func TestRequestDeleteRemovesAssignment(t *testing.T) {
	svc, _, requests, assignments := newRequestFixture()
	day := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

	start, end := hoursOf(day, 9, 12)
	seedRequest(requests, 1, 1, start, end)
	seedAssignment(assignments, 1, 1, 1, start, end)

	require.NoError(t, svc.Delete(context.Background(), 1))

	_, err := requests.GetByID(context.Background(), 1)
	assert.ErrorIs(t, err, domain.ErrRequestNotFound)

	_, err = assignments.GetByRequestID(context.Background(), 1)
	assert.ErrorIs(t, err, domain.ErrAssignmentNotFound)
}

func TestRequestDeleteWithoutAssignment(t *testing.T) {
	svc, _, requests, _ := newRequestFixture()
	day := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

	start, end := hoursOf(day, 9, 12)
	seedRequest(requests, 1, 1, start, end)

	assert.NoError(t, svc.Delete(context.Background(), 1))
}

func TestRequestDeleteNotFound(t *testing.T) {
	svc, _, _, _ := newRequestFixture()
	assert.ErrorIs(t, svc.Delete(context.Background(), 404), domain.ErrRequestNotFound)
}
