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

func hoursOf(day time.Time, startHour, endHour int) (time.Time, time.Time) {
	return day.Add(time.Duration(startHour) * time.Hour), day.Add(time.Duration(endHour) * time.Hour)
}

func newAssignmentFixture() (*AssignmentServiceImpl, *requestRepoMock, *providerRepoMock, *assignmentRepoMock) {
	requests := &requestRepoMock{}
	providers := &providerRepoMock{providers: []domain.Provider{
		{ID: 1, Name: "Anna", Specialty: "nursing"},
		{ID: 2, Name: "Boris", Specialty: "nursing"},
	}}
	assignments := &assignmentRepoMock{}
	svc := NewAssignmentService(assignments, requests, providers, zap.NewNop())
	return svc, requests, providers, assignments
}

func seedRequest(requests *requestRepoMock, id, familyID int64, start, end time.Time) {
	requests.requests = append(requests.requests, domain.CareRequest{
		ID:        id,
		FamilyID:  familyID,
		CareType:  "nursing",
		StartTime: start,
		EndTime:   end,
	})
}

func seedAssignment(assignments *assignmentRepoMock, id, requestID, providerID int64, start, end time.Time) {
	assignments.add(domain.ProviderAssignment{
		Assignment: domain.Assignment{
			ID:         id,
			RequestID:  requestID,
			ProviderID: providerID,
		},
		CareType:  "nursing",
		StartTime: start,
		EndTime:   end,
	})
}

func TestAssignmentCreate(t *testing.T) {
	svc, requests, _, _ := newAssignmentFixture()
	day := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

	start, end := hoursOf(day, 10, 12)
	seedRequest(requests, 1, 1, start, end)

	assignment, err := svc.Create(context.Background(), domain.CreateAssignmentDTO{
		RequestID:  1,
		ProviderID: 1,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), assignment.RequestID)
	assert.Equal(t, int64(1), assignment.ProviderID)
}

func TestAssignmentCreateConflict(t *testing.T) {
	svc, requests, _, assignments := newAssignmentFixture()
	day := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

	busyStart, busyEnd := hoursOf(day, 10, 12)
	seedAssignment(assignments, 7, 99, 1, busyStart, busyEnd)

	start, end := hoursOf(day, 11, 13)
	seedRequest(requests, 1, 1, start, end)

	_, err := svc.Create(context.Background(), domain.CreateAssignmentDTO{
		RequestID:  1,
		ProviderID: 1,
	})
	require.Error(t, err)

	var conflictErr *domain.SchedulingConflictError
	require.ErrorAs(t, err, &conflictErr)
	assert.Equal(t, int64(7), conflictErr.AssignmentID)
	assert.Equal(t, "nursing", conflictErr.CareType)
	assert.Equal(t, busyStart, conflictErr.Start)
	assert.Equal(t, busyEnd, conflictErr.End)
}

func TestAssignmentCreateBoundaryTouchConflicts(t *testing.T) {
	svc, requests, _, assignments := newAssignmentFixture()
	day := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

	busyStart, busyEnd := hoursOf(day, 10, 12)
	seedAssignment(assignments, 1, 99, 1, busyStart, busyEnd)

	// интервал, начинающийся ровно в конце занятого, тоже конфликт
	start, end := hoursOf(day, 12, 14)
	seedRequest(requests, 1, 1, start, end)

	_, err := svc.Create(context.Background(), domain.CreateAssignmentDTO{
		RequestID:  1,
		ProviderID: 1,
	})
	var conflictErr *domain.SchedulingConflictError
	require.ErrorAs(t, err, &conflictErr)
}

func TestAssignmentCreateDisjointIntervalsAllowed(t *testing.T) {
	svc, requests, _, assignments := newAssignmentFixture()
	day := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

	busyStart, busyEnd := hoursOf(day, 10, 12)
	seedAssignment(assignments, 1, 99, 1, busyStart, busyEnd)

	start, end := hoursOf(day, 13, 14)
	seedRequest(requests, 1, 1, start, end)

	assignment, err := svc.Create(context.Background(), domain.CreateAssignmentDTO{
		RequestID:  1,
		ProviderID: 1,
	})
	require.NoError(t, err)
	assert.NotZero(t, assignment.ID)
}

func TestAssignmentCreateOtherProviderNotAffected(t *testing.T) {
	svc, requests, _, assignments := newAssignmentFixture()
	day := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

	busyStart, busyEnd := hoursOf(day, 10, 12)
	seedAssignment(assignments, 1, 99, 1, busyStart, busyEnd)

	// тот же интервал, но другой специалист
	start, end := hoursOf(day, 10, 12)
	seedRequest(requests, 1, 1, start, end)

	_, err := svc.Create(context.Background(), domain.CreateAssignmentDTO{
		RequestID:  1,
		ProviderID: 2,
	})
	require.NoError(t, err)
}

func TestAssignmentCreateAlreadyAssigned(t *testing.T) {
	svc, requests, _, _ := newAssignmentFixture()
	day := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

	start, end := hoursOf(day, 10, 12)
	requests.requests = append(requests.requests, domain.CareRequest{
		ID:         1,
		FamilyID:   1,
		CareType:   "nursing",
		StartTime:  start,
		EndTime:    end,
		Assignment: &domain.Assignment{ID: 5, RequestID: 1, ProviderID: 2},
	})

	_, err := svc.Create(context.Background(), domain.CreateAssignmentDTO{
		RequestID:  1,
		ProviderID: 1,
	})
	assert.ErrorIs(t, err, domain.ErrAlreadyAssigned)
}

func TestAssignmentCreateRequestNotFound(t *testing.T) {
	svc, _, _, _ := newAssignmentFixture()

	_, err := svc.Create(context.Background(), domain.CreateAssignmentDTO{
		RequestID:  404,
		ProviderID: 1,
	})
	assert.ErrorIs(t, err, domain.ErrRequestNotFound)
}

func TestAssignmentCreateProviderNotFound(t *testing.T) {
	svc, requests, _, _ := newAssignmentFixture()
	day := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

	start, end := hoursOf(day, 10, 12)
	seedRequest(requests, 1, 1, start, end)

	_, err := svc.Create(context.Background(), domain.CreateAssignmentDTO{
		RequestID:  1,
		ProviderID: 404,
	})
	assert.ErrorIs(t, err, domain.ErrProviderNotFound)
}

func TestAssignmentUpdateProviderExcludesSelf(t *testing.T) {
	svc, requests, _, assignments := newAssignmentFixture()
	day := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

	start, end := hoursOf(day, 10, 12)
	seedRequest(requests, 1, 1, start, end)
	seedAssignment(assignments, 1, 1, 1, start, end)

	// перенос на того же специалиста не конфликтует сам с собой
	updated, err := svc.UpdateProvider(context.Background(), 1, domain.UpdateAssignmentDTO{ProviderID: 1})
	require.NoError(t, err)
	assert.Equal(t, int64(1), updated.ProviderID)
}

func TestAssignmentUpdateProviderConflict(t *testing.T) {
	svc, requests, _, assignments := newAssignmentFixture()
	day := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

	start, end := hoursOf(day, 10, 12)
	seedRequest(requests, 1, 1, start, end)
	seedAssignment(assignments, 1, 1, 1, start, end)

	// у специалиста 2 пересекающееся назначение по другой заявке
	busyStart, busyEnd := hoursOf(day, 11, 13)
	seedAssignment(assignments, 2, 99, 2, busyStart, busyEnd)

	_, err := svc.UpdateProvider(context.Background(), 1, domain.UpdateAssignmentDTO{ProviderID: 2})
	var conflictErr *domain.SchedulingConflictError
	require.ErrorAs(t, err, &conflictErr)
	assert.Equal(t, int64(2), conflictErr.AssignmentID)
}

func TestAssignmentUpdateProviderMoves(t *testing.T) {
	svc, requests, _, assignments := newAssignmentFixture()
	day := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

	start, end := hoursOf(day, 10, 12)
	seedRequest(requests, 1, 1, start, end)
	seedAssignment(assignments, 1, 1, 1, start, end)

	updated, err := svc.UpdateProvider(context.Background(), 1, domain.UpdateAssignmentDTO{ProviderID: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(2), updated.ProviderID)
}

func TestFindConflictPicksLowestID(t *testing.T) {
	svc, _, _, assignments := newAssignmentFixture()
	day := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

	s1, e1 := hoursOf(day, 10, 12)
	s2, e2 := hoursOf(day, 11, 13)
	seedAssignment(assignments, 8, 99, 1, s2, e2)
	seedAssignment(assignments, 3, 98, 1, s1, e1)

	candidate := domain.Interval{Start: s1, End: e2}
	conflict, err := svc.FindConflict(context.Background(), 1, candidate, nil)
	require.NoError(t, err)
	require.NotNil(t, conflict)
	assert.Equal(t, int64(3), conflict.ID, "при нескольких конфликтах возвращается назначение с наименьшим id")
}

func TestFindConflictNone(t *testing.T) {
	svc, _, _, _ := newAssignmentFixture()
	day := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

	start, end := hoursOf(day, 10, 12)
	conflict, err := svc.FindConflict(context.Background(), 1, domain.Interval{Start: start, End: end}, nil)
	require.NoError(t, err)
	assert.Nil(t, conflict)
}
