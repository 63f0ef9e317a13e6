package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"carematch/internal/domain"
)

func newProviderService(repo *providerRepoMock) *ProviderServiceImpl {
	return NewProviderService(repo, nil, nil, 0, zap.NewNop())
}

func seedProviders(n int) *providerRepoMock {
	repo := &providerRepoMock{}
	for i := 1; i <= n; i++ {
		availability := domain.WeekAvailability{
			"monday": {"9-17"},
		}
		// каждый второй специалист также работает в субботу ночью
		if i%2 == 0 {
			availability["saturday"] = []domain.TimeSlot{"20-8"}
		}
		repo.providers = append(repo.providers, domain.Provider{
			ID:           int64(i),
			Name:         fmt.Sprintf("Provider %03d", i),
			Specialty:    "nursing",
			Availability: availability,
		})
	}
	return repo
}

func TestProviderQueryFilterByDay(t *testing.T) {
	svc := newProviderService(seedProviders(50))

	page, err := svc.Query(context.Background(), domain.ProviderQuery{
		Day:      "saturday",
		Page:     1,
		PageSize: 100,
	})
	require.NoError(t, err)

	assert.Equal(t, 25, page.Total)
	for _, p := range page.Items {
		assert.True(t, p.Availability.AvailableOn("saturday"))
	}
}

func TestProviderQueryFilterByDayAndHour(t *testing.T) {
	svc := newProviderService(seedProviders(50))

	// 3 часа ночи попадает только в ночной слот "20-8"
	hour := 3
	page, err := svc.Query(context.Background(), domain.ProviderQuery{
		Day:      "saturday",
		Hour:     &hour,
		Page:     1,
		PageSize: 100,
	})
	require.NoError(t, err)
	assert.Equal(t, 25, page.Total)

	// а 10 утра в субботу не работает никто
	hour = 10
	page, err = svc.Query(context.Background(), domain.ProviderQuery{
		Day:      "saturday",
		Hour:     &hour,
		Page:     1,
		PageSize: 100,
	})
	require.NoError(t, err)
	assert.Equal(t, 0, page.Total)
	assert.Equal(t, 0, page.TotalPages)
}

func TestProviderQueryFilterByHourAnyDay(t *testing.T) {
	svc := newProviderService(seedProviders(10))

	hour := 10
	page, err := svc.Query(context.Background(), domain.ProviderQuery{
		Hour:     &hour,
		Page:     1,
		PageSize: 100,
	})
	require.NoError(t, err)
	assert.Equal(t, 10, page.Total, "10 утра понедельника доступно всем")
}

func TestProviderQueryPagination(t *testing.T) {
	svc := newProviderService(seedProviders(25))

	page1, err := svc.Query(context.Background(), domain.ProviderQuery{Page: 1, PageSize: 10})
	require.NoError(t, err)
	assert.Len(t, page1.Items, 10)
	assert.Equal(t, 25, page1.Total)
	assert.Equal(t, 3, page1.TotalPages)

	page2, err := svc.Query(context.Background(), domain.ProviderQuery{Page: 2, PageSize: 10})
	require.NoError(t, err)
	assert.Len(t, page2.Items, 10)
	assert.NotEqual(t, page1.Items[0].ID, page2.Items[0].ID)

	page3, err := svc.Query(context.Background(), domain.ProviderQuery{Page: 3, PageSize: 10})
	require.NoError(t, err)
	assert.Len(t, page3.Items, 5)

	// страница за пределами результата пуста, но метаданные сохраняются
	page4, err := svc.Query(context.Background(), domain.ProviderQuery{Page: 4, PageSize: 10})
	require.NoError(t, err)
	assert.Empty(t, page4.Items)
	assert.Equal(t, 3, page4.TotalPages)
}

func TestProviderQueryEmptyResult(t *testing.T) {
	svc := newProviderService(&providerRepoMock{})

	page, err := svc.Query(context.Background(), domain.ProviderQuery{Page: 1, PageSize: 10})
	require.NoError(t, err)
	assert.Empty(t, page.Items)
	assert.Equal(t, 0, page.Total)
	assert.Equal(t, 0, page.TotalPages)
}

func TestProviderQuerySort(t *testing.T) {
	repo := &providerRepoMock{providers: []domain.Provider{
		{ID: 1, Name: "anna", Specialty: "nursing"},
		{ID: 2, Name: "Boris", Specialty: "physio"},
		{ID: 3, Name: "Anna", Specialty: "nursing"},
	}}
	svc := newProviderService(repo)

	asc, err := svc.Query(context.Background(), domain.ProviderQuery{
		SortBy:    domain.ProviderSortByName,
		SortOrder: domain.SortOrderAsc,
		Page:      1,
		PageSize:  10,
	})
	require.NoError(t, err)
	// регистронезависимая сортировка, стабильная для равных имен
	assert.Equal(t, []int64{1, 3, 2}, providerIDs(asc.Items))

	desc, err := svc.Query(context.Background(), domain.ProviderQuery{
		SortBy:    domain.ProviderSortByName,
		SortOrder: domain.SortOrderDesc,
		Page:      1,
		PageSize:  10,
	})
	require.NoError(t, err)
	assert.Equal(t, []int64{2, 1, 3}, providerIDs(desc.Items))
}

func TestProviderQuerySortBySpecialty(t *testing.T) {
	repo := &providerRepoMock{providers: []domain.Provider{
		{ID: 1, Name: "a", Specialty: "physio"},
		{ID: 2, Name: "b", Specialty: "nursing"},
	}}
	svc := newProviderService(repo)

	page, err := svc.Query(context.Background(), domain.ProviderQuery{
		SortBy:   domain.ProviderSortBySpecialty,
		Page:     1,
		PageSize: 10,
	})
	require.NoError(t, err)
	assert.Equal(t, []int64{2, 1}, providerIDs(page.Items))
}

func TestProviderCreateValidatesAvailability(t *testing.T) {
	svc := newProviderService(&providerRepoMock{})

	_, err := svc.Create(context.Background(), domain.CreateProviderDTO{
		Name:      "Anna",
		Specialty: "nursing",
		Availability: domain.WeekAvailability{
			"someday": {"9-17"},
		},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestProviderUpdateValidatesAvailability(t *testing.T) {
	repo := seedProviders(1)
	svc := newProviderService(repo)

	bad := domain.WeekAvailability{"monday": {"morning"}}
	err := svc.Update(context.Background(), 1, domain.UpdateProviderDTO{Availability: &bad})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func providerIDs(providers []domain.Provider) []int64 {
	ids := make([]int64, 0, len(providers))
	for _, p := range providers {
		ids = append(ids, p.ID)
	}
	return ids
}
