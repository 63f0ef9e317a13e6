package service

import (
	"context"
	"sort"

	"carematch/internal/domain"
)

type providerRepoMock struct {
	providers []domain.Provider
}

func (m *providerRepoMock) Create(ctx context.Context, dto domain.CreateProviderDTO) (int64, error) {
	id := int64(len(m.providers) + 1)
	m.providers = append(m.providers, domain.Provider{
		ID:           id,
		Name:         dto.Name,
		Specialty:    dto.Specialty,
		Availability: dto.Availability,
	})
	return id, nil
}

func (m *providerRepoMock) GetByID(ctx context.Context, id int64) (*domain.Provider, error) {
	for i := range m.providers {
		if m.providers[i].ID == id {
			p := m.providers[i]
			return &p, nil
		}
	}
	return nil, domain.ErrProviderNotFound
}

func (m *providerRepoMock) Update(ctx context.Context, id int64, dto domain.UpdateProviderDTO) error {
	for i := range m.providers {
		if m.providers[i].ID == id {
			if dto.Name != nil {
				m.providers[i].Name = *dto.Name
			}
			if dto.Specialty != nil {
				m.providers[i].Specialty = *dto.Specialty
			}
			if dto.Availability != nil {
				m.providers[i].Availability = *dto.Availability
			}
			return nil
		}
	}
	return domain.ErrProviderNotFound
}

func (m *providerRepoMock) UpdatePhoto(ctx context.Context, id int64, photoURL string) error {
	for i := range m.providers {
		if m.providers[i].ID == id {
			m.providers[i].PhotoURL = photoURL
			return nil
		}
	}
	return domain.ErrProviderNotFound
}

func (m *providerRepoMock) Delete(ctx context.Context, id int64) error {
	for i := range m.providers {
		if m.providers[i].ID == id {
			m.providers = append(m.providers[:i], m.providers[i+1:]...)
			return nil
		}
	}
	return domain.ErrProviderNotFound
}

func (m *providerRepoMock) List(ctx context.Context, filter domain.ProviderFilter) ([]domain.Provider, error) {
	var result []domain.Provider
	for _, p := range m.providers {
		if filter.Specialty != nil && p.Specialty != *filter.Specialty {
			continue
		}
		result = append(result, p)
	}
	return result, nil
}

type familyRepoMock struct {
	families []domain.Family
}

func (m *familyRepoMock) Create(ctx context.Context, dto domain.CreateFamilyDTO) (int64, error) {
	id := int64(len(m.families) + 1)
	m.families = append(m.families, domain.Family{
		ID:          id,
		Name:        dto.Name,
		Consistency: dto.Consistency,
	})
	return id, nil
}

func (m *familyRepoMock) GetByID(ctx context.Context, id int64) (*domain.Family, error) {
	for i := range m.families {
		if m.families[i].ID == id {
			f := m.families[i]
			return &f, nil
		}
	}
	return nil, domain.ErrFamilyNotFound
}

func (m *familyRepoMock) Update(ctx context.Context, id int64, dto domain.UpdateFamilyDTO) error {
	for i := range m.families {
		if m.families[i].ID == id {
			if dto.Name != nil {
				m.families[i].Name = *dto.Name
			}
			if dto.Consistency != nil {
				m.families[i].Consistency = *dto.Consistency
			}
			return nil
		}
	}
	return domain.ErrFamilyNotFound
}

func (m *familyRepoMock) Delete(ctx context.Context, id int64) error {
	for i := range m.families {
		if m.families[i].ID == id {
			m.families = append(m.families[:i], m.families[i+1:]...)
			return nil
		}
	}
	return domain.ErrFamilyNotFound
}

func (m *familyRepoMock) List(ctx context.Context, limit, offset int) ([]domain.Family, error) {
	return m.families, nil
}

type requestRepoMock struct {
	requests []domain.CareRequest
}

func (m *requestRepoMock) Create(ctx context.Context, dto domain.CreateRequestDTO) (int64, error) {
	id := int64(len(m.requests) + 1)
	m.requests = append(m.requests, domain.CareRequest{
		ID:        id,
		FamilyID:  dto.FamilyID,
		CareType:  dto.CareType,
		StartTime: dto.StartTime,
		EndTime:   dto.EndTime,
	})
	return id, nil
}

func (m *requestRepoMock) GetByID(ctx context.Context, id int64) (*domain.CareRequest, error) {
	for i := range m.requests {
		if m.requests[i].ID == id {
			r := m.requests[i]
			return &r, nil
		}
	}
	return nil, domain.ErrRequestNotFound
}

func (m *requestRepoMock) List(ctx context.Context, filter domain.RequestFilter) ([]domain.CareRequest, error) {
	return m.requests, nil
}

func (m *requestRepoMock) CountByFilter(ctx context.Context, filter domain.RequestFilter) (int, error) {
	return len(m.requests), nil
}

func (m *requestRepoMock) Delete(ctx context.Context, id int64) error {
	for i := range m.requests {
		if m.requests[i].ID == id {
			m.requests = append(m.requests[:i], m.requests[i+1:]...)
			return nil
		}
	}
	return domain.ErrRequestNotFound
}

type assignmentRepoMock struct {
	assignments []domain.ProviderAssignment
	nextID      int64
}

func (m *assignmentRepoMock) add(a domain.ProviderAssignment) {
	if a.ID == 0 {
		m.nextID++
		a.ID = m.nextID
	} else if a.ID > m.nextID {
		m.nextID = a.ID
	}
	m.assignments = append(m.assignments, a)
}

func (m *assignmentRepoMock) Create(ctx context.Context, dto domain.CreateAssignmentDTO) (int64, error) {
	m.nextID++
	m.assignments = append(m.assignments, domain.ProviderAssignment{
		Assignment: domain.Assignment{
			ID:         m.nextID,
			RequestID:  dto.RequestID,
			ProviderID: dto.ProviderID,
		},
	})
	return m.nextID, nil
}

func (m *assignmentRepoMock) GetByID(ctx context.Context, id int64) (*domain.Assignment, error) {
	for i := range m.assignments {
		if m.assignments[i].ID == id {
			a := m.assignments[i].Assignment
			return &a, nil
		}
	}
	return nil, domain.ErrAssignmentNotFound
}

func (m *assignmentRepoMock) GetByRequestID(ctx context.Context, requestID int64) (*domain.Assignment, error) {
	for i := range m.assignments {
		if m.assignments[i].RequestID == requestID {
			a := m.assignments[i].Assignment
			return &a, nil
		}
	}
	return nil, domain.ErrAssignmentNotFound
}

func (m *assignmentRepoMock) UpdateProvider(ctx context.Context, id, providerID int64) error {
	for i := range m.assignments {
		if m.assignments[i].ID == id {
			m.assignments[i].ProviderID = providerID
			return nil
		}
	}
	return domain.ErrAssignmentNotFound
}

func (m *assignmentRepoMock) Delete(ctx context.Context, id int64) error {
	for i := range m.assignments {
		if m.assignments[i].ID == id {
			m.assignments = append(m.assignments[:i], m.assignments[i+1:]...)
			return nil
		}
	}
	return domain.ErrAssignmentNotFound
}

func (m *assignmentRepoMock) DeleteByRequestID(ctx context.Context, requestID int64) error {
	for i := range m.assignments {
		if m.assignments[i].RequestID == requestID {
			m.assignments = append(m.assignments[:i], m.assignments[i+1:]...)
			return nil
		}
	}
	return domain.ErrAssignmentNotFound
}

func (m *assignmentRepoMock) List(ctx context.Context, filter domain.AssignmentFilter) ([]domain.Assignment, error) {
	var result []domain.Assignment
	for _, a := range m.assignments {
		if filter.ProviderID != nil && a.ProviderID != *filter.ProviderID {
			continue
		}
		result = append(result, a.Assignment)
	}
	return result, nil
}

func (m *assignmentRepoMock) ListByProvider(ctx context.Context, providerID int64) ([]domain.ProviderAssignment, error) {
	var result []domain.ProviderAssignment
	for _, a := range m.assignments {
		if a.ProviderID == providerID {
			result = append(result, a)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (m *assignmentRepoMock) ListByFamily(ctx context.Context, familyID int64) ([]domain.Assignment, error) {
	var result []domain.Assignment
	for _, a := range m.assignments {
		if a.Request != nil && a.Request.FamilyID == familyID {
			result = append(result, a.Assignment)
		}
	}
	return result, nil
}

type recommenderMock struct {
	answer string
	err    error
	prompt string
}

func (m *recommenderMock) Recommend(ctx context.Context, prompt string) (string, error) {
	m.prompt = prompt
	if m.err != nil {
		return "", m.err
	}
	return m.answer, nil
}
