package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"carematch/internal/domain"
	"carematch/internal/repository"
)

type AssignmentServiceImpl struct {
	repo         repository.AssignmentRepository
	requestRepo  repository.RequestRepository
	providerRepo repository.ProviderRepository
	logger       *zap.Logger
}

func NewAssignmentService(
	repo repository.AssignmentRepository,
	requestRepo repository.RequestRepository,
	providerRepo repository.ProviderRepository,
	logger *zap.Logger,
) *AssignmentServiceImpl {
	return &AssignmentServiceImpl{
		repo:         repo,
		requestRepo:  requestRepo,
		providerRepo: providerRepo,
		logger:       logger,
	}
}

func (s *AssignmentServiceImpl) Create(ctx context.Context, dto domain.CreateAssignmentDTO) (*domain.Assignment, error) {
	request, err := s.requestRepo.GetByID(ctx, dto.RequestID)
	if err != nil {
		s.logger.Error("заявка не найдена при создании назначения", zap.Int64("requestID", dto.RequestID), zap.Error(err))
		return nil, domain.ErrRequestNotFound
	}

	if _, err := s.providerRepo.GetByID(ctx, dto.ProviderID); err != nil {
		s.logger.Error("специалист не найден при создании назначения", zap.Int64("providerID", dto.ProviderID), zap.Error(err))
		return nil, domain.ErrProviderNotFound
	}

	if request.Assignment != nil {
		s.logger.Warn("повторная попытка назначения по заявке", zap.Int64("requestID", dto.RequestID))
		return nil, domain.ErrAlreadyAssigned
	}

	conflict, err := s.FindConflict(ctx, dto.ProviderID, request.Interval(), nil)
	if err != nil {
		return nil, err
	}
	if conflict != nil {
		s.logger.Warn("конфликт расписания при создании назначения",
			zap.Int64("providerID", dto.ProviderID),
			zap.Int64("conflictAssignmentID", conflict.ID),
		)
		return nil, &domain.SchedulingConflictError{
			AssignmentID: conflict.ID,
			CareType:     conflict.CareType,
			Start:        conflict.StartTime,
			End:          conflict.EndTime,
		}
	}

	// хранилище повторяет обе проверки в транзакции, чтобы закрыть гонку
	// между конкурентными назначениями
	id, err := s.repo.Create(ctx, dto)
	if err != nil {
		var conflictErr *domain.SchedulingConflictError
		if errors.Is(err, domain.ErrAlreadyAssigned) || errors.As(err, &conflictErr) {
			return nil, err
		}
		s.logger.Error("ошибка создания назначения", zap.Error(err))
		return nil, fmt.Errorf("ошибка при создании назначения: %w", err)
	}

	return s.GetByID(ctx, id)
}

func (s *AssignmentServiceImpl) GetByID(ctx context.Context, id int64) (*domain.Assignment, error) {
	assignment, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("ошибка получения назначения", zap.Int64("id", id), zap.Error(err))
		return nil, err
	}
	return assignment, nil
}

func (s *AssignmentServiceImpl) UpdateProvider(ctx context.Context, id int64, dto domain.UpdateAssignmentDTO) (*domain.Assignment, error) {
	assignment, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("назначение для обновления не найдено", zap.Int64("id", id), zap.Error(err))
		return nil, err
	}

	if _, err := s.providerRepo.GetByID(ctx, dto.ProviderID); err != nil {
		s.logger.Error("специалист не найден при обновлении назначения", zap.Int64("providerID", dto.ProviderID), zap.Error(err))
		return nil, domain.ErrProviderNotFound
	}

	request, err := s.requestRepo.GetByID(ctx, assignment.RequestID)
	if err != nil {
		s.logger.Error("заявка назначения не найдена", zap.Int64("requestID", assignment.RequestID), zap.Error(err))
		return nil, domain.ErrRequestNotFound
	}

	// само обновляемое назначение из проверки исключается, иначе перенос
	// на того же специалиста всегда конфликтовал бы сам с собой
	conflict, err := s.FindConflict(ctx, dto.ProviderID, request.Interval(), &id)
	if err != nil {
		return nil, err
	}
	if conflict != nil {
		s.logger.Warn("конфликт расписания при обновлении назначения",
			zap.Int64("id", id),
			zap.Int64("providerID", dto.ProviderID),
			zap.Int64("conflictAssignmentID", conflict.ID),
		)
		return nil, &domain.SchedulingConflictError{
			AssignmentID: conflict.ID,
			CareType:     conflict.CareType,
			Start:        conflict.StartTime,
			End:          conflict.EndTime,
		}
	}

	if err := s.repo.UpdateProvider(ctx, id, dto.ProviderID); err != nil {
		var conflictErr *domain.SchedulingConflictError
		if errors.As(err, &conflictErr) {
			return nil, err
		}
		s.logger.Error("ошибка обновления назначения", zap.Int64("id", id), zap.Error(err))
		return nil, err
	}

	return s.GetByID(ctx, id)
}

func (s *AssignmentServiceImpl) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Error("ошибка удаления назначения", zap.Int64("id", id), zap.Error(err))
		return err
	}
	return nil
}

func (s *AssignmentServiceImpl) List(ctx context.Context, filter domain.AssignmentFilter) ([]domain.Assignment, error) {
	if filter.Limit <= 0 {
		filter.Limit = 20
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}

	assignments, err := s.repo.List(ctx, filter)
	if err != nil {
		s.logger.Error("ошибка получения списка назначений", zap.Error(err))
		return nil, fmt.Errorf("ошибка при получении списка назначений: %w", err)
	}
	return assignments, nil
}

// FindConflict ищет первое по id назначение специалиста, интервал заявки
// которого пересекается с candidate. Границы интервалов считаются занятыми:
// стыковка конец-в-начало тоже конфликт.
func (s *AssignmentServiceImpl) FindConflict(ctx context.Context, providerID int64, candidate domain.Interval, excludeAssignmentID *int64) (*domain.ProviderAssignment, error) {
	assignments, err := s.repo.ListByProvider(ctx, providerID)
	if err != nil {
		s.logger.Error("ошибка получения назначений специалиста", zap.Int64("providerID", providerID), zap.Error(err))
		return nil, fmt.Errorf("ошибка при проверке конфликтов: %w", err)
	}

	for i := range assignments {
		a := &assignments[i]
		if excludeAssignmentID != nil && a.ID == *excludeAssignmentID {
			continue
		}
		if domain.Overlaps(candidate, a.Interval()) {
			return a, nil
		}
	}

	return nil, nil
}
