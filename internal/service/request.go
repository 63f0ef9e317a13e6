package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"carematch/internal/domain"
	"carematch/internal/repository"
)

type RequestServiceImpl struct {
	repo           repository.RequestRepository
	familyRepo     repository.FamilyRepository
	assignmentRepo repository.AssignmentRepository
	logger         *zap.Logger
}

func NewRequestService(
	repo repository.RequestRepository,
	familyRepo repository.FamilyRepository,
	assignmentRepo repository.AssignmentRepository,
	logger *zap.Logger,
) *RequestServiceImpl {
	return &RequestServiceImpl{
		repo:           repo,
		familyRepo:     familyRepo,
		assignmentRepo: assignmentRepo,
		logger:         logger,
	}
}

func (s *RequestServiceImpl) Create(ctx context.Context, dto domain.CreateRequestDTO) (int64, error) {
	if !dto.EndTime.After(dto.StartTime) {
		s.logger.Error("некорректный интервал заявки",
			zap.Time("startTime", dto.StartTime),
			zap.Time("endTime", dto.EndTime),
		)
		return 0, fmt.Errorf("%w: конец интервала должен быть позже начала", domain.ErrInvalidInput)
	}

	if _, err := s.familyRepo.GetByID(ctx, dto.FamilyID); err != nil {
		s.logger.Error("семья не найдена при создании заявки", zap.Int64("familyID", dto.FamilyID), zap.Error(err))
		return 0, domain.ErrFamilyNotFound
	}

	id, err := s.repo.Create(ctx, dto)
	if err != nil {
		s.logger.Error("ошибка создания заявки", zap.Error(err))
		return 0, fmt.Errorf("ошибка при создании заявки: %w", err)
	}

	return id, nil
}

func (s *RequestServiceImpl) GetByID(ctx context.Context, id int64) (*domain.CareRequest, error) {
	request, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("ошибка получения заявки", zap.Int64("id", id), zap.Error(err))
		return nil, err
	}
	return request, nil
}

func (s *RequestServiceImpl) List(ctx context.Context, filter domain.RequestFilter) ([]domain.CareRequest, int, error) {
	if filter.Limit <= 0 {
		filter.Limit = 20
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}

	requests, err := s.repo.List(ctx, filter)
	if err != nil {
		s.logger.Error("ошибка получения списка заявок", zap.Error(err))
		return nil, 0, fmt.Errorf("ошибка при получении списка заявок: %w", err)
	}

	total, err := s.repo.CountByFilter(ctx, filter)
	if err != nil {
		s.logger.Error("ошибка подсчёта заявок", zap.Error(err))
		return nil, 0, fmt.Errorf("ошибка при подсчёте заявок: %w", err)
	}

	return requests, total, nil
}

func (s *RequestServiceImpl) Delete(ctx context.Context, id int64) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		s.logger.Error("заявка для удаления не найдена", zap.Int64("id", id), zap.Error(err))
		return err
	}

	// сначала снимаем назначение, чтобы не оставить осиротевшую запись
	if err := s.assignmentRepo.DeleteByRequestID(ctx, id); err != nil && !errors.Is(err, domain.ErrAssignmentNotFound) {
		s.logger.Error("ошибка снятия назначения при удалении заявки", zap.Int64("requestID", id), zap.Error(err))
		return fmt.Errorf("ошибка при удалении назначения заявки: %w", err)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Error("ошибка удаления заявки", zap.Int64("id", id), zap.Error(err))
		return err
	}

	return nil
}
