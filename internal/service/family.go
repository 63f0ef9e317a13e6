package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"carematch/internal/domain"
	"carematch/internal/repository"
)

type FamilyServiceImpl struct {
	repo   repository.FamilyRepository
	logger *zap.Logger
}

func NewFamilyService(repo repository.FamilyRepository, logger *zap.Logger) *FamilyServiceImpl {
	return &FamilyServiceImpl{
		repo:   repo,
		logger: logger,
	}
}

func (s *FamilyServiceImpl) Create(ctx context.Context, dto domain.CreateFamilyDTO) (int64, error) {
	id, err := s.repo.Create(ctx, dto)
	if err != nil {
		s.logger.Error("ошибка создания семьи", zap.Error(err))
		return 0, fmt.Errorf("ошибка при создании семьи: %w", err)
	}
	return id, nil
}

func (s *FamilyServiceImpl) GetByID(ctx context.Context, id int64) (*domain.Family, error) {
	family, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("ошибка получения семьи", zap.Int64("id", id), zap.Error(err))
		return nil, err
	}
	return family, nil
}

func (s *FamilyServiceImpl) Update(ctx context.Context, id int64, dto domain.UpdateFamilyDTO) error {
	if err := s.repo.Update(ctx, id, dto); err != nil {
		s.logger.Error("ошибка обновления семьи", zap.Int64("id", id), zap.Error(err))
		return err
	}
	return nil
}

func (s *FamilyServiceImpl) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Error("ошибка удаления семьи", zap.Int64("id", id), zap.Error(err))
		return err
	}
	return nil
}

func (s *FamilyServiceImpl) List(ctx context.Context, limit, offset int) ([]domain.Family, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	families, err := s.repo.List(ctx, limit, offset)
	if err != nil {
		s.logger.Error("ошибка получения списка семей", zap.Error(err))
		return nil, fmt.Errorf("ошибка при получении списка семей: %w", err)
	}
	return families, nil
}
