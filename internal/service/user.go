package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"carematch/internal/domain"
	"carematch/internal/repository"
	"carematch/pkg/validator"
)

type UserServiceImpl struct {
	repo       repository.UserRepository
	familyRepo repository.FamilyRepository
	logger     *zap.Logger
}

func NewUserService(repo repository.UserRepository, familyRepo repository.FamilyRepository, logger *zap.Logger) *UserServiceImpl {
	return &UserServiceImpl{
		repo:       repo,
		familyRepo: familyRepo,
		logger:     logger,
	}
}

// Create заводит аккаунт напрямую, минуя регистрацию. Используется
// администраторами, например чтобы добавить второго взрослого в семью.
func (s *UserServiceImpl) Create(ctx context.Context, dto domain.CreateUserDTO) (int64, error) {
	if !validator.ValidateEmail(dto.Email) {
		return 0, fmt.Errorf("%w: некорректный email", domain.ErrInvalidInput)
	}
	if !validator.ValidatePhone(dto.Phone) {
		return 0, fmt.Errorf("%w: некорректный номер телефона", domain.ErrInvalidInput)
	}
	if !validator.ValidateNamePart(dto.FirstName) || !validator.ValidateNamePart(dto.LastName) {
		return 0, fmt.Errorf("%w: некорректное имя или фамилия", domain.ErrInvalidInput)
	}
	dto.Phone = validator.FormatPhone(dto.Phone)
	dto.FirstName = validator.FormatName(dto.FirstName)
	dto.LastName = validator.FormatName(dto.LastName)

	if existing, err := s.repo.GetByEmail(ctx, dto.Email); err == nil && existing != nil {
		return 0, fmt.Errorf("%w: email уже занят", domain.ErrInvalidInput)
	}
	if existing, err := s.repo.GetByPhone(ctx, dto.Phone); err == nil && existing != nil {
		return 0, fmt.Errorf("%w: телефон уже занят", domain.ErrInvalidInput)
	}

	if dto.FamilyID != nil {
		if _, err := s.familyRepo.GetByID(ctx, *dto.FamilyID); err != nil {
			s.logger.Error("семья пользователя не найдена", zap.Int64("familyID", *dto.FamilyID), zap.Error(err))
			return 0, domain.ErrFamilyNotFound
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(dto.Password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("ошибка хеширования пароля", zap.Error(err))
		return 0, fmt.Errorf("ошибка при создании пользователя: %w", err)
	}
	dto.Password = string(hash)

	id, err := s.repo.Create(ctx, dto)
	if err != nil {
		s.logger.Error("ошибка создания пользователя", zap.Error(err))
		return 0, fmt.Errorf("ошибка при создании пользователя: %w", err)
	}

	return id, nil
}

func (s *UserServiceImpl) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("пользователь не найден", zap.Int64("id", id), zap.Error(err))
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}

func (s *UserServiceImpl) Update(ctx context.Context, id int64, dto domain.UpdateUserDTO) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		s.logger.Error("пользователь для обновления не найден", zap.Int64("id", id), zap.Error(err))
		return domain.ErrUserNotFound
	}

	if dto.Email != nil {
		if !validator.ValidateEmail(*dto.Email) {
			return fmt.Errorf("%w: некорректный email", domain.ErrInvalidInput)
		}
		if existing, err := s.repo.GetByEmail(ctx, *dto.Email); err == nil && existing != nil && existing.ID != id {
			return fmt.Errorf("%w: email уже занят", domain.ErrInvalidInput)
		}
	}

	if dto.Phone != nil {
		if !validator.ValidatePhone(*dto.Phone) {
			return fmt.Errorf("%w: некорректный номер телефона", domain.ErrInvalidInput)
		}
		formatted := validator.FormatPhone(*dto.Phone)
		dto.Phone = &formatted
		if existing, err := s.repo.GetByPhone(ctx, formatted); err == nil && existing != nil && existing.ID != id {
			return fmt.Errorf("%w: телефон уже занят", domain.ErrInvalidInput)
		}
	}

	if err := s.repo.Update(ctx, id, dto); err != nil {
		s.logger.Error("ошибка обновления пользователя", zap.Int64("id", id), zap.Error(err))
		return fmt.Errorf("ошибка при обновлении пользователя: %w", err)
	}

	return nil
}

func (s *UserServiceImpl) UpdatePassword(ctx context.Context, id int64, dto domain.PasswordUpdateDTO) error {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("пользователь для смены пароля не найден", zap.Int64("id", id), zap.Error(err))
		return domain.ErrUserNotFound
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(dto.OldPassword)); err != nil {
		return fmt.Errorf("%w: неверный текущий пароль", domain.ErrInvalidInput)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(dto.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("ошибка хеширования нового пароля", zap.Error(err))
		return fmt.Errorf("ошибка при смене пароля: %w", err)
	}

	if err := s.repo.UpdatePassword(ctx, id, string(hash)); err != nil {
		s.logger.Error("ошибка смены пароля", zap.Int64("id", id), zap.Error(err))
		return fmt.Errorf("ошибка при смене пароля: %w", err)
	}

	return nil
}

func (s *UserServiceImpl) Delete(ctx context.Context, id int64) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		s.logger.Error("пользователь для удаления не найден", zap.Int64("id", id), zap.Error(err))
		return domain.ErrUserNotFound
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Error("ошибка удаления пользователя", zap.Int64("id", id), zap.Error(err))
		return fmt.Errorf("ошибка при удалении пользователя: %w", err)
	}

	return nil
}

func (s *UserServiceImpl) List(ctx context.Context, limit, offset int) ([]domain.User, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	users, err := s.repo.List(ctx, limit, offset)
	if err != nil {
		s.logger.Error("ошибка получения списка пользователей", zap.Error(err))
		return nil, fmt.Errorf("ошибка при получении списка пользователей: %w", err)
	}
	return users, nil
}
