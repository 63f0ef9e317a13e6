package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"carematch/config"
	"carematch/internal/domain"
	"carematch/internal/repository"
	"carematch/pkg/validator"
)

type tokenClaims struct {
	jwt.RegisteredClaims
	UserID int64           `json:"user_id"`
	Role   domain.UserRole `json:"role"`
}

type AuthServiceImpl struct {
	authRepo   repository.AuthRepository
	userRepo   repository.UserRepository
	familyRepo repository.FamilyRepository
	jwtConfig  config.JWTConfig
	logger     *zap.Logger
}

func NewAuthService(
	authRepo repository.AuthRepository,
	userRepo repository.UserRepository,
	familyRepo repository.FamilyRepository,
	jwtConfig config.JWTConfig,
	logger *zap.Logger,
) *AuthServiceImpl {
	return &AuthServiceImpl{
		authRepo:   authRepo,
		userRepo:   userRepo,
		familyRepo: familyRepo,
		jwtConfig:  jwtConfig,
		logger:     logger,
	}
}

// Register создаёт семью и привязанный к ней аккаунт с ролью family.
func (s *AuthServiceImpl) Register(ctx context.Context, dto domain.RegisterRequest) (*domain.RegistrationResult, error) {
	if !validator.ValidateEmail(dto.Email) {
		return nil, fmt.Errorf("%w: некорректный email", domain.ErrInvalidInput)
	}
	if !validator.ValidatePhone(dto.Phone) {
		return nil, fmt.Errorf("%w: некорректный номер телефона", domain.ErrInvalidInput)
	}
	if !validator.ValidateNamePart(dto.FirstName) || !validator.ValidateNamePart(dto.LastName) {
		return nil, fmt.Errorf("%w: некорректное имя или фамилия", domain.ErrInvalidInput)
	}
	dto.Phone = validator.FormatPhone(dto.Phone)
	dto.FirstName = validator.FormatName(dto.FirstName)
	dto.LastName = validator.FormatName(dto.LastName)

	if existing, err := s.userRepo.GetByEmail(ctx, dto.Email); err == nil && existing != nil {
		return nil, fmt.Errorf("%w: email уже занят", domain.ErrInvalidInput)
	}
	if existing, err := s.userRepo.GetByPhone(ctx, dto.Phone); err == nil && existing != nil {
		return nil, fmt.Errorf("%w: телефон уже занят", domain.ErrInvalidInput)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(dto.Password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("ошибка хеширования пароля", zap.Error(err))
		return nil, fmt.Errorf("ошибка при регистрации: %w", err)
	}

	familyID, err := s.familyRepo.Create(ctx, domain.CreateFamilyDTO{Name: dto.FamilyName})
	if err != nil {
		s.logger.Error("ошибка создания семьи при регистрации", zap.Error(err))
		return nil, fmt.Errorf("ошибка при регистрации: %w", err)
	}

	userID, err := s.userRepo.Create(ctx, domain.CreateUserDTO{
		FirstName: dto.FirstName,
		LastName:  dto.LastName,
		Email:     dto.Email,
		Phone:     dto.Phone,
		Password:  string(hash),
		Role:      domain.UserRoleFamily,
		FamilyID:  &familyID,
	})
	if err != nil {
		// не оставляем семью без единого аккаунта
		if delErr := s.familyRepo.Delete(ctx, familyID); delErr != nil {
			s.logger.Warn("не удалось удалить семью после неудачной регистрации",
				zap.Int64("familyID", familyID), zap.Error(delErr))
		}
		s.logger.Error("ошибка создания пользователя при регистрации", zap.Error(err))
		return nil, fmt.Errorf("ошибка при регистрации: %w", err)
	}

	return &domain.RegistrationResult{UserID: userID, FamilyID: familyID}, nil
}

func (s *AuthServiceImpl) Login(ctx context.Context, dto domain.LoginRequest, userAgent, ip string) (*domain.Tokens, error) {
	user, err := s.userRepo.GetByEmail(ctx, dto.Login)
	if err != nil {
		user, err = s.userRepo.GetByPhone(ctx, dto.Login)
		if err != nil {
			s.logger.Warn("попытка входа с неизвестным логином", zap.String("login", dto.Login))
			return nil, domain.ErrInvalidCredentials
		}
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(dto.Password)); err != nil {
		s.logger.Warn("неверный пароль", zap.Int64("userID", user.ID))
		return nil, domain.ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, fmt.Errorf("%w: аккаунт деактивирован", domain.ErrInvalidCredentials)
	}

	return s.startSession(ctx, user, userAgent, ip)
}

func (s *AuthServiceImpl) RefreshTokens(ctx context.Context, refreshToken, userAgent, ip string) (*domain.Tokens, error) {
	session, err := s.authRepo.GetSessionByRefreshToken(ctx, refreshToken)
	if err != nil {
		s.logger.Warn("сессия по refresh token не найдена", zap.Error(err))
		return nil, domain.ErrSessionExpired
	}

	if session.ExpiresAt.Before(time.Now()) {
		if err := s.authRepo.DeleteSession(ctx, session.ID); err != nil {
			s.logger.Warn("ошибка удаления истекшей сессии", zap.Error(err))
		}
		return nil, domain.ErrSessionExpired
	}

	user, err := s.userRepo.GetByID(ctx, session.UserID)
	if err != nil {
		s.logger.Error("пользователь сессии не найден", zap.Int64("userID", session.UserID), zap.Error(err))
		return nil, domain.ErrUserNotFound
	}

	if !user.IsActive {
		return nil, fmt.Errorf("%w: аккаунт деактивирован", domain.ErrInvalidCredentials)
	}

	if err := s.authRepo.DeleteSession(ctx, session.ID); err != nil {
		s.logger.Warn("ошибка удаления старой сессии", zap.Error(err))
	}

	return s.startSession(ctx, user, userAgent, ip)
}

func (s *AuthServiceImpl) Logout(ctx context.Context, refreshToken string) error {
	session, err := s.authRepo.GetSessionByRefreshToken(ctx, refreshToken)
	if err != nil {
		// повторный выход не ошибка
		s.logger.Warn("сессия не найдена при выходе", zap.Error(err))
		return nil
	}

	if err := s.authRepo.DeleteSession(ctx, session.ID); err != nil {
		s.logger.Error("ошибка удаления сессии", zap.Error(err))
		return fmt.Errorf("ошибка при выходе: %w", err)
	}

	return nil
}

func (s *AuthServiceImpl) ParseToken(ctx context.Context, tokenString string) (int64, domain.UserRole, error) {
	token, err := jwt.ParseWithClaims(tokenString, &tokenClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("неожиданный метод подписи: %v", token.Header["alg"])
		}
		return []byte(s.jwtConfig.SigningKey), nil
	})
	if err != nil {
		return 0, "", fmt.Errorf("ошибка парсинга токена: %w", err)
	}

	claims, ok := token.Claims.(*tokenClaims)
	if !ok || !token.Valid {
		return 0, "", errors.New("недействительный токен")
	}

	return claims.UserID, claims.Role, nil
}

// startSession выпускает пару токенов и сохраняет refresh-сессию.
func (s *AuthServiceImpl) startSession(ctx context.Context, user *domain.User, userAgent, ip string) (*domain.Tokens, error) {
	accessToken, err := s.signToken(user.ID, user.Role, s.jwtConfig.AccessTokenTTL)
	if err != nil {
		s.logger.Error("ошибка подписи access token", zap.Error(err))
		return nil, fmt.Errorf("ошибка при аутентификации: %w", err)
	}

	refreshToken, err := s.signToken(user.ID, user.Role, s.jwtConfig.RefreshTokenTTL)
	if err != nil {
		s.logger.Error("ошибка подписи refresh token", zap.Error(err))
		return nil, fmt.Errorf("ошибка при аутентификации: %w", err)
	}

	session := domain.Session{
		ID:           uuid.New().String(),
		UserID:       user.ID,
		RefreshToken: refreshToken,
		UserAgent:    userAgent,
		IP:           ip,
		ExpiresAt:    time.Now().Add(s.jwtConfig.RefreshTokenTTL),
		CreatedAt:    time.Now(),
	}

	if err := s.authRepo.CreateSession(ctx, session); err != nil {
		s.logger.Error("ошибка сохранения сессии", zap.Error(err))
		return nil, fmt.Errorf("ошибка при аутентификации: %w", err)
	}

	return &domain.Tokens{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

func (s *AuthServiceImpl) signToken(userID int64, role domain.UserRole, ttl time.Duration) (string, error) {
	claims := tokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
		UserID: userID,
		Role:   role,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtConfig.SigningKey))
}
