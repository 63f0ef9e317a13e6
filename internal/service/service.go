package service

import (
	"context"

	"go.uber.org/zap"

	"carematch/config"
	"carematch/internal/domain"
	"carematch/internal/repository"
	"carematch/internal/storage"
	"carematch/pkg/cache"
)

type Deps struct {
	Repos       *repository.Repositories
	Logger      *zap.Logger
	Config      *config.Config
	FileStorage storage.FileStorage
	Cache       cache.Cache
	Recommender Recommender
}

type Services struct {
	User       UserService
	Auth       AuthService
	Family     FamilyService
	Provider   ProviderService
	Request    RequestService
	Assignment AssignmentService
	Suggestion SuggestionService
}

func NewServices(deps Deps) *Services {
	assignment := NewAssignmentService(deps.Repos.Assignment, deps.Repos.Request, deps.Repos.Provider, deps.Logger)

	return &Services{
		User:       NewUserService(deps.Repos.User, deps.Repos.Family, deps.Logger),
		Auth:       NewAuthService(deps.Repos.Auth, deps.Repos.User, deps.Repos.Family, deps.Config.JWT, deps.Logger),
		Family:     NewFamilyService(deps.Repos.Family, deps.Logger),
		Provider:   NewProviderService(deps.Repos.Provider, deps.FileStorage, deps.Cache, deps.Config.Redis.CacheTTL, deps.Logger),
		Request:    NewRequestService(deps.Repos.Request, deps.Repos.Family, deps.Repos.Assignment, deps.Logger),
		Assignment: assignment,
		Suggestion: NewSuggestionService(deps.Recommender, deps.Repos.Request, deps.Repos.Provider, deps.Repos.Assignment, assignment, deps.Logger),
	}
}

type UserService interface {
	Create(ctx context.Context, dto domain.CreateUserDTO) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	Update(ctx context.Context, id int64, dto domain.UpdateUserDTO) error
	UpdatePassword(ctx context.Context, id int64, dto domain.PasswordUpdateDTO) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, limit, offset int) ([]domain.User, error)
}

type AuthService interface {
	Register(ctx context.Context, dto domain.RegisterRequest) (*domain.RegistrationResult, error)
	Login(ctx context.Context, dto domain.LoginRequest, userAgent, ip string) (*domain.Tokens, error)
	RefreshTokens(ctx context.Context, refreshToken, userAgent, ip string) (*domain.Tokens, error)
	Logout(ctx context.Context, refreshToken string) error
	ParseToken(ctx context.Context, token string) (int64, domain.UserRole, error)
}

type FamilyService interface {
	Create(ctx context.Context, dto domain.CreateFamilyDTO) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.Family, error)
	Update(ctx context.Context, id int64, dto domain.UpdateFamilyDTO) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, limit, offset int) ([]domain.Family, error)
}

type ProviderService interface {
	Create(ctx context.Context, dto domain.CreateProviderDTO) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.Provider, error)
	Update(ctx context.Context, id int64, dto domain.UpdateProviderDTO) error
	Delete(ctx context.Context, id int64) error
	// Query — пайплайн подбора: атрибутные фильтры в хранилище, фильтр
	// доступности в памяти, затем сортировка и пагинация.
	Query(ctx context.Context, query domain.ProviderQuery) (*domain.ProviderPage, error)

	UploadPhoto(ctx context.Context, providerID int64, photo []byte, filename string) error
	DeletePhoto(ctx context.Context, providerID int64) error
}

type RequestService interface {
	Create(ctx context.Context, dto domain.CreateRequestDTO) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.CareRequest, error)
	List(ctx context.Context, filter domain.RequestFilter) ([]domain.CareRequest, int, error)
	Delete(ctx context.Context, id int64) error
}

type AssignmentService interface {
	Create(ctx context.Context, dto domain.CreateAssignmentDTO) (*domain.Assignment, error)
	GetByID(ctx context.Context, id int64) (*domain.Assignment, error)
	UpdateProvider(ctx context.Context, id int64, dto domain.UpdateAssignmentDTO) (*domain.Assignment, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filter domain.AssignmentFilter) ([]domain.Assignment, error)
	// FindConflict возвращает первое назначение специалиста, интервал
	// заявки которого пересекается с candidate; nil — конфликтов нет.
	FindConflict(ctx context.Context, providerID int64, candidate domain.Interval, excludeAssignmentID *int64) (*domain.ProviderAssignment, error)
}

type SuggestionService interface {
	Suggest(ctx context.Context, requestID int64) (*domain.SuggestionResult, error)
}
