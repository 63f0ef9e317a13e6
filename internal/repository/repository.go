package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"carematch/internal/domain"
)

type Repositories struct {
	User       UserRepository
	Auth       AuthRepository
	Family     FamilyRepository
	Provider   ProviderRepository
	Request    RequestRepository
	Assignment AssignmentRepository
}

func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		User:       NewUserRepository(db),
		Auth:       NewAuthRepository(db),
		Family:     NewFamilyRepository(db),
		Provider:   NewProviderRepository(db),
		Request:    NewRequestRepository(db),
		Assignment: NewAssignmentRepository(db),
	}
}

type UserRepository interface {
	Create(ctx context.Context, user domain.CreateUserDTO) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByPhone(ctx context.Context, phone string) (*domain.User, error)
	Update(ctx context.Context, id int64, user domain.UpdateUserDTO) error
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, limit, offset int) ([]domain.User, error)
}

type AuthRepository interface {
	CreateSession(ctx context.Context, session domain.Session) error
	GetSessionByRefreshToken(ctx context.Context, refreshToken string) (*domain.Session, error)
	DeleteSession(ctx context.Context, id string) error
	DeleteSessionsByUserID(ctx context.Context, userID int64) error
	DeleteExpiredSessions(ctx context.Context, now time.Time) (int64, error)
}

type FamilyRepository interface {
	Create(ctx context.Context, dto domain.CreateFamilyDTO) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.Family, error)
	Update(ctx context.Context, id int64, dto domain.UpdateFamilyDTO) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, limit, offset int) ([]domain.Family, error)
}

type ProviderRepository interface {
	Create(ctx context.Context, dto domain.CreateProviderDTO) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.Provider, error)
	Update(ctx context.Context, id int64, dto domain.UpdateProviderDTO) error
	UpdatePhoto(ctx context.Context, id int64, photoURL string) error
	Delete(ctx context.Context, id int64) error
	// List выполняет атрибутные фильтры (специальность, текстовый поиск)
	// на стороне хранилища; фильтр доступности применяется в памяти сервисом.
	List(ctx context.Context, filter domain.ProviderFilter) ([]domain.Provider, error)
}

type RequestRepository interface {
	Create(ctx context.Context, dto domain.CreateRequestDTO) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.CareRequest, error)
	List(ctx context.Context, filter domain.RequestFilter) ([]domain.CareRequest, error)
	CountByFilter(ctx context.Context, filter domain.RequestFilter) (int, error)
	Delete(ctx context.Context, id int64) error
}

type AssignmentRepository interface {
	Create(ctx context.Context, dto domain.CreateAssignmentDTO) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.Assignment, error)
	GetByRequestID(ctx context.Context, requestID int64) (*domain.Assignment, error)
	UpdateProvider(ctx context.Context, id, providerID int64) error
	Delete(ctx context.Context, id int64) error
	DeleteByRequestID(ctx context.Context, requestID int64) error
	List(ctx context.Context, filter domain.AssignmentFilter) ([]domain.Assignment, error)
	// ListByProvider возвращает назначения специалиста вместе с интервалами
	// их заявок, упорядоченные по id назначения по возрастанию.
	ListByProvider(ctx context.Context, providerID int64) ([]domain.ProviderAssignment, error)
	ListByFamily(ctx context.Context, familyID int64) ([]domain.Assignment, error)
}
