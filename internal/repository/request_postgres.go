package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"carematch/internal/domain"
)

type RequestRepo struct {
	db *pgxpool.Pool
}

func NewRequestRepository(db *pgxpool.Pool) *RequestRepo {
	return &RequestRepo{
		db: db,
	}
}

const requestSelect = `
	SELECT r.id, r.family_id, r.care_type, r.start_time, r.end_time, r.created_at, r.updated_at,
	       f.id, f.name, f.consistency, f.created_at, f.updated_at,
	       a.id, a.provider_id, a.created_at, a.updated_at,
	       p.id, p.name, p.specialty, COALESCE(p.availability, '{}'::jsonb)
	FROM requests r
	JOIN families f ON r.family_id = f.id
	LEFT JOIN assignments a ON a.request_id = r.id
	LEFT JOIN providers p ON a.provider_id = p.id
`

func scanRequestRow(row pgx.Row) (*domain.CareRequest, error) {
	var request domain.CareRequest
	var family domain.Family

	var assignmentID, assignmentProviderID *int64
	var assignmentCreatedAt, assignmentUpdatedAt *time.Time
	var providerID *int64
	var providerName, providerSpecialty *string
	var providerAvailability domain.WeekAvailability

	err := row.Scan(
		&request.ID,
		&request.FamilyID,
		&request.CareType,
		&request.StartTime,
		&request.EndTime,
		&request.CreatedAt,
		&request.UpdatedAt,
		&family.ID,
		&family.Name,
		&family.Consistency,
		&family.CreatedAt,
		&family.UpdatedAt,
		&assignmentID,
		&assignmentProviderID,
		&assignmentCreatedAt,
		&assignmentUpdatedAt,
		&providerID,
		&providerName,
		&providerSpecialty,
		&providerAvailability,
	)
	if err != nil {
		return nil, err
	}

	request.Family = &family

	if assignmentID != nil {
		assignment := domain.Assignment{
			ID:         *assignmentID,
			RequestID:  request.ID,
			ProviderID: *assignmentProviderID,
			CreatedAt:  *assignmentCreatedAt,
			UpdatedAt:  *assignmentUpdatedAt,
		}
		if providerID != nil {
			assignment.Provider = &domain.Provider{
				ID:           *providerID,
				Name:         *providerName,
				Specialty:    *providerSpecialty,
				Availability: providerAvailability,
			}
		}
		request.Assignment = &assignment
	}

	return &request, nil
}

func (r *RequestRepo) Create(ctx context.Context, dto domain.CreateRequestDTO) (int64, error) {
	query := `
		INSERT INTO requests (family_id, care_type, start_time, end_time, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $5)
		RETURNING id
	`

	var id int64
	err := r.db.QueryRow(ctx, query,
		dto.FamilyID,
		dto.CareType,
		dto.StartTime,
		dto.EndTime,
		time.Now(),
	).Scan(&id)

	if err != nil {
		return 0, fmt.Errorf("ошибка создания заявки: %w", err)
	}

	return id, nil
}

func (r *RequestRepo) GetByID(ctx context.Context, id int64) (*domain.CareRequest, error) {
	query := requestSelect + " WHERE r.id = $1"

	request, err := scanRequestRow(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRequestNotFound
		}
		return nil, fmt.Errorf("ошибка получения заявки: %w", err)
	}

	return request, nil
}

func (r *RequestRepo) List(ctx context.Context, filter domain.RequestFilter) ([]domain.CareRequest, error) {
	conditions, args := requestConditions(filter)

	query := requestSelect
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}

	query += " ORDER BY r.start_time DESC"

	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", filter.Limit)
	}
	if filter.Offset > 0 {
		query += fmt.Sprintf(" OFFSET %d", filter.Offset)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка выполнения запроса: %w", err)
	}
	defer rows.Close()

	requests := make([]domain.CareRequest, 0)
	for rows.Next() {
		request, err := scanRequestRow(rows)
		if err != nil {
			return nil, fmt.Errorf("ошибка сканирования строки заявки: %w", err)
		}
		requests = append(requests, *request)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка при итерации по строкам: %w", err)
	}

	return requests, nil
}

func (r *RequestRepo) CountByFilter(ctx context.Context, filter domain.RequestFilter) (int, error) {
	conditions, args := requestConditions(filter)

	query := `SELECT COUNT(*) FROM requests r`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}

	var count int
	err := r.db.QueryRow(ctx, query, args...).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("ошибка подсчета заявок: %w", err)
	}

	return count, nil
}

func (r *RequestRepo) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM requests WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("ошибка удаления заявки: %w", err)
	}

	if result.RowsAffected() == 0 {
		return domain.ErrRequestNotFound
	}

	return nil
}

func requestConditions(filter domain.RequestFilter) ([]string, []interface{}) {
	var conditions []string
	var args []interface{}
	argCount := 1

	if filter.FamilyID != nil {
		conditions = append(conditions, fmt.Sprintf("r.family_id = $%d", argCount))
		args = append(args, *filter.FamilyID)
		argCount++
	}

	if filter.CareType != nil {
		conditions = append(conditions, fmt.Sprintf("r.care_type ILIKE $%d", argCount))
		args = append(args, "%"+*filter.CareType+"%")
		argCount++
	}

	if filter.StartDate != nil {
		conditions = append(conditions, fmt.Sprintf("r.start_time >= $%d", argCount))
		args = append(args, *filter.StartDate)
		argCount++
	}

	if filter.EndDate != nil {
		conditions = append(conditions, fmt.Sprintf("r.end_time <= $%d", argCount))
		args = append(args, *filter.EndDate)
		argCount++
	}

	return conditions, args
}
