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

type AssignmentRepo struct {
	db *pgxpool.Pool
}

func NewAssignmentRepository(db *pgxpool.Pool) *AssignmentRepo {
	return &AssignmentRepo{
		db: db,
	}
}

const assignmentSelect = `
	SELECT a.id, a.request_id, a.provider_id, a.created_at, a.updated_at,
	       p.name, p.specialty, COALESCE(p.photo_url, ''),
	       r.family_id, r.care_type, r.start_time, r.end_time,
	       f.name, f.consistency
	FROM assignments a
	JOIN providers p ON a.provider_id = p.id
	JOIN requests r ON a.request_id = r.id
	JOIN families f ON r.family_id = f.id
`

func scanAssignmentRow(row pgx.Row) (*domain.Assignment, error) {
	var assignment domain.Assignment
	var provider domain.Provider
	var request domain.CareRequest
	var family domain.Family

	err := row.Scan(
		&assignment.ID,
		&assignment.RequestID,
		&assignment.ProviderID,
		&assignment.CreatedAt,
		&assignment.UpdatedAt,
		&provider.Name,
		&provider.Specialty,
		&provider.PhotoURL,
		&request.FamilyID,
		&request.CareType,
		&request.StartTime,
		&request.EndTime,
		&family.Name,
		&family.Consistency,
	)
	if err != nil {
		return nil, err
	}

	provider.ID = assignment.ProviderID
	request.ID = assignment.RequestID
	family.ID = request.FamilyID
	request.Family = &family

	assignment.Provider = &provider
	assignment.Request = &request

	return &assignment, nil
}

// Create вставляет назначение, повторяя проверки инвариантов внутри
// транзакции: уникальность назначения по заявке и отсутствие пересечения
// интервалов у специалиста. Проверка в сервисе остаётся best effort,
// транзакция — последняя линия защиты от параллельных записей.
func (r *AssignmentRepo) Create(ctx context.Context, dto domain.CreateAssignmentDTO) (int64, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("ошибка начала транзакции: %w", err)
	}
	defer tx.Rollback(ctx)

	var exists int
	err = tx.QueryRow(ctx,
		`SELECT COUNT(*) FROM assignments WHERE request_id = $1`,
		dto.RequestID,
	).Scan(&exists)
	if err != nil {
		return 0, fmt.Errorf("ошибка проверки существующего назначения: %w", err)
	}
	if exists > 0 {
		return 0, domain.ErrAlreadyAssigned
	}

	conflict, err := findConflictTx(ctx, tx, dto.ProviderID, dto.RequestID, nil)
	if err != nil {
		return 0, err
	}
	if conflict != nil {
		return 0, conflict
	}

	var id int64
	err = tx.QueryRow(ctx, `
		INSERT INTO assignments (request_id, provider_id, created_at, updated_at)
		VALUES ($1, $2, $3, $3)
		RETURNING id
	`, dto.RequestID, dto.ProviderID, time.Now()).Scan(&id)

	if err != nil {
		return 0, fmt.Errorf("ошибка создания назначения: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("ошибка при коммите транзакции: %w", err)
	}

	return id, nil
}

func (r *AssignmentRepo) GetByID(ctx context.Context, id int64) (*domain.Assignment, error) {
	query := assignmentSelect + " WHERE a.id = $1"

	assignment, err := scanAssignmentRow(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAssignmentNotFound
		}
		return nil, fmt.Errorf("ошибка получения назначения: %w", err)
	}

	return assignment, nil
}

func (r *AssignmentRepo) GetByRequestID(ctx context.Context, requestID int64) (*domain.Assignment, error) {
	query := assignmentSelect + " WHERE a.request_id = $1"

	assignment, err := scanAssignmentRow(r.db.QueryRow(ctx, query, requestID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAssignmentNotFound
		}
		return nil, fmt.Errorf("ошибка получения назначения по заявке: %w", err)
	}

	return assignment, nil
}

// UpdateProvider меняет специалиста у назначения. Конфликт проверяется
// в транзакции с исключением самого назначения, чтобы заявка не
// конфликтовала сама с собой.
func (r *AssignmentRepo) UpdateProvider(ctx context.Context, id, providerID int64) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("ошибка начала транзакции: %w", err)
	}
	defer tx.Rollback(ctx)

	var requestID int64
	err = tx.QueryRow(ctx,
		`SELECT request_id FROM assignments WHERE id = $1`,
		id,
	).Scan(&requestID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrAssignmentNotFound
		}
		return fmt.Errorf("ошибка получения назначения: %w", err)
	}

	conflict, err := findConflictTx(ctx, tx, providerID, requestID, &id)
	if err != nil {
		return err
	}
	if conflict != nil {
		return conflict
	}

	_, err = tx.Exec(ctx, `
		UPDATE assignments
		SET provider_id = $2, updated_at = $3
		WHERE id = $1
	`, id, providerID, time.Now())
	if err != nil {
		return fmt.Errorf("ошибка обновления назначения: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("ошибка при коммите транзакции: %w", err)
	}

	return nil
}

func (r *AssignmentRepo) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM assignments WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("ошибка удаления назначения: %w", err)
	}

	if result.RowsAffected() == 0 {
		return domain.ErrAssignmentNotFound
	}

	return nil
}

func (r *AssignmentRepo) DeleteByRequestID(ctx context.Context, requestID int64) error {
	query := `DELETE FROM assignments WHERE request_id = $1`

	_, err := r.db.Exec(ctx, query, requestID)
	if err != nil {
		return fmt.Errorf("ошибка удаления назначения заявки: %w", err)
	}

	return nil
}

func (r *AssignmentRepo) List(ctx context.Context, filter domain.AssignmentFilter) ([]domain.Assignment, error) {
	var conditions []string
	var args []interface{}
	argCount := 1

	if filter.ProviderID != nil {
		conditions = append(conditions, fmt.Sprintf("a.provider_id = $%d", argCount))
		args = append(args, *filter.ProviderID)
		argCount++
	}

	if filter.FamilyID != nil {
		conditions = append(conditions, fmt.Sprintf("r.family_id = $%d", argCount))
		args = append(args, *filter.FamilyID)
		argCount++
	}

	query := assignmentSelect
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}

	query += " ORDER BY a.id"

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

	assignments := make([]domain.Assignment, 0)
	for rows.Next() {
		assignment, err := scanAssignmentRow(rows)
		if err != nil {
			return nil, fmt.Errorf("ошибка сканирования строки назначения: %w", err)
		}
		assignments = append(assignments, *assignment)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка при итерации по строкам: %w", err)
	}

	return assignments, nil
}

func (r *AssignmentRepo) ListByProvider(ctx context.Context, providerID int64) ([]domain.ProviderAssignment, error) {
	query := `
		SELECT a.id, a.request_id, a.provider_id, a.created_at, a.updated_at,
		       r.care_type, r.start_time, r.end_time
		FROM assignments a
		JOIN requests r ON a.request_id = r.id
		WHERE a.provider_id = $1
		ORDER BY a.id
	`

	rows, err := r.db.Query(ctx, query, providerID)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения назначений специалиста: %w", err)
	}
	defer rows.Close()

	assignments := make([]domain.ProviderAssignment, 0)
	for rows.Next() {
		var pa domain.ProviderAssignment
		if err := rows.Scan(
			&pa.ID,
			&pa.RequestID,
			&pa.ProviderID,
			&pa.CreatedAt,
			&pa.UpdatedAt,
			&pa.CareType,
			&pa.StartTime,
			&pa.EndTime,
		); err != nil {
			return nil, fmt.Errorf("ошибка сканирования строки назначения: %w", err)
		}
		assignments = append(assignments, pa)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка при итерации по строкам: %w", err)
	}

	return assignments, nil
}

func (r *AssignmentRepo) ListByFamily(ctx context.Context, familyID int64) ([]domain.Assignment, error) {
	return r.List(ctx, domain.AssignmentFilter{FamilyID: &familyID})
}

// findConflictTx ищет внутри транзакции назначение того же специалиста,
// интервал заявки которого пересекается (закрытые интервалы) с интервалом
// указанной заявки.
func findConflictTx(ctx context.Context, tx pgx.Tx, providerID, requestID int64, excludeAssignmentID *int64) (*domain.SchedulingConflictError, error) {
	query := `
		SELECT a.id, r2.care_type, r2.start_time, r2.end_time
		FROM assignments a
		JOIN requests r2 ON a.request_id = r2.id
		JOIN requests r ON r.id = $2
		WHERE a.provider_id = $1
		AND r2.start_time <= r.end_time
		AND r2.end_time >= r.start_time
	`
	args := []interface{}{providerID, requestID}

	if excludeAssignmentID != nil {
		query += " AND a.id != $3"
		args = append(args, *excludeAssignmentID)
	}

	query += " ORDER BY a.id LIMIT 1"

	var conflict domain.SchedulingConflictError
	err := tx.QueryRow(ctx, query, args...).Scan(
		&conflict.AssignmentID,
		&conflict.CareType,
		&conflict.Start,
		&conflict.End,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("ошибка проверки конфликта расписания: %w", err)
	}

	return &conflict, nil
}
