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

type ProviderRepo struct {
	db *pgxpool.Pool
}

func NewProviderRepository(db *pgxpool.Pool) *ProviderRepo {
	return &ProviderRepo{
		db: db,
	}
}

func (r *ProviderRepo) Create(ctx context.Context, dto domain.CreateProviderDTO) (int64, error) {
	query := `
		INSERT INTO providers (name, specialty, availability, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $4)
		RETURNING id
	`

	availability := dto.Availability
	if availability == nil {
		availability = domain.WeekAvailability{}
	}

	var id int64
	err := r.db.QueryRow(ctx, query,
		dto.Name,
		dto.Specialty,
		availability,
		time.Now(),
	).Scan(&id)

	if err != nil {
		return 0, fmt.Errorf("ошибка создания специалиста: %w", err)
	}

	return id, nil
}

func (r *ProviderRepo) GetByID(ctx context.Context, id int64) (*domain.Provider, error) {
	query := `
		SELECT id, name, specialty, availability, COALESCE(photo_url, ''), created_at, updated_at
		FROM providers
		WHERE id = $1
	`

	var provider domain.Provider
	err := r.db.QueryRow(ctx, query, id).Scan(
		&provider.ID,
		&provider.Name,
		&provider.Specialty,
		&provider.Availability,
		&provider.PhotoURL,
		&provider.CreatedAt,
		&provider.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrProviderNotFound
		}
		return nil, fmt.Errorf("ошибка получения специалиста: %w", err)
	}

	return &provider, nil
}

func (r *ProviderRepo) Update(ctx context.Context, id int64, dto domain.UpdateProviderDTO) error {
	setValues := []string{}
	args := []interface{}{id}
	argId := 2

	if dto.Name != nil {
		setValues = append(setValues, fmt.Sprintf("name = $%d", argId))
		args = append(args, *dto.Name)
		argId++
	}

	if dto.Specialty != nil {
		setValues = append(setValues, fmt.Sprintf("specialty = $%d", argId))
		args = append(args, *dto.Specialty)
		argId++
	}

	if dto.Availability != nil {
		setValues = append(setValues, fmt.Sprintf("availability = $%d", argId))
		args = append(args, *dto.Availability)
		argId++
	}

	if len(setValues) == 0 {
		return nil
	}

	setValues = append(setValues, fmt.Sprintf("updated_at = $%d", argId))
	args = append(args, time.Now())

	query := fmt.Sprintf(`
		UPDATE providers
		SET %s
		WHERE id = $1
	`, strings.Join(setValues, ", "))

	result, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("ошибка обновления специалиста: %w", err)
	}

	if result.RowsAffected() == 0 {
		return domain.ErrProviderNotFound
	}

	return nil
}

func (r *ProviderRepo) UpdatePhoto(ctx context.Context, id int64, photoURL string) error {
	query := `
		UPDATE providers
		SET photo_url = $2, updated_at = $3
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query, id, photoURL, time.Now())
	if err != nil {
		return fmt.Errorf("ошибка обновления фото специалиста: %w", err)
	}

	if result.RowsAffected() == 0 {
		return domain.ErrProviderNotFound
	}

	return nil
}

func (r *ProviderRepo) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM providers WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("ошибка удаления специалиста: %w", err)
	}

	if result.RowsAffected() == 0 {
		return domain.ErrProviderNotFound
	}

	return nil
}

func (r *ProviderRepo) List(ctx context.Context, filter domain.ProviderFilter) ([]domain.Provider, error) {
	baseQuery := `
		SELECT id, name, specialty, availability, COALESCE(photo_url, ''), created_at, updated_at
		FROM providers
	`

	var conditions []string
	var args []interface{}
	argCount := 1

	if filter.Specialty != nil && *filter.Specialty != "" {
		conditions = append(conditions, fmt.Sprintf("specialty ILIKE $%d", argCount))
		args = append(args, "%"+*filter.Specialty+"%")
		argCount++
	}

	if filter.Search != nil && *filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf("(name ILIKE $%d OR specialty ILIKE $%d)", argCount, argCount))
		args = append(args, "%"+*filter.Search+"%")
		argCount++
	}

	query := baseQuery
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}

	query += " ORDER BY id"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка выполнения запроса: %w", err)
	}
	defer rows.Close()

	providers := make([]domain.Provider, 0)
	for rows.Next() {
		var provider domain.Provider
		if err := rows.Scan(
			&provider.ID,
			&provider.Name,
			&provider.Specialty,
			&provider.Availability,
			&provider.PhotoURL,
			&provider.CreatedAt,
			&provider.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("ошибка сканирования строки специалиста: %w", err)
		}

		providers = append(providers, provider)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка при итерации по строкам: %w", err)
	}

	return providers, nil
}
