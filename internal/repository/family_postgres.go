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

type FamilyRepo struct {
	db *pgxpool.Pool
}

func NewFamilyRepository(db *pgxpool.Pool) *FamilyRepo {
	return &FamilyRepo{
		db: db,
	}
}

func (r *FamilyRepo) Create(ctx context.Context, dto domain.CreateFamilyDTO) (int64, error) {
	query := `
		INSERT INTO families (name, consistency, created_at, updated_at)
		VALUES ($1, $2, $3, $3)
		RETURNING id
	`

	var id int64
	err := r.db.QueryRow(ctx, query, dto.Name, dto.Consistency, time.Now()).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("ошибка создания семьи: %w", err)
	}

	return id, nil
}

func (r *FamilyRepo) GetByID(ctx context.Context, id int64) (*domain.Family, error) {
	query := `
		SELECT id, name, consistency, created_at, updated_at
		FROM families
		WHERE id = $1
	`

	var family domain.Family
	err := r.db.QueryRow(ctx, query, id).Scan(
		&family.ID,
		&family.Name,
		&family.Consistency,
		&family.CreatedAt,
		&family.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrFamilyNotFound
		}
		return nil, fmt.Errorf("ошибка получения семьи: %w", err)
	}

	return &family, nil
}

func (r *FamilyRepo) Update(ctx context.Context, id int64, dto domain.UpdateFamilyDTO) error {
	setValues := []string{}
	args := []interface{}{id}
	argId := 2

	if dto.Name != nil {
		setValues = append(setValues, fmt.Sprintf("name = $%d", argId))
		args = append(args, *dto.Name)
		argId++
	}

	if dto.Consistency != nil {
		setValues = append(setValues, fmt.Sprintf("consistency = $%d", argId))
		args = append(args, *dto.Consistency)
		argId++
	}

	if len(setValues) == 0 {
		return nil
	}

	setValues = append(setValues, fmt.Sprintf("updated_at = $%d", argId))
	args = append(args, time.Now())

	query := fmt.Sprintf(`
		UPDATE families
		SET %s
		WHERE id = $1
	`, strings.Join(setValues, ", "))

	result, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("ошибка обновления семьи: %w", err)
	}

	if result.RowsAffected() == 0 {
		return domain.ErrFamilyNotFound
	}

	return nil
}

func (r *FamilyRepo) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM families WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("ошибка удаления семьи: %w", err)
	}

	if result.RowsAffected() == 0 {
		return domain.ErrFamilyNotFound
	}

	return nil
}

func (r *FamilyRepo) List(ctx context.Context, limit, offset int) ([]domain.Family, error) {
	query := `
		SELECT id, name, consistency, created_at, updated_at
		FROM families
		ORDER BY id
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("ошибка выполнения запроса: %w", err)
	}
	defer rows.Close()

	families := make([]domain.Family, 0)
	for rows.Next() {
		var family domain.Family
		if err := rows.Scan(
			&family.ID,
			&family.Name,
			&family.Consistency,
			&family.CreatedAt,
			&family.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("ошибка сканирования строки семьи: %w", err)
		}

		families = append(families, family)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка при итерации по строкам: %w", err)
	}

	return families, nil
}
