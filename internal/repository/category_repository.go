package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/aueb-cf/inventory-service/internal/domain"
)

// CategoryRepository manages product categories.
type CategoryRepository interface {
	List(ctx context.Context) ([]domain.Category, error)
	GetByID(ctx context.Context, id int64) (*domain.Category, error)
	Save(ctx context.Context, category *domain.Category) error
	Delete(ctx context.Context, id int64) error
}

type categoryRepository struct {
	pool *pgxpool.Pool
}

// NewCategoryRepository builds the repository.
func NewCategoryRepository(pool *pgxpool.Pool) CategoryRepository {
	return &categoryRepository{pool: pool}
}

func (r *categoryRepository) List(ctx context.Context) ([]domain.Category, error) {
	const query = `SELECT id, name, created_at, updated_at FROM categories ORDER BY name`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []domain.Category{}
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, c)
	}
	return result, rows.Err()
}

func (r *categoryRepository) GetByID(ctx context.Context, id int64) (*domain.Category, error) {
	const query = `SELECT id, name, created_at, updated_at FROM categories WHERE id=$1`
	var c domain.Category
	if err := r.pool.QueryRow(ctx, query, id).Scan(&c.ID, &c.Name, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

// Save inserts when ID is zero and updates otherwise.
func (r *categoryRepository) Save(ctx context.Context, category *domain.Category) error {
	if category.ID == 0 {
		const insert = `
        INSERT INTO categories (name) VALUES ($1)
        RETURNING id, created_at, updated_at`
		err := r.pool.QueryRow(ctx, insert, category.Name).
			Scan(&category.ID, &category.CreatedAt, &category.UpdatedAt)
		return translate(err)
	}

	const update = `
        UPDATE categories SET name=$1, updated_at=NOW()
        WHERE id=$2
        RETURNING created_at, updated_at`
	err := r.pool.QueryRow(ctx, update, category.Name, category.ID).
		Scan(&category.CreatedAt, &category.UpdatedAt)
	return translate(err)
}

func (r *categoryRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM categories WHERE id=$1`, id)
	if err != nil {
		return translate(err)
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
