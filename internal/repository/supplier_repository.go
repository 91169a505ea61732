package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/aueb-cf/inventory-service/internal/domain"
)

// SupplierRepository manages suppliers.
type SupplierRepository interface {
	List(ctx context.Context) ([]domain.Supplier, error)
	GetByID(ctx context.Context, id int64) (*domain.Supplier, error)
	Save(ctx context.Context, supplier *domain.Supplier) error
	Delete(ctx context.Context, id int64) error
}

type supplierRepository struct {
	pool *pgxpool.Pool
}

// NewSupplierRepository builds the repository.
func NewSupplierRepository(pool *pgxpool.Pool) SupplierRepository {
	return &supplierRepository{pool: pool}
}

const supplierColumns = `id, name, email, phone_number, created_at, updated_at`

func scanSupplier(row pgx.Row) (*domain.Supplier, error) {
	var s domain.Supplier
	if err := row.Scan(&s.ID, &s.Name, &s.Email, &s.PhoneNumber, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *supplierRepository) List(ctx context.Context) ([]domain.Supplier, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+supplierColumns+` FROM suppliers ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []domain.Supplier{}
	for rows.Next() {
		s, err := scanSupplier(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *s)
	}
	return result, rows.Err()
}

func (r *supplierRepository) GetByID(ctx context.Context, id int64) (*domain.Supplier, error) {
	return scanSupplier(r.pool.QueryRow(ctx, `SELECT `+supplierColumns+` FROM suppliers WHERE id=$1`, id))
}

// Save inserts when ID is zero and updates otherwise.
func (r *supplierRepository) Save(ctx context.Context, supplier *domain.Supplier) error {
	if supplier.ID == 0 {
		const insert = `
        INSERT INTO suppliers (name, email, phone_number) VALUES ($1, $2, $3)
        RETURNING id, created_at, updated_at`
		err := r.pool.QueryRow(ctx, insert, supplier.Name, supplier.Email, supplier.PhoneNumber).
			Scan(&supplier.ID, &supplier.CreatedAt, &supplier.UpdatedAt)
		return translate(err)
	}

	const update = `
        UPDATE suppliers SET name=$1, email=$2, phone_number=$3, updated_at=NOW()
        WHERE id=$4
        RETURNING created_at, updated_at`
	err := r.pool.QueryRow(ctx, update, supplier.Name, supplier.Email, supplier.PhoneNumber, supplier.ID).
		Scan(&supplier.CreatedAt, &supplier.UpdatedAt)
	return translate(err)
}

func (r *supplierRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM suppliers WHERE id=$1`, id)
	if err != nil {
		return translate(err)
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
