package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/aueb-cf/inventory-service/internal/domain"
)

// OrderRepository reads purchase orders with their lines.
type OrderRepository interface {
	List(ctx context.Context) ([]domain.Order, error)
	GetByID(ctx context.Context, id int64) (*domain.Order, error)
}

type orderRepository struct {
	pool *pgxpool.Pool
}

// NewOrderRepository builds the repository.
func NewOrderRepository(pool *pgxpool.Pool) OrderRepository {
	return &orderRepository{pool: pool}
}

func (r *orderRepository) List(ctx context.Context) ([]domain.Order, error) {
	const query = `
        SELECT id, supplier_id, order_date, created_at, updated_at
        FROM orders ORDER BY order_date DESC, id DESC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := []domain.Order{}
	index := map[int64]int{}
	for rows.Next() {
		var o domain.Order
		if err := rows.Scan(&o.ID, &o.SupplierID, &o.OrderDate, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, err
		}
		o.Items = []domain.OrderItem{}
		index[o.ID] = len(orders)
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return orders, nil
	}

	itemRows, err := r.pool.Query(ctx, `SELECT order_id, product_id, quantity FROM order_items ORDER BY order_id, product_id`)
	if err != nil {
		return nil, err
	}
	defer itemRows.Close()

	for itemRows.Next() {
		var orderID int64
		var item domain.OrderItem
		if err := itemRows.Scan(&orderID, &item.ProductID, &item.Quantity); err != nil {
			return nil, err
		}
		if i, ok := index[orderID]; ok {
			orders[i].Items = append(orders[i].Items, item)
		}
	}
	return orders, itemRows.Err()
}

func (r *orderRepository) GetByID(ctx context.Context, id int64) (*domain.Order, error) {
	const query = `
        SELECT id, supplier_id, order_date, created_at, updated_at
        FROM orders WHERE id=$1`
	var o domain.Order
	if err := r.pool.QueryRow(ctx, query, id).Scan(&o.ID, &o.SupplierID, &o.OrderDate, &o.CreatedAt, &o.UpdatedAt); err != nil {
		return nil, err
	}

	rows, err := r.pool.Query(ctx, `SELECT product_id, quantity FROM order_items WHERE order_id=$1 ORDER BY product_id`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	o.Items = []domain.OrderItem{}
	for rows.Next() {
		var item domain.OrderItem
		if err := rows.Scan(&item.ProductID, &item.Quantity); err != nil {
			return nil, err
		}
		o.Items = append(o.Items, item)
	}
	return &o, rows.Err()
}
