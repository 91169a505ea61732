package domain

import "time"

// Category groups products.
type Category struct {
	ID        int64
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Supplier provides products and receives orders.
type Supplier struct {
	ID          int64
	Name        string
	Email       string
	PhoneNumber string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Product is a stocked item.
type Product struct {
	ID          int64
	Name        string
	Description string
	Price       float64
	Quantity    int
	SupplierID  *int64
	CategoryID  *int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// OrderItem is one product line of an order.
type OrderItem struct {
	ProductID int64
	Quantity  int
}

// Order is a purchase order placed with a supplier.
type Order struct {
	ID         int64
	SupplierID int64
	OrderDate  time.Time
	Items      []OrderItem
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
