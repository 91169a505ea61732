package dto

import (
	"time"

	"github.com/aueb-cf/inventory-service/internal/domain"
)

// CategoryRequest creates (no id) or updates (id set) a category.
type CategoryRequest struct {
	ID   int64  `json:"id" validate:"gte=0"`
	Name string `json:"name" validate:"required,max=255"`
}

func (r CategoryRequest) ToDomain() *domain.Category {
	return &domain.Category{ID: r.ID, Name: r.Name}
}

type CategoryResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func NewCategoryResponse(c domain.Category) CategoryResponse {
	return CategoryResponse{ID: c.ID, Name: c.Name, CreatedAt: c.CreatedAt, UpdatedAt: c.UpdatedAt}
}

func NewCategoryList(list []domain.Category) []CategoryResponse {
	out := make([]CategoryResponse, len(list))
	for i, c := range list {
		out[i] = NewCategoryResponse(c)
	}
	return out
}

// SupplierRequest creates (no id) or updates (id set) a supplier.
type SupplierRequest struct {
	ID          int64  `json:"id" validate:"gte=0"`
	Name        string `json:"name" validate:"required,max=255"`
	Email       string `json:"email" validate:"omitempty,email,max=255"`
	PhoneNumber string `json:"phoneNumber" validate:"omitempty,max=32"`
}

func (r SupplierRequest) ToDomain() *domain.Supplier {
	return &domain.Supplier{ID: r.ID, Name: r.Name, Email: r.Email, PhoneNumber: r.PhoneNumber}
}

type SupplierResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email,omitempty"`
	PhoneNumber string    `json:"phoneNumber,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func NewSupplierResponse(s domain.Supplier) SupplierResponse {
	return SupplierResponse{
		ID:          s.ID,
		Name:        s.Name,
		Email:       s.Email,
		PhoneNumber: s.PhoneNumber,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}

func NewSupplierList(list []domain.Supplier) []SupplierResponse {
	out := make([]SupplierResponse, len(list))
	for i, s := range list {
		out[i] = NewSupplierResponse(s)
	}
	return out
}

type ProductResponse struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Price       float64 `json:"price"`
	Quantity    int     `json:"quantity"`
	SupplierID  *int64  `json:"supplierId,omitempty"`
	CategoryID  *int64  `json:"categoryId,omitempty"`
}

func NewProductResponse(p domain.Product) ProductResponse {
	return ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Quantity:    p.Quantity,
		SupplierID:  p.SupplierID,
		CategoryID:  p.CategoryID,
	}
}

func NewProductList(list []domain.Product) []ProductResponse {
	out := make([]ProductResponse, len(list))
	for i, p := range list {
		out[i] = NewProductResponse(p)
	}
	return out
}

type OrderItemResponse struct {
	ProductID int64 `json:"productId"`
	Quantity  int   `json:"quantity"`
}

type OrderResponse struct {
	ID         int64               `json:"id"`
	SupplierID int64               `json:"supplierId"`
	OrderDate  time.Time           `json:"orderDate"`
	Items      []OrderItemResponse `json:"items"`
}

func NewOrderResponse(o domain.Order) OrderResponse {
	items := make([]OrderItemResponse, len(o.Items))
	for i, it := range o.Items {
		items[i] = OrderItemResponse{ProductID: it.ProductID, Quantity: it.Quantity}
	}
	return OrderResponse{ID: o.ID, SupplierID: o.SupplierID, OrderDate: o.OrderDate, Items: items}
}

func NewOrderList(list []domain.Order) []OrderResponse {
	out := make([]OrderResponse, len(list))
	for i, o := range list {
		out[i] = NewOrderResponse(o)
	}
	return out
}
