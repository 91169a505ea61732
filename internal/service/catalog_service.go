package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/aueb-cf/inventory-service/internal/auth"
	"github.com/aueb-cf/inventory-service/internal/domain"
	"github.com/aueb-cf/inventory-service/internal/repository"
)

// CatalogService serves categories, suppliers, products and orders.
type CatalogService struct {
	categories repository.CategoryRepository
	suppliers  repository.SupplierRepository
	products   repository.ProductRepository
	orders     repository.OrderRepository
	logger     *zap.Logger
}

// CatalogDependencies encapsulates the catalog repositories. Logger is optional.
type CatalogDependencies struct {
	CategoryRepo repository.CategoryRepository
	SupplierRepo repository.SupplierRepository
	ProductRepo  repository.ProductRepository
	OrderRepo    repository.OrderRepository
	Logger       *zap.Logger
}

// NewCatalogService constructs the service.
func NewCatalogService(deps CatalogDependencies) *CatalogService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CatalogService{
		categories: deps.CategoryRepo,
		suppliers:  deps.SupplierRepo,
		products:   deps.ProductRepo,
		orders:     deps.OrderRepo,
		logger:     logger,
	}
}

// logChange records a successful catalog write with the caller taken from ctx.
func (s *CatalogService) logChange(ctx context.Context, action, resource string, id int64) {
	fields := []zap.Field{zap.String("resource", resource), zap.Int64("id", id)}
	if caller, ok := auth.IdentityFromUserContext(ctx); ok {
		fields = append(fields, zap.String("subject", caller.Subject), zap.String("role", string(caller.Role)))
	}
	s.logger.Info("catalog "+action, fields...)
}

func (s *CatalogService) ListCategories(ctx context.Context) ([]domain.Category, error) {
	list, err := s.categories.List(ctx)
	return list, storeError("list categories", err)
}

func (s *CatalogService) GetCategory(ctx context.Context, id int64) (*domain.Category, error) {
	c, err := s.categories.GetByID(ctx, id)
	return c, storeError("get category", err)
}

// SaveCategory creates the category when ID is zero and updates it otherwise.
func (s *CatalogService) SaveCategory(ctx context.Context, category *domain.Category) error {
	if err := s.categories.Save(ctx, category); err != nil {
		return storeError("save category", err)
	}
	s.logChange(ctx, "saved", "category", category.ID)
	return nil
}

func (s *CatalogService) DeleteCategory(ctx context.Context, id int64) error {
	if err := s.categories.Delete(ctx, id); err != nil {
		return storeError("delete category", err)
	}
	s.logChange(ctx, "deleted", "category", id)
	return nil
}

func (s *CatalogService) ListSuppliers(ctx context.Context) ([]domain.Supplier, error) {
	list, err := s.suppliers.List(ctx)
	return list, storeError("list suppliers", err)
}

func (s *CatalogService) GetSupplier(ctx context.Context, id int64) (*domain.Supplier, error) {
	sup, err := s.suppliers.GetByID(ctx, id)
	return sup, storeError("get supplier", err)
}

// SaveSupplier creates the supplier when ID is zero and updates it otherwise.
func (s *CatalogService) SaveSupplier(ctx context.Context, supplier *domain.Supplier) error {
	if err := s.suppliers.Save(ctx, supplier); err != nil {
		return storeError("save supplier", err)
	}
	s.logChange(ctx, "saved", "supplier", supplier.ID)
	return nil
}

func (s *CatalogService) DeleteSupplier(ctx context.Context, id int64) error {
	if err := s.suppliers.Delete(ctx, id); err != nil {
		return storeError("delete supplier", err)
	}
	s.logChange(ctx, "deleted", "supplier", id)
	return nil
}

func (s *CatalogService) ListProducts(ctx context.Context) ([]domain.Product, error) {
	list, err := s.products.List(ctx)
	return list, storeError("list products", err)
}

func (s *CatalogService) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	p, err := s.products.GetByID(ctx, id)
	return p, storeError("get product", err)
}

func (s *CatalogService) ListOrders(ctx context.Context) ([]domain.Order, error) {
	list, err := s.orders.List(ctx)
	return list, storeError("list orders", err)
}

func (s *CatalogService) GetOrder(ctx context.Context, id int64) (*domain.Order, error) {
	o, err := s.orders.GetByID(ctx, id)
	return o, storeError("get order", err)
}

// storeError maps repository outcomes onto service sentinels.
func storeError(op string, err error) error {
	switch {
	case err == nil:
		return nil
	case repository.IsNotFound(err):
		return ErrNotFound
	case errors.Is(err, repository.ErrDuplicate):
		return fmt.Errorf("%s: %w", op, ErrAlreadyExists)
	case errors.Is(err, repository.ErrReferenced):
		return fmt.Errorf("%s: %w", op, ErrInUse)
	case errors.Is(err, repository.ErrUnavailable):
		return fmt.Errorf("%s: %w", op, ErrUnavailable)
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}
