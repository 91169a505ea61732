package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/aueb-cf/inventory-service/internal/api/dto"
	"github.com/aueb-cf/inventory-service/internal/service"
	apperrors "github.com/aueb-cf/inventory-service/pkg/util"
)

// CatalogHandler serves the inventory resources.
type CatalogHandler struct {
	catalog *service.CatalogService
}

// NewCatalogHandler constructs handler.
func NewCatalogHandler(catalog *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

func pathID(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.NewValidationError("id must be a positive integer", map[string]any{"id": c.Params("id")})
	}
	return id, nil
}

func (h *CatalogHandler) ListCategories(c *fiber.Ctx) error {
	list, err := h.catalog.ListCategories(c.UserContext())
	if err != nil {
		return serviceError(err, "category")
	}
	return c.JSON(dto.NewCategoryList(list))
}

func (h *CatalogHandler) GetCategory(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	category, err := h.catalog.GetCategory(c.UserContext(), id)
	if err != nil {
		return serviceError(err, "category")
	}
	return c.JSON(dto.NewCategoryResponse(*category))
}

func (h *CatalogHandler) SaveCategory(c *fiber.Ctx) error {
	var req dto.CategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}
	category := req.ToDomain()
	if err := h.catalog.SaveCategory(c.UserContext(), category); err != nil {
		return serviceError(err, "category")
	}
	return c.JSON(dto.NewCategoryResponse(*category))
}

func (h *CatalogHandler) DeleteCategory(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.catalog.DeleteCategory(c.UserContext(), id); err != nil {
		return serviceError(err, "category")
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *CatalogHandler) ListSuppliers(c *fiber.Ctx) error {
	list, err := h.catalog.ListSuppliers(c.UserContext())
	if err != nil {
		return serviceError(err, "supplier")
	}
	return c.JSON(dto.NewSupplierList(list))
}

func (h *CatalogHandler) GetSupplier(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	supplier, err := h.catalog.GetSupplier(c.UserContext(), id)
	if err != nil {
		return serviceError(err, "supplier")
	}
	return c.JSON(dto.NewSupplierResponse(*supplier))
}

func (h *CatalogHandler) SaveSupplier(c *fiber.Ctx) error {
	var req dto.SupplierRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}
	supplier := req.ToDomain()
	if err := h.catalog.SaveSupplier(c.UserContext(), supplier); err != nil {
		return serviceError(err, "supplier")
	}
	return c.JSON(dto.NewSupplierResponse(*supplier))
}

func (h *CatalogHandler) DeleteSupplier(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.catalog.DeleteSupplier(c.UserContext(), id); err != nil {
		return serviceError(err, "supplier")
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *CatalogHandler) ListProducts(c *fiber.Ctx) error {
	list, err := h.catalog.ListProducts(c.UserContext())
	if err != nil {
		return serviceError(err, "product")
	}
	return c.JSON(dto.NewProductList(list))
}

func (h *CatalogHandler) GetProduct(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	product, err := h.catalog.GetProduct(c.UserContext(), id)
	if err != nil {
		return serviceError(err, "product")
	}
	return c.JSON(dto.NewProductResponse(*product))
}

func (h *CatalogHandler) ListOrders(c *fiber.Ctx) error {
	list, err := h.catalog.ListOrders(c.UserContext())
	if err != nil {
		return serviceError(err, "order")
	}
	return c.JSON(dto.NewOrderList(list))
}

func (h *CatalogHandler) GetOrder(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	order, err := h.catalog.GetOrder(c.UserContext(), id)
	if err != nil {
		return serviceError(err, "order")
	}
	return c.JSON(dto.NewOrderResponse(*order))
}
