package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/knockFahim/inventory-management-system-sub001/internal/application/dto"
	"github.com/knockFahim/inventory-management-system-sub001/internal/application/inventory"
	"github.com/knockFahim/inventory-management-system-sub001/internal/domain/entity"
)

// InventoryHandler maneja ajustes manuales de stock y el historial del ledger.
type InventoryHandler struct {
	stock    *inventory.StockService
	ledgerUC *inventory.LedgerUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(stock *inventory.StockService, ledgerUC *inventory.LedgerUseCase) *InventoryHandler {
	return &InventoryHandler{stock: stock, ledgerUC: ledgerUC}
}

// Adjust godoc
// @Summary      Ajuste manual de stock (ADJUSTMENT o RETURN)
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AdjustStockRequest  true  "Ajuste"
// @Success      200   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse  "stock insuficiente"
// @Router       /api/inventory/adjustments [post]
func (h *InventoryHandler) Adjust(c *fiber.Ctx) error {
	var in dto.AdjustStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	// SALE y PURCHASE solo nacen de ventas y compras, nunca de un ajuste manual
	if in.Type != entity.LedgerTypeAdjustment && in.Type != entity.LedgerTypeReturn {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "type debe ser ADJUSTMENT o RETURN"})
	}
	if in.ProductID == "" || in.Delta == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "product_id y delta distinto de cero son requeridos"})
	}
	product, err := h.stock.ApplyDelta(c.Context(), inventory.DeltaInput{
		ProductID: in.ProductID,
		Delta:     in.Delta,
		Type:      in.Type,
		Reference: in.Reference,
		Notes:     in.Notes,
		UserID:    GetUserID(c),
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ProductResponse{
		ID:          product.ID,
		SKU:         product.SKU,
		Name:        product.Name,
		Description: product.Description,
		Price:       product.Price,
		CostPrice:   product.CostPrice,
		Quantity:    product.Quantity,
		MinStock:    product.MinStock,
		LowStock:    product.IsLowStock(),
		CategoryID:  product.CategoryID,
		CreatedBy:   product.CreatedBy,
		CreatedAt:   product.CreatedAt,
		UpdatedAt:   product.UpdatedAt,
	})
}

// Ledger godoc
// @Summary      Historial de movimientos de un producto
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id      path   string  true   "ID del producto"
// @Param        from    query  string  false  "Fecha inicial (YYYY-MM-DD o RFC3339)"
// @Param        to      query  string  false  "Fecha final (YYYY-MM-DD o RFC3339)"
// @Param        limit   query  int  false  "Límite"   default(20)
// @Param        offset  query  int  false  "Offset"   default(0)
// @Success      200     {object}  dto.LedgerListResponse
// @Failure      404     {object}  dto.ErrorResponse
// @Router       /api/inventory/products/{id}/ledger [get]
func (h *InventoryHandler) Ledger(c *fiber.Ctx) error {
	page := dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
	page.DefaultPage()

	from, err := parseDateQuery(c.Query("from"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "from: fecha inválida"})
	}
	to, err := parseDateQuery(c.Query("to"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "to: fecha inválida"})
	}

	out, err := h.ledgerUC.ListByProduct(c.Context(), c.Params("id"), from, to, page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// parseDateQuery acepta YYYY-MM-DD o RFC3339; cadena vacía devuelve nil.
func parseDateQuery(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return &t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
