package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/crisvega-dev/imprenta-stock/internal/application/dto"
	"github.com/crisvega-dev/imprenta-stock/internal/application/ledger"
)

// StockHandler consultas de disponibilidad sobre la distribución confirmada
// (protegido). Los drafts nunca afectan estos números.
type StockHandler struct {
	availability *ledger.Availability
}

// NewStockHandler construye el handler.
func NewStockHandler(availability *ledger.Availability) *StockHandler {
	return &StockHandler{availability: availability}
}

// Quantity godoc
// @Summary      Cantidad de un lote en una ubicación
// @Description  Responde 0 si el par (lote, ubicación) no registra stock.
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        lot_id       query  string  true  "ID del lote"
// @Param        location_id  query  string  true  "ID de la ubicación"
// @Success      200          {object}  dto.QuantityResponse
// @Failure      400          {object}  dto.ErrorResponse
// @Router       /api/stock/quantity [get]
func (h *StockHandler) Quantity(c *fiber.Ctx) error {
	lotID := c.Query("lot_id")
	locationID := c.Query("location_id")
	if lotID == "" || locationID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "lot_id y location_id son requeridos"})
	}
	qty, err := h.availability.QuantityAt(lotID, locationID)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(dto.QuantityResponse{LotID: lotID, LocationID: locationID, Quantity: qty})
}

// AvailableLots godoc
// @Summary      Lotes de un artículo con stock en una ubicación
// @Description  Alimenta los pickers de lote: solo lotes con cantidad > 0.
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        item_id      query  string  true  "ID del artículo"
// @Param        location_id  query  string  true  "ID de la ubicación"
// @Success      200          {array}   entity.Lot
// @Failure      400          {object}  dto.ErrorResponse
// @Router       /api/stock/lots [get]
func (h *StockHandler) AvailableLots(c *fiber.Ctx) error {
	itemID := c.Query("item_id")
	locationID := c.Query("location_id")
	if itemID == "" || locationID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "item_id y location_id son requeridos"})
	}
	lots, err := h.availability.LotsFor(itemID, locationID)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(lots)
}

// ItemTotal godoc
// @Summary      Total de un artículo en todas las ubicaciones
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del artículo"
// @Success      200  {object}  dto.ItemTotalResponse
// @Router       /api/stock/items/{id}/total [get]
func (h *StockHandler) ItemTotal(c *fiber.Ctx) error {
	itemID := c.Params("id")
	total, err := h.availability.TotalForItem(itemID)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(dto.ItemTotalResponse{ItemID: itemID, Total: total})
}

// Reorder godoc
// @Summary      Reporte de reposición
// @Description  Filas de stock en o bajo su umbral. location_id opcional para
//               restringir a una ubicación.
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        location_id  query  string  false  "ID de la ubicación"
// @Success      200          {array}  dto.ReorderRow
// @Router       /api/stock/reorder [get]
func (h *StockHandler) Reorder(c *fiber.Ctx) error {
	rows, err := h.availability.ReorderList(c.Query("location_id"))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(rows)
}

// SetMinimum godoc
// @Summary      Fijar umbral de reposición
// @Description  Umbral informativo de un par (lote, ubicación); no escribe stock.
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Param        body  body  dto.SetMinimumRequest  true  "Umbral"
// @Success      204
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/stock/minimum [put]
func (h *StockHandler) SetMinimum(c *fiber.Ctx) error {
	var in dto.SetMinimumRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.LotID == "" || in.LocationID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "lot_id y location_id son requeridos"})
	}
	if in.MinimumQuantity.IsNegative() {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "minimum_quantity debe ser >= 0"})
	}
	if err := h.availability.SetMinimum(in.LotID, in.LocationID, in.MinimumQuantity); err != nil {
		return domainError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
