package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/crisvega-dev/imprenta-stock/internal/application/dto"
	"github.com/crisvega-dev/imprenta-stock/internal/application/ledger"
	"github.com/crisvega-dev/imprenta-stock/internal/domain/entity"
	"github.com/crisvega-dev/imprenta-stock/internal/domain/repository"
)

// TransactionHandler maneja las peticiones HTTP del motor de transacciones
// (protegido). created_by y validated_by pueden venir en el cuerpo; si van
// vacíos se toman del token.
type TransactionHandler struct {
	engine *ledger.Engine
}

// NewTransactionHandler construye el handler.
func NewTransactionHandler(engine *ledger.Engine) *TransactionHandler {
	return &TransactionHandler{engine: engine}
}

// Create godoc
// @Summary      Proponer movimiento de stock
// @Description  Crea la transacción en draft. El stock no se toca hasta el
//               validate; la verificación de suficiencia aquí es informativa.
// @Tags         transactions
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateTransactionRequest  true  "Movimiento propuesto"
// @Success      201   {object}  dto.TransactionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/transactions [post]
func (h *TransactionHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateTransactionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	createdBy := in.CreatedBy
	if createdBy == "" {
		createdBy = GetUserID(c)
	}
	trx, err := h.engine.Create(c.Context(), ledger.CreateInput{
		Type:         in.Type,
		ItemID:       in.ItemID,
		Quantity:     in.Quantity,
		CreatedBy:    createdBy,
		FromLocation: in.FromLocation,
		ToLocation:   in.ToLocation,
		LotID:        in.LotID,
		SupplierID:   in.SupplierID,
		Notes:        in.Notes,
	})
	if err != nil {
		return domainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toTransactionResponse(trx))
}

// GetByID godoc
// @Summary      Obtener transacción por ID
// @Tags         transactions
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la transacción"
// @Success      200  {object}  dto.TransactionResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/transactions/{id} [get]
func (h *TransactionHandler) GetByID(c *fiber.Ctx) error {
	trx, err := h.engine.GetByID(c.Params("id"))
	if err != nil {
		return domainError(c, err)
	}
	if trx == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "transacción no encontrada"})
	}
	return c.JSON(toTransactionResponse(trx))
}

// Update godoc
// @Summary      Editar transacción en draft
// @Description  Solo drafts son editables; validated y cancelled responden
//               409 IMMUTABLE.
// @Tags         transactions
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                        true  "ID de la transacción"
// @Param        body  body  dto.UpdateTransactionRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.TransactionResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/transactions/{id} [put]
func (h *TransactionHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateTransactionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	trx, err := h.engine.Update(c.Context(), c.Params("id"), ledger.UpdateInput{
		Quantity:     in.Quantity,
		FromLocation: in.FromLocation,
		ToLocation:   in.ToLocation,
		LotID:        in.LotID,
		SupplierID:   in.SupplierID,
		Notes:        in.Notes,
	})
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(toTransactionResponse(trx))
}

// Validate godoc
// @Summary      Validar transacción
// @Description  Transición draft -> validated: re-verifica suficiencia con
//               bloqueo de fila y aplica los deltas de forma atómica. Si falla,
//               el draft queda intacto.
// @Tags         transactions
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                          true   "ID de la transacción"
// @Param        body  body  dto.ValidateTransactionRequest  false  "validated_by opcional"
// @Success      200   {object}  dto.TransactionResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/transactions/{id}/validate [patch]
func (h *TransactionHandler) Validate(c *fiber.Ctx) error {
	var in dto.ValidateTransactionRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
		}
	}
	validatedBy := in.ValidatedBy
	if validatedBy == "" {
		validatedBy = GetUserID(c)
	}
	trx, err := h.engine.Validate(c.Context(), c.Params("id"), validatedBy)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(toTransactionResponse(trx))
}

// Cancel godoc
// @Summary      Cancelar transacción
// @Description  Transición draft -> cancelled, sin efecto sobre stock.
// @Tags         transactions
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la transacción"
// @Success      200  {object}  dto.TransactionResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/transactions/{id}/cancel [patch]
func (h *TransactionHandler) Cancel(c *fiber.Ctx) error {
	trx, err := h.engine.Cancel(c.Context(), c.Params("id"))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(toTransactionResponse(trx))
}

// List godoc
// @Summary      Listar transacciones
// @Tags         transactions
// @Security     Bearer
// @Produce      json
// @Param        status   query  string  false  "Filtrar por estado (draft, validated, cancelled)"
// @Param        type     query  string  false  "Filtrar por tipo (IN, OUT, TRANSFER, ADJUSTMENT)"
// @Param        item_id  query  string  false  "Filtrar por artículo"
// @Param        lot_id   query  string  false  "Filtrar por lote"
// @Param        limit    query  int     false  "Límite"   default(20)
// @Param        offset   query  int     false  "Offset"   default(0)
// @Success      200      {object}  dto.TransactionListResponse
// @Router       /api/transactions [get]
func (h *TransactionHandler) List(c *fiber.Ctx) error {
	page := dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
	page.DefaultPage()
	filter := repository.TransactionFilter{
		Status: c.Query("status"),
		Type:   c.Query("type"),
		ItemID: c.Query("item_id"),
		LotID:  c.Query("lot_id"),
	}
	list, err := h.engine.List(filter, page.Limit, page.Offset)
	if err != nil {
		return domainError(c, err)
	}
	items := make([]dto.TransactionResponse, 0, len(list))
	for _, trx := range list {
		items = append(items, toTransactionResponse(trx))
	}
	return c.JSON(dto.TransactionListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	})
}

// Delete godoc
// @Summary      Eliminar transacción en draft
// @Description  validated y cancelled son asientos permanentes del ledger;
//               borrarlos responde 409 IMMUTABLE.
// @Tags         transactions
// @Security     Bearer
// @Param        id   path  string  true  "ID de la transacción"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/transactions/{id} [delete]
func (h *TransactionHandler) Delete(c *fiber.Ctx) error {
	if err := h.engine.Delete(c.Context(), c.Params("id")); err != nil {
		return domainError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func toTransactionResponse(trx *entity.Transaction) dto.TransactionResponse {
	return dto.TransactionResponse{
		ID:           trx.ID,
		ItemID:       trx.ItemID,
		LotID:        trx.LotID,
		FromLocation: trx.FromLocation,
		ToLocation:   trx.ToLocation,
		Quantity:     trx.Quantity,
		Type:         trx.Type,
		Status:       trx.Status,
		SupplierID:   trx.SupplierID,
		Notes:        trx.Notes,
		CreatedBy:    trx.CreatedBy,
		ValidatedBy:  trx.ValidatedBy,
		CreatedAt:    trx.CreatedAt,
		ValidatedAt:  trx.ValidatedAt,
	}
}
