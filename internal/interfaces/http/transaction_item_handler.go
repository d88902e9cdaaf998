package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pos-api/internal/application/dto"
	"github.com/jhoicas/pos-api/internal/application/sales"
	"github.com/jhoicas/pos-api/internal/domain"
)

// TransactionItemHandler maneja las líneas de venta. Toda mutación ajusta stock y total en la misma tx.
type TransactionItemHandler struct {
	uc      *sales.ItemUseCase
	metrics *Metrics
}

// NewTransactionItemHandler construye el handler.
func NewTransactionItemHandler(uc *sales.ItemUseCase, metrics *Metrics) *TransactionItemHandler {
	return &TransactionItemHandler{uc: uc, metrics: metrics}
}

// Create godoc
// @Summary      Agregar ítem a una transacción
// @Tags         transaction-items
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.TransactionItemRequest  true  "id_transactions, id_products, quantity, unit_price"
// @Success      201   {object}  dto.TransactionItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/transaction-items [post]
func (h *TransactionItemHandler) Create(c *fiber.Ctx) error {
	var in dto.TransactionItemRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.CreateItem(c.UserContext(), in)
	if err != nil {
		return h.fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListByTransaction godoc
// @Summary      Listar ítems de una transacción
// @Tags         transaction-items
// @Security     Bearer
// @Produce      json
// @Param        transaction_id  path  string  true  "ID de la transacción"
// @Success      200  {array}   dto.TransactionItemResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/transaction-items/{transaction_id} [get]
func (h *TransactionItemHandler) ListByTransaction(c *fiber.Ctx) error {
	out, err := h.uc.ListItems(c.UserContext(), c.Params("transaction_id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener ítem
// @Tags         transaction-items
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del ítem"
// @Success      200  {object}  dto.TransactionItemResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/transaction-items/item/{id} [get]
func (h *TransactionItemHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetItem(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Reemplazar ítem
// @Description  Libera la cantidad anterior y reserva la nueva; recalcula los totales afectados.
// @Tags         transaction-items
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del ítem"
// @Param        body  body  dto.TransactionItemRequest  true  "id_transactions, id_products, quantity, unit_price"
// @Success      200   {object}  dto.TransactionItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/transaction-items/item/{id} [put]
func (h *TransactionItemHandler) Update(c *fiber.Ctx) error {
	var in dto.TransactionItemRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.UpdateItem(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar ítem
// @Description  Devuelve el stock y recalcula el total de la transacción.
// @Tags         transaction-items
// @Security     Bearer
// @Param        id   path  string  true  "ID del ítem"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/transaction-items/item/{id} [delete]
func (h *TransactionItemHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.DeleteItem(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *TransactionItemHandler) fail(c *fiber.Ctx, err error) error {
	if errors.Is(err, domain.ErrInsufficientStock) {
		h.metrics.RecordStockRejection()
	}
	return respondError(c, err)
}
