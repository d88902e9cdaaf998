package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/jhoicas/pos-api/internal/application/dto"
	"github.com/jhoicas/pos-api/internal/domain"
	domainsales "github.com/jhoicas/pos-api/internal/domain/sales"
)

type errorMapping struct {
	target  error
	status  int
	code    string
	message string
}

// errorTable se evalúa en orden con errors.Is; el primer match gana.
var errorTable = []errorMapping{
	{domain.ErrInvalidInput, fiber.StatusBadRequest, "VALIDATION", ""},
	{domain.ErrInsufficientStock, fiber.StatusBadRequest, "INSUFFICIENT_STOCK", "stock insuficiente"},
	{domain.ErrCategoryNotFound, fiber.StatusBadRequest, "CATEGORY_NOT_FOUND", "la categoría no existe"},
	{domain.ErrInvalidCredentials, fiber.StatusUnauthorized, "INVALID_CREDENTIALS", "email o password incorrectos"},
	{domain.ErrUnauthorized, fiber.StatusUnauthorized, "UNAUTHORIZED", "no autorizado"},
	{domain.ErrAccountInactive, fiber.StatusForbidden, "ACCOUNT_INACTIVE", "cuenta inactiva"},
	{domain.ErrForbidden, fiber.StatusForbidden, "FORBIDDEN", "acceso denegado"},
	{domain.ErrUserNotFound, fiber.StatusNotFound, "USER_NOT_FOUND", "usuario no encontrado"},
	{domain.ErrProductNotFound, fiber.StatusNotFound, "PRODUCT_NOT_FOUND", "producto no encontrado"},
	{domain.ErrTransactionNotFound, fiber.StatusNotFound, "TRANSACTION_NOT_FOUND", "transacción no encontrada"},
	{domain.ErrItemNotFound, fiber.StatusNotFound, "ITEM_NOT_FOUND", "ítem de transacción no encontrado"},
	{domain.ErrNotFound, fiber.StatusNotFound, "NOT_FOUND", "recurso no encontrado"},
	{domain.ErrEmailAlreadyExists, fiber.StatusConflict, "EMAIL_EXISTS", "el email ya está registrado"},
	{domain.ErrPhoneAlreadyExists, fiber.StatusConflict, "PHONE_EXISTS", "el teléfono ya está registrado"},
	{domain.ErrTransactionClosed, fiber.StatusConflict, "TRANSACTION_CLOSED", "la transacción no admite cambios"},
	{domain.ErrConflict, fiber.StatusConflict, "CONFLICT", ""},
}

// respondError traduce errores de dominio a HTTP. Lo no mapeado es 500: el detalle va al log, no al cliente.
func respondError(c *fiber.Ctx, err error) error {
	for _, m := range errorTable {
		if errors.Is(err, m.target) {
			msg := m.message
			if msg == "" {
				msg = err.Error()
			}
			return c.Status(m.status).JSON(dto.ErrorResponse{Code: m.code, Message: msg})
		}
	}
	if errors.Is(err, domainsales.ErrTotalMismatch) {
		log.Error().Err(err).Str("path", c.Path()).Msg("total de transacción inconsistente")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTEGRITY", Message: "total inconsistente"})
	}
	log.Error().
		Err(err).
		Str("method", c.Method()).
		Str("path", c.Path()).
		Interface("request_id", c.Locals("requestid")).
		Msg("error interno")
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno del servidor"})
}

func badRequest(c *fiber.Ctx, code, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: code, Message: msg})
}

func invalidBody(c *fiber.Ctx) error {
	return badRequest(c, "INVALID_BODY", "cuerpo inválido")
}

// ErrorHandler manejador global de Fiber para errores que escapan de los handlers (404 de ruta, panics recuperados).
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return c.Status(fe.Code).JSON(dto.ErrorResponse{Code: "HTTP_ERROR", Message: fe.Message})
	}
	return respondError(c, err)
}
