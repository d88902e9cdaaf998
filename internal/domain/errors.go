package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound            = errors.New("recurso no encontrado")
	ErrUserNotFound        = errors.New("usuario no encontrado")
	ErrProductNotFound     = errors.New("producto no encontrado")
	ErrTransactionNotFound = errors.New("transacción no encontrada")
	ErrItemNotFound        = errors.New("ítem de transacción no encontrado")
	ErrCategoryNotFound    = errors.New("la categoría no existe")
	ErrEmailAlreadyExists  = errors.New("el email ya está registrado")
	ErrPhoneAlreadyExists  = errors.New("el teléfono ya está registrado")
	ErrInvalidInput        = errors.New("entrada inválida")
	ErrInvalidCredentials  = errors.New("email o password incorrectos")
	ErrAccountInactive     = errors.New("cuenta inactiva")
	ErrUnauthorized        = errors.New("no autorizado")
	ErrForbidden           = errors.New("acceso denegado")
	ErrConflict            = errors.New("conflicto con el estado actual")
	ErrInsufficientStock   = errors.New("stock insuficiente")
	ErrTransactionClosed   = errors.New("la transacción no admite cambios")
)
