package domain

import "errors"

// Errores genéricos; los handlers los traducen a códigos HTTP con errors.Is.
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrDuplicate    = errors.New("recurso duplicado")
	ErrConflict     = errors.New("conflicto con el estado actual")
	ErrForbidden    = errors.New("acceso denegado")
)

// Login.
var (
	ErrUserNotFound = errors.New("usuario no encontrado")
	ErrUnauthorized = errors.New("no autorizado")
)

// Costos en destino.
var (
	ErrDivisionByZero     = errors.New("costo anterior total en cero para los productos del gasto individual")
	ErrLandedCostDone     = errors.New("el costo en destino ya fue validado")
	ErrNoValuationLines   = errors.New("el costo en destino no tiene líneas de valoración")
	ErrInvariantViolation = errors.New("los ajustes de valoración no cuadran con el total del costo")
)
