package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrUserNotFound      = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrUnauthorized      = errors.New("no autorizado")
	ErrForbidden         = errors.New("acceso denegado")
	ErrConflict          = errors.New("conflicto con el estado actual")

	// ErrAlreadyFulfilled el pedido ya fue despachado; la re-ejecución no descuenta de nuevo.
	ErrAlreadyFulfilled = errors.New("el pedido ya fue despachado")

	// ErrAmbiguousVariant el producto tiene más de una variante y no se indicó cuál producir.
	ErrAmbiguousVariant = errors.New("producto con múltiples variantes: se requiere indicar la variante")

	// ErrComponentNotFound una entrada del BOM referencia una variante componente que no existe.
	// Es una violación de integridad de datos, fatal para la operación completa.
	ErrComponentNotFound = errors.New("componente del BOM no encontrado")
)
