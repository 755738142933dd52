package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound              = errors.New("recurso no encontrado")
	ErrUserNotFound          = errors.New("usuario no encontrado")
	ErrInvalidInput          = errors.New("entrada inválida")
	ErrDuplicate             = errors.New("recurso duplicado")
	ErrUnauthorized          = errors.New("no autorizado")
	ErrForbidden             = errors.New("acceso denegado")
	ErrConflict              = errors.New("conflicto con el estado actual")
	ErrEmailAlreadyExists    = errors.New("el email ya está registrado")
	ErrUsernameAlreadyExists = errors.New("el nombre de usuario ya está registrado")
	ErrInvoicePaid           = errors.New("una factura pagada no se puede modificar ni eliminar")
	ErrClientInactive        = errors.New("el cliente no está activo")
	ErrProjectInactive       = errors.New("el proyecto no está activo")
	ErrClientNoEmail         = errors.New("el cliente no tiene email registrado")
	ErrProjectLocked         = errors.New("el estado activo del proyecto se deriva de su status actual")
)
