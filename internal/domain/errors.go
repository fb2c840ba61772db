package domain

import (
	"errors"
	"fmt"
)

// Tipos de error de dominio. La capa HTTP traduce cada uno a su código de estado;
// los casos de uso nunca escriben respuestas.
var (
	ErrInvalidCredentials = errors.New("credenciales inválidas")
	ErrUnauthenticated    = errors.New("no autenticado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrInvalidInput       = errors.New("entrada inválida")
)

// Conflictos de registro; envuelven ErrConflict para que errors.Is(err, ErrConflict) siga funcionando.
var (
	ErrEmailAlreadyExists = fmt.Errorf("el email ya está registrado: %w", ErrConflict)
	ErrCPFAlreadyExists   = fmt.Errorf("el cpf ya está registrado: %w", ErrConflict)
)

// ErrInvalidCategory producto que referencia una categoría inexistente o dada de baja.
var ErrInvalidCategory = fmt.Errorf("categoría inválida: %w", ErrInvalidInput)
