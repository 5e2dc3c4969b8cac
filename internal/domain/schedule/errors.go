package schedule

import (
	"errors"

	"github.com/ericfrick132/beauty-salon-sub003/internal/models"
)

// ===============================
// Erros de domínio da agenda
// ===============================

// ValidationError: entrada malformada (intervalo invertido, horário ilegível).
type ValidationError struct {
	Code string
}

func (e ValidationError) Error() string {
	return e.Code
}

func ErrValidation(code string) error {
	return ValidationError{Code: code}
}

// ConflictError: sobreposição não resolvida. Carrega os registros em conflito
// para o chamador decidir se repete com force=true.
type ConflictError struct {
	Code     string
	Bookings []models.Booking
	Blocks   []models.TimeBlock
}

func (e ConflictError) Error() string {
	return e.Code
}

// NotFoundError: bloco ou série inexistente para o escopo pedido.
type NotFoundError struct {
	Entity string
}

func (e NotFoundError) Error() string {
	return e.Entity + "_not_found"
}

func IsValidation(err error) bool {
	var ve ValidationError
	return errors.As(err, &ve)
}

func IsConflict(err error) bool {
	var ce ConflictError
	return errors.As(err, &ce)
}

func IsNotFound(err error) bool {
	var ne NotFoundError
	return errors.As(err, &ne)
}

func AsConflict(err error) (ConflictError, bool) {
	var ce ConflictError
	ok := errors.As(err, &ce)
	return ce, ok
}
