package booking

import "github.com/ericfrick132/beauty-salon-sub003/internal/httperr"

// ===============================
// Booking Status
// ===============================

type Status string

const (
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
	StatusCompleted Status = "completed"
)

// ===============================
// Validations
// ===============================

// CanCancel define se um agendamento pode ser cancelado
func CanCancel(current Status) error {
	if current != StatusConfirmed {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

// CanComplete define se um agendamento pode ser concluído
func CanComplete(current Status) error {
	if current != StatusConfirmed {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

// InitialStatus valida status inicial
func InitialStatus() Status {
	return StatusConfirmed
}

// Obstructs diz se um agendamento neste status ainda ocupa a agenda.
// Apenas cancelados deixam de ocupar.
func Obstructs(current Status) bool {
	return current != StatusCancelled
}
