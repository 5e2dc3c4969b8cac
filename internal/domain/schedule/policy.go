package schedule

import (
	"context"

	"github.com/ericfrick132/beauty-salon-sub003/internal/domain/booking"
	"github.com/ericfrick132/beauty-salon-sub003/internal/models"
)

// ResolveBookingConflicts aplica a política de conflito com agendamentos.
// Sem force: ConflictError com os agendamentos em conflito, nenhuma mutação.
// Com force: cada agendamento conflitante vira cancelado; devolve a contagem.
// O chamador deve estar dentro de uma transação — cancelamento forçado e a
// gravação do bloco compensador são uma unidade atômica.
//
// Conflito bloco-a-bloco nunca passa por aqui: é rejeição dura sempre.
func ResolveBookingConflicts(
	ctx context.Context,
	store BookingStore,
	conflicts []models.Booking,
	force bool,
) (int, error) {

	if len(conflicts) == 0 {
		return 0, nil
	}

	if !force {
		return 0, ConflictError{
			Code:     "booking_conflict",
			Bookings: conflicts,
		}
	}

	for i := range conflicts {
		err := store.SetStatus(ctx, conflicts[i].ID, string(booking.StatusCancelled))
		if err != nil {
			return 0, err
		}
	}

	return len(conflicts), nil
}
