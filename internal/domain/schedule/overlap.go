package schedule

import (
	"time"

	"github.com/ericfrick132/beauty-salon-sub003/internal/domain/booking"
	"github.com/ericfrick132/beauty-salon-sub003/internal/models"
)

// IntervalsOverlap testa sobreposição de intervalos semiabertos [start, end).
// Extremidades encostadas (fim de um == início do outro) não contam.
func IntervalsOverlap(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && aEnd.After(bStart)
}

// FilterObstructingBookings devolve os agendamentos do snapshot que ainda
// ocupam a agenda e sobrepõem [start, end). Cancelados nunca obstruem.
func FilterObstructingBookings(
	bookings []models.Booking,
	start time.Time,
	end time.Time,
) []models.Booking {

	var out []models.Booking
	for _, b := range bookings {
		if !booking.Obstructs(booking.Status(b.Status)) {
			continue
		}
		if IntervalsOverlap(start, end, b.StartTime, b.EndTime) {
			out = append(out, b)
		}
	}
	return out
}

// FilterOverlappingBlocks devolve os blocos do snapshot que sobrepõem
// [start, end), ignorando excludeBlockID quando diferente de zero.
func FilterOverlappingBlocks(
	blocks []models.TimeBlock,
	start time.Time,
	end time.Time,
	excludeBlockID uint,
) []models.TimeBlock {

	var out []models.TimeBlock
	for _, tb := range blocks {
		if excludeBlockID != 0 && tb.ID == excludeBlockID {
			continue
		}
		if IntervalsOverlap(start, end, tb.StartTime, tb.EndTime) {
			out = append(out, tb)
		}
	}
	return out
}
