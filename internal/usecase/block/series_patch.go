package block

import (
	"context"
	"time"

	"github.com/ericfrick132/beauty-salon-sub003/internal/domain/schedule"
	"github.com/ericfrick132/beauty-salon-sub003/internal/models"
	"github.com/ericfrick132/beauty-salon-sub003/internal/timeutil"
)

// memberPatch descreve a mudança pedida para cada membro de uma série.
type memberPatch struct {
	Reason      *string
	StartTod    *time.Time // já interpretado por ParseTimeOfDay
	EndTod      *time.Time
	OffsetHours int
	Force       bool
}

// applyMemberPatch aplica a política por membro das atualizações de série:
// reason sobrescreve direto; horário novo é recalculado sobre a data local
// do membro e só entra se não esbarrar em outro bloco nem em agendamento não
// resolvido. Membro pulado não é erro — a atualização parcial é esperada.
// Persiste quando algo mudou e devolve (persistiu, agendamentos cancelados).
func applyMemberPatch(
	ctx context.Context,
	s schedule.Stores,
	tb *models.TimeBlock,
	p memberPatch,
) (bool, int, error) {

	changed := false
	cancelled := 0

	if p.Reason != nil && tb.Reason != *p.Reason {
		tb.Reason = *p.Reason
		changed = true
	}

	if p.StartTod != nil || p.EndTod != nil {

		// data local derivada do início atual do membro
		localStart := timeutil.ToLocal(tb.StartTime, p.OffsetHours)
		localEnd := timeutil.ToLocal(tb.EndTime, p.OffsetHours)

		newLocalStart := localStart
		if p.StartTod != nil {
			newLocalStart = timeutil.CombineDateTime(localStart, *p.StartTod)
		}
		newLocalEnd := timeutil.CombineDateTime(localStart, endTodOrCurrent(p, localEnd))

		// combinação inválida com o horário remanescente: mantém como está
		if newLocalEnd.After(newLocalStart) {

			utcStart := timeutil.ToUTC(newLocalStart, p.OffsetHours)
			utcEnd := timeutil.ToUTC(newLocalEnd, p.OffsetHours)

			ok, n, err := tryMoveMember(ctx, s, tb, utcStart, utcEnd, p.Force)
			if err != nil {
				return false, 0, err
			}
			if ok {
				cancelled += n
				if tb.SeriesID != nil {
					rec, _ := schedule.ParseRecurrence(tb.Recurrence)
					rec.StartTime = newLocalStart.Format("15:04")
					rec.EndTime = newLocalEnd.Format("15:04")
					tb.Recurrence = rec.Serialize()
				}
				changed = true
			}
		}
	}

	if !changed {
		return false, cancelled, nil
	}

	if err := s.Blocks.Update(ctx, tb); err != nil {
		return false, 0, err
	}
	return true, cancelled, nil
}

func endTodOrCurrent(p memberPatch, localEnd time.Time) time.Time {
	if p.EndTod != nil {
		return *p.EndTod
	}
	return localEnd
}

// tryMoveMember tenta mover o membro para [utcStart, utcEnd). Outro bloco no
// caminho ou agendamento sem force deixam o horário intocado (false). Com
// force, agendamentos conflitantes são cancelados e o movimento entra.
func tryMoveMember(
	ctx context.Context,
	s schedule.Stores,
	tb *models.TimeBlock,
	utcStart time.Time,
	utcEnd time.Time,
	force bool,
) (bool, int, error) {

	blocks, err := s.Blocks.FindOverlapping(ctx, tb.StaffID, utcStart, utcEnd, tb.ID)
	if err != nil {
		return false, 0, err
	}
	if len(blocks) > 0 {
		return false, 0, nil
	}

	conflicts, err := s.Bookings.FindOverlapping(ctx, tb.StaffID, utcStart, utcEnd, true)
	if err != nil {
		return false, 0, err
	}
	if len(conflicts) > 0 && !force {
		return false, 0, nil
	}

	cancelled, err := schedule.ResolveBookingConflicts(ctx, s.Bookings, conflicts, force)
	if err != nil {
		return false, 0, err
	}

	tb.StartTime = utcStart
	tb.EndTime = utcEnd
	return true, cancelled, nil
}
