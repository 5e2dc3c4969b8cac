package schedule

import (
	"time"

	"github.com/ericfrick132/beauty-salon-sub003/internal/models"
	"github.com/ericfrick132/beauty-salon-sub003/internal/timeutil"
)

// Slot é um início de atendimento candidato no dia consultado, em horário
// local de parede. Available=false marca horário dentro da janela de
// antecedência mínima — devolvido para o chamador renderizar, mas não
// reservável. Horários já ocupados nem aparecem.
type Slot struct {
	Start     string `json:"start"`
	End       string `json:"end"`
	Available bool   `json:"available"`
}

// SlotQuery é o snapshot de entrada do cálculo. Bookings pode conter
// cancelados; eles são ignorados. Blocks deve ser o conjunto do profissional
// que toca o dia.
type SlotQuery struct {
	Date        time.Time // componente de data, calendário local do salão
	DurationMin int
	Settings    *Settings
	Bookings    []models.Booking
	Blocks      []models.TimeBlock
	NowUTC      time.Time
}

// ComputeAvailableSlots enumera os inícios candidatos do dia, do horário de
// abertura até fechamento-duração, em passos do tamanho do serviço. Saída em
// ordem cronológica, materializada (um dia tem número limitado de slots).
func ComputeAvailableSlots(q SlotQuery) []Slot {
	slots := []Slot{}

	st := q.Settings
	if st == nil || q.DurationMin <= 0 {
		return slots
	}

	if st.ClosedWeekdays[q.Date.Weekday()] {
		return slots
	}

	openT, err := timeutil.ParseTimeOfDay(st.OpenTime)
	if err != nil {
		return slots
	}
	closeT, err := timeutil.ParseTimeOfDay(st.CloseTime)
	if err != nil {
		return slots
	}

	dayOpen := timeutil.CombineDateTime(q.Date, openT)
	dayClose := timeutil.CombineDateTime(q.Date, closeT)

	duration := time.Duration(q.DurationMin) * time.Minute

	// limite local de antecedência: agora + antecedência mínima
	localNow := timeutil.ToLocal(q.NowUTC, st.OffsetHours)
	minAllowed := localNow.Add(time.Duration(st.MinAdvanceMinutes) * time.Minute)

	for cur := dayOpen; !cur.Add(duration).After(dayClose); cur = cur.Add(duration) {

		localStart := cur
		localEnd := cur.Add(duration)

		utcStart := timeutil.ToUTC(localStart, st.OffsetHours)
		utcEnd := timeutil.ToUTC(localEnd, st.OffsetHours)

		// ocupado por agendamento vivo ou bloco → slot omitido
		if len(FilterObstructingBookings(q.Bookings, utcStart, utcEnd)) > 0 {
			continue
		}
		if len(FilterOverlappingBlocks(q.Blocks, utcStart, utcEnd, 0)) > 0 {
			continue
		}

		slots = append(slots, Slot{
			Start:     localStart.Format("15:04"),
			End:       localEnd.Format("15:04"),
			Available: !localStart.Before(minAllowed),
		})
	}

	return slots
}
