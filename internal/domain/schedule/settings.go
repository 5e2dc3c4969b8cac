package schedule

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/ericfrick132/beauty-salon-sub003/internal/models"
	"github.com/ericfrick132/beauty-salon-sub003/internal/timeutil"
)

const defaultMinAdvanceMinutes = 120

// Settings é o recorte das configurações do salão que a agenda consome.
// Resolvido uma vez por chamada e passado explicitamente — nada de estado
// global de tenant.
type Settings struct {
	OffsetHours       int
	OpenTime          string // "15:04"
	CloseTime         string
	ClosedWeekdays    map[time.Weekday]bool
	MinAdvanceMinutes int
}

type SettingsProvider interface {
	ScheduleSettings(ctx context.Context, salonID uint) (*Settings, error)
}

// SettingsFromSalon resolve as configurações de agenda a partir do registro
// do salão, aplicando os defaults do domínio.
func SettingsFromSalon(s *models.Salon) *Settings {
	minAdvance := s.MinAdvanceMinutes
	if minAdvance <= 0 {
		minAdvance = defaultMinAdvanceMinutes
	}

	open := s.OpenTime
	if open == "" {
		open = "09:00"
	}
	close := s.CloseTime
	if close == "" {
		close = "18:00"
	}

	return &Settings{
		OffsetHours:       timeutil.ParseOffsetHours(s.UTCOffset),
		OpenTime:          open,
		CloseTime:         close,
		ClosedWeekdays:    parseClosedWeekdays(s.ClosedWeekdays),
		MinAdvanceMinutes: minAdvance,
	}
}

func parseClosedWeekdays(csv string) map[time.Weekday]bool {
	out := make(map[time.Weekday]bool)
	for _, part := range strings.Split(csv, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil || n < 0 || n > 6 {
			continue
		}
		out[time.Weekday(n)] = true
	}
	return out
}

// WithinBusinessHours valida um intervalo local contra expediente e dias
// fechados.
func (st *Settings) WithinBusinessHours(localStart, localEnd time.Time) bool {
	if st.ClosedWeekdays[localStart.Weekday()] {
		return false
	}

	openT, err := timeutil.ParseTimeOfDay(st.OpenTime)
	if err != nil {
		return false
	}
	closeT, err := timeutil.ParseTimeOfDay(st.CloseTime)
	if err != nil {
		return false
	}

	dayOpen := timeutil.CombineDateTime(localStart, openT)
	dayClose := timeutil.CombineDateTime(localStart, closeT)

	return !localStart.Before(dayOpen) && !localEnd.After(dayClose)
}
