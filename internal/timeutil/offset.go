package timeutil

import (
	"strconv"
	"strings"
	"time"
)

// O salão guarda apenas um deslocamento fixo em horas em relação ao UTC
// (ex: "-3"), não um fuso IANA. Horário de verão não é modelado — limitação
// conhecida, herdada do dado do tenant.

const DefaultOffsetHours = -3

// ParseOffsetHours interpreta o deslocamento configurado no salão.
// Valor ausente ou inválido cai no padrão -3.
func ParseOffsetHours(s string) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return DefaultOffsetHours
	}
	s = strings.TrimPrefix(s, "+")
	n, err := strconv.Atoi(s)
	if err != nil {
		return DefaultOffsetHours
	}
	return n
}

// ToUTC converte um horário local "ingênuo" (sem fuso) para o instante UTC
// correspondente: local - offset.
func ToUTC(local time.Time, offsetHours int) time.Time {
	return time.Date(
		local.Year(), local.Month(), local.Day(),
		local.Hour(), local.Minute(), local.Second(), local.Nanosecond(),
		time.UTC,
	).Add(-time.Duration(offsetHours) * time.Hour)
}

// ToLocal converte um instante UTC para o horário local ingênuo: utc + offset.
// O resultado é representado em time.UTC por ser apenas um valor de parede.
func ToLocal(utc time.Time, offsetHours int) time.Time {
	return utc.UTC().Add(time.Duration(offsetHours) * time.Hour)
}

// ParseTimeOfDay interpreta um horário "15:04".
func ParseTimeOfDay(hm string) (time.Time, error) {
	return time.Parse("15:04", hm)
}

// CombineDateTime monta o horário local ingênuo de uma data com um
// horário do dia já interpretado por ParseTimeOfDay.
func CombineDateTime(date time.Time, tod time.Time) time.Time {
	return time.Date(
		date.Year(), date.Month(), date.Day(),
		tod.Hour(), tod.Minute(), 0, 0,
		time.UTC,
	)
}
