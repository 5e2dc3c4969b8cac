package schedule

import (
	"encoding/json"
	"time"
)

// Recurrence é o descritor gravado em cada membro de uma série recorrente.
// Dias usam a convenção time.Weekday (0 = domingo .. 6 = sábado).
type Recurrence struct {
	DaysOfWeek []int  `json:"days_of_week"`
	StartTime  string `json:"start_time"` // "15:04"
	EndTime    string `json:"end_time"`
}

// Matches diz se a regra gera ocorrência na data dada.
// Conjunto vazio significa "todos os dias".
func (r Recurrence) Matches(date time.Time) bool {
	if len(r.DaysOfWeek) == 0 {
		return true
	}
	wd := int(date.Weekday())
	for _, d := range r.DaysOfWeek {
		if d == wd {
			return true
		}
	}
	return false
}

// Serialize devolve o descritor em JSON para gravação no bloco.
func (r Recurrence) Serialize() string {
	b, err := json.Marshal(r)
	if err != nil {
		return ""
	}
	return string(b)
}

func ParseRecurrence(s string) (Recurrence, error) {
	var r Recurrence
	if s == "" {
		return r, nil
	}
	err := json.Unmarshal([]byte(s), &r)
	return r, err
}
