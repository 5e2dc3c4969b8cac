package models

import "time"

// TimeBlock marca um período em que o profissional está indisponível.
// Blocos recorrentes compartilham o mesmo SeriesID.
type TimeBlock struct {
	ID uint `gorm:"primaryKey" json:"id"`

	SalonID uint `json:"salon_id"`
	StaffID uint `gorm:"index" json:"staff_id"`

	// Instantes em UTC, intervalo semiaberto [start, end)
	StartTime time.Time `gorm:"index" json:"start_time"`
	EndTime   time.Time `json:"end_time"`

	Reason string `gorm:"size:255" json:"reason"`

	// Presente apenas em membros de série recorrente
	SeriesID *string `gorm:"size:36;index" json:"series_id,omitempty"`

	// Descritor de recorrência serializado (JSON), apenas em membros de série
	Recurrence string `gorm:"size:255" json:"recurrence,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
