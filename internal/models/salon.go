package models

import "time"

type Salon struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	Name    string `gorm:"size:100;not null" json:"name"`
	Slug    string `gorm:"size:100;uniqueIndex;not null" json:"slug"`
	Phone   string `gorm:"size:20" json:"phone"`
	Address string `gorm:"size:255" json:"address"`
	LogoURL string `gorm:"size:255" json:"logo_url"`

	// Deslocamento fixo em horas em relação ao UTC, ex: "-3".
	// Não há suporte a horário de verão (limitação conhecida).
	UTCOffset string `gorm:"size:6;default:'-3'" json:"utc_offset"`

	OpenTime  string `gorm:"size:5;default:'09:00'" json:"open_time"`
	CloseTime string `gorm:"size:5;default:'18:00'" json:"close_time"`

	// Dias da semana fechados, CSV de 0..6 (0 = domingo), ex: "0"
	ClosedWeekdays string `gorm:"size:20" json:"closed_weekdays"`

	MinAdvanceMinutes int `gorm:"default:120" json:"min_advance_minutes"`

	RequiresDeposit bool    `gorm:"default:false" json:"requires_deposit"`
	DepositAmount   float64 `json:"deposit_amount"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
