package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/ericfrick132/beauty-salon-sub003/internal/domain/schedule"
	"github.com/ericfrick132/beauty-salon-sub003/internal/models"
)

// SettingsGormProvider resolve as configurações de agenda do salão.
type SettingsGormProvider struct {
	db *gorm.DB
}

func NewSettingsGormProvider(db *gorm.DB) *SettingsGormProvider {
	return &SettingsGormProvider{db: db}
}

func (p *SettingsGormProvider) ScheduleSettings(
	ctx context.Context,
	salonID uint,
) (*schedule.Settings, error) {

	var salon models.Salon
	if err := p.db.WithContext(ctx).First(&salon, salonID).Error; err != nil {
		return nil, err
	}

	return schedule.SettingsFromSalon(&salon), nil
}

// Compile-time check
var _ schedule.SettingsProvider = (*SettingsGormProvider)(nil)
