package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/ericfrick132/beauty-salon-sub003/internal/domain/schedule"
	"github.com/ericfrick132/beauty-salon-sub003/internal/models"
)

type TimeBlockGormRepository struct {
	db *gorm.DB
}

func NewTimeBlockGormRepository(db *gorm.DB) *TimeBlockGormRepository {
	return &TimeBlockGormRepository{db: db}
}

func (r *TimeBlockGormRepository) FindOverlapping(
	ctx context.Context,
	staffID uint,
	start time.Time,
	end time.Time,
	excludeBlockID uint,
) ([]models.TimeBlock, error) {

	q := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where(
			"staff_id = ? AND start_time < ? AND end_time > ?",
			staffID, end, start,
		)

	if excludeBlockID != 0 {
		q = q.Where("id <> ?", excludeBlockID)
	}

	var blocks []models.TimeBlock
	if err := q.Order("start_time ASC").Find(&blocks).Error; err != nil {
		return nil, err
	}

	return blocks, nil
}

func (r *TimeBlockGormRepository) GetByID(
	ctx context.Context,
	salonID uint,
	blockID uint,
) (*models.TimeBlock, error) {

	var tb models.TimeBlock
	err := r.db.WithContext(ctx).
		Where("id = ? AND salon_id = ?", blockID, salonID).
		First(&tb).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, schedule.NotFoundError{Entity: "time_block"}
	}
	if err != nil {
		return nil, err
	}

	return &tb, nil
}

func (r *TimeBlockGormRepository) Insert(
	ctx context.Context,
	tb *models.TimeBlock,
) error {
	return r.db.WithContext(ctx).Create(tb).Error
}

func (r *TimeBlockGormRepository) Update(
	ctx context.Context,
	tb *models.TimeBlock,
) error {
	return r.db.WithContext(ctx).Save(tb).Error
}

func (r *TimeBlockGormRepository) Delete(
	ctx context.Context,
	blockID uint,
) error {
	return r.db.WithContext(ctx).Delete(&models.TimeBlock{}, blockID).Error
}

func (r *TimeBlockGormRepository) ListBySeries(
	ctx context.Context,
	salonID uint,
	seriesID string,
) ([]models.TimeBlock, error) {

	var blocks []models.TimeBlock
	err := r.db.WithContext(ctx).
		Where("salon_id = ? AND series_id = ?", salonID, seriesID).
		Order("start_time ASC").
		Find(&blocks).Error

	if err != nil {
		return nil, err
	}

	return blocks, nil
}

func (r *TimeBlockGormRepository) DeleteBySeries(
	ctx context.Context,
	salonID uint,
	seriesID string,
) (int64, error) {

	res := r.db.WithContext(ctx).
		Where("salon_id = ? AND series_id = ?", salonID, seriesID).
		Delete(&models.TimeBlock{})

	return res.RowsAffected, res.Error
}

// --------------------------------------------------
// Listagem para o cálculo de horários
// --------------------------------------------------

func (r *TimeBlockGormRepository) ListBlocksForPeriod(
	ctx context.Context,
	staffID uint,
	start time.Time,
	end time.Time,
) ([]models.TimeBlock, error) {

	var blocks []models.TimeBlock
	err := r.db.WithContext(ctx).
		Where(
			"staff_id = ? AND start_time < ? AND end_time > ?",
			staffID, end, start,
		).
		Order("start_time ASC").
		Find(&blocks).Error

	if err != nil {
		return nil, err
	}

	return blocks, nil
}

// Compile-time check
var _ schedule.BlockStore = (*TimeBlockGormRepository)(nil)
