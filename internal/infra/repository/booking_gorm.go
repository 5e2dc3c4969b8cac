package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/ericfrick132/beauty-salon-sub003/internal/domain/booking"
	"github.com/ericfrick132/beauty-salon-sub003/internal/domain/schedule"
	"github.com/ericfrick132/beauty-salon-sub003/internal/httperr"
	"github.com/ericfrick132/beauty-salon-sub003/internal/models"
)

type BookingGormRepository struct {
	db *gorm.DB
}

func NewBookingGormRepository(db *gorm.DB) *BookingGormRepository {
	return &BookingGormRepository{db: db}
}

// --------------------------------------------------
// Salon
// --------------------------------------------------

func (r *BookingGormRepository) GetSalonByID(
	ctx context.Context,
	id uint,
) (*models.Salon, error) {

	var salon models.Salon
	if err := r.db.WithContext(ctx).First(&salon, id).Error; err != nil {
		return nil, err
	}
	return &salon, nil
}

// --------------------------------------------------
// Service
// --------------------------------------------------

func (r *BookingGormRepository) GetService(
	ctx context.Context,
	salonID uint,
	serviceID uint,
) (*models.Service, error) {

	var service models.Service
	if err := r.db.WithContext(ctx).
		Where("id = ? AND salon_id = ?", serviceID, salonID).
		First(&service).Error; err != nil {
		return nil, err
	}
	return &service, nil
}

// --------------------------------------------------
// Client
// --------------------------------------------------

func (r *BookingGormRepository) GetOrCreateClient(
	ctx context.Context,
	salonID uint,
	name string,
	phone string,
	email string,
) (*models.Client, error) {

	var client models.Client
	err := r.db.WithContext(ctx).
		Where("salon_id = ? AND phone = ?", salonID, phone).
		First(&client).Error

	if err == nil {
		return &client, nil
	}

	client = models.Client{
		SalonID: salonID,
		Name:    name,
		Phone:   phone,
		Email:   email,
	}

	if err := r.db.WithContext(ctx).Create(&client).Error; err != nil {
		return nil, err
	}

	return &client, nil
}

// --------------------------------------------------
// Booking
// --------------------------------------------------

func (r *BookingGormRepository) CreateBooking(
	ctx context.Context,
	b *models.Booking,
) error {
	return r.db.WithContext(ctx).Create(b).Error
}

// AssertNoTimeConflict rejeita quando o intervalo esbarra em agendamento
// vivo ou em bloco de indisponibilidade do profissional.
func (r *BookingGormRepository) AssertNoTimeConflict(
	ctx context.Context,
	staffID uint,
	start time.Time,
	end time.Time,
) error {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where(
			"staff_id = ? AND status <> ? AND start_time < ? AND end_time > ?",
			staffID,
			"cancelled",
			end,
			start,
		).
		Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		return httperr.ErrBusiness("time_conflict")
	}

	var blocked int64
	if err := r.db.WithContext(ctx).
		Model(&models.TimeBlock{}).
		Where(
			"staff_id = ? AND start_time < ? AND end_time > ?",
			staffID,
			end,
			start,
		).
		Count(&blocked).Error; err != nil {
		return err
	}

	if blocked > 0 {
		return httperr.ErrBusiness("time_blocked")
	}

	return nil
}

// --------------------------------------------------
// Booking (Cancel / Complete)
// --------------------------------------------------

func (r *BookingGormRepository) GetBookingForStaff(
	ctx context.Context,
	bookingID uint,
	staffID uint,
) (*models.Booking, error) {

	var b models.Booking
	if err := r.db.WithContext(ctx).
		Where("id = ? AND staff_id = ?", bookingID, staffID).
		First(&b).Error; err != nil {
		return nil, err
	}

	return &b, nil
}

func (r *BookingGormRepository) UpdateBooking(
	ctx context.Context,
	b *models.Booking,
) error {
	return r.db.WithContext(ctx).Save(b).Error
}

// --------------------------------------------------
// Listing
// --------------------------------------------------

func (r *BookingGormRepository) ListBookingsForPeriod(
	ctx context.Context,
	staffID uint,
	start time.Time,
	end time.Time,
) ([]models.Booking, error) {

	var bookings []models.Booking

	err := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Service").
		Where(
			"staff_id = ? AND start_time < ? AND end_time > ?",
			staffID,
			end,
			start,
		).
		Order("start_time ASC").
		Find(&bookings).Error

	if err != nil {
		return nil, err
	}

	return bookings, nil
}

// --------------------------------------------------
// schedule.BookingStore
// --------------------------------------------------

func (r *BookingGormRepository) FindOverlapping(
	ctx context.Context,
	staffID uint,
	start time.Time,
	end time.Time,
	excludeCancelled bool,
) ([]models.Booking, error) {

	q := r.db.WithContext(ctx).
		Where(
			"staff_id = ? AND start_time < ? AND end_time > ?",
			staffID, end, start,
		)

	if excludeCancelled {
		q = q.Where("status <> ?", "cancelled")
	}

	var bookings []models.Booking
	if err := q.Order("start_time ASC").Find(&bookings).Error; err != nil {
		return nil, err
	}

	return bookings, nil
}

func (r *BookingGormRepository) SetStatus(
	ctx context.Context,
	bookingID uint,
	status string,
) error {

	updates := map[string]any{"status": status}
	if status == "cancelled" {
		updates["cancelled_at"] = time.Now().UTC()
	}

	return r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where("id = ?", bookingID).
		Updates(updates).Error
}

// Compile-time checks
var _ domain.Repository = (*BookingGormRepository)(nil)
var _ schedule.BookingStore = (*BookingGormRepository)(nil)
