package booking

import (
	"context"
	"time"

	"github.com/ericfrick132/beauty-salon-sub003/internal/models"
)

type Repository interface {
	// -------- Salon --------
	GetSalonByID(
		ctx context.Context,
		id uint,
	) (*models.Salon, error)

	// -------- Service --------
	GetService(
		ctx context.Context,
		salonID uint,
		serviceID uint,
	) (*models.Service, error)

	// -------- Client --------
	GetOrCreateClient(
		ctx context.Context,
		salonID uint,
		name string,
		phone string,
		email string,
	) (*models.Client, error)

	// -------- Booking (create / conflict) --------
	CreateBooking(
		ctx context.Context,
		b *models.Booking,
	) error

	AssertNoTimeConflict(
		ctx context.Context,
		staffID uint,
		start time.Time,
		end time.Time,
	) error

	// -------- Booking (state change) --------
	GetBookingForStaff(
		ctx context.Context,
		bookingID uint,
		staffID uint,
	) (*models.Booking, error)

	UpdateBooking(
		ctx context.Context,
		b *models.Booking,
	) error

	// -------- Listing --------
	ListBookingsForPeriod(
		ctx context.Context,
		staffID uint,
		start time.Time,
		end time.Time,
	) ([]models.Booking, error)
}
