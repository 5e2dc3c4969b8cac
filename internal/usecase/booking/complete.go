package booking

import (
	"context"
	"time"

	"github.com/ericfrick132/beauty-salon-sub003/internal/audit"
	domain "github.com/ericfrick132/beauty-salon-sub003/internal/domain/booking"
	"github.com/ericfrick132/beauty-salon-sub003/internal/httperr"
	"github.com/ericfrick132/beauty-salon-sub003/internal/models"
)

type CompleteBooking struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCompleteBooking(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CompleteBooking {
	return &CompleteBooking{
		repo:  repo,
		audit: audit,
	}
}

func (uc *CompleteBooking) Execute(
	ctx context.Context,
	salonID uint,
	staffID uint,
	bookingID uint,
) (*models.Booking, error) {

	b, err := uc.repo.GetBookingForStaff(ctx, bookingID, staffID)
	if err != nil {
		return nil, httperr.ErrBusiness("booking_not_found")
	}

	if err := domain.Complete(b, time.Now().UTC()); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateBooking(ctx, b); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		SalonID:  salonID,
		UserID:   &staffID,
		Action:   "booking_completed",
		Entity:   "booking",
		EntityID: &b.ID,
	})

	return b, nil
}
