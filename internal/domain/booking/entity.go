package booking

import (
	"time"

	"github.com/ericfrick132/beauty-salon-sub003/internal/models"
)

// ===============================
// Domain Actions
// ===============================

func Cancel(b *models.Booking, now time.Time) error {
	if err := CanCancel(Status(b.Status)); err != nil {
		return err
	}

	b.Status = string(StatusCancelled)
	b.CancelledAt = &now
	return nil
}

func Complete(b *models.Booking, now time.Time) error {
	if err := CanComplete(Status(b.Status)); err != nil {
		return err
	}

	b.Status = string(StatusCompleted)
	b.CompletedAt = &now
	return nil
}
