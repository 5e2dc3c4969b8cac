package booking

import (
	"context"
	"time"

	domain "github.com/ericfrick132/beauty-salon-sub003/internal/domain/booking"
	"github.com/ericfrick132/beauty-salon-sub003/internal/domain/schedule"
	"github.com/ericfrick132/beauty-salon-sub003/internal/dto"
	"github.com/ericfrick132/beauty-salon-sub003/internal/timeutil"
)

type ListBookingsByDate struct {
	repo domain.Repository
}

func NewListBookingsByDate(
	repo domain.Repository,
) *ListBookingsByDate {
	return &ListBookingsByDate{
		repo: repo,
	}
}

func (uc *ListBookingsByDate) Execute(
	ctx context.Context,
	staffID uint,
	salonID uint,
	date time.Time,
) ([]dto.BookingListDTO, error) {

	salon, err := uc.repo.GetSalonByID(ctx, salonID)
	if err != nil {
		return nil, err
	}
	st := schedule.SettingsFromSalon(salon)

	localDayStart := time.Date(
		date.Year(), date.Month(), date.Day(),
		0, 0, 0, 0, time.UTC,
	)
	start := timeutil.ToUTC(localDayStart, st.OffsetHours)
	end := start.Add(24 * time.Hour)

	bookings, err := uc.repo.ListBookingsForPeriod(ctx, staffID, start, end)
	if err != nil {
		return nil, err
	}

	out := make([]dto.BookingListDTO, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, dto.BookingListDTO{
			ID:          b.ID,
			StartTime:   b.StartTime,
			EndTime:     b.EndTime,
			Status:      b.Status,
			ClientName:  b.Client.Name,
			ServiceName: b.Service.Name,
		})
	}

	return out, nil
}
