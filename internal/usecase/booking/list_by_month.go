package booking

import (
	"context"
	"time"

	domain "github.com/ericfrick132/beauty-salon-sub003/internal/domain/booking"
	"github.com/ericfrick132/beauty-salon-sub003/internal/domain/schedule"
	"github.com/ericfrick132/beauty-salon-sub003/internal/dto"
	"github.com/ericfrick132/beauty-salon-sub003/internal/timeutil"
)

type ListBookingsByMonth struct {
	repo domain.Repository
}

func NewListBookingsByMonth(
	repo domain.Repository,
) *ListBookingsByMonth {
	return &ListBookingsByMonth{
		repo: repo,
	}
}

func (uc *ListBookingsByMonth) Execute(
	ctx context.Context,
	staffID uint,
	salonID uint,
	year int,
	month int,
) ([]dto.BookingListDTO, error) {

	salon, err := uc.repo.GetSalonByID(ctx, salonID)
	if err != nil {
		return nil, err
	}
	st := schedule.SettingsFromSalon(salon)

	localMonthStart := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	start := timeutil.ToUTC(localMonthStart, st.OffsetHours)
	end := timeutil.ToUTC(localMonthStart.AddDate(0, 1, 0), st.OffsetHours)

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
