package availability

import (
	"context"
	"time"

	"github.com/ericfrick132/beauty-salon-sub003/internal/domain/schedule"
	"github.com/ericfrick132/beauty-salon-sub003/internal/httperr"
	"github.com/ericfrick132/beauty-salon-sub003/internal/models"
	"github.com/ericfrick132/beauty-salon-sub003/internal/timeutil"
)

type Input struct {
	SalonID   uint
	StaffID   uint
	ServiceID uint
	Date      time.Time // data local do salão (componente de data)
}

// Repository é o recorte de leitura que o cálculo de horários precisa.
type Repository interface {
	GetSalonByID(ctx context.Context, id uint) (*models.Salon, error)

	GetService(ctx context.Context, salonID, serviceID uint) (*models.Service, error)

	ListBookingsForPeriod(
		ctx context.Context,
		staffID uint,
		start time.Time,
		end time.Time,
	) ([]models.Booking, error)
}

// BlockReader lista os blocos de indisponibilidade que tocam a janela.
type BlockReader interface {
	ListBlocksForPeriod(
		ctx context.Context,
		staffID uint,
		start time.Time,
		end time.Time,
	) ([]models.TimeBlock, error)
}

type GetAvailability struct {
	repo   Repository
	blocks BlockReader
	now    func() time.Time
}

func NewGetAvailability(repo Repository, blocks BlockReader) *GetAvailability {
	return &GetAvailability{
		repo:   repo,
		blocks: blocks,
		now:    time.Now,
	}
}

// NewGetAvailabilityAt injeta o relógio, para testes.
func NewGetAvailabilityAt(
	repo Repository,
	blocks BlockReader,
	now func() time.Time,
) *GetAvailability {
	return &GetAvailability{repo: repo, blocks: blocks, now: now}
}

func (uc *GetAvailability) Execute(
	ctx context.Context,
	in Input,
) ([]schedule.Slot, error) {

	salon, err := uc.repo.GetSalonByID(ctx, in.SalonID)
	if err != nil {
		return nil, err
	}
	st := schedule.SettingsFromSalon(salon)

	service, err := uc.repo.GetService(ctx, in.SalonID, in.ServiceID)
	if err != nil {
		return nil, httperr.ErrBusiness("service_not_found")
	}

	// janela UTC que cobre o dia local consultado
	localDayStart := time.Date(
		in.Date.Year(), in.Date.Month(), in.Date.Day(),
		0, 0, 0, 0, time.UTC,
	)
	utcDayStart := timeutil.ToUTC(localDayStart, st.OffsetHours)
	utcDayEnd := utcDayStart.Add(24 * time.Hour)

	bookings, err := uc.repo.ListBookingsForPeriod(ctx, in.StaffID, utcDayStart, utcDayEnd)
	if err != nil {
		return nil, err
	}
	blocks, err := uc.blocks.ListBlocksForPeriod(ctx, in.StaffID, utcDayStart, utcDayEnd)
	if err != nil {
		return nil, err
	}

	return schedule.ComputeAvailableSlots(schedule.SlotQuery{
		Date:        in.Date,
		DurationMin: service.DurationMin,
		Settings:    st,
		Bookings:    bookings,
		Blocks:      blocks,
		NowUTC:      uc.now().UTC(),
	}), nil
}
