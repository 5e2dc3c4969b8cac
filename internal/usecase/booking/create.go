package booking

import (
	"context"
	"time"

	"github.com/ericfrick132/beauty-salon-sub003/internal/audit"
	domain "github.com/ericfrick132/beauty-salon-sub003/internal/domain/booking"
	"github.com/ericfrick132/beauty-salon-sub003/internal/domain/schedule"
	"github.com/ericfrick132/beauty-salon-sub003/internal/httperr"
	"github.com/ericfrick132/beauty-salon-sub003/internal/models"
	"github.com/ericfrick132/beauty-salon-sub003/internal/timeutil"
)

// ======================================================
// INPUT
// ======================================================

type CreateBookingInput struct {
	SalonID uint
	StaffID uint

	ClientName  string
	ClientPhone string
	ClientEmail string

	ServiceID uint

	Date  string // YYYY-MM-DD, calendário local do salão
	Time  string // HH:mm
	Notes string
}

// DepositCreator cria a preferência de pagamento do sinal quando o salão
// exige. A implementação mercadopago vive em internal/payments.
type DepositCreator interface {
	CreateDepositPreference(
		ctx context.Context,
		salon *models.Salon,
		service *models.Service,
		clientEmail string,
	) (string, error)
}

// ======================================================
// USE CASE
// ======================================================

type CreateBooking struct {
	repo     domain.Repository
	deposits DepositCreator // pode ser nil: sinal desabilitado
	audit    *audit.Dispatcher
	now      func() time.Time
}

func NewCreateBooking(
	repo domain.Repository,
	deposits DepositCreator,
	audit *audit.Dispatcher,
) *CreateBooking {
	return &CreateBooking{
		repo:     repo,
		deposits: deposits,
		audit:    audit,
		now:      time.Now,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateBooking) Execute(
	ctx context.Context,
	in CreateBookingInput,
) (*models.Booking, error) {

	salon, err := uc.repo.GetSalonByID(ctx, in.SalonID)
	if err != nil {
		return nil, err
	}
	st := schedule.SettingsFromSalon(salon)

	// data/hora no calendário local do salão (deslocamento fixo, sem DST)
	localStart, err := time.Parse("2006-01-02 15:04", in.Date+" "+in.Time)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date_or_time")
	}

	localNow := timeutil.ToLocal(uc.now().UTC(), st.OffsetHours)
	minAllowed := localNow.Add(time.Duration(st.MinAdvanceMinutes) * time.Minute)
	if localStart.Before(minAllowed) {
		return nil, httperr.ErrBusiness("too_soon")
	}

	service, err := uc.repo.GetService(ctx, in.SalonID, in.ServiceID)
	if err != nil {
		return nil, httperr.ErrBusiness("service_not_found")
	}

	localEnd := localStart.Add(time.Duration(service.DurationMin) * time.Minute)

	if !st.WithinBusinessHours(localStart, localEnd) {
		return nil, httperr.ErrBusiness("outside_working_hours")
	}

	client, err := uc.repo.GetOrCreateClient(
		ctx,
		in.SalonID,
		in.ClientName,
		in.ClientPhone,
		in.ClientEmail,
	)
	if err != nil {
		return nil, err
	}

	utcStart := timeutil.ToUTC(localStart, st.OffsetHours)
	utcEnd := timeutil.ToUTC(localEnd, st.OffsetHours)

	// conflito com agendamentos vivos e com blocos de indisponibilidade
	if err := uc.repo.AssertNoTimeConflict(ctx, in.StaffID, utcStart, utcEnd); err != nil {
		return nil, err
	}

	b := &models.Booking{
		SalonID:   in.SalonID,
		StaffID:   in.StaffID,
		ClientID:  client.ID,
		ServiceID: service.ID,
		StartTime: utcStart,
		EndTime:   utcEnd,
		Status:    string(domain.InitialStatus()),
		Notes:     in.Notes,
	}

	if salon.RequiresDeposit && uc.deposits != nil {
		prefID, err := uc.deposits.CreateDepositPreference(ctx, salon, service, in.ClientEmail)
		if err != nil {
			return nil, httperr.ErrBusiness("payment_preference_failed")
		}
		b.PaymentPreferenceID = prefID
	}

	if err := uc.repo.CreateBooking(ctx, b); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		SalonID:  in.SalonID,
		UserID:   &in.StaffID,
		Action:   "booking_created",
		Entity:   "booking",
		EntityID: &b.ID,
	})

	return b, nil
}
