package block

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/ericfrick132/beauty-salon-sub003/internal/audit"
	"github.com/ericfrick132/beauty-salon-sub003/internal/domain/schedule"
	"github.com/ericfrick132/beauty-salon-sub003/internal/models"
	"github.com/ericfrick132/beauty-salon-sub003/internal/timeutil"
)

// ======================================================
// INPUT
// ======================================================

type CreateRecurringBlocksInput struct {
	SalonID uint
	StaffID uint

	StartDate time.Time  // data local do salão
	EndDate   *time.Time // nil = StartDate + 1 ano

	StartTimeOfDay string // "15:04"
	EndTimeOfDay   string

	// 0 = domingo .. 6 = sábado; vazio = todos os dias
	DaysOfWeek []int

	Reason string
	Force  bool
}

type CreateRecurringBlocksResult struct {
	SeriesID          string
	BlocksCreated     int
	BookingsCancelled int
}

// ======================================================
// USE CASE
// ======================================================

type CreateRecurringBlocks struct {
	tx       schedule.TxRunner
	locker   schedule.StaffLocker
	settings schedule.SettingsProvider
	audit    *audit.Dispatcher
}

func NewCreateRecurringBlocks(
	tx schedule.TxRunner,
	locker schedule.StaffLocker,
	settings schedule.SettingsProvider,
	audit *audit.Dispatcher,
) *CreateRecurringBlocks {
	return &CreateRecurringBlocks{
		tx:       tx,
		locker:   locker,
		settings: settings,
		audit:    audit,
	}
}

// ======================================================
// EXECUTE
// ======================================================

// Execute gera uma ocorrência por data elegível, dia a dia. Cada data é
// aceita ou descartada de forma independente: conflito bloco-a-bloco pula a
// data; conflito com agendamento pula sem force e cancela com force. Datas
// puladas não são erro — o resultado carrega só os agregados.
func (uc *CreateRecurringBlocks) Execute(
	ctx context.Context,
	in CreateRecurringBlocksInput,
) (*CreateRecurringBlocksResult, error) {

	startTod, err := timeutil.ParseTimeOfDay(in.StartTimeOfDay)
	if err != nil {
		return nil, schedule.ErrValidation("invalid_start_time_of_day")
	}
	endTod, err := timeutil.ParseTimeOfDay(in.EndTimeOfDay)
	if err != nil {
		return nil, schedule.ErrValidation("invalid_end_time_of_day")
	}
	if !endTod.After(startTod) {
		return nil, schedule.ErrValidation("end_not_after_start")
	}

	endDate := in.StartDate.AddDate(1, 0, 0)
	if in.EndDate != nil {
		endDate = *in.EndDate
	}

	st, err := uc.settings.ScheduleSettings(ctx, in.SalonID)
	if err != nil {
		return nil, err
	}

	rec := schedule.Recurrence{
		DaysOfWeek: in.DaysOfWeek,
		StartTime:  in.StartTimeOfDay,
		EndTime:    in.EndTimeOfDay,
	}
	recJSON := rec.Serialize()
	seriesID := uuid.NewString()

	release, err := uc.locker.LockStaff(ctx, in.StaffID)
	if err != nil {
		return nil, err
	}
	defer release()

	result := CreateRecurringBlocksResult{SeriesID: seriesID}

	err = uc.tx.InTx(ctx, func(s schedule.Stores) error {

		for d := in.StartDate; !d.After(endDate); d = d.AddDate(0, 0, 1) {
			if !rec.Matches(d) {
				continue
			}

			localStart := timeutil.CombineDateTime(d, startTod)
			localEnd := timeutil.CombineDateTime(d, endTod)
			utcStart := timeutil.ToUTC(localStart, st.OffsetHours)
			utcEnd := timeutil.ToUTC(localEnd, st.OffsetHours)

			// bloco existente na data → pula a ocorrência
			blocks, err := s.Blocks.FindOverlapping(
				ctx, in.StaffID, utcStart, utcEnd, 0,
			)
			if err != nil {
				return err
			}
			if len(blocks) > 0 {
				continue
			}

			conflicts, err := s.Bookings.FindOverlapping(
				ctx, in.StaffID, utcStart, utcEnd, true,
			)
			if err != nil {
				return err
			}
			if len(conflicts) > 0 {
				if !in.Force {
					continue
				}
				cancelled, err := schedule.ResolveBookingConflicts(
					ctx, s.Bookings, conflicts, true,
				)
				if err != nil {
					return err
				}
				result.BookingsCancelled += cancelled
			}

			sid := seriesID
			tb := &models.TimeBlock{
				SalonID:    in.SalonID,
				StaffID:    in.StaffID,
				StartTime:  utcStart,
				EndTime:    utcEnd,
				Reason:     in.Reason,
				SeriesID:   &sid,
				Recurrence: recJSON,
			}
			if err := s.Blocks.Insert(ctx, tb); err != nil {
				return err
			}
			result.BlocksCreated++
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		SalonID: in.SalonID,
		UserID:  &in.StaffID,
		Action:  "time_block_series_created",
		Entity:  "time_block_series",
		Metadata: map[string]any{
			"series_id":          seriesID,
			"blocks_created":     result.BlocksCreated,
			"bookings_cancelled": result.BookingsCancelled,
		},
	})

	return &result, nil
}
