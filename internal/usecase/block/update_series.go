package block

import (
	"context"
	"time"

	"github.com/ericfrick132/beauty-salon-sub003/internal/audit"
	"github.com/ericfrick132/beauty-salon-sub003/internal/domain/schedule"
	"github.com/ericfrick132/beauty-salon-sub003/internal/timeutil"
)

// ======================================================
// INPUT
// ======================================================

type UpdateWholeSeriesInput struct {
	SalonID  uint
	SeriesID string

	Reason         *string
	StartTimeOfDay *string // "15:04"
	EndTimeOfDay   *string

	Force bool
}

type UpdateWholeSeriesResult struct {
	MembersUpdated    int
	BookingsCancelled int
}

// ======================================================
// USE CASE
// ======================================================

type UpdateWholeSeries struct {
	tx       schedule.TxRunner
	locker   schedule.StaffLocker
	settings schedule.SettingsProvider
	audit    *audit.Dispatcher
}

func NewUpdateWholeSeries(
	tx schedule.TxRunner,
	locker schedule.StaffLocker,
	settings schedule.SettingsProvider,
	audit *audit.Dispatcher,
) *UpdateWholeSeries {
	return &UpdateWholeSeries{
		tx:       tx,
		locker:   locker,
		settings: settings,
		audit:    audit,
	}
}

// ======================================================
// EXECUTE
// ======================================================

// Execute aplica reason/horário a cada membro, em ordem de início. Membro com
// conflito não resolvido mantém o horário e a varredura continua — o retorno
// carrega só as contagens agregadas.
func (uc *UpdateWholeSeries) Execute(
	ctx context.Context,
	in UpdateWholeSeriesInput,
) (*UpdateWholeSeriesResult, error) {

	startTod, endTod, err := parseOptionalTods(in.StartTimeOfDay, in.EndTimeOfDay)
	if err != nil {
		return nil, err
	}

	st, err := uc.settings.ScheduleSettings(ctx, in.SalonID)
	if err != nil {
		return nil, err
	}

	members, err := uc.tx.Stores().Blocks.ListBySeries(ctx, in.SalonID, in.SeriesID)
	if err != nil {
		return nil, err
	}
	if len(members) == 0 {
		return nil, schedule.NotFoundError{Entity: "series"}
	}
	staffID := members[0].StaffID

	release, err := uc.locker.LockStaff(ctx, staffID)
	if err != nil {
		return nil, err
	}
	defer release()

	var result UpdateWholeSeriesResult

	err = uc.tx.InTx(ctx, func(s schedule.Stores) error {

		members, err := s.Blocks.ListBySeries(ctx, in.SalonID, in.SeriesID)
		if err != nil {
			return err
		}
		if len(members) == 0 {
			return schedule.NotFoundError{Entity: "series"}
		}

		patch := memberPatch{
			Reason:      in.Reason,
			StartTod:    startTod,
			EndTod:      endTod,
			OffsetHours: st.OffsetHours,
			Force:       in.Force,
		}

		for i := range members {
			updated, cancelled, err := applyMemberPatch(ctx, s, &members[i], patch)
			if err != nil {
				return err
			}
			if updated {
				result.MembersUpdated++
			}
			result.BookingsCancelled += cancelled
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		SalonID: in.SalonID,
		UserID:  &staffID,
		Action:  "time_block_series_updated",
		Entity:  "time_block_series",
		Metadata: map[string]any{
			"series_id":          in.SeriesID,
			"members_updated":    result.MembersUpdated,
			"bookings_cancelled": result.BookingsCancelled,
		},
	})

	return &result, nil
}

// parseOptionalTods interpreta os horários opcionais e valida a ordem quando
// os dois vierem juntos.
func parseOptionalTods(startStr, endStr *string) (*time.Time, *time.Time, error) {
	var startTod, endTod *time.Time

	if startStr != nil {
		t, err := timeutil.ParseTimeOfDay(*startStr)
		if err != nil {
			return nil, nil, schedule.ErrValidation("invalid_start_time_of_day")
		}
		startTod = &t
	}
	if endStr != nil {
		t, err := timeutil.ParseTimeOfDay(*endStr)
		if err != nil {
			return nil, nil, schedule.ErrValidation("invalid_end_time_of_day")
		}
		endTod = &t
	}
	if startTod != nil && endTod != nil && !endTod.After(*startTod) {
		return nil, nil, schedule.ErrValidation("end_not_after_start")
	}

	return startTod, endTod, nil
}
