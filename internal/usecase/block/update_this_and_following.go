package block

import (
	"context"

	"github.com/google/uuid"

	"github.com/ericfrick132/beauty-salon-sub003/internal/audit"
	"github.com/ericfrick132/beauty-salon-sub003/internal/domain/schedule"
)

// ======================================================
// INPUT
// ======================================================

type UpdateThisAndFollowingInput struct {
	SalonID uint
	BlockID uint

	Reason         *string
	StartTimeOfDay *string // "15:04"
	EndTimeOfDay   *string

	Force bool
}

type UpdateThisAndFollowingResult struct {
	// NewSeriesID fica vazio quando o bloco não pertencia a série nenhuma.
	NewSeriesID       string
	MembersUpdated    int
	BookingsCancelled int
}

// ======================================================
// USE CASE
// ======================================================

type UpdateThisAndFollowing struct {
	tx       schedule.TxRunner
	locker   schedule.StaffLocker
	settings schedule.SettingsProvider
	audit    *audit.Dispatcher
}

func NewUpdateThisAndFollowing(
	tx schedule.TxRunner,
	locker schedule.StaffLocker,
	settings schedule.SettingsProvider,
	audit *audit.Dispatcher,
) *UpdateThisAndFollowing {
	return &UpdateThisAndFollowing{
		tx:       tx,
		locker:   locker,
		settings: settings,
		audit:    audit,
	}
}

// ======================================================
// EXECUTE
// ======================================================

// Execute destaca deste bloco em diante para uma série nova (os membros
// anteriores seguem intocados na série original) e aplica a mesma política
// por membro do UpdateWholeSeries apenas ao trecho destacado. Bloco sem
// série é atualizado sozinho, sem criar série.
func (uc *UpdateThisAndFollowing) Execute(
	ctx context.Context,
	in UpdateThisAndFollowingInput,
) (*UpdateThisAndFollowingResult, error) {

	startTod, endTod, err := parseOptionalTods(in.StartTimeOfDay, in.EndTimeOfDay)
	if err != nil {
		return nil, err
	}

	st, err := uc.settings.ScheduleSettings(ctx, in.SalonID)
	if err != nil {
		return nil, err
	}

	pivot, err := uc.tx.Stores().Blocks.GetByID(ctx, in.SalonID, in.BlockID)
	if err != nil {
		return nil, err
	}
	staffID := pivot.StaffID

	release, err := uc.locker.LockStaff(ctx, staffID)
	if err != nil {
		return nil, err
	}
	defer release()

	patch := memberPatch{
		Reason:      in.Reason,
		StartTod:    startTod,
		EndTod:      endTod,
		OffsetHours: st.OffsetHours,
		Force:       in.Force,
	}

	var result UpdateThisAndFollowingResult

	err = uc.tx.InTx(ctx, func(s schedule.Stores) error {

		pivot, err := s.Blocks.GetByID(ctx, in.SalonID, in.BlockID)
		if err != nil {
			return err
		}

		// sem série: atualiza só este bloco
		if pivot.SeriesID == nil {
			updated, cancelled, err := applyMemberPatch(ctx, s, pivot, patch)
			if err != nil {
				return err
			}
			if updated {
				result.MembersUpdated++
			}
			result.BookingsCancelled += cancelled
			return nil
		}

		members, err := s.Blocks.ListBySeries(ctx, in.SalonID, *pivot.SeriesID)
		if err != nil {
			return err
		}

		newSeriesID := uuid.NewString()
		result.NewSeriesID = newSeriesID

		for i := range members {
			if members[i].StartTime.Before(pivot.StartTime) {
				continue
			}

			// destaca o membro para a série nova antes de aplicar a mudança
			sid := newSeriesID
			members[i].SeriesID = &sid

			updated, cancelled, err := applyMemberPatch(ctx, s, &members[i], patch)
			if err != nil {
				return err
			}
			if !updated {
				// nada além da troca de série mudou; ainda precisa persistir
				if err := s.Blocks.Update(ctx, &members[i]); err != nil {
					return err
				}
			} else {
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
		SalonID:  in.SalonID,
		UserID:   &staffID,
		Action:   "time_block_series_split",
		Entity:   "time_block_series",
		EntityID: &in.BlockID,
		Metadata: map[string]any{
			"new_series_id":      result.NewSeriesID,
			"members_updated":    result.MembersUpdated,
			"bookings_cancelled": result.BookingsCancelled,
		},
	})

	return &result, nil
}
