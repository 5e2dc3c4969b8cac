package block

import (
	"context"

	"github.com/ericfrick132/beauty-salon-sub003/internal/audit"
	"github.com/ericfrick132/beauty-salon-sub003/internal/domain/schedule"
)

type DeleteThisAndFollowing struct {
	tx    schedule.TxRunner
	audit *audit.Dispatcher
}

func NewDeleteThisAndFollowing(
	tx schedule.TxRunner,
	audit *audit.Dispatcher,
) *DeleteThisAndFollowing {
	return &DeleteThisAndFollowing{
		tx:    tx,
		audit: audit,
	}
}

// Execute remove deste bloco em diante (por início) dentro da série; os
// membros anteriores ficam intactos na série original. Bloco sem série cai
// na remoção simples.
func (uc *DeleteThisAndFollowing) Execute(
	ctx context.Context,
	salonID uint,
	blockID uint,
) (int, error) {

	var staffID uint
	removed := 0

	err := uc.tx.InTx(ctx, func(s schedule.Stores) error {

		pivot, err := s.Blocks.GetByID(ctx, salonID, blockID)
		if err != nil {
			return err
		}
		staffID = pivot.StaffID

		if pivot.SeriesID == nil {
			if err := s.Blocks.Delete(ctx, pivot.ID); err != nil {
				return err
			}
			removed = 1
			return nil
		}

		members, err := s.Blocks.ListBySeries(ctx, salonID, *pivot.SeriesID)
		if err != nil {
			return err
		}

		for i := range members {
			if members[i].StartTime.Before(pivot.StartTime) {
				continue
			}
			if err := s.Blocks.Delete(ctx, members[i].ID); err != nil {
				return err
			}
			removed++
		}

		return nil
	})
	if err != nil {
		return 0, err
	}

	uc.audit.Dispatch(audit.Event{
		SalonID:  salonID,
		UserID:   &staffID,
		Action:   "time_block_deleted_following",
		Entity:   "time_block",
		EntityID: &blockID,
		Metadata: map[string]any{
			"blocks_removed": removed,
		},
	})

	return removed, nil
}
