package block

import (
	"context"

	"github.com/ericfrick132/beauty-salon-sub003/internal/audit"
	"github.com/ericfrick132/beauty-salon-sub003/internal/domain/schedule"
)

type DeleteSingleBlock struct {
	tx    schedule.TxRunner
	audit *audit.Dispatcher
}

func NewDeleteSingleBlock(
	tx schedule.TxRunner,
	audit *audit.Dispatcher,
) *DeleteSingleBlock {
	return &DeleteSingleBlock{
		tx:    tx,
		audit: audit,
	}
}

// Execute remove o bloco sem checar conflito — tirar uma restrição não
// conflita com nada.
func (uc *DeleteSingleBlock) Execute(
	ctx context.Context,
	salonID uint,
	blockID uint,
) error {

	var staffID uint

	err := uc.tx.InTx(ctx, func(s schedule.Stores) error {
		tb, err := s.Blocks.GetByID(ctx, salonID, blockID)
		if err != nil {
			return err
		}
		staffID = tb.StaffID
		return s.Blocks.Delete(ctx, tb.ID)
	})
	if err != nil {
		return err
	}

	uc.audit.Dispatch(audit.Event{
		SalonID:  salonID,
		UserID:   &staffID,
		Action:   "time_block_deleted",
		Entity:   "time_block",
		EntityID: &blockID,
	})

	return nil
}
