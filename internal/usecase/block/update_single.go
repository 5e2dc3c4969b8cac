package block

import (
	"context"
	"time"

	"github.com/ericfrick132/beauty-salon-sub003/internal/audit"
	"github.com/ericfrick132/beauty-salon-sub003/internal/domain/schedule"
	"github.com/ericfrick132/beauty-salon-sub003/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type UpdateSingleBlockInput struct {
	SalonID uint
	BlockID uint

	// Instantes UTC
	Start time.Time
	End   time.Time

	Reason *string
	Force  bool
}

type UpdateSingleBlockResult struct {
	Block             *models.TimeBlock
	BookingsCancelled int
}

// ======================================================
// USE CASE
// ======================================================

type UpdateSingleBlock struct {
	tx     schedule.TxRunner
	locker schedule.StaffLocker
	audit  *audit.Dispatcher
}

func NewUpdateSingleBlock(
	tx schedule.TxRunner,
	locker schedule.StaffLocker,
	audit *audit.Dispatcher,
) *UpdateSingleBlock {
	return &UpdateSingleBlock{
		tx:     tx,
		locker: locker,
		audit:  audit,
	}
}

// ======================================================
// EXECUTE
// ======================================================

// Execute segue a mesma política da criação, mas o intervalo anterior do
// próprio bloco fica fora da checagem bloco-a-bloco. O bloco mantém o vínculo
// de série, se houver.
func (uc *UpdateSingleBlock) Execute(
	ctx context.Context,
	in UpdateSingleBlockInput,
) (*UpdateSingleBlockResult, error) {

	if !in.End.After(in.Start) {
		return nil, schedule.ErrValidation("end_not_after_start")
	}

	// leitura fora da transação só para descobrir o profissional e travar
	existing, err := uc.tx.Stores().Blocks.GetByID(ctx, in.SalonID, in.BlockID)
	if err != nil {
		return nil, err
	}
	staffID := existing.StaffID

	release, err := uc.locker.LockStaff(ctx, staffID)
	if err != nil {
		return nil, err
	}
	defer release()

	var result UpdateSingleBlockResult

	err = uc.tx.InTx(ctx, func(s schedule.Stores) error {

		tb, err := s.Blocks.GetByID(ctx, in.SalonID, in.BlockID)
		if err != nil {
			return err
		}

		conflicts, err := s.Bookings.FindOverlapping(
			ctx, tb.StaffID, in.Start, in.End, true,
		)
		if err != nil {
			return err
		}

		cancelled, err := schedule.ResolveBookingConflicts(
			ctx, s.Bookings, conflicts, in.Force,
		)
		if err != nil {
			return err
		}

		blocks, err := s.Blocks.FindOverlapping(
			ctx, tb.StaffID, in.Start, in.End, tb.ID,
		)
		if err != nil {
			return err
		}
		if len(blocks) > 0 {
			return schedule.ConflictError{
				Code:   "block_conflict",
				Blocks: blocks,
			}
		}

		tb.StartTime = in.Start
		tb.EndTime = in.End
		if in.Reason != nil {
			tb.Reason = *in.Reason
		}

		if err := s.Blocks.Update(ctx, tb); err != nil {
			return err
		}

		result.Block = tb
		result.BookingsCancelled = cancelled
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		SalonID:  in.SalonID,
		UserID:   &staffID,
		Action:   "time_block_updated",
		Entity:   "time_block",
		EntityID: &in.BlockID,
	})

	return &result, nil
}
