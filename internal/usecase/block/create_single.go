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

type CreateSingleBlockInput struct {
	SalonID uint
	StaffID uint

	// Instantes UTC, intervalo semiaberto [start, end)
	Start time.Time
	End   time.Time

	Reason string
	Force  bool
}

type CreateSingleBlockResult struct {
	Block             *models.TimeBlock
	BookingsCancelled int
}

// ======================================================
// USE CASE
// ======================================================

type CreateSingleBlock struct {
	tx     schedule.TxRunner
	locker schedule.StaffLocker
	audit  *audit.Dispatcher
}

func NewCreateSingleBlock(
	tx schedule.TxRunner,
	locker schedule.StaffLocker,
	audit *audit.Dispatcher,
) *CreateSingleBlock {
	return &CreateSingleBlock{
		tx:     tx,
		locker: locker,
		audit:  audit,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateSingleBlock) Execute(
	ctx context.Context,
	in CreateSingleBlockInput,
) (*CreateSingleBlockResult, error) {

	if !in.End.After(in.Start) {
		return nil, schedule.ErrValidation("end_not_after_start")
	}

	release, err := uc.locker.LockStaff(ctx, in.StaffID)
	if err != nil {
		return nil, err
	}
	defer release()

	var result CreateSingleBlockResult

	err = uc.tx.InTx(ctx, func(s schedule.Stores) error {

		// Conflito com agendamentos: resolvível via force.
		conflicts, err := s.Bookings.FindOverlapping(
			ctx, in.StaffID, in.Start, in.End, true,
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

		// Conflito bloco-a-bloco: rejeição dura, force não se aplica.
		blocks, err := s.Blocks.FindOverlapping(
			ctx, in.StaffID, in.Start, in.End, 0,
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

		tb := &models.TimeBlock{
			SalonID:   in.SalonID,
			StaffID:   in.StaffID,
			StartTime: in.Start,
			EndTime:   in.End,
			Reason:    in.Reason,
		}
		if err := s.Blocks.Insert(ctx, tb); err != nil {
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
		UserID:   &in.StaffID,
		Action:   "time_block_created",
		Entity:   "time_block",
		EntityID: &result.Block.ID,
	})

	return &result, nil
}
