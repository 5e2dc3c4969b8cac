package block

import (
	"context"

	"github.com/ericfrick132/beauty-salon-sub003/internal/audit"
	"github.com/ericfrick132/beauty-salon-sub003/internal/domain/schedule"
)

type DeleteWholeSeries struct {
	tx    schedule.TxRunner
	audit *audit.Dispatcher
}

func NewDeleteWholeSeries(
	tx schedule.TxRunner,
	audit *audit.Dispatcher,
) *DeleteWholeSeries {
	return &DeleteWholeSeries{
		tx:    tx,
		audit: audit,
	}
}

// Execute remove todos os membros da série. Série inexistente é NotFound.
func (uc *DeleteWholeSeries) Execute(
	ctx context.Context,
	salonID uint,
	seriesID string,
) (int64, error) {

	var removed int64

	err := uc.tx.InTx(ctx, func(s schedule.Stores) error {
		n, err := s.Blocks.DeleteBySeries(ctx, salonID, seriesID)
		if err != nil {
			return err
		}
		if n == 0 {
			return schedule.NotFoundError{Entity: "series"}
		}
		removed = n
		return nil
	})
	if err != nil {
		return 0, err
	}

	uc.audit.Dispatch(audit.Event{
		SalonID: salonID,
		Action:  "time_block_series_deleted",
		Entity:  "time_block_series",
		Metadata: map[string]any{
			"series_id":      seriesID,
			"blocks_removed": removed,
		},
	})

	return removed, nil
}
