package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/ericfrick132/beauty-salon-sub003/internal/domain/schedule"
)

// GormTxRunner materializa a unidade atômica das mutações de agenda: tudo o
// que fn escrever entra na mesma transação, inclusive cancelamentos forçados
// e a gravação do bloco que os compensa.
type GormTxRunner struct {
	db *gorm.DB
}

func NewGormTxRunner(db *gorm.DB) *GormTxRunner {
	return &GormTxRunner{db: db}
}

func (r *GormTxRunner) InTx(
	ctx context.Context,
	fn func(s schedule.Stores) error,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(schedule.Stores{
			Bookings: NewBookingGormRepository(tx),
			Blocks:   NewTimeBlockGormRepository(tx),
		})
	})
}

func (r *GormTxRunner) Stores() schedule.Stores {
	return schedule.Stores{
		Bookings: NewBookingGormRepository(r.db),
		Blocks:   NewTimeBlockGormRepository(r.db),
	}
}

// Compile-time check
var _ schedule.TxRunner = (*GormTxRunner)(nil)
