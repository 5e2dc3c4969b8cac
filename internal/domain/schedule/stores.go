package schedule

import (
	"context"
	"time"

	"github.com/ericfrick132/beauty-salon-sub003/internal/models"
)

// Interfaces de persistência consumidas pela agenda. As implementações gorm
// vivem em internal/infra/repository.

type BookingStore interface {
	// FindOverlapping devolve agendamentos do profissional que sobrepõem
	// [start, end), ordenados por início. Com excludeCancelled, cancelados
	// ficam de fora.
	FindOverlapping(
		ctx context.Context,
		staffID uint,
		start time.Time,
		end time.Time,
		excludeCancelled bool,
	) ([]models.Booking, error)

	SetStatus(
		ctx context.Context,
		bookingID uint,
		status string,
	) error
}

type BlockStore interface {
	// FindOverlapping devolve blocos do profissional que sobrepõem
	// [start, end). excludeBlockID diferente de zero ignora o próprio bloco.
	FindOverlapping(
		ctx context.Context,
		staffID uint,
		start time.Time,
		end time.Time,
		excludeBlockID uint,
	) ([]models.TimeBlock, error)

	GetByID(
		ctx context.Context,
		salonID uint,
		blockID uint,
	) (*models.TimeBlock, error)

	Insert(ctx context.Context, tb *models.TimeBlock) error
	Update(ctx context.Context, tb *models.TimeBlock) error
	Delete(ctx context.Context, blockID uint) error

	// ListBySeries devolve os membros da série ordenados por início.
	ListBySeries(
		ctx context.Context,
		salonID uint,
		seriesID string,
	) ([]models.TimeBlock, error)

	// DeleteBySeries remove a série inteira e devolve quantos blocos saíram.
	DeleteBySeries(
		ctx context.Context,
		salonID uint,
		seriesID string,
	) (int64, error)
}

// Stores agrupa os dois lados tocados por uma mutação de agenda.
type Stores struct {
	Bookings BookingStore
	Blocks   BlockStore
}

// TxRunner executa fn dentro de uma transação: ou todas as escritas da
// chamada ficam visíveis, ou nenhuma. Cancelamentos forçados e a gravação
// do bloco compensador entram sempre na mesma unidade.
type TxRunner interface {
	InTx(ctx context.Context, fn func(s Stores) error) error

	// Stores dá acesso fora de transação, para leituras que precedem o lock.
	Stores() Stores
}

// StaffLocker serializa escritores concorrentes sobre a agenda do mesmo
// profissional. A implementação redis vive em internal/cache.
type StaffLocker interface {
	LockStaff(ctx context.Context, staffID uint) (release func(), err error)
}
