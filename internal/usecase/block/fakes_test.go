package block

import (
	"context"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/ericfrick132/beauty-salon-sub003/internal/audit"
	"github.com/ericfrick132/beauty-salon-sub003/internal/domain/schedule"
	"github.com/ericfrick132/beauty-salon-sub003/internal/models"
)

// Fakes em memória sobre as mesmas interfaces que as implementações gorm
// cumprem. A transação tira snapshot e restaura em erro, para os testes
// enxergarem a mesma atomicidade do banco.

type fakeBookings struct {
	items []models.Booking
}

func (f *fakeBookings) FindOverlapping(
	ctx context.Context,
	staffID uint,
	start time.Time,
	end time.Time,
	excludeCancelled bool,
) ([]models.Booking, error) {

	var out []models.Booking
	for _, b := range f.items {
		if b.StaffID != staffID {
			continue
		}
		if excludeCancelled && b.Status == "cancelled" {
			continue
		}
		if schedule.IntervalsOverlap(start, end, b.StartTime, b.EndTime) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeBookings) SetStatus(ctx context.Context, bookingID uint, status string) error {
	for i := range f.items {
		if f.items[i].ID == bookingID {
			f.items[i].Status = status
		}
	}
	return nil
}

func (f *fakeBookings) byID(id uint) *models.Booking {
	for i := range f.items {
		if f.items[i].ID == id {
			return &f.items[i]
		}
	}
	return nil
}

type fakeBlocks struct {
	nextID uint
	items  []models.TimeBlock
}

func (f *fakeBlocks) FindOverlapping(
	ctx context.Context,
	staffID uint,
	start time.Time,
	end time.Time,
	excludeBlockID uint,
) ([]models.TimeBlock, error) {

	var mine []models.TimeBlock
	for _, tb := range f.items {
		if tb.StaffID == staffID {
			mine = append(mine, tb)
		}
	}
	return schedule.FilterOverlappingBlocks(mine, start, end, excludeBlockID), nil
}

func (f *fakeBlocks) GetByID(ctx context.Context, salonID, blockID uint) (*models.TimeBlock, error) {
	for _, tb := range f.items {
		if tb.ID == blockID && tb.SalonID == salonID {
			cp := tb
			return &cp, nil
		}
	}
	return nil, schedule.NotFoundError{Entity: "time_block"}
}

func (f *fakeBlocks) Insert(ctx context.Context, tb *models.TimeBlock) error {
	f.nextID++
	tb.ID = f.nextID
	f.items = append(f.items, *tb)
	return nil
}

func (f *fakeBlocks) Update(ctx context.Context, tb *models.TimeBlock) error {
	for i := range f.items {
		if f.items[i].ID == tb.ID {
			f.items[i] = *tb
			return nil
		}
	}
	return schedule.NotFoundError{Entity: "time_block"}
}

func (f *fakeBlocks) Delete(ctx context.Context, blockID uint) error {
	for i := range f.items {
		if f.items[i].ID == blockID {
			f.items = append(f.items[:i], f.items[i+1:]...)
			return nil
		}
	}
	return schedule.NotFoundError{Entity: "time_block"}
}

func (f *fakeBlocks) ListBySeries(ctx context.Context, salonID uint, seriesID string) ([]models.TimeBlock, error) {
	var out []models.TimeBlock
	for _, tb := range f.items {
		if tb.SalonID == salonID && tb.SeriesID != nil && *tb.SeriesID == seriesID {
			out = append(out, tb)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].StartTime.Before(out[j].StartTime)
	})
	return out, nil
}

func (f *fakeBlocks) DeleteBySeries(ctx context.Context, salonID uint, seriesID string) (int64, error) {
	var kept []models.TimeBlock
	var removed int64
	for _, tb := range f.items {
		if tb.SalonID == salonID && tb.SeriesID != nil && *tb.SeriesID == seriesID {
			removed++
			continue
		}
		kept = append(kept, tb)
	}
	f.items = kept
	return removed, nil
}

type fakeTx struct {
	bookings *fakeBookings
	blocks   *fakeBlocks
}

func (f *fakeTx) Stores() schedule.Stores {
	return schedule.Stores{Bookings: f.bookings, Blocks: f.blocks}
}

func (f *fakeTx) InTx(ctx context.Context, fn func(s schedule.Stores) error) error {
	bookingsSnap := append([]models.Booking(nil), f.bookings.items...)
	blocksSnap := append([]models.TimeBlock(nil), f.blocks.items...)

	if err := fn(f.Stores()); err != nil {
		f.bookings.items = bookingsSnap
		f.blocks.items = blocksSnap
		return err
	}
	return nil
}

type fakeLocker struct {
	acquired int
}

func (l *fakeLocker) LockStaff(ctx context.Context, staffID uint) (func(), error) {
	l.acquired++
	return func() {}, nil
}

type fakeSettings struct {
	st *schedule.Settings
}

func (f *fakeSettings) ScheduleSettings(ctx context.Context, salonID uint) (*schedule.Settings, error) {
	return f.st, nil
}

type noopSink struct{}

func (noopSink) Log(uint, *uint, string, string, *uint, any) error {
	return nil
}

// --------------------------------------------------
// Ambiente padrão dos testes
// --------------------------------------------------

const (
	testSalonID = uint(1)
	testStaffID = uint(10)
)

type env struct {
	bookings *fakeBookings
	blocks   *fakeBlocks
	tx       *fakeTx
	locker   *fakeLocker
	settings *fakeSettings
	audit    *audit.Dispatcher
}

func newEnv() *env {
	bookings := &fakeBookings{}
	blocks := &fakeBlocks{}

	return &env{
		bookings: bookings,
		blocks:   blocks,
		tx:       &fakeTx{bookings: bookings, blocks: blocks},
		locker:   &fakeLocker{},
		settings: &fakeSettings{st: &schedule.Settings{
			OffsetHours:       -3,
			OpenTime:          "09:00",
			CloseTime:         "18:00",
			ClosedWeekdays:    map[time.Weekday]bool{},
			MinAdvanceMinutes: 60,
		}},
		audit: audit.NewDispatcher(noopSink{}, zap.NewNop()),
	}
}

// utcAt monta um instante UTC equivalente ao horário local de parede (-3)
// do dia 2026-04-13 + dayOffset.
func utcAt(dayOffset, h, m int) time.Time {
	local := time.Date(2026, 4, 13+dayOffset, h, m, 0, 0, time.UTC)
	return local.Add(3 * time.Hour)
}

func (e *env) addBooking(id uint, status string, start, end time.Time) {
	e.bookings.items = append(e.bookings.items, models.Booking{
		ID:        id,
		SalonID:   testSalonID,
		StaffID:   testStaffID,
		Status:    status,
		StartTime: start,
		EndTime:   end,
	})
}

func (e *env) addBlock(start, end time.Time, seriesID *string) uint {
	tb := models.TimeBlock{
		SalonID:   testSalonID,
		StaffID:   testStaffID,
		StartTime: start,
		EndTime:   end,
		SeriesID:  seriesID,
	}
	_ = e.blocks.Insert(context.Background(), &tb)
	return tb.ID
}
