package block

import (
	"context"
	"testing"

	"github.com/ericfrick132/beauty-salon-sub003/internal/domain/schedule"
	"github.com/ericfrick132/beauty-salon-sub003/internal/models"
)

// seedSeries grava uma série diária de n membros (12:00-13:00 local),
// começando na segunda 2026-04-13, e devolve o id da série e os ids dos blocos.
func seedSeries(e *env, n int) (string, []uint) {
	sid := "11111111-2222-3333-4444-555555555555"
	rec := schedule.Recurrence{StartTime: "12:00", EndTime: "13:00"}

	var ids []uint
	for i := 0; i < n; i++ {
		s := sid
		tb := models.TimeBlock{
			SalonID:    testSalonID,
			StaffID:    testStaffID,
			StartTime:  utcAt(i, 12, 0),
			EndTime:    utcAt(i, 13, 0),
			SeriesID:   &s,
			Recurrence: rec.Serialize(),
		}
		_ = e.blocks.Insert(context.Background(), &tb)
		ids = append(ids, tb.ID)
	}
	return sid, ids
}

func strPtr(s string) *string { return &s }

// --------------------------------------------------
// UpdateSingleBlock
// --------------------------------------------------

func TestUpdateSingleBlock_Moves(t *testing.T) {
	e := newEnv()
	id := e.addBlock(utcAt(0, 12, 0), utcAt(0, 13, 0), nil)

	uc := NewUpdateSingleBlock(e.tx, e.locker, e.audit)

	result, err := uc.Execute(context.Background(), UpdateSingleBlockInput{
		SalonID: testSalonID,
		BlockID: id,
		Start:   utcAt(0, 15, 0),
		End:     utcAt(0, 16, 0),
		Reason:  strPtr("dentista"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !result.Block.StartTime.Equal(utcAt(0, 15, 0)) {
		t.Fatalf("start = %s", result.Block.StartTime)
	}
	if result.Block.Reason != "dentista" {
		t.Fatalf("reason = %s", result.Block.Reason)
	}
}

func TestUpdateSingleBlock_OwnIntervalExcluded(t *testing.T) {
	e := newEnv()
	id := e.addBlock(utcAt(0, 12, 0), utcAt(0, 13, 0), nil)

	uc := NewUpdateSingleBlock(e.tx, e.locker, e.audit)

	// encolher dentro do próprio intervalo não conflita consigo mesmo
	_, err := uc.Execute(context.Background(), UpdateSingleBlockInput{
		SalonID: testSalonID,
		BlockID: id,
		Start:   utcAt(0, 12, 15),
		End:     utcAt(0, 12, 45),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestUpdateSingleBlock_BlockConflictRejected(t *testing.T) {
	e := newEnv()
	id := e.addBlock(utcAt(0, 12, 0), utcAt(0, 13, 0), nil)
	e.addBlock(utcAt(0, 15, 0), utcAt(0, 16, 0), nil)

	uc := NewUpdateSingleBlock(e.tx, e.locker, e.audit)

	_, err := uc.Execute(context.Background(), UpdateSingleBlockInput{
		SalonID: testSalonID,
		BlockID: id,
		Start:   utcAt(0, 15, 30),
		End:     utcAt(0, 16, 30),
		Force:   true, // irrelevante para bloco-a-bloco
	})

	ce, ok := schedule.AsConflict(err)
	if !ok || ce.Code != "block_conflict" {
		t.Fatalf("expected block_conflict, got %v", err)
	}

	// horário original preservado
	tb, _ := e.blocks.GetByID(context.Background(), testSalonID, id)
	if !tb.StartTime.Equal(utcAt(0, 12, 0)) {
		t.Fatalf("block should keep its time, got %s", tb.StartTime)
	}
}

func TestUpdateSingleBlock_KeepsSeriesLink(t *testing.T) {
	e := newEnv()
	sid, ids := seedSeries(e, 3)

	uc := NewUpdateSingleBlock(e.tx, e.locker, e.audit)

	result, err := uc.Execute(context.Background(), UpdateSingleBlockInput{
		SalonID: testSalonID,
		BlockID: ids[1],
		Start:   utcAt(1, 15, 0),
		End:     utcAt(1, 16, 0),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Block.SeriesID == nil || *result.Block.SeriesID != sid {
		t.Fatal("single update must not detach the member from its series")
	}
}

func TestUpdateSingleBlock_NotFound(t *testing.T) {
	e := newEnv()
	uc := NewUpdateSingleBlock(e.tx, e.locker, e.audit)

	_, err := uc.Execute(context.Background(), UpdateSingleBlockInput{
		SalonID: testSalonID,
		BlockID: 999,
		Start:   utcAt(0, 12, 0),
		End:     utcAt(0, 13, 0),
	})
	if !schedule.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}

// --------------------------------------------------
// UpdateWholeSeries
// --------------------------------------------------

func TestUpdateWholeSeries_AppliesReasonAndTimes(t *testing.T) {
	e := newEnv()
	sid, ids := seedSeries(e, 3)

	uc := NewUpdateWholeSeries(e.tx, e.locker, e.settings, e.audit)

	result, err := uc.Execute(context.Background(), UpdateWholeSeriesInput{
		SalonID:        testSalonID,
		SeriesID:       sid,
		Reason:         strPtr("férias"),
		StartTimeOfDay: strPtr("15:00"),
		EndTimeOfDay:   strPtr("16:00"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.MembersUpdated != 3 {
		t.Fatalf("members updated = %d, want 3", result.MembersUpdated)
	}

	for i, id := range ids {
		tb, _ := e.blocks.GetByID(context.Background(), testSalonID, id)
		if tb.Reason != "férias" {
			t.Fatalf("member %d reason = %s", i, tb.Reason)
		}
		// cada membro move na própria data
		if !tb.StartTime.Equal(utcAt(i, 15, 0)) || !tb.EndTime.Equal(utcAt(i, 16, 0)) {
			t.Fatalf("member %d = %s-%s", i, tb.StartTime, tb.EndTime)
		}
		rec, _ := schedule.ParseRecurrence(tb.Recurrence)
		if rec.StartTime != "15:00" || rec.EndTime != "16:00" {
			t.Fatalf("member %d recurrence not refreshed: %+v", i, rec)
		}
	}
}

func TestUpdateWholeSeries_ConflictingMemberKeepsTimeButGetsReason(t *testing.T) {
	e := newEnv()
	sid, ids := seedSeries(e, 3)

	// agendamento na terça, sobrepondo o horário novo
	e.addBooking(7, "confirmed", utcAt(1, 15, 30), utcAt(1, 16, 30))

	uc := NewUpdateWholeSeries(e.tx, e.locker, e.settings, e.audit)

	result, err := uc.Execute(context.Background(), UpdateWholeSeriesInput{
		SalonID:        testSalonID,
		SeriesID:       sid,
		Reason:         strPtr("férias"),
		StartTimeOfDay: strPtr("15:00"),
		EndTimeOfDay:   strPtr("16:00"),
	})
	if err != nil {
		t.Fatalf("partial update is not an error: %v", err)
	}

	// reason persiste em todos, inclusive no membro pulado
	if result.MembersUpdated != 3 {
		t.Fatalf("members updated = %d, want 3", result.MembersUpdated)
	}
	if result.BookingsCancelled != 0 {
		t.Fatalf("cancelled = %d, want 0", result.BookingsCancelled)
	}

	blocked, _ := e.blocks.GetByID(context.Background(), testSalonID, ids[1])
	if !blocked.StartTime.Equal(utcAt(1, 12, 0)) {
		t.Fatalf("conflicting member must keep its time, got %s", blocked.StartTime)
	}
	if blocked.Reason != "férias" {
		t.Fatal("reason still applies to the skipped member")
	}

	moved, _ := e.blocks.GetByID(context.Background(), testSalonID, ids[0])
	if !moved.StartTime.Equal(utcAt(0, 15, 0)) {
		t.Fatalf("non-conflicting member should move, got %s", moved.StartTime)
	}
	if e.bookings.byID(7).Status != "confirmed" {
		t.Fatal("booking must stay untouched without force")
	}
}

func TestUpdateWholeSeries_ForceCancelsAndMoves(t *testing.T) {
	e := newEnv()
	sid, ids := seedSeries(e, 3)
	e.addBooking(7, "confirmed", utcAt(1, 15, 30), utcAt(1, 16, 30))

	uc := NewUpdateWholeSeries(e.tx, e.locker, e.settings, e.audit)

	result, err := uc.Execute(context.Background(), UpdateWholeSeriesInput{
		SalonID:        testSalonID,
		SeriesID:       sid,
		StartTimeOfDay: strPtr("15:00"),
		EndTimeOfDay:   strPtr("16:00"),
		Force:          true,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.BookingsCancelled != 1 {
		t.Fatalf("cancelled = %d, want 1", result.BookingsCancelled)
	}
	if e.bookings.byID(7).Status != "cancelled" {
		t.Fatal("conflicting booking should be cancelled")
	}

	moved, _ := e.blocks.GetByID(context.Background(), testSalonID, ids[1])
	if !moved.StartTime.Equal(utcAt(1, 15, 0)) {
		t.Fatalf("member should move with force, got %s", moved.StartTime)
	}
}

func TestUpdateWholeSeries_UnknownSeries(t *testing.T) {
	e := newEnv()
	uc := NewUpdateWholeSeries(e.tx, e.locker, e.settings, e.audit)

	_, err := uc.Execute(context.Background(), UpdateWholeSeriesInput{
		SalonID:  testSalonID,
		SeriesID: "nope",
		Reason:   strPtr("x"),
	})
	if !schedule.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestUpdateWholeSeries_InvalidTimePair(t *testing.T) {
	e := newEnv()
	sid, _ := seedSeries(e, 2)

	uc := NewUpdateWholeSeries(e.tx, e.locker, e.settings, e.audit)

	_, err := uc.Execute(context.Background(), UpdateWholeSeriesInput{
		SalonID:        testSalonID,
		SeriesID:       sid,
		StartTimeOfDay: strPtr("16:00"),
		EndTimeOfDay:   strPtr("15:00"),
	})
	if !schedule.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

// --------------------------------------------------
// UpdateThisAndFollowing
// --------------------------------------------------

func TestUpdateThisAndFollowing_SplitsSeries(t *testing.T) {
	e := newEnv()
	sid, ids := seedSeries(e, 5)

	uc := NewUpdateThisAndFollowing(e.tx, e.locker, e.settings, e.audit)

	result, err := uc.Execute(context.Background(), UpdateThisAndFollowingInput{
		SalonID:        testSalonID,
		BlockID:        ids[2],
		StartTimeOfDay: strPtr("15:00"),
		EndTimeOfDay:   strPtr("16:00"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.NewSeriesID == "" || result.NewSeriesID == sid {
		t.Fatalf("expected a fresh series id, got %q", result.NewSeriesID)
	}
	if result.MembersUpdated != 3 {
		t.Fatalf("members updated = %d, want 3", result.MembersUpdated)
	}

	// anteriores intactos na série original
	for _, id := range ids[:2] {
		tb, _ := e.blocks.GetByID(context.Background(), testSalonID, id)
		if *tb.SeriesID != sid {
			t.Fatalf("earlier member moved to new series: %+v", tb)
		}
		if !tb.StartTime.Equal(utcAt(int(id-1), 12, 0)) {
			t.Fatalf("earlier member should keep its time, got %s", tb.StartTime)
		}
	}

	// do pivô em diante: série nova e horário novo
	for i, id := range ids[2:] {
		tb, _ := e.blocks.GetByID(context.Background(), testSalonID, id)
		if *tb.SeriesID != result.NewSeriesID {
			t.Fatalf("member %d not detached", i)
		}
		if !tb.StartTime.Equal(utcAt(i+2, 15, 0)) {
			t.Fatalf("member %d = %s", i, tb.StartTime)
		}
	}

	members, _ := e.blocks.ListBySeries(context.Background(), testSalonID, sid)
	if len(members) != 2 {
		t.Fatalf("original series should keep 2 members, got %d", len(members))
	}
}

func TestUpdateThisAndFollowing_SplitPersistsEvenWithoutChanges(t *testing.T) {
	e := newEnv()
	sid, ids := seedSeries(e, 3)

	uc := NewUpdateThisAndFollowing(e.tx, e.locker, e.settings, e.audit)

	// patch vazio: nada muda nos campos, mas o destaque de série é gravado
	result, err := uc.Execute(context.Background(), UpdateThisAndFollowingInput{
		SalonID: testSalonID,
		BlockID: ids[1],
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.MembersUpdated != 0 {
		t.Fatalf("members updated = %d, want 0", result.MembersUpdated)
	}

	newMembers, _ := e.blocks.ListBySeries(context.Background(), testSalonID, result.NewSeriesID)
	if len(newMembers) != 2 {
		t.Fatalf("detached series should hold 2 members, got %d", len(newMembers))
	}
	oldMembers, _ := e.blocks.ListBySeries(context.Background(), testSalonID, sid)
	if len(oldMembers) != 1 {
		t.Fatalf("original series should hold 1 member, got %d", len(oldMembers))
	}
}

func TestUpdateThisAndFollowing_NoSeriesPatchesAlone(t *testing.T) {
	e := newEnv()
	id := e.addBlock(utcAt(0, 12, 0), utcAt(0, 13, 0), nil)

	uc := NewUpdateThisAndFollowing(e.tx, e.locker, e.settings, e.audit)

	result, err := uc.Execute(context.Background(), UpdateThisAndFollowingInput{
		SalonID: testSalonID,
		BlockID: id,
		Reason:  strPtr("imprevisto"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.NewSeriesID != "" {
		t.Fatal("block without series must not gain one")
	}
	if result.MembersUpdated != 1 {
		t.Fatalf("members updated = %d, want 1", result.MembersUpdated)
	}

	tb, _ := e.blocks.GetByID(context.Background(), testSalonID, id)
	if tb.Reason != "imprevisto" || tb.SeriesID != nil {
		t.Fatalf("unexpected state: %+v", tb)
	}
}
