package block

import (
	"context"
	"testing"

	"github.com/ericfrick132/beauty-salon-sub003/internal/domain/schedule"
)

// --------------------------------------------------
// DeleteSingleBlock
// --------------------------------------------------

func TestDeleteSingleBlock_Removes(t *testing.T) {
	e := newEnv()
	id := e.addBlock(utcAt(0, 12, 0), utcAt(0, 13, 0), nil)

	uc := NewDeleteSingleBlock(e.tx, e.audit)

	if err := uc.Execute(context.Background(), testSalonID, id); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(e.blocks.items) != 0 {
		t.Fatalf("expected empty store, got %d blocks", len(e.blocks.items))
	}
}

func TestDeleteSingleBlock_LeavesSiblingsAlone(t *testing.T) {
	e := newEnv()
	_, ids := seedSeries(e, 3)

	uc := NewDeleteSingleBlock(e.tx, e.audit)

	if err := uc.Execute(context.Background(), testSalonID, ids[1]); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(e.blocks.items) != 2 {
		t.Fatalf("expected 2 remaining members, got %d", len(e.blocks.items))
	}
}

func TestDeleteSingleBlock_NotFound(t *testing.T) {
	e := newEnv()
	uc := NewDeleteSingleBlock(e.tx, e.audit)

	err := uc.Execute(context.Background(), testSalonID, 999)
	if !schedule.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}

// --------------------------------------------------
// DeleteWholeSeries
// --------------------------------------------------

func TestDeleteWholeSeries_RemovesAllMembers(t *testing.T) {
	e := newEnv()
	sid, _ := seedSeries(e, 4)
	solo := e.addBlock(utcAt(6, 12, 0), utcAt(6, 13, 0), nil)

	uc := NewDeleteWholeSeries(e.tx, e.audit)

	removed, err := uc.Execute(context.Background(), testSalonID, sid)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if removed != 4 {
		t.Fatalf("removed = %d, want 4", removed)
	}

	// bloco avulso não pertence à série e sobrevive
	if _, err := e.blocks.GetByID(context.Background(), testSalonID, solo); err != nil {
		t.Fatalf("unrelated block should survive: %v", err)
	}
}

func TestDeleteWholeSeries_UnknownSeries(t *testing.T) {
	e := newEnv()
	uc := NewDeleteWholeSeries(e.tx, e.audit)

	_, err := uc.Execute(context.Background(), testSalonID, "nope")
	if !schedule.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}

// --------------------------------------------------
// DeleteThisAndFollowing
// --------------------------------------------------

func TestDeleteThisAndFollowing_FromPivotOnwards(t *testing.T) {
	e := newEnv()
	sid, ids := seedSeries(e, 5)

	uc := NewDeleteThisAndFollowing(e.tx, e.audit)

	removed, err := uc.Execute(context.Background(), testSalonID, ids[2])
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if removed != 3 {
		t.Fatalf("removed = %d, want 3", removed)
	}

	members, _ := e.blocks.ListBySeries(context.Background(), testSalonID, sid)
	if len(members) != 2 {
		t.Fatalf("expected 2 earlier members left, got %d", len(members))
	}
	if members[0].ID != ids[0] || members[1].ID != ids[1] {
		t.Fatalf("wrong members survived: %+v", members)
	}
}

func TestDeleteThisAndFollowing_PivotFirstRemovesAll(t *testing.T) {
	e := newEnv()
	_, ids := seedSeries(e, 3)

	uc := NewDeleteThisAndFollowing(e.tx, e.audit)

	removed, err := uc.Execute(context.Background(), testSalonID, ids[0])
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if removed != 3 || len(e.blocks.items) != 0 {
		t.Fatalf("removed = %d, remaining = %d", removed, len(e.blocks.items))
	}
}

func TestDeleteThisAndFollowing_PivotLastRemovesOne(t *testing.T) {
	e := newEnv()
	_, ids := seedSeries(e, 3)

	uc := NewDeleteThisAndFollowing(e.tx, e.audit)

	removed, err := uc.Execute(context.Background(), testSalonID, ids[2])
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if removed != 1 || len(e.blocks.items) != 2 {
		t.Fatalf("removed = %d, remaining = %d", removed, len(e.blocks.items))
	}
}

func TestDeleteThisAndFollowing_NoSeriesDeletesAlone(t *testing.T) {
	e := newEnv()
	id := e.addBlock(utcAt(0, 12, 0), utcAt(0, 13, 0), nil)

	uc := NewDeleteThisAndFollowing(e.tx, e.audit)

	removed, err := uc.Execute(context.Background(), testSalonID, id)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if removed != 1 || len(e.blocks.items) != 0 {
		t.Fatalf("removed = %d, remaining = %d", removed, len(e.blocks.items))
	}
}
