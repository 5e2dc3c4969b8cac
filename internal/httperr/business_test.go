package httperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

func TestIsBusiness(t *testing.T) {
	err := ErrBusiness("time_conflict")

	if !IsBusiness(err, "time_conflict") {
		t.Fatal("expected match on the code")
	}
	if IsBusiness(err, "other") {
		t.Fatal("different code must not match")
	}
	if IsBusiness(errors.New("plain"), "time_conflict") {
		t.Fatal("plain error must not match")
	}

	// códigos sobrevivem a wrapping
	wrapped := fmt.Errorf("saving: %w", err)
	if !IsBusiness(wrapped, "time_conflict") {
		t.Fatal("wrapped business error must still match")
	}
}

func TestIsExclusionConflict(t *testing.T) {
	exclusion := &pgconn.PgError{
		Code:           "23P01",
		ConstraintName: "time_blocks_no_overlap",
	}

	if !IsExclusionConflict(exclusion) {
		t.Fatal("23P01 must be detected")
	}
	if !IsExclusionConflict(fmt.Errorf("insert: %w", exclusion)) {
		t.Fatal("wrapped 23P01 must be detected")
	}
	if IsExclusionConflict(&pgconn.PgError{Code: "23505"}) {
		t.Fatal("unique violation is not an exclusion conflict")
	}
	if IsExclusionConflict(errors.New("plain")) {
		t.Fatal("plain error is not an exclusion conflict")
	}
}
