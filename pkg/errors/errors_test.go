package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestValidationError(t *testing.T) {
	ve := NewValidationError()
	if !ve.Empty() {
		t.Fatal("new ValidationError should be empty")
	}
	ve.Add("rows[0].name", "is required")
	ve.Add("rows[0].name", "second message ignored")
	ve.Add("rows[2].age", "must be at least 0")

	if ve.Empty() {
		t.Fatal("ValidationError should not be empty after Add")
	}
	if ve.Fields["rows[0].name"] != "is required" {
		t.Errorf("first message should win, got %q", ve.Fields["rows[0].name"])
	}

	var err error = ve
	if !errors.Is(err, ErrValidation) {
		t.Error("ValidationError should unwrap to ErrValidation")
	}
	wrapped := fmt.Errorf("submit casualties: %w", err)
	var target *ValidationError
	if !errors.As(wrapped, &target) {
		t.Fatal("errors.As should find ValidationError through wrapping")
	}
	if !strings.Contains(err.Error(), "rows[0].name: is required; rows[2].age") {
		t.Errorf("unexpected message ordering: %s", err.Error())
	}
}

func TestPersistence(t *testing.T) {
	err := Persistence("replace agriculture reports", errors.New("deadlock detected"))
	if !errors.Is(err, ErrPersistence) {
		t.Error("Persistence should wrap ErrPersistence")
	}
	if !strings.Contains(err.Error(), "deadlock detected") {
		t.Errorf("underlying message lost: %s", err.Error())
	}
}
