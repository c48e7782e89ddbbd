package validate

import (
	"strings"
	"testing"
)

type sample struct {
	Name    string   `json:"name" validate:"required"`
	Options []string `json:"options" validate:"len=2,dive,required"`
}

func TestStructReportsJSONFieldNames(t *testing.T) {
	err := Struct(&sample{Options: []string{"a", ""}})
	if err == nil {
		t.Fatalf("expected validation error")
	}
	msg := err.Error()
	if !strings.Contains(msg, "name required") || !strings.Contains(msg, "options[1] required") {
		t.Fatalf("unexpected message %q", msg)
	}
}

func TestStructAcceptsValid(t *testing.T) {
	if err := Struct(sample{Name: "x", Options: []string{"a", "b"}}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestStructRejectsNonStruct(t *testing.T) {
	if err := Struct("nope"); err == nil {
		t.Fatalf("expected error for non-struct")
	}
	if err := Struct(nil); err == nil {
		t.Fatalf("expected error for nil")
	}
}
