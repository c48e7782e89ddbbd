package xlsx

import (
	"bytes"
	"testing"

	"invite-quiz-service/internal/domain"

	"github.com/xuri/excelize/v2"
)

func TestWriteInviteCodes(t *testing.T) {
	rows := []domain.ExportRow{
		{Code: "ABC123", CreatedDate: "2026-10-15", Status: "Used"},
		{Code: "QUIZ-XYZ78901", CreatedDate: "2026-10-14", Status: "Available"},
	}
	var buf bytes.Buffer
	if err := WriteInviteCodes(&buf, rows); err != nil {
		t.Fatalf("write: %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer f.Close()

	got, err := f.GetRows(SheetName)
	if err != nil {
		t.Fatalf("get rows: %v", err)
	}
	want := [][]string{
		{"Invite Code", "Created Date", "Status"},
		{"ABC123", "2026-10-15", "Used"},
		{"QUIZ-XYZ78901", "2026-10-14", "Available"},
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d rows, got %d: %v", len(want), len(got), got)
	}
	for i := range want {
		for j := range want[i] {
			if got[i][j] != want[i][j] {
				t.Fatalf("cell (%d,%d) = %q, want %q", i, j, got[i][j], want[i][j])
			}
		}
	}
}

func TestWriteInviteCodesEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteInviteCodes(&buf, nil); err != nil {
		t.Fatalf("write: %v", err)
	}
	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer f.Close()
	rows, _ := f.GetRows(SheetName)
	if len(rows) != 1 {
		t.Fatalf("expected header only, got %v", rows)
	}
}
