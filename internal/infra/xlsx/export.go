package xlsx

import (
	"fmt"
	"io"

	"invite-quiz-service/internal/domain"

	"github.com/xuri/excelize/v2"
)

const (
	// SheetName is the worksheet holding the export.
	SheetName = "Invite Codes"
	// FileName is the suggested download name.
	FileName = "invite-codes.xlsx"
	// ContentType is the MIME type of the workbook.
	ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

var header = []interface{}{"Invite Code", "Created Date", "Status"}

// WriteInviteCodes renders rows as a single-sheet workbook into w.
func WriteInviteCodes(w io.Writer, rows []domain.ExportRow) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		values := []interface{}{row.Code, row.CreatedDate, row.Status}
		if err := f.SetSheetRow(SheetName, cell, &values); err != nil {
			return fmt.Errorf("write row %d: %w", i+1, err)
		}
	}
	if err := f.SetColWidth(SheetName, "A", "C", 20); err != nil {
		return fmt.Errorf("set column width: %w", err)
	}
	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}
