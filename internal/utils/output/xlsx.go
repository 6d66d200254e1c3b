package output

import (
	"github.com/law-makers/results/pkg/models"
	"github.com/xuri/excelize/v2"
)

// SheetName is the worksheet the spreadsheet export writes to
const SheetName = "Results"

// SaveXLSX writes the spreadsheet columns of every found record to an
// Excel workbook at filepath.
func SaveXLSX(records []models.StudentRecord, filepath string) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return err
	}

	sw, err := f.NewStreamWriter(SheetName)
	if err != nil {
		return err
	}
	if err := sw.SetColWidth(1, 1, 18); err != nil {
		return err
	}
	if err := sw.SetColWidth(2, 3, 32); err != nil {
		return err
	}

	if err := sw.SetRow("A1", toCells(SpreadsheetHeader)); err != nil {
		return err
	}
	for i, row := range SpreadsheetRows(records) {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := sw.SetRow(cell, toCells(row)); err != nil {
			return err
		}
	}
	if err := sw.Flush(); err != nil {
		return err
	}
	return f.SaveAs(filepath)
}

func toCells(row []string) []interface{} {
	cells := make([]interface{}, len(row))
	for i, v := range row {
		cells[i] = v
	}
	return cells
}
