package output

import (
	"encoding/csv"
	"os"

	"github.com/law-makers/results/pkg/models"
)

// SaveCSV writes the spreadsheet columns of every found record to filepath
func SaveCSV(records []models.StudentRecord, filepath string) error {
	file, err := os.Create(filepath)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write(SpreadsheetHeader); err != nil {
		return err
	}
	if err := writer.WriteAll(SpreadsheetRows(records)); err != nil {
		return err
	}
	return writer.Error()
}
