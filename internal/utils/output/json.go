package output

import (
	"encoding/json"
	"os"

	"github.com/law-makers/results/pkg/models"
)

// SaveJSON writes the full record list, NOT_FOUND entries included, to filepath
func SaveJSON(records []models.StudentRecord, filepath string) error {
	if records == nil {
		records = []models.StudentRecord{}
	}
	content, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath, content, 0644)
}
