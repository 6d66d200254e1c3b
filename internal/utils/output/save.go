package output

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/law-makers/results/pkg/models"
)

// DefaultTitle heads printable exports
const DefaultTitle = "Examination Results"

// Formats lists the export extensions Save understands
var Formats = []string{".xlsx", ".csv", ".pdf", ".json", ".html", ".md"}

// Save exports records to path, choosing the format from its extension
func Save(records []models.StudentRecord, path string) error {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".xlsx":
		return SaveXLSX(records, path)
	case ".csv":
		return SaveCSV(records, path)
	case ".pdf":
		return SavePDF(records, DefaultTitle, path)
	case ".json":
		return SaveJSON(records, path)
	case ".html", ".htm":
		return SaveHTML(records, DefaultTitle, path)
	case ".md":
		return SaveMarkdown(records, DefaultTitle, path)
	default:
		return fmt.Errorf("unsupported output format %q (use one of %s)", ext, strings.Join(Formats, ", "))
	}
}
