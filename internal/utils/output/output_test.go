package output

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/law-makers/results/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func sampleRecords() []models.StudentRecord {
	return []models.StudentRecord{
		{
			HallTicket: "100000000001",
			Status:     models.StatusFound,
			PersonalDetails: &models.PersonalDetails{
				HallTicketNo: "100000000001",
				Name:         "JOHN DOE",
				FatherName:   "SMITH",
				Gender:       "M",
				Course:       "B.TECH",
			},
			Result: &models.ResultSummary{Semester: "II", SGPA: "PASSED-8.50", CGPA: "8.20"},
		},
		{HallTicket: "100000000002", Status: models.StatusNotFound, Message: "not found"},
		{HallTicket: "100000000003", Status: models.StatusFound},
	}
}

func TestSpreadsheetRows(t *testing.T) {
	rows := SpreadsheetRows(sampleRecords())
	require.Len(t, rows, 2, "one row per found record")
	assert.Equal(t, []string{"100000000001", "JOHN DOE", "SMITH", "M", "B.TECH", "PASSED-8.50", "8.20"}, rows[0])
	assert.Equal(t, []string{"100000000003", "", "", "", "", "", ""}, rows[1])
}

func TestDocumentRows(t *testing.T) {
	rows := DocumentRows(sampleRecords())
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"100000000001", "JOHN DOE", "PASSED-8.50", "8.20"}, rows[0])
	assert.Equal(t, []string{"100000000003", "N/A", "N/A", "N/A"}, rows[1])
}

func TestSaveCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.csv")
	require.NoError(t, Save(sampleRecords(), path))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, SpreadsheetHeader, rows[0])
	assert.Equal(t, "JOHN DOE", rows[1][1])
}

func TestSaveXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.xlsx")
	require.NoError(t, Save(sampleRecords(), path))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(SheetName)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, SpreadsheetHeader, rows[0])
	assert.Equal(t, "PASSED-8.50", rows[1][5])
	assert.Equal(t, "100000000003", rows[2][0])
}

func TestSavePDF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.pdf")
	require.NoError(t, Save(sampleRecords(), path))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(content), "%PDF-"))
}

func TestSavePDF_ManyPages(t *testing.T) {
	var records []models.StudentRecord
	for i := 0; i < 120; i++ {
		records = append(records, sampleRecords()[0])
	}
	path := filepath.Join(t.TempDir(), "many.pdf")
	require.NoError(t, SavePDF(records, "Results", path))
}

func TestSaveJSON_KeepsNotFound(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.json")
	require.NoError(t, Save(sampleRecords(), path))

	content, err := os.ReadFile(path)
	require.NoError(t, err)

	var got []models.StudentRecord
	require.NoError(t, json.Unmarshal(content, &got))
	require.Len(t, got, 3)
	assert.Equal(t, models.StatusNotFound, got[1].Status)
}

func TestRenderHTML_EscapesValues(t *testing.T) {
	records := []models.StudentRecord{{
		HallTicket:      "100000000001",
		Status:          models.StatusFound,
		PersonalDetails: &models.PersonalDetails{Name: "<b>X</b>"},
	}}
	report, err := RenderHTML(records, "Results")
	require.NoError(t, err)
	assert.Contains(t, report, "&lt;b&gt;X&lt;/b&gt;")
	assert.Contains(t, report, "<td>N/A</td>")
}

func TestRenderMarkdown_Table(t *testing.T) {
	mdStr, err := RenderMarkdown(sampleRecords(), "Results")
	require.NoError(t, err)

	assert.Contains(t, mdStr, "# Results")
	lines := strings.Split(mdStr, "\n")
	var tableRows []string
	for _, l := range lines {
		if strings.HasPrefix(strings.TrimSpace(l), "|") {
			tableRows = append(tableRows, l)
		}
	}
	require.Len(t, tableRows, 4, "header, divider and two records")
	assert.Contains(t, tableRows[0], "Hall Ticket No")
	assert.Contains(t, tableRows[2], "JOHN DOE")
	assert.Contains(t, tableRows[3], "N/A")
	assert.NotContains(t, mdStr, "border-collapse")
}

func TestSave_UnsupportedExtension(t *testing.T) {
	err := Save(sampleRecords(), filepath.Join(t.TempDir(), "results.txt"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), ".txt")
}

func TestCleanHTML(t *testing.T) {
	cleaned, err := CleanHTML(`<html><head><style>p{}</style></head><body><p class="x" style="y">hi</p><script>alert(1)</script></body></html>`)
	require.NoError(t, err)
	assert.Contains(t, cleaned, "<p>hi</p>")
	assert.NotContains(t, cleaned, "script")
	assert.NotContains(t, cleaned, "class=")
}
