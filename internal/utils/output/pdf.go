package output

import (
	"fmt"

	"github.com/jung-kurt/gofpdf"
	"github.com/law-makers/results/pkg/models"
)

var pdfColumnWidths = []float64{40, 80, 35, 35}

// SavePDF writes a printable results table to filepath
func SavePDF(records []models.StudentRecord, title, filepath string) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle(title, true)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 10, tr(title), "", 1, "C", false, 0, "")
	pdf.Ln(2)

	header := func() {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.SetFillColor(230, 230, 230)
		for i, h := range DocumentHeader {
			pdf.CellFormat(pdfColumnWidths[i], 8, h, "1", 0, "C", true, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetFont("Helvetica", "", 10)
	}
	header()

	rows := DocumentRows(records)
	_, pageHeight := pdf.GetPageSize()
	_, _, _, bottom := pdf.GetMargins()
	for _, row := range rows {
		if pdf.GetY()+7 > pageHeight-bottom {
			pdf.AddPage()
			header()
		}
		for i, v := range row {
			align := "L"
			if i != 1 {
				align = "C"
			}
			pdf.CellFormat(pdfColumnWidths[i], 7, tr(v), "1", 0, align, false, 0, "")
		}
		pdf.Ln(-1)
	}

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "I", 9)
	pdf.CellFormat(0, 6, fmt.Sprintf("%d record(s)", len(rows)), "", 1, "R", false, 0, "")

	return pdf.OutputFileAndClose(filepath)
}
