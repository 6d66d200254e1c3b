package output

import "github.com/law-makers/results/pkg/models"

// NotAvailable stands in for missing fields in printable documents
const NotAvailable = "N/A"

// SpreadsheetHeader names the spreadsheet columns
var SpreadsheetHeader = []string{"Hall Ticket No", "Name", "Father's Name", "Gender", "Course", "SGPA", "CGPA"}

// DocumentHeader names the printable document columns
var DocumentHeader = []string{"Hall Ticket No", "Name", "SGPA", "CGPA"}

// SpreadsheetRows returns one row per found record. Missing fields are blank.
func SpreadsheetRows(records []models.StudentRecord) [][]string {
	var rows [][]string
	for _, rec := range records {
		if !rec.Found() {
			continue
		}
		row := []string{hallTicket(rec), "", "", "", "", "", ""}
		if pd := rec.PersonalDetails; pd != nil {
			row[1] = pd.Name
			row[2] = pd.FatherName
			row[3] = pd.Gender
			row[4] = pd.Course
		}
		if r := rec.Result; r != nil {
			row[5] = r.SGPA
			row[6] = r.CGPA
		}
		rows = append(rows, row)
	}
	return rows
}

// DocumentRows returns one row per found record with NotAvailable for
// missing fields.
func DocumentRows(records []models.StudentRecord) [][]string {
	var rows [][]string
	for _, rec := range records {
		if !rec.Found() {
			continue
		}
		row := []string{orNA(hallTicket(rec)), NotAvailable, NotAvailable, NotAvailable}
		if pd := rec.PersonalDetails; pd != nil {
			row[1] = orNA(pd.Name)
		}
		if r := rec.Result; r != nil {
			row[2] = orNA(r.SGPA)
			row[3] = orNA(r.CGPA)
		}
		rows = append(rows, row)
	}
	return rows
}

func hallTicket(rec models.StudentRecord) string {
	if rec.PersonalDetails != nil && rec.PersonalDetails.HallTicketNo != "" {
		return rec.PersonalDetails.HallTicketNo
	}
	return rec.HallTicket
}

func orNA(s string) string {
	if s == "" {
		return NotAvailable
	}
	return s
}
