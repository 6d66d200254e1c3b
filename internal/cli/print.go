package cli

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/law-makers/results/internal/ui"
	"github.com/law-makers/results/internal/utils/output"
	"github.com/law-makers/results/pkg/models"
)

func newTable(w io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetOutputMirror(w)
	return t
}

// printRecord renders one record as its three tables
func printRecord(w io.Writer, rec *models.StudentRecord) {
	if !rec.Found() {
		fmt.Fprintln(w, ui.Info(rec.Message))
		return
	}

	if pd := rec.PersonalDetails; pd != nil {
		t := newTable(w)
		t.SetTitle("Student")
		t.AppendRows([]table.Row{
			{"Hall Ticket No", pd.HallTicketNo},
			{"Name", pd.Name},
			{"Father's Name", pd.FatherName},
			{"Gender", pd.Gender},
			{"Course", pd.Course},
		})
		t.Render()
	}

	if len(rec.Marks) > 0 {
		t := newTable(w)
		t.SetTitle("Marks")
		t.AppendHeader(table.Row{"Code", "Subject", "Credits", "Grade Points", "Grade"})
		for _, m := range rec.Marks {
			t.AppendRow(table.Row{m.SubCode, m.SubjectName, m.Credits, m.GradePoints, m.GradeSecurity})
		}
		t.Render()
	}

	if r := rec.Result; r != nil {
		t := newTable(w)
		t.SetTitle("Result")
		t.AppendHeader(table.Row{"Semester", "SGPA", "CGPA"})
		t.AppendRow(table.Row{r.Semester, r.SGPA, r.CGPA})
		t.Render()
	}
}

// printSummary renders one line per record of a range
func printSummary(w io.Writer, records []models.StudentRecord) {
	t := newTable(w)
	t.AppendHeader(table.Row{"#", "Hall Ticket No", "Name", "SGPA", "CGPA", "Status"})

	found := 0
	for i, rec := range records {
		row := table.Row{i + 1, rec.HallTicket, "", "", "", ui.Status(rec.Found())}
		if rec.Found() {
			found++
			if pd := rec.PersonalDetails; pd != nil {
				row[2] = pd.Name
			}
			if r := rec.Result; r != nil {
				row[3] = r.SGPA
				row[4] = r.CGPA
			}
		}
		t.AppendRow(row)
	}
	t.AppendFooter(table.Row{"", "", "", "", "Found", fmt.Sprintf("%d/%d", found, len(records))})
	t.Render()
}

// exportFormats lists the accepted -o extensions for help text
func exportFormats() string {
	return fmt.Sprint(output.Formats)
}
