// Package extract turns a results page into a StudentRecord.
//
// The page is a legacy table layout: a personal-details table, a marks table
// and a semester summary table, each found by id. Every lookup returns an
// absent value instead of failing, and the caller decides whether absence
// matters. Only input that is not a page at all is an error.
package extract

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/law-makers/results/internal/engine"
	"github.com/law-makers/results/pkg/models"
	"github.com/rs/zerolog/log"
)

// NotFoundMessage is the record message for an unknown roll number
const NotFoundMessage = `Hall Ticket Number "%s" is not found.`

// Extractor parses results pages with a fixed Layout. It holds no mutable
// state, so one value may be shared across goroutines.
type Extractor struct {
	layout Layout
}

// New creates an Extractor. Zero fields of layout take their defaults.
func New(layout Layout) *Extractor {
	return &Extractor{layout: layout.withDefaults()}
}

// Layout returns the effective layout
func (x *Extractor) Layout() Layout {
	return x.layout
}

// Extract parses html, the page returned for htno
func (x *Extractor) Extract(html, htno string) (*models.StudentRecord, error) {
	trimmed := strings.TrimSpace(html)
	if len(trimmed) < x.layout.MinDocumentBytes {
		return nil, engine.NewEngineError(engine.ErrCodeParseError,
			fmt.Sprintf("response for %s is too short to be a results page", htno), nil).
			WithDetail("bytes", len(trimmed))
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(trimmed))
	if err != nil {
		return nil, engine.NewEngineError(engine.ErrCodeParseError, "failed to parse HTML", err)
	}

	return x.ExtractDocument(doc, htno)
}

// ExtractDocument runs the extraction steps over an already parsed page
func (x *Extractor) ExtractDocument(doc *goquery.Document, htno string) (*models.StudentRecord, error) {
	if x.notFound(doc) {
		return &models.StudentRecord{
			HallTicket: htno,
			Status:     models.StatusNotFound,
			Message:    fmt.Sprintf(NotFoundMessage, htno),
		}, nil
	}

	personal := doc.Find(x.layout.PersonalTable).First()
	marks := doc.Find(x.layout.MarksTable).First()
	result := doc.Find(x.layout.ResultTable).First()

	if personal.Length() == 0 && marks.Length() == 0 && result.Length() == 0 {
		return nil, engine.NewEngineError(engine.ErrCodeParseError,
			fmt.Sprintf("page for %s has none of the expected result tables", htno), nil)
	}

	rec := &models.StudentRecord{
		HallTicket: htno,
		Status:     models.StatusFound,
	}

	if personal.Length() > 0 {
		rec.PersonalDetails = x.personalDetails(personal)
	} else {
		log.Debug().Str("htno", htno).Str("table", x.layout.PersonalTable).Msg("Personal details table missing")
	}

	if marks.Length() > 0 {
		rec.Marks = x.markRows(marks)
	} else {
		log.Debug().Str("htno", htno).Str("table", x.layout.MarksTable).Msg("Marks table missing")
	}

	if result.Length() > 0 {
		rec.Result = x.resultSummary(result)
	} else {
		log.Debug().Str("htno", htno).Str("table", x.layout.ResultTable).Msg("Result table missing")
	}

	return rec, nil
}

// notFound reports whether the page carries the not-found banner
func (x *Extractor) notFound(doc *goquery.Document) bool {
	phrase := strings.ToLower(x.layout.NotFoundPhrase)
	found := false
	doc.Find(x.layout.NotFoundSelector).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if strings.Contains(strings.ToLower(s.Text()), phrase) {
			found = true
			return false
		}
		return true
	})
	return found
}

func (x *Extractor) personalDetails(table *goquery.Selection) *models.PersonalDetails {
	labels := x.layout.Labels
	pd := &models.PersonalDetails{
		HallTicketNo: labelValue(table, labels.HallTicketNo),
		FatherName:   labelValue(table, labels.FatherName),
		Gender:       labelValue(table, labels.Gender),
		Course:       labelValue(table, labels.Course),
	}
	pd.Name = CleanName(labelValue(table, labels.Name), pd.FatherName, x.layout.NameNoiseToken)
	return pd
}

// labelValue finds the cell whose text is label and returns the trimmed text
// of the cell right after it. Missing label or value yields "".
func labelValue(table *goquery.Selection, label string) string {
	want := normalizeLabel(label)
	cell := table.Find("td, th").FilterFunction(func(_ int, s *goquery.Selection) bool {
		return normalizeLabel(s.Text()) == want
	}).First()
	if cell.Length() == 0 {
		return ""
	}
	return cellText(cell.Next())
}

func (x *Extractor) markRows(table *goquery.Selection) []models.MarkRow {
	var rows []models.MarkRow
	table.Find("tr").Each(func(i int, tr *goquery.Selection) {
		if i < x.layout.MarksHeaderRows {
			return
		}
		cells := tr.ChildrenFiltered("td, th")
		if cells.Length() != markColumns {
			return
		}
		rows = append(rows, models.MarkRow{
			SubCode:       cellText(cells.Eq(0)),
			SubjectName:   cellText(cells.Eq(1)),
			Credits:       cellText(cells.Eq(2)),
			GradePoints:   cellText(cells.Eq(3)),
			GradeSecurity: cellText(cells.Eq(4)),
		})
	})
	return rows
}

// resultSummary picks the last row whose first cell is not blank
func (x *Extractor) resultSummary(table *goquery.Selection) *models.ResultSummary {
	rows := table.Find("tr")
	for i := rows.Length() - 1; i >= 0; i-- {
		cells := rows.Eq(i).ChildrenFiltered("td, th")
		if cells.Length() == 0 {
			continue
		}
		semester := cellText(cells.Eq(0))
		if semester == "" {
			continue
		}
		return &models.ResultSummary{
			Semester: semester,
			SGPA:     cellText(cells.Eq(1)),
			CGPA:     cellText(cells.Eq(2)),
		}
	}
	return nil
}

// cellText is the trimmed nested text of s; an empty selection gives ""
func cellText(s *goquery.Selection) string {
	if s.Length() == 0 {
		return ""
	}
	return strings.TrimSpace(s.Text())
}

func normalizeLabel(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	s = strings.TrimSpace(strings.TrimSuffix(s, ":"))
	return strings.ToLower(s)
}
