package extract

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/law-makers/results/internal/engine"
	"github.com/law-makers/results/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testHTNo = "123456789012"

const personalTable = `
<table id="AutoNumber3" width="100%" border="1">
  <tr>
    <td width="20%"><b>Hall Ticket No.</b></td>
    <td width="30%"><b> 123456789012 </b></td>
    <td width="20%"><b>Name</b></td>
    <td width="30%"><b>JOHN DOECreditsSMITH</b></td>
  </tr>
  <tr>
    <td><b>Father's Name</b></td>
    <td><b>SMITH</b></td>
    <td><b>Gender</b></td>
    <td><b>M</b></td>
  </tr>
  <tr>
    <td><b>Course:</b></td>
    <td><font>B.TECH</font></td>
  </tr>
</table>`

const marksTable = `
<table id="AutoNumber4" width="100%" border="1">
  <tr><td colspan="5"><b>MARKS DETAILS</b></td></tr>
  <tr><td>SUBJECT CODE</td><td>SUBJECT NAME</td><td>CREDITS</td><td>GRADE POINTS</td><td>GRADE SECURED</td></tr>
  <tr><td> CS501 </td><td>COMPILER DESIGN</td><td>3</td><td>9</td><td>A+</td></tr>
  <tr><td colspan="5">&nbsp;</td></tr>
  <tr><td>CS502</td><td> COMPUTER NETWORKS </td><td>3</td><td>8</td><td>A</td></tr>
  <tr><td>CS503</td><td>DATA MINING</td><td>2</td><td>0</td><td>F</td></tr>
</table>`

const resultTable = `
<table id="AutoNumber5" width="100%" border="1">
  <tr><td>SEMESTER</td><td>SGPA</td><td>CGPA</td></tr>
  <tr><td>I</td><td>PASSED-7.90</td><td>7.90</td></tr>
  <tr><td> II </td><td> PASSED-8.50 </td><td>8.20</td></tr>
  <tr><td>  </td><td></td><td></td></tr>
  <tr><td>&nbsp;</td><td>&nbsp;</td><td>&nbsp;</td></tr>
</table>`

const notFoundBanner = `<p align="center"><font color="red" size="4">Hall Ticket Number Not Found</font></p>`

func page(parts ...string) string {
	return `<!DOCTYPE html PUBLIC "-//W3C//DTD HTML 4.01 Transitional//EN">
<html><head><title>Results</title></head>
<body>
<form method="post"><input type="hidden" name="mbstatus" value="SEARCH"></form>
` + strings.Join(parts, "\n") + `
</body></html>`
}

func newTestExtractor() *Extractor {
	return New(DefaultLayout())
}

func TestExtract_FullPage(t *testing.T) {
	rec, err := newTestExtractor().Extract(page(personalTable, marksTable, resultTable), testHTNo)
	require.NoError(t, err)

	want := &models.StudentRecord{
		HallTicket: testHTNo,
		Status:     models.StatusFound,
		PersonalDetails: &models.PersonalDetails{
			HallTicketNo: "123456789012",
			Name:         "JOHN DOE",
			FatherName:   "SMITH",
			Gender:       "M",
			Course:       "B.TECH",
		},
		Marks: []models.MarkRow{
			{SubCode: "CS501", SubjectName: "COMPILER DESIGN", Credits: "3", GradePoints: "9", GradeSecurity: "A+"},
			{SubCode: "CS502", SubjectName: "COMPUTER NETWORKS", Credits: "3", GradePoints: "8", GradeSecurity: "A"},
			{SubCode: "CS503", SubjectName: "DATA MINING", Credits: "2", GradePoints: "0", GradeSecurity: "F"},
		},
		Result: &models.ResultSummary{Semester: "II", SGPA: "PASSED-8.50", CGPA: "8.20"},
	}

	if diff := cmp.Diff(want, rec); diff != "" {
		t.Errorf("record mismatch (-want +got):\n%s", diff)
	}
}

func TestExtract_NotFound(t *testing.T) {
	rec, err := newTestExtractor().Extract(page(notFoundBanner), testHTNo)
	require.NoError(t, err)

	assert.Equal(t, models.StatusNotFound, rec.Status)
	assert.Equal(t, `Hall Ticket Number "123456789012" is not found.`, rec.Message)
	assert.Nil(t, rec.PersonalDetails)
	assert.Nil(t, rec.Marks)
	assert.Nil(t, rec.Result)
}

func TestExtract_NotFoundTakesPrecedence(t *testing.T) {
	html := page(personalTable, notFoundBanner, marksTable, resultTable)

	rec, err := newTestExtractor().Extract(html, testHTNo)
	require.NoError(t, err)

	assert.Equal(t, models.StatusNotFound, rec.Status)
	assert.Nil(t, rec.PersonalDetails)
	assert.Empty(t, rec.Marks)
	assert.Nil(t, rec.Result)
}

func TestExtract_NotFoundPhraseOutsideMarkerIgnored(t *testing.T) {
	html := page(`<p>Results not found? Contact the examination branch.</p>`, personalTable)

	rec, err := newTestExtractor().Extract(html, testHTNo)
	require.NoError(t, err)
	assert.Equal(t, models.StatusFound, rec.Status)
}

func TestExtract_MissingTablesAreOmitted(t *testing.T) {
	cases := []struct {
		name         string
		html         string
		wantPersonal bool
		wantMarks    bool
		wantResult   bool
	}{
		{"no personal", page(marksTable, resultTable), false, true, true},
		{"no marks", page(personalTable, resultTable), true, false, true},
		{"no result", page(personalTable, marksTable), true, true, false},
		{"personal only", page(personalTable), true, false, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec, err := newTestExtractor().Extract(tc.html, testHTNo)
			require.NoError(t, err)
			assert.Equal(t, models.StatusFound, rec.Status)
			assert.Equal(t, tc.wantPersonal, rec.PersonalDetails != nil)
			assert.Equal(t, tc.wantMarks, rec.Marks != nil)
			assert.Equal(t, tc.wantResult, rec.Result != nil)
		})
	}
}

func TestExtract_MissingLabelGivesEmptyField(t *testing.T) {
	table := `<table id="AutoNumber3"><tr><td>Name</td><td>JANE ROE</td></tr></table>`

	rec, err := newTestExtractor().Extract(page(table), testHTNo)
	require.NoError(t, err)
	require.NotNil(t, rec.PersonalDetails)
	assert.Equal(t, "JANE ROE", rec.PersonalDetails.Name)
	assert.Equal(t, "", rec.PersonalDetails.FatherName)
	assert.Equal(t, "", rec.PersonalDetails.Course)
}

func TestExtract_MarksSkipsHeaderRowsByPosition(t *testing.T) {
	// Both leading rows have five cells and would otherwise be emitted.
	table := `<table id="AutoNumber4">
  <tr><td>a</td><td>b</td><td>c</td><td>d</td><td>e</td></tr>
  <tr><td>f</td><td>g</td><td>h</td><td>i</td><td>j</td></tr>
  <tr><td>X1</td><td>ONE</td><td>1</td><td>10</td><td>O</td></tr>
  <tr><td>only</td><td>four</td><td>cells</td><td>here</td></tr>
  <tr><td>X2</td><td>TWO</td><td>2</td><td>9</td><td>A+</td></tr>
  <tr><td>six</td><td>cells</td><td>are</td><td>not</td><td>a</td><td>subject</td></tr>
</table>`

	rec, err := newTestExtractor().Extract(page(table), testHTNo)
	require.NoError(t, err)
	require.Len(t, rec.Marks, 2)
	assert.Equal(t, "X1", rec.Marks[0].SubCode)
	assert.Equal(t, "X2", rec.Marks[1].SubCode)
	assert.Equal(t, "A+", rec.Marks[1].GradeSecurity)
}

func TestExtract_MarksTableWithOnlyHeaders(t *testing.T) {
	table := `<table id="AutoNumber4">
  <tr><td colspan="5">MARKS</td></tr>
  <tr><td>a</td><td>b</td><td>c</td><td>d</td><td>e</td></tr>
</table>`

	rec, err := newTestExtractor().Extract(page(table), testHTNo)
	require.NoError(t, err)
	assert.Empty(t, rec.Marks)
}

func TestExtract_ResultSelectsLastNonBlankRow(t *testing.T) {
	rec, err := newTestExtractor().Extract(page(resultTable), testHTNo)
	require.NoError(t, err)
	require.NotNil(t, rec.Result)
	assert.Equal(t, "II", rec.Result.Semester)
	assert.Equal(t, "PASSED-8.50", rec.Result.SGPA)
	assert.Equal(t, "8.20", rec.Result.CGPA)
}

func TestExtract_ResultAllBlankRowsOmitted(t *testing.T) {
	table := `<table id="AutoNumber5">
  <tr><td> </td><td>x</td><td>y</td></tr>
  <tr><td></td><td></td><td></td></tr>
</table>`

	rec, err := newTestExtractor().Extract(page(personalTable, table), testHTNo)
	require.NoError(t, err)
	assert.Nil(t, rec.Result)
}

func TestExtract_ResultShortRowReadsBlankCells(t *testing.T) {
	table := `<table id="AutoNumber5"><tr><td>III</td></tr></table>`

	rec, err := newTestExtractor().Extract(page(table), testHTNo)
	require.NoError(t, err)
	require.NotNil(t, rec.Result)
	assert.Equal(t, models.ResultSummary{Semester: "III"}, *rec.Result)
}

func TestExtract_ParseErrors(t *testing.T) {
	cases := map[string]string{
		"empty":      "",
		"whitespace": "   \n\t  ",
		"too short":  "<html><body>oops</body></html>",
		"no tables":  page(`<p>The server is busy, please try again later.</p>`),
	}

	for name, html := range cases {
		t.Run(name, func(t *testing.T) {
			rec, err := newTestExtractor().Extract(html, testHTNo)
			require.Error(t, err)
			assert.Nil(t, rec)
			assert.ErrorIs(t, err, engine.ErrParseError)
			assert.Equal(t, engine.ErrCodeParseError, engine.CodeOf(err))
		})
	}
}

func TestExtract_IsPure(t *testing.T) {
	x := newTestExtractor()
	html := page(personalTable, marksTable, resultTable)

	first, err := x.Extract(html, testHTNo)
	require.NoError(t, err)
	second, err := x.Extract(html, testHTNo)
	require.NoError(t, err)

	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("repeated extraction differs (-first +second):\n%s", diff)
	}
}

func TestExtract_CustomLayout(t *testing.T) {
	layout := DefaultLayout()
	layout.NotFoundSelector = "div.alert"
	layout.NotFoundPhrase = "no record"
	layout.PersonalTable = "#student"

	html := page(`<div class="alert">No record exists</div>`)
	rec, err := New(layout).Extract(html, testHTNo)
	require.NoError(t, err)
	assert.Equal(t, models.StatusNotFound, rec.Status)

	html = page(`<table id="student"><tr><td>Gender</td><td>F</td></tr></table>`)
	rec, err = New(layout).Extract(html, testHTNo)
	require.NoError(t, err)
	require.NotNil(t, rec.PersonalDetails)
	assert.Equal(t, "F", rec.PersonalDetails.Gender)
}
