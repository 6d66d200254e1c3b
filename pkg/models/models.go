package models

// RecordStatus reports whether the portal knew the requested roll number
type RecordStatus string

const (
	StatusFound    RecordStatus = "FOUND"
	StatusNotFound RecordStatus = "NOT_FOUND"
)

// StudentRecord is the normalized result of one roll number lookup.
//
// When Status is StatusNotFound only HallTicket and Message are set. When
// Status is StatusFound each of PersonalDetails, Marks and Result may be
// absent independently, mirroring tables the page left out.
type StudentRecord struct {
	HallTicket      string           `json:"hallTicket"`
	Status          RecordStatus     `json:"status"`
	Message         string           `json:"message,omitempty"`
	PersonalDetails *PersonalDetails `json:"personalDetails,omitempty"`
	Marks           []MarkRow        `json:"marks,omitempty"`
	Result          *ResultSummary   `json:"result,omitempty"`
}

// Found reports whether the record carries scraped data
func (r *StudentRecord) Found() bool {
	return r != nil && r.Status == StatusFound
}

// PersonalDetails holds the student identity table
type PersonalDetails struct {
	HallTicketNo string `json:"hallTicketNo"`
	Name         string `json:"name"`
	FatherName   string `json:"fatherName"`
	Gender       string `json:"gender"`
	Course       string `json:"course"`
}

// MarkRow is one subject line of the marks table
type MarkRow struct {
	SubCode       string `json:"subCode"`
	SubjectName   string `json:"subjectName"`
	Credits       string `json:"credits"`
	GradePoints   string `json:"gradePoints"`
	GradeSecurity string `json:"gradeSecurity"`
}

// ResultSummary is the latest semester summary row. SGPA and CGPA keep the
// portal's own encoding (e.g. "PASSED-8.50").
type ResultSummary struct {
	Semester string `json:"semester"`
	SGPA     string `json:"sgpa"`
	CGPA     string `json:"cgpa"`
}

// LookupRequest is the inbound contract for a single lookup
type LookupRequest struct {
	URL  string `json:"url"`
	HTNo string `json:"htno"`
}

// RangeRequest asks for every roll number in [From, To]
type RangeRequest struct {
	URL  string `json:"url"`
	From string `json:"from"`
	To   string `json:"to"`
}

// RangeFailure describes the roll number that halted a range fetch
type RangeFailure struct {
	HallTicket string `json:"hallTicket"`
	Code       string `json:"code"`
	Message    string `json:"message"`
}

// RangeResult is the ordered outcome of a range fetch. Records is always the
// prefix gathered before Failure, if any.
type RangeResult struct {
	Records []StudentRecord `json:"data"`
	Failure *RangeFailure   `json:"error,omitempty"`
}
