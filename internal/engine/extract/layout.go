package extract

// Labels are the personal-details label cells, matched after trimming
// whitespace and a trailing colon, case-insensitively.
type Labels struct {
	HallTicketNo string `yaml:"hallTicketNo"`
	Name         string `yaml:"name"`
	FatherName   string `yaml:"fatherName"`
	Gender       string `yaml:"gender"`
	Course       string `yaml:"course"`
}

// Layout names every structural assumption about the results page. The
// portal's phrasing and ids are heuristics; override them here rather than
// in code when the page changes.
type Layout struct {
	// NotFoundSelector and NotFoundPhrase locate the "no such roll number" banner.
	NotFoundSelector string `yaml:"notFoundSelector"`
	NotFoundPhrase   string `yaml:"notFoundPhrase"`

	PersonalTable string `yaml:"personalTable"`
	MarksTable    string `yaml:"marksTable"`
	ResultTable   string `yaml:"resultTable"`

	Labels Labels `yaml:"labels"`

	// NameNoiseToken is boilerplate the portal glues onto the name cell.
	NameNoiseToken string `yaml:"nameNoiseToken"`

	// MarksHeaderRows leading rows of the marks table are skipped by position.
	MarksHeaderRows int `yaml:"marksHeaderRows"`

	// MinDocumentBytes is the shortest trimmed input treated as a page.
	MinDocumentBytes int `yaml:"minDocumentBytes"`
}

// markColumns is the cell count of a subject row
const markColumns = 5

// Default layout values
const (
	DefaultNotFoundSelector = "font"
	DefaultNotFoundPhrase   = "not found"
	DefaultPersonalTable    = "#AutoNumber3"
	DefaultMarksTable       = "#AutoNumber4"
	DefaultResultTable      = "#AutoNumber5"
	DefaultNameNoiseToken   = "Credits"
	DefaultMarksHeaderRows  = 2
	DefaultMinDocumentBytes = 100
)

// DefaultLayout returns the layout of the results portal
func DefaultLayout() Layout {
	return Layout{
		NotFoundSelector: DefaultNotFoundSelector,
		NotFoundPhrase:   DefaultNotFoundPhrase,
		PersonalTable:    DefaultPersonalTable,
		MarksTable:       DefaultMarksTable,
		ResultTable:      DefaultResultTable,
		Labels: Labels{
			HallTicketNo: "Hall Ticket No.",
			Name:         "Name",
			FatherName:   "Father's Name",
			Gender:       "Gender",
			Course:       "Course",
		},
		NameNoiseToken:   DefaultNameNoiseToken,
		MarksHeaderRows:  DefaultMarksHeaderRows,
		MinDocumentBytes: DefaultMinDocumentBytes,
	}
}

// withDefaults fills zero fields of l from DefaultLayout. A negative
// MarksHeaderRows means zero.
func (l Layout) withDefaults() Layout {
	d := DefaultLayout()
	if l.NotFoundSelector == "" {
		l.NotFoundSelector = d.NotFoundSelector
	}
	if l.NotFoundPhrase == "" {
		l.NotFoundPhrase = d.NotFoundPhrase
	}
	if l.PersonalTable == "" {
		l.PersonalTable = d.PersonalTable
	}
	if l.MarksTable == "" {
		l.MarksTable = d.MarksTable
	}
	if l.ResultTable == "" {
		l.ResultTable = d.ResultTable
	}
	if l.Labels.HallTicketNo == "" {
		l.Labels.HallTicketNo = d.Labels.HallTicketNo
	}
	if l.Labels.Name == "" {
		l.Labels.Name = d.Labels.Name
	}
	if l.Labels.FatherName == "" {
		l.Labels.FatherName = d.Labels.FatherName
	}
	if l.Labels.Gender == "" {
		l.Labels.Gender = d.Labels.Gender
	}
	if l.Labels.Course == "" {
		l.Labels.Course = d.Labels.Course
	}
	if l.NameNoiseToken == "" {
		l.NameNoiseToken = d.NameNoiseToken
	}
	if l.MarksHeaderRows == 0 {
		l.MarksHeaderRows = d.MarksHeaderRows
	} else if l.MarksHeaderRows < 0 {
		l.MarksHeaderRows = 0
	}
	if l.MinDocumentBytes <= 0 {
		l.MinDocumentBytes = d.MinDocumentBytes
	}
	return l
}
