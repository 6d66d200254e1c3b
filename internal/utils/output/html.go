package output

import (
	"bytes"
	"html/template"
	"os"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/law-makers/results/pkg/models"
	"golang.org/x/net/html"
)

var reportTemplate = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: sans-serif; margin: 2em; }
table { border-collapse: collapse; width: 100%; }
th, td { border: 1px solid #444; padding: 4px 8px; }
th { background: #e6e6e6; }
@media print { body { margin: 0; } }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
<table>
<thead><tr>{{range .Header}}<th>{{.}}</th>{{end}}</tr></thead>
<tbody>
{{range .Rows}}<tr>{{range .}}<td>{{.}}</td>{{end}}</tr>
{{end}}</tbody>
</table>
<p>{{len .Rows}} record(s)</p>
</body>
</html>
`))

// RenderHTML returns a printable HTML report with the document columns
func RenderHTML(records []models.StudentRecord, title string) (string, error) {
	var buf bytes.Buffer
	err := reportTemplate.Execute(&buf, struct {
		Title  string
		Header []string
		Rows   [][]string
	}{title, DocumentHeader, DocumentRows(records)})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}

// SaveHTML writes the printable HTML report to filepath
func SaveHTML(records []models.StudentRecord, title, filepath string) error {
	report, err := RenderHTML(records, title)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath, []byte(report), 0644)
}

// CleanHTML drops presentational elements and every attribute so only the
// document structure is left for converters.
func CleanHTML(htmlContent string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlContent))
	if err != nil {
		return "", err
	}

	doc.Find("script, style, link, meta, noscript").Remove()

	doc.Find("*").Each(func(i int, s *goquery.Selection) {
		for _, node := range s.Nodes {
			if node.Type == html.ElementNode {
				node.Attr = nil
			}
		}
	})

	htmlStr, err := doc.Html()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(htmlStr), nil
}
