package output

import (
	"os"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/JohannesKaufmann/html-to-markdown/plugin"
	"github.com/law-makers/results/pkg/models"
)

// RenderMarkdown converts the HTML report into a GitHub-flavoured table
func RenderMarkdown(records []models.StudentRecord, title string) (string, error) {
	report, err := RenderHTML(records, title)
	if err != nil {
		return "", err
	}
	cleaned, err := CleanHTML(report)
	if err != nil {
		return "", err
	}

	converter := md.NewConverter("", true, nil)
	converter.Use(plugin.GitHubFlavored())
	return converter.ConvertString(cleaned)
}

// SaveMarkdown writes the Markdown report to filepath
func SaveMarkdown(records []models.StudentRecord, title, filepath string) error {
	mdStr, err := RenderMarkdown(records, title)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath, []byte(mdStr+"\n"), 0644)
}
