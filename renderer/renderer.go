// Package renderer renders analyses as markdown documents.
package renderer

import (
	"embed"
	"fmt"
	"io/fs"
	"strings"
	"text/template"

	"github.com/etnz/riskreturn"
)

//go:embed *.md
var templates embed.FS

// RenderReport renders the full analysis report.
func RenderReport(r *Report) string {
	partials := map[string]string{
		"report_title":      "report_title.md",
		"report_prices":     "report_prices.md",
		"report_statistics": "report_statistics.md",
		"report_matrices":   "report_matrices.md",
		"report_portfolio":  "report_portfolio.md",
		"report_allocation": "report_allocation.md",
		"report_capm":       "report_capm.md",
		"report_warnings":   "report_warnings.md",
	}
	return renderTemplate("report", "report.md", partials, r)
}

// RenderAllocation renders only the allocation section.
func RenderAllocation(r *Report) string {
	partials := map[string]string{
		"report_allocation": "report_allocation.md",
		"report_warnings":   "report_warnings.md",
	}
	return renderTemplate("allocation", "allocation.md", partials, r)
}

// RenderCAPM renders only the CAPM section.
func RenderCAPM(r *Report) string {
	partials := map[string]string{
		"report_capm":     "report_capm.md",
		"report_warnings": "report_warnings.md",
	}
	return renderTemplate("capm", "capm.md", partials, r)
}

// Markdown renders the full report of an analysis.
func Markdown(a *riskreturn.Analysis) string { return RenderReport(NewReport(a)) }

// renderTemplate is a generic utility to render a main template that depends on several partials.
func renderTemplate(templateName, mainFile string, partials map[string]string, data any) string {
	mainContent, err := fs.ReadFile(templates, mainFile)
	if err != nil {
		return fmt.Sprintf("error reading main template %q: %v", mainFile, err)
	}

	tmpl, err := template.New(templateName).Parse(string(mainContent))
	if err != nil {
		return fmt.Sprintf("error parsing main template %q: %v", mainFile, err)
	}

	for name, file := range partials {
		content, err := fs.ReadFile(templates, file)
		if err != nil {
			return fmt.Sprintf("error reading partial template %q: %v", file, err)
		}
		if _, err := tmpl.New(name).Parse(string(content)); err != nil {
			return fmt.Sprintf("error parsing partial template %q for %q: %v", file, name, err)
		}
	}

	var b strings.Builder
	if err := tmpl.ExecuteTemplate(&b, templateName, data); err != nil {
		return fmt.Sprintf("error executing template %q: %v", templateName, err)
	}
	return b.String()
}
