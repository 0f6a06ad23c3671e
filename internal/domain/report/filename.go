package report

import (
	"regexp"
	"strings"
)

var whitespaceRun = regexp.MustCompile(`\s+`)

// FileName derives the report's file name from the patient's display
// name, whitespace collapsed to underscores. Used both for the stored
// artifact and the download attachment name.
func FileName(patientName string) string {
	name := strings.TrimSpace(patientName)
	if name == "" {
		name = "usuario"
	}
	return "Relatorio-" + whitespaceRun.ReplaceAllString(name, "_") + ".pdf"
}
