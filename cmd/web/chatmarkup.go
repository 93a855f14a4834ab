package main

import (
	"html/template"
	"regexp"
	"strings"
)

var (
	boldPattern   = regexp.MustCompile(`\*\*(.*?)\*\*`)
	italicPattern = regexp.MustCompile(`\*([^*\s][^*]*)\*`)
)

// chatMarkup renders the light markdown of assistant replies: **bold**, *italic* and "• " bullet lines.
// The text is escaped before any markup is added.
func chatMarkup(text string) template.HTML {
	var b strings.Builder
	for _, line := range strings.Split(text, "\n") {
		formatted := template.HTMLEscapeString(line)
		formatted = boldPattern.ReplaceAllString(formatted, "<strong>$1</strong>")
		formatted = italicPattern.ReplaceAllString(formatted, "<em>$1</em>")
		switch {
		case strings.TrimSpace(formatted) == "":
			b.WriteString(`<div class="gap"></div>`)
		case strings.HasPrefix(line, "• "):
			b.WriteString(`<div class="bullet">` + formatted + `</div>`)
		default:
			b.WriteString(`<div>` + formatted + `</div>`)
		}
	}
	return template.HTML(b.String()) //nolint:gosec // input is escaped above.
}
