package textutil

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// HTMLToText flattens an HTML fragment to its text content with runs of
// whitespace collapsed. Line breaks become spaces.
func HTMLToText(s string) string {
	if !strings.ContainsAny(s, "<&") {
		return collapseSpace(s)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader("<body>" + s + "</body>"))
	if err != nil {
		return collapseSpace(s)
	}
	body := doc.Find("body")
	body.Find("br").ReplaceWithHtml(" ")
	return collapseSpace(body.Text())
}

// Cleanup prepares a title, byline or clue for a puzzle-file writer. Markup
// is flattened unless preserveHTML is set; the result is always Latin-1 safe.
func Cleanup(s string, preserveHTML bool) string {
	if !preserveHTML {
		s = HTMLToText(s)
	}
	return strings.TrimSpace(ToLatin1(s))
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
