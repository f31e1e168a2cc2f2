package services

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const wordsPerMinute = 200

// PlainText strips markup from an HTML fragment.
func PlainText(body string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return body
	}
	doc.Find("script, style").Remove()
	return doc.Text()
}

// EstimateReadingTime returns the minutes needed to read body, never less than
// one for a non-empty body.
func EstimateReadingTime(body string) int {
	words := len(strings.Fields(PlainText(body)))
	if words == 0 {
		return 0
	}
	minutes := (words + wordsPerMinute - 1) / wordsPerMinute
	return max(minutes, 1)
}
