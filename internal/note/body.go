package note

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	appLog "meetnote/internal/log"
	"meetnote/internal/record"
)

// bodyFallbacks are tried in order when the record has no usable body
// field. The list reflects what invite producers are known to emit.
var bodyFallbacks = []string{"bodyText", "bodyPlainText", "bodyHtml", "rtfCompressed"}

var whitespaceRe = regexp.MustCompile(`\s+`)

// ensureBody guarantees rec has a body string. Fallback candidates that
// look like HTML are reduced to their text content. When every candidate
// is missing or blank the body becomes empty text; this is a recoverable
// degradation, never an error.
func ensureBody(rec *record.Record) {
	if strings.TrimSpace(rec.Body()) != "" {
		return
	}
	for _, key := range bodyFallbacks {
		v, ok := rec.Get(key)
		if !ok {
			continue
		}
		candidate, isString := v.(string)
		if !isString || strings.TrimSpace(candidate) == "" {
			continue
		}
		if strings.Contains(candidate, "<") {
			candidate = htmlToText(candidate)
		}
		appLog.Debug("body taken from fallback field", "field", key)
		rec.Set(record.FieldBody, candidate)
		return
	}
	rec.Set(record.FieldBody, "")
}

// htmlToText reduces an HTML fragment to whitespace-collapsed text.
// Parsing failures fall back to the raw input rather than losing content.
func htmlToText(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		appLog.Warn("html body parse failed, keeping raw text", "err", err)
		return html
	}
	doc.Find("script, style").Remove()
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(doc.Text(), " "))
}
