package render

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"meetnote/internal/record"
)

// Helper names as templates invoke them. The helper_ prefix is part of the
// template contract carried over from existing user templates.
const (
	HelperFirstWord  = "helper_firstWord"
	HelperDateFormat = "helper_dateFormat"
)

// DefaultHelpers returns the registry of section helpers available to note
// and filename templates.
func DefaultHelpers() Registry {
	return Registry{
		HelperFirstWord:  firstWord,
		HelperDateFormat: dateFormat,
	}
}

// firstWord renders the section body and keeps only its leading run of
// word characters, for terse placeholders like a first name.
func firstWord(raw string, renderInner func(string) (string, error)) (string, error) {
	rendered, err := renderInner(raw)
	if err != nil {
		return "", err
	}
	for i, r := range rendered {
		if !isWordRune(r) {
			return rendered[:i], nil
		}
	}
	return rendered, nil
}

func isWordRune(r rune) bool {
	return r == '_' ||
		(r >= '0' && r <= '9') ||
		(r >= 'a' && r <= 'z') ||
		(r >= 'A' && r <= 'Z')
}

// dateFormat reformats a date-bearing value. The section body has the form
// "<inner-template>|<output-format>": the inner template is rendered,
// parsed as a date/time, and formatted per the output format, which uses
// moment.js tokens for compatibility with existing templates.
func dateFormat(raw string, renderInner func(string) (string, error)) (string, error) {
	parts := strings.SplitN(raw, "|", 2)
	if len(parts) != 2 {
		return "", errors.New("dateFormat: section body must be <template>|<format>")
	}
	rendered, err := renderInner(parts[0])
	if err != nil {
		return "", err
	}
	value := strings.TrimSpace(rendered)

	t, ok := parseHelperDate(value)
	if !ok {
		return "", fmt.Errorf("dateFormat: cannot parse %q as a date", value)
	}
	return t.Format(MomentLayout(parts[1])), nil
}

func parseHelperDate(s string) (time.Time, bool) {
	if t, ok := record.ParseInstant(s); ok {
		return t, true
	}
	if t, err := time.ParseInLocation(record.DateLayout, s, time.Local); err == nil {
		return t, true
	}
	return time.Time{}, false
}
