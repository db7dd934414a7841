package render

import "strings"

// momentTokens maps moment.js format tokens to Go reference-time layout
// fragments. Ordered longest-first so the scanner takes the greediest
// match. Bracketed literals ("[at]") are not supported; existing templates
// do not use them.
var momentTokens = []struct {
	token  string
	layout string
}{
	{"YYYY", "2006"},
	{"dddd", "Monday"},
	{"MMMM", "January"},
	{"MMM", "Jan"},
	{"ddd", "Mon"},
	{"YY", "06"},
	{"MM", "01"},
	{"DD", "02"},
	{"HH", "15"},
	{"hh", "03"},
	{"mm", "04"},
	{"ss", "05"},
	{"ZZ", "-0700"},
	{"LT", "3:04 PM"},
	{"LL", "January 2, 2006"},
	{"L", "01/02/2006"},
	{"M", "1"},
	{"D", "2"},
	{"H", "15"},
	{"h", "3"},
	{"m", "4"},
	{"s", "5"},
	{"A", "PM"},
	{"a", "pm"},
	{"Z", "-07:00"},
}

// MomentLayout translates a moment.js format string into a Go time layout.
// Unrecognized characters pass through verbatim.
func MomentLayout(format string) string {
	var sb strings.Builder
	for i := 0; i < len(format); {
		matched := false
		for _, tok := range momentTokens {
			if strings.HasPrefix(format[i:], tok.token) {
				sb.WriteString(tok.layout)
				i += len(tok.token)
				matched = true
				break
			}
		}
		if !matched {
			sb.WriteByte(format[i])
			i++
		}
	}
	return sb.String()
}
