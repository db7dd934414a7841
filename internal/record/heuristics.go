package record

import "strings"

// The producer schema for recurrence metadata is not fixed, so detection
// works off empirically-observed key names. Both sets are package variables
// rather than literals so they can be extended as new producers show up;
// neither is a guaranteed-complete enumeration.
var (
	// booleanRecurrenceClues are keys whose boolean value states recurrence
	// outright.
	booleanRecurrenceClues = map[string]struct{}{
		"isrecurring":        {},
		"isrecurringmeeting": {},
		"recurring":          {},
	}

	// recurrenceHintSubstrings mark keys that carry recurrence metadata of
	// some shape (rule blobs, pattern text, master flags).
	recurrenceHintSubstrings = []string{
		"apptrecur",
		"appointmentrecur",
		"recurrence",
		"recurrencerule",
		"recurrencepattern",
		"recurrenceinfo",
		"recurrencestate",
		"recurrencetype",
		"recurringmaster",
		"apptimezonedefrecur",
	}
)

const startPrefix = "apptstart"

// IsBooleanRecurrenceClue reports whether the key names one of the known
// recurrence-boolean fields.
func IsBooleanRecurrenceClue(key string) bool {
	_, ok := booleanRecurrenceClues[strings.ToLower(key)]
	return ok
}

// IsRecurrenceHintKey reports whether the key looks like it carries
// recurrence metadata.
func IsRecurrenceHintKey(key string) bool {
	lower := strings.ToLower(key)
	for _, hint := range recurrenceHintSubstrings {
		if strings.Contains(lower, hint) {
			return true
		}
	}
	return false
}

// MatchesStartDatePrefix reports whether the key names a date-only
// rendering of the start instant.
func MatchesStartDatePrefix(key string) bool {
	return startDerived(key, "date")
}

// MatchesStartTimePrefix reports whether the key names a time-only
// rendering of the start instant.
func MatchesStartTimePrefix(key string) bool {
	return startDerived(key, "time")
}

// MatchesStartTextPrefix reports whether the key names a human-readable
// combined rendering of the start instant.
func MatchesStartTextPrefix(key string) bool {
	return startDerived(key, "text")
}

func startDerived(key, part string) bool {
	lower := strings.ToLower(key)
	return strings.HasPrefix(lower, startPrefix) && strings.Contains(lower, part)
}
