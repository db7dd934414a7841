package record

import "strings"

// IsRecurring decides whether the record represents a recurring
// appointment. Signals are checked in order of trustworthiness and the
// first positive one wins:
//
//  1. A boolean-clue field set to exactly true.
//  2. A recurrence-hint field: a boolean value is returned as-is (an
//     explicit false is trusted); any other present, non-empty value means
//     the producer attached recurrence metadata.
//  3. A message class mentioning recurring/exception/occurrence.
func IsRecurring(r *Record) bool {
	for _, key := range r.Keys() {
		if !IsBooleanRecurrenceClue(key) {
			continue
		}
		if v, _ := r.Get(key); v == true {
			return true
		}
	}

	for _, key := range r.Keys() {
		if !IsRecurrenceHintKey(key) {
			continue
		}
		v, ok := r.Get(key)
		if !ok {
			continue
		}
		if b, isBool := v.(bool); isBool {
			return b
		}
		if v == nil {
			continue
		}
		if s, isStr := v.(string); isStr && s == "" {
			continue
		}
		return true
	}

	mc := strings.ToLower(r.MessageClass())
	if mc != "" {
		for _, marker := range []string{"recurring", "exception", "occurrence"} {
			if strings.Contains(mc, marker) {
				return true
			}
		}
	}

	return false
}
