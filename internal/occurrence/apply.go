package occurrence

import (
	"time"

	"meetnote/internal/record"
)

// Apply projects the chosen occurrence date onto every date/time-bearing
// field of the record, in place:
//
//   - the UTC whole-instant start keeps its time-of-day and offset but
//     takes the chosen calendar date; the end is recomputed from the
//     original end-minus-start duration when both instants parsed
//   - the local-time pair is adjusted the same way, independently, with
//     its own duration
//   - derived start date/time/text fields are rewritten from the adjusted
//     start so they stay self-consistent
//   - the end-text field is rewritten from the adjusted end
//
// Fields that do not match the start/end heuristics are left untouched; a
// start instant that does not parse skips its whole branch. A malformed
// date makes the call a no-op apart from the stamp, which cannot happen
// when the date comes from ResolveDate.
func Apply(rec *record.Record, occurrenceDate string) {
	rec.Set(record.FieldOccurrenceDate, occurrenceDate)

	day, err := time.Parse(record.DateLayout, occurrenceDate)
	if err != nil {
		return
	}

	applyPair(rec, record.FieldStartWhole, record.FieldEndWhole, day)
	applyPair(rec, record.FieldStartWholeLocal, record.FieldEndWholeLocal, day)

	if adjustedStart, ok := rec.StartWhole(); ok {
		for _, key := range rec.Keys() {
			v, _ := rec.Get(key)
			if _, isString := v.(string); !isString {
				continue
			}
			switch {
			case record.MatchesStartDatePrefix(key):
				rec.Set(key, adjustedStart.Format(record.DateLayout))
			case record.MatchesStartTimePrefix(key):
				rec.Set(key, adjustedStart.Format(record.TimeLayout))
			case record.MatchesStartTextPrefix(key):
				rec.Set(key, adjustedStart.Format(record.LabelLayout))
			}
		}
	}

	if v, exists := rec.Get(record.FieldEndText); exists {
		_, isString := v.(string)
		if adjustedEnd, ok := rec.EndWhole(); ok && isString {
			rec.Set(record.FieldEndText, adjustedEnd.Format(record.LabelLayout))
		}
	}
}

// applyPair adjusts one start/end whole-instant pair. The duration is
// computed from the pair's own original values, not shared between the UTC
// and local pairs, since the two representations may differ.
func applyPair(rec *record.Record, startKey, endKey string, day time.Time) {
	start, startOK := record.ParseInstant(rec.GetString(startKey))
	if !startOK {
		return
	}
	end, endOK := record.ParseInstant(rec.GetString(endKey))

	adjusted := withDate(start, day)
	rec.Set(startKey, record.FormatInstant(adjusted))
	if endOK {
		rec.Set(endKey, record.FormatInstant(adjusted.Add(end.Sub(start))))
	}
}

// withDate replaces the calendar-date components of t, preserving
// time-of-day and zone.
func withDate(t time.Time, day time.Time) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(),
		t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}
