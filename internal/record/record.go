package record

import (
	"sort"
	"strings"
	"time"
)

// Canonical textual forms used throughout the pipeline. Whole instants are
// written with a numeric offset so UTC renders as "+00:00", matching the
// values the invite producers emit.
const (
	InstantLayout = "2006-01-02T15:04:05-07:00"
	DateLayout    = "2006-01-02"
	TimeLayout    = "15:04"
	LabelLayout   = "01/02/2006 3:04 PM"
)

// Conventional field names. The producer schema is not fixed; these are the
// names the adapters emit and the accessors below read, but any other key
// passes through the Record untouched.
const (
	FieldSubject      = "subject"
	FieldMessageClass = "messageClass"
	FieldLocation     = "apptLocation"
	FieldBody         = "body"
	FieldRecipients   = "recipients"

	FieldStartWhole      = "apptStartWhole"
	FieldEndWhole        = "apptEndWhole"
	FieldStartWholeLocal = "apptStartWholeLocal"
	FieldEndWholeLocal   = "apptEndWholeLocal"
	FieldEndText         = "apptEndText"

	FieldCurrentDT      = "helper_currentDT"
	FieldOccurrenceDate = "helper_selectedOccurrenceDate"
)

// Record is a loosely-typed invite: a mapping from producer field name to
// value. Values are strings, bools, numbers, nested *Record, or []*Record.
// Known fields have named accessors; everything else is passthrough. An
// absent field always reads as an empty value, never an error. The zero
// value is an empty record ready to use.
type Record struct {
	fields map[string]any
}

func New() *Record {
	return &Record{fields: make(map[string]any)}
}

// FromMap builds a Record from a plain map. Nested maps and slices of maps
// are converted one level deep, which covers per-recipient records.
func FromMap(m map[string]any) *Record {
	r := New()
	for k, v := range m {
		r.Set(k, convertValue(v))
	}
	return r
}

func convertValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		nested := New()
		for k, inner := range val {
			nested.Set(k, inner)
		}
		return nested
	case []any:
		out := make([]*Record, 0, len(val))
		for _, item := range val {
			if m, ok := item.(map[string]any); ok {
				nested := New()
				for k, inner := range m {
					nested.Set(k, inner)
				}
				out = append(out, nested)
				continue
			}
			// Scalar list members become single-field records so section
			// iteration still has something to render.
			nested := New()
			nested.Set("value", item)
			out = append(out, nested)
		}
		return out
	default:
		return v
	}
}

func (r *Record) Set(key string, v any) {
	if r.fields == nil {
		r.fields = make(map[string]any)
	}
	r.fields[key] = v
}

func (r *Record) Get(key string) (any, bool) {
	v, ok := r.fields[key]
	return v, ok
}

// GetString returns the field as a string, or "" when the field is absent
// or not a string.
func (r *Record) GetString(key string) string {
	if v, ok := r.fields[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

func (r *Record) GetBool(key string) (bool, bool) {
	if v, ok := r.fields[key]; ok {
		if b, ok := v.(bool); ok {
			return b, true
		}
	}
	return false, false
}

// Keys returns every field name in sorted order so that heuristic scans
// over the record are deterministic.
func (r *Record) Keys() []string {
	keys := make([]string, 0, len(r.fields))
	for k := range r.fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Named accessors for the conventionally-expected fields.

func (r *Record) Subject() string      { return r.GetString(FieldSubject) }
func (r *Record) MessageClass() string { return r.GetString(FieldMessageClass) }
func (r *Record) Body() string         { return r.GetString(FieldBody) }

func (r *Record) Recipients() []*Record {
	if v, ok := r.fields[FieldRecipients]; ok {
		if list, ok := v.([]*Record); ok {
			return list
		}
	}
	return nil
}

// StartWhole returns the parsed UTC/absolute start instant, if present and
// well-formed.
func (r *Record) StartWhole() (time.Time, bool) {
	return ParseInstant(r.GetString(FieldStartWhole))
}

func (r *Record) EndWhole() (time.Time, bool) {
	return ParseInstant(r.GetString(FieldEndWhole))
}

func (r *Record) StartWholeLocal() (time.Time, bool) {
	return ParseInstant(r.GetString(FieldStartWholeLocal))
}

func (r *Record) EndWholeLocal() (time.Time, bool) {
	return ParseInstant(r.GetString(FieldEndWholeLocal))
}

// IsAppointment reports whether the message class identifies a calendar
// appointment, including occurrence/exception subclasses.
func (r *Record) IsAppointment() bool {
	mc := strings.ToLower(r.MessageClass())
	return strings.HasPrefix(mc, "ipm.appointment")
}

// ParseInstant parses a whole-instant field value. Producers write either
// an offset form (RFC 3339, "Z" or "+hh:mm") or an offset-less local form.
func ParseInstant(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, true
	}
	if t, err := time.ParseInLocation("2006-01-02T15:04:05", s, time.Local); err == nil {
		return t, true
	}
	return time.Time{}, false
}

// FormatInstant renders an instant in the canonical whole-instant form.
func FormatInstant(t time.Time) string {
	return t.Format(InstantLayout)
}
