package record

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsRecurringNoClues(t *testing.T) {
	rec := New()
	rec.Set(FieldSubject, "Team Sync")
	rec.Set(FieldMessageClass, "IPM.Appointment")
	rec.Set(FieldStartWhole, "2024-01-03T10:00:00+00:00")
	assert.False(t, IsRecurring(rec))
}

func TestIsRecurringBooleanClue(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value any
		want  bool
	}{
		{"explicit true", "isRecurring", true, true},
		{"explicit false", "isRecurring", false, false},
		{"truthy string is not the boolean", "recurring", "yes", false},
		{"alternate key", "isRecurringMeeting", true, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := New()
			rec.Set(FieldMessageClass, "IPM.Appointment")
			rec.Set(tt.key, tt.value)
			assert.Equal(t, tt.want, IsRecurring(rec))
		})
	}
}

func TestIsRecurringBooleanClueWinsOverOtherFields(t *testing.T) {
	rec := New()
	rec.Set("isRecurring", true)
	rec.Set(FieldMessageClass, "IPM.Note")
	rec.Set("whatever", "else")
	assert.True(t, IsRecurring(rec))
}

func TestIsRecurringHintKeys(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value any
		want  bool
	}{
		{"raw rule blob", "recurrenceRule", "FREQ=WEEKLY;BYDAY=WE", true},
		{"empty string hint ignored", "recurrencePattern", "", false},
		{"nil hint ignored", "recurrenceInfo", nil, false},
		{"explicit boolean false trusted", "apptRecurring", false, false},
		{"explicit boolean true", "apptRecurring", true, true},
		{"numeric state", "recurrenceType", 3, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := New()
			rec.Set(FieldMessageClass, "IPM.Appointment")
			rec.Set(tt.key, tt.value)
			assert.Equal(t, tt.want, IsRecurring(rec))
		})
	}
}

func TestIsRecurringMessageClass(t *testing.T) {
	tests := []struct {
		class string
		want  bool
	}{
		{"IPM.Appointment.Occurrence", true},
		{"IPM.Appointment.Exception", true},
		{"IPM.Appointment.Recurring", true},
		{"IPM.Appointment", false},
		{"", false},
	}
	for _, tt := range tests {
		rec := New()
		rec.Set(FieldMessageClass, tt.class)
		assert.Equal(t, tt.want, IsRecurring(rec), "class %q", tt.class)
	}
}
