package record

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsBooleanRecurrenceClue(t *testing.T) {
	tests := []struct {
		key  string
		want bool
	}{
		{"isRecurring", true},
		{"ISRECURRING", true},
		{"isRecurringMeeting", true},
		{"recurring", true},
		{"Recurring", true},
		{"recurringish", false},
		{"subject", false},
		{"", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, IsBooleanRecurrenceClue(tt.key), "key %q", tt.key)
	}
}

func TestIsRecurrenceHintKey(t *testing.T) {
	tests := []struct {
		key  string
		want bool
	}{
		{"apptRecur", true},
		{"appointmentRecurrenceBlob", true},
		{"recurrenceRule", true},
		{"RecurrencePattern", true},
		{"xRecurrenceStateY", true},
		{"recurringMaster", true},
		{"apptimezonedefrecur", true},
		// The hint list carries the single-"t" spelling; the camel-cased
		// key lowers to a double "t" and does not contain it.
		{"apptTimeZoneDefRecur", false},
		{"subject", false},
		{"apptStartWhole", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, IsRecurrenceHintKey(tt.key), "key %q", tt.key)
	}
}

func TestStartDerivedPrefixes(t *testing.T) {
	assert.True(t, MatchesStartDatePrefix("apptStartDate"))
	assert.True(t, MatchesStartDatePrefix("apptstartlocaldate"))
	assert.True(t, MatchesStartTimePrefix("apptStartTime"))
	assert.True(t, MatchesStartTextPrefix("apptStartText"))

	// Wrong prefix or missing part.
	assert.False(t, MatchesStartDatePrefix("apptEndDate"))
	assert.False(t, MatchesStartDatePrefix("startDate"))
	assert.False(t, MatchesStartTimePrefix("apptStartDate"))
	assert.False(t, MatchesStartTextPrefix("apptStart"))
}
