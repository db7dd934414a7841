// Package ics adapts an iCalendar invite into the loosely-typed record the
// note pipeline consumes. Recurrence rules are detected but never
// expanded; only their presence matters downstream.
package ics

import (
	"errors"
	"io"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"

	appLog "meetnote/internal/log"
	"meetnote/internal/record"
)

// appointmentClass is the message class the pipeline's appointment gate
// expects; it mirrors what the binary-invite producers emit.
const appointmentClass = "IPM.Appointment"

// ReadInvite parses an ICS payload and maps its first VEVENT onto a
// Record using the conventional field names the heuristics target. Extra
// VEVENTs (recurrence overrides, attached counters) are ignored with a
// warning.
func ReadInvite(r io.Reader) (*record.Record, error) {
	cal, err := ical.ParseCalendar(r)
	if err != nil {
		appLog.Error("ics parse failed", err)
		return nil, err
	}

	events := cal.Events()
	if len(events) == 0 {
		return nil, errors.New("ics: no VEVENT in invite")
	}
	if len(events) > 1 {
		appLog.Warn("ics invite has multiple events, using the first", "event_count", len(events))
	}

	rec, err := mapEvent(events[0])
	if err != nil {
		return nil, err
	}

	appLog.Info("ics invite parsed",
		"subject", rec.Subject(),
		"start", rec.GetString(record.FieldStartWhole),
		"recipients", len(rec.Recipients()),
	)
	return rec, nil
}

func mapEvent(ve *ical.VEvent) (*record.Record, error) {
	rec := record.New()
	rec.Set(record.FieldMessageClass, appointmentClass)

	if p := ve.GetProperty(ical.ComponentPropertySummary); p != nil {
		rec.Set(record.FieldSubject, p.Value)
	}
	if p := ve.GetProperty(ical.ComponentPropertyLocation); p != nil {
		rec.Set(record.FieldLocation, p.Value)
	}
	if p := ve.GetProperty(ical.ComponentPropertyDescription); p != nil {
		rec.Set(record.FieldBody, p.Value)
	}

	start, startErr := ve.GetStartAt()
	end, endErr := ve.GetEndAt()
	if startErr != nil {
		return nil, errors.New("ics: invite has no parseable DTSTART")
	}

	setInstantPair(rec, start, end, endErr == nil)

	// Raw recurrence rule: stored for detection, never interpreted.
	if p := ve.GetProperty(ical.ComponentPropertyRrule); p != nil && p.Value != "" {
		rec.Set("recurrenceRule", p.Value)
	}

	if p := ve.GetProperty(ical.ComponentPropertyOrganizer); p != nil {
		rec.Set("meetingOrganizer", attendeeLabel(p.ICalParameters, p.Value))
	}

	recipients := make([]*record.Record, 0)
	for _, a := range ve.Attendees() {
		nested := record.New()
		nested.Set("name", attendeeLabel(a.ICalParameters, a.Value))
		nested.Set("email", a.Email())
		recipients = append(recipients, nested)
	}
	if len(recipients) > 0 {
		rec.Set(record.FieldRecipients, recipients)
	}

	return rec, nil
}

// setInstantPair writes the absolute and local whole-instant fields plus
// the derived start/end text fields the templates use.
func setInstantPair(rec *record.Record, start, end time.Time, haveEnd bool) {
	startLocal := start.In(time.Local)

	rec.Set(record.FieldStartWhole, record.FormatInstant(start.UTC()))
	rec.Set(record.FieldStartWholeLocal, record.FormatInstant(startLocal))
	rec.Set("apptStartDate", startLocal.Format(record.DateLayout))
	rec.Set("apptStartTime", startLocal.Format(record.TimeLayout))
	rec.Set("apptStartText", startLocal.Format(record.LabelLayout))

	if !haveEnd {
		return
	}
	endLocal := end.In(time.Local)
	rec.Set(record.FieldEndWhole, record.FormatInstant(end.UTC()))
	rec.Set(record.FieldEndWholeLocal, record.FormatInstant(endLocal))
	rec.Set(record.FieldEndText, endLocal.Format(record.LabelLayout))
}

// attendeeLabel prefers the CN display name, falling back to the bare
// address with any mailto: scheme stripped.
func attendeeLabel(params map[string][]string, value string) string {
	if params != nil {
		if cns, ok := params["CN"]; ok && len(cns) > 0 && cns[0] != "" {
			return cns[0]
		}
	}
	return strings.TrimPrefix(value, "mailto:")
}
