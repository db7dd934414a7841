// Package occurrence resolves which single instance of a recurring series
// a record should describe, and rewrites the record's date/time fields to
// match it.
package occurrence

import (
	"context"
	"strings"
	"time"

	"github.com/samber/mo"

	"meetnote/internal/record"
)

// Asker is the injected "ask the user" capability: show a single-line
// input seeded with def, suspend until the user submits or cancels. None
// means cancellation. Only one ask is ever in flight.
type Asker interface {
	AskDate(ctx context.Context, def string) (mo.Option[string], error)
}

// ResolveDate obtains a validated occurrence date from the user. The input
// is seeded with today's date in YYYY-MM-DD form; invalid submissions get
// a notice and a re-prompt seeded with what the user typed, so they can
// correct it. An empty submission or an explicit cancel returns None
// immediately. There is no retry cap.
func ResolveDate(ctx context.Context, asker Asker, notify func(string), now time.Time) (mo.Option[string], error) {
	def := now.Format(record.DateLayout)
	for {
		answer, err := asker.AskDate(ctx, def)
		if err != nil {
			return mo.None[string](), err
		}
		if !answer.IsPresent() {
			return mo.None[string](), nil
		}
		trimmed := strings.TrimSpace(answer.MustGet())
		if trimmed == "" {
			return mo.None[string](), nil
		}
		if _, perr := time.Parse(record.DateLayout, trimmed); perr == nil {
			return mo.Some(trimmed), nil
		}
		notify("Please enter the date in YYYY-MM-DD format.")
		def = trimmed
	}
}
