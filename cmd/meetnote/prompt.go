package main

import (
	"context"
	"errors"

	"github.com/manifoldco/promptui"
	"github.com/samber/mo"
)

// terminalAsker asks for the occurrence date on the terminal. Interrupt
// and EOF map to cancellation, not failure.
type terminalAsker struct{}

func (terminalAsker) AskDate(ctx context.Context, def string) (mo.Option[string], error) {
	if err := ctx.Err(); err != nil {
		return mo.None[string](), err
	}

	prompt := promptui.Prompt{
		Label:     "This meeting is recurring. Occurrence date (YYYY-MM-DD)",
		Default:   def,
		AllowEdit: true,
	}
	value, err := prompt.Run()
	if err != nil {
		if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) || errors.Is(err, promptui.ErrAbort) {
			return mo.None[string](), nil
		}
		return mo.None[string](), err
	}
	return mo.Some(value), nil
}

// presetAsker answers with a fixed date once and cancels afterwards, so an
// invalid preset cannot loop the prompt forever.
type presetAsker struct {
	date  string
	asked bool
}

func (a *presetAsker) AskDate(ctx context.Context, def string) (mo.Option[string], error) {
	if a.asked {
		return mo.None[string](), nil
	}
	a.asked = true
	return mo.Some(a.date), nil
}
