// Package note owns the note-creation flow boundary: it gates the input
// record, resolves recurring occurrences, renders the file name and
// document, and persists the result. Every failure mode is reported to the
// user exactly once here before propagating.
package note

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	appLog "meetnote/internal/log"
	"meetnote/internal/occurrence"
	"meetnote/internal/record"
	"meetnote/internal/render"
)

// ErrUnsupported marks an input record that is not an appointment.
var ErrUnsupported = errors.New("record is not an appointment or meeting")

// Notifier carries user-visible notices. Logs are a separate channel.
type Notifier interface {
	Notify(msg string)
}

// Result reports what Create did.
type Result struct {
	// Path of the note, set unless the flow was cancelled.
	Path string
	// Created is false when the note already existed (or on cancellation).
	Created bool
	// Cancelled is true when the user aborted the occurrence prompt.
	Cancelled bool
}

// Creator renders and writes meeting notes. Each Create call owns its
// record exclusively; Creator itself holds no per-call state.
type Creator struct {
	// Root is the base output directory (the vault root).
	Root string
	// Folder is the configured note folder relative to Root; empty means
	// the root itself.
	Folder string

	FilenamePattern string
	Template        string
	// Replacement substitutes characters illegal in file names; empty
	// deletes them.
	Replacement string

	Helpers  render.Registry
	Asker    occurrence.Asker
	Notifier Notifier

	// Now is the clock; nil means time.Now.
	Now func() time.Time
}

// Create runs the full pipeline for one record. Cancellation of the
// occurrence prompt ends the flow with Result.Cancelled and no error;
// everything else that goes wrong is noticed once and returned.
func (c *Creator) Create(ctx context.Context, rec *record.Record) (Result, error) {
	res, err := c.create(ctx, rec)
	if err != nil {
		c.Notifier.Notify("Error: " + err.Error())
	}
	return res, err
}

func (c *Creator) create(ctx context.Context, rec *record.Record) (Result, error) {
	if !rec.IsAppointment() {
		return Result{}, fmt.Errorf("%w (message class %q)", ErrUnsupported, rec.MessageClass())
	}

	ensureBody(rec)
	rec.Set(record.FieldCurrentDT, record.FormatInstant(c.now()))

	if record.IsRecurring(rec) {
		appLog.Debug("record detected as recurring", "subject", rec.Subject())
		date, err := occurrence.ResolveDate(ctx, c.Asker, c.Notifier.Notify, c.now())
		if err != nil {
			return Result{}, fmt.Errorf("occurrence prompt: %w", err)
		}
		if !date.IsPresent() {
			c.Notifier.Notify("Meeting note creation cancelled.")
			return Result{Cancelled: true}, nil
		}
		occurrence.Apply(rec, date.MustGet())
	}

	name, err := render.Filename(c.FilenamePattern, rec, c.Helpers, c.Replacement)
	if err != nil {
		return Result{}, fmt.Errorf("render file name: %w", err)
	}

	dir := filepath.Join(c.Root, c.folder())
	path := filepath.Join(dir, name+".md")

	if _, serr := os.Stat(path); serr == nil {
		c.Notifier.Notify(name + " already exists: opening it")
		return Result{Path: path}, nil
	}

	content, err := render.Document(c.Template, rec, c.Helpers)
	if err != nil {
		return Result{}, fmt.Errorf("render note template: %w", err)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return Result{}, fmt.Errorf("create note folder: %w", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return Result{}, fmt.Errorf("write note: %w", err)
	}

	appLog.Info("note created", "path", path, "bytes", len(content))
	c.Notifier.Notify("New file created: " + name)
	return Result{Path: path, Created: true}, nil
}

func (c *Creator) folder() string {
	folder := strings.TrimSpace(c.Folder)
	folder = strings.Trim(folder, "/")
	return folder
}

func (c *Creator) now() time.Time {
	if c.Now != nil {
		return c.Now()
	}
	return time.Now()
}
