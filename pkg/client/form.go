package client

import (
	"context"
	"log/slog"
	"strconv"
)

// FormMode distinguishes creating a new entry from editing an existing
// one.
type FormMode int

const (
	ModeCreate FormMode = iota
	ModeEdit
)

// EntryForm binds entry fields for creation or editing. It holds at
// most one pending image file independent of the bound fields; the
// existing image path is kept for preview in edit mode. Required-field
// enforcement happens server-side.
type EntryForm struct {
	api    *Client
	logger *slog.Logger

	mode    FormMode
	entryID string
	preview string
	pending *Upload

	Fields EntryFields
}

// NewEntryForm creates an entry form in create mode.
func NewEntryForm(api *Client, logger *slog.Logger) *EntryForm {
	return &EntryForm{
		api:    api,
		logger: logger.With("component", "entry-form"),
	}
}

// Mode returns the current form mode.
func (f *EntryForm) Mode() FormMode {
	return f.mode
}

// ImagePreview returns the path of the image to preview: the existing
// entry image in edit mode, empty otherwise.
func (f *EntryForm) ImagePreview() string {
	return f.preview
}

// HasPendingImage reports whether a file selection awaits submission.
func (f *EntryForm) HasPendingImage() bool {
	return f.pending != nil
}

// Edit switches the form to edit mode, populating the bound fields from
// the given entry and discarding any pending file.
func (f *EntryForm) Edit(e Entry) {
	f.mode = ModeEdit
	f.entryID = e.ID
	f.preview = e.ImagePath
	f.pending = nil
	f.Fields = EntryFields{
		Title:      e.Title,
		Kind:       e.Kind,
		Director:   e.Director,
		Budget:     formatBudget(e.Budget),
		Location:   e.Location,
		Duration:   e.Duration,
		YearOrTime: e.YearOrTime,
		Details:    e.Details,
	}
}

// Reset returns the form to create mode with empty fields and no
// pending file.
func (f *EntryForm) Reset() {
	f.mode = ModeCreate
	f.entryID = ""
	f.preview = ""
	f.pending = nil
	f.Fields = EntryFields{}
}

// AttachImage stages a file selection, replacing any previous one.
func (f *EntryForm) AttachImage(filename string, data []byte) {
	f.pending = &Upload{Filename: filename, Data: data}
}

// Submit dispatches the bound fields plus any pending file as a create
// or update, depending on mode. On success the form resets so the
// caller can refresh its list; the saved entry is returned.
func (f *EntryForm) Submit(ctx context.Context) (*Entry, error) {
	var (
		entry *Entry
		err   error
	)

	switch f.mode {
	case ModeEdit:
		entry, err = f.api.Update(ctx, f.entryID, f.Fields, f.pending)
	default:
		entry, err = f.api.Create(ctx, f.Fields, f.pending)
	}

	if err != nil {
		f.logger.Error("submit failed", "mode", f.mode, "error", err)
		return nil, err
	}

	f.logger.Info("entry saved", "id", entry.ID, "title", entry.Title)
	f.Reset()
	return entry, nil
}

func formatBudget(b *float64) string {
	if b == nil {
		return ""
	}
	return strconv.FormatFloat(*b, 'f', -1, 64)
}
