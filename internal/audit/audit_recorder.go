package audit

import (
	"context"
	"strconv"
)

// Recorder is what admin modules call after a mutation has been accepted by the platform API.
type Recorder interface {
	Record(ctx context.Context, entry Entry) error
}

// Entry describes one admin mutation.
type Entry struct {
	Action     string
	Resource   string
	ResourceID string
	Payload    any
}

// ID formats numeric platform IDs for Entry.ResourceID.
func ID(id int64) string {
	return strconv.FormatInt(id, 10)
}

type nopRecorder struct{}

func (nopRecorder) Record(context.Context, Entry) error { return nil }

// Nop discards entries; used when no database is configured and in tests.
func Nop() Recorder { return nopRecorder{} }
