package progress

import (
	"errors"
	"fmt"
)

// TimestampLayout formats Record.Timestamp: local wall clock to the minute.
const TimestampLayout = "2006-01-02 15:04"

// Record is one saved study session. Records are immutable once written.
type Record struct {
	Topic     string `json:"topic"`
	Score     int    `json:"score"`
	Timestamp string `json:"timestamp"`
}

// String formats the record as a history line:
// "- 2026-01-02 03:04: Integral (Skor: 3)".
func (r Record) String() string {
	return fmt.Sprintf("- %s: %s (Skor: %d)", r.Timestamp, r.Topic, r.Score)
}

// Log is the full progress document, in save order.
type Log struct {
	Sessions []Record `json:"sessions"`
}

var (
	// ErrCorruptStore means the progress file exists but is not a valid log.
	// The file is left untouched.
	ErrCorruptStore = errors.New("progress file is corrupt")

	// ErrEmptyTopic rejects a save whose topic is blank after trimming.
	ErrEmptyTopic = errors.New("topic is empty")

	// ErrInvalidScore rejects a negative score.
	ErrInvalidScore = errors.New("score must not be negative")

	// ErrStoreWrite means the updated log could not be written.
	ErrStoreWrite = errors.New("write progress file")
)
