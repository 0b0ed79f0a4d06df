// Package audit keeps the append-only trail of every accepted transition.
// Each entry is one line:
//
//	<timestamp>: Action: <action>, Value: <value>, Impact: <impact>
package audit

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"
)

// TimestampLayout is the wall-clock format at the head of each line.
const TimestampLayout = "2006-01-02 15:04:05.000000"

// Delimiters that split a line on read-back. Impacts must not contain them.
const (
	valueDelim  = ", Value: "
	impactDelim = ", Impact: "
	actionLabel = "Action: "
)

var (
	// ErrLogCorruption marks a persisted line that does not match the line format.
	ErrLogCorruption = errors.New("audit: corrupt log line")
	// ErrStorageFailure wraps any failure to open, write, or truncate the backing store.
	ErrStorageFailure = errors.New("audit: storage failure")
	// ErrInvalidEntry is returned when an entry would not survive read-back.
	ErrInvalidEntry = errors.New("audit: invalid entry")
)

// Entry is one accepted transition.
type Entry struct {
	Timestamp time.Time `json:"timestamp"`
	Action    string    `json:"action"`
	Value     int       `json:"value"`
	Impact    string    `json:"impact"`
}

// Validate rejects entries whose text would break the delimiter parse.
func (e Entry) Validate() error {
	if e.Action == "" {
		return fmt.Errorf("%w: empty action", ErrInvalidEntry)
	}
	for field, text := range map[string]string{"action": e.Action, "impact": e.Impact} {
		if strings.ContainsAny(text, "\r\n") {
			return fmt.Errorf("%w: %s contains a line break", ErrInvalidEntry, field)
		}
		if strings.Contains(text, valueDelim) || strings.Contains(text, impactDelim) {
			return fmt.Errorf("%w: %s contains a reserved delimiter", ErrInvalidEntry, field)
		}
	}
	return nil
}

// Format renders e as a single newline-terminated log line. Timestamps are
// written in local time, which is how Parse reads them back.
func Format(e Entry) string {
	return fmt.Sprintf("%s: %s%s%s%d%s%s\n",
		e.Timestamp.Local().Format(TimestampLayout),
		actionLabel, e.Action,
		valueDelim, e.Value,
		impactDelim, e.Impact,
	)
}

// Parse reads one log line back into an Entry.
func Parse(line string) (Entry, error) {
	line = strings.TrimRight(line, "\r\n")

	ts, msg, ok := strings.Cut(line, ": ")
	if !ok {
		return Entry{}, fmt.Errorf("%w: missing timestamp separator", ErrLogCorruption)
	}

	parts := strings.Split(msg, impactDelim)
	if len(parts) != 2 {
		return Entry{}, fmt.Errorf("%w: expected one impact field, found %d", ErrLogCorruption, len(parts)-1)
	}
	actionValue := strings.Split(parts[0], valueDelim)
	if len(actionValue) != 2 {
		return Entry{}, fmt.Errorf("%w: expected one value field, found %d", ErrLogCorruption, len(actionValue)-1)
	}

	action, ok := strings.CutPrefix(actionValue[0], actionLabel)
	if !ok {
		return Entry{}, fmt.Errorf("%w: missing action label", ErrLogCorruption)
	}
	value, err := strconv.Atoi(actionValue[1])
	if err != nil {
		return Entry{}, fmt.Errorf("%w: value %q: %v", ErrLogCorruption, actionValue[1], err)
	}
	timestamp, err := time.ParseInLocation(TimestampLayout, ts, time.Local)
	if err != nil {
		return Entry{}, fmt.Errorf("%w: timestamp %q: %v", ErrLogCorruption, ts, err)
	}

	// Fields are cut exactly at the delimiters so padding survives read-back.
	return Entry{
		Timestamp: timestamp,
		Action:    action,
		Value:     value,
		Impact:    parts[1],
	}, nil
}

// Decode parses lines in order, skipping blank lines. Lines that fail to
// parse are logged and dropped; they never fail the read.
func Decode(lines []string) []Entry {
	entries := make([]Entry, 0, len(lines))
	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		e, err := Parse(line)
		if err != nil {
			slog.Warn("skipping audit line", "line_no", i+1, "line", line, "error", err)
			continue
		}
		entries = append(entries, e)
	}
	return entries
}
