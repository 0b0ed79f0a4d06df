package audit

import (
	"context"
	"time"
)

// Store is a durable backing for the audit trail.
type Store interface {
	Append(ctx context.Context, e Entry) error
	Entries(ctx context.Context) ([]Entry, error)
	Clear(ctx context.Context) error
	Close() error
}

// Log stamps entries and hands them to a Store.
type Log struct {
	store Store
	now   func() time.Time
}

// NewLog wraps store. A nil clock means time.Now.
func NewLog(store Store, now func() time.Time) *Log {
	if now == nil {
		now = time.Now
	}
	return &Log{store: store, now: now}
}

// Record validates and appends one entry, returning what was written.
func (l *Log) Record(ctx context.Context, action string, value int, impact string) (Entry, error) {
	e := Entry{
		Timestamp: l.now().Truncate(time.Microsecond),
		Action:    action,
		Value:     value,
		Impact:    impact,
	}
	if err := e.Validate(); err != nil {
		return Entry{}, err
	}
	if err := l.store.Append(ctx, e); err != nil {
		return Entry{}, err
	}
	return e, nil
}

// Entries reads the trail back in write order.
func (l *Log) Entries(ctx context.Context) ([]Entry, error) {
	return l.store.Entries(ctx)
}

// Clear truncates the whole trail.
func (l *Log) Clear(ctx context.Context) error {
	return l.store.Clear(ctx)
}

// Close releases the backing store.
func (l *Log) Close() error {
	return l.store.Close()
}
