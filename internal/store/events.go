package store

import (
	"context"
	"log/slog"

	"github.com/heartmarshall/intakelog/internal/domain"
)

// EventKind identifies what changed in the collection.
type EventKind string

const (
	EventInitialized EventKind = "initialized"
	EventInserted    EventKind = "inserted"
	EventCleared     EventKind = "cleared"
)

// Event is delivered to listeners after an operation has completed.
// Count holds the collection size for EventInitialized and the number of
// removed records for EventCleared.
type Event struct {
	Kind   EventKind
	Record *domain.IntakeRecord
	Count  int
}

// Listener is notified synchronously after a successful change.
type Listener func(ctx context.Context, ev Event)

// Subscribe registers a listener for change events.
func (s *Store) Subscribe(l Listener) {
	if l == nil {
		return
	}
	s.lmu.Lock()
	s.listeners = append(s.listeners, l)
	s.lmu.Unlock()
}

func (s *Store) notify(ctx context.Context, ev Event) {
	s.lmu.RLock()
	listeners := make([]Listener, len(s.listeners))
	copy(listeners, s.listeners)
	s.lmu.RUnlock()

	for _, l := range listeners {
		s.deliver(ctx, l, ev)
	}
}

func (s *Store) deliver(ctx context.Context, l Listener, ev Event) {
	defer func() {
		if r := recover(); r != nil {
			s.log.ErrorContext(ctx, "store listener panicked",
				slog.String("event", string(ev.Kind)),
				slog.Any("panic", r),
			)
		}
	}()
	l(ctx, ev)
}
