package service

import "context"

// ─────────────────────────────────────────────────────────────
// EventEmitter — decouples the sync service from its notification sink
// ─────────────────────────────────────────────────────────────

// EventEmitter is an interface for emitting lifecycle events. The CLI
// implements this with a log-backed emitter; long-running consumers
// can subscribe for sync completion instead of polling the run log.
// Services receive this interface instead of a concrete sink, which
// makes them independently testable with a mock emitter.
type EventEmitter interface {
	Emit(ctx context.Context, event string, data any)
}

// MockEmitter is a test-friendly EventEmitter that records all calls.
type MockEmitter struct {
	Events []EmittedEvent
}

// EmittedEvent holds a single recorded emission for test assertions.
type EmittedEvent struct {
	Event string
	Data  any
}

func (m *MockEmitter) Emit(_ context.Context, event string, data any) {
	m.Events = append(m.Events, EmittedEvent{Event: event, Data: data})
}

// LogEmitter writes events through the given print function, usually
// log.Printf.
type LogEmitter struct {
	Printf func(format string, v ...any)
}

func (l *LogEmitter) Emit(_ context.Context, event string, data any) {
	if l.Printf != nil {
		l.Printf("event %s: %v", event, data)
	}
}
