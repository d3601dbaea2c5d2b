package main

import (
	"context"
	"log/slog"
	"slices"
	"sync"
)

// Names of the routed log destinations. Transfer commands swap the
// terminal destination for the UI log pane while the UI is on screen.
const (
	logTerminal = "terminal"
	logUI       = "ui"
)

// SlogManager is a fan-out [slog.Handler] with named destinations that
// can be attached and detached while logging is in flight.
type SlogManager struct {
	sync.RWMutex
	handlers map[string]slog.Handler
	attrs    []slog.Attr
	groups   []string
}

// NewSlogManager returns a pointer to a new, empty [SlogManager].
func NewSlogManager() *SlogManager {
	return &SlogManager{
		handlers: make(map[string]slog.Handler),
	}
}

// Enabled reports whether any destination accepts the given level.
func (m *SlogManager) Enabled(ctx context.Context, level slog.Level) bool {
	m.RLock()
	defer m.RUnlock()

	for _, h := range m.handlers {
		if h.Enabled(ctx, level) {
			return true
		}
	}

	return false
}

// Handle forwards the record to every destination.
func (m *SlogManager) Handle(ctx context.Context, r slog.Record) error {
	m.RLock()
	defer m.RUnlock()

	for _, h := range m.handlers {
		_ = h.Handle(ctx, r)
	}

	return nil
}

// WithAttrs returns a manager whose destinations all carry the extra
// attributes.
func (m *SlogManager) WithAttrs(attrs []slog.Attr) slog.Handler {
	m.Lock()
	defer m.Unlock()

	newM := &SlogManager{
		handlers: make(map[string]slog.Handler, len(m.handlers)),
		attrs:    append(slices.Clone(m.attrs), attrs...),
		groups:   slices.Clone(m.groups),
	}

	for name, h := range m.handlers {
		newM.handlers[name] = h.WithAttrs(attrs)
	}

	return newM
}

// WithGroup returns a manager whose destinations all carry the extra
// group.
func (m *SlogManager) WithGroup(name string) slog.Handler {
	m.Lock()
	defer m.Unlock()

	newM := &SlogManager{
		handlers: make(map[string]slog.Handler, len(m.handlers)),
		attrs:    slices.Clone(m.attrs),
		groups:   append(slices.Clone(m.groups), name),
	}

	for handlerName, h := range m.handlers {
		newM.handlers[handlerName] = h.WithGroup(name)
	}

	return newM
}

// AddHandler attaches a destination under the given name, replaying the
// attributes and groups accumulated so far. An existing destination of
// the same name is replaced.
func (m *SlogManager) AddHandler(name string, handler slog.Handler) {
	m.Lock()
	defer m.Unlock()

	h := handler
	for _, attr := range m.attrs {
		h = h.WithAttrs([]slog.Attr{attr})
	}

	for _, group := range m.groups {
		h = h.WithGroup(group)
	}

	m.handlers[name] = h
}

// RemoveHandler detaches the named destination. Unknown names are
// ignored.
func (m *SlogManager) RemoveHandler(name string) {
	m.Lock()
	defer m.Unlock()

	delete(m.handlers, name)
}
