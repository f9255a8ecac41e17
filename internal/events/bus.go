package events

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// Bus dispatches events synchronously to in-process subscribers.
type Bus struct {
	mu       sync.RWMutex
	handlers map[Type][]HandlerFunc
	all      []HandlerFunc
}

func NewBus() *Bus {
	return &Bus{handlers: make(map[Type][]HandlerFunc)}
}

// Subscribe registers h for one event type.
func (b *Bus) Subscribe(t Type, h HandlerFunc) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[t] = append(b.handlers[t], h)
}

// SubscribeAll registers h for every event type.
func (b *Bus) SubscribeAll(h HandlerFunc) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.all = append(b.all, h)
}

// Publish validates env and runs every matching handler. All handlers run even if
// one fails; the failures are joined.
func (b *Bus) Publish(ctx context.Context, env Envelope) error {
	if err := env.Validate(); err != nil {
		return err
	}

	b.mu.RLock()
	handlers := make([]HandlerFunc, 0, len(b.handlers[env.Type])+len(b.all))
	handlers = append(handlers, b.handlers[env.Type]...)
	handlers = append(handlers, b.all...)
	b.mu.RUnlock()

	var errs []error
	for _, h := range handlers {
		if err := h(ctx, env); err != nil {
			errs = append(errs, fmt.Errorf("handling %s for %s: %w", env.Type, env.SourceID, err))
		}
	}
	return errors.Join(errs...)
}

var _ Publisher = (*Bus)(nil)
