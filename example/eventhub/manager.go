package main

import (
	"context"
	"log/slog"
	"sync"

	"github.com/tbxark/eventagent/event"
)

// EventManager stands in for the external persistence layer.
type EventManager struct {
	mu     sync.Mutex
	events []*event.Event
}

func NewEventManager() *EventManager {
	return &EventManager{}
}

func (m *EventManager) Save(ctx context.Context, e *event.Event) error {
	m.mu.Lock()
	m.events = append(m.events, e)
	m.mu.Unlock()
	slog.Info("event saved", "title", e.Title, "start", e.StartTime, "online", e.IsOnline)
	return nil
}

func (m *EventManager) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.events)
}
