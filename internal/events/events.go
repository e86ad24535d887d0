// Package events announces application changes to interested consumers.
package events

import (
	"context"
	"sync"
	"time"

	"github.com/justsurfingit/recruitment-tracker/internal/models"
)

type Type string

const (
	ApplicationCreated Type = "application.created"
	ApplicationUpdated Type = "application.updated"
	ApplicationDeleted Type = "application.deleted"
)

type Event struct {
	Type          Type          `json:"type"`
	ApplicationID uint          `json:"applicationId"`
	Email         string        `json:"email,omitempty"`
	Status        models.Status `json:"status,omitempty"`
	OccurredAt    time.Time     `json:"occurredAt"`
}

type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

// NopPublisher drops every event.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, Event) error { return nil }

// Recorder keeps published events in memory.
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

func (r *Recorder) Publish(_ context.Context, event Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
	return nil
}

func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Event, len(r.events))
	copy(out, r.events)
	return out
}
