package events

import (
	"context"
	"time"
)

// Lifecycle event types
const (
	TyphoonCreated = "typhoon.created"
	TyphoonUpdated = "typhoon.updated"
	TyphoonPaused  = "typhoon.paused"
	TyphoonResumed = "typhoon.resumed"
	TyphoonEnded   = "typhoon.ended"
	TyphoonDeleted = "typhoon.deleted"
)

// TyphoonEvent is the payload published on every lifecycle transition
type TyphoonEvent struct {
	Type       string    `json:"type"`
	TyphoonID  uint      `json:"typhoon_id"`
	Name       string    `json:"name"`
	Status     string    `json:"status"`
	ActorID    string    `json:"actor_id"`
	ReportPath string    `json:"report_path,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Publisher delivers lifecycle events downstream
type Publisher interface {
	Publish(ctx context.Context, event TyphoonEvent) error
	Close() error
}

// Nop drops every event; used when no brokers are configured
type Nop struct{}

func (Nop) Publish(context.Context, TyphoonEvent) error { return nil }
func (Nop) Close() error                                 { return nil }
