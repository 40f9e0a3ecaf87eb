// Package events provides domain event definitions for decoupled,
// event-driven communication between modules.
// Infrastructure (Bus, Handler) is in platform/events.
package events

import (
	"samakicash_backend/platform/events"

	"github.com/google/uuid"
)

// Re-export platform types for convenience
type (
	Event       = events.Event
	Bus         = events.Bus
	Handler     = events.Handler
	HandlerFunc = events.HandlerFunc
	BaseEvent   = events.BaseEvent
)

// Re-export platform functions
var (
	NewBaseEvent   = events.NewBaseEvent
	NewInMemoryBus = events.NewInMemoryBus
)

// UserRegistered is published when a new account is created.
type UserRegistered struct {
	BaseEvent
	UserID   uuid.UUID `json:"userId"`
	Email    string    `json:"email"`
	Name     string    `json:"name"`
	UserType string    `json:"userType"`
}

func (e UserRegistered) EventName() string { return "auth.user.registered" }

// CatchAnalyzed is published after an analysis run reaches assembly.
// It is observational only: subscribers can never affect the response
// that was already returned to the caller.
type CatchAnalyzed struct {
	BaseEvent
	UserID     string  `json:"userId"`
	FishType   string  `json:"fishType"`
	QuantityKg float64 `json:"quantityKg"`
	Location   string  `json:"location"`
	FairPrice  float64 `json:"fairPrice"`
	MatchCount int     `json:"matchCount"`
	Degraded   bool    `json:"degraded"`
}

func (e CatchAnalyzed) EventName() string { return "analysis.catch.analyzed" }
