package events

import (
	"context"
	"time"

	"github.com/PierrickDossin/AymanProject/pkg/utils"
)

type Type string

const (
	GoalCompleted    Type = "goal.completed"
	WorkoutCompleted Type = "workout.completed"
	WorkoutSkipped   Type = "workout.skipped"
)

// Event is a domain change other processes may react to.
type Event struct {
	Type       Type      `json:"type"`
	UserID     string    `json:"userId"`
	Payload    any       `json:"payload,omitempty"`
	OccurredAt time.Time `json:"occurredAt"`
}

func New(t Type, userID string, payload any) Event {
	return Event{Type: t, UserID: userID, Payload: payload, OccurredAt: time.Now().UTC()}
}

type Publisher interface {
	Publish(ctx context.Context, e Event) error
}

// Multi fans an event out to every publisher. A failing sink is logged and
// does not stop the others.
type Multi []Publisher

func (m Multi) Publish(ctx context.Context, e Event) error {
	for _, p := range m {
		if err := p.Publish(ctx, e); err != nil {
			utils.Log.Error("Event publish failed", "type", e.Type, "userId", e.UserID, "error", err)
		}
	}
	return nil
}

// LogPublisher writes events to the process log. It is the fallback when no
// broker is configured.
type LogPublisher struct{}

func (LogPublisher) Publish(_ context.Context, e Event) error {
	utils.Log.Info("Domain event", "type", e.Type, "userId", e.UserID)
	return nil
}

// Nop discards events.
type Nop struct{}

func (Nop) Publish(context.Context, Event) error { return nil }
