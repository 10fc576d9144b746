package events

import (
	"context"
	"time"

	"github.com/google/uuid"
)

const (
	TypeMatchCreated     = "match.created"
	TypeMatchDeactivated = "match.deactivated"
	TypeMatchDeleted     = "match.deleted"
	TypeMatchesReset     = "user.matches_reset"
)

// Event is a domain event published after a state change commits.
type Event struct {
	ID         string      `json:"id"`
	Type       string      `json:"type"`
	Key        string      `json:"-"`
	OccurredAt time.Time   `json:"occurred_at"`
	Data       interface{} `json:"data"`
}

func New(eventType, key string, data interface{}) Event {
	return Event{
		ID:         uuid.NewString(),
		Type:       eventType,
		Key:        key,
		OccurredAt: time.Now().UTC(),
		Data:       data,
	}
}

type MatchData struct {
	MatchID            int `json:"match_id"`
	User1ID            int `json:"user1_id"`
	User2ID            int `json:"user2_id"`
	ConversationID     int `json:"conversation_id,omitempty"`
	CompatibilityScore int `json:"compatibility_score,omitempty"`
	ActorID            int `json:"actor_id,omitempty"`
}

type ResetData struct {
	UserID               int   `json:"user_id"`
	MatchesDeleted       int64 `json:"matches_deleted"`
	ConversationsDeleted int64 `json:"conversations_deleted"`
	MessagesDeleted      int64 `json:"messages_deleted"`
	SwipesDeleted        int64 `json:"swipes_deleted"`
}

type Publisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}

// NopPublisher drops every event.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, Event) error { return nil }

func (NopPublisher) Close() error { return nil }
