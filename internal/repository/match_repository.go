package repository

import (
	"context"

	"github.com/gdugdh24/matchmaker-backend/internal/domain"
)

type MatchRepository interface {
	// CreateWithConversation inserts the match and its conversation in one transaction.
	// When the pair already has a match, the existing row is loaded into match and created is false.
	CreateWithConversation(ctx context.Context, match *domain.Match) (created bool, err error)
	GetByID(ctx context.Context, id int) (*domain.Match, error)
	GetByUsers(ctx context.Context, user1ID, user2ID int) (*domain.Match, error)
	GetActiveMatches(ctx context.Context, userID int) ([]*domain.Match, error)
	// DeactivatePair returns ErrMatchNotFound when the pair never matched.
	DeactivatePair(ctx context.Context, user1ID, user2ID int) (*domain.Match, error)
	// DeletePair removes the match, its conversation with messages, and both swipes.
	DeletePair(ctx context.Context, user1ID, user2ID int) (domain.CleanupResult, error)
	// PurgeUser removes every message, conversation, match and swipe the user takes part in.
	PurgeUser(ctx context.Context, userID int) (domain.CleanupResult, error)
}
