package repository

import (
	"context"

	"github.com/gdugdh24/matchmaker-backend/internal/domain"
)

type SwipeRepository interface {
	// Create returns ErrSwipeAlreadyExists when from already acted on to.
	Create(ctx context.Context, swipe *domain.Swipe) error
	GetByUsers(ctx context.Context, fromUserID, toUserID int) (*domain.Swipe, error)
	HasLiked(ctx context.Context, fromUserID, toUserID int) (bool, error)
	GetLikesReceived(ctx context.Context, userID int, limit, offset int) ([]*domain.Swipe, error)
}
