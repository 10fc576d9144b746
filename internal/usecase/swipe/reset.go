package swipe

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/gdugdh24/matchmaker-backend/internal/domain"
	"github.com/gdugdh24/matchmaker-backend/internal/infrastructure/events"
	"github.com/gdugdh24/matchmaker-backend/internal/infrastructure/metrics"
	"github.com/gdugdh24/matchmaker-backend/internal/infrastructure/tracing"
)

// Unmatch deletes the match between the two users with its conversation and
// both swipes, so either side may like the other again later. A block between
// them still keeps them from matching.
func (uc *SwipeUseCase) Unmatch(ctx context.Context, userID, otherUserID int) (domain.CleanupResult, error) {
	ctx, span := tracing.StartSpan(ctx, "swipe.Unmatch")
	defer span.End()

	match, res, err := uc.deletePair(ctx, userID, otherUserID)
	if err != nil {
		return domain.CleanupResult{}, err
	}

	metrics.RecordMatchEvent(metrics.MatchDeleted)
	uc.log.Info("match deleted", "match_id", match.ID, "actor_id", userID, "messages_deleted", res.MessagesDeleted)
	uc.publish(ctx, events.TypeMatchDeleted, match, userID)
	return res, nil
}

func (uc *SwipeUseCase) deletePair(ctx context.Context, userID, otherUserID int) (*domain.Match, domain.CleanupResult, error) {
	unlock, err := uc.locker.LockPair(ctx, userID, otherUserID)
	if err != nil {
		return nil, domain.CleanupResult{}, fmt.Errorf("lock pair: %w", err)
	}
	defer unlock()

	match, err := uc.matchRepo.GetByUsers(ctx, userID, otherUserID)
	if err != nil {
		if errors.Is(err, domain.ErrMatchNotFound) {
			return nil, domain.CleanupResult{}, err
		}
		return nil, domain.CleanupResult{}, fmt.Errorf("failed to get match: %w", err)
	}

	res, err := uc.matchRepo.DeletePair(ctx, userID, otherUserID)
	if err != nil {
		if errors.Is(err, domain.ErrMatchNotFound) {
			return nil, domain.CleanupResult{}, err
		}
		return nil, domain.CleanupResult{}, fmt.Errorf("failed to delete match: %w", err)
	}
	return match, res, nil
}

// Cleanup resets the user's matching state with every other user.
func (uc *SwipeUseCase) Cleanup(ctx context.Context, userID int) (domain.CleanupResult, error) {
	ctx, span := tracing.StartSpan(ctx, "swipe.Cleanup")
	defer span.End()

	res, err := uc.matchRepo.PurgeUser(ctx, userID)
	if err != nil {
		return domain.CleanupResult{}, fmt.Errorf("failed to clean up matches: %w", err)
	}

	metrics.RecordMatchEvent(metrics.MatchesReset)
	uc.log.Info("matching data reset",
		"user_id", userID,
		"matches_deleted", res.MatchesDeleted,
		"swipes_deleted", res.SwipesDeleted,
	)

	event := events.New(events.TypeMatchesReset, strconv.Itoa(userID), events.ResetData{
		UserID:               userID,
		MatchesDeleted:       res.MatchesDeleted,
		ConversationsDeleted: res.ConversationsDeleted,
		MessagesDeleted:      res.MessagesDeleted,
		SwipesDeleted:        res.SwipesDeleted,
	})
	if err := uc.publisher.Publish(ctx, event); err != nil {
		uc.log.Warn("failed to publish event", "type", event.Type, "user_id", userID, "error", err)
	}
	return res, nil
}
