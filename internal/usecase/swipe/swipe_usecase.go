package swipe

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/gdugdh24/matchmaker-backend/internal/domain"
	"github.com/gdugdh24/matchmaker-backend/internal/infrastructure/events"
	"github.com/gdugdh24/matchmaker-backend/internal/infrastructure/lock"
	"github.com/gdugdh24/matchmaker-backend/internal/infrastructure/logger"
	"github.com/gdugdh24/matchmaker-backend/internal/infrastructure/metrics"
	"github.com/gdugdh24/matchmaker-backend/internal/infrastructure/tracing"
	"github.com/gdugdh24/matchmaker-backend/internal/matching"
	"github.com/gdugdh24/matchmaker-backend/internal/repository"
)

// SwipeUseCase records swipes and owns every match state transition:
// creation on mutual like, deactivation on block, deletion on unmatch and reset.
type SwipeUseCase struct {
	swipeRepo   repository.SwipeRepository
	matchRepo   repository.MatchRepository
	profileRepo repository.ProfileRepository
	blockRepo   repository.BlockRepository
	locker      lock.PairLocker
	ranker      *matching.Ranker
	publisher   events.Publisher
	log         *logger.Logger
}

func NewSwipeUseCase(
	swipeRepo repository.SwipeRepository,
	matchRepo repository.MatchRepository,
	profileRepo repository.ProfileRepository,
	blockRepo repository.BlockRepository,
	locker lock.PairLocker,
	ranker *matching.Ranker,
	publisher events.Publisher,
	log *logger.Logger,
) *SwipeUseCase {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &SwipeUseCase{
		swipeRepo:   swipeRepo,
		matchRepo:   matchRepo,
		profileRepo: profileRepo,
		blockRepo:   blockRepo,
		locker:      locker,
		ranker:      ranker,
		publisher:   publisher,
		log:         log,
	}
}

// SwipeRequest represents a swipe action
type SwipeRequest struct {
	ToUserID int                `json:"to_user" binding:"required,gt=0"`
	Action   domain.SwipeAction `json:"action" binding:"required,oneof=pass like"`
}

// SwipeResponse represents swipe result
type SwipeResponse struct {
	IsMatch bool          `json:"is_match"`
	Swipe   *domain.Swipe `json:"swipe"`
	Match   *domain.Match `json:"match,omitempty"`
}

// LikeReceived is a pending like the user has not answered yet
type LikeReceived struct {
	SwipeID     int       `json:"swipe_id"`
	UserID      int       `json:"user_id"`
	DisplayName string    `json:"display_name"`
	CreatedAt   time.Time `json:"created_at"`
}

// CreateSwipe records the actor's action on the target and creates the match on a mutual like.
// Events go out after the pair lock is released.
func (uc *SwipeUseCase) CreateSwipe(ctx context.Context, actorID int, req *SwipeRequest) (*SwipeResponse, error) {
	ctx, span := tracing.StartSpan(ctx, "swipe.CreateSwipe")
	defer span.End()

	if actorID == req.ToUserID {
		return nil, domain.ErrCannotSwipeSelf
	}
	if !req.Action.IsValid() {
		return nil, domain.ErrInvalidSwipeAction
	}

	response, created, err := uc.recordSwipe(ctx, actorID, req)
	if err != nil {
		return nil, err
	}
	if created {
		uc.publish(ctx, events.TypeMatchCreated, response.Match, actorID)
	}
	return response, nil
}

// recordSwipe runs under the pair lock. created is true only for the call that inserted the match.
func (uc *SwipeUseCase) recordSwipe(ctx context.Context, actorID int, req *SwipeRequest) (*SwipeResponse, bool, error) {
	unlock, err := uc.locker.LockPair(ctx, actorID, req.ToUserID)
	if err != nil {
		return nil, false, fmt.Errorf("lock pair: %w", err)
	}
	defer unlock()

	blocked, err := uc.blockRepo.IsBlocked(ctx, actorID, req.ToUserID)
	if err != nil {
		return nil, false, fmt.Errorf("failed to check block: %w", err)
	}
	if blocked {
		return nil, false, domain.ErrUserBlocked
	}

	swipe := &domain.Swipe{
		FromUserID: actorID,
		ToUserID:   req.ToUserID,
		Action:     req.Action,
	}
	if err := uc.swipeRepo.Create(ctx, swipe); err != nil {
		if errors.Is(err, domain.ErrSwipeAlreadyExists) {
			metrics.DuplicateSwipesTotal.Inc()
			return nil, false, err
		}
		return nil, false, fmt.Errorf("failed to create swipe: %w", err)
	}
	metrics.RecordSwipe(string(req.Action))

	response := &SwipeResponse{Swipe: swipe}
	if req.Action != domain.SwipeLike {
		return response, false, nil
	}

	mutual, err := uc.swipeRepo.HasLiked(ctx, req.ToUserID, actorID)
	if err != nil {
		return nil, false, fmt.Errorf("failed to check mutual like: %w", err)
	}
	if !mutual {
		return response, false, nil
	}

	match, created, err := uc.createMatch(ctx, actorID, req.ToUserID)
	if err != nil {
		return nil, false, err
	}
	response.IsMatch = true
	response.Match = match
	return response, created, nil
}

func (uc *SwipeUseCase) createMatch(ctx context.Context, actorID, targetID int) (*domain.Match, bool, error) {
	p1, err := uc.facts(ctx, actorID)
	if err != nil {
		return nil, false, err
	}
	p2, err := uc.facts(ctx, targetID)
	if err != nil {
		return nil, false, err
	}

	breakdown := uc.ranker.Pairwise(p1, p2)
	match := &domain.Match{
		User1ID:              actorID,
		User2ID:              targetID,
		IsActive:             true,
		CompatibilityScore:   breakdown.TotalScore(),
		SharedTagsCount:      breakdown.SharedTagsCount,
		SharedInterestsCount: breakdown.SharedInterestsCount,
		Breakdown:            breakdown,
	}

	created, err := uc.matchRepo.CreateWithConversation(ctx, match)
	if err != nil {
		return nil, false, fmt.Errorf("failed to create match: %w", err)
	}
	if !created {
		metrics.MatchRacesTotal.Inc()
		uc.log.Info("mutual like resolved to existing match", "match_id", match.ID, "actor_id", actorID)
		return match, false, nil
	}

	metrics.RecordMatchEvent(metrics.MatchCreated)
	metrics.ObserveScore("match", match.CompatibilityScore)
	uc.log.Info("match created",
		"match_id", match.ID,
		"user1_id", match.User1ID,
		"user2_id", match.User2ID,
		"score", match.CompatibilityScore,
	)
	return match, true, nil
}

// facts loads a profile, treating a missing one as nil so scoring degrades instead of failing.
func (uc *SwipeUseCase) facts(ctx context.Context, userID int) (*domain.ProfileFacts, error) {
	p, err := uc.profileRepo.GetByUserID(ctx, userID)
	if errors.Is(err, domain.ErrProfileNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load profile %d: %w", userID, err)
	}
	return p, nil
}

// GetLikesReceived returns likes on the user that the user has not answered
func (uc *SwipeUseCase) GetLikesReceived(ctx context.Context, userID int, limit, offset int) ([]*LikeReceived, error) {
	likes, err := uc.swipeRepo.GetLikesReceived(ctx, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to get likes received: %w", err)
	}

	out := make([]*LikeReceived, 0, len(likes))
	for _, like := range likes {
		item := &LikeReceived{
			SwipeID:   like.ID,
			UserID:    like.FromUserID,
			CreatedAt: like.CreatedAt,
		}
		if p, err := uc.facts(ctx, like.FromUserID); err == nil && p != nil {
			item.DisplayName = p.DisplayName
		}
		out = append(out, item)
	}
	return out, nil
}

func (uc *SwipeUseCase) publish(ctx context.Context, eventType string, match *domain.Match, actorID int) {
	event := events.New(eventType, strconv.Itoa(match.ID), events.MatchData{
		MatchID:            match.ID,
		User1ID:            match.User1ID,
		User2ID:            match.User2ID,
		ConversationID:     match.ConversationID,
		CompatibilityScore: match.CompatibilityScore,
		ActorID:            actorID,
	})
	if err := uc.publisher.Publish(ctx, event); err != nil {
		uc.log.Warn("failed to publish event", "type", eventType, "match_id", match.ID, "error", err)
	}
}
