package feed

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gdugdh24/matchmaker-backend/internal/domain"
	"github.com/gdugdh24/matchmaker-backend/internal/infrastructure/logger"
	"github.com/gdugdh24/matchmaker-backend/internal/infrastructure/metrics"
	"github.com/gdugdh24/matchmaker-backend/internal/infrastructure/tracing"
	"github.com/gdugdh24/matchmaker-backend/internal/matching"
	"github.com/gdugdh24/matchmaker-backend/internal/repository"
)

type FeedUseCase struct {
	profileRepo repository.ProfileRepository
	ranker      *matching.Ranker
	poolSize    int
	log         *logger.Logger
	now         func() time.Time
}

// NewFeedUseCase builds the discovery feed. poolSize caps how many
// candidates are loaded from storage before ranking.
func NewFeedUseCase(
	profileRepo repository.ProfileRepository,
	ranker *matching.Ranker,
	poolSize int,
	log *logger.Logger,
) *FeedUseCase {
	return &FeedUseCase{
		profileRepo: profileRepo,
		ranker:      ranker,
		poolSize:    poolSize,
		log:         log,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// DiscoverRequest carries the optional overrides of a discovery call
type DiscoverRequest struct {
	Limit    int  `form:"limit" binding:"omitempty,min=1,max=100"`
	MinScore *int `form:"min_score" binding:"omitempty,min=0,max=100"`
}

// FeedUserResponse represents a user in the feed
type FeedUserResponse struct {
	UserID               int                           `json:"user_id"`
	DisplayName          string                        `json:"display_name"`
	Age                  *int                          `json:"age,omitempty"`
	Gender               domain.Gender                 `json:"gender,omitempty"`
	DistanceKm           *float64                      `json:"distance_km,omitempty"`
	Compatibility        int                           `json:"compatibility"`
	SharedTagsCount      int                           `json:"shared_tags_count"`
	SharedInterestsCount int                           `json:"shared_interests_count"`
	Breakdown            domain.CompatibilityBreakdown `json:"compatibility_breakdown"`
}

// Discover ranks the viewer's candidate pool and returns the best cards.
func (uc *FeedUseCase) Discover(ctx context.Context, viewerID int, req *DiscoverRequest) ([]*FeedUserResponse, error) {
	ctx, span := tracing.StartSpan(ctx, "feed.Discover")
	defer span.End()

	viewer, err := uc.profileRepo.GetByUserID(ctx, viewerID)
	if err != nil {
		if !errors.Is(err, domain.ErrProfileNotFound) {
			return nil, fmt.Errorf("failed to get viewer profile: %w", err)
		}
		// no facts yet, fall back to unscored candidates
		viewer = nil
	}

	candidates, err := uc.profileRepo.ListCandidates(ctx, viewerID, uc.poolSize)
	if err != nil {
		return nil, fmt.Errorf("failed to list candidates: %w", err)
	}

	opts := uc.ranker.DefaultOptions()
	if req != nil {
		if req.Limit > 0 {
			opts.Limit = req.Limit
		}
		if req.MinScore != nil {
			opts.MinScore = *req.MinScore
		}
	}

	start := time.Now()
	ranked, err := uc.ranker.Rank(ctx, viewer, candidates, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to rank candidates: %w", err)
	}
	metrics.RankDuration.Observe(time.Since(start).Seconds())
	metrics.RankCandidates.Observe(float64(len(candidates)))

	cards := make([]*FeedUserResponse, 0, len(ranked))
	for _, r := range ranked {
		score := r.Score()
		metrics.ObserveScore("discovery", score)
		cards = append(cards, uc.card(r.Candidate, r.Breakdown))
	}

	uc.log.Debug("discovery ranked",
		"viewer_id", viewerID,
		"pool", len(candidates),
		"returned", len(cards),
		"min_score", opts.MinScore,
	)
	return cards, nil
}

// Compatibility scores the viewer against another user without any filtering.
func (uc *FeedUseCase) Compatibility(ctx context.Context, viewerID, otherID int) (*FeedUserResponse, error) {
	ctx, span := tracing.StartSpan(ctx, "feed.Compatibility")
	defer span.End()

	other, err := uc.profileRepo.GetByUserID(ctx, otherID)
	if err != nil {
		if errors.Is(err, domain.ErrProfileNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	viewer, err := uc.profileRepo.GetByUserID(ctx, viewerID)
	if err != nil && !errors.Is(err, domain.ErrProfileNotFound) {
		return nil, fmt.Errorf("failed to get viewer profile: %w", err)
	}

	breakdown := uc.ranker.Pairwise(viewer, other)
	metrics.ObserveScore("pairwise", breakdown.TotalScore())
	return uc.card(other, breakdown), nil
}

func (uc *FeedUseCase) card(p *domain.ProfileFacts, b domain.CompatibilityBreakdown) *FeedUserResponse {
	card := &FeedUserResponse{
		UserID:               p.UserID,
		DisplayName:          p.DisplayName,
		Gender:               p.Gender,
		DistanceKm:           b.DistanceKm,
		Compatibility:        b.TotalScore(),
		SharedTagsCount:      b.SharedTagsCount,
		SharedInterestsCount: b.SharedInterestsCount,
		Breakdown:            b,
	}
	if age, ok := p.AgeAt(uc.now()); ok {
		card.Age = &age
	}
	return card
}
