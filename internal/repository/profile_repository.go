package repository

import (
	"context"

	"github.com/gdugdh24/matchmaker-backend/internal/domain"
)

type ProfileRepository interface {
	GetByUserID(ctx context.Context, userID int) (*domain.ProfileFacts, error)
	// Upsert reports whether the profile row was created by this call.
	Upsert(ctx context.Context, facts *domain.ProfileFacts) (created bool, err error)
	// ListCandidates returns visible profiles other than the viewer's that
	// the viewer has not swiped and that are not blocked in either direction.
	ListCandidates(ctx context.Context, viewerID int, limit int) ([]*domain.ProfileFacts, error)
}
