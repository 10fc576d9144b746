package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/huandu/go-sqlbuilder"
	"github.com/jmoiron/sqlx"

	"github.com/gdugdh24/matchmaker-backend/internal/domain"
	"github.com/gdugdh24/matchmaker-backend/internal/infrastructure/tracing"
	"github.com/gdugdh24/matchmaker-backend/internal/repository"
)

type swipeRepository struct {
	db *sqlx.DB
}

func NewSwipeRepository(db *sqlx.DB) repository.SwipeRepository {
	return &swipeRepository{db: db}
}

func (r *swipeRepository) Create(ctx context.Context, swipe *domain.Swipe) error {
	ctx, span := tracing.StartSpan(ctx, "postgres.swipeRepository.Create")
	defer span.End()

	query := `
		INSERT INTO swipes (from_user_id, to_user_id, action)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`
	err := r.db.QueryRowContext(ctx, query, swipe.FromUserID, swipe.ToUserID, swipe.Action).
		Scan(&swipe.ID, &swipe.CreatedAt)
	if hasCode(err, uniqueViolation) {
		return domain.ErrSwipeAlreadyExists
	}
	return err
}

func (r *swipeRepository) GetByUsers(ctx context.Context, fromUserID, toUserID int) (*domain.Swipe, error) {
	ctx, span := tracing.StartSpan(ctx, "postgres.swipeRepository.GetByUsers")
	defer span.End()

	var swipe domain.Swipe
	query := `SELECT id, from_user_id, to_user_id, action, created_at FROM swipes WHERE from_user_id = $1 AND to_user_id = $2`
	if err := r.db.GetContext(ctx, &swipe, query, fromUserID, toUserID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrSwipeNotFound
		}
		return nil, err
	}
	return &swipe, nil
}

func (r *swipeRepository) HasLiked(ctx context.Context, fromUserID, toUserID int) (bool, error) {
	ctx, span := tracing.StartSpan(ctx, "postgres.swipeRepository.HasLiked")
	defer span.End()

	var liked bool
	query := `SELECT EXISTS (SELECT 1 FROM swipes WHERE from_user_id = $1 AND to_user_id = $2 AND action = $3)`
	err := r.db.GetContext(ctx, &liked, query, fromUserID, toUserID, domain.SwipeLike)
	return liked, err
}

func (r *swipeRepository) GetLikesReceived(ctx context.Context, userID int, limit, offset int) ([]*domain.Swipe, error) {
	ctx, span := tracing.StartSpan(ctx, "postgres.swipeRepository.GetLikesReceived")
	defer span.End()

	sb := sqlbuilder.PostgreSQL.NewSelectBuilder()
	sb.Select("s.id", "s.from_user_id", "s.to_user_id", "s.action", "s.created_at")
	sb.From("swipes s")
	sb.Where(
		sb.Equal("s.to_user_id", userID),
		sb.Equal("s.action", domain.SwipeLike),
		"NOT EXISTS (SELECT 1 FROM swipes r WHERE r.from_user_id = s.to_user_id AND r.to_user_id = s.from_user_id)",
	)
	sb.OrderBy("s.id DESC")
	if limit > 0 {
		sb.Limit(limit)
	}
	sb.Offset(offset)

	query, args := sb.Build()
	var swipes []*domain.Swipe
	err := r.db.SelectContext(ctx, &swipes, query, args...)
	return swipes, err
}
