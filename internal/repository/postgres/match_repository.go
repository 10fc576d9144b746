package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/huandu/go-sqlbuilder"
	"github.com/jmoiron/sqlx"

	"github.com/gdugdh24/matchmaker-backend/internal/domain"
	"github.com/gdugdh24/matchmaker-backend/internal/infrastructure/tracing"
	"github.com/gdugdh24/matchmaker-backend/internal/repository"
)

var matchColumns = []string{
	"m.id", "m.user1_id", "m.user2_id", "m.is_active", "m.compatibility_score",
	"m.shared_tags_count", "m.shared_interests_count", "m.compatibility_breakdown",
	"COALESCE(c.id, 0) AS conversation_id", "m.matched_at",
}

type matchRepository struct {
	db *sqlx.DB
}

func NewMatchRepository(db *sqlx.DB) repository.MatchRepository {
	return &matchRepository{db: db}
}

func (r *matchRepository) selectMatches() *sqlbuilder.SelectBuilder {
	sb := sqlbuilder.PostgreSQL.NewSelectBuilder()
	sb.Select(matchColumns...)
	sb.From("matches m")
	sb.JoinWithOption(sqlbuilder.LeftJoin, "conversations c", "c.match_id = m.id")
	return sb
}

func (r *matchRepository) getOne(ctx context.Context, sb *sqlbuilder.SelectBuilder) (*domain.Match, error) {
	query, args := sb.Build()
	var match domain.Match
	if err := r.db.GetContext(ctx, &match, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrMatchNotFound
		}
		return nil, err
	}
	return &match, nil
}

func (r *matchRepository) CreateWithConversation(ctx context.Context, match *domain.Match) (bool, error) {
	ctx, span := tracing.StartSpan(ctx, "postgres.matchRepository.CreateWithConversation")
	defer span.End()

	// Ensure user1_id < user2_id for constraint
	match.User1ID, match.User2ID = domain.PairKey(match.User1ID, match.User2ID)

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	query := `
		INSERT INTO matches (user1_id, user2_id, is_active, compatibility_score,
			shared_tags_count, shared_interests_count, compatibility_breakdown)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (user1_id, user2_id) DO NOTHING
		RETURNING id, matched_at
	`
	err = tx.QueryRowxContext(ctx, query,
		match.User1ID, match.User2ID, match.IsActive, match.CompatibilityScore,
		match.SharedTagsCount, match.SharedInterestsCount, match.Breakdown,
	).Scan(&match.ID, &match.MatchedAt)
	if errors.Is(err, sql.ErrNoRows) {
		// the other direction committed first
		_ = tx.Rollback()
		existing, err := r.GetByUsers(ctx, match.User1ID, match.User2ID)
		if err != nil {
			return false, err
		}
		*match = *existing
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("insert match: %w", err)
	}

	err = tx.QueryRowxContext(ctx,
		`INSERT INTO conversations (match_id) VALUES ($1) RETURNING id`, match.ID,
	).Scan(&match.ConversationID)
	if err != nil {
		return false, fmt.Errorf("insert conversation: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("commit: %w", err)
	}
	return true, nil
}

func (r *matchRepository) GetByID(ctx context.Context, id int) (*domain.Match, error) {
	ctx, span := tracing.StartSpan(ctx, "postgres.matchRepository.GetByID")
	defer span.End()

	sb := r.selectMatches()
	sb.Where(sb.Equal("m.id", id))
	return r.getOne(ctx, sb)
}

func (r *matchRepository) GetByUsers(ctx context.Context, user1ID, user2ID int) (*domain.Match, error) {
	ctx, span := tracing.StartSpan(ctx, "postgres.matchRepository.GetByUsers")
	defer span.End()

	user1ID, user2ID = domain.PairKey(user1ID, user2ID)
	sb := r.selectMatches()
	sb.Where(sb.Equal("m.user1_id", user1ID), sb.Equal("m.user2_id", user2ID))
	return r.getOne(ctx, sb)
}

func (r *matchRepository) GetActiveMatches(ctx context.Context, userID int) ([]*domain.Match, error) {
	ctx, span := tracing.StartSpan(ctx, "postgres.matchRepository.GetActiveMatches")
	defer span.End()

	sb := r.selectMatches()
	sb.Where(
		sb.Or(sb.Equal("m.user1_id", userID), sb.Equal("m.user2_id", userID)),
		sb.Equal("m.is_active", true),
	)
	sb.OrderBy("m.matched_at DESC", "m.id DESC")

	query, args := sb.Build()
	var matches []*domain.Match
	err := r.db.SelectContext(ctx, &matches, query, args...)
	return matches, err
}

func (r *matchRepository) DeactivatePair(ctx context.Context, user1ID, user2ID int) (*domain.Match, error) {
	ctx, span := tracing.StartSpan(ctx, "postgres.matchRepository.DeactivatePair")
	defer span.End()

	user1ID, user2ID = domain.PairKey(user1ID, user2ID)
	result, err := r.db.ExecContext(ctx,
		`UPDATE matches SET is_active = false WHERE user1_id = $1 AND user2_id = $2`, user1ID, user2ID)
	if err != nil {
		return nil, err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		return nil, domain.ErrMatchNotFound
	}
	return r.GetByUsers(ctx, user1ID, user2ID)
}

func (r *matchRepository) DeletePair(ctx context.Context, user1ID, user2ID int) (domain.CleanupResult, error) {
	ctx, span := tracing.StartSpan(ctx, "postgres.matchRepository.DeletePair")
	defer span.End()

	var res domain.CleanupResult
	lo, hi := domain.PairKey(user1ID, user2ID)

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return res, fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var matchID int
	err = tx.GetContext(ctx, &matchID,
		`SELECT id FROM matches WHERE user1_id = $1 AND user2_id = $2 FOR UPDATE`, lo, hi)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return res, domain.ErrMatchNotFound
		}
		return res, err
	}

	steps := []struct {
		dst   *int64
		query string
		args  []interface{}
	}{
		{&res.MessagesDeleted, `DELETE FROM messages WHERE conversation_id IN (SELECT id FROM conversations WHERE match_id = $1)`, []interface{}{matchID}},
		{&res.ConversationsDeleted, `DELETE FROM conversations WHERE match_id = $1`, []interface{}{matchID}},
		{&res.MatchesDeleted, `DELETE FROM matches WHERE id = $1`, []interface{}{matchID}},
		{&res.SwipesDeleted, `DELETE FROM swipes WHERE (from_user_id = $1 AND to_user_id = $2) OR (from_user_id = $2 AND to_user_id = $1)`, []interface{}{lo, hi}},
	}
	for _, step := range steps {
		if *step.dst, err = execCount(ctx, tx, step.query, step.args...); err != nil {
			return domain.CleanupResult{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		return domain.CleanupResult{}, fmt.Errorf("commit: %w", err)
	}
	return res, nil
}

func (r *matchRepository) PurgeUser(ctx context.Context, userID int) (domain.CleanupResult, error) {
	ctx, span := tracing.StartSpan(ctx, "postgres.matchRepository.PurgeUser")
	defer span.End()

	var res domain.CleanupResult
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return res, fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	steps := []struct {
		dst   *int64
		query string
	}{
		{&res.MessagesDeleted, `DELETE FROM messages WHERE sender_id = $1`},
		{&res.ConversationsDeleted, `DELETE FROM conversations WHERE match_id IN (SELECT id FROM matches WHERE user1_id = $1 OR user2_id = $1)`},
		{&res.MatchesDeleted, `DELETE FROM matches WHERE user1_id = $1 OR user2_id = $1`},
		{&res.SwipesDeleted, `DELETE FROM swipes WHERE from_user_id = $1 OR to_user_id = $1`},
	}
	for _, step := range steps {
		if *step.dst, err = execCount(ctx, tx, step.query, userID); err != nil {
			return domain.CleanupResult{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		return domain.CleanupResult{}, fmt.Errorf("commit: %w", err)
	}
	return res, nil
}
