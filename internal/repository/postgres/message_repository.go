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

var messageColumns = []string{"id", "conversation_id", "sender_id", "message_type", "content", "media_url", "is_read", "sent_at"}

type messageRepository struct {
	db *sqlx.DB
}

func NewMessageRepository(db *sqlx.DB) repository.MessageRepository {
	return &messageRepository{db: db}
}

func (r *messageRepository) GetConversation(ctx context.Context, id int) (*domain.Conversation, error) {
	ctx, span := tracing.StartSpan(ctx, "postgres.messageRepository.GetConversation")
	defer span.End()

	var conv domain.Conversation
	query := `SELECT id, match_id, created_at, updated_at FROM conversations WHERE id = $1`
	if err := r.db.GetContext(ctx, &conv, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrConversationNotFound
		}
		return nil, err
	}
	return &conv, nil
}

func (r *messageRepository) Create(ctx context.Context, message *domain.Message) error {
	ctx, span := tracing.StartSpan(ctx, "postgres.messageRepository.Create")
	defer span.End()

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	query := `
		INSERT INTO messages (conversation_id, sender_id, message_type, content, media_url)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, is_read, sent_at
	`
	err = tx.QueryRowxContext(ctx, query,
		message.ConversationID, message.SenderID, message.Type, message.Content, message.MediaURL,
	).Scan(&message.ID, &message.IsRead, &message.SentAt)
	if hasCode(err, foreignKeyViolation) {
		return domain.ErrConversationNotFound
	}
	if err != nil {
		return fmt.Errorf("insert message: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE conversations SET updated_at = $1 WHERE id = $2`, message.SentAt, message.ConversationID,
	); err != nil {
		return fmt.Errorf("touch conversation: %w", err)
	}

	return tx.Commit()
}

func (r *messageRepository) ListByConversation(ctx context.Context, conversationID int, limit, offset int) ([]*domain.Message, error) {
	ctx, span := tracing.StartSpan(ctx, "postgres.messageRepository.ListByConversation")
	defer span.End()

	sb := sqlbuilder.PostgreSQL.NewSelectBuilder()
	sb.Select(messageColumns...)
	sb.From("messages")
	sb.Where(sb.Equal("conversation_id", conversationID))
	sb.OrderBy("sent_at", "id")
	if limit > 0 {
		sb.Limit(limit)
	}
	sb.Offset(offset)

	query, args := sb.Build()
	var messages []*domain.Message
	err := r.db.SelectContext(ctx, &messages, query, args...)
	return messages, err
}

func (r *messageRepository) GetLastMessage(ctx context.Context, conversationID int) (*domain.Message, error) {
	ctx, span := tracing.StartSpan(ctx, "postgres.messageRepository.GetLastMessage")
	defer span.End()

	sb := sqlbuilder.PostgreSQL.NewSelectBuilder()
	sb.Select(messageColumns...)
	sb.From("messages")
	sb.Where(sb.Equal("conversation_id", conversationID))
	sb.OrderBy("sent_at DESC", "id DESC")
	sb.Limit(1)

	query, args := sb.Build()
	var message domain.Message
	if err := r.db.GetContext(ctx, &message, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &message, nil
}

func (r *messageRepository) CountUnread(ctx context.Context, conversationID, readerID int) (int, error) {
	ctx, span := tracing.StartSpan(ctx, "postgres.messageRepository.CountUnread")
	defer span.End()

	var n int
	query := `SELECT COUNT(*) FROM messages WHERE conversation_id = $1 AND sender_id <> $2 AND is_read = false`
	err := r.db.GetContext(ctx, &n, query, conversationID, readerID)
	return n, err
}

func (r *messageRepository) MarkRead(ctx context.Context, conversationID, readerID int) (int64, error) {
	ctx, span := tracing.StartSpan(ctx, "postgres.messageRepository.MarkRead")
	defer span.End()

	result, err := r.db.ExecContext(ctx,
		`UPDATE messages SET is_read = true WHERE conversation_id = $1 AND sender_id <> $2 AND is_read = false`,
		conversationID, readerID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
