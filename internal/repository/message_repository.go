package repository

import (
	"context"

	"github.com/gdugdh24/matchmaker-backend/internal/domain"
)

type MessageRepository interface {
	GetConversation(ctx context.Context, id int) (*domain.Conversation, error)
	// Create stores the message and bumps the conversation's updated_at.
	Create(ctx context.Context, message *domain.Message) error
	ListByConversation(ctx context.Context, conversationID int, limit, offset int) ([]*domain.Message, error)
	GetLastMessage(ctx context.Context, conversationID int) (*domain.Message, error)
	CountUnread(ctx context.Context, conversationID, readerID int) (int, error)
	// MarkRead flags every message in the conversation not sent by readerID as read.
	MarkRead(ctx context.Context, conversationID, readerID int) (int64, error)
}
