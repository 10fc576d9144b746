package memory

import (
	"context"

	"github.com/gdugdh24/matchmaker-backend/internal/domain"
)

type MessageRepository struct {
	store *Store
}

func (r *MessageRepository) GetConversation(ctx context.Context, id int) (*domain.Conversation, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	c, ok := r.store.conversations[id]
	if !ok {
		return nil, domain.ErrConversationNotFound
	}
	out := *c
	return &out, nil
}

func (r *MessageRepository) Create(ctx context.Context, message *domain.Message) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	c, ok := r.store.conversations[message.ConversationID]
	if !ok {
		return domain.ErrConversationNotFound
	}
	now := r.store.now()
	r.store.lastMessageID++
	message.ID = r.store.lastMessageID
	message.SentAt = now
	stored := *message
	r.store.messages[c.ID] = append(r.store.messages[c.ID], &stored)
	c.UpdatedAt = now
	return nil
}

func (r *MessageRepository) ListByConversation(ctx context.Context, conversationID int, limit, offset int) ([]*domain.Message, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	msgs := r.store.messages[conversationID]
	out := make([]*domain.Message, 0, len(msgs))
	for _, m := range msgs {
		c := *m
		out = append(out, &c)
	}
	return paginate(out, limit, offset), nil
}

func (r *MessageRepository) GetLastMessage(ctx context.Context, conversationID int) (*domain.Message, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	msgs := r.store.messages[conversationID]
	if len(msgs) == 0 {
		return nil, nil
	}
	out := *msgs[len(msgs)-1]
	return &out, nil
}

func (r *MessageRepository) CountUnread(ctx context.Context, conversationID, readerID int) (int, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	n := 0
	for _, m := range r.store.messages[conversationID] {
		if m.SenderID != readerID && !m.IsRead {
			n++
		}
	}
	return n, nil
}

func (r *MessageRepository) MarkRead(ctx context.Context, conversationID, readerID int) (int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var n int64
	for _, m := range r.store.messages[conversationID] {
		if m.SenderID != readerID && !m.IsRead {
			m.IsRead = true
			n++
		}
	}
	return n, nil
}
