package match

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/gdugdh24/matchmaker-backend/internal/config"
	"github.com/gdugdh24/matchmaker-backend/internal/domain"
	"github.com/gdugdh24/matchmaker-backend/internal/infrastructure/logger"
	"github.com/gdugdh24/matchmaker-backend/internal/infrastructure/metrics"
	"github.com/gdugdh24/matchmaker-backend/internal/infrastructure/tracing"
	"github.com/gdugdh24/matchmaker-backend/internal/repository"
)

// supportScore is the fixed compatibility shown on the support conversation.
const supportScore = 100

// MatchUseCase serves match listings, conversations and messages.
type MatchUseCase struct {
	matchRepo   repository.MatchRepository
	messageRepo repository.MessageRepository
	profileRepo repository.ProfileRepository
	support     config.SupportConfig
	log         *logger.Logger
}

func NewMatchUseCase(
	matchRepo repository.MatchRepository,
	messageRepo repository.MessageRepository,
	profileRepo repository.ProfileRepository,
	support config.SupportConfig,
	log *logger.Logger,
) *MatchUseCase {
	return &MatchUseCase{
		matchRepo:   matchRepo,
		messageRepo: messageRepo,
		profileRepo: profileRepo,
		support:     support,
		log:         log,
	}
}

// UserSummary is the other side of a match
type UserSummary struct {
	UserID      int    `json:"user_id"`
	DisplayName string `json:"display_name"`
}

// MatchResponse represents a match with the other user
type MatchResponse struct {
	*domain.Match
	OtherUser UserSummary `json:"other_user"`
}

// ConversationResponse represents a conversation list item
type ConversationResponse struct {
	ID          int             `json:"id"`
	MatchID     int             `json:"match_id"`
	OtherUser   UserSummary     `json:"other_user"`
	LastMessage *domain.Message `json:"last_message"`
	UnreadCount int             `json:"unread_count"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// SendMessageRequest represents a new chat message
type SendMessageRequest struct {
	Type     domain.MessageType `json:"message_type" binding:"omitempty,oneof=text voice image icebreaker"`
	Content  string             `json:"content" binding:"max=4000"`
	MediaURL *string            `json:"media_url" binding:"omitempty,url"`
}

// ListMatches returns the user's active matches, newest first.
func (uc *MatchUseCase) ListMatches(ctx context.Context, userID int) ([]*MatchResponse, error) {
	ctx, span := tracing.StartSpan(ctx, "match.ListMatches")
	defer span.End()

	matches, err := uc.matchRepo.GetActiveMatches(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get matches: %w", err)
	}

	out := make([]*MatchResponse, 0, len(matches))
	for _, m := range matches {
		otherID, _ := m.GetOtherUserID(userID)
		out = append(out, &MatchResponse{
			Match:     m,
			OtherUser: uc.summary(ctx, otherID),
		})
	}
	return out, nil
}

// ListConversations returns the conversations of active matches, most recently updated first.
func (uc *MatchUseCase) ListConversations(ctx context.Context, userID int) ([]*ConversationResponse, error) {
	ctx, span := tracing.StartSpan(ctx, "match.ListConversations")
	defer span.End()

	matches, err := uc.matchRepo.GetActiveMatches(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get matches: %w", err)
	}

	out := make([]*ConversationResponse, 0, len(matches))
	for _, m := range matches {
		if m.ConversationID == 0 {
			continue
		}
		conv, err := uc.messageRepo.GetConversation(ctx, m.ConversationID)
		if err != nil {
			if errors.Is(err, domain.ErrConversationNotFound) {
				continue
			}
			return nil, fmt.Errorf("failed to get conversation: %w", err)
		}
		last, err := uc.messageRepo.GetLastMessage(ctx, conv.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to get last message: %w", err)
		}
		unread, err := uc.messageRepo.CountUnread(ctx, conv.ID, userID)
		if err != nil {
			return nil, fmt.Errorf("failed to count unread messages: %w", err)
		}

		otherID, _ := m.GetOtherUserID(userID)
		out = append(out, &ConversationResponse{
			ID:          conv.ID,
			MatchID:     m.ID,
			OtherUser:   uc.summary(ctx, otherID),
			LastMessage: last,
			UnreadCount: unread,
			UpdatedAt:   conv.UpdatedAt,
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].UpdatedAt.After(out[j].UpdatedAt)
	})
	return out, nil
}

// GetMessages returns a page of the conversation and marks the other side's messages read.
func (uc *MatchUseCase) GetMessages(ctx context.Context, userID, conversationID, limit, offset int) ([]*domain.Message, error) {
	ctx, span := tracing.StartSpan(ctx, "match.GetMessages")
	defer span.End()

	if _, err := uc.participantMatch(ctx, userID, conversationID); err != nil {
		return nil, err
	}

	if _, err := uc.messageRepo.MarkRead(ctx, conversationID, userID); err != nil {
		return nil, fmt.Errorf("failed to mark messages read: %w", err)
	}

	messages, err := uc.messageRepo.ListByConversation(ctx, conversationID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	return messages, nil
}

// SendMessage appends a message to a conversation of an active match.
func (uc *MatchUseCase) SendMessage(ctx context.Context, senderID, conversationID int, req *SendMessageRequest) (*domain.Message, error) {
	ctx, span := tracing.StartSpan(ctx, "match.SendMessage")
	defer span.End()

	msgType := req.Type
	if msgType == "" {
		msgType = domain.MessageText
	}
	content := strings.TrimSpace(req.Content)
	if !msgType.IsValid() || (msgType == domain.MessageText && content == "") {
		return nil, domain.ErrInvalidMessage
	}

	m, err := uc.participantMatch(ctx, senderID, conversationID)
	if err != nil {
		return nil, err
	}
	if !m.IsActive {
		return nil, domain.ErrMatchInactive
	}

	message := &domain.Message{
		ConversationID: conversationID,
		SenderID:       senderID,
		Type:           msgType,
		Content:        content,
		MediaURL:       req.MediaURL,
	}
	if err := uc.messageRepo.Create(ctx, message); err != nil {
		if errors.Is(err, domain.ErrConversationNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to create message: %w", err)
	}
	return message, nil
}

// EnsureSupportMatch gives the user an active match with the support account,
// with a welcome message from support. It does nothing when the match exists.
func (uc *MatchUseCase) EnsureSupportMatch(ctx context.Context, userID int) (*domain.Match, error) {
	supportID := uc.support.UserID
	if supportID == 0 || supportID == userID {
		return nil, nil
	}

	ctx, span := tracing.StartSpan(ctx, "match.EnsureSupportMatch")
	defer span.End()

	existing, err := uc.matchRepo.GetByUsers(ctx, userID, supportID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, domain.ErrMatchNotFound) {
		return nil, fmt.Errorf("failed to get support match: %w", err)
	}

	m := &domain.Match{
		User1ID:            userID,
		User2ID:            supportID,
		IsActive:           true,
		CompatibilityScore: supportScore,
	}
	created, err := uc.matchRepo.CreateWithConversation(ctx, m)
	if err != nil {
		return nil, fmt.Errorf("failed to create support match: %w", err)
	}
	if !created {
		return m, nil
	}
	metrics.RecordMatchEvent(metrics.MatchCreated)

	if uc.support.WelcomeMessage != "" {
		welcome := &domain.Message{
			ConversationID: m.ConversationID,
			SenderID:       supportID,
			Type:           domain.MessageText,
			Content:        uc.support.WelcomeMessage,
		}
		if err := uc.messageRepo.Create(ctx, welcome); err != nil {
			return nil, fmt.Errorf("failed to send welcome message: %w", err)
		}
	}

	uc.log.Info("support match created", "match_id", m.ID, "user_id", userID)
	return m, nil
}

// participantMatch loads the match behind a conversation. Non-participants
// get ErrConversationNotFound so that conversation ids are not probeable.
func (uc *MatchUseCase) participantMatch(ctx context.Context, userID, conversationID int) (*domain.Match, error) {
	conv, err := uc.messageRepo.GetConversation(ctx, conversationID)
	if err != nil {
		if errors.Is(err, domain.ErrConversationNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get conversation: %w", err)
	}

	m, err := uc.matchRepo.GetByID(ctx, conv.MatchID)
	if err != nil {
		if errors.Is(err, domain.ErrMatchNotFound) {
			return nil, domain.ErrConversationNotFound
		}
		return nil, fmt.Errorf("failed to get match: %w", err)
	}
	if !m.HasUser(userID) {
		return nil, domain.ErrConversationNotFound
	}
	return m, nil
}

func (uc *MatchUseCase) summary(ctx context.Context, userID int) UserSummary {
	s := UserSummary{UserID: userID}
	p, err := uc.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		if !errors.Is(err, domain.ErrProfileNotFound) {
			uc.log.Warn("failed to load profile summary", "user_id", userID, "error", err)
		}
		return s
	}
	s.DisplayName = p.DisplayName
	return s
}
