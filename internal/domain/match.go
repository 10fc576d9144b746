package domain

import "time"

type SwipeAction string

const (
	SwipePass SwipeAction = "pass"
	SwipeLike SwipeAction = "like"
)

func (a SwipeAction) IsValid() bool {
	return a == SwipePass || a == SwipeLike
}

// Swipe is a directed, immutable action from one user on another.
type Swipe struct {
	ID         int         `json:"id" db:"id"`
	FromUserID int         `json:"from_user" db:"from_user_id"`
	ToUserID   int         `json:"to_user" db:"to_user_id"`
	Action     SwipeAction `json:"action" db:"action"`
	CreatedAt  time.Time   `json:"created_at" db:"created_at"`
}

// Match is an undirected pairing. User1ID is always the smaller id.
type Match struct {
	ID                   int                    `json:"id" db:"id"`
	User1ID              int                    `json:"user1_id" db:"user1_id"`
	User2ID              int                    `json:"user2_id" db:"user2_id"`
	IsActive             bool                   `json:"is_active" db:"is_active"`
	CompatibilityScore   int                    `json:"compatibility_score" db:"compatibility_score"`
	SharedTagsCount      int                    `json:"shared_tags_count" db:"shared_tags_count"`
	SharedInterestsCount int                    `json:"shared_interests_count" db:"shared_interests_count"`
	Breakdown            CompatibilityBreakdown `json:"compatibility_breakdown" db:"compatibility_breakdown"`
	ConversationID       int                    `json:"conversation_id" db:"conversation_id"`
	MatchedAt            time.Time              `json:"matched_at" db:"matched_at"`
}

func (m *Match) HasUser(userID int) bool {
	return m.User1ID == userID || m.User2ID == userID
}

func (m *Match) GetOtherUserID(userID int) (int, bool) {
	if m.User1ID == userID {
		return m.User2ID, true
	}
	if m.User2ID == userID {
		return m.User1ID, true
	}
	return 0, false
}

// PairKey returns the two ids ordered so that the first is the smaller.
func PairKey(a, b int) (int, int) {
	if a > b {
		return b, a
	}
	return a, b
}

type Conversation struct {
	ID        int       `json:"id" db:"id"`
	MatchID   int       `json:"match_id" db:"match_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

type MessageType string

const (
	MessageText       MessageType = "text"
	MessageVoice      MessageType = "voice"
	MessageImage      MessageType = "image"
	MessageIcebreaker MessageType = "icebreaker"
)

func (t MessageType) IsValid() bool {
	switch t {
	case MessageText, MessageVoice, MessageImage, MessageIcebreaker:
		return true
	}
	return false
}

type Message struct {
	ID             int         `json:"id" db:"id"`
	ConversationID int         `json:"conversation_id" db:"conversation_id"`
	SenderID       int         `json:"sender_id" db:"sender_id"`
	Type           MessageType `json:"message_type" db:"message_type"`
	Content        string      `json:"content" db:"content"`
	MediaURL       *string     `json:"media_url" db:"media_url"`
	IsRead         bool        `json:"is_read" db:"is_read"`
	SentAt         time.Time   `json:"sent_at" db:"sent_at"`
}

type BlockReason string

const (
	BlockSpam          BlockReason = "spam"
	BlockInappropriate BlockReason = "inappropriate"
	BlockHarassment    BlockReason = "harassment"
	BlockFake          BlockReason = "fake"
	BlockOther         BlockReason = "other"
)

func (r BlockReason) IsValid() bool {
	switch r {
	case "", BlockSpam, BlockInappropriate, BlockHarassment, BlockFake, BlockOther:
		return true
	}
	return false
}

type Block struct {
	ID          int         `json:"id" db:"id"`
	BlockerID   int         `json:"blocker" db:"blocker_id"`
	BlockedID   int         `json:"blocked" db:"blocked_id"`
	Reason      BlockReason `json:"reason" db:"reason"`
	Description string      `json:"description" db:"description"`
	CreatedAt   time.Time   `json:"created_at" db:"created_at"`
}

// CleanupResult counts the rows removed by a user's match reset.
type CleanupResult struct {
	MessagesDeleted      int64 `json:"messages_deleted"`
	ConversationsDeleted int64 `json:"conversations_deleted"`
	MatchesDeleted       int64 `json:"matches_deleted"`
	SwipesDeleted        int64 `json:"swipes_deleted"`
}
