// Package memory keeps every repository in process memory. It backs the
// "memory" storage driver and the usecase and handler tests.
package memory

import (
	"sync"
	"time"

	"github.com/gdugdh24/matchmaker-backend/internal/domain"
)

type directed struct {
	from, to int
}

type pair struct {
	lo, hi int
}

func newPair(a, b int) pair {
	lo, hi := domain.PairKey(a, b)
	return pair{lo: lo, hi: hi}
}

// Store is shared by the repositories of one process, so that
// multi-table operations stay atomic under a single mutex.
type Store struct {
	mu sync.RWMutex

	profiles      map[int]*domain.ProfileFacts
	swipes        map[directed]*domain.Swipe
	matches       map[pair]*domain.Match
	conversations map[int]*domain.Conversation
	messages      map[int][]*domain.Message
	blocks        map[directed]*domain.Block

	lastSwipeID        int
	lastMatchID        int
	lastConversationID int
	lastMessageID      int
	lastBlockID        int

	now func() time.Time
}

func NewStore() *Store {
	return &Store{
		profiles:      make(map[int]*domain.ProfileFacts),
		swipes:        make(map[directed]*domain.Swipe),
		matches:       make(map[pair]*domain.Match),
		conversations: make(map[int]*domain.Conversation),
		messages:      make(map[int][]*domain.Message),
		blocks:        make(map[directed]*domain.Block),
		now:           func() time.Time { return time.Now().UTC() },
	}
}

// WithClock replaces the timestamp source. Used by tests.
func (s *Store) WithClock(now func() time.Time) *Store {
	s.now = now
	return s
}

func (s *Store) Profiles() *ProfileRepository {
	return &ProfileRepository{store: s}
}

func (s *Store) Swipes() *SwipeRepository {
	return &SwipeRepository{store: s}
}

func (s *Store) Matches() *MatchRepository {
	return &MatchRepository{store: s}
}

func (s *Store) Blocks() *BlockRepository {
	return &BlockRepository{store: s}
}

func (s *Store) Messages() *MessageRepository {
	return &MessageRepository{store: s}
}

// conversationFor must be called with s.mu held.
func (s *Store) conversationFor(matchID int) *domain.Conversation {
	for _, c := range s.conversations {
		if c.MatchID == matchID {
			return c
		}
	}
	return nil
}

// dropConversation must be called with s.mu held. It returns the number of messages removed.
func (s *Store) dropConversation(matchID int) (conversations, messages int64) {
	c := s.conversationFor(matchID)
	if c == nil {
		return 0, 0
	}
	messages = int64(len(s.messages[c.ID]))
	delete(s.messages, c.ID)
	delete(s.conversations, c.ID)
	return 1, messages
}

func (s *Store) dropSwipe(from, to int) int64 {
	key := directed{from: from, to: to}
	if _, ok := s.swipes[key]; !ok {
		return 0
	}
	delete(s.swipes, key)
	return 1
}
