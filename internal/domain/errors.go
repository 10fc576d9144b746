package domain

import "errors"

var (
	ErrProfileNotFound      = errors.New("profile not found")
	ErrInvalidPreferences   = errors.New("invalid preferences")
	ErrSwipeAlreadyExists   = errors.New("already acted on this candidate")
	ErrInvalidSwipeAction   = errors.New("invalid action")
	ErrCannotSwipeSelf      = errors.New("cannot swipe on yourself")
	ErrSwipeNotFound        = errors.New("swipe not found")
	ErrMatchNotFound        = errors.New("match not found")
	ErrMatchInactive        = errors.New("match is no longer active")
	ErrBlockAlreadyExists   = errors.New("user already blocked")
	ErrBlockNotFound        = errors.New("block not found")
	ErrCannotBlockSelf      = errors.New("cannot block yourself")
	ErrUserBlocked          = errors.New("user is blocked")
	ErrInvalidBlockReason   = errors.New("invalid block reason")
	ErrConversationNotFound = errors.New("conversation not found")
	ErrInvalidMessage       = errors.New("invalid message")
	ErrInvalidToken         = errors.New("invalid token")
	ErrLockNotAcquired      = errors.New("pair lock not acquired")
)
