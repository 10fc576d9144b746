package lock

import (
	"context"
	"fmt"
	"hash/fnv"

	"github.com/gdugdh24/matchmaker-backend/internal/domain"
)

// PairLocker serializes work on an unordered pair of users.
type PairLocker interface {
	// LockPair blocks until the pair is held or ctx ends. The returned func releases it.
	LockPair(ctx context.Context, a, b int) (func(), error)
}

func pairKey(a, b int) string {
	lo, hi := domain.PairKey(a, b)
	return fmt.Sprintf("match:pair:%d:%d", lo, hi)
}

// LocalLocker is an in-process PairLocker backed by a fixed set of striped slots.
type LocalLocker struct {
	slots []chan struct{}
}

func NewLocalLocker(stripes int) *LocalLocker {
	if stripes <= 0 {
		stripes = 256
	}
	slots := make([]chan struct{}, stripes)
	for i := range slots {
		slots[i] = make(chan struct{}, 1)
	}
	return &LocalLocker{slots: slots}
}

func (l *LocalLocker) LockPair(ctx context.Context, a, b int) (func(), error) {
	h := fnv.New32a()
	_, _ = h.Write([]byte(pairKey(a, b)))
	slot := l.slots[h.Sum32()%uint32(len(l.slots))]

	select {
	case slot <- struct{}{}:
		return func() { <-slot }, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
