package lock

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPairKeyIsOrderIndependent(t *testing.T) {
	assert.Equal(t, pairKey(3, 9), pairKey(9, 3))
	assert.Equal(t, "match:pair:3:9", pairKey(9, 3))
}

func TestLocalLockerSerializesPair(t *testing.T) {
	l := NewLocalLocker(8)

	var inside, maxInside int32
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			a, b := 1, 2
			if i%2 == 0 {
				a, b = b, a
			}
			release, err := l.LockPair(context.Background(), a, b)
			require.NoError(t, err)
			defer release()

			n := atomic.AddInt32(&inside, 1)
			for {
				m := atomic.LoadInt32(&maxInside)
				if n <= m || atomic.CompareAndSwapInt32(&maxInside, m, n) {
					break
				}
			}
			time.Sleep(time.Millisecond)
			atomic.AddInt32(&inside, -1)
		}(i)
	}
	wg.Wait()

	assert.Equal(t, int32(1), maxInside)
}

func TestLocalLockerRespectsContext(t *testing.T) {
	l := NewLocalLocker(1)
	release, err := l.LockPair(context.Background(), 1, 2)
	require.NoError(t, err)
	defer release()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err = l.LockPair(ctx, 2, 1)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
