package services

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Dosada05/cs2-arena/repositories"
)

func TestHandleRepositoryError(t *testing.T) {
	other := errors.New("boom")
	tests := []struct {
		in   error
		want error
	}{
		{nil, nil},
		{repositories.ErrTeamNotFound, ErrTeamNotFound},
		{fmt.Errorf("wrapped: %w", repositories.ErrMatchNotFound), ErrMatchNotFound},
		{repositories.ErrGroupNotFound, ErrGroupNotFound},
		{repositories.ErrBracketMatchNotFound, ErrBracketMatchNotFound},
		{repositories.ErrTeamNameConflict, ErrTeamNameConflict},
		{repositories.ErrMatchPairConflict, ErrDuplicatePairing},
		{other, other},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, handleRepositoryError(tt.in))
	}
}

func TestKeyedMutex_SerializesSameKey(t *testing.T) {
	km := newKeyedMutex()
	var inside, maxInside int32
	var wg sync.WaitGroup

	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			// разный порядок ключей не должен приводить к взаимной блокировке
			keys := []string{"group:A", "group:B"}
			if i%2 == 1 {
				keys = []string{"group:B", "group:A", "group:B"}
			}
			unlock := km.Lock(keys...)
			n := atomic.AddInt32(&inside, 1)
			for {
				m := atomic.LoadInt32(&maxInside)
				if n <= m || atomic.CompareAndSwapInt32(&maxInside, m, n) {
					break
				}
			}
			atomic.AddInt32(&inside, -1)
			unlock()
		}(i)
	}
	wg.Wait()

	assert.Equal(t, int32(1), maxInside)
	assert.Empty(t, km.locks)
}

func TestKeyedMutex_IndependentKeys(t *testing.T) {
	km := newKeyedMutex()
	unlockA := km.Lock("stage:a")
	done := make(chan struct{})
	go func() {
		unlock := km.Lock("stage:b")
		unlock()
		close(done)
	}()
	<-done
	unlockA()
	assert.Empty(t, km.locks)
}

func TestUniqueSorted(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, uniqueSorted([]string{"c", "a", "b", "a"}))
	assert.Empty(t, uniqueSorted(nil))
}
