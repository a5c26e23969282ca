package booking

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPlaceLocker_MutualExclusion(t *testing.T) {
	locker := NewPlaceLocker()

	const workers = 32
	inside := 0
	maxInside := 0
	var guard sync.Mutex
	var wg sync.WaitGroup

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			release := locker.Acquire(7)
			defer release()

			guard.Lock()
			inside++
			if inside > maxInside {
				maxInside = inside
			}
			guard.Unlock()

			guard.Lock()
			inside--
			guard.Unlock()
		}()
	}
	wg.Wait()

	require.Equal(t, 1, maxInside, "more than one holder inside the critical section")
}

func TestPlaceLocker_DistinctPlacesDoNotContend(t *testing.T) {
	locker := NewPlaceLocker()

	releaseA := locker.Acquire(1)
	defer releaseA()

	// Acquiring a different place while place 1 is held must not block.
	done := make(chan struct{})
	go func() {
		releaseB := locker.Acquire(2)
		releaseB()
		close(done)
	}()
	<-done
}

func TestPlaceLocker_ReusesSameMutexPerPlace(t *testing.T) {
	locker := NewPlaceLocker()

	release := locker.Acquire(5)
	release()

	// Second acquisition of the same place must go through the same
	// entry rather than allocate a fresh one.
	release = locker.Acquire(5)
	release()
	require.Len(t, locker.locks, 1)
}
