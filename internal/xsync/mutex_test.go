package xsync

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMutex(t *testing.T) {
	for i := 0; i < 100; i++ {
		var m Mutex
		a, b := 1, 1

		var wg sync.WaitGroup
		f := func() {
			defer wg.Done()

			if a+b == 2 {
				a = 2
			} else {
				b = 2
			}
		}

		wg.Add(2)
		go m.WithLock(f)
		go m.WithLock(f)

		wg.Wait()
		require.Equal(t, 2, a)
		require.Equal(t, 2, b)
	}
}

func TestWithLock(t *testing.T) {
	t.Run("Result", func(t *testing.T) {
		var m Mutex
		v, err := WithLock(&m, func() (int, error) {
			return 42, nil
		})
		require.NoError(t, err)
		require.Equal(t, 42, v)
		require.True(t, m.TryLock())
		m.Unlock()
	})
	t.Run("ErrorReleases", func(t *testing.T) {
		var m Mutex
		errTest := errors.New("test")
		_, err := WithLock(&m, func() (struct{}, error) {
			return struct{}{}, errTest
		})
		require.ErrorIs(t, err, errTest)
		require.True(t, m.TryLock())
		m.Unlock()
	})
	t.Run("PanicReleases", func(t *testing.T) {
		var m Mutex
		require.Panics(t, func() {
			_, _ = WithLock(&m, func() (int, error) {
				panic("test")
			})
		})
		require.True(t, m.TryLock())
		m.Unlock()
	})
}
