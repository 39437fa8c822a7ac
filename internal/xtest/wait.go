package xtest

import (
	"testing"
	"time"
)

const commonWaitTimeout = time.Second * 10

func WaitChannelClosed(t testing.TB, ch <-chan struct{}) {
	t.Helper()

	select {
	case <-time.After(commonWaitTimeout):
		t.Fatal("failed to wait channel closed")
	case <-ch:
		// pass
	}
}

// WaitValue returns the first value received from ch or fails the test
func WaitValue[T any](t testing.TB, ch chan T) T {
	t.Helper()

	select {
	case <-time.After(commonWaitTimeout):
		t.Fatal("failed to wait value")
	case v := <-ch:
		return v
	}

	panic("unreachable")
}
