package cql

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cqlbridge/cqlbridge-go/trace"
)

type closeCounter struct {
	n atomic.Int32
}

func (c *closeCounter) Close() {
	c.n.Add(1)
}

func fakeConn() (*conn, *closeCounter) {
	closer := &closeCounter{}
	c := &conn{closer: closer}
	c.refs.Store(1)

	return c, closer
}

func TestConnRelease(t *testing.T) {
	c, closer := fakeConn()
	require.True(t, c.acquire())
	c.release()
	require.Zero(t, closer.n.Load())

	c.release()
	require.EqualValues(t, 1, closer.n.Load())
	require.False(t, c.acquire())
}

func TestSessionCloseKeepsOpenRowSets(t *testing.T) {
	c, closer := fakeConn()
	s := &Session{conn: c, trace: &trace.Bridge{}}

	held, err := s.current()
	require.NoError(t, err)

	s.Close()
	require.Zero(t, closer.n.Load())
	_, err = s.current()
	require.ErrorIs(t, err, errClosed)

	held.release()
	require.EqualValues(t, 1, closer.n.Load())
}

func TestSwapKeepsOpenRowSets(t *testing.T) {
	prev, prevCloser := fakeConn()
	s := &Session{conn: prev, keyspace: "ks1", trace: &trace.Bridge{}}

	held, err := s.current()
	require.NoError(t, err)

	next, nextCloser := fakeConn()
	require.NoError(t, s.swap(next, "ks2"))
	require.Equal(t, "ks2", s.Keyspace())
	require.Zero(t, prevCloser.n.Load())

	current, err := s.current()
	require.NoError(t, err)
	require.Same(t, next, current)
	current.release()

	held.release()
	require.EqualValues(t, 1, prevCloser.n.Load())

	s.Close()
	require.EqualValues(t, 1, nextCloser.n.Load())
}

func TestSwapOnClosedSession(t *testing.T) {
	s := &Session{trace: &trace.Bridge{}}
	next, closer := fakeConn()
	require.ErrorIs(t, s.swap(next, "ks"), errClosed)
	require.EqualValues(t, 1, closer.n.Load())
	require.Empty(t, s.Keyspace())

	_, err := s.Prepare(context.Background(), "SELECT * FROM t")
	require.ErrorIs(t, err, errClosed)
}
