package cql

import (
	"sync/atomic"

	"github.com/gocql/gocql"
)

// conn is a driver session shared by the Session and the row sets it
// opened. The driver session is closed when the last owner releases it.
type conn struct {
	session *gocql.Session
	closer  interface{ Close() }
	refs    atomic.Int64
}

func newConn(session *gocql.Session) *conn {
	c := &conn{session: session, closer: session}
	c.refs.Store(1)

	return c
}

// acquire adds an owner, it fails once the last owner is gone
func (c *conn) acquire() bool {
	for {
		n := c.refs.Load()
		if n <= 0 {
			return false
		}
		if c.refs.CompareAndSwap(n, n+1) {
			return true
		}
	}
}

func (c *conn) release() {
	if c.refs.Add(-1) == 0 {
		c.closer.Close()
	}
}
