package cql

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/cqlbridge/cqlbridge-go/internal/exception"
	"github.com/cqlbridge/cqlbridge-go/internal/xerrors"
	"github.com/cqlbridge/cqlbridge-go/trace"
)

const keyspaceQuery = "SELECT keyspace_name FROM system_schema.keyspaces WHERE keyspace_name = ?"

var (
	keyspacePattern = regexp.MustCompile(`^[A-Za-z0-9_]{1,48}$`)

	errInvalidKeyspace = errors.New("cqlbridge: invalid keyspace name")
)

// KeyspaceName validates keyspace and returns the name as stored in the
// schema. Case insensitive names are folded to lower case.
func KeyspaceName(keyspace string, caseSensitive bool) (string, error) {
	if !keyspacePattern.MatchString(keyspace) {
		return "", xerrors.WithStackTrace(fmt.Errorf("%w: %q", errInvalidKeyspace, keyspace))
	}
	if !caseSensitive {
		return strings.ToLower(keyspace), nil
	}

	return keyspace, nil
}

// UseKeyspace switches the session to keyspace. The driver binds the
// keyspace per connection, so a new driver session is opened and swapped in.
// Every failure is reported as an execution error.
func (s *Session) UseKeyspace(ctx context.Context, keyspace string, caseSensitive bool) (finalErr error) {
	onDone := trace.BridgeOnSessionUseKeyspace(s.trace, ctx, keyspace, caseSensitive)
	defer func() {
		onDone(finalErr)
	}()

	err := s.useKeyspace(ctx, keyspace, caseSensitive)
	if err != nil {
		return exception.WithKind(exception.Execution, err)
	}

	return nil
}

func (s *Session) useKeyspace(ctx context.Context, keyspace string, caseSensitive bool) error {
	name, err := KeyspaceName(keyspace, caseSensitive)
	if err != nil {
		return err
	}
	c, err := s.current()
	if err != nil {
		return err
	}
	defer c.release()

	var found string
	iter := c.session.Query(keyspaceQuery, name).WithContext(ctx).Iter()
	exists := iter.Scan(&found)
	if err := iter.Close(); err != nil {
		return xerrors.WithStackTrace(err)
	}
	if !exists {
		return xerrors.WithStackTrace(fmt.Errorf("cqlbridge: keyspace %q does not exist", name))
	}
	if name == s.Keyspace() {
		return nil
	}

	cluster := s.cluster
	cluster.Keyspace = name
	// host policies keep per session state
	cluster.PoolConfig.HostSelectionPolicy = hostPolicy(s.lb)
	session, err := cluster.CreateSession()
	if err != nil {
		return xerrors.WithStackTrace(err)
	}

	return s.swap(newConn(session), name)
}

// swap installs next as the session's driver session. The previous one
// stays open for the row sets still reading from it.
func (s *Session) swap(next *conn, keyspace string) error {
	prev := next
	s.m.WithLock(func() {
		if s.conn == nil {
			return
		}
		prev, s.conn, s.keyspace = s.conn, next, keyspace
	})
	prev.release()
	if prev == next {
		return xerrors.WithStackTrace(errClosed)
	}

	return nil
}
