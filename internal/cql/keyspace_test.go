package cql

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cqlbridge/cqlbridge-go/internal/exception"
	"github.com/cqlbridge/cqlbridge-go/trace"
)

func TestKeyspaceName(t *testing.T) {
	for _, tt := range []struct {
		keyspace      string
		caseSensitive bool
		exp           string
		err           bool
	}{
		{keyspace: "Shop", exp: "shop"},
		{keyspace: "Shop", caseSensitive: true, exp: "Shop"},
		{keyspace: "ks_1", exp: "ks_1"},
		{keyspace: strings.Repeat("k", 48), exp: strings.Repeat("k", 48)},
		{keyspace: strings.Repeat("k", 49), err: true},
		{keyspace: "", err: true},
		{keyspace: "ks; DROP TABLE t", err: true},
		{keyspace: `"quoted"`, caseSensitive: true, err: true},
	} {
		t.Run(tt.keyspace, func(t *testing.T) {
			name, err := KeyspaceName(tt.keyspace, tt.caseSensitive)
			if tt.err {
				require.ErrorIs(t, err, errInvalidKeyspace)

				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.exp, name)
		})
	}
}

func TestUseKeyspaceInvalidName(t *testing.T) {
	var traced error
	s := &Session{trace: &trace.Bridge{
		OnSessionUseKeyspace: func(
			info trace.BridgeSessionUseKeyspaceStartInfo,
		) func(
			trace.BridgeSessionUseKeyspaceDoneInfo,
		) {
			require.Equal(t, "bad-name", info.Keyspace)
			require.True(t, info.CaseSensitive)

			return func(info trace.BridgeSessionUseKeyspaceDoneInfo) {
				traced = info.Error
			}
		},
	}}
	err := s.UseKeyspace(context.Background(), "bad-name", true)
	require.ErrorIs(t, err, errInvalidKeyspace)
	require.Equal(t, exception.Execution, exception.KindOf(err))
	require.Equal(t, err, traced)
}
