package schema

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gramkit/gram/mt"
)

func TestLoad(t *testing.T) {
	s, err := Load()
	require.NoError(t, err)
	require.NotEmpty(t, s.Definitions())

	name, ok := s.NameByID(mt.ResPQTypeID)
	require.True(t, ok)
	require.Equal(t, "res_pq", name)

	id, ok := s.IDByName("ping_delay_disconnect")
	require.True(t, ok)
	require.Equal(t, uint32(mt.PingDelayDisconnectRequestTypeID), id)

	id, ok = s.IDByName("rpc_error")
	require.True(t, ok)
	require.Equal(t, uint32(mt.RPCErrorTypeID), id)

	_, ok = s.NameByID(0xdeadbeef)
	require.False(t, ok)
	_, ok = s.IDByName("no_such_constructor")
	require.False(t, ok)
}
