package tmap_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gramkit/gram/mt"
	"github.com/gramkit/gram/proto"
	"github.com/gramkit/gram/tmap"
)

func TestMap(t *testing.T) {
	m := tmap.New(
		mt.TypesMap(),
		proto.TypesMap(),
	)
	require.Equal(t, "msgs_ack", m.Get(mt.MsgsAckTypeID))
	require.Equal(t, "gzip_packed", m.Get(proto.GZIPTypeID))
	require.False(t, m.Has(0xdeadbeef))

	var nilMap *tmap.Map
	require.Equal(t, "", nilMap.Get(mt.MsgsAckTypeID))
}

func TestConstructor(t *testing.T) {
	c := tmap.NewConstructor(
		mt.TypesConstructorMap(),
	)
	obj := c.New(mt.PongTypeID)
	require.IsType(t, &mt.Pong{}, obj)
	require.Nil(t, c.New(0xdeadbeef))
}
