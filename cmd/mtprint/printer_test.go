package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gramkit/gram/bin"
	"github.com/gramkit/gram/mt"
	"github.com/gramkit/gram/proto/codec"
)

func Test_readAndPrint(t *testing.T) {
	c := codec.Intermediate{}

	input := &bytes.Buffer{}
	buf := &bin.Buffer{}

	objects := []bin.Object{
		&mt.RPCError{ErrorCode: 420, ErrorMessage: "FLOOD_WAIT_5"},
		&mt.Pong{MsgID: 1, PingID: 2},
		&mt.MsgsAck{MsgIDs: []int64{3}},
	}
	for _, o := range objects {
		buf.Reset()
		require.NoError(t, o.Encode(buf))
		require.NoError(t, c.Write(input, buf))
	}

	output := &bytes.Buffer{}
	require.NoError(t, NewPrinter(input, formats("go"), c).Print(output))
	out := output.String()
	require.Contains(t, out, "RPCError")
	require.Contains(t, out, "Pong")
	require.Contains(t, out, "MsgsAck")
}
