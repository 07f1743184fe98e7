package codec

import (
	"bytes"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gramkit/gram/bin"
)

func payload(n int) *bin.Buffer {
	b := &bin.Buffer{}
	for i := 0; i < n; i++ {
		b.PutInt(i)
	}
	return b
}

func TestIntermediateRoundTrip(t *testing.T) {
	buf := &bytes.Buffer{}
	c := Intermediate{}

	require.NoError(t, c.WriteHeader(buf))
	require.NoError(t, c.ReadHeader(buf))

	msg := payload(25)
	raw := msg.Copy()
	require.NoError(t, c.Write(buf, msg))

	got := &bin.Buffer{}
	require.NoError(t, c.Read(buf, got))
	require.Equal(t, raw, got.Raw())
}

func TestIntermediateHeaderMismatch(t *testing.T) {
	buf := bytes.NewBuffer([]byte{1, 2, 3, 4})
	require.ErrorIs(t, Intermediate{}.ReadHeader(buf), ErrProtocolHeaderMismatch)
}

func TestPaddedIntermediateRoundTrip(t *testing.T) {
	buf := &bytes.Buffer{}
	source := rand.New(rand.NewSource(10))
	c := PaddedIntermediate{Rand: source}

	require.NoError(t, c.WriteHeader(buf))
	require.NoError(t, c.ReadHeader(buf))

	msg := payload(10)
	raw := msg.Copy()
	require.NoError(t, c.Write(buf, msg))

	got := &bin.Buffer{}
	require.NoError(t, c.Read(buf, got))
	require.Equal(t, raw, got.Raw())
}

func TestFullRoundTrip(t *testing.T) {
	buf := &bytes.Buffer{}
	client := &Full{}
	server := &Full{}

	for i := 0; i < 3; i++ {
		msg := payload(5 + i)
		raw := msg.Copy()
		require.NoError(t, client.Write(buf, msg))

		got := &bin.Buffer{}
		require.NoError(t, server.Read(buf, got))
		require.Equal(t, raw, got.Raw())
	}
}

func TestFullCRCMismatch(t *testing.T) {
	buf := &bytes.Buffer{}
	client := &Full{}
	require.NoError(t, client.Write(buf, payload(4)))

	frame := buf.Bytes()
	frame[10] ^= 0xff

	server := &Full{}
	require.ErrorIs(t, server.Read(bytes.NewReader(frame), &bin.Buffer{}), ErrCRCMismatch)
}

func TestFullSeqNoMismatch(t *testing.T) {
	buf := &bytes.Buffer{}
	client := &Full{}
	require.NoError(t, client.Write(buf, payload(4)))
	require.NoError(t, client.Write(buf, payload(4)))

	server := &Full{}
	first := &bin.Buffer{}
	require.NoError(t, server.Read(buf, first))

	// Replaying the first frame breaks the per-direction counter.
	replay := &bytes.Buffer{}
	replayClient := &Full{}
	require.NoError(t, replayClient.Write(replay, payload(4)))
	require.ErrorIs(t, server.Read(replay, &bin.Buffer{}), ErrSeqNoMismatch)
}

func TestObfuscated2HandshakeFrame(t *testing.T) {
	source := rand.New(rand.NewSource(3))
	c := &Obfuscated2{Rand: source}

	buf := &bytes.Buffer{}
	require.NoError(t, c.WriteHeader(buf))

	frame := buf.Bytes()
	require.Len(t, frame, obfuscatedFrameSize)
	require.NotEqual(t, byte(0xef), frame[0])
	magic := uint32(frame[0]) | uint32(frame[1])<<8 | uint32(frame[2])<<16 | uint32(frame[3])<<24
	require.False(t, reserved(magic))
	require.NotEqual(t, []byte{0, 0, 0, 0}, frame[4:8])
}

func TestObfuscated2RoundTrip(t *testing.T) {
	source := rand.New(rand.NewSource(4))
	client := &Obfuscated2{Rand: source}

	wire := &bytes.Buffer{}
	require.NoError(t, client.WriteHeader(wire))

	// Server side derives its ciphers from the handshake frame: its
	// write stream is the byte-wise reversal of the client key block.
	frame := wire.Next(obfuscatedFrameSize)
	var inverted [48]byte
	for i := 0; i < 48; i++ {
		inverted[47-i] = frame[8+i]
	}
	serverEnc, err := newCTR(inverted[:32], inverted[32:48])
	require.NoError(t, err)

	msg := payload(9)
	raw := msg.Copy()

	// Emulate server sending an intermediate frame through its stream.
	serverFrame := make([]byte, 0, msg.Len()+4)
	serverFrame = append(serverFrame, byte(msg.Len()), byte(msg.Len()>>8), byte(msg.Len()>>16), byte(msg.Len()>>24))
	serverFrame = append(serverFrame, msg.Raw()...)
	serverEnc.XORKeyStream(serverFrame, serverFrame)

	got := &bin.Buffer{}
	require.NoError(t, client.Read(bytes.NewReader(serverFrame), got))
	require.Equal(t, raw, got.Raw())
}
