package bin

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBufferRoundTrip(t *testing.T) {
	b := Buffer{}
	b.PutID(0xa8509bda)
	b.PutInt(1)
	b.PutInt32(-42)
	b.PutUint32(0xdeadbeef)
	b.PutLong(-1 << 62)
	b.PutUint64(1 << 63)
	b.PutDouble(3.14159)
	b.PutBool(true)
	b.PutBool(false)
	b.PutString("layer")
	b.PutBytes([]byte{1, 2, 3})

	require.NoError(t, b.ConsumeID(0xa8509bda))
	{
		v, err := b.Int()
		require.NoError(t, err)
		require.Equal(t, 1, v)
	}
	{
		v, err := b.Int32()
		require.NoError(t, err)
		require.Equal(t, int32(-42), v)
	}
	{
		v, err := b.Uint32()
		require.NoError(t, err)
		require.Equal(t, uint32(0xdeadbeef), v)
	}
	{
		v, err := b.Long()
		require.NoError(t, err)
		require.Equal(t, int64(-1<<62), v)
	}
	{
		v, err := b.Uint64()
		require.NoError(t, err)
		require.Equal(t, uint64(1<<63), v)
	}
	{
		v, err := b.Double()
		require.NoError(t, err)
		require.Equal(t, 3.14159, v)
	}
	{
		v, err := b.Bool()
		require.NoError(t, err)
		require.True(t, v)
	}
	{
		v, err := b.Bool()
		require.NoError(t, err)
		require.False(t, v)
	}
	{
		v, err := b.String()
		require.NoError(t, err)
		require.Equal(t, "layer", v)
	}
	{
		v, err := b.Bytes()
		require.NoError(t, err)
		require.Equal(t, []byte{1, 2, 3}, v)
	}
	require.Zero(t, b.Len())
}

func TestStringPadding(t *testing.T) {
	for _, tt := range []struct {
		value   string
		encoded int
	}{
		{"", 4},
		{"a", 4},
		{"ab", 4},
		{"abc", 4},
		{"abcd", 8},
		{"abcdefg", 8},
		{strings.Repeat("a", 253), 256},
		{strings.Repeat("a", 254), 260},
		{strings.Repeat("a", 1000), 1004},
	} {
		b := Buffer{}
		b.PutString(tt.value)
		require.Equal(t, tt.encoded, b.Len(), "value length %d", len(tt.value))
		require.Zero(t, b.Len()%Word)

		v, err := b.String()
		require.NoError(t, err)
		require.Equal(t, tt.value, v)
		require.Zero(t, b.Len())
	}
}

func TestDecodeTruncated(t *testing.T) {
	b := Buffer{}
	b.PutID(0x1234)
	b.PutLong(10)
	b.PutString("some long enough string value")
	b.PutVectorHeader(3)
	b.PutInt128(Int128{1})
	valid := b.Copy()

	// Any proper prefix of a valid encoding must fail with ErrTruncated
	// instead of reading out of bounds.
	for i := 0; i < len(valid); i++ {
		buf := Buffer{Buf: valid[:i]}
		for {
			if _, err := buf.ID(); err != nil {
				require.ErrorIs(t, err, ErrTruncated)
				break
			}
		}
	}

	buf := Buffer{}
	_, err := buf.String()
	require.ErrorIs(t, err, ErrTruncated)
	_, err = buf.Int128()
	require.ErrorIs(t, err, ErrTruncated)
	_, err = buf.Int256()
	require.ErrorIs(t, err, ErrTruncated)
}

func TestVectorHeaderMalformed(t *testing.T) {
	b := Buffer{}
	b.PutVectorHeader(1000)
	b.PutInt(1)

	_, err := b.VectorHeader()
	require.ErrorIs(t, err, ErrMalformed)
}

func TestConsumeIDMismatch(t *testing.T) {
	b := Buffer{}
	b.PutID(0xcafebabe)

	err := b.ConsumeID(0xdeadbeef)
	var unexpected *UnexpectedIDErr
	require.ErrorAs(t, err, &unexpected)
	require.Equal(t, uint32(0xcafebabe), unexpected.ID)
	// Buffer is not consumed on mismatch.
	require.Equal(t, Word, b.Len())
}

func TestInt128RoundTrip(t *testing.T) {
	source := rand.New(rand.NewSource(1))
	v, err := RandInt128(source)
	require.NoError(t, err)

	b := Buffer{}
	require.NoError(t, v.Encode(&b))

	var decoded Int128
	require.NoError(t, decoded.Decode(&b))
	require.Equal(t, v, decoded)

	v256, err := RandInt256(source)
	require.NoError(t, err)
	require.NoError(t, v256.Encode(&b))

	var decoded256 Int256
	require.NoError(t, decoded256.Decode(&b))
	require.Equal(t, v256, decoded256)
}
