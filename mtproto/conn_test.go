package mtproto

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/gramkit/gram/bin"
	"github.com/gramkit/gram/mt"
	"github.com/gramkit/gram/proto"
)

func newTestConn(t *testing.T) *Conn {
	t.Helper()
	return New(nil, Options{})
}

func TestSeqNo(t *testing.T) {
	c := newTestConn(t)

	// Content-related messages get odd numbers, service messages get
	// the current even number.
	require.Equal(t, int32(1), c.seqNo(true))
	require.Equal(t, int32(2), c.seqNo(false))
	require.Equal(t, int32(3), c.seqNo(true))
	require.Equal(t, int32(5), c.seqNo(true))
	require.Equal(t, int32(6), c.seqNo(false))
	require.Equal(t, int32(6), c.seqNo(false))
}

func TestEncodePayloadCompression(t *testing.T) {
	c := newTestConn(t)

	small := &mt.PingRequest{PingID: 1}
	var b bin.Buffer
	require.NoError(t, c.encodePayload(small, &b))
	id, err := b.PeekID()
	require.NoError(t, err)
	require.Equal(t, uint32(mt.PingRequestTypeID), id)

	big := &mt.MsgsAck{MsgIDs: make([]int64, 512)}
	require.NoError(t, c.encodePayload(big, &b))
	id, err = b.PeekID()
	require.NoError(t, err)
	require.Equal(t, uint32(proto.GZIPTypeID), id)

	// Containers are never compressed.
	container := proto.MessageContainer{Messages: []proto.Message{
		{ID: 1, SeqNo: 1, Body: make([]byte, 4096)},
	}}
	require.NoError(t, c.encodePayload(container, &b))
	id, err = b.PeekID()
	require.NoError(t, err)
	require.Equal(t, uint32(proto.MessageContainerTypeID), id)
}

func TestSalts(t *testing.T) {
	var s salts
	now := time.Unix(1000, 0)

	_, ok := s.Get(now, now.Add(time.Minute))
	require.False(t, ok)

	s.Store([]mt.FutureSalt{
		{ValidSince: 900, ValidUntil: 1100, Salt: 1},
		{ValidSince: 1050, ValidUntil: 2900, Salt: 2},
		{ValidSince: 2800, ValidUntil: 4700, Salt: 3},
	})

	// Salt 1 is valid now, but expires within the deadline.
	salt, ok := s.Get(now, now.Add(30*time.Minute))
	require.False(t, ok, "no salt covers a 30 minute deadline at t=1000")
	_ = salt

	salt, ok = s.Get(now, now.Add(time.Minute))
	require.True(t, ok)
	require.Equal(t, int64(1), salt)

	// At t=1200 the first salt is expired and pruned.
	later := time.Unix(1200, 0)
	salt, ok = s.Get(later, later.Add(time.Minute))
	require.True(t, ok)
	require.Equal(t, int64(2), salt)
	require.Equal(t, 2, s.Count(later))

	s.Reset()
	require.Equal(t, 0, s.Count(later))
}

func TestSaltsDeduplicate(t *testing.T) {
	var s salts
	s.Store([]mt.FutureSalt{{ValidSince: 10, ValidUntil: 100, Salt: 1}})
	s.Store([]mt.FutureSalt{{ValidSince: 10, ValidUntil: 100, Salt: 2}})

	now := time.Unix(20, 0)
	require.Equal(t, 1, s.Count(now))
	salt, ok := s.Get(now, now)
	require.True(t, ok)
	require.Equal(t, int64(2), salt)
}

func TestBadMessageError(t *testing.T) {
	err := &badMessageError{Code: mt.ErrMsgIDTooLow}
	require.Contains(t, err.Error(), "msg_id too low")
	require.Contains(t, (&badMessageError{Code: 12345}).Error(), "unknown")
}

func TestAckQueue(t *testing.T) {
	c := newTestConn(t)

	c.queueAck(1)
	c.queueAck(2)
	require.Equal(t, []int64{1, 2}, c.stealAcks())
	require.Empty(t, c.stealAcks())

	// Full batch triggers a flush notification.
	for i := 0; i < c.ackBatchSize; i++ {
		c.queueAck(int64(i))
	}
	select {
	case <-c.ackFlush:
	default:
		t.Fatal("expected flush notification")
	}
}
