package mtproto

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/gramkit/gram/bin"
	"github.com/gramkit/gram/crypto"
	"github.com/gramkit/gram/mt"
	"github.com/gramkit/gram/proto"
	"github.com/gramkit/gram/testutil"
)

type testEvent struct{}

const testEventTypeID = 0x5717da40

func (testEvent) Encode(b *bin.Buffer) error {
	b.PutID(testEventTypeID)
	return nil
}

type countingHandler struct {
	messages int
}

func (h *countingHandler) OnMessage(b *bin.Buffer) error   { h.messages++; return nil }
func (h *countingHandler) OnSession(session Session) error { return nil }

func newReadTestConn(t *testing.T, now time.Time) (*Conn, *countingHandler) {
	t.Helper()

	var key crypto.Key
	for i := range key {
		key[i] = byte(i)
	}
	h := &countingHandler{}
	c := New(nil, Options{
		Clock:   testutil.NewClock(now),
		Handler: h,
		Key:     key.WithID(),
	})
	c.sessionID = 10
	return c, h
}

func encryptServerMessage(t *testing.T, c *Conn, msgID int64, payload bin.Encoder) *bin.Buffer {
	t.Helper()

	var body bin.Buffer
	require.NoError(t, body.Encode(payload))

	cipher := crypto.NewServerCipher(testutil.ZeroRand{})
	var b bin.Buffer
	require.NoError(t, cipher.Encrypt(c.session().Key, crypto.EncryptedMessageData{
		SessionID:              c.sessionID,
		MessageID:              msgID,
		MessageDataLen:         int32(body.Len()),
		MessageDataWithPadding: body.Raw(),
	}, &b))
	return &b
}

func TestConsumeMessageTimeWindow(t *testing.T) {
	now := time.Unix(1000000, 0)
	c, h := newReadTestConn(t, now)

	// A message stamped with the current time is dispatched.
	fresh := int64(proto.NewMessageID(now, proto.MessageFromServer))
	require.NoError(t, c.consumeMessage(encryptServerMessage(t, c, fresh, testEvent{})))
	require.Equal(t, 1, h.messages)

	// A single out-of-window message is dropped without touching the
	// adopted offset.
	stale := int64(proto.NewMessageID(now.Add(-20*time.Minute), proto.MessageFromServer))
	require.NoError(t, c.consumeMessage(encryptServerMessage(t, c, stale, testEvent{})))
	require.Equal(t, 1, h.messages)
	require.Equal(t, time.Duration(0), c.timeOffset.Load())
}

func TestConsumeMessageAdoptedOffset(t *testing.T) {
	// Local clock is 10 minutes behind the server. With the offset
	// already adopted, messages stamped with true server time must
	// still pass the freshness window.
	now := time.Unix(1000000, 0)
	c, h := newReadTestConn(t, now)
	c.timeOffset.Store(10 * time.Minute)

	msgID := int64(proto.NewMessageID(now.Add(10*time.Minute), proto.MessageFromServer))
	require.NoError(t, c.consumeMessage(encryptServerMessage(t, c, msgID, testEvent{})))
	require.Equal(t, 1, h.messages)
}

func TestConsumeMessageRepeatedSkewAdoptsOffset(t *testing.T) {
	// Without an adopted offset a skewed clock rejects everything,
	// including the bad_msg_notification that would correct it. After
	// repeated rejections the measured drift is adopted directly.
	now := time.Unix(1000000, 0)
	c, h := newReadTestConn(t, now)

	serverTime := now.Add(20 * time.Minute)
	for i := 0; i < windowRejectLimit-1; i++ {
		msgID := int64(proto.NewMessageID(serverTime.Add(time.Duration(i)*time.Millisecond), proto.MessageFromServer))
		require.NoError(t, c.consumeMessage(encryptServerMessage(t, c, msgID, testEvent{})))
		require.Equal(t, 0, h.messages)
		require.Equal(t, time.Duration(0), c.timeOffset.Load())
	}

	// The rejection that hits the limit adopts the drift and is
	// dispatched itself.
	msgID := int64(proto.NewMessageID(serverTime.Add(time.Second), proto.MessageFromServer))
	require.NoError(t, c.consumeMessage(encryptServerMessage(t, c, msgID, testEvent{})))
	require.Equal(t, 1, h.messages)
	require.InDelta(t, (20 * time.Minute).Seconds(), c.timeOffset.Load().Seconds(), 5)

	// Subsequent messages stamped with server time pass immediately.
	msgID = int64(proto.NewMessageID(serverTime.Add(2*time.Second), proto.MessageFromServer))
	require.NoError(t, c.consumeMessage(encryptServerMessage(t, c, msgID, testEvent{})))
	require.Equal(t, 2, h.messages)
}

func TestHandleBadMsgAdoptsOffset(t *testing.T) {
	c := newTestConn(t)
	c.lastMeasured.Store(5 * time.Second)

	var b bin.Buffer
	require.NoError(t, b.Encode(&mt.BadMsgNotification{
		BadMsgID:  1,
		ErrorCode: mt.ErrMsgIDTooLow,
	}))
	require.NoError(t, c.handleBadMsg(&b))
	require.Equal(t, 5*time.Second, c.timeOffset.Load())

	// Codes other than 16 and 17 leave the offset untouched.
	c.lastMeasured.Store(time.Minute)
	b.Reset()
	require.NoError(t, b.Encode(&mt.BadMsgNotification{
		BadMsgID:  2,
		ErrorCode: mt.ErrSeqNoTooLow,
	}))
	require.NoError(t, c.handleBadMsg(&b))
	require.Equal(t, 5*time.Second, c.timeOffset.Load())
}
