package proto

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gramkit/gram/bin"
)

func TestMessageContainerRoundTrip(t *testing.T) {
	container := MessageContainer{
		Messages: []Message{
			{ID: 1 << 33, SeqNo: 1, Body: []byte{1, 2, 3, 4}},
			{ID: (1 << 33) + 4, SeqNo: 3, Body: []byte{5, 6, 7, 8, 9, 10, 11, 12}},
		},
	}

	b := bin.Buffer{}
	require.NoError(t, container.Encode(&b))

	var decoded MessageContainer
	require.NoError(t, decoded.Decode(&b))
	require.Len(t, decoded.Messages, 2)
	for i, msg := range decoded.Messages {
		require.Equal(t, container.Messages[i].ID, msg.ID)
		require.Equal(t, container.Messages[i].SeqNo, msg.SeqNo)
		require.Equal(t, container.Messages[i].Body, msg.Body)
	}
}

func TestMessageContainerInvalidCount(t *testing.T) {
	b := bin.Buffer{}
	b.PutID(MessageContainerTypeID)
	b.PutInt(1 << 30)

	var decoded MessageContainer
	require.Error(t, decoded.Decode(&b))
}

func TestGZIPRoundTrip(t *testing.T) {
	payload := make([]byte, 4096)
	for i := range payload {
		payload[i] = byte(i % 7)
	}

	b := bin.Buffer{}
	require.NoError(t, GZIP{Data: payload}.Encode(&b))
	// Compressible data must actually shrink.
	require.Less(t, b.Len(), len(payload))

	var decoded GZIP
	require.NoError(t, decoded.Decode(&b))
	require.Equal(t, payload, decoded.Data)
}

func TestUnencryptedMessageRoundTrip(t *testing.T) {
	msg := UnencryptedMessage{
		MessageID:   1 << 40,
		MessageData: []byte{1, 2, 3, 4},
	}

	b := bin.Buffer{}
	require.NoError(t, msg.Encode(&b))

	var decoded UnencryptedMessage
	require.NoError(t, decoded.Decode(&b))
	require.Equal(t, msg.MessageID, decoded.MessageID)
	require.Equal(t, msg.MessageData, decoded.MessageData)
}
