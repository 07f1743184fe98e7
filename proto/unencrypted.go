package proto

import (
	"github.com/go-faster/errors"

	"github.com/gramkit/gram/bin"
)

// UnencryptedMessage is a plaintext message, used only during the
// initial key exchange.
type UnencryptedMessage struct {
	MessageID   int64
	MessageData []byte
}

// Encode implements bin.Encoder.
func (m UnencryptedMessage) Encode(b *bin.Buffer) error {
	// Zero auth_key_id marks the message as unencrypted.
	b.PutLong(0)
	b.PutLong(m.MessageID)
	b.PutInt(len(m.MessageData))
	b.Put(m.MessageData)
	return nil
}

// Decode implements bin.Decoder.
func (m *UnencryptedMessage) Decode(b *bin.Buffer) error {
	{
		v, err := b.Long()
		if err != nil {
			return errors.Wrap(err, "auth_key_id")
		}
		if v != 0 {
			return errors.New("unexpected non-zero auth_key_id")
		}
	}
	{
		v, err := b.Long()
		if err != nil {
			return errors.Wrap(err, "message_id")
		}
		m.MessageID = v
	}
	{
		n, err := b.Int()
		if err != nil {
			return errors.Wrap(err, "message_data_length")
		}
		data, err := b.Consume(n)
		if err != nil {
			return errors.Wrap(err, "message_data")
		}
		m.MessageData = data
	}
	return nil
}

// TypesMap returns mapping from type ids of this package to TL names.
func TypesMap() map[uint32]string {
	return map[uint32]string{
		MessageContainerTypeID: "msg_container",
		GZIPTypeID:             "gzip_packed",
	}
}
