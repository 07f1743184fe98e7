package proto

import (
	"github.com/go-faster/errors"

	"github.com/gramkit/gram/bin"
)

// MessageContainerTypeID is TL type id of msg_container.
const MessageContainerTypeID = 0x73f1f8dc

// maxMessagesInContainer caps decoded container size.
const maxMessagesInContainer = 1024

// Message is a single message inside a container, a bare TL type:
//
//	message msg_id:long seqno:int bytes:int body:Object = Message;
type Message struct {
	ID    int64
	SeqNo int
	Bytes int
	Body  []byte
}

// EncodeBare implements bin.BareEncoder.
func (m Message) EncodeBare(b *bin.Buffer) error {
	b.PutLong(m.ID)
	b.PutInt(m.SeqNo)
	b.PutInt(len(m.Body))
	b.Put(m.Body)
	return nil
}

// DecodeBare implements bin.BareDecoder.
func (m *Message) DecodeBare(b *bin.Buffer) error {
	{
		v, err := b.Long()
		if err != nil {
			return errors.Wrap(err, "msg_id")
		}
		m.ID = v
	}
	{
		v, err := b.Int()
		if err != nil {
			return errors.Wrap(err, "seqno")
		}
		m.SeqNo = v
	}
	{
		v, err := b.Int()
		if err != nil {
			return errors.Wrap(err, "bytes")
		}
		if v%4 != 0 {
			return errors.Wrap(bin.ErrMalformed, "body length not aligned")
		}
		m.Bytes = v
	}
	{
		v, err := b.Consume(m.Bytes)
		if err != nil {
			return errors.Wrap(err, "body")
		}
		m.Body = v
	}
	return nil
}

// MessageContainer contains a batch of messages packed into one
// envelope:
//
//	msg_container#73f1f8dc messages:vector<%Message> = MessageContainer;
type MessageContainer struct {
	Messages []Message
}

// Encode implements bin.Encoder.
func (m MessageContainer) Encode(b *bin.Buffer) error {
	b.PutID(MessageContainerTypeID)
	// Bare vector of bare messages.
	b.PutInt(len(m.Messages))
	for _, msg := range m.Messages {
		if err := msg.EncodeBare(b); err != nil {
			return err
		}
	}
	return nil
}

// Decode implements bin.Decoder.
func (m *MessageContainer) Decode(b *bin.Buffer) error {
	if err := b.ConsumeID(MessageContainerTypeID); err != nil {
		return errors.Wrap(err, "msg_container")
	}
	n, err := b.Int()
	if err != nil {
		return errors.Wrap(err, "count")
	}
	if n < 0 || n > maxMessagesInContainer {
		return errors.Wrap(bin.ErrMalformed, "invalid container length")
	}
	m.Messages = m.Messages[:0]
	for i := 0; i < n; i++ {
		var msg Message
		if err := msg.DecodeBare(b); err != nil {
			return errors.Wrap(err, "message")
		}
		m.Messages = append(m.Messages, msg)
	}
	return nil
}
