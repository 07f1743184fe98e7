package mtproto

import (
	"context"

	"github.com/go-faster/errors"

	"github.com/gramkit/gram/bin"
	"github.com/gramkit/gram/crypto"
	"github.com/gramkit/gram/mt"
	"github.com/gramkit/gram/proto"
)

// seqNo returns the next sequence number. Content-related messages
// bump the counter, service messages like acks do not.
func (c *Conn) seqNo(content bool) int32 {
	c.seqMux.Lock()
	defer c.seqMux.Unlock()

	current := c.sentContentMessages * 2
	if content {
		current++
		c.sentContentMessages++
	}
	return current
}

func (c *Conn) newMessageID() int64 {
	return c.messageID.New(proto.MessageFromClient)
}

// encodePayload encodes payload, compressing it when it is large
// enough. Containers are never compressed.
func (c *Conn) encodePayload(payload bin.Encoder, b *bin.Buffer) error {
	b.Reset()
	if err := payload.Encode(b); err != nil {
		return errors.Wrap(err, "encode payload")
	}
	if c.compressThreshold <= 0 || b.Len() <= c.compressThreshold {
		return nil
	}
	if id, err := b.PeekID(); err == nil && id == proto.MessageContainerTypeID {
		return nil
	}

	gz := proto.GZIP{Data: b.Copy()}
	b.Reset()
	if err := gz.Encode(b); err != nil {
		return errors.Wrap(err, "compress payload")
	}
	return nil
}

// newEncryptedMessage encrypts payload into a full MTProto envelope.
func (c *Conn) newEncryptedMessage(id int64, seq int32, payload bin.Encoder, b *bin.Buffer) error {
	var plaintext bin.Buffer
	if err := c.encodePayload(payload, &plaintext); err != nil {
		return err
	}

	s := c.session()
	d := crypto.EncryptedMessageData{
		Salt:                   s.Salt,
		SessionID:              s.ID,
		MessageID:              id,
		SeqNo:                  seq,
		MessageDataLen:         int32(plaintext.Len()),
		MessageDataWithPadding: plaintext.Buf,
	}
	if err := c.cipher.Encrypt(s.Key, d, b); err != nil {
		return errors.Wrap(err, "encrypt")
	}
	return nil
}

func (c *Conn) write(ctx context.Context, msgID int64, seqNo int32, message bin.Encoder) error {
	b := new(bin.Buffer)
	if err := c.newEncryptedMessage(msgID, seqNo, message, b); err != nil {
		return err
	}
	return c.conn.Send(ctx, b)
}

// writeServiceMessage writes a message that is not content-related.
func (c *Conn) writeServiceMessage(ctx context.Context, message bin.Encoder) error {
	return c.write(ctx, c.newMessageID(), c.seqNo(false), message)
}

// writeContentMessage writes a content-related message outside of the
// rpc engine, for requests that are answered by a service message
// instead of rpc_result.
func (c *Conn) writeContentMessage(ctx context.Context, message bin.Encoder) error {
	return c.write(ctx, c.newMessageID(), c.seqNo(true), message)
}

// sendRequest sends an rpc request, attaching pending
// acknowledgements in a single container when there are any.
func (c *Conn) sendRequest(ctx context.Context, msgID int64, seqNo int32, in bin.Encoder) error {
	acks := c.stealAcks()
	if len(acks) == 0 {
		return c.write(ctx, msgID, seqNo, in)
	}
	return c.writeContainer(ctx, acks, msgID, seqNo, in)
}

// writeContainer packs an acknowledgement and a request into one
// msg_container. The container gets its own id and an even sequence
// number, each inner message keeps its own.
func (c *Conn) writeContainer(ctx context.Context, acks []int64, msgID int64, seqNo int32, in bin.Encoder) error {
	var ackBody bin.Buffer
	ack := &mt.MsgsAck{MsgIDs: acks}
	if err := ack.Encode(&ackBody); err != nil {
		return errors.Wrap(err, "encode ack")
	}
	var reqBody bin.Buffer
	if err := c.encodePayload(in, &reqBody); err != nil {
		return err
	}

	// Inner messages are ordered by id, the request id was generated
	// first.
	container := proto.MessageContainer{
		Messages: []proto.Message{
			{
				ID:    msgID,
				SeqNo: int(seqNo),
				Body:  reqBody.Raw(),
			},
			{
				ID:    c.newMessageID(),
				SeqNo: int(c.seqNo(false)),
				Body:  ackBody.Raw(),
			},
		},
	}
	// Container id must be greater than ids of inner messages, so it
	// is generated last.
	return c.write(ctx, c.newMessageID(), c.seqNo(false), container)
}
