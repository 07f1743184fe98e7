package mtproto

import (
	"github.com/go-faster/errors"
	"go.uber.org/zap"

	"github.com/gramkit/gram/bin"
	"github.com/gramkit/gram/mt"
	"github.com/gramkit/gram/proto"
)

func (c *Conn) handleMessage(b *bin.Buffer) error {
	id, err := b.PeekID()
	if err != nil {
		return errors.Wrap(err, "peek id")
	}
	if ce := c.log.Check(zap.DebugLevel, "Handle message"); ce != nil {
		typeStr := c.types.Get(id)
		if typeStr == "" {
			typeStr = "unknown"
		}
		ce.Write(
			zap.String("type", typeStr),
			zap.Uint32("type_id", id),
		)
	}

	switch id {
	case mt.NewSessionCreatedTypeID:
		return c.handleSessionCreated(b)
	case mt.BadMsgNotificationTypeID, mt.BadServerSaltTypeID:
		return c.handleBadMsg(b)
	case mt.MsgsAckTypeID:
		return c.handleAck(b)
	case mt.RPCResultTypeID:
		return c.handleResult(b)
	case mt.PongTypeID:
		return c.handlePong(b)
	case mt.FutureSaltsTypeID:
		return c.handleFutureSalts(b)
	case proto.MessageContainerTypeID:
		return c.handleContainer(b)
	case proto.GZIPTypeID:
		return c.handleGZIP(b)
	default:
		return c.handler.OnMessage(b)
	}
}

func (c *Conn) handleSessionCreated(b *bin.Buffer) error {
	var created mt.NewSessionCreated
	if err := created.Decode(b); err != nil {
		return errors.Wrap(err, "decode")
	}
	c.log.Info("Session created", zap.Int64("unique_id", created.UniqueID))

	c.storeSalt(created.ServerSalt)
	return c.handler.OnSession(c.session())
}

func (c *Conn) handleAck(b *bin.Buffer) error {
	var ack mt.MsgsAck
	if err := ack.Decode(b); err != nil {
		return errors.Wrap(err, "decode")
	}
	c.log.Debug("Received ack", zap.Int64s("msg_ids", ack.MsgIDs))
	c.rpc.NotifyAcks(ack.MsgIDs)
	return nil
}

func (c *Conn) handleContainer(b *bin.Buffer) error {
	var container proto.MessageContainer
	if err := container.Decode(b); err != nil {
		return errors.Wrap(err, "decode")
	}
	for _, msg := range container.Messages {
		if err := c.processContained(msg); err != nil {
			return err
		}
	}
	return nil
}

func (c *Conn) processContained(msg proto.Message) error {
	if !c.receivedIDs.Consume(msg.ID) {
		c.log.Warn("Duplicate contained message id, ignoring",
			zap.Int64("msg_id", msg.ID),
		)
		return nil
	}
	if msg.SeqNo%2 == 1 {
		c.queueAck(msg.ID)
	}
	return c.handleMessage(&bin.Buffer{Buf: msg.Body})
}

func (c *Conn) handleGZIP(b *bin.Buffer) error {
	var content proto.GZIP
	if err := content.Decode(b); err != nil {
		return errors.Wrap(err, "decode")
	}
	return c.handleMessage(&bin.Buffer{Buf: content.Data})
}

func (c *Conn) handleFutureSalts(b *bin.Buffer) error {
	var res mt.FutureSalts
	if err := res.Decode(b); err != nil {
		return errors.Wrap(err, "decode")
	}
	c.log.Debug("Received future salts", zap.Int("count", len(res.Salts)))
	c.salts.Store(res.Salts)
	return nil
}
