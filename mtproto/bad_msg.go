package mtproto

import (
	"fmt"

	"github.com/go-faster/errors"
	"go.uber.org/zap"

	"github.com/gramkit/gram/bin"
	"github.com/gramkit/gram/mt"
)

type badMessageError struct {
	Code    int
	NewSalt int64
}

func (b *badMessageError) Error() string {
	description := map[int]string{
		mt.ErrMsgIDTooLow:      "msg_id too low",
		mt.ErrMsgIDTooHigh:     "msg_id too high",
		mt.ErrMsgIDMod4:        "msg_id not divisible by 4",
		mt.ErrMsgIDDuplicate:   "duplicate msg_id",
		mt.ErrMsgTooOld:        "message too old",
		mt.ErrSeqNoTooLow:      "msg_seqno too low",
		mt.ErrSeqNoTooHigh:     "msg_seqno too high",
		mt.ErrSeqNoNotEven:     "even msg_seqno expected",
		mt.ErrSeqNoNotOdd:      "odd msg_seqno expected",
		mt.ErrInvalidContainer: "invalid container",
	}[b.Code]
	if description == "" {
		description = "unknown"
	}
	return fmt.Sprintf("bad message %d: %s", b.Code, description)
}

func (c *Conn) handleBadMsg(b *bin.Buffer) error {
	id, err := b.PeekID()
	if err != nil {
		return errors.Wrap(err, "peek id")
	}
	switch id {
	case mt.BadServerSaltTypeID:
		var bad mt.BadServerSalt
		if err := bad.Decode(b); err != nil {
			return errors.Wrap(err, "decode")
		}
		c.log.Debug("Updating salt",
			zap.Int64("msg_id", bad.BadMsgID),
			zap.Int64("new_salt", bad.NewServerSalt),
		)
		c.storeSalt(bad.NewServerSalt)
		c.rpc.NotifyError(bad.BadMsgID, &badMessageError{
			Code:    bad.ErrorCode,
			NewSalt: bad.NewServerSalt,
		})
		return nil
	case mt.BadMsgNotificationTypeID:
		var bad mt.BadMsgNotification
		if err := bad.Decode(b); err != nil {
			return errors.Wrap(err, "decode")
		}
		if bad.ErrorCode == mt.ErrMsgIDTooLow || bad.ErrorCode == mt.ErrMsgIDTooHigh {
			// Server rejected our clock: adopt the drift measured on
			// the latest received envelope.
			offset := c.lastMeasured.Load()
			c.timeOffset.Store(offset)
			c.log.Info("Adjusted time offset", zap.Duration("offset", offset))
		}
		c.rpc.NotifyError(bad.BadMsgID, &badMessageError{Code: bad.ErrorCode})
		return nil
	default:
		return errors.Errorf("unexpected type id %#x", id)
	}
}
