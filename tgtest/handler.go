package tgtest

import (
	"context"

	"github.com/go-faster/errors"

	"github.com/gramkit/gram/bin"
	"github.com/gramkit/gram/mt"
)

// Request is an incoming client message to handle.
type Request struct {
	// MsgID is a message id of the request.
	MsgID int64
	// Buf contains the request body.
	Buf *bin.Buffer

	session *serverSession
	ctx     context.Context
}

// Handler handles client requests that are not service messages.
type Handler interface {
	OnMessage(req *Request) error
}

// HandlerFunc is a function adapter for Handler.
type HandlerFunc func(req *Request) error

// OnMessage implements Handler.
func (h HandlerFunc) OnMessage(req *Request) error { return h(req) }

// SendResult sends rpc_result with the encoded message as a result of
// the request.
func (req *Request) SendResult(msg bin.Encoder) error {
	var result bin.Buffer
	if err := result.Encode(msg); err != nil {
		return errors.Wrap(err, "encode result")
	}
	return req.session.send(req.ctx, true, &mt.RPCResult{
		RequestMessageID: req.MsgID,
		Result:           result.Raw(),
	})
}

// SendErr sends rpc_result wrapping rpc_error with the given code and
// message.
func (req *Request) SendErr(code int, message string) error {
	return req.SendResult(&mt.RPCError{
		ErrorCode:    code,
		ErrorMessage: message,
	})
}

// SendUpdate pushes an unsolicited content message to the client,
// outside of any rpc_result.
func (req *Request) SendUpdate(msg bin.Encoder) error {
	return req.session.send(req.ctx, true, msg)
}

// SendAck explicitly acknowledges the request.
func (req *Request) SendAck() error {
	return req.session.send(req.ctx, false, &mt.MsgsAck{MsgIDs: []int64{req.MsgID}})
}

// SendBadServerSalt notifies the client that its salt is stale.
func (req *Request) SendBadServerSalt(seqNo int32, newSalt int64) error {
	return req.session.send(req.ctx, false, &mt.BadServerSalt{
		BadMsgID:      req.MsgID,
		BadMsgSeqNo:   int(seqNo),
		ErrorCode:     mt.ErrBadServerSalt,
		NewServerSalt: newSalt,
	})
}
