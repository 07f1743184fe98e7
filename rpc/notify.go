package rpc

import (
	"github.com/go-faster/errors"
	"go.uber.org/zap"

	"github.com/gramkit/gram/bin"
)

// NotifyResult notifies engine about received RPC response.
func (e *Engine) NotifyResult(msgID int64, b *bin.Buffer) error {
	e.mux.Lock()
	req, ok := e.requests[msgID]
	e.mux.Unlock()
	if !ok {
		// Response to a request we no longer wait for. This is
		// expected after cancellation or duplicate delivery.
		e.log.Debug("Got response for unexpected message",
			zap.Int64("msg_id", msgID),
		)
		return nil
	}

	var resultErr error
	if err := req.out.Decode(b); err != nil {
		resultErr = errors.Wrap(err, "decode result")
	}
	select {
	case req.result <- resultErr:
	default:
		// Duplicate result, first one wins.
	}
	return nil
}

// NotifyError notifies engine about received RPC error.
func (e *Engine) NotifyError(msgID int64, rpcErr error) {
	e.mux.Lock()
	req, ok := e.requests[msgID]
	e.mux.Unlock()
	if !ok {
		e.log.Debug("Got error for unexpected message",
			zap.Int64("msg_id", msgID),
		)
		return
	}

	e.onError(rpcErr)
	select {
	case req.result <- rpcErr:
	default:
	}
}

// NotifyAcks notifies engine about received acknowledgements.
//
// An acknowledgement stops the re-send loop of a request, but the
// request stays pending until its result arrives.
func (e *Engine) NotifyAcks(ids []int64) {
	e.mux.Lock()
	defer e.mux.Unlock()

	for _, id := range ids {
		ch, ok := e.ack[id]
		if !ok {
			continue
		}
		close(ch)
		delete(e.ack, id)
	}
}
