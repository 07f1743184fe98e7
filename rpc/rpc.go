// Package rpc implements rpc requests lifecycle: correlation of
// responses with pending calls, acknowledgement tracking and re-send
// of requests the server did not acknowledge in time.
package rpc

import (
	"context"
	"sync"
	"time"

	"github.com/go-faster/errors"
	"go.uber.org/zap"

	"github.com/gramkit/gram/bin"
	"github.com/gramkit/gram/clock"
)

// Engine handles RPC requests.
type Engine struct {
	send Send
	drop DropHandler

	mux       sync.Mutex
	requests  map[int64]request
	ack       map[int64]chan struct{}
	wg        sync.WaitGroup
	closed    bool
	reqCtx    context.Context
	closeCtx  context.CancelFunc

	log           *zap.Logger
	retryInterval time.Duration
	maxRetries    int
	clock         clock.Clock
	onError       func(error)
}

// New creates new rpc Engine.
func New(send Send, cfg Options) *Engine {
	cfg.setDefaults()

	cfg.Logger.Info("Initializing rpc engine",
		zap.Duration("retry_interval", cfg.RetryInterval),
		zap.Int("max_retries", cfg.MaxRetries),
	)

	reqCtx, closeCtx := context.WithCancel(context.Background())
	return &Engine{
		send: send,
		drop: cfg.DropHandler,

		requests: map[int64]request{},
		ack:      map[int64]chan struct{}{},
		reqCtx:   reqCtx,
		closeCtx: closeCtx,

		log:           cfg.Logger,
		maxRetries:    cfg.MaxRetries,
		retryInterval: cfg.RetryInterval,
		clock:         cfg.Clock,
		onError:       cfg.OnError,
	}
}

// Send is a function that sends requests to the server.
type Send func(ctx context.Context, msgID int64, seqNo int32, in bin.Encoder) error

// NopSend does nothing.
func NopSend(ctx context.Context, msgID int64, seqNo int32, in bin.Encoder) error {
	return nil
}

// DropHandler handles drop rpc requests.
type DropHandler func(req Request) error

// NopDrop does nothing.
func NopDrop(Request) error { return nil }

// Request represents client RPC request.
type Request struct {
	MsgID  int64
	SeqNo  int32
	Input  bin.Encoder
	Output bin.Decoder
}

type request struct {
	result chan<- error
	out    bin.Decoder
}

// Do sends request to server and blocks until response is received,
// performing multiple retries if needed.
func (e *Engine) Do(ctx context.Context, req Request) error {
	if e.isClosed() {
		return ErrEngineClosed
	}

	e.wg.Add(1)
	defer e.wg.Done()

	retryCtx, retryClose := context.WithCancel(ctx)
	defer retryClose()

	log := e.log.With(zap.Int64("msg_id", req.MsgID))
	log.Debug("Do called")

	done := make(chan error, 1)
	e.mux.Lock()
	e.requests[req.MsgID] = request{result: done, out: req.Output}
	e.ack[req.MsgID] = make(chan struct{})
	e.mux.Unlock()
	defer e.forget(req.MsgID)

	// Start retrying.
	sent := make(chan error, 1)
	go func() { sent <- e.retryUntilAck(retryCtx, req) }()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-e.reqCtx.Done():
		return ErrEngineClosed
	case err := <-sent:
		if err != nil && !errors.Is(err, context.Canceled) {
			return errors.Wrap(err, "send")
		}
	case err := <-done:
		return err
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-e.reqCtx.Done():
		return ErrEngineClosed
	case err := <-done:
		return err
	}
}

func (e *Engine) forget(msgID int64) {
	e.mux.Lock()
	defer e.mux.Unlock()
	delete(e.requests, msgID)
	delete(e.ack, msgID)
}

// retryUntilAck resends the request every retry interval until the
// server acknowledges it, returns the result or the retry limit is
// reached.
func (e *Engine) retryUntilAck(ctx context.Context, req Request) error {
	e.mux.Lock()
	ackChan := e.ack[req.MsgID]
	e.mux.Unlock()
	if ackChan == nil {
		return nil
	}

	if err := e.send(ctx, req.MsgID, req.SeqNo, req.Input); err != nil {
		return errors.Wrap(err, "send request")
	}

	timer := e.clock.Timer(e.retryInterval)
	defer clock.StopTimer(timer)

	retries := 0
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-e.reqCtx.Done():
			return e.reqCtx.Err()
		case <-ackChan:
			return nil
		case <-timer.C():
			timer.Reset(e.retryInterval)

			if err := e.send(ctx, req.MsgID, req.SeqNo, req.Input); err != nil {
				e.log.Error("Retry failed", zap.Error(err))
				return err
			}

			retries++
			if retries >= e.maxRetries {
				e.log.Error("Retry limit reached",
					zap.Int64("msg_id", req.MsgID),
				)
				if err := e.drop(req); err != nil {
					return errors.Wrap(err, "drop request")
				}
				e.NotifyError(req.MsgID, ErrDropped)
				return nil
			}
		}
	}
}
