package rpc

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/atomic"

	"github.com/gramkit/gram/bin"
	"github.com/gramkit/gram/testutil"
)

type ping struct {
	ID int64
}

func (p ping) Encode(b *bin.Buffer) error {
	b.PutID(0x7abe77ec)
	b.PutLong(p.ID)
	return nil
}

type pong struct {
	ID int64
}

func (p pong) Encode(b *bin.Buffer) error {
	b.PutID(0x347773c5)
	b.PutLong(p.ID)
	return nil
}

func (p *pong) Decode(b *bin.Buffer) error {
	if err := b.ConsumeID(0x347773c5); err != nil {
		return err
	}
	id, err := b.Long()
	if err != nil {
		return err
	}
	p.ID = id
	return nil
}

func (e *Engine) waitPending(t *testing.T, msgID int64) {
	t.Helper()
	require.Eventually(t, func() bool {
		e.mux.Lock()
		defer e.mux.Unlock()
		_, ok := e.requests[msgID]
		return ok
	}, 5*time.Second, time.Millisecond)
}

func TestEngineResult(t *testing.T) {
	e := New(NopSend, Options{})
	defer e.ForceClose()

	var out pong
	done := make(chan error, 1)
	go func() {
		done <- e.Do(context.Background(), Request{
			MsgID:  1,
			SeqNo:  1,
			Input:  ping{ID: 42},
			Output: &out,
		})
	}()
	e.waitPending(t, 1)

	var b bin.Buffer
	require.NoError(t, pong{ID: 42}.Encode(&b))
	require.NoError(t, e.NotifyResult(1, &b))

	require.NoError(t, <-done)
	require.Equal(t, int64(42), out.ID)
}

func TestEngineError(t *testing.T) {
	e := New(NopSend, Options{})
	defer e.ForceClose()

	done := make(chan error, 1)
	go func() {
		done <- e.Do(context.Background(), Request{
			MsgID:  1,
			SeqNo:  1,
			Input:  ping{ID: 1},
			Output: &pong{},
		})
	}()
	e.waitPending(t, 1)

	e.NotifyError(1, ErrDropped)
	require.ErrorIs(t, <-done, ErrDropped)
}

func TestEngineAckStopsRetries(t *testing.T) {
	c := testutil.NewClock(time.Now())
	var sent atomic.Int32
	e := New(func(ctx context.Context, msgID int64, seqNo int32, in bin.Encoder) error {
		sent.Inc()
		return nil
	}, Options{
		RetryInterval: time.Second,
		MaxRetries:    10,
		Clock:         c,
	})
	defer e.ForceClose()

	var out pong
	done := make(chan error, 1)
	go func() {
		done <- e.Do(context.Background(), Request{
			MsgID:  1,
			SeqNo:  1,
			Input:  ping{ID: 1},
			Output: &out,
		})
	}()
	e.waitPending(t, 1)
	require.Eventually(t, func() bool {
		return sent.Load() >= 1
	}, 5*time.Second, time.Millisecond)

	// Acknowledged request must not be re-sent.
	e.NotifyAcks([]int64{1})
	time.Sleep(100 * time.Millisecond)
	sentAfterAck := sent.Load()
	c.Travel(3 * time.Second)
	require.Equal(t, sentAfterAck, sent.Load())

	var b bin.Buffer
	require.NoError(t, pong{ID: 1}.Encode(&b))
	require.NoError(t, e.NotifyResult(1, &b))
	require.NoError(t, <-done)
}

func TestEngineRetryLimit(t *testing.T) {
	c := testutil.NewClock(time.Now())
	var sent atomic.Int32
	e := New(func(ctx context.Context, msgID int64, seqNo int32, in bin.Encoder) error {
		sent.Inc()
		return nil
	}, Options{
		RetryInterval: time.Second,
		MaxRetries:    2,
		Clock:         c,
	})
	defer e.ForceClose()

	done := make(chan error, 1)
	go func() {
		done <- e.Do(context.Background(), Request{
			MsgID:  1,
			SeqNo:  1,
			Input:  ping{ID: 1},
			Output: &pong{},
		})
	}()
	e.waitPending(t, 1)

	require.Eventually(t, func() bool {
		c.Travel(2 * time.Second)
		return sent.Load() >= 3
	}, 5*time.Second, 10*time.Millisecond)

	require.ErrorIs(t, <-done, ErrDropped)
}

func TestEngineCancel(t *testing.T) {
	e := New(NopSend, Options{})
	defer e.ForceClose()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- e.Do(ctx, Request{
			MsgID:  1,
			SeqNo:  1,
			Input:  ping{ID: 1},
			Output: &pong{},
		})
	}()
	e.waitPending(t, 1)

	cancel()
	require.ErrorIs(t, <-done, context.Canceled)

	// Late result after cancellation is dropped silently.
	require.Eventually(t, func() bool {
		e.mux.Lock()
		defer e.mux.Unlock()
		_, ok := e.requests[1]
		return !ok
	}, 5*time.Second, time.Millisecond)
	var b bin.Buffer
	require.NoError(t, pong{ID: 1}.Encode(&b))
	require.NoError(t, e.NotifyResult(1, &b))
}

func TestEngineClosed(t *testing.T) {
	e := New(NopSend, Options{})
	e.Close()
	err := e.Do(context.Background(), Request{MsgID: 1, Input: ping{}, Output: &pong{}})
	require.ErrorIs(t, err, ErrEngineClosed)
}
