package updates

import (
	"context"
	"sync"

	"github.com/go-faster/errors"
	"go.uber.org/zap"
)

// ErrNotInitialized means that Handle was called before Init.
var ErrNotInitialized = errors.New("updates engine is not initialized")

// Engine tracks the pts, qts and seq sequences, buffers out-of-order
// updates and recovers gaps by fetching the difference.
type Engine struct {
	fetch   DifferenceFetcher
	storage StateStorage
	handler Handler
	log     *zap.Logger

	mux         sync.Mutex
	initialized bool
	recovering  bool
	pts         *sequenceBox
	qts         *sequenceBox
	seq         *sequenceBox
	date        int
}

// Options of Engine.
type Options struct {
	// Handler receives updates in order. Defaults to a no-op handler.
	Handler Handler
	// Storage persists the update state. Defaults to MemStorage.
	Storage StateStorage
	// Logger is instance of zap.Logger. No logs by default.
	Logger *zap.Logger
}

func (opt *Options) setDefaults() {
	if opt.Handler == nil {
		opt.Handler = HandlerFunc(func(ctx context.Context, u Update) error { return nil })
	}
	if opt.Storage == nil {
		opt.Storage = NewMemStorage()
	}
	if opt.Logger == nil {
		opt.Logger = zap.NewNop()
	}
}

// New creates new Engine with the given difference fetcher.
func New(fetch DifferenceFetcher, opts Options) *Engine {
	opts.setDefaults()
	return &Engine{
		fetch:   fetch,
		storage: opts.Storage,
		handler: opts.Handler,
		log:     opts.Logger,
	}
}

// Init loads the persisted state, fetching a fresh one from the server
// when nothing was stored yet. Must be called before Handle.
func (e *Engine) Init(ctx context.Context) error {
	e.mux.Lock()
	defer e.mux.Unlock()

	state, found, err := e.storage.GetState(ctx)
	if err != nil {
		return errors.Wrap(err, "load state")
	}
	if !found {
		diff, err := e.fetch(ctx, State{})
		if err != nil {
			return errors.Wrap(err, "fetch initial state")
		}
		state = diff.State
		if err := e.storage.SetState(ctx, state); err != nil {
			return errors.Wrap(err, "store state")
		}
	}

	e.pts = newSequenceBox(state.Pts, e.applyPts, e.recoverState, e.log.Named("pts"))
	e.qts = newSequenceBox(state.Qts, e.applyQts, e.recoverState, e.log.Named("qts"))
	e.seq = newSequenceBox(state.Seq, e.applySeq, e.recoverState, e.log.Named("seq"))
	e.date = state.Date
	e.initialized = true

	e.log.Info("Engine initialized",
		zap.Int("pts", state.Pts),
		zap.Int("qts", state.Qts),
		zap.Int("seq", state.Seq),
	)
	return nil
}

// Handle routes an incoming update into the matching sequence. Updates
// without a sequence position are dispatched immediately.
func (e *Engine) Handle(ctx context.Context, u Update) error {
	e.mux.Lock()
	defer e.mux.Unlock()

	if !e.initialized {
		return ErrNotInitialized
	}
	if u.Date > e.date {
		e.date = u.Date
		// Seq updates persist the date together with the applied seq
		// value, see applySeq.
		if u.Seq <= 0 {
			if err := e.storage.SetDate(ctx, u.Date); err != nil {
				return errors.Wrap(err, "store date")
			}
		}
	}

	switch {
	case u.Pts > 0:
		count := u.PtsCount
		if count == 0 {
			count = 1
		}
		return e.pts.Handle(ctx, update{start: u.Pts - count + 1, end: u.Pts, value: u})
	case u.Qts > 0:
		return e.qts.Handle(ctx, update{start: u.Qts, end: u.Qts, value: u})
	case u.Seq > 0:
		return e.seq.Handle(ctx, update{start: u.Seq, end: u.Seq, value: u})
	default:
		return e.handler.Handle(ctx, u)
	}
}

func (e *Engine) state() State {
	return State{
		Pts:  e.pts.State(),
		Qts:  e.qts.State(),
		Seq:  e.seq.State(),
		Date: e.date,
	}
}

func (e *Engine) applyPts(ctx context.Context, state int, updates []Update) error {
	for _, u := range updates {
		if err := e.handler.Handle(ctx, u); err != nil {
			return err
		}
	}
	return e.storage.SetPts(ctx, state)
}

func (e *Engine) applyQts(ctx context.Context, state int, updates []Update) error {
	for _, u := range updates {
		if err := e.handler.Handle(ctx, u); err != nil {
			return err
		}
	}
	return e.storage.SetQts(ctx, state)
}

func (e *Engine) applySeq(ctx context.Context, state int, updates []Update) error {
	for _, u := range updates {
		if err := e.handler.Handle(ctx, u); err != nil {
			return err
		}
	}
	return e.storage.SetDateSeq(ctx, e.date, state)
}

// recoverState fetches the difference between the local and the remote
// state and replays buffered updates afterwards. Live updates arriving
// during recovery are serialized behind the engine mutex and see the
// recovered state.
func (e *Engine) recoverState(ctx context.Context) error {
	if e.recovering {
		return nil
	}
	e.recovering = true
	defer func() { e.recovering = false }()

	local := e.state()
	e.log.Info("Recovering state",
		zap.Int("pts", local.Pts),
		zap.Int("qts", local.Qts),
		zap.Int("seq", local.Seq),
	)
	diff, err := e.fetch(ctx, local)
	if err != nil {
		return errors.Wrap(err, "fetch difference")
	}
	for _, u := range diff.Updates {
		if err := e.handler.Handle(ctx, u); err != nil {
			return errors.Wrap(err, "apply difference")
		}
	}

	if diff.State.Date > e.date {
		e.date = diff.State.Date
	}
	if err := e.storage.SetState(ctx, State{
		Pts:  diff.State.Pts,
		Qts:  diff.State.Qts,
		Seq:  diff.State.Seq,
		Date: e.date,
	}); err != nil {
		return errors.Wrap(err, "store state")
	}

	if err := e.pts.SetState(ctx, diff.State.Pts); err != nil {
		return err
	}
	if err := e.qts.SetState(ctx, diff.State.Qts); err != nil {
		return err
	}
	return e.seq.SetState(ctx, diff.State.Seq)
}
