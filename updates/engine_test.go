package updates

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

type recorder struct {
	values []interface{}
}

func (r *recorder) Handle(ctx context.Context, u Update) error {
	r.values = append(r.values, u.Value)
	return nil
}

func TestEngineInOrder(t *testing.T) {
	ctx := context.Background()
	out := &recorder{}
	storage := NewMemStorage()

	fetchCalls := 0
	e := New(func(ctx context.Context, state State) (Difference, error) {
		fetchCalls++
		return Difference{State: State{Date: 100}}, nil
	}, Options{Handler: out, Storage: storage})

	require.ErrorIs(t, e.Handle(ctx, Update{Pts: 1}), ErrNotInitialized)

	// No stored state, the initial one is fetched.
	require.NoError(t, e.Init(ctx))
	require.Equal(t, 1, fetchCalls)

	require.NoError(t, e.Handle(ctx, Update{Pts: 1, Value: "a"}))
	require.NoError(t, e.Handle(ctx, Update{Pts: 2, Value: "b"}))
	// Already applied, ignored.
	require.NoError(t, e.Handle(ctx, Update{Pts: 2, Value: "b"}))
	require.Equal(t, []interface{}{"a", "b"}, out.values)
	require.Equal(t, 1, fetchCalls)

	state, found, err := storage.GetState(ctx)
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, 2, state.Pts)
}

func TestEngineGapRecovery(t *testing.T) {
	ctx := context.Background()
	out := &recorder{}
	storage := NewMemStorage()
	require.NoError(t, storage.SetState(ctx, State{Pts: 1}))

	fetchCalls := 0
	e := New(func(ctx context.Context, state State) (Difference, error) {
		fetchCalls++
		require.Equal(t, 2, state.Pts)
		return Difference{
			Updates: []Update{{Pts: 3, Value: "diff-3"}, {Pts: 4, Value: "diff-4"}},
			State:   State{Pts: 4},
		}, nil
	}, Options{Handler: out, Storage: storage})
	require.NoError(t, e.Init(ctx))

	require.NoError(t, e.Handle(ctx, Update{Pts: 2, Value: "live-2"}))
	// Gap: pts jumps from 2 to 6, the update is buffered and the
	// difference is fetched.
	require.NoError(t, e.Handle(ctx, Update{Pts: 6, Value: "live-6"}))
	require.Equal(t, 1, fetchCalls)

	// The buffered update is replayed once its predecessor arrives.
	require.NoError(t, e.Handle(ctx, Update{Pts: 5, Value: "live-5"}))
	require.Equal(t, []interface{}{"live-2", "diff-3", "diff-4", "live-5", "live-6"}, out.values)
	require.Equal(t, 1, fetchCalls)

	state, _, err := storage.GetState(ctx)
	require.NoError(t, err)
	require.Equal(t, 6, state.Pts)
}

func TestEngineGapReplayFromBuffer(t *testing.T) {
	ctx := context.Background()
	out := &recorder{}
	storage := NewMemStorage()
	require.NoError(t, storage.SetState(ctx, State{Pts: 1}))

	e := New(func(ctx context.Context, state State) (Difference, error) {
		// Difference covers the hole entirely, buffered updates apply
		// right after.
		return Difference{
			Updates: []Update{{Pts: 2, Value: "diff-2"}},
			State:   State{Pts: 2},
		}, nil
	}, Options{Handler: out, Storage: storage})
	require.NoError(t, e.Init(ctx))

	require.NoError(t, e.Handle(ctx, Update{Pts: 4, PtsCount: 2, Value: "live-3-4"}))
	require.Equal(t, []interface{}{"diff-2", "live-3-4"}, out.values)

	state, _, err := storage.GetState(ctx)
	require.NoError(t, err)
	require.Equal(t, 4, state.Pts)
}

type trackingStorage struct {
	*MemStorage
	dateCalls    int
	dateSeqCalls int
}

func (s *trackingStorage) SetDate(ctx context.Context, date int) error {
	s.dateCalls++
	return s.MemStorage.SetDate(ctx, date)
}

func (s *trackingStorage) SetDateSeq(ctx context.Context, date, seq int) error {
	s.dateSeqCalls++
	return s.MemStorage.SetDateSeq(ctx, date, seq)
}

func TestEngineSeqDateCombinedWrite(t *testing.T) {
	ctx := context.Background()
	storage := &trackingStorage{MemStorage: NewMemStorage()}
	require.NoError(t, storage.SetState(ctx, State{}))

	e := New(func(ctx context.Context, state State) (Difference, error) {
		t.Fatal("unexpected difference fetch")
		return Difference{}, nil
	}, Options{Storage: storage})
	require.NoError(t, e.Init(ctx))

	// A seq update carrying a date persists both in a single write.
	require.NoError(t, e.Handle(ctx, Update{Seq: 1, Date: 500, Value: "seq-1"}))
	require.Equal(t, 1, storage.dateSeqCalls)
	require.Equal(t, 0, storage.dateCalls)

	state, _, err := storage.GetState(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, state.Seq)
	require.Equal(t, 500, state.Date)

	// Updates without a seq position still persist the date alone.
	require.NoError(t, e.Handle(ctx, Update{Date: 600, Value: "plain"}))
	require.Equal(t, 1, storage.dateCalls)

	state, _, err = storage.GetState(ctx)
	require.NoError(t, err)
	require.Equal(t, 600, state.Date)
}

func TestEngineSeqAndQts(t *testing.T) {
	ctx := context.Background()
	out := &recorder{}
	storage := NewMemStorage()
	require.NoError(t, storage.SetState(ctx, State{}))

	e := New(func(ctx context.Context, state State) (Difference, error) {
		t.Fatal("unexpected difference fetch")
		return Difference{}, nil
	}, Options{Handler: out, Storage: storage})
	require.NoError(t, e.Init(ctx))

	require.NoError(t, e.Handle(ctx, Update{Seq: 1, Date: 500, Value: "seq-1"}))
	require.NoError(t, e.Handle(ctx, Update{Qts: 1, Value: "qts-1"}))
	// No sequence position, dispatched as is.
	require.NoError(t, e.Handle(ctx, Update{Value: "plain"}))
	require.Equal(t, []interface{}{"seq-1", "qts-1", "plain"}, out.values)

	state, _, err := storage.GetState(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, state.Seq)
	require.Equal(t, 1, state.Qts)
	require.Equal(t, 500, state.Date)
}
