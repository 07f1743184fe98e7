package updates

import (
	"context"
	"sync"

	"github.com/go-faster/errors"
)

// State is the persisted update state.
type State struct {
	Pts, Qts, Date, Seq int
}

// StateStorage persists State between runs.
//
// Note: the field setters should return an error if the state does not
// exist yet.
type StateStorage interface {
	GetState(ctx context.Context) (state State, found bool, err error)
	SetState(ctx context.Context, state State) error
	SetPts(ctx context.Context, pts int) error
	SetQts(ctx context.Context, qts int) error
	SetDate(ctx context.Context, date int) error
	SetSeq(ctx context.Context, seq int) error
	SetDateSeq(ctx context.Context, date, seq int) error
}

var _ StateStorage = (*MemStorage)(nil)

// MemStorage is an in-memory StateStorage.
type MemStorage struct {
	mux   sync.Mutex
	state State
	set   bool
}

// NewMemStorage creates new MemStorage.
func NewMemStorage() *MemStorage {
	return &MemStorage{}
}

// GetState implements StateStorage.
func (s *MemStorage) GetState(ctx context.Context) (State, bool, error) {
	s.mux.Lock()
	defer s.mux.Unlock()

	return s.state, s.set, nil
}

// SetState implements StateStorage.
func (s *MemStorage) SetState(ctx context.Context, state State) error {
	s.mux.Lock()
	defer s.mux.Unlock()

	s.state = state
	s.set = true
	return nil
}

func (s *MemStorage) update(f func(state *State)) error {
	s.mux.Lock()
	defer s.mux.Unlock()

	if !s.set {
		return errors.New("state not found")
	}
	f(&s.state)
	return nil
}

// SetPts implements StateStorage.
func (s *MemStorage) SetPts(ctx context.Context, pts int) error {
	return s.update(func(state *State) { state.Pts = pts })
}

// SetQts implements StateStorage.
func (s *MemStorage) SetQts(ctx context.Context, qts int) error {
	return s.update(func(state *State) { state.Qts = qts })
}

// SetDate implements StateStorage.
func (s *MemStorage) SetDate(ctx context.Context, date int) error {
	return s.update(func(state *State) { state.Date = date })
}

// SetSeq implements StateStorage.
func (s *MemStorage) SetSeq(ctx context.Context, seq int) error {
	return s.update(func(state *State) { state.Seq = seq })
}

// SetDateSeq implements StateStorage.
func (s *MemStorage) SetDateSeq(ctx context.Context, date, seq int) error {
	return s.update(func(state *State) {
		state.Date = date
		state.Seq = seq
	})
}
