package updates

import (
	"context"
	"sort"

	"go.uber.org/zap"
)

// update is a single element of a strictly ordered sequence. It covers
// positions [start, end], both inclusive.
type update struct {
	start, end int
	value      Update
}

type applyFunc func(ctx context.Context, state int, updates []Update) error

// sequenceBox applies updates in order. Out-of-order updates are
// buffered and onGap is invoked once to start recovery; SetState
// resolves the gap and replays the applicable part of the buffer.
type sequenceBox struct {
	state   int
	pending []update
	gap     bool

	apply applyFunc
	onGap func(ctx context.Context) error
	log   *zap.Logger
}

func newSequenceBox(state int, apply applyFunc, onGap func(ctx context.Context) error, log *zap.Logger) *sequenceBox {
	return &sequenceBox{
		state: state,
		apply: apply,
		onGap: onGap,
		log:   log,
	}
}

func (s *sequenceBox) State() int { return s.state }

func (s *sequenceBox) Handle(ctx context.Context, u update) error {
	switch {
	case u.end <= s.state:
		s.log.Debug("Ignoring already applied update",
			zap.Int("state", s.state),
			zap.Int("end", u.end),
		)
		return nil
	case u.start == s.state+1 && !s.gap:
		if err := s.apply(ctx, u.end, []Update{u.value}); err != nil {
			return err
		}
		s.state = u.end
		return s.drainPending(ctx)
	default:
		s.pending = append(s.pending, u)
		if s.gap {
			return nil
		}
		s.gap = true
		s.log.Debug("Out of order update, recovering state",
			zap.Int("state", s.state),
			zap.Int("start", u.start),
		)
		return s.onGap(ctx)
	}
}

// SetState adopts the state fetched during recovery and replays the
// buffered updates that are still relevant.
func (s *sequenceBox) SetState(ctx context.Context, state int) error {
	if state > s.state {
		s.state = state
	}
	s.gap = false
	return s.drainPending(ctx)
}

func (s *sequenceBox) drainPending(ctx context.Context) error {
	sort.SliceStable(s.pending, func(i, j int) bool {
		return s.pending[i].start < s.pending[j].start
	})

	var rest []update
	for _, u := range s.pending {
		switch {
		case u.end <= s.state:
			// Covered by the applied difference.
		case u.start == s.state+1:
			if err := s.apply(ctx, u.end, []Update{u.value}); err != nil {
				return err
			}
			s.state = u.end
		default:
			rest = append(rest, u)
		}
	}
	s.pending = rest
	return nil
}
