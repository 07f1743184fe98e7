package mtproto

import (
	"sort"
	"sync"
	"time"

	"github.com/gramkit/gram/mt"
)

// salts stores server salts announced via future_salts, sorted by
// valid_since.
type salts struct {
	mux   sync.Mutex
	salts []mt.FutureSalt
}

// Store adds new salts and drops the ones that can never be used
// again.
func (s *salts) Store(v []mt.FutureSalt) {
	s.mux.Lock()
	defer s.mux.Unlock()

	s.salts = append(s.salts, v...)
	sort.SliceStable(s.salts, func(i, j int) bool {
		return s.salts[i].ValidSince < s.salts[j].ValidSince
	})

	// Deduplicate by valid_since, last write wins.
	result := s.salts[:0]
	for i, salt := range s.salts {
		if i+1 < len(s.salts) && s.salts[i+1].ValidSince == salt.ValidSince {
			continue
		}
		result = append(result, salt)
	}
	s.salts = result
}

// Get returns the newest salt that is already valid and stays valid
// at least until deadline.
func (s *salts) Get(now, deadline time.Time) (int64, bool) {
	s.mux.Lock()
	defer s.mux.Unlock()

	s.prune(now)
	for i := len(s.salts) - 1; i >= 0; i-- {
		salt := s.salts[i]
		if int64(salt.ValidSince) <= now.Unix() && deadline.Unix() < int64(salt.ValidUntil) {
			return salt.Salt, true
		}
	}
	return 0, false
}

// Count returns the number of salts still usable at now.
func (s *salts) Count(now time.Time) int {
	s.mux.Lock()
	defer s.mux.Unlock()

	s.prune(now)
	return len(s.salts)
}

// Reset deletes all stored salts.
func (s *salts) Reset() {
	s.mux.Lock()
	s.salts = s.salts[:0]
	s.mux.Unlock()
}

func (s *salts) prune(now time.Time) {
	result := s.salts[:0]
	for _, salt := range s.salts {
		if int64(salt.ValidUntil) > now.Unix() {
			result = append(result, salt)
		}
	}
	s.salts = result
}
