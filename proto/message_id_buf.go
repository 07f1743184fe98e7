package proto

import "sync"

// MessageIDBufSize is the default capacity of MessageIDBuf, matching
// the number of recent ids the server is required to remember.
const MessageIDBufSize = 1000

// MessageIDBuf tracks recently received message ids for replay
// protection.
type MessageIDBuf struct {
	mux sync.Mutex
	buf []int64
}

// NewMessageIDBuf initializes new message id buffer of given capacity.
func NewMessageIDBuf(n int) *MessageIDBuf {
	return &MessageIDBuf{
		buf: make([]int64, n),
	}
}

// Consume returns false if the id is a duplicate or is not greater
// than the lowest id in the buffer (too old to verify).
func (b *MessageIDBuf) Consume(newID int64) bool {
	b.mux.Lock()
	defer b.mux.Unlock()

	var (
		minIDx int
		minID  int64
	)
	for idx, id := range b.buf {
		if newID == id {
			// Duplicate.
			return false
		}
		if minID == 0 || id < minID {
			minID = id
			minIDx = idx
		}
	}
	if newID < minID {
		// Too old to check against evicted ids.
		return false
	}

	// Replace the lowest id.
	b.buf[minIDx] = newID
	return true
}
