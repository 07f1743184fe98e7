// Package proto implements MTProto session primitives: message
// identifiers, containers and payload wrappers.
package proto

import (
	"sync"
	"time"
)

// MessageType is a type of message determined by message id.
type MessageType byte

const (
	// MessageFromClient is a client message type.
	MessageFromClient MessageType = 0
	// MessageServerResponse is a server response to a client message.
	MessageServerResponse MessageType = 1
	// MessageFromServer is a message initiated by server.
	MessageFromServer MessageType = 3
)

// MessageID represents a message identifier.
//
// A message id is a time-dependent 64-bit number: the high 32 bits are
// the unix timestamp, the low two bits carry the message type.
type MessageID int64

// Time returns approximate time when MessageID was generated.
func (id MessageID) Time() time.Time {
	return time.Unix(int64(id)>>32, 0)
}

// Type returns message type encoded in the low two bits.
func (id MessageID) Type() MessageType {
	return MessageType(uint64(id) % 4)
}

// NewMessageID returns a new message id for the given time and type.
func NewMessageID(now time.Time, typ MessageType) MessageID {
	const nanosecondsPerSecond = 1e9
	nano := now.UnixNano()
	seconds := nano / nanosecondsPerSecond
	fraction := ((nano % nanosecondsPerSecond) << 32) / nanosecondsPerSecond

	id := (seconds << 32) | (fraction &^ 3) | int64(typ)
	return MessageID(id)
}

// MessageIDGen is a message id generator.
//
// Generated ids are guaranteed to be unique and strictly increasing
// within one generator.
type MessageIDGen struct {
	mux  sync.Mutex
	last int64
	now  func() time.Time
}

// New generates new message id for the provided type.
func (g *MessageIDGen) New(t MessageType) int64 {
	g.mux.Lock()
	defer g.mux.Unlock()

	id := int64(NewMessageID(g.now(), t))
	if id <= g.last {
		// Preserve the type bits while bumping past the last id.
		id = g.last + 4
	}
	g.last = id
	return id
}

// NewMessageIDGen creates a new message id generator using the
// provided time source.
func NewMessageIDGen(now func() time.Time) *MessageIDGen {
	return &MessageIDGen{now: now}
}
