package exchange

import "github.com/go-faster/errors"

// ErrHandshakeMismatch means that the peer returned nonces or hashes
// that do not match the sent ones, which indicates a corrupted or
// tampered handshake.
var ErrHandshakeMismatch = errors.New("handshake data mismatch")
