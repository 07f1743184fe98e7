package rpc

import "github.com/go-faster/errors"

// ErrDropped means that request was dropped after the retry limit was
// reached without acknowledgement.
var ErrDropped = errors.New("request dropped")

// ErrEngineClosed means that engine was closed.
var ErrEngineClosed = errors.New("rpc engine closed")
