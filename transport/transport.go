// Package transport implements the physical byte stream feeding
// encrypted messages in and out, framed by one of the MTProto
// transport codecs.
package transport

import (
	"context"
	"net"

	"github.com/go-faster/errors"

	"github.com/gramkit/gram/proto/codec"
)

// Transport is a connection factory for a fixed framing variant.
type Transport struct {
	newCodec func() codec.Codec
	dialer   Dialer
}

// Dialer is an abstract dialer, *net.Dialer satisfies it.
type Dialer interface {
	DialContext(ctx context.Context, network, address string) (net.Conn, error)
}

// Options of Transport.
type Options struct {
	// Codec constructor. Defaults to Intermediate.
	Codec func() codec.Codec
	// Dialer to use. Defaults to net.Dialer.
	Dialer Dialer
}

func (opt *Options) setDefaults() {
	if opt.Codec == nil {
		opt.Codec = func() codec.Codec { return codec.Intermediate{} }
	}
	if opt.Dialer == nil {
		opt.Dialer = &net.Dialer{}
	}
}

// New creates a new Transport with the given options.
func New(opts Options) *Transport {
	opts.setDefaults()
	return &Transport{
		newCodec: opts.Codec,
		dialer:   opts.Dialer,
	}
}

// Intermediate creates a Transport using intermediate framing.
func Intermediate() *Transport {
	return New(Options{})
}

// PaddedIntermediate creates a Transport using padded intermediate
// framing.
func PaddedIntermediate() *Transport {
	return New(Options{
		Codec: func() codec.Codec { return PaddedIntermediateCodec() },
	})
}

// Full creates a Transport using full framing with per-frame CRC.
func Full() *Transport {
	return New(Options{
		Codec: func() codec.Codec { return &codec.Full{} },
	})
}

// Obfuscated2 creates a Transport using obfuscated framing.
func Obfuscated2() *Transport {
	return New(Options{
		Codec: func() codec.Codec { return &codec.Obfuscated2{} },
	})
}

// PaddedIntermediateCodec returns padded intermediate codec instance.
func PaddedIntermediateCodec() codec.Codec {
	return codec.PaddedIntermediate{}
}

// DialContext dials using provided address and returns a framed
// connection with the protocol header already sent.
func (t *Transport) DialContext(ctx context.Context, network, address string) (Conn, error) {
	conn, err := t.dialer.DialContext(ctx, network, address)
	if err != nil {
		return nil, errors.Wrap(err, "dial")
	}
	framed, err := t.Handshake(conn)
	if err != nil {
		_ = conn.Close()
		return nil, errors.Wrap(err, "handshake")
	}
	return framed, nil
}

// Handshake sends the protocol header over conn and returns a framed
// connection.
func (t *Transport) Handshake(conn net.Conn) (Conn, error) {
	c := t.newCodec()
	if err := c.WriteHeader(conn); err != nil {
		return nil, errors.Wrap(err, "write header")
	}
	return &connection{
		conn:  conn,
		codec: c,
	}, nil
}
