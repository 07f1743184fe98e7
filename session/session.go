// Package session implements session state persistence, so an
// authorization key negotiated once can be reused across restarts.
package session

import (
	"context"

	"github.com/go-faster/errors"

	"github.com/gramkit/gram/bin"
)

// Data of session.
type Data struct {
	DC        int
	Addr      string
	AuthKey   []byte
	AuthKeyID []byte
	Salt      int64
}

// Current binary format version.
const latestVersion = 1

// ErrNotFound means that session is not found in storage.
var ErrNotFound = errors.New("session storage: not found")

// ErrInvalidVersion means that stored session has unknown format
// version and cannot be loaded.
var ErrInvalidVersion = errors.New("session storage: invalid version")

// Storage is an abstraction for persistent storage of session data.
type Storage interface {
	LoadSession(ctx context.Context) ([]byte, error)
	StoreSession(ctx context.Context, data []byte) error
}

func (d Data) encode(b *bin.Buffer) {
	b.Put([]byte{latestVersion})
	b.PutInt(d.DC)
	b.PutString(d.Addr)
	b.PutBytes(d.AuthKey)
	b.PutBytes(d.AuthKeyID)
	b.PutLong(d.Salt)
}

func (d *Data) decode(b *bin.Buffer) error {
	raw, err := b.Consume(1)
	if err != nil {
		return errors.Wrap(err, "version")
	}
	if raw[0] != latestVersion {
		return errors.Wrapf(ErrInvalidVersion, "version %d", raw[0])
	}
	if d.DC, err = b.Int(); err != nil {
		return errors.Wrap(err, "dc")
	}
	if d.Addr, err = b.String(); err != nil {
		return errors.Wrap(err, "addr")
	}
	if d.AuthKey, err = b.Bytes(); err != nil {
		return errors.Wrap(err, "auth key")
	}
	if d.AuthKeyID, err = b.Bytes(); err != nil {
		return errors.Wrap(err, "auth key id")
	}
	if d.Salt, err = b.Long(); err != nil {
		return errors.Wrap(err, "salt")
	}
	return nil
}

// Loader wraps a Storage with encoding and decoding of Data.
type Loader struct {
	Storage Storage
}

// Load loads session data from the underlying storage.
func (l *Loader) Load(ctx context.Context) (*Data, error) {
	buf, err := l.Storage.LoadSession(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "load")
	}
	if len(buf) == 0 {
		return nil, ErrNotFound
	}

	var data Data
	if err := data.decode(&bin.Buffer{Buf: buf}); err != nil {
		return nil, errors.Wrap(err, "decode")
	}
	return &data, nil
}

// Save saves session data to the underlying storage.
func (l *Loader) Save(ctx context.Context, data *Data) error {
	var b bin.Buffer
	data.encode(&b)
	if err := l.Storage.StoreSession(ctx, b.Copy()); err != nil {
		return errors.Wrap(err, "store")
	}
	return nil
}
