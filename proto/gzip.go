package proto

import (
	"bytes"
	"io"

	"github.com/go-faster/errors"
	"github.com/klauspost/compress/gzip"

	"github.com/gramkit/gram/bin"
)

// GZIPTypeID is TL type id of gzip_packed.
const GZIPTypeID = 0x3072cfa1

// maxUncompressedSize limits decompressed payload size to protect
// against decompression bombs.
const maxUncompressedSize = 1024 * 1024 * 10

// GZIP represents a gzip_packed payload.
type GZIP struct {
	Data []byte
}

// Encode implements bin.Encoder.
func (g GZIP) Encode(b *bin.Buffer) error {
	b.PutID(GZIPTypeID)

	buf := &bytes.Buffer{}
	w := gzip.NewWriter(buf)
	if _, err := w.Write(g.Data); err != nil {
		return errors.Wrap(err, "compress")
	}
	if err := w.Close(); err != nil {
		return errors.Wrap(err, "close")
	}

	b.PutBytes(buf.Bytes())
	return nil
}

// Decode implements bin.Decoder.
func (g *GZIP) Decode(b *bin.Buffer) error {
	if err := b.ConsumeID(GZIPTypeID); err != nil {
		return errors.Wrap(err, "gzip_packed")
	}
	packed, err := b.Bytes()
	if err != nil {
		return errors.Wrap(err, "packed_data")
	}

	r, err := gzip.NewReader(bytes.NewReader(packed))
	if err != nil {
		return errors.Wrap(err, "gzip reader")
	}
	defer func() { _ = r.Close() }()

	g.Data, err = io.ReadAll(io.LimitReader(r, maxUncompressedSize+1))
	if err != nil {
		return errors.Wrap(err, "decompress")
	}
	if len(g.Data) > maxUncompressedSize {
		return errors.New("decompressed payload too big")
	}
	return nil
}
