package codec

import (
	"crypto/rand"
	"encoding/binary"
	"io"

	"github.com/go-faster/errors"

	"github.com/gramkit/gram/bin"
)

// PaddedIntermediateClientStart is the protocol tag of padded
// intermediate framing.
var PaddedIntermediateClientStart = [4]byte{0xdd, 0xdd, 0xdd, 0xdd}

// paddedIntermediatePadding is the maximum random padding appended to
// each frame.
const paddedIntermediatePadding = 16

// PaddedIntermediate is padded intermediate transport framing, which
// hides exact frame lengths behind 0..15 random bytes.
type PaddedIntermediate struct {
	// Rand is the padding source, crypto/rand by default.
	Rand io.Reader
}

func (p PaddedIntermediate) rand() io.Reader {
	if p.Rand != nil {
		return p.Rand
	}
	return rand.Reader
}

// WriteHeader sends protocol tag.
func (p PaddedIntermediate) WriteHeader(w io.Writer) error {
	if _, err := w.Write(PaddedIntermediateClientStart[:]); err != nil {
		return errors.Wrap(err, "write padded intermediate header")
	}
	return nil
}

// ReadHeader reads and checks protocol tag.
func (p PaddedIntermediate) ReadHeader(r io.Reader) error {
	var tag [4]byte
	if _, err := io.ReadFull(r, tag[:]); err != nil {
		return errors.Wrap(err, "read padded intermediate header")
	}
	if tag != PaddedIntermediateClientStart {
		return ErrProtocolHeaderMismatch
	}
	return nil
}

// Write encodes one padded frame.
func (p PaddedIntermediate) Write(w io.Writer, b *bin.Buffer) error {
	if err := checkOutgoingMessage(b); err != nil {
		return err
	}

	padding := make([]byte, 4)
	if _, err := io.ReadFull(p.rand(), padding[:1]); err != nil {
		return errors.Wrap(err, "generate padding")
	}
	n := int(padding[0]) % paddedIntermediatePadding
	padding = padding[:n]
	if _, err := io.ReadFull(p.rand(), padding); err != nil {
		return errors.Wrap(err, "generate padding")
	}

	length := make([]byte, 4)
	binary.LittleEndian.PutUint32(length, uint32(b.Len()+n))
	if _, err := w.Write(length); err != nil {
		return errors.Wrap(err, "write length")
	}
	if _, err := w.Write(b.Raw()); err != nil {
		return errors.Wrap(err, "write payload")
	}
	if _, err := w.Write(padding); err != nil {
		return errors.Wrap(err, "write padding")
	}
	return nil
}

// Read reads one padded frame into b, stripping the padding.
func (p PaddedIntermediate) Read(r io.Reader, b *bin.Buffer) error {
	if err := readIntermediate(r, b, true); err != nil {
		return errors.Wrap(err, "read padded intermediate")
	}
	b.Buf = b.Buf[:b.Len()-b.Len()%4]
	return nil
}
