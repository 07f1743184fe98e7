package codec

import (
	"encoding/binary"
	"io"

	"github.com/go-faster/errors"

	"github.com/gramkit/gram/bin"
)

// IntermediateClientStart is the protocol tag sent by client before
// the first intermediate frame.
var IntermediateClientStart = [4]byte{0xee, 0xee, 0xee, 0xee}

// Intermediate is intermediate transport framing:
// https://core.telegram.org/mtproto/mtproto-transports#intermediate
type Intermediate struct{}

// WriteHeader sends protocol tag.
func (i Intermediate) WriteHeader(w io.Writer) error {
	if _, err := w.Write(IntermediateClientStart[:]); err != nil {
		return errors.Wrap(err, "write intermediate header")
	}
	return nil
}

// ReadHeader reads and checks protocol tag.
func (i Intermediate) ReadHeader(r io.Reader) error {
	var tag [4]byte
	if _, err := io.ReadFull(r, tag[:]); err != nil {
		return errors.Wrap(err, "read intermediate header")
	}
	if tag != IntermediateClientStart {
		return ErrProtocolHeaderMismatch
	}
	return nil
}

// Write encodes one frame: length:u32 payload.
func (i Intermediate) Write(w io.Writer, b *bin.Buffer) error {
	if err := checkOutgoingMessage(b); err != nil {
		return err
	}
	if err := writeIntermediate(w, b); err != nil {
		return errors.Wrap(err, "write intermediate")
	}
	return nil
}

// Read reads one frame into b.
func (i Intermediate) Read(r io.Reader, b *bin.Buffer) error {
	if err := readIntermediate(r, b, false); err != nil {
		return errors.Wrap(err, "read intermediate")
	}
	return nil
}

func writeIntermediate(w io.Writer, b *bin.Buffer) error {
	length := make([]byte, 4)
	binary.LittleEndian.PutUint32(length, uint32(b.Len()))
	if _, err := w.Write(length); err != nil {
		return err
	}
	if _, err := w.Write(b.Raw()); err != nil {
		return err
	}
	return nil
}

func readIntermediate(r io.Reader, b *bin.Buffer, padded bool) error {
	length := make([]byte, 4)
	if _, err := io.ReadFull(r, length); err != nil {
		return err
	}
	n := int(binary.LittleEndian.Uint32(length))

	max := MaxMessageSize
	if padded {
		max += paddedIntermediatePadding
	}
	if n <= 0 || n > max {
		return &InvalidLengthError{Length: n, Where: "intermediate frame"}
	}

	b.ResetTo(make([]byte, n))
	if _, err := io.ReadFull(r, b.Buf); err != nil {
		return err
	}
	return nil
}
