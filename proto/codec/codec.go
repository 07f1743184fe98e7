// Package codec implements MTProto transport framing: intermediate,
// padded intermediate and full variants.
package codec

import (
	"io"

	"github.com/go-faster/errors"

	"github.com/gramkit/gram/bin"
)

// MaxMessageSize is the upper bound of a single transport frame.
const MaxMessageSize = 1024 * 1024 // 1mb

// Codec is a MTProto transport framing protocol.
type Codec interface {
	// WriteHeader sends protocol tag if needed.
	WriteHeader(w io.Writer) error
	// ReadHeader reads protocol tag if needed.
	ReadHeader(r io.Reader) error
	// Write encodes one frame to w.
	Write(w io.Writer, b *bin.Buffer) error
	// Read fills b with exactly one frame from r.
	Read(r io.Reader, b *bin.Buffer) error
}

// ErrProtocolHeaderMismatch means that received protocol header
// does not match expected one.
var ErrProtocolHeaderMismatch = errors.New("protocol header mismatch")

// InvalidLengthError means that a frame declared an impossible length.
type InvalidLengthError struct {
	Length int
	Where  string
}

func (e *InvalidLengthError) Error() string {
	return "invalid length in " + e.Where
}

func checkOutgoingMessage(b *bin.Buffer) error {
	length := b.Len()
	if length > MaxMessageSize {
		return &InvalidLengthError{Length: length, Where: "outgoing message"}
	}
	if length%4 != 0 {
		return errors.New("outgoing message not aligned")
	}
	return nil
}
