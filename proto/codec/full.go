package codec

import (
	"encoding/binary"
	"hash/crc32"
	"io"

	"github.com/go-faster/errors"

	"github.com/gramkit/gram/bin"
)

// Full is full transport framing:
//
//	length:u32 seq_no:u32 payload crc:u32
//
// where crc is CRC32-IEEE over length, seq_no and payload, and seq_no
// counts frames per direction starting from zero.
type Full struct {
	wSeqNo int
	rSeqNo int
}

// WriteHeader is no-op for full framing.
func (c *Full) WriteHeader(io.Writer) error { return nil }

// ReadHeader is no-op for full framing.
func (c *Full) ReadHeader(io.Reader) error { return nil }

// ErrSeqNoMismatch means that frame sequence number differs from
// expected.
var ErrSeqNoMismatch = errors.New("seq_no mismatch")

// ErrCRCMismatch means that frame checksum verification failed.
var ErrCRCMismatch = errors.New("crc mismatch")

// Write encodes one frame.
func (c *Full) Write(w io.Writer, b *bin.Buffer) error {
	if err := checkOutgoingMessage(b); err != nil {
		return err
	}

	frame := make([]byte, 0, b.Len()+12)
	frame = binary.LittleEndian.AppendUint32(frame, uint32(b.Len()+12))
	frame = binary.LittleEndian.AppendUint32(frame, uint32(c.wSeqNo))
	frame = append(frame, b.Raw()...)
	frame = binary.LittleEndian.AppendUint32(frame, crc32.ChecksumIEEE(frame))

	if _, err := w.Write(frame); err != nil {
		return errors.Wrap(err, "write full frame")
	}
	c.wSeqNo++
	return nil
}

// Read reads one frame into b, verifying checksum and sequence number.
func (c *Full) Read(r io.Reader, b *bin.Buffer) error {
	header := make([]byte, 8)
	if _, err := io.ReadFull(r, header); err != nil {
		return errors.Wrap(err, "read header")
	}
	length := int(binary.LittleEndian.Uint32(header[:4]))
	if length < 12 || length > MaxMessageSize+12 {
		return &InvalidLengthError{Length: length, Where: "full frame"}
	}
	seqNo := int(binary.LittleEndian.Uint32(header[4:8]))
	if seqNo != c.rSeqNo {
		return ErrSeqNoMismatch
	}

	payload := make([]byte, length-8)
	if _, err := io.ReadFull(r, payload); err != nil {
		return errors.Wrap(err, "read payload")
	}

	crc := binary.LittleEndian.Uint32(payload[len(payload)-4:])
	h := crc32.NewIEEE()
	_, _ = h.Write(header)
	_, _ = h.Write(payload[:len(payload)-4])
	if h.Sum32() != crc {
		return ErrCRCMismatch
	}

	c.rSeqNo++
	b.ResetTo(payload[:len(payload)-4])
	return nil
}
