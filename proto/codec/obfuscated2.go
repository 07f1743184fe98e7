package codec

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/binary"
	"io"

	"github.com/go-faster/errors"

	"github.com/gramkit/gram/bin"
)

// Obfuscated2 is the obfuscated transport: a 64-byte random handshake
// frame establishes two AES-256-CTR streams, and intermediate frames
// are XORed with the client stream afterwards.
//
// https://core.telegram.org/mtproto/mtproto-transports#transport-obfuscation
type Obfuscated2 struct {
	// Rand is the frame source, crypto/rand by default.
	Rand io.Reader
	// Protocol is the inner protocol tag, intermediate by default.
	Protocol [4]byte

	enc cipher.Stream
	dec cipher.Stream
}

const obfuscatedFrameSize = 64

// Reserved first-word values that must not appear in a handshake
// frame, taken from the reference implementation.
var obfuscatedReservedMagic = [...]uint32{
	0x44414548, // "HEAD"
	0x54534f50, // "POST"
	0x20544547, // "GET "
	0x4954504f, // "OPTI"
	0xdddddddd,
	0xeeeeeeee,
	0x02010316,
}

func (o *Obfuscated2) rand() io.Reader {
	if o.Rand != nil {
		return o.Rand
	}
	return rand.Reader
}

func (o *Obfuscated2) protocol() [4]byte {
	if o.Protocol == [4]byte{} {
		return IntermediateClientStart
	}
	return o.Protocol
}

// generateFrame produces a random handshake frame satisfying protocol
// constraints.
func (o *Obfuscated2) generateFrame() ([obfuscatedFrameSize]byte, error) {
	var frame [obfuscatedFrameSize]byte
	for {
		if _, err := io.ReadFull(o.rand(), frame[:]); err != nil {
			return frame, errors.Wrap(err, "generate frame")
		}
		if frame[0] == 0xef {
			continue
		}
		if reserved(binary.LittleEndian.Uint32(frame[:4])) {
			continue
		}
		if frame[4]|frame[5]|frame[6]|frame[7] == 0 {
			continue
		}
		tag := o.protocol()
		copy(frame[56:60], tag[:])
		return frame, nil
	}
}

func reserved(magic uint32) bool {
	for _, v := range obfuscatedReservedMagic {
		if magic == v {
			return true
		}
	}
	return false
}

func newCTR(key, iv []byte) (cipher.Stream, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewCTR(block, iv), nil
}

// WriteHeader generates the handshake frame, derives both stream
// ciphers and sends the partially encrypted frame.
func (o *Obfuscated2) WriteHeader(w io.Writer) error {
	frame, err := o.generateFrame()
	if err != nil {
		return err
	}

	// Encryptor uses key and IV as sent; decryptor uses the byte-wise
	// reversal of the same 48-byte block.
	o.enc, err = newCTR(frame[8:40], frame[40:56])
	if err != nil {
		return errors.Wrap(err, "create encryptor")
	}
	var inverted [48]byte
	for i := 0; i < 48; i++ {
		inverted[47-i] = frame[8+i]
	}
	o.dec, err = newCTR(inverted[:32], inverted[32:48])
	if err != nil {
		return errors.Wrap(err, "create decryptor")
	}

	var encrypted [obfuscatedFrameSize]byte
	o.enc.XORKeyStream(encrypted[:], frame[:])

	// The wire frame keeps the plaintext prefix so the peer can derive
	// the same ciphers, only the tail is sent encrypted.
	copy(frame[56:], encrypted[56:])
	if _, err := w.Write(frame[:]); err != nil {
		return errors.Wrap(err, "write obfuscated header")
	}
	return nil
}

// ReadHeader is no-op: the server does not send a header back.
func (o *Obfuscated2) ReadHeader(io.Reader) error { return nil }

// Write encrypts and sends one intermediate frame.
func (o *Obfuscated2) Write(w io.Writer, b *bin.Buffer) error {
	if o.enc == nil {
		return errors.New("obfuscated header was not written")
	}
	if err := checkOutgoingMessage(b); err != nil {
		return err
	}

	frame := make([]byte, 0, b.Len()+4)
	frame = binary.LittleEndian.AppendUint32(frame, uint32(b.Len()))
	frame = append(frame, b.Raw()...)
	o.enc.XORKeyStream(frame, frame)

	if _, err := w.Write(frame); err != nil {
		return errors.Wrap(err, "write obfuscated frame")
	}
	return nil
}

// Read receives and decrypts one intermediate frame.
func (o *Obfuscated2) Read(r io.Reader, b *bin.Buffer) error {
	if o.dec == nil {
		return errors.New("obfuscated header was not written")
	}

	length := make([]byte, 4)
	if _, err := io.ReadFull(r, length); err != nil {
		return errors.Wrap(err, "read length")
	}
	o.dec.XORKeyStream(length, length)

	n := int(binary.LittleEndian.Uint32(length))
	if n <= 0 || n > MaxMessageSize {
		return &InvalidLengthError{Length: n, Where: "obfuscated frame"}
	}

	b.ResetTo(make([]byte, n))
	if _, err := io.ReadFull(r, b.Buf); err != nil {
		return errors.Wrap(err, "read payload")
	}
	o.dec.XORKeyStream(b.Buf, b.Buf)
	return nil
}
