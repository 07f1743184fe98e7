package crypto

import (
	"crypto/aes"
	"crypto/subtle"
	"io"

	"github.com/go-faster/errors"
	"github.com/gotd/ige"

	"github.com/gramkit/gram/bin"
)

// Padding limits of encrypted message data.
const (
	minPadding = 12
	maxPadding = 1024
)

// ErrIntegrityCheckFailed means that recomputed msg_key does not match
// the transmitted one. The message must be discarded and the connection
// considered corrupted.
var ErrIntegrityCheckFailed = errors.New("integrity check failed")

// Cipher implements message encryption and decryption for one side of
// an MTProto session.
type Cipher struct {
	rand        io.Reader
	encryptSide Side
}

// NewClientCipher creates new client-side Cipher.
func NewClientCipher(rand io.Reader) Cipher {
	return Cipher{rand: rand, encryptSide: Client}
}

// NewServerCipher creates new server-side Cipher.
func NewServerCipher(rand io.Reader) Cipher {
	return Cipher{rand: rand, encryptSide: Server}
}

// Rand returns random source of cipher.
func (c Cipher) Rand() io.Reader {
	return c.rand
}

// paddingRequired returns the number of random padding bytes for a
// plaintext of given length: between 12 and 1024, total length a
// multiple of the AES block size.
func paddingRequired(l int) int {
	n := aes.BlockSize - l%aes.BlockSize
	if n < minPadding {
		n += aes.BlockSize
	}
	return n
}

// Encrypt encrypts EncryptedMessageData using AES-IGE and writes an
// EncryptedMessage to b.
func (c Cipher) Encrypt(key AuthKey, data EncryptedMessageData, b *bin.Buffer) error {
	plaintext := bin.Buffer{}
	if err := data.Encode(&plaintext); err != nil {
		return errors.Wrap(err, "encode message data")
	}

	padding := paddingRequired(plaintext.Len())
	plaintext.Expand(padding)
	if _, err := io.ReadFull(c.rand, plaintext.Buf[plaintext.Len()-padding:]); err != nil {
		return errors.Wrap(err, "read padding")
	}

	msgKey := MessageKey(key.Value, plaintext.Buf, c.encryptSide)
	aesKey, aesIV := Keys(key.Value, msgKey, c.encryptSide)

	block, err := aes.NewCipher(aesKey[:])
	if err != nil {
		return errors.Wrap(err, "create cipher")
	}
	encrypted := make([]byte, plaintext.Len())
	ige.EncryptBlocks(block, aesIV[:], encrypted, plaintext.Buf)

	msg := EncryptedMessage{
		AuthKeyID:     key.ID,
		MsgKey:        msgKey,
		EncryptedData: encrypted,
	}
	return msg.Encode(b)
}

// Decrypt decrypts an EncryptedMessage and verifies its integrity.
func (c Cipher) Decrypt(key AuthKey, encrypted *EncryptedMessage) (*EncryptedMessageData, error) {
	if encrypted.AuthKeyID != key.ID {
		return nil, errors.New("unknown auth key id")
	}
	if len(encrypted.EncryptedData)%aes.BlockSize != 0 {
		return nil, errors.New("invalid encrypted data padding")
	}

	side := c.encryptSide.DecryptSide()
	aesKey, aesIV := Keys(key.Value, encrypted.MsgKey, side)
	block, err := aes.NewCipher(aesKey[:])
	if err != nil {
		return nil, errors.Wrap(err, "create cipher")
	}

	plaintext := make([]byte, len(encrypted.EncryptedData))
	ige.DecryptBlocks(block, aesIV[:], plaintext, encrypted.EncryptedData)

	// Recompute msg_key over decrypted plaintext and compare in
	// constant time: mismatch means the envelope was tampered with.
	msgKey := MessageKey(key.Value, plaintext, side)
	if subtle.ConstantTimeCompare(msgKey[:], encrypted.MsgKey[:]) != 1 {
		return nil, ErrIntegrityCheckFailed
	}

	msg := &EncryptedMessageData{}
	if err := msg.Decode(&bin.Buffer{Buf: plaintext}); err != nil {
		return nil, errors.Wrap(err, "decode message data")
	}
	{
		padding := len(msg.MessageDataWithPadding) - int(msg.MessageDataLen)
		if padding < minPadding || padding > maxPadding {
			return nil, errors.Wrap(bin.ErrMalformed, "invalid padding")
		}
	}
	return msg, nil
}

// DecryptFromBuffer decodes EncryptedMessage from b and decrypts it.
func (c Cipher) DecryptFromBuffer(key AuthKey, b *bin.Buffer) (*EncryptedMessageData, error) {
	msg := &EncryptedMessage{}
	if err := msg.Decode(b); err != nil {
		return nil, errors.Wrap(err, "decode encrypted message")
	}
	return c.Decrypt(key, msg)
}
