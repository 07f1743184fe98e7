// Package crypto implements MTProto 2.0 cryptographic primitives.
package crypto

import (
	"crypto/sha1" // #nosec G505: protocol-mandated
	"encoding/binary"

	"github.com/gramkit/gram/bin"
)

// Key represents 2048-bit authorization key value.
type Key [256]byte

// ID returns auth_key_id.
func (k Key) ID() [8]byte {
	raw := sha1.Sum(k[:]) // #nosec G401: protocol-mandated
	var id [8]byte
	copy(id[:], raw[12:])
	return id
}

// AuxHash returns aux_hash value of key.
func (k Key) AuxHash() [8]byte {
	raw := sha1.Sum(k[:]) // #nosec G401: protocol-mandated
	var id [8]byte
	copy(id[:], raw[:8])
	return id
}

// WithID creates new AuthKey from Key.
func (k Key) WithID() AuthKey {
	return AuthKey{
		Value:   k,
		ID:      k.ID(),
		AuxHash: k.AuxHash(),
	}
}

// AuthKey is a Key with cached id and aux hash.
type AuthKey struct {
	Value   Key
	ID      [8]byte
	AuxHash [8]byte
}

// Zero reports whether auth key is zero value.
func (a AuthKey) Zero() bool {
	return a == AuthKey{}
}

// IntID returns key fingerprint (key id) as int64.
func (a AuthKey) IntID() int64 {
	return int64(binary.LittleEndian.Uint64(a.ID[:]))
}

// EncryptedMessage is an encrypted MTProto envelope.
type EncryptedMessage struct {
	AuthKeyID [8]byte
	MsgKey    bin.Int128

	EncryptedData []byte
}

// Encode implements bin.Encoder.
func (e EncryptedMessage) Encode(b *bin.Buffer) error {
	b.Put(e.AuthKeyID[:])
	b.PutInt128(e.MsgKey)
	b.Put(e.EncryptedData)
	return nil
}

// Decode implements bin.Decoder.
func (e *EncryptedMessage) Decode(b *bin.Buffer) error {
	if err := b.PeekN(e.AuthKeyID[:], len(e.AuthKeyID)); err != nil {
		return err
	}
	b.Skip(len(e.AuthKeyID))
	{
		v, err := b.Int128()
		if err != nil {
			return err
		}
		e.MsgKey = v
	}
	e.EncryptedData = append(e.EncryptedData[:0], b.Buf...)
	b.Skip(len(b.Buf))
	if len(e.EncryptedData)%16 != 0 {
		return bin.ErrMalformed
	}
	return nil
}

// EncryptedMessageData is inner data of encrypted message.
type EncryptedMessageData struct {
	Salt      int64
	SessionID int64
	MessageID int64
	SeqNo     int32

	MessageDataLen         int32
	MessageDataWithPadding []byte
}

// Encode implements bin.Encoder.
func (e EncryptedMessageData) Encode(b *bin.Buffer) error {
	b.PutLong(e.Salt)
	b.PutLong(e.SessionID)
	b.PutLong(e.MessageID)
	b.PutInt32(e.SeqNo)
	b.PutInt32(e.MessageDataLen)
	b.Put(e.MessageDataWithPadding)
	return nil
}

// Decode implements bin.Decoder.
func (e *EncryptedMessageData) Decode(b *bin.Buffer) error {
	{
		v, err := b.Long()
		if err != nil {
			return err
		}
		e.Salt = v
	}
	{
		v, err := b.Long()
		if err != nil {
			return err
		}
		e.SessionID = v
	}
	{
		v, err := b.Long()
		if err != nil {
			return err
		}
		e.MessageID = v
	}
	{
		v, err := b.Int32()
		if err != nil {
			return err
		}
		e.SeqNo = v
	}
	{
		v, err := b.Int32()
		if err != nil {
			return err
		}
		e.MessageDataLen = v
	}
	e.MessageDataWithPadding = append(e.MessageDataWithPadding[:0], b.Buf...)
	b.Skip(len(b.Buf))
	if e.MessageDataLen < 0 || int(e.MessageDataLen) > len(e.MessageDataWithPadding) {
		return bin.ErrMalformed
	}
	return nil
}

// Data returns message data without hash.
func (e *EncryptedMessageData) Data() []byte {
	return e.MessageDataWithPadding[:e.MessageDataLen]
}
