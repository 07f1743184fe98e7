package bin

import (
	"io"
	"math/big"
)

// Int128 represents signed 128-bit integer.
type Int128 [16]byte

// Decode implements bin.Decoder.
func (i *Int128) Decode(buf *Buffer) error {
	v, err := buf.Int128()
	if err != nil {
		return err
	}
	*i = v
	return nil
}

// Encode implements bin.Encoder.
func (i Int128) Encode(b *Buffer) error {
	b.PutInt128(i)
	return nil
}

// BigInt returns corresponding big.Int value.
func (i Int128) BigInt() *big.Int {
	return big.NewInt(0).SetBytes(i[:])
}

// RandInt128 generates and returns new random 128-bit integer.
func RandInt128(randSource io.Reader) (Int128, error) {
	buf := make([]byte, 16)
	if _, err := io.ReadFull(randSource, buf); err != nil {
		return Int128{}, err
	}
	i := Int128{}
	copy(i[:], buf)
	return i, nil
}

// Int256 represents signed 256-bit integer.
type Int256 [32]byte

// Decode implements bin.Decoder.
func (i *Int256) Decode(buf *Buffer) error {
	v, err := buf.Int256()
	if err != nil {
		return err
	}
	*i = v
	return nil
}

// Encode implements bin.Encoder.
func (i Int256) Encode(b *Buffer) error {
	b.PutInt256(i)
	return nil
}

// BigInt returns corresponding big.Int value.
func (i Int256) BigInt() *big.Int {
	return big.NewInt(0).SetBytes(i[:])
}

// RandInt256 generates and returns new random 256-bit integer.
func RandInt256(randSource io.Reader) (Int256, error) {
	buf := make([]byte, 32)
	if _, err := io.ReadFull(randSource, buf); err != nil {
		return Int256{}, err
	}
	i := Int256{}
	copy(i[:], buf)
	return i, nil
}
