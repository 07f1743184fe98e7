package bin

import "encoding/binary"

// PeekID returns next type id in Buffer, but does not consume it.
func (b *Buffer) PeekID() (uint32, error) {
	if len(b.Buf) < Word {
		return 0, ErrTruncated
	}
	v := binary.LittleEndian.Uint32(b.Buf)
	return v, nil
}

// PeekN returns n bytes from Buffer to target, but does not consume it.
func (b *Buffer) PeekN(target []byte, n int) error {
	if len(b.Buf) < n {
		return ErrTruncated
	}
	copy(target, b.Buf[:n])
	return nil
}

// ID decodes type id from Buffer.
func (b *Buffer) ID() (uint32, error) {
	return b.Uint32()
}

// ConsumeID decodes type id from Buffer. If id differs from provided,
// the *UnexpectedIDErr is returned and buffer is not consumed.
func (b *Buffer) ConsumeID(id uint32) error {
	v, err := b.PeekID()
	if err != nil {
		return err
	}
	if v != id {
		return NewUnexpectedID(v)
	}
	b.Buf = b.Buf[Word:]
	return nil
}

// VectorHeader decodes vector length from Buffer.
func (b *Buffer) VectorHeader() (int, error) {
	if err := b.ConsumeID(TypeVector); err != nil {
		return 0, err
	}
	n, err := b.Int()
	if err != nil {
		return 0, err
	}
	// Each element takes at least a 4-byte word: a count that cannot
	// fit in the remaining bytes is malformed, not merely truncated.
	if n < 0 || n*Word > len(b.Buf) {
		return 0, ErrMalformed
	}
	return n, nil
}

// Uint32 decodes unsigned 32-bit integer from Buffer.
func (b *Buffer) Uint32() (uint32, error) {
	if len(b.Buf) < Word {
		return 0, ErrTruncated
	}
	v := binary.LittleEndian.Uint32(b.Buf)
	b.Buf = b.Buf[Word:]
	return v, nil
}

// Int32 decodes signed 32-bit integer from Buffer.
func (b *Buffer) Int32() (int32, error) {
	v, err := b.Uint32()
	if err != nil {
		return 0, err
	}
	return int32(v), nil
}

// Int decodes integer from Buffer.
func (b *Buffer) Int() (int, error) {
	v, err := b.Int32()
	if err != nil {
		return 0, err
	}
	return int(v), nil
}

// Bool decodes bare boolean from Buffer.
func (b *Buffer) Bool() (bool, error) {
	v, err := b.PeekID()
	if err != nil {
		return false, err
	}
	switch v {
	case TypeTrue:
		b.Buf = b.Buf[Word:]
		return true, nil
	case TypeFalse:
		b.Buf = b.Buf[Word:]
		return false, nil
	default:
		return false, NewUnexpectedID(v)
	}
}

// Uint64 decodes 64-bit unsigned integer from Buffer.
func (b *Buffer) Uint64() (uint64, error) {
	const size = Word * 2
	if len(b.Buf) < size {
		return 0, ErrTruncated
	}
	v := binary.LittleEndian.Uint64(b.Buf)
	b.Buf = b.Buf[size:]
	return v, nil
}

// Long decodes 64-bit signed integer from Buffer.
func (b *Buffer) Long() (int64, error) {
	v, err := b.Uint64()
	if err != nil {
		return 0, err
	}
	return int64(v), nil
}

// Double decodes 64-bit floating point from Buffer.
func (b *Buffer) Double() (float64, error) {
	v, err := b.Uint64()
	if err != nil {
		return 0, err
	}
	return uint64ToDouble(v), nil
}

// Int128 decodes 128-bit signed integer from Buffer.
func (b *Buffer) Int128() (Int128, error) {
	v := Int128{}
	if len(b.Buf) < len(v) {
		return Int128{}, ErrTruncated
	}
	copy(v[:], b.Buf[:len(v)])
	b.Buf = b.Buf[len(v):]
	return v, nil
}

// Int256 decodes 256-bit signed integer from Buffer.
func (b *Buffer) Int256() (Int256, error) {
	v := Int256{}
	if len(b.Buf) < len(v) {
		return Int256{}, ErrTruncated
	}
	copy(v[:], b.Buf[:len(v)])
	b.Buf = b.Buf[len(v):]
	return v, nil
}

// String decodes string from Buffer.
func (b *Buffer) String() (string, error) {
	n, v, err := decodeString(b.Buf)
	if err != nil {
		return "", err
	}
	b.Buf = b.Buf[n:]
	return v, nil
}

// Bytes decodes byte string from Buffer.
//
// NB: returning value is a copy, it's safe to modify it.
func (b *Buffer) Bytes() ([]byte, error) {
	n, v, err := decodeBytes(b.Buf)
	if err != nil {
		return nil, err
	}
	b.Buf = b.Buf[n:]
	return append([]byte(nil), v...), nil
}

// Consume returns and consumes n bytes from Buffer.
func (b *Buffer) Consume(n int) ([]byte, error) {
	if n < 0 {
		return nil, ErrMalformed
	}
	if len(b.Buf) < n {
		return nil, ErrTruncated
	}
	v := append([]byte(nil), b.Buf[:n]...)
	b.Buf = b.Buf[n:]
	return v, nil
}
