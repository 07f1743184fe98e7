package bin

// Buffer implements low level binary (de-)serialization for TL.
type Buffer struct {
	Buf []byte
}

// Encode object to Buffer.
func (b *Buffer) Encode(e Encoder) error {
	return e.Encode(b)
}

// Decode object from Buffer.
func (b *Buffer) Decode(d Decoder) error {
	return d.Decode(b)
}

// Raw returns internal byte slice.
func (b Buffer) Raw() []byte {
	return b.Buf
}

// Len returns length of internal buffer.
func (b Buffer) Len() int {
	return len(b.Buf)
}

// Copy returns new copy of buffer.
func (b Buffer) Copy() []byte {
	buf := make([]byte, len(b.Buf))
	copy(buf, b.Buf)
	return buf
}

// Reset buffer to zero length.
func (b *Buffer) Reset() {
	b.Buf = b.Buf[:0]
}

// ResetTo sets internal buffer exactly to provided value.
//
// Buffer will retain buf, so it is not safe to use buf after ResetTo call.
func (b *Buffer) ResetTo(buf []byte) {
	b.Buf = buf
}

// Skip ignores n bytes from buffer.
func (b *Buffer) Skip(n int) {
	b.Buf = b.Buf[n:]
}

// Expand expands buffer to add n bytes.
func (b *Buffer) Expand(n int) {
	b.Buf = append(b.Buf, make([]byte, n)...)
}
