// Package bin implements the TL (Type Language) binary wire format.
//
// All integers are little-endian. Strings and byte slices are
// length-prefixed and padded to a 4-byte boundary. Boxed values are
// preceded by a 32-bit constructor ID.
package bin

// Encoder can encode it's value to Buffer.
type Encoder interface {
	Encode(b *Buffer) error
}

// Decoder can decode it's value from Buffer.
type Decoder interface {
	Decode(b *Buffer) error
}

// Object wraps Encoder and Decoder interface and represents TL Object.
type Object interface {
	Encoder
	Decoder
}

// BareEncoder can encode it's value to Buffer, but does not write type ID.
type BareEncoder interface {
	EncodeBare(b *Buffer) error
}

// BareDecoder can decode it's value from Buffer, but does not read type ID.
type BareDecoder interface {
	DecodeBare(b *Buffer) error
}
