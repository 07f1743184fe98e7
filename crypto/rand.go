package crypto

import (
	"crypto/rand"
	"encoding/binary"
	"io"
	"math/big"
)

// DefaultRand returns default CSPRNG.
func DefaultRand() io.Reader {
	return rand.Reader
}

// RandInt64 returns new random int64 from random source.
func RandInt64(randSource io.Reader) (int64, error) {
	buf := make([]byte, 8)
	if _, err := io.ReadFull(randSource, buf); err != nil {
		return 0, err
	}
	return int64(binary.LittleEndian.Uint64(buf)), nil
}

// RandExponent returns a random DH exponent in [1, max].
func RandExponent(randSource io.Reader, max *big.Int) (*big.Int, error) {
	return randFullInt(randSource, max)
}

// RandInt64n returns a random int64 in [0, n) from random source.
func RandInt64n(randSource io.Reader, n int64) (int64, error) {
	v, err := RandInt64(randSource)
	if err != nil {
		return 0, err
	}
	if v < 0 {
		v = -v
	}
	return v % n, nil
}
