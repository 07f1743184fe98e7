package crypto

import (
	"crypto/sha256"

	"github.com/gramkit/gram/bin"
)

// MTProto 2.0 key derivation, see
// https://core.telegram.org/mtproto/description#defining-aes-key-and-initialization-vector

// msgKeyLarge computes msg_key_large value.
func msgKeyLarge(authKey Key, x int, plaintextPadded []byte) [32]byte {
	h := sha256.New()
	_, _ = h.Write(authKey[88+x : 88+x+32])
	_, _ = h.Write(plaintextPadded)

	var v [32]byte
	h.Sum(v[:0])
	return v
}

// messageKeyFragment returns msg_key = substr(msg_key_large, 8, 16).
func messageKeyFragment(keyLarge [32]byte) bin.Int128 {
	var v bin.Int128
	copy(v[:], keyLarge[8:8+16])
	return v
}

// MessageKey computes msg_key for a plaintext (with padding) encrypted
// by the given side.
func MessageKey(authKey Key, plaintextPadded []byte, mode Side) bin.Int128 {
	return messageKeyFragment(msgKeyLarge(authKey, mode.X(), plaintextPadded))
}

func sha256a(authKey Key, msgKey bin.Int128, x int) [32]byte {
	h := sha256.New()
	_, _ = h.Write(msgKey[:])
	_, _ = h.Write(authKey[x : x+36])

	var v [32]byte
	h.Sum(v[:0])
	return v
}

func sha256b(authKey Key, msgKey bin.Int128, x int) [32]byte {
	h := sha256.New()
	_, _ = h.Write(authKey[40+x : 40+x+36])
	_, _ = h.Write(msgKey[:])

	var v [32]byte
	h.Sum(v[:0])
	return v
}

// aesKey computes aes_key = substr(sha256_a, 0, 8) + substr(sha256_b, 8, 16) + substr(sha256_a, 24, 8).
func aesKey(a, b [32]byte) (key [32]byte) {
	copy(key[:8], a[:8])
	copy(key[8:24], b[8:24])
	copy(key[24:32], a[24:32])
	return key
}

// aesIV computes aes_iv = substr(sha256_b, 0, 8) + substr(sha256_a, 8, 16) + substr(sha256_b, 24, 8).
func aesIV(a, b [32]byte) (iv [32]byte) {
	copy(iv[:8], b[:8])
	copy(iv[8:24], a[8:24])
	copy(iv[24:32], b[24:32])
	return iv
}

// Keys derives aes_key and aes_iv from auth_key and msg_key for the
// given encryption side.
func Keys(authKey Key, msgKey bin.Int128, mode Side) (key, iv [32]byte) {
	x := mode.X()
	a := sha256a(authKey, msgKey, x)
	b := sha256b(authKey, msgKey, x)
	return aesKey(a, b), aesIV(a, b)
}
