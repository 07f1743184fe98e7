package crypto

import (
	"bytes"
	"crypto/aes"
	"crypto/sha1" // #nosec G505: protocol-mandated
	"io"

	"github.com/go-faster/errors"
	"github.com/gotd/ige"

	"github.com/gramkit/gram/bin"
)

// tempKeys derives handshake AES-IGE key and IV:
//
//	tmp_aes_key := SHA1(new_nonce + server_nonce) + substr(SHA1(server_nonce + new_nonce), 0, 12)
//	tmp_aes_iv  := substr(SHA1(server_nonce + new_nonce), 12, 8) + SHA1(new_nonce + new_nonce) + substr(new_nonce, 0, 4)
func tempKeys(newNonce bin.Int256, serverNonce bin.Int128) (key, iv [32]byte) {
	h := sha1.New() // #nosec G401: protocol-mandated

	nonceServer := func() [20]byte {
		h.Reset()
		_, _ = h.Write(newNonce[:])
		_, _ = h.Write(serverNonce[:])
		var v [20]byte
		h.Sum(v[:0])
		return v
	}()
	serverNonceNew := func() [20]byte {
		h.Reset()
		_, _ = h.Write(serverNonce[:])
		_, _ = h.Write(newNonce[:])
		var v [20]byte
		h.Sum(v[:0])
		return v
	}()
	nonceNonce := func() [20]byte {
		h.Reset()
		_, _ = h.Write(newNonce[:])
		_, _ = h.Write(newNonce[:])
		var v [20]byte
		h.Sum(v[:0])
		return v
	}()

	copy(key[:20], nonceServer[:])
	copy(key[20:], serverNonceNew[:12])

	copy(iv[:8], serverNonceNew[12:20])
	copy(iv[8:28], nonceNonce[:])
	copy(iv[28:], newNonce[:4])
	return key, iv
}

// TempKeys is the exported form of handshake key derivation.
func TempKeys(newNonce bin.Int256, serverNonce bin.Int128) (key, iv [32]byte) {
	return tempKeys(newNonce, serverNonce)
}

// EncryptExchangeAnswer encrypts a handshake answer with the temporary
// key: SHA1(answer) + answer + random padding to AES block size.
func EncryptExchangeAnswer(randSource io.Reader, answer []byte, key, iv [32]byte) ([]byte, error) {
	hash := sha1.Sum(answer) // #nosec G401: protocol-mandated

	plaintext := make([]byte, 0, 20+len(answer)+15)
	plaintext = append(plaintext, hash[:]...)
	plaintext = append(plaintext, answer...)
	if pad := len(plaintext) % aes.BlockSize; pad != 0 {
		padding := make([]byte, aes.BlockSize-pad)
		if _, err := io.ReadFull(randSource, padding); err != nil {
			return nil, errors.Wrap(err, "read padding")
		}
		plaintext = append(plaintext, padding...)
	}

	block, err := aes.NewCipher(key[:])
	if err != nil {
		return nil, errors.Wrap(err, "create cipher")
	}
	encrypted := make([]byte, len(plaintext))
	ige.EncryptBlocks(block, iv[:], encrypted, plaintext)
	return encrypted, nil
}

// DecryptExchangeAnswer decrypts a handshake answer and verifies its
// SHA1 prefix, trying each possible padding length.
func DecryptExchangeAnswer(encrypted []byte, key, iv [32]byte) ([]byte, error) {
	if len(encrypted) == 0 || len(encrypted)%aes.BlockSize != 0 {
		return nil, errors.New("invalid encrypted answer length")
	}

	block, err := aes.NewCipher(key[:])
	if err != nil {
		return nil, errors.Wrap(err, "create cipher")
	}
	plaintext := make([]byte, len(encrypted))
	ige.DecryptBlocks(block, iv[:], plaintext, encrypted)

	hash, answerWithPadding := plaintext[:20], plaintext[20:]
	for padding := 0; padding < aes.BlockSize; padding++ {
		answer := answerWithPadding[:len(answerWithPadding)-padding]
		computed := sha1.Sum(answer) // #nosec G401: protocol-mandated
		if bytes.Equal(hash, computed[:]) {
			return answer, nil
		}
	}
	return nil, ErrIntegrityCheckFailed
}

// NonceHash1 computes new_nonce_hash1 for dh_gen_ok verification:
// low 128 bits of SHA1(new_nonce + i + auth_key_aux_hash).
func NonceHash1(newNonce bin.Int256, key AuthKey) bin.Int128 {
	return nonceHash(newNonce, key, 1)
}

// NonceHash2 computes new_nonce_hash2 for dh_gen_retry verification.
func NonceHash2(newNonce bin.Int256, key AuthKey) bin.Int128 {
	return nonceHash(newNonce, key, 2)
}

// NonceHash3 computes new_nonce_hash3 for dh_gen_fail verification.
func NonceHash3(newNonce bin.Int256, key AuthKey) bin.Int128 {
	return nonceHash(newNonce, key, 3)
}

func nonceHash(newNonce bin.Int256, key AuthKey, i byte) bin.Int128 {
	h := sha1.New() // #nosec G401: protocol-mandated
	_, _ = h.Write(newNonce[:])
	_, _ = h.Write([]byte{i})
	_, _ = h.Write(key.AuxHash[:])

	var sum [20]byte
	h.Sum(sum[:0])

	var v bin.Int128
	copy(v[:], sum[4:20])
	return v
}

// ServerSalt computes the initial server salt from new_nonce and
// server_nonce: substr(new_nonce, 0, 8) XOR substr(server_nonce, 0, 8).
func ServerSalt(newNonce bin.Int256, serverNonce bin.Int128) int64 {
	var salt int64
	for i := 0; i < 8; i++ {
		salt |= int64(newNonce[i]^serverNonce[i]) << (8 * i)
	}
	return salt
}
