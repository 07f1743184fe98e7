package crypto

import (
	"crypto/aes"
	"crypto/rsa"
	"crypto/sha256"
	"crypto/subtle"
	"math/big"

	"github.com/go-faster/errors"
	"github.com/go-faster/xor"
	"github.com/gotd/ige"
)

// rsaDecryptRaw computes x^d mod n without any padding scheme.
func rsaDecryptRaw(data []byte, key *rsa.PrivateKey) []byte {
	c := new(big.Int).SetBytes(data)
	c.Exp(c, key.D, key.N)

	res := make([]byte, 256)
	c.FillBytes(res)
	return res
}

// DecodeRSAPad is the inverse of RSAPad. Returns 192 bytes of data
// with random padding still attached, the caller decodes a TL object
// from the prefix.
func DecodeRSAPad(data []byte, key *rsa.PrivateKey) ([]byte, error) {
	if len(data) != 256 {
		return nil, errors.Errorf("invalid data length %d", len(data))
	}

	decrypted := rsaDecryptRaw(data, key)
	tempKeyXor := decrypted[:32]
	aesEncrypted := decrypted[32:]

	hashAES := sha256.Sum256(aesEncrypted)
	tempKey := make([]byte, 32)
	xor.Bytes(tempKey, tempKeyXor, hashAES[:])

	block, err := aes.NewCipher(tempKey)
	if err != nil {
		return nil, errors.Wrap(err, "create cipher")
	}
	plaintext := make([]byte, len(aesEncrypted))
	var zeroIV [32]byte
	ige.DecryptBlocks(block, zeroIV[:], plaintext, aesEncrypted)

	dataPadReversed := plaintext[:192]
	hash := plaintext[192:224]

	dataWithPadding := make([]byte, 192)
	for i, v := range dataPadReversed {
		dataWithPadding[191-i] = v
	}

	h := sha256.New()
	_, _ = h.Write(tempKey)
	_, _ = h.Write(dataWithPadding)
	if subtle.ConstantTimeCompare(hash, h.Sum(nil)) != 1 {
		return nil, ErrIntegrityCheckFailed
	}
	return dataWithPadding, nil
}
