package crypto

import (
	"crypto/aes"
	"crypto/rsa"
	"crypto/sha1" // #nosec G505: protocol-mandated
	"crypto/sha256"
	"crypto/x509"
	"encoding/binary"
	"encoding/pem"
	"io"
	"math/big"

	"github.com/go-faster/errors"
	"github.com/go-faster/xor"
	"github.com/gotd/ige"

	"github.com/gramkit/gram/bin"
)

// rsaPadDataLimit is the maximum length of data that fits RSA_PAD.
const rsaPadDataLimit = 144

// RSAKeyBits is RSA key size.
const RSAKeyBits = 2048

// ParseRSAPublicKeys parses one or more PKCS#1 or PKIX PEM-encoded
// public keys from data.
func ParseRSAPublicKeys(data []byte) ([]*rsa.PublicKey, error) {
	var keys []*rsa.PublicKey
	for {
		block, rest := pem.Decode(data)
		if block == nil {
			break
		}
		data = rest

		key, err := parseRSA(block.Bytes)
		if err != nil {
			return nil, errors.Wrap(err, "parse key")
		}
		keys = append(keys, key)
	}
	if len(keys) == 0 {
		return nil, errors.New("no keys found")
	}
	return keys, nil
}

func parseRSA(der []byte) (*rsa.PublicKey, error) {
	if key, err := x509.ParsePKCS1PublicKey(der); err == nil {
		return key, nil
	}
	parsed, err := x509.ParsePKIXPublicKey(der)
	if err != nil {
		return nil, err
	}
	key, ok := parsed.(*rsa.PublicKey)
	if !ok {
		return nil, errors.New("not an RSA public key")
	}
	return key, nil
}

// RSAFingerprint computes the 64-bit fingerprint of an RSA public key:
// low 64 bits of SHA1 over the TL serialization of n and e as strings.
func RSAFingerprint(key *rsa.PublicKey) int64 {
	b := bin.Buffer{}
	b.PutBytes(key.N.Bytes())
	b.PutBytes(big.NewInt(int64(key.E)).Bytes())

	raw := sha1.Sum(b.Buf) // #nosec G401: protocol-mandated
	return int64(binary.LittleEndian.Uint64(raw[12:]))
}

// FindRSAKey returns the first key matching one of fingerprints, along
// with that fingerprint.
func FindRSAKey(keys []*rsa.PublicKey, fingerprints []int64) (*rsa.PublicKey, int64, bool) {
	for _, fp := range fingerprints {
		for _, key := range keys {
			if RSAFingerprint(key) == fp {
				return key, fp, true
			}
		}
	}
	return nil, 0, false
}

// rsaEncryptRaw computes x^e mod n without any padding scheme.
func rsaEncryptRaw(data []byte, key *rsa.PublicKey) []byte {
	x := new(big.Int).SetBytes(data)
	x.Exp(x, big.NewInt(int64(key.E)), key.N)

	res := make([]byte, 256)
	x.FillBytes(res)
	return res
}

// RSAPad implements the RSA_PAD(data, server_public_key) construction
// of the MTProto 2.0 handshake: data is padded to 192 bytes, reversed,
// authenticated with SHA256 under a throwaway AES key, encrypted with
// AES-IGE and finally raw-RSA encrypted. Retries with a fresh
// throwaway key until the blob interpreted as an integer is below the
// key modulus.
func RSAPad(data []byte, key *rsa.PublicKey, randSource io.Reader) ([]byte, error) {
	if len(data) > rsaPadDataLimit {
		return nil, errors.Errorf("data too long: %d > %d", len(data), rsaPadDataLimit)
	}

	dataWithPadding := make([]byte, 192)
	copy(dataWithPadding, data)
	if _, err := io.ReadFull(randSource, dataWithPadding[len(data):]); err != nil {
		return nil, errors.Wrap(err, "read padding")
	}

	dataPadReversed := make([]byte, 192)
	for i, v := range dataWithPadding {
		dataPadReversed[191-i] = v
	}

	for {
		tempKey := make([]byte, 32)
		if _, err := io.ReadFull(randSource, tempKey); err != nil {
			return nil, errors.Wrap(err, "read temp key")
		}

		h := sha256.New()
		_, _ = h.Write(tempKey)
		_, _ = h.Write(dataWithPadding)

		plaintext := make([]byte, 0, 224)
		plaintext = append(plaintext, dataPadReversed...)
		plaintext = h.Sum(plaintext)

		block, err := aes.NewCipher(tempKey)
		if err != nil {
			return nil, errors.Wrap(err, "create cipher")
		}
		aesEncrypted := make([]byte, len(plaintext))
		var zeroIV [32]byte
		ige.EncryptBlocks(block, zeroIV[:], aesEncrypted, plaintext)

		hashAES := sha256.Sum256(aesEncrypted)
		tempKeyXor := make([]byte, 32)
		xor.Bytes(tempKeyXor, tempKey, hashAES[:])

		keyAESEncrypted := make([]byte, 0, 256)
		keyAESEncrypted = append(keyAESEncrypted, tempKeyXor...)
		keyAESEncrypted = append(keyAESEncrypted, aesEncrypted...)

		if new(big.Int).SetBytes(keyAESEncrypted).Cmp(key.N) >= 0 {
			continue
		}
		return rsaEncryptRaw(keyAESEncrypted, key), nil
	}
}
