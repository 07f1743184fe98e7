package crypto

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"math/big"
	mathrand "math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func testRSAKey(t *testing.T) *rsa.PrivateKey {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, RSAKeyBits)
	require.NoError(t, err)
	return key
}

func TestParseRSAPublicKeys(t *testing.T) {
	key := testRSAKey(t)

	block := pem.EncodeToMemory(&pem.Block{
		Type:  "RSA PUBLIC KEY",
		Bytes: x509.MarshalPKCS1PublicKey(&key.PublicKey),
	})
	keys, err := ParseRSAPublicKeys(block)
	require.NoError(t, err)
	require.Len(t, keys, 1)
	require.Equal(t, key.N, keys[0].N)

	_, err = ParseRSAPublicKeys([]byte("not pem"))
	require.Error(t, err)
}

func TestRSAFingerprint(t *testing.T) {
	key := testRSAKey(t)
	fp := RSAFingerprint(&key.PublicKey)
	require.NotZero(t, fp)

	found, gotFP, ok := FindRSAKey([]*rsa.PublicKey{&key.PublicKey}, []int64{123, fp})
	require.True(t, ok)
	require.Equal(t, fp, gotFP)
	require.Equal(t, key.N, found.N)

	_, _, ok = FindRSAKey([]*rsa.PublicKey{&key.PublicKey}, []int64{123})
	require.False(t, ok)
}

func TestRSAPad(t *testing.T) {
	key := testRSAKey(t)
	source := mathrand.New(mathrand.NewSource(7))

	data := make([]byte, rsaPadDataLimit)
	_, err := source.Read(data)
	require.NoError(t, err)

	encrypted, err := RSAPad(data, &key.PublicKey, source)
	require.NoError(t, err)
	require.Len(t, encrypted, 256)
	require.True(t, new(big.Int).SetBytes(encrypted).Cmp(key.N) < 0)

	_, err = RSAPad(make([]byte, rsaPadDataLimit+1), &key.PublicKey, source)
	require.Error(t, err)
}

func TestDecodeRSAPad(t *testing.T) {
	key := testRSAKey(t)
	source := mathrand.New(mathrand.NewSource(42))

	data := []byte("inner data payload")
	encrypted, err := RSAPad(data, &key.PublicKey, source)
	require.NoError(t, err)

	decrypted, err := DecodeRSAPad(encrypted, key)
	require.NoError(t, err)
	require.Equal(t, data, decrypted[:len(data)])

	// Flipping a ciphertext bit must break the integrity check.
	encrypted[100] ^= 0x01
	_, err = DecodeRSAPad(encrypted, key)
	require.Error(t, err)
}
