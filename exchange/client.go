package exchange

import (
	"context"
	"crypto/rsa"
	"encoding/binary"
	"io"
	"math/big"

	"github.com/go-faster/errors"
	"go.uber.org/zap"

	"github.com/gramkit/gram/bin"
	"github.com/gramkit/gram/crypto"
	"github.com/gramkit/gram/mt"
)

// ClientExchange is a client-side key exchange flow.
type ClientExchange struct {
	unencryptedWriter
	rand io.Reader
	log  *zap.Logger

	keys []*rsa.PublicKey
	dc   int
}

// ClientExchangeResult contains client part of key exchange result.
type ClientExchangeResult struct {
	AuthKey    crypto.AuthKey
	SessionID  int64
	ServerSalt int64
}

// ErrKeyFingerprintNotFound means that server returned no known
// public key fingerprints.
var ErrKeyFingerprintNotFound = errors.New("no known public key fingerprint")

// ErrKeyExchangeFailed means that the server rejected the negotiated
// key with dh_gen_fail.
var ErrKeyExchangeFailed = errors.New("key exchange failed")

// dhAttempts limits dh_gen_retry rounds.
const dhAttempts = 5

// Run performs the key exchange.
func (c ClientExchange) Run(ctx context.Context) (ClientExchangeResult, error) {
	// 1. Request pq.
	nonce, err := bin.RandInt128(c.rand)
	if err != nil {
		return ClientExchangeResult{}, errors.Wrap(err, "generate nonce")
	}
	if err := c.writeUnencrypted(ctx, &mt.ReqPqMultiRequest{Nonce: nonce}); err != nil {
		return ClientExchangeResult{}, errors.Wrap(err, "write req_pq_multi")
	}
	c.log.Debug("Sent req_pq_multi")

	var res mt.ResPQ
	if err := c.readUnencrypted(ctx, &res); err != nil {
		return ClientExchangeResult{}, errors.Wrap(err, "read resPQ")
	}
	if res.Nonce != nonce {
		return ClientExchangeResult{}, ErrHandshakeMismatch
	}

	// 2. Decompose pq and prepare inner data.
	pq := big.NewInt(0).SetBytes(res.Pq)
	p, q, err := crypto.DecomposePQ(pq, c.rand)
	if err != nil {
		return ClientExchangeResult{}, errors.Wrap(err, "decompose pq")
	}
	c.log.Debug("Decomposed pq")

	newNonce, err := bin.RandInt256(c.rand)
	if err != nil {
		return ClientExchangeResult{}, errors.Wrap(err, "generate new nonce")
	}
	innerData := mt.PQInnerDataDC{
		Pq:          res.Pq,
		P:           p.Bytes(),
		Q:           q.Bytes(),
		Nonce:       nonce,
		ServerNonce: res.ServerNonce,
		NewNonce:    newNonce,
		DC:          c.dc,
	}
	var innerBuf bin.Buffer
	if err := innerData.Encode(&innerBuf); err != nil {
		return ClientExchangeResult{}, err
	}

	// 3. Encrypt inner data with a known server public key.
	key, fingerprint, ok := crypto.FindRSAKey(c.keys, res.ServerPublicKeyFingerprints)
	if !ok {
		return ClientExchangeResult{}, ErrKeyFingerprintNotFound
	}
	encryptedData, err := crypto.RSAPad(innerBuf.Raw(), key, c.rand)
	if err != nil {
		return ClientExchangeResult{}, errors.Wrap(err, "encrypt inner data")
	}

	// 4. Request DH parameters.
	if err := c.writeUnencrypted(ctx, &mt.ReqDHParamsRequest{
		Nonce:                nonce,
		ServerNonce:          res.ServerNonce,
		P:                    p.Bytes(),
		Q:                    q.Bytes(),
		PublicKeyFingerprint: fingerprint,
		EncryptedData:        encryptedData,
	}); err != nil {
		return ClientExchangeResult{}, errors.Wrap(err, "write req_DH_params")
	}

	var b bin.Buffer
	if err := c.readUnencryptedPayload(ctx, &b); err != nil {
		return ClientExchangeResult{}, err
	}
	dhParams, err := mt.DecodeServerDHParams(&b)
	if err != nil {
		return ClientExchangeResult{}, errors.Wrap(err, "decode Server_DH_Params")
	}
	dh, ok := dhParams.(*mt.ServerDHParamsOk)
	if !ok {
		return ClientExchangeResult{}, errors.Errorf("unexpected Server_DH_Params %T", dhParams)
	}
	if dh.Nonce != nonce || dh.ServerNonce != res.ServerNonce {
		return ClientExchangeResult{}, ErrHandshakeMismatch
	}

	// 5. Decrypt and verify server DH inner data.
	tmpKey, tmpIV := crypto.TempKeys(newNonce, res.ServerNonce)
	answer, err := crypto.DecryptExchangeAnswer(dh.EncryptedAnswer, tmpKey, tmpIV)
	if err != nil {
		return ClientExchangeResult{}, errors.Wrap(err, "decrypt answer")
	}
	var innerDH mt.ServerDHInnerData
	if err := innerDH.Decode(&bin.Buffer{Buf: answer}); err != nil {
		return ClientExchangeResult{}, errors.Wrap(err, "decode server_DH_inner_data")
	}
	if innerDH.Nonce != nonce || innerDH.ServerNonce != res.ServerNonce {
		return ClientExchangeResult{}, ErrHandshakeMismatch
	}

	dhPrime := big.NewInt(0).SetBytes(innerDH.DhPrime)
	gA := big.NewInt(0).SetBytes(innerDH.GA)
	g := big.NewInt(int64(innerDH.G))
	if err := crypto.CheckDHPrime(dhPrime, innerDH.G); err != nil {
		return ClientExchangeResult{}, errors.Wrap(err, "check dh_prime")
	}

	// 6. Generate our half of the key, retrying on dh_gen_retry.
	var retryID int64
	for attempt := 0; attempt < dhAttempts; attempt++ {
		result, retry, err := c.setClientParams(ctx, setParamsInput{
			nonce:       nonce,
			serverNonce: res.ServerNonce,
			newNonce:    newNonce,
			dhPrime:     dhPrime,
			g:           g,
			gA:          gA,
			tmpKey:      tmpKey,
			tmpIV:       tmpIV,
			retryID:     retryID,
		})
		if err != nil {
			return ClientExchangeResult{}, err
		}
		if retry != 0 {
			c.log.Debug("Got dh_gen_retry", zap.Int("attempt", attempt))
			retryID = retry
			continue
		}
		return result, nil
	}
	return ClientExchangeResult{}, errors.Wrap(ErrKeyExchangeFailed, "retry limit reached")
}

type setParamsInput struct {
	nonce       bin.Int128
	serverNonce bin.Int128
	newNonce    bin.Int256
	dhPrime     *big.Int
	g           *big.Int
	gA          *big.Int
	tmpKey      [32]byte
	tmpIV       [32]byte
	retryID     int64
}

// setClientParams performs a single set_client_DH_params round.
// A non-zero retry id in the result means the server asked for a new
// key half.
func (c ClientExchange) setClientParams(ctx context.Context, in setParamsInput) (ClientExchangeResult, int64, error) {
	bRand, err := crypto.RandExponent(c.rand, in.dhPrime)
	if err != nil {
		return ClientExchangeResult{}, 0, errors.Wrap(err, "generate b")
	}
	gB := big.NewInt(0).Exp(in.g, bRand, in.dhPrime)
	if err := crypto.CheckDHParams(in.dhPrime, in.g, in.gA, gB); err != nil {
		return ClientExchangeResult{}, 0, errors.Wrap(err, "check DH params")
	}

	clientInner := mt.ClientDHInnerData{
		Nonce:       in.nonce,
		ServerNonce: in.serverNonce,
		RetryID:     in.retryID,
		GB:          gB.Bytes(),
	}
	var innerBuf bin.Buffer
	if err := clientInner.Encode(&innerBuf); err != nil {
		return ClientExchangeResult{}, 0, err
	}
	encrypted, err := crypto.EncryptExchangeAnswer(c.rand, innerBuf.Raw(), in.tmpKey, in.tmpIV)
	if err != nil {
		return ClientExchangeResult{}, 0, errors.Wrap(err, "encrypt client inner data")
	}

	if err := c.writeUnencrypted(ctx, &mt.SetClientDHParamsRequest{
		Nonce:         in.nonce,
		ServerNonce:   in.serverNonce,
		EncryptedData: encrypted,
	}); err != nil {
		return ClientExchangeResult{}, 0, errors.Wrap(err, "write set_client_DH_params")
	}

	var authKey crypto.Key
	big.NewInt(0).Exp(in.gA, bRand, in.dhPrime).FillBytes(authKey[:])
	key := authKey.WithID()

	var b bin.Buffer
	if err := c.readUnencryptedPayload(ctx, &b); err != nil {
		return ClientExchangeResult{}, 0, err
	}
	answer, err := mt.DecodeSetClientDHParamsAnswer(&b)
	if err != nil {
		return ClientExchangeResult{}, 0, errors.Wrap(err, "decode Set_client_DH_params_answer")
	}

	switch v := answer.(type) {
	case *mt.DHGenOk:
		if v.Nonce != in.nonce || v.ServerNonce != in.serverNonce {
			return ClientExchangeResult{}, 0, ErrHandshakeMismatch
		}
		if v.NewNonceHash1 != crypto.NonceHash1(in.newNonce, key) {
			return ClientExchangeResult{}, 0, ErrHandshakeMismatch
		}

		sessionID, err := crypto.RandInt64(c.rand)
		if err != nil {
			return ClientExchangeResult{}, 0, errors.Wrap(err, "generate session id")
		}
		return ClientExchangeResult{
			AuthKey:    key,
			SessionID:  sessionID,
			ServerSalt: crypto.ServerSalt(in.newNonce, in.serverNonce),
		}, 0, nil
	case *mt.DHGenRetry:
		if v.Nonce != in.nonce || v.ServerNonce != in.serverNonce {
			return ClientExchangeResult{}, 0, ErrHandshakeMismatch
		}
		if v.NewNonceHash2 != crypto.NonceHash2(in.newNonce, key) {
			return ClientExchangeResult{}, 0, ErrHandshakeMismatch
		}
		return ClientExchangeResult{}, int64(binary.LittleEndian.Uint64(key.AuxHash[:])), nil
	case *mt.DHGenFail:
		if v.Nonce != in.nonce || v.ServerNonce != in.serverNonce {
			return ClientExchangeResult{}, 0, ErrHandshakeMismatch
		}
		if v.NewNonceHash3 != crypto.NonceHash3(in.newNonce, key) {
			return ClientExchangeResult{}, 0, ErrHandshakeMismatch
		}
		return ClientExchangeResult{}, 0, ErrKeyExchangeFailed
	default:
		return ClientExchangeResult{}, 0, errors.Errorf("unexpected answer %T", answer)
	}
}
