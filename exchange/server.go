package exchange

import (
	"context"
	"crypto/rsa"
	"io"
	"math/big"

	"github.com/go-faster/errors"
	"go.uber.org/zap"

	"github.com/gramkit/gram/bin"
	"github.com/gramkit/gram/crypto"
	"github.com/gramkit/gram/mt"
)

// ServerExchange is a server-side key exchange flow.
type ServerExchange struct {
	unencryptedWriter
	rand io.Reader
	log  *zap.Logger

	key   *rsa.PrivateKey
	prime *big.Int
	g     int
	dc    int
}

// ServerExchangeResult contains server part of key exchange result.
type ServerExchangeResult struct {
	Key        crypto.AuthKey
	ServerSalt int64
}

// WithDH sets DH parameters. Defaults to the well-known published
// 2048-bit safe prime with g = 3.
func (s ServerExchange) WithDH(p *big.Int, g int) ServerExchange {
	s.prime = p
	s.g = g
	return s
}

// Known pq sample with p = 1229739323, q = 1402015859.
var serverPQ = big.NewInt(0x17ED48941A08F981)

// defaultPrimeHex is the 2048-bit safe prime from the protocol
// documentation, used with g = 3.
const defaultPrimeHex = "C71CAEB9C6B1C9048E6C522F70F13F73980D40238E3E21C14934D037563D930F" +
	"48198A0AA7C14058229493D22530F4DBFA336F6E0AC925139543AED44CCE7C37" +
	"20FD51F69458705AC68CD4FE6B6B13ABDC9746512969328454F18FAF8C595F64" +
	"2477FE96BB2A941D5BCD1D4AC8CC49880708FA9B378E3C4F3A9060BEE67CF9A4" +
	"A4A695811051907E162753B56B0F6B410DBA74D8A84B2A14B3144E0EF1284754" +
	"FD17ED950D5965B4B9DD46582DB1178D169C6BC465B0D6FF9CA3928FEF5B9AE4" +
	"E418FC15E83EBEA0F87FA9FF5EED70050DED2849F47BF959D956850CE929851F" +
	"0D8115F635B105EE2E4E15D04B2454BF6F4FADF034B10403119CD8E3B92FCC5B"

func (s ServerExchange) dhParams() (*big.Int, int) {
	if s.prime != nil {
		return s.prime, s.g
	}
	p, ok := new(big.Int).SetString(defaultPrimeHex, 16)
	if !ok {
		panic("invalid prime constant")
	}
	return p, 3
}

// Run performs the server side of the key exchange.
func (s ServerExchange) Run(ctx context.Context) (ServerExchangeResult, error) {
	var req mt.ReqPqMultiRequest
	if err := s.readUnencrypted(ctx, &req); err != nil {
		return ServerExchangeResult{}, errors.Wrap(err, "read req_pq_multi")
	}
	s.log.Debug("Got req_pq_multi")

	serverNonce, err := bin.RandInt128(s.rand)
	if err != nil {
		return ServerExchangeResult{}, errors.Wrap(err, "generate server nonce")
	}
	if err := s.writeUnencrypted(ctx, &mt.ResPQ{
		Nonce:       req.Nonce,
		ServerNonce: serverNonce,
		Pq:          serverPQ.Bytes(),
		ServerPublicKeyFingerprints: []int64{
			crypto.RSAFingerprint(&s.key.PublicKey),
		},
	}); err != nil {
		return ServerExchangeResult{}, errors.Wrap(err, "write resPQ")
	}

	var dhParams mt.ReqDHParamsRequest
	if err := s.readUnencrypted(ctx, &dhParams); err != nil {
		return ServerExchangeResult{}, errors.Wrap(err, "read req_DH_params")
	}
	if dhParams.Nonce != req.Nonce || dhParams.ServerNonce != serverNonce {
		return ServerExchangeResult{}, ErrHandshakeMismatch
	}

	decrypted, err := crypto.DecodeRSAPad(dhParams.EncryptedData, s.key)
	if err != nil {
		return ServerExchangeResult{}, errors.Wrap(err, "decrypt inner data")
	}
	var innerData mt.PQInnerDataDC
	if err := innerData.Decode(&bin.Buffer{Buf: decrypted}); err != nil {
		return ServerExchangeResult{}, errors.Wrap(err, "decode p_q_inner_data_dc")
	}
	if innerData.Nonce != req.Nonce || innerData.ServerNonce != serverNonce {
		return ServerExchangeResult{}, ErrHandshakeMismatch
	}

	prime, g := s.dhParams()
	tmpKey, tmpIV := crypto.TempKeys(innerData.NewNonce, serverNonce)

	a, err := crypto.RandExponent(s.rand, prime)
	if err != nil {
		return ServerExchangeResult{}, errors.Wrap(err, "generate a")
	}
	gA := big.NewInt(0).Exp(big.NewInt(int64(g)), a, prime)

	serverInner := mt.ServerDHInnerData{
		Nonce:       req.Nonce,
		ServerNonce: serverNonce,
		G:           g,
		DhPrime:     prime.Bytes(),
		GA:          gA.Bytes(),
		ServerTime:  int(s.clock.Now().Unix()),
	}
	var innerBuf bin.Buffer
	if err := serverInner.Encode(&innerBuf); err != nil {
		return ServerExchangeResult{}, err
	}
	encryptedAnswer, err := crypto.EncryptExchangeAnswer(s.rand, innerBuf.Raw(), tmpKey, tmpIV)
	if err != nil {
		return ServerExchangeResult{}, errors.Wrap(err, "encrypt answer")
	}
	if err := s.writeUnencrypted(ctx, &mt.ServerDHParamsOk{
		Nonce:           req.Nonce,
		ServerNonce:     serverNonce,
		EncryptedAnswer: encryptedAnswer,
	}); err != nil {
		return ServerExchangeResult{}, errors.Wrap(err, "write server_DH_params_ok")
	}

	var clientParams mt.SetClientDHParamsRequest
	if err := s.readUnencrypted(ctx, &clientParams); err != nil {
		return ServerExchangeResult{}, errors.Wrap(err, "read set_client_DH_params")
	}
	if clientParams.Nonce != req.Nonce || clientParams.ServerNonce != serverNonce {
		return ServerExchangeResult{}, ErrHandshakeMismatch
	}
	answer, err := crypto.DecryptExchangeAnswer(clientParams.EncryptedData, tmpKey, tmpIV)
	if err != nil {
		return ServerExchangeResult{}, errors.Wrap(err, "decrypt client inner data")
	}
	var clientInner mt.ClientDHInnerData
	if err := clientInner.Decode(&bin.Buffer{Buf: answer}); err != nil {
		return ServerExchangeResult{}, errors.Wrap(err, "decode client_DH_inner_data")
	}
	if clientInner.Nonce != req.Nonce || clientInner.ServerNonce != serverNonce {
		return ServerExchangeResult{}, ErrHandshakeMismatch
	}

	var authKey crypto.Key
	gB := big.NewInt(0).SetBytes(clientInner.GB)
	big.NewInt(0).Exp(gB, a, prime).FillBytes(authKey[:])
	key := authKey.WithID()

	if err := s.writeUnencrypted(ctx, &mt.DHGenOk{
		Nonce:         req.Nonce,
		ServerNonce:   serverNonce,
		NewNonceHash1: crypto.NonceHash1(innerData.NewNonce, key),
	}); err != nil {
		return ServerExchangeResult{}, errors.Wrap(err, "write dh_gen_ok")
	}
	s.log.Debug("Key exchange completed")

	return ServerExchangeResult{
		Key:        key,
		ServerSalt: crypto.ServerSalt(innerData.NewNonce, serverNonce),
	}, nil
}
