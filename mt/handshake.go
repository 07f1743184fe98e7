package mt

import (
	"github.com/go-faster/errors"

	"github.com/gramkit/gram/bin"
)

// ReqPqMultiRequest represents TL type `req_pq_multi#be7e8ef1`.
//
// req_pq_multi#be7e8ef1 nonce:int128 = ResPQ;
type ReqPqMultiRequest struct {
	Nonce bin.Int128
}

// ReqPqMultiRequestTypeID is TL type id of ReqPqMultiRequest.
const ReqPqMultiRequestTypeID = 0xbe7e8ef1

// Encode implements bin.Encoder.
func (r *ReqPqMultiRequest) Encode(b *bin.Buffer) error {
	b.PutID(ReqPqMultiRequestTypeID)
	b.PutInt128(r.Nonce)
	return nil
}

// Decode implements bin.Decoder.
func (r *ReqPqMultiRequest) Decode(b *bin.Buffer) error {
	if err := b.ConsumeID(ReqPqMultiRequestTypeID); err != nil {
		return errors.Wrap(err, "req_pq_multi")
	}
	v, err := b.Int128()
	if err != nil {
		return errors.Wrap(err, "nonce")
	}
	r.Nonce = v
	return nil
}

// ResPQ represents TL type `resPQ#05162463`.
//
// resPQ#05162463 nonce:int128 server_nonce:int128 pq:bytes
// server_public_key_fingerprints:Vector<long> = ResPQ;
type ResPQ struct {
	Nonce                       bin.Int128
	ServerNonce                 bin.Int128
	Pq                          []byte
	ServerPublicKeyFingerprints []int64
}

// ResPQTypeID is TL type id of ResPQ.
const ResPQTypeID = 0x05162463

// Encode implements bin.Encoder.
func (r *ResPQ) Encode(b *bin.Buffer) error {
	b.PutID(ResPQTypeID)
	b.PutInt128(r.Nonce)
	b.PutInt128(r.ServerNonce)
	b.PutBytes(r.Pq)
	b.PutVectorHeader(len(r.ServerPublicKeyFingerprints))
	for _, v := range r.ServerPublicKeyFingerprints {
		b.PutLong(v)
	}
	return nil
}

// Decode implements bin.Decoder.
func (r *ResPQ) Decode(b *bin.Buffer) error {
	if err := b.ConsumeID(ResPQTypeID); err != nil {
		return errors.Wrap(err, "resPQ")
	}
	{
		v, err := b.Int128()
		if err != nil {
			return errors.Wrap(err, "nonce")
		}
		r.Nonce = v
	}
	{
		v, err := b.Int128()
		if err != nil {
			return errors.Wrap(err, "server_nonce")
		}
		r.ServerNonce = v
	}
	{
		v, err := b.Bytes()
		if err != nil {
			return errors.Wrap(err, "pq")
		}
		r.Pq = v
	}
	{
		n, err := b.VectorHeader()
		if err != nil {
			return errors.Wrap(err, "fingerprints")
		}
		r.ServerPublicKeyFingerprints = r.ServerPublicKeyFingerprints[:0]
		for i := 0; i < n; i++ {
			v, err := b.Long()
			if err != nil {
				return errors.Wrap(err, "fingerprint")
			}
			r.ServerPublicKeyFingerprints = append(r.ServerPublicKeyFingerprints, v)
		}
	}
	return nil
}

// PQInnerDataDC represents TL type `p_q_inner_data_dc#a9f55f95`.
//
// p_q_inner_data_dc#a9f55f95 pq:bytes p:bytes q:bytes nonce:int128
// server_nonce:int128 new_nonce:int256 dc:int = P_Q_inner_data;
type PQInnerDataDC struct {
	Pq          []byte
	P           []byte
	Q           []byte
	Nonce       bin.Int128
	ServerNonce bin.Int128
	NewNonce    bin.Int256
	DC          int
}

// PQInnerDataDCTypeID is TL type id of PQInnerDataDC.
const PQInnerDataDCTypeID = 0xa9f55f95

// Encode implements bin.Encoder.
func (p *PQInnerDataDC) Encode(b *bin.Buffer) error {
	b.PutID(PQInnerDataDCTypeID)
	b.PutBytes(p.Pq)
	b.PutBytes(p.P)
	b.PutBytes(p.Q)
	b.PutInt128(p.Nonce)
	b.PutInt128(p.ServerNonce)
	b.PutInt256(p.NewNonce)
	b.PutInt(p.DC)
	return nil
}

// Decode implements bin.Decoder.
func (p *PQInnerDataDC) Decode(b *bin.Buffer) error {
	if err := b.ConsumeID(PQInnerDataDCTypeID); err != nil {
		return errors.Wrap(err, "p_q_inner_data_dc")
	}
	{
		v, err := b.Bytes()
		if err != nil {
			return errors.Wrap(err, "pq")
		}
		p.Pq = v
	}
	{
		v, err := b.Bytes()
		if err != nil {
			return errors.Wrap(err, "p")
		}
		p.P = v
	}
	{
		v, err := b.Bytes()
		if err != nil {
			return errors.Wrap(err, "q")
		}
		p.Q = v
	}
	{
		v, err := b.Int128()
		if err != nil {
			return errors.Wrap(err, "nonce")
		}
		p.Nonce = v
	}
	{
		v, err := b.Int128()
		if err != nil {
			return errors.Wrap(err, "server_nonce")
		}
		p.ServerNonce = v
	}
	{
		v, err := b.Int256()
		if err != nil {
			return errors.Wrap(err, "new_nonce")
		}
		p.NewNonce = v
	}
	{
		v, err := b.Int()
		if err != nil {
			return errors.Wrap(err, "dc")
		}
		p.DC = v
	}
	return nil
}

// ReqDHParamsRequest represents TL type `req_DH_params#d712e4be`.
//
// req_DH_params#d712e4be nonce:int128 server_nonce:int128 p:bytes q:bytes
// public_key_fingerprint:long encrypted_data:bytes = Server_DH_Params;
type ReqDHParamsRequest struct {
	Nonce                bin.Int128
	ServerNonce          bin.Int128
	P                    []byte
	Q                    []byte
	PublicKeyFingerprint int64
	EncryptedData        []byte
}

// ReqDHParamsRequestTypeID is TL type id of ReqDHParamsRequest.
const ReqDHParamsRequestTypeID = 0xd712e4be

// Encode implements bin.Encoder.
func (r *ReqDHParamsRequest) Encode(b *bin.Buffer) error {
	b.PutID(ReqDHParamsRequestTypeID)
	b.PutInt128(r.Nonce)
	b.PutInt128(r.ServerNonce)
	b.PutBytes(r.P)
	b.PutBytes(r.Q)
	b.PutLong(r.PublicKeyFingerprint)
	b.PutBytes(r.EncryptedData)
	return nil
}

// Decode implements bin.Decoder.
func (r *ReqDHParamsRequest) Decode(b *bin.Buffer) error {
	if err := b.ConsumeID(ReqDHParamsRequestTypeID); err != nil {
		return errors.Wrap(err, "req_DH_params")
	}
	{
		v, err := b.Int128()
		if err != nil {
			return errors.Wrap(err, "nonce")
		}
		r.Nonce = v
	}
	{
		v, err := b.Int128()
		if err != nil {
			return errors.Wrap(err, "server_nonce")
		}
		r.ServerNonce = v
	}
	{
		v, err := b.Bytes()
		if err != nil {
			return errors.Wrap(err, "p")
		}
		r.P = v
	}
	{
		v, err := b.Bytes()
		if err != nil {
			return errors.Wrap(err, "q")
		}
		r.Q = v
	}
	{
		v, err := b.Long()
		if err != nil {
			return errors.Wrap(err, "public_key_fingerprint")
		}
		r.PublicKeyFingerprint = v
	}
	{
		v, err := b.Bytes()
		if err != nil {
			return errors.Wrap(err, "encrypted_data")
		}
		r.EncryptedData = v
	}
	return nil
}

// ServerDHParamsClass is a Server_DH_Params union.
type ServerDHParamsClass interface {
	bin.Object
	typeServerDHParams()
}

// ServerDHParamsOk represents TL type `server_DH_params_ok#d0e8075c`.
type ServerDHParamsOk struct {
	Nonce           bin.Int128
	ServerNonce     bin.Int128
	EncryptedAnswer []byte
}

// ServerDHParamsOkTypeID is TL type id of ServerDHParamsOk.
const ServerDHParamsOkTypeID = 0xd0e8075c

func (*ServerDHParamsOk) typeServerDHParams() {}

// Encode implements bin.Encoder.
func (s *ServerDHParamsOk) Encode(b *bin.Buffer) error {
	b.PutID(ServerDHParamsOkTypeID)
	b.PutInt128(s.Nonce)
	b.PutInt128(s.ServerNonce)
	b.PutBytes(s.EncryptedAnswer)
	return nil
}

// Decode implements bin.Decoder.
func (s *ServerDHParamsOk) Decode(b *bin.Buffer) error {
	if err := b.ConsumeID(ServerDHParamsOkTypeID); err != nil {
		return errors.Wrap(err, "server_DH_params_ok")
	}
	{
		v, err := b.Int128()
		if err != nil {
			return errors.Wrap(err, "nonce")
		}
		s.Nonce = v
	}
	{
		v, err := b.Int128()
		if err != nil {
			return errors.Wrap(err, "server_nonce")
		}
		s.ServerNonce = v
	}
	{
		v, err := b.Bytes()
		if err != nil {
			return errors.Wrap(err, "encrypted_answer")
		}
		s.EncryptedAnswer = v
	}
	return nil
}

// ServerDHParamsFail represents TL type `server_DH_params_fail#79cb045d`.
type ServerDHParamsFail struct {
	Nonce        bin.Int128
	ServerNonce  bin.Int128
	NewNonceHash bin.Int128
}

// ServerDHParamsFailTypeID is TL type id of ServerDHParamsFail.
const ServerDHParamsFailTypeID = 0x79cb045d

func (*ServerDHParamsFail) typeServerDHParams() {}

// Encode implements bin.Encoder.
func (s *ServerDHParamsFail) Encode(b *bin.Buffer) error {
	b.PutID(ServerDHParamsFailTypeID)
	b.PutInt128(s.Nonce)
	b.PutInt128(s.ServerNonce)
	b.PutInt128(s.NewNonceHash)
	return nil
}

// Decode implements bin.Decoder.
func (s *ServerDHParamsFail) Decode(b *bin.Buffer) error {
	if err := b.ConsumeID(ServerDHParamsFailTypeID); err != nil {
		return errors.Wrap(err, "server_DH_params_fail")
	}
	{
		v, err := b.Int128()
		if err != nil {
			return errors.Wrap(err, "nonce")
		}
		s.Nonce = v
	}
	{
		v, err := b.Int128()
		if err != nil {
			return errors.Wrap(err, "server_nonce")
		}
		s.ServerNonce = v
	}
	{
		v, err := b.Int128()
		if err != nil {
			return errors.Wrap(err, "new_nonce_hash")
		}
		s.NewNonceHash = v
	}
	return nil
}

// DecodeServerDHParams decodes Server_DH_Params union.
func DecodeServerDHParams(b *bin.Buffer) (ServerDHParamsClass, error) {
	id, err := b.PeekID()
	if err != nil {
		return nil, err
	}
	switch id {
	case ServerDHParamsOkTypeID:
		v := ServerDHParamsOk{}
		if err := v.Decode(b); err != nil {
			return nil, err
		}
		return &v, nil
	case ServerDHParamsFailTypeID:
		v := ServerDHParamsFail{}
		if err := v.Decode(b); err != nil {
			return nil, err
		}
		return &v, nil
	default:
		return nil, bin.NewUnexpectedID(id)
	}
}

// ServerDHInnerData represents TL type `server_DH_inner_data#b5890dba`.
//
// server_DH_inner_data#b5890dba nonce:int128 server_nonce:int128 g:int
// dh_prime:bytes g_a:bytes server_time:int = Server_DH_inner_data;
type ServerDHInnerData struct {
	Nonce       bin.Int128
	ServerNonce bin.Int128
	G           int
	DhPrime     []byte
	GA          []byte
	ServerTime  int
}

// ServerDHInnerDataTypeID is TL type id of ServerDHInnerData.
const ServerDHInnerDataTypeID = 0xb5890dba

// Encode implements bin.Encoder.
func (s *ServerDHInnerData) Encode(b *bin.Buffer) error {
	b.PutID(ServerDHInnerDataTypeID)
	b.PutInt128(s.Nonce)
	b.PutInt128(s.ServerNonce)
	b.PutInt(s.G)
	b.PutBytes(s.DhPrime)
	b.PutBytes(s.GA)
	b.PutInt(s.ServerTime)
	return nil
}

// Decode implements bin.Decoder.
func (s *ServerDHInnerData) Decode(b *bin.Buffer) error {
	if err := b.ConsumeID(ServerDHInnerDataTypeID); err != nil {
		return errors.Wrap(err, "server_DH_inner_data")
	}
	{
		v, err := b.Int128()
		if err != nil {
			return errors.Wrap(err, "nonce")
		}
		s.Nonce = v
	}
	{
		v, err := b.Int128()
		if err != nil {
			return errors.Wrap(err, "server_nonce")
		}
		s.ServerNonce = v
	}
	{
		v, err := b.Int()
		if err != nil {
			return errors.Wrap(err, "g")
		}
		s.G = v
	}
	{
		v, err := b.Bytes()
		if err != nil {
			return errors.Wrap(err, "dh_prime")
		}
		s.DhPrime = v
	}
	{
		v, err := b.Bytes()
		if err != nil {
			return errors.Wrap(err, "g_a")
		}
		s.GA = v
	}
	{
		v, err := b.Int()
		if err != nil {
			return errors.Wrap(err, "server_time")
		}
		s.ServerTime = v
	}
	return nil
}

// ClientDHInnerData represents TL type `client_DH_inner_data#6643b654`.
//
// client_DH_inner_data#6643b654 nonce:int128 server_nonce:int128
// retry_id:long g_b:bytes = Client_DH_Inner_Data;
type ClientDHInnerData struct {
	Nonce       bin.Int128
	ServerNonce bin.Int128
	RetryID     int64
	GB          []byte
}

// ClientDHInnerDataTypeID is TL type id of ClientDHInnerData.
const ClientDHInnerDataTypeID = 0x6643b654

// Encode implements bin.Encoder.
func (c *ClientDHInnerData) Encode(b *bin.Buffer) error {
	b.PutID(ClientDHInnerDataTypeID)
	b.PutInt128(c.Nonce)
	b.PutInt128(c.ServerNonce)
	b.PutLong(c.RetryID)
	b.PutBytes(c.GB)
	return nil
}

// Decode implements bin.Decoder.
func (c *ClientDHInnerData) Decode(b *bin.Buffer) error {
	if err := b.ConsumeID(ClientDHInnerDataTypeID); err != nil {
		return errors.Wrap(err, "client_DH_inner_data")
	}
	{
		v, err := b.Int128()
		if err != nil {
			return errors.Wrap(err, "nonce")
		}
		c.Nonce = v
	}
	{
		v, err := b.Int128()
		if err != nil {
			return errors.Wrap(err, "server_nonce")
		}
		c.ServerNonce = v
	}
	{
		v, err := b.Long()
		if err != nil {
			return errors.Wrap(err, "retry_id")
		}
		c.RetryID = v
	}
	{
		v, err := b.Bytes()
		if err != nil {
			return errors.Wrap(err, "g_b")
		}
		c.GB = v
	}
	return nil
}

// SetClientDHParamsRequest represents TL type `set_client_DH_params#f5045f1f`.
type SetClientDHParamsRequest struct {
	Nonce         bin.Int128
	ServerNonce   bin.Int128
	EncryptedData []byte
}

// SetClientDHParamsRequestTypeID is TL type id of SetClientDHParamsRequest.
const SetClientDHParamsRequestTypeID = 0xf5045f1f

// Encode implements bin.Encoder.
func (s *SetClientDHParamsRequest) Encode(b *bin.Buffer) error {
	b.PutID(SetClientDHParamsRequestTypeID)
	b.PutInt128(s.Nonce)
	b.PutInt128(s.ServerNonce)
	b.PutBytes(s.EncryptedData)
	return nil
}

// Decode implements bin.Decoder.
func (s *SetClientDHParamsRequest) Decode(b *bin.Buffer) error {
	if err := b.ConsumeID(SetClientDHParamsRequestTypeID); err != nil {
		return errors.Wrap(err, "set_client_DH_params")
	}
	{
		v, err := b.Int128()
		if err != nil {
			return errors.Wrap(err, "nonce")
		}
		s.Nonce = v
	}
	{
		v, err := b.Int128()
		if err != nil {
			return errors.Wrap(err, "server_nonce")
		}
		s.ServerNonce = v
	}
	{
		v, err := b.Bytes()
		if err != nil {
			return errors.Wrap(err, "encrypted_data")
		}
		s.EncryptedData = v
	}
	return nil
}

// SetClientDHParamsAnswerClass is a Set_client_DH_params_answer union.
type SetClientDHParamsAnswerClass interface {
	bin.Object
	typeSetClientDHParamsAnswer()
}

// DHGenOk represents TL type `dh_gen_ok#3bcbf734`.
type DHGenOk struct {
	Nonce         bin.Int128
	ServerNonce   bin.Int128
	NewNonceHash1 bin.Int128
}

// DHGenOkTypeID is TL type id of DHGenOk.
const DHGenOkTypeID = 0x3bcbf734

func (*DHGenOk) typeSetClientDHParamsAnswer() {}

// Encode implements bin.Encoder.
func (d *DHGenOk) Encode(b *bin.Buffer) error {
	b.PutID(DHGenOkTypeID)
	b.PutInt128(d.Nonce)
	b.PutInt128(d.ServerNonce)
	b.PutInt128(d.NewNonceHash1)
	return nil
}

// Decode implements bin.Decoder.
func (d *DHGenOk) Decode(b *bin.Buffer) error {
	if err := b.ConsumeID(DHGenOkTypeID); err != nil {
		return errors.Wrap(err, "dh_gen_ok")
	}
	return decodeDHGen(b, &d.Nonce, &d.ServerNonce, &d.NewNonceHash1)
}

// DHGenRetry represents TL type `dh_gen_retry#46dc1fb9`.
type DHGenRetry struct {
	Nonce         bin.Int128
	ServerNonce   bin.Int128
	NewNonceHash2 bin.Int128
}

// DHGenRetryTypeID is TL type id of DHGenRetry.
const DHGenRetryTypeID = 0x46dc1fb9

func (*DHGenRetry) typeSetClientDHParamsAnswer() {}

// Encode implements bin.Encoder.
func (d *DHGenRetry) Encode(b *bin.Buffer) error {
	b.PutID(DHGenRetryTypeID)
	b.PutInt128(d.Nonce)
	b.PutInt128(d.ServerNonce)
	b.PutInt128(d.NewNonceHash2)
	return nil
}

// Decode implements bin.Decoder.
func (d *DHGenRetry) Decode(b *bin.Buffer) error {
	if err := b.ConsumeID(DHGenRetryTypeID); err != nil {
		return errors.Wrap(err, "dh_gen_retry")
	}
	return decodeDHGen(b, &d.Nonce, &d.ServerNonce, &d.NewNonceHash2)
}

// DHGenFail represents TL type `dh_gen_fail#a69dae02`.
type DHGenFail struct {
	Nonce         bin.Int128
	ServerNonce   bin.Int128
	NewNonceHash3 bin.Int128
}

// DHGenFailTypeID is TL type id of DHGenFail.
const DHGenFailTypeID = 0xa69dae02

func (*DHGenFail) typeSetClientDHParamsAnswer() {}

// Encode implements bin.Encoder.
func (d *DHGenFail) Encode(b *bin.Buffer) error {
	b.PutID(DHGenFailTypeID)
	b.PutInt128(d.Nonce)
	b.PutInt128(d.ServerNonce)
	b.PutInt128(d.NewNonceHash3)
	return nil
}

// Decode implements bin.Decoder.
func (d *DHGenFail) Decode(b *bin.Buffer) error {
	if err := b.ConsumeID(DHGenFailTypeID); err != nil {
		return errors.Wrap(err, "dh_gen_fail")
	}
	return decodeDHGen(b, &d.Nonce, &d.ServerNonce, &d.NewNonceHash3)
}

func decodeDHGen(b *bin.Buffer, nonce, serverNonce, hash *bin.Int128) error {
	{
		v, err := b.Int128()
		if err != nil {
			return errors.Wrap(err, "nonce")
		}
		*nonce = v
	}
	{
		v, err := b.Int128()
		if err != nil {
			return errors.Wrap(err, "server_nonce")
		}
		*serverNonce = v
	}
	{
		v, err := b.Int128()
		if err != nil {
			return errors.Wrap(err, "new_nonce_hash")
		}
		*hash = v
	}
	return nil
}

// DecodeSetClientDHParamsAnswer decodes Set_client_DH_params_answer union.
func DecodeSetClientDHParamsAnswer(b *bin.Buffer) (SetClientDHParamsAnswerClass, error) {
	id, err := b.PeekID()
	if err != nil {
		return nil, err
	}
	switch id {
	case DHGenOkTypeID:
		v := DHGenOk{}
		if err := v.Decode(b); err != nil {
			return nil, err
		}
		return &v, nil
	case DHGenRetryTypeID:
		v := DHGenRetry{}
		if err := v.Decode(b); err != nil {
			return nil, err
		}
		return &v, nil
	case DHGenFailTypeID:
		v := DHGenFail{}
		if err := v.Decode(b); err != nil {
			return nil, err
		}
		return &v, nil
	default:
		return nil, bin.NewUnexpectedID(id)
	}
}
