package mt

import (
	"github.com/go-faster/errors"

	"github.com/gramkit/gram/bin"
)

// RPCResult represents TL type `rpc_result#f35c6d01`.
//
// The result body is left raw: the caller dispatches on its own
// constructor id.
type RPCResult struct {
	RequestMessageID int64
	Result           []byte
}

// RPCResultTypeID is TL type id of RPCResult.
const RPCResultTypeID = 0xf35c6d01

// Encode implements bin.Encoder.
func (r *RPCResult) Encode(b *bin.Buffer) error {
	b.PutID(RPCResultTypeID)
	b.PutLong(r.RequestMessageID)
	b.Put(r.Result)
	return nil
}

// Decode implements bin.Decoder.
func (r *RPCResult) Decode(b *bin.Buffer) error {
	if err := b.ConsumeID(RPCResultTypeID); err != nil {
		return errors.Wrap(err, "rpc_result")
	}
	{
		v, err := b.Long()
		if err != nil {
			return errors.Wrap(err, "req_msg_id")
		}
		r.RequestMessageID = v
	}
	r.Result = append(r.Result[:0], b.Buf...)
	b.Skip(len(b.Buf))
	return nil
}

// RPCError represents TL type `rpc_error#2144ca19`.
type RPCError struct {
	ErrorCode    int
	ErrorMessage string
}

// RPCErrorTypeID is TL type id of RPCError.
const RPCErrorTypeID = 0x2144ca19

// Encode implements bin.Encoder.
func (r *RPCError) Encode(b *bin.Buffer) error {
	b.PutID(RPCErrorTypeID)
	b.PutInt(r.ErrorCode)
	b.PutString(r.ErrorMessage)
	return nil
}

// Decode implements bin.Decoder.
func (r *RPCError) Decode(b *bin.Buffer) error {
	if err := b.ConsumeID(RPCErrorTypeID); err != nil {
		return errors.Wrap(err, "rpc_error")
	}
	{
		v, err := b.Int()
		if err != nil {
			return errors.Wrap(err, "error_code")
		}
		r.ErrorCode = v
	}
	{
		v, err := b.String()
		if err != nil {
			return errors.Wrap(err, "error_message")
		}
		r.ErrorMessage = v
	}
	return nil
}

// PingRequest represents TL type `ping#7abe77ec`.
type PingRequest struct {
	PingID int64
}

// PingRequestTypeID is TL type id of PingRequest.
const PingRequestTypeID = 0x7abe77ec

// Encode implements bin.Encoder.
func (p *PingRequest) Encode(b *bin.Buffer) error {
	b.PutID(PingRequestTypeID)
	b.PutLong(p.PingID)
	return nil
}

// Decode implements bin.Decoder.
func (p *PingRequest) Decode(b *bin.Buffer) error {
	if err := b.ConsumeID(PingRequestTypeID); err != nil {
		return errors.Wrap(err, "ping")
	}
	v, err := b.Long()
	if err != nil {
		return errors.Wrap(err, "ping_id")
	}
	p.PingID = v
	return nil
}

// PingDelayDisconnectRequest represents TL type `ping_delay_disconnect#f3427b8c`.
//
// Server closes the connection if no new ping arrives within
// disconnect_delay seconds.
type PingDelayDisconnectRequest struct {
	PingID          int64
	DisconnectDelay int
}

// PingDelayDisconnectRequestTypeID is TL type id of PingDelayDisconnectRequest.
const PingDelayDisconnectRequestTypeID = 0xf3427b8c

// Encode implements bin.Encoder.
func (p *PingDelayDisconnectRequest) Encode(b *bin.Buffer) error {
	b.PutID(PingDelayDisconnectRequestTypeID)
	b.PutLong(p.PingID)
	b.PutInt(p.DisconnectDelay)
	return nil
}

// Decode implements bin.Decoder.
func (p *PingDelayDisconnectRequest) Decode(b *bin.Buffer) error {
	if err := b.ConsumeID(PingDelayDisconnectRequestTypeID); err != nil {
		return errors.Wrap(err, "ping_delay_disconnect")
	}
	{
		v, err := b.Long()
		if err != nil {
			return errors.Wrap(err, "ping_id")
		}
		p.PingID = v
	}
	{
		v, err := b.Int()
		if err != nil {
			return errors.Wrap(err, "disconnect_delay")
		}
		p.DisconnectDelay = v
	}
	return nil
}

// Pong represents TL type `pong#347773c5`.
type Pong struct {
	MsgID  int64
	PingID int64
}

// PongTypeID is TL type id of Pong.
const PongTypeID = 0x347773c5

// Encode implements bin.Encoder.
func (p *Pong) Encode(b *bin.Buffer) error {
	b.PutID(PongTypeID)
	b.PutLong(p.MsgID)
	b.PutLong(p.PingID)
	return nil
}

// Decode implements bin.Decoder.
func (p *Pong) Decode(b *bin.Buffer) error {
	if err := b.ConsumeID(PongTypeID); err != nil {
		return errors.Wrap(err, "pong")
	}
	{
		v, err := b.Long()
		if err != nil {
			return errors.Wrap(err, "msg_id")
		}
		p.MsgID = v
	}
	{
		v, err := b.Long()
		if err != nil {
			return errors.Wrap(err, "ping_id")
		}
		p.PingID = v
	}
	return nil
}

// NewSessionCreated represents TL type `new_session_created#9ec20908`.
type NewSessionCreated struct {
	FirstMsgID int64
	UniqueID   int64
	ServerSalt int64
}

// NewSessionCreatedTypeID is TL type id of NewSessionCreated.
const NewSessionCreatedTypeID = 0x9ec20908

// Encode implements bin.Encoder.
func (n *NewSessionCreated) Encode(b *bin.Buffer) error {
	b.PutID(NewSessionCreatedTypeID)
	b.PutLong(n.FirstMsgID)
	b.PutLong(n.UniqueID)
	b.PutLong(n.ServerSalt)
	return nil
}

// Decode implements bin.Decoder.
func (n *NewSessionCreated) Decode(b *bin.Buffer) error {
	if err := b.ConsumeID(NewSessionCreatedTypeID); err != nil {
		return errors.Wrap(err, "new_session_created")
	}
	{
		v, err := b.Long()
		if err != nil {
			return errors.Wrap(err, "first_msg_id")
		}
		n.FirstMsgID = v
	}
	{
		v, err := b.Long()
		if err != nil {
			return errors.Wrap(err, "unique_id")
		}
		n.UniqueID = v
	}
	{
		v, err := b.Long()
		if err != nil {
			return errors.Wrap(err, "server_salt")
		}
		n.ServerSalt = v
	}
	return nil
}

// MsgsAck represents TL type `msgs_ack#62d6b459`.
type MsgsAck struct {
	MsgIDs []int64
}

// MsgsAckTypeID is TL type id of MsgsAck.
const MsgsAckTypeID = 0x62d6b459

// Encode implements bin.Encoder.
func (m *MsgsAck) Encode(b *bin.Buffer) error {
	b.PutID(MsgsAckTypeID)
	b.PutVectorHeader(len(m.MsgIDs))
	for _, v := range m.MsgIDs {
		b.PutLong(v)
	}
	return nil
}

// Decode implements bin.Decoder.
func (m *MsgsAck) Decode(b *bin.Buffer) error {
	if err := b.ConsumeID(MsgsAckTypeID); err != nil {
		return errors.Wrap(err, "msgs_ack")
	}
	return decodeLongVector(b, &m.MsgIDs)
}

// BadMsgNotification represents TL type `bad_msg_notification#a7eff811`.
type BadMsgNotification struct {
	BadMsgID    int64
	BadMsgSeqNo int
	ErrorCode   int
}

// BadMsgNotificationTypeID is TL type id of BadMsgNotification.
const BadMsgNotificationTypeID = 0xa7eff811

// Bad message error codes, per service messages documentation.
const (
	// ErrMsgIDTooLow: client time must be synchronized.
	ErrMsgIDTooLow = 16
	// ErrMsgIDTooHigh: client time must be synchronized.
	ErrMsgIDTooHigh = 17
	// ErrMsgIDMod4: msg_id must be divisible by 4.
	ErrMsgIDMod4 = 18
	// ErrMsgIDDuplicate: container msg_id is the same as an earlier one.
	ErrMsgIDDuplicate = 19
	// ErrMsgTooOld: message too old, must be re-sent.
	ErrMsgTooOld = 20
	// ErrSeqNoTooLow: msg_seqno too low.
	ErrSeqNoTooLow = 32
	// ErrSeqNoTooHigh: msg_seqno too high.
	ErrSeqNoTooHigh = 33
	// ErrSeqNoNotEven: even msg_seqno expected.
	ErrSeqNoNotEven = 34
	// ErrSeqNoNotOdd: odd msg_seqno expected.
	ErrSeqNoNotOdd = 35
	// ErrInvalidContainer: invalid container.
	ErrInvalidContainer = 64
	// ErrBadServerSalt: the server salt is stale, bad_server_salt
	// carries the new one.
	ErrBadServerSalt = 48
)

// Encode implements bin.Encoder.
func (m *BadMsgNotification) Encode(b *bin.Buffer) error {
	b.PutID(BadMsgNotificationTypeID)
	b.PutLong(m.BadMsgID)
	b.PutInt(m.BadMsgSeqNo)
	b.PutInt(m.ErrorCode)
	return nil
}

// Decode implements bin.Decoder.
func (m *BadMsgNotification) Decode(b *bin.Buffer) error {
	if err := b.ConsumeID(BadMsgNotificationTypeID); err != nil {
		return errors.Wrap(err, "bad_msg_notification")
	}
	{
		v, err := b.Long()
		if err != nil {
			return errors.Wrap(err, "bad_msg_id")
		}
		m.BadMsgID = v
	}
	{
		v, err := b.Int()
		if err != nil {
			return errors.Wrap(err, "bad_msg_seqno")
		}
		m.BadMsgSeqNo = v
	}
	{
		v, err := b.Int()
		if err != nil {
			return errors.Wrap(err, "error_code")
		}
		m.ErrorCode = v
	}
	return nil
}

// BadServerSalt represents TL type `bad_server_salt#edab447b`.
type BadServerSalt struct {
	BadMsgID      int64
	BadMsgSeqNo   int
	ErrorCode     int
	NewServerSalt int64
}

// BadServerSaltTypeID is TL type id of BadServerSalt.
const BadServerSaltTypeID = 0xedab447b

// Encode implements bin.Encoder.
func (m *BadServerSalt) Encode(b *bin.Buffer) error {
	b.PutID(BadServerSaltTypeID)
	b.PutLong(m.BadMsgID)
	b.PutInt(m.BadMsgSeqNo)
	b.PutInt(m.ErrorCode)
	b.PutLong(m.NewServerSalt)
	return nil
}

// Decode implements bin.Decoder.
func (m *BadServerSalt) Decode(b *bin.Buffer) error {
	if err := b.ConsumeID(BadServerSaltTypeID); err != nil {
		return errors.Wrap(err, "bad_server_salt")
	}
	{
		v, err := b.Long()
		if err != nil {
			return errors.Wrap(err, "bad_msg_id")
		}
		m.BadMsgID = v
	}
	{
		v, err := b.Int()
		if err != nil {
			return errors.Wrap(err, "bad_msg_seqno")
		}
		m.BadMsgSeqNo = v
	}
	{
		v, err := b.Int()
		if err != nil {
			return errors.Wrap(err, "error_code")
		}
		m.ErrorCode = v
	}
	{
		v, err := b.Long()
		if err != nil {
			return errors.Wrap(err, "new_server_salt")
		}
		m.NewServerSalt = v
	}
	return nil
}

// MsgsStateReq represents TL type `msgs_state_req#da69fb52`.
type MsgsStateReq struct {
	MsgIDs []int64
}

// MsgsStateReqTypeID is TL type id of MsgsStateReq.
const MsgsStateReqTypeID = 0xda69fb52

// Encode implements bin.Encoder.
func (m *MsgsStateReq) Encode(b *bin.Buffer) error {
	b.PutID(MsgsStateReqTypeID)
	b.PutVectorHeader(len(m.MsgIDs))
	for _, v := range m.MsgIDs {
		b.PutLong(v)
	}
	return nil
}

// Decode implements bin.Decoder.
func (m *MsgsStateReq) Decode(b *bin.Buffer) error {
	if err := b.ConsumeID(MsgsStateReqTypeID); err != nil {
		return errors.Wrap(err, "msgs_state_req")
	}
	return decodeLongVector(b, &m.MsgIDs)
}

// MsgsStateInfo represents TL type `msgs_state_info#04deb57d`.
type MsgsStateInfo struct {
	ReqMsgID int64
	Info     []byte
}

// MsgsStateInfoTypeID is TL type id of MsgsStateInfo.
const MsgsStateInfoTypeID = 0x04deb57d

// Encode implements bin.Encoder.
func (m *MsgsStateInfo) Encode(b *bin.Buffer) error {
	b.PutID(MsgsStateInfoTypeID)
	b.PutLong(m.ReqMsgID)
	b.PutBytes(m.Info)
	return nil
}

// Decode implements bin.Decoder.
func (m *MsgsStateInfo) Decode(b *bin.Buffer) error {
	if err := b.ConsumeID(MsgsStateInfoTypeID); err != nil {
		return errors.Wrap(err, "msgs_state_info")
	}
	{
		v, err := b.Long()
		if err != nil {
			return errors.Wrap(err, "req_msg_id")
		}
		m.ReqMsgID = v
	}
	{
		v, err := b.Bytes()
		if err != nil {
			return errors.Wrap(err, "info")
		}
		m.Info = v
	}
	return nil
}

// MsgsAllInfo represents TL type `msgs_all_info#8cc0d131`.
type MsgsAllInfo struct {
	MsgIDs []int64
	Info   []byte
}

// MsgsAllInfoTypeID is TL type id of MsgsAllInfo.
const MsgsAllInfoTypeID = 0x8cc0d131

// Encode implements bin.Encoder.
func (m *MsgsAllInfo) Encode(b *bin.Buffer) error {
	b.PutID(MsgsAllInfoTypeID)
	b.PutVectorHeader(len(m.MsgIDs))
	for _, v := range m.MsgIDs {
		b.PutLong(v)
	}
	b.PutBytes(m.Info)
	return nil
}

// Decode implements bin.Decoder.
func (m *MsgsAllInfo) Decode(b *bin.Buffer) error {
	if err := b.ConsumeID(MsgsAllInfoTypeID); err != nil {
		return errors.Wrap(err, "msgs_all_info")
	}
	if err := decodeLongVector(b, &m.MsgIDs); err != nil {
		return err
	}
	{
		v, err := b.Bytes()
		if err != nil {
			return errors.Wrap(err, "info")
		}
		m.Info = v
	}
	return nil
}

// MsgDetailedInfo represents TL type `msg_detailed_info#276d3ec6`.
type MsgDetailedInfo struct {
	MsgID       int64
	AnswerMsgID int64
	Bytes       int
	Status      int
}

// MsgDetailedInfoTypeID is TL type id of MsgDetailedInfo.
const MsgDetailedInfoTypeID = 0x276d3ec6

// Encode implements bin.Encoder.
func (m *MsgDetailedInfo) Encode(b *bin.Buffer) error {
	b.PutID(MsgDetailedInfoTypeID)
	b.PutLong(m.MsgID)
	b.PutLong(m.AnswerMsgID)
	b.PutInt(m.Bytes)
	b.PutInt(m.Status)
	return nil
}

// Decode implements bin.Decoder.
func (m *MsgDetailedInfo) Decode(b *bin.Buffer) error {
	if err := b.ConsumeID(MsgDetailedInfoTypeID); err != nil {
		return errors.Wrap(err, "msg_detailed_info")
	}
	{
		v, err := b.Long()
		if err != nil {
			return errors.Wrap(err, "msg_id")
		}
		m.MsgID = v
	}
	{
		v, err := b.Long()
		if err != nil {
			return errors.Wrap(err, "answer_msg_id")
		}
		m.AnswerMsgID = v
	}
	{
		v, err := b.Int()
		if err != nil {
			return errors.Wrap(err, "bytes")
		}
		m.Bytes = v
	}
	{
		v, err := b.Int()
		if err != nil {
			return errors.Wrap(err, "status")
		}
		m.Status = v
	}
	return nil
}

// MsgNewDetailedInfo represents TL type `msg_new_detailed_info#809db6df`.
type MsgNewDetailedInfo struct {
	AnswerMsgID int64
	Bytes       int
	Status      int
}

// MsgNewDetailedInfoTypeID is TL type id of MsgNewDetailedInfo.
const MsgNewDetailedInfoTypeID = 0x809db6df

// Encode implements bin.Encoder.
func (m *MsgNewDetailedInfo) Encode(b *bin.Buffer) error {
	b.PutID(MsgNewDetailedInfoTypeID)
	b.PutLong(m.AnswerMsgID)
	b.PutInt(m.Bytes)
	b.PutInt(m.Status)
	return nil
}

// Decode implements bin.Decoder.
func (m *MsgNewDetailedInfo) Decode(b *bin.Buffer) error {
	if err := b.ConsumeID(MsgNewDetailedInfoTypeID); err != nil {
		return errors.Wrap(err, "msg_new_detailed_info")
	}
	{
		v, err := b.Long()
		if err != nil {
			return errors.Wrap(err, "answer_msg_id")
		}
		m.AnswerMsgID = v
	}
	{
		v, err := b.Int()
		if err != nil {
			return errors.Wrap(err, "bytes")
		}
		m.Bytes = v
	}
	{
		v, err := b.Int()
		if err != nil {
			return errors.Wrap(err, "status")
		}
		m.Status = v
	}
	return nil
}

// MsgResendReq represents TL type `msg_resend_req#7d861a08`.
type MsgResendReq struct {
	MsgIDs []int64
}

// MsgResendReqTypeID is TL type id of MsgResendReq.
const MsgResendReqTypeID = 0x7d861a08

// Encode implements bin.Encoder.
func (m *MsgResendReq) Encode(b *bin.Buffer) error {
	b.PutID(MsgResendReqTypeID)
	b.PutVectorHeader(len(m.MsgIDs))
	for _, v := range m.MsgIDs {
		b.PutLong(v)
	}
	return nil
}

// Decode implements bin.Decoder.
func (m *MsgResendReq) Decode(b *bin.Buffer) error {
	if err := b.ConsumeID(MsgResendReqTypeID); err != nil {
		return errors.Wrap(err, "msg_resend_req")
	}
	return decodeLongVector(b, &m.MsgIDs)
}

// DestroySessionRequest represents TL type `destroy_session#e7512126`.
type DestroySessionRequest struct {
	SessionID int64
}

// DestroySessionRequestTypeID is TL type id of DestroySessionRequest.
const DestroySessionRequestTypeID = 0xe7512126

// Encode implements bin.Encoder.
func (d *DestroySessionRequest) Encode(b *bin.Buffer) error {
	b.PutID(DestroySessionRequestTypeID)
	b.PutLong(d.SessionID)
	return nil
}

// Decode implements bin.Decoder.
func (d *DestroySessionRequest) Decode(b *bin.Buffer) error {
	if err := b.ConsumeID(DestroySessionRequestTypeID); err != nil {
		return errors.Wrap(err, "destroy_session")
	}
	v, err := b.Long()
	if err != nil {
		return errors.Wrap(err, "session_id")
	}
	d.SessionID = v
	return nil
}

// DestroySessionOk represents TL type `destroy_session_ok#e22045fc`.
type DestroySessionOk struct {
	SessionID int64
}

// DestroySessionOkTypeID is TL type id of DestroySessionOk.
const DestroySessionOkTypeID = 0xe22045fc

// Encode implements bin.Encoder.
func (d *DestroySessionOk) Encode(b *bin.Buffer) error {
	b.PutID(DestroySessionOkTypeID)
	b.PutLong(d.SessionID)
	return nil
}

// Decode implements bin.Decoder.
func (d *DestroySessionOk) Decode(b *bin.Buffer) error {
	if err := b.ConsumeID(DestroySessionOkTypeID); err != nil {
		return errors.Wrap(err, "destroy_session_ok")
	}
	v, err := b.Long()
	if err != nil {
		return errors.Wrap(err, "session_id")
	}
	d.SessionID = v
	return nil
}

// DestroySessionNone represents TL type `destroy_session_none#62d350c9`.
type DestroySessionNone struct {
	SessionID int64
}

// DestroySessionNoneTypeID is TL type id of DestroySessionNone.
const DestroySessionNoneTypeID = 0x62d350c9

// Encode implements bin.Encoder.
func (d *DestroySessionNone) Encode(b *bin.Buffer) error {
	b.PutID(DestroySessionNoneTypeID)
	b.PutLong(d.SessionID)
	return nil
}

// Decode implements bin.Decoder.
func (d *DestroySessionNone) Decode(b *bin.Buffer) error {
	if err := b.ConsumeID(DestroySessionNoneTypeID); err != nil {
		return errors.Wrap(err, "destroy_session_none")
	}
	v, err := b.Long()
	if err != nil {
		return errors.Wrap(err, "session_id")
	}
	d.SessionID = v
	return nil
}

func decodeLongVector(b *bin.Buffer, to *[]int64) error {
	n, err := b.VectorHeader()
	if err != nil {
		return errors.Wrap(err, "vector header")
	}
	*to = (*to)[:0]
	for i := 0; i < n; i++ {
		v, err := b.Long()
		if err != nil {
			return errors.Wrap(err, "vector element")
		}
		*to = append(*to, v)
	}
	return nil
}
