package mt

import (
	"github.com/go-faster/errors"

	"github.com/gramkit/gram/bin"
)

// FutureSalt represents TL type `future_salt#0949d9dc`.
//
// future_salt is a bare constructor inside future_salts.
type FutureSalt struct {
	ValidSince int
	ValidUntil int
	Salt       int64
}

// FutureSaltTypeID is TL type id of FutureSalt.
const FutureSaltTypeID = 0x0949d9dc

// EncodeBare implements bin.BareEncoder.
func (f *FutureSalt) EncodeBare(b *bin.Buffer) error {
	b.PutInt(f.ValidSince)
	b.PutInt(f.ValidUntil)
	b.PutLong(f.Salt)
	return nil
}

// DecodeBare implements bin.BareDecoder.
func (f *FutureSalt) DecodeBare(b *bin.Buffer) error {
	{
		v, err := b.Int()
		if err != nil {
			return errors.Wrap(err, "valid_since")
		}
		f.ValidSince = v
	}
	{
		v, err := b.Int()
		if err != nil {
			return errors.Wrap(err, "valid_until")
		}
		f.ValidUntil = v
	}
	{
		v, err := b.Long()
		if err != nil {
			return errors.Wrap(err, "salt")
		}
		f.Salt = v
	}
	return nil
}

// GetFutureSaltsRequest represents TL type `get_future_salts#b921bd04`.
type GetFutureSaltsRequest struct {
	Num int
}

// GetFutureSaltsRequestTypeID is TL type id of GetFutureSaltsRequest.
const GetFutureSaltsRequestTypeID = 0xb921bd04

// Encode implements bin.Encoder.
func (g *GetFutureSaltsRequest) Encode(b *bin.Buffer) error {
	b.PutID(GetFutureSaltsRequestTypeID)
	b.PutInt(g.Num)
	return nil
}

// Decode implements bin.Decoder.
func (g *GetFutureSaltsRequest) Decode(b *bin.Buffer) error {
	if err := b.ConsumeID(GetFutureSaltsRequestTypeID); err != nil {
		return errors.Wrap(err, "get_future_salts")
	}
	v, err := b.Int()
	if err != nil {
		return errors.Wrap(err, "num")
	}
	g.Num = v
	return nil
}

// FutureSalts represents TL type `future_salts#ae500895`.
//
// future_salts#ae500895 req_msg_id:long now:int
// salts:vector<future_salt> = FutureSalts;
type FutureSalts struct {
	ReqMsgID int64
	Now      int
	Salts    []FutureSalt
}

// FutureSaltsTypeID is TL type id of FutureSalts.
const FutureSaltsTypeID = 0xae500895

// Encode implements bin.Encoder.
func (f *FutureSalts) Encode(b *bin.Buffer) error {
	b.PutID(FutureSaltsTypeID)
	b.PutLong(f.ReqMsgID)
	b.PutInt(f.Now)
	// Bare vector: count without the vector constructor id.
	b.PutInt(len(f.Salts))
	for i := range f.Salts {
		if err := f.Salts[i].EncodeBare(b); err != nil {
			return errors.Wrap(err, "salt")
		}
	}
	return nil
}

// Decode implements bin.Decoder.
func (f *FutureSalts) Decode(b *bin.Buffer) error {
	if err := b.ConsumeID(FutureSaltsTypeID); err != nil {
		return errors.Wrap(err, "future_salts")
	}
	{
		v, err := b.Long()
		if err != nil {
			return errors.Wrap(err, "req_msg_id")
		}
		f.ReqMsgID = v
	}
	{
		v, err := b.Int()
		if err != nil {
			return errors.Wrap(err, "now")
		}
		f.Now = v
	}
	{
		n, err := b.Int()
		if err != nil {
			return errors.Wrap(err, "salts count")
		}
		if n < 0 || n*16 > b.Len() {
			return bin.ErrMalformed
		}
		f.Salts = f.Salts[:0]
		for i := 0; i < n; i++ {
			var salt FutureSalt
			if err := salt.DecodeBare(b); err != nil {
				return errors.Wrap(err, "salt")
			}
			f.Salts = append(f.Salts, salt)
		}
	}
	return nil
}
