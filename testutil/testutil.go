// Package testutil contains helpers for tests.
package testutil

import (
	"math/big"
	"time"

	"github.com/gotd/neo"

	"github.com/gramkit/gram/clock"
)

// ZeroRand is a zero random source.
type ZeroRand struct{}

// Read implements io.Reader.
func (ZeroRand) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = 0
	}
	return len(p), nil
}

// Clock adapts *neo.Time to clock.Clock.
type Clock struct {
	*neo.Time
}

// Timer implements clock.Clock.
func (c Clock) Timer(d time.Duration) clock.Timer { return c.Time.Timer(d) }

// Ticker implements clock.Clock.
func (c Clock) Ticker(d time.Duration) clock.Ticker { return c.Time.Ticker(d) }

// NewClock creates a mock clock set to now.
func NewClock(now time.Time) Clock {
	return Clock{Time: neo.NewTime(now)}
}

// dhPrimeHex is the well-known 2048-bit safe prime published in the
// MTProto documentation, used with g = 3.
const dhPrimeHex = "C71CAEB9C6B1C9048E6C522F70F13F73980D40238E3E21C14934D037563D930F" +
	"48198A0AA7C14058229493D22530F4DBFA336F6E0AC925139543AED44CCE7C37" +
	"20FD51F69458705AC68CD4FE6B6B13ABDC9746512969328454F18FAF8C595F64" +
	"2477FE96BB2A941D5BCD1D4AC8CC49880708FA9B378E3C4F3A9060BEE67CF9A4" +
	"A4A695811051907E162753B56B0F6B410DBA74D8A84B2A14B3144E0EF1284754" +
	"FD17ED950D5965B4B9DD46582DB1178D169C6BC465B0D6FF9CA3928FEF5B9AE4" +
	"E418FC15E83EBEA0F87FA9FF5EED70050DED2849F47BF959D956850CE929851F" +
	"0D8115F635B105EE2E4E15D04B2454BF6F4FADF034B10403119CD8E3B92FCC5B"

// DHPrime returns the published test DH prime.
func DHPrime() *big.Int {
	p, ok := new(big.Int).SetString(dhPrimeHex, 16)
	if !ok {
		panic("invalid dh prime constant")
	}
	return p
}

// DHGenerator is the generator matching DHPrime.
const DHGenerator = 3
