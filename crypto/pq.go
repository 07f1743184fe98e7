package crypto

import (
	"io"
	"math/big"

	"github.com/go-faster/errors"
)

// ErrDecompositionFailed means that factorization of PQ failed.
var ErrDecompositionFailed = errors.New("pq decomposition failed")

var (
	bigZero = big.NewInt(0)
	bigOne  = big.NewInt(1)
)

// DecomposePQ decomposes a composite pq into prime factors p < q using
// Pollard's rho with the Brent cycle detection improvement, with a
// trial-division fast path for small factors.
func DecomposePQ(pq *big.Int, randSource io.Reader) (p, q *big.Int, err error) {
	if pq.Sign() <= 0 {
		return nil, nil, ErrDecompositionFailed
	}

	// Trial division by a few small primes first.
	for _, small := range []int64{2, 3, 5, 7, 11, 13, 17, 19, 23} {
		d := big.NewInt(small)
		if new(big.Int).Mod(pq, d).Sign() == 0 {
			return order(d, new(big.Int).Div(pq, d))
		}
	}

	for attempt := 0; attempt < 16; attempt++ {
		d, found := pollardBrent(pq, randSource)
		if found {
			return order(d, new(big.Int).Div(pq, d))
		}
	}
	return nil, nil, ErrDecompositionFailed
}

func order(a, b *big.Int) (*big.Int, *big.Int, error) {
	if a.Cmp(b) > 0 {
		return b, a, nil
	}
	return a, b, nil
}

// pollardBrent is one randomized round of Brent's variant of Pollard's
// rho algorithm. Returns a non-trivial divisor of n on success.
func pollardBrent(n *big.Int, randSource io.Reader) (*big.Int, bool) {
	randBelow := func() *big.Int {
		max := new(big.Int).Sub(n, bigOne)
		v, err := randFullInt(randSource, max)
		if err != nil {
			return big.NewInt(1)
		}
		return v
	}

	y, c, m := randBelow(), randBelow(), randBelow()
	g, r, q := big.NewInt(1), big.NewInt(1), big.NewInt(1)

	x := new(big.Int)
	ys := new(big.Int)
	tmp := new(big.Int)

	for g.Cmp(bigOne) == 0 {
		x.Set(y)
		for i := big.NewInt(0); i.Cmp(r) < 0; i.Add(i, bigOne) {
			// y = (y*y + c) mod n
			y.Mul(y, y).Add(y, c).Mod(y, n)
		}

		k := big.NewInt(0)
		for k.Cmp(r) < 0 && g.Cmp(bigOne) == 0 {
			ys.Set(y)
			bound := new(big.Int).Sub(r, k)
			if bound.Cmp(m) > 0 {
				bound.Set(m)
			}
			for i := big.NewInt(0); i.Cmp(bound) < 0; i.Add(i, bigOne) {
				y.Mul(y, y).Add(y, c).Mod(y, n)
				tmp.Sub(x, y).Abs(tmp)
				q.Mul(q, tmp).Mod(q, n)
			}
			g.GCD(nil, nil, q, n)
			k.Add(k, m)
		}
		r.Mul(r, big.NewInt(2))
	}

	if g.Cmp(n) == 0 {
		// Backtrack one step at a time.
		for {
			ys.Mul(ys, ys).Add(ys, c).Mod(ys, n)
			tmp.Sub(x, ys).Abs(tmp)
			g.GCD(nil, nil, tmp, n)
			if g.Cmp(bigOne) > 0 {
				break
			}
		}
	}

	if g.Cmp(bigOne) > 0 && g.Cmp(n) < 0 {
		return g, true
	}
	return nil, false
}

// randFullInt returns a random big.Int in [1, max].
func randFullInt(randSource io.Reader, max *big.Int) (*big.Int, error) {
	buf := make([]byte, (max.BitLen()+7)/8)
	for {
		if _, err := io.ReadFull(randSource, buf); err != nil {
			return nil, err
		}
		v := new(big.Int).SetBytes(buf)
		if v.Sign() > 0 && v.Cmp(max) <= 0 {
			return v, nil
		}
		v.Mod(v, max)
		if v.Sign() > 0 {
			return v, nil
		}
	}
}
