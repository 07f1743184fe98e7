package crypto

import (
	"math/big"

	"github.com/go-faster/errors"
)

// ErrInsecureDHParams means that server-provided Diffie-Hellman
// parameters failed validation. The handshake must be aborted.
var ErrInsecureDHParams = errors.New("insecure dh params")

// primalityRounds is Miller-Rabin iteration count for prime checks.
const primalityRounds = 20

// CheckDHPrime verifies that p is a valid, safe 2048-bit prime and that
// g generates a meaningful subgroup, per the published MTProto
// requirements: 2^2047 < p < 2^2048, both p and (p-1)/2 prime, and the
// quadratic-residue condition matching the value of g.
func CheckDHPrime(p *big.Int, g int) error {
	if p.BitLen() != 2048 {
		return errors.Wrap(ErrInsecureDHParams, "dh_prime is not 2048-bit")
	}
	if !checkGeneratorResidue(p, g) {
		return errors.Wrap(ErrInsecureDHParams, "generator residue check failed")
	}
	if !p.ProbablyPrime(primalityRounds) {
		return errors.Wrap(ErrInsecureDHParams, "dh_prime is not prime")
	}
	half := new(big.Int).Rsh(new(big.Int).Sub(p, bigOne), 1)
	if !half.ProbablyPrime(primalityRounds) {
		return errors.Wrap(ErrInsecureDHParams, "dh_prime is not a safe prime")
	}
	return nil
}

// checkGeneratorResidue checks quadratic residue conditions that make g
// a generator of the subgroup of order (p-1)/2.
func checkGeneratorResidue(p *big.Int, g int) bool {
	rem := func(m int64) int64 {
		return new(big.Int).Mod(p, big.NewInt(m)).Int64()
	}
	switch g {
	case 2:
		return rem(8) == 7
	case 3:
		return rem(3) == 2
	case 4:
		return true
	case 5:
		r := rem(5)
		return r == 1 || r == 4
	case 6:
		r := rem(24)
		return r == 19 || r == 23
	case 7:
		r := rem(7)
		return r == 3 || r == 5 || r == 6
	default:
		return false
	}
}

// CheckGP is a cheap structural check of g and p used before the full
// primality test.
func CheckGP(g int, p *big.Int) error {
	if g < 2 || g > 7 {
		return errors.Wrap(ErrInsecureDHParams, "invalid g")
	}
	if p.Sign() <= 0 {
		return errors.Wrap(ErrInsecureDHParams, "invalid dh_prime")
	}
	return nil
}

// CheckDHParams verifies ranges of DH exchange values: each of g, g_a
// and g_b must be greater than one and less than p-1. Telegram
// additionally recommends 2^{1984} <= value <= p - 2^{1984}.
func CheckDHParams(dhPrime, g, gA, gB *big.Int) error {
	pMinusOne := new(big.Int).Sub(dhPrime, bigOne)
	for _, v := range []*big.Int{g, gA, gB} {
		if v.Cmp(bigOne) <= 0 || v.Cmp(pMinusOne) >= 0 {
			return errors.Wrap(ErrInsecureDHParams, "dh value out of range")
		}
	}

	// safetyRange = 2^{2048-64}.
	safetyRange := new(big.Int).Lsh(bigOne, 2048-64)
	upperBound := new(big.Int).Sub(dhPrime, safetyRange)
	for _, v := range []*big.Int{gA, gB} {
		if v.Cmp(safetyRange) < 0 || v.Cmp(upperBound) > 0 {
			return errors.Wrap(ErrInsecureDHParams, "dh value within unsafe range")
		}
	}
	return nil
}
