package crypto

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gramkit/gram/testutil"
)

func TestCheckDHPrime(t *testing.T) {
	prime := testutil.DHPrime()

	require.NoError(t, CheckDHPrime(prime, testutil.DHGenerator))

	// Wrong bit length.
	require.ErrorIs(t, CheckDHPrime(big.NewInt(23), 3), ErrInsecureDHParams)

	// Right size, not prime.
	composite := new(big.Int).Lsh(big.NewInt(1), 2047)
	composite.Add(composite, big.NewInt(9))
	require.ErrorIs(t, CheckDHPrime(composite, 4), ErrInsecureDHParams)

	// Unsupported generator.
	require.ErrorIs(t, CheckDHPrime(prime, 11), ErrInsecureDHParams)
}

func TestCheckDHParams(t *testing.T) {
	prime := testutil.DHPrime()
	safe := new(big.Int).Lsh(big.NewInt(1), 2000)

	require.NoError(t, CheckDHParams(prime, big.NewInt(3), safe, safe))

	// Trivial subgroup values are rejected.
	require.ErrorIs(t, CheckDHParams(prime, big.NewInt(3), big.NewInt(1), safe), ErrInsecureDHParams)
	require.ErrorIs(t, CheckDHParams(prime, big.NewInt(3), safe, new(big.Int).Sub(prime, big.NewInt(1))), ErrInsecureDHParams)

	// Values outside the 2^{1984} safety margin are rejected.
	require.ErrorIs(t, CheckDHParams(prime, big.NewInt(3), big.NewInt(100), safe), ErrInsecureDHParams)
}
