package crypto

import (
	"math/big"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDecomposePQ(t *testing.T) {
	source := rand.New(rand.NewSource(239))

	for _, tt := range []struct {
		pq, p, q int64
	}{
		{1724114033281923457, 1229739323, 1402015859},
		{378221, 613, 617},
		{15, 3, 5},
		{pq: 998}, // even composite fast path
	} {
		pq := big.NewInt(tt.pq)
		p, q, err := DecomposePQ(pq, source)
		require.NoError(t, err)
		require.Equal(t, pq, new(big.Int).Mul(p, q))
		require.True(t, p.Cmp(q) < 0)
		if tt.p != 0 {
			require.Equal(t, tt.p, p.Int64())
			require.Equal(t, tt.q, q.Int64())
		}
	}
}

func TestDecomposePQInvalid(t *testing.T) {
	source := rand.New(rand.NewSource(1))
	_, _, err := DecomposePQ(big.NewInt(-5), source)
	require.ErrorIs(t, err, ErrDecompositionFailed)
}
