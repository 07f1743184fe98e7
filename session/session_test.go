package session

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gramkit/gram/bin"
)

func testData() *Data {
	key := make([]byte, 256)
	for i := range key {
		key[i] = byte(i)
	}
	return &Data{
		DC:        2,
		Addr:      "149.154.167.50:443",
		AuthKey:   key,
		AuthKeyID: []byte{1, 2, 3, 4, 5, 6, 7, 8},
		Salt:      0x1122334455667788,
	}
}

func TestLoaderRoundtrip(t *testing.T) {
	ctx := context.Background()
	loader := Loader{Storage: &StorageMemory{}}

	_, err := loader.Load(ctx)
	require.ErrorIs(t, err, ErrNotFound)

	data := testData()
	require.NoError(t, loader.Save(ctx, data))

	got, err := loader.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, data, got)
}

func TestLoaderInvalidVersion(t *testing.T) {
	ctx := context.Background()
	storage := &StorageMemory{}
	var b bin.Buffer
	b.Put([]byte{255})
	b.PutInt(2)
	require.NoError(t, storage.StoreSession(ctx, b.Copy()))

	loader := Loader{Storage: storage}
	_, err := loader.Load(ctx)
	require.ErrorIs(t, err, ErrInvalidVersion)
}

func TestFileStorage(t *testing.T) {
	ctx := context.Background()
	storage := &FileStorage{Path: filepath.Join(t.TempDir(), "session.dat")}

	_, err := storage.LoadSession(ctx)
	require.ErrorIs(t, err, ErrNotFound)

	loader := Loader{Storage: storage}
	data := testData()
	require.NoError(t, loader.Save(ctx, data))

	got, err := loader.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, data, got)
}
