package tgerr

import (
	"testing"
	"time"

	"github.com/go-faster/errors"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	for _, tt := range []struct {
		message  string
		typ      string
		argument int
	}{
		{"FLOOD_WAIT_5", "FLOOD_WAIT", 5},
		{"PHONE_MIGRATE_2", "PHONE_MIGRATE", 2},
		{"AUTH_KEY_UNREGISTERED", "AUTH_KEY_UNREGISTERED", 0},
		{"2FA_CONFIRM_WAIT_3", "2FA_CONFIRM_WAIT", 3},
	} {
		err := New(420, tt.message)
		require.Equal(t, tt.typ, err.Type, tt.message)
		require.Equal(t, tt.argument, err.Argument, tt.message)
	}
}

func TestHelpers(t *testing.T) {
	err := errors.Wrap(New(420, "FLOOD_WAIT_7"), "invoke")

	require.True(t, Is(err, "FLOOD_WAIT"))
	require.False(t, Is(err, "PHONE_MIGRATE"))
	require.True(t, IsCode(err, 420))
	require.False(t, IsCode(err, 401))

	d, ok := AsFloodWait(err)
	require.True(t, ok)
	require.Equal(t, 7*time.Second, d)

	_, ok = AsFloodWait(errors.New("plain"))
	require.False(t, ok)
}
