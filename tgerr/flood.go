package tgerr

import "time"

// ErrFloodWait is the type of FLOOD_WAIT error.
const ErrFloodWait = "FLOOD_WAIT"

// AsFloodWait returns wait duration if err is a FLOOD_WAIT error.
//
// The engine never retries flood-limited calls on its own: the caller
// decides whether the wait is acceptable.
func AsFloodWait(err error) (time.Duration, bool) {
	rpcErr, ok := As(err)
	if !ok || !rpcErr.IsType(ErrFloodWait) {
		return 0, false
	}
	return time.Second * time.Duration(rpcErr.Argument), true
}
