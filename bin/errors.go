package bin

import (
	"fmt"

	"github.com/go-faster/errors"
)

// ErrTruncated means that decoder expected more data than buffer contains.
// Decoding never reads past the supplied buffer.
var ErrTruncated = errors.New("truncated input")

// ErrMalformed means that data is structurally invalid, e.g. a vector
// whose declared count exceeds the remaining bytes.
var ErrMalformed = errors.New("malformed data")

// UnexpectedIDErr means that unknown or unexpected type id was decoded.
type UnexpectedIDErr struct {
	ID uint32
}

func (e *UnexpectedIDErr) Error() string {
	return fmt.Sprintf("unexpected id %#x", e.ID)
}

// NewUnexpectedID return new UnexpectedIDErr.
func NewUnexpectedID(id uint32) error {
	return &UnexpectedIDErr{ID: id}
}
