package crypto

// Side on which encryption is performed.
type Side byte

const (
	// Client side performs encryption with x=0.
	Client Side = 0
	// Server side performs encryption with x=8.
	Server Side = 1
)

// X returns the key derivation offset for messages encrypted by this
// side. Client and server use disjoint slices of the auth key, which
// prevents reflecting a message back to its sender.
func (s Side) X() int {
	switch s {
	case Client:
		return 0
	case Server:
		return 8
	default:
		return 0
	}
}

// DecryptSide returns the side that produced messages we decrypt.
func (s Side) DecryptSide() Side {
	switch s {
	case Client:
		return Server
	case Server:
		return Client
	default:
		return s
	}
}
