package bin

// Basic TL types.
const (
	// TypeVector is vector type id.
	TypeVector = 0x1cb5c415
	// TypeTrue is boolTrue type id.
	TypeTrue = 0x997275b5
	// TypeFalse is boolFalse type id.
	TypeFalse = 0xbc799737

	// Word represents the byte size of a TL word.
	Word = 4
)
