package bin

// TL string encoding: short strings carry a single length byte, long
// strings escape via 0xfe followed by a 24-bit length. Both forms are
// zero-padded to a 4-byte boundary, and the padding participates in
// message authentication downstream, so it must be reproduced exactly.

const maxShortStringLen = 253

func encodeString(b []byte, v string) []byte {
	l := len(v)
	if l <= maxShortStringLen {
		b = append(b, byte(l))
		b = append(b, v...)
		currentLen := l + 1
		b = append(b, make([]byte, nearestPaddedValueLength(currentLen)-currentLen)...)
	} else {
		b = append(b, 0xfe, byte(l), byte(l>>8), byte(l>>16))
		b = append(b, v...)
		currentLen := l + 4
		b = append(b, make([]byte, nearestPaddedValueLength(currentLen)-currentLen)...)
	}
	return b
}

func encodeBytes(b, v []byte) []byte {
	l := len(v)
	if l <= maxShortStringLen {
		b = append(b, byte(l))
		b = append(b, v...)
		currentLen := l + 1
		b = append(b, make([]byte, nearestPaddedValueLength(currentLen)-currentLen)...)
	} else {
		b = append(b, 0xfe, byte(l), byte(l>>8), byte(l>>16))
		b = append(b, v...)
		currentLen := l + 4
		b = append(b, make([]byte, nearestPaddedValueLength(currentLen)-currentLen)...)
	}
	return b
}

func nearestPaddedValueLength(l int) int {
	n := Word * (l / Word)
	if n < l {
		n += Word
	}
	return n
}

func decodeBytes(b []byte) (n int, v []byte, err error) {
	if len(b) == 0 {
		return 0, nil, ErrTruncated
	}
	l := int(b[0])
	switch {
	case l == 0xff:
		return 0, nil, ErrMalformed
	case l == 0xfe:
		if len(b) < 4 {
			return 0, nil, ErrTruncated
		}
		l = int(b[1]) | int(b[2])<<8 | int(b[3])<<16
		n = nearestPaddedValueLength(l + 4)
		if l+4 > len(b) {
			return 0, nil, ErrTruncated
		}
		if n > len(b) {
			return 0, nil, ErrTruncated
		}
		return n, b[4 : 4+l], nil
	default:
		n = nearestPaddedValueLength(l + 1)
		if l+1 > len(b) {
			return 0, nil, ErrTruncated
		}
		if n > len(b) {
			return 0, nil, ErrTruncated
		}
		return n, b[1 : 1+l], nil
	}
}

func decodeString(b []byte) (n int, v string, err error) {
	n, raw, err := decodeBytes(b)
	if err != nil {
		return 0, "", err
	}
	return n, string(raw), nil
}
