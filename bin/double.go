package bin

import "math"

func doubleToUint64(v float64) uint64 {
	return math.Float64bits(v)
}

func uint64ToDouble(v uint64) float64 {
	return math.Float64frombits(v)
}
