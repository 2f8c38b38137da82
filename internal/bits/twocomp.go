// Package bits provides the fixed-width integer conversions used by the auxi
// record codec.
package bits

// IntN returns the signed two's complement of x with the specified integer bit
// width.
//
// Examples of unsigned (n-bit width) x values on the left and decoded values on
// the right:
//
//	0b011 -> 3
//	0b010 -> 2
//	0b001 -> 1
//	0b000 -> 0
//	0b111 -> -1
//	0b110 -> -2
//	0b101 -> -3
//	0b100 -> -4
func IntN(x uint64, n uint) int64 {
	signBitMask := uint64(1) << (n - 1)
	x &= mask(n)
	if x&signBitMask == 0 {
		// positive.
		return int64(x)
	}
	// negative.
	v := int64(x ^ signBitMask) // clear sign bit.
	v -= int64(signBitMask)
	return v
}

// UintN returns the n-bit two's complement representation of x. Values outside
// of the signed n-bit range are saturated to its minimum or maximum.
//
// Examples of decoded values on the left and unsigned (3-bit width) values on
// the right:
//
//	 3 -> 0b011
//	-1 -> 0b111
//	-4 -> 0b100
//	 7 -> 0b011 (saturated)
func UintN(x int64, n uint) uint64 {
	lo, hi := -int64(1)<<(n-1), int64(1)<<(n-1)-1
	switch {
	case x < lo:
		x = lo
	case x > hi:
		x = hi
	}
	return uint64(x) & mask(n)
}

// mask returns a bit mask of the n least significant bits.
func mask(n uint) uint64 {
	if n >= 64 {
		return ^uint64(0)
	}
	return uint64(1)<<n - 1
}
