package bits

// ReverseBytes returns x with the order of its n least significant bytes
// reversed. It converts between the little-endian byte order of the auxi
// record and the most significant bit first order of a bit stream.
//
//	ReverseBytes(0x00A4, 2) -> 0xA400
//	ReverseBytes(0x12345678, 4) -> 0x78563412
func ReverseBytes(x uint64, n uint) uint64 {
	var y uint64
	for i := uint(0); i < n; i++ {
		y = y<<8 | x>>(8*i)&0xFF
	}
	return y
}
