package ir

// The AC protocol family uses four distinct checksum algorithms. They are
// not interchangeable: picking the wrong one for a protocol breaks
// validation silently rather than crashing.

// SumNibbles returns the sum of all 4-bit nibbles modulo 16.
// Used by Carrier and the LG 28-bit word.
func SumNibbles(data []byte) uint8 {
	var sum uint16
	for _, b := range data {
		sum += uint16(b & 0x0F)
		sum += uint16(b >> 4)
	}
	return uint8(sum & 0x0F)
}

// SumBytes returns the byte sum modulo 256.
// Used by Hitachi, Mitsubishi and Daikin.
func SumBytes(data []byte) uint8 {
	var sum uint8
	for _, b := range data {
		sum += b
	}
	return sum
}

// XORBytes returns the XOR of all bytes.
// Used by Haier, Midea, Samsung48 and Panasonic.
func XORBytes(data []byte) uint8 {
	var x uint8
	for _, b := range data {
		x ^= b
	}
	return x
}

// SumBytesComplement returns the two's complement of the byte sum.
// Used by Fujitsu.
func SumBytesComplement(data []byte) uint8 {
	var sum uint8
	for _, b := range data {
		sum += b
	}
	return uint8(0x100 - uint16(sum))
}
