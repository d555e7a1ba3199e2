package geoscore

// spread moves bit i of v to bit 2i of the result; odd bits stay zero.
func spread(v uint32) uint64 {
	r := uint64(v)
	r = (r | (r << 16)) & 0x0000FFFF0000FFFF
	r = (r | (r << 8)) & 0x00FF00FF00FF00FF
	r = (r | (r << 4)) & 0x0F0F0F0F0F0F0F0F
	r = (r | (r << 2)) & 0x3333333333333333
	r = (r | (r << 1)) & 0x5555555555555555
	return r
}

// compact is the inverse of spread: it gathers the even bits of v into the
// low 32 bits of the result and drops the odd ones.
func compact(v uint64) uint32 {
	r := v & 0x5555555555555555
	r = (r | (r >> 1)) & 0x3333333333333333
	r = (r | (r >> 2)) & 0x0F0F0F0F0F0F0F0F
	r = (r | (r >> 4)) & 0x00FF00FF00FF00FF
	r = (r | (r >> 8)) & 0x0000FFFF0000FFFF
	r = (r | (r >> 16)) & 0x00000000FFFFFFFF
	return uint32(r)
}

// interleave puts x in the even bits and y in the odd bits.
func interleave(x, y uint32) uint64 {
	return spread(x) | spread(y)<<1
}

// deinterleave splits a code back into its even (x) and odd (y) halves.
func deinterleave(code uint64) (x, y uint32) {
	return compact(code), compact(code >> 1)
}
