// Package subtle provides the low-level index arithmetic of the Vigenère ciphers.
package subtle

// Mod returns a mod m in the range [0, m), also for negative a.
// Go's % truncates toward zero, so (-3) % 26 is -3 rather than 23.
func Mod(a, m int) int {
	r := a % m
	if r < 0 {
		r += m
	}
	return r
}

// shift adds delta to index under radix.
func shift(index uint16, delta int, radix int) uint16 {
	return uint16(Mod(int(index)+delta, radix))
}
