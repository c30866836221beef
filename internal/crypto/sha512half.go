package crypto

import "crypto/sha512"

// Sha512Half returns the first 32 bytes of a SHA-512 hash over the
// concatenation of all inputs.
func Sha512Half(inputs ...[]byte) [32]byte {
	h := sha512.New()
	for _, in := range inputs {
		h.Write(in)
	}
	var result [32]byte
	copy(result[:], h.Sum(nil)[:32])
	return result
}
