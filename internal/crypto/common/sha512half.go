package crypto

import "crypto/sha512"

// Sha512Half returns the first 32 bytes of the SHA-512 hash of the
// concatenation of the given chunks.
func Sha512Half(chunks ...[]byte) [32]byte {
	h := sha512.New()
	for _, c := range chunks {
		h.Write(c)
	}
	sum := h.Sum(nil)
	var result [32]byte
	copy(result[:], sum[:32])
	return result
}
