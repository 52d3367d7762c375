package crypto

import (
	"crypto/sha256"

	"github.com/decred/dcrd/crypto/ripemd160"

	"github.com/Manifold-MEV/friendtech-presale/internal/core/types"
)

// CalcAddress computes the account address for a public key as
// RIPEMD160(SHA256(publicKey)). Using two different hash functions
// rules out length extension attacks, and RIPEMD160 is the only hash
// generally considered safe at 160 bits.
func CalcAddress(publicKey []byte) types.Address {
	sha := sha256.Sum256(publicKey)

	ripe := ripemd160.New()
	ripe.Write(sha[:])
	return types.AddressFromBytes(ripe.Sum(nil))
}
