package testing

import (
	"crypto/sha512"

	"github.com/Manifold-MEV/friendtech-presale/internal/core/types"
	"github.com/Manifold-MEV/friendtech-presale/internal/crypto"
)

// Account is a named test account with a deterministic keypair. The
// same name always produces the same keys, so scenarios are
// reproducible.
type Account struct {
	Name    string
	Keys    *crypto.KeyPair
	Address types.Address
}

// NewAccount derives a test account from its name.
func NewAccount(name string) *Account {
	hash := sha512.Sum512([]byte(name))
	keys := crypto.KeyPairFromSeed(hash[:32])
	return &Account{
		Name:    name,
		Keys:    keys,
		Address: keys.Address(),
	}
}
