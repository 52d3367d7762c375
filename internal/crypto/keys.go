package crypto

import (
	"errors"
	"fmt"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	secpecdsa "github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"

	"github.com/Manifold-MEV/friendtech-presale/internal/core/types"
	crypto "github.com/Manifold-MEV/friendtech-presale/internal/crypto/common"
)

var (
	ErrInvalidPrivateKey = errors.New("invalid private key")
	ErrInvalidPublicKey  = errors.New("invalid public key")
)

// KeyPair holds a secp256k1 keypair used to authenticate transaction
// submitters. The public key serializes compressed (33 bytes).
type KeyPair struct {
	priv *secp256k1.PrivateKey
}

// GenerateKeyPair creates a keypair from a fresh random scalar.
func GenerateKeyPair() (*KeyPair, error) {
	priv, err := secp256k1.GeneratePrivateKey()
	if err != nil {
		return nil, fmt.Errorf("generate private key: %w", err)
	}
	return &KeyPair{priv: priv}, nil
}

// KeyPairFromSeed derives a deterministic keypair by hashing the seed
// into a scalar. Intended for test fixtures and standalone mode.
func KeyPairFromSeed(seed []byte) *KeyPair {
	digest := crypto.Sha512Half(seed)
	priv := secp256k1.PrivKeyFromBytes(digest[:])
	return &KeyPair{priv: priv}
}

func (k *KeyPair) PublicKey() []byte {
	return k.priv.PubKey().SerializeCompressed()
}

// Address returns the account address derived from the public key.
func (k *KeyPair) Address() types.Address {
	return CalcAddress(k.PublicKey())
}

// Sign produces a DER-encoded ECDSA signature over Sha512Half(message).
func (k *KeyPair) Sign(message []byte) []byte {
	digest := crypto.Sha512Half(message)
	return secpecdsa.Sign(k.priv, digest[:]).Serialize()
}

// Verify checks a DER-encoded signature over Sha512Half(message)
// against a compressed public key.
func Verify(publicKey, message, signature []byte) bool {
	pub, err := secp256k1.ParsePubKey(publicKey)
	if err != nil {
		return false
	}
	sig, err := secpecdsa.ParseDERSignature(signature)
	if err != nil {
		return false
	}
	digest := crypto.Sha512Half(message)
	return sig.Verify(digest[:], pub)
}
