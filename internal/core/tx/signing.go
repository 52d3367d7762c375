package tx

import (
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/Manifold-MEV/friendtech-presale/internal/crypto"
	common "github.com/Manifold-MEV/friendtech-presale/internal/crypto/common"
)

// txHashPrefix namespaces transaction hashes so they can never collide
// with ledger entry indexes.
var txHashPrefix = []byte("TXN\x00")

// SigningMessage returns the canonical bytes a submitter signs: the
// sorted-key JSON of all transaction fields except TxnSignature.
// encoding/json serializes map keys in sorted order, which makes the
// output canonical.
func SigningMessage(transaction Transaction) ([]byte, error) {
	fields, err := transaction.Flatten()
	if err != nil {
		return nil, err
	}
	delete(fields, "TxnSignature")
	return json.Marshal(fields)
}

// Sign computes and attaches the signature and public key for keyPair.
func Sign(transaction Transaction, keyPair *crypto.KeyPair) error {
	c := transaction.GetCommon()
	c.SigningPubKey = hex.EncodeToString(keyPair.PublicKey())
	message, err := SigningMessage(transaction)
	if err != nil {
		return err
	}
	c.TxnSignature = hex.EncodeToString(keyPair.Sign(message))
	return nil
}

// VerifySignature checks that the transaction carries a valid
// signature and that the signing key actually derives the Account
// address the transaction claims.
func VerifySignature(transaction Transaction) error {
	c := transaction.GetCommon()
	if c.SigningPubKey == "" || c.TxnSignature == "" {
		return fmt.Errorf("transaction is not signed")
	}
	publicKey, err := hex.DecodeString(c.SigningPubKey)
	if err != nil {
		return fmt.Errorf("invalid signing public key: %w", err)
	}
	signature, err := hex.DecodeString(c.TxnSignature)
	if err != nil {
		return fmt.Errorf("invalid signature encoding: %w", err)
	}
	account, err := c.CallerAddress()
	if err != nil {
		return err
	}
	if crypto.CalcAddress(publicKey) != account {
		return fmt.Errorf("signing key does not match account %s", c.Account)
	}
	message, err := SigningMessage(transaction)
	if err != nil {
		return err
	}
	if !crypto.Verify(publicKey, message, signature) {
		return fmt.Errorf("signature verification failed")
	}
	return nil
}

// TxHash returns the transaction identifier. The hash covers the raw
// submitted bytes when present so the identifier matches what the
// submitter sent, and falls back to the canonical field JSON.
func TxHash(transaction Transaction) ([32]byte, error) {
	raw := transaction.GetCommon().RawBytes
	if raw == nil {
		fields, err := transaction.Flatten()
		if err != nil {
			return [32]byte{}, err
		}
		raw, err = json.Marshal(fields)
		if err != nil {
			return [32]byte{}, err
		}
	}
	return common.Sha512Half(txHashPrefix, raw), nil
}
