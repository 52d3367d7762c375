package crypto

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestKeyPairFromSeedIsDeterministic(t *testing.T) {
	a := KeyPairFromSeed([]byte("alice"))
	b := KeyPairFromSeed([]byte("alice"))
	require.Equal(t, a.PublicKey(), b.PublicKey())
	require.Equal(t, a.Address(), b.Address())

	c := KeyPairFromSeed([]byte("bob"))
	require.NotEqual(t, a.Address(), c.Address())
}

func TestSignAndVerify(t *testing.T) {
	kp := KeyPairFromSeed([]byte("signer"))
	msg := []byte("transfer 3 shares")

	sig := kp.Sign(msg)
	require.True(t, Verify(kp.PublicKey(), msg, sig))

	require.False(t, Verify(kp.PublicKey(), []byte("transfer 4 shares"), sig))

	other := KeyPairFromSeed([]byte("other"))
	require.False(t, Verify(other.PublicKey(), msg, sig))
}

func TestVerifyRejectsMalformedInputs(t *testing.T) {
	kp := KeyPairFromSeed([]byte("signer"))
	msg := []byte("hello")
	sig := kp.Sign(msg)

	require.False(t, Verify([]byte{0x02, 0x01}, msg, sig))
	require.False(t, Verify(kp.PublicKey(), msg, []byte("not a signature")))
}
