package substrate_test

import (
	"testing"

	"github.com/bittensor-church/superburn/client/substrate"
	"github.com/stretchr/testify/require"
)

func TestNewSignerFromSeed(t *testing.T) {
	require := require.New(t)

	signer, err := substrate.NewSignerFromSeed("0xfac7959dbfe72f052e5a0c3c8d6530f202b02fd8f9f5ca3580ec8deb7797479e")
	require.NoError(err)
	require.NotNil(signer)

	// works without the 0x prefix too
	signer2, err := substrate.NewSignerFromSeed("fac7959dbfe72f052e5a0c3c8d6530f202b02fd8f9f5ca3580ec8deb7797479e")
	require.NoError(err)

	pub1, err := signer.PublicKey()
	require.NoError(err)
	pub2, err := signer2.PublicKey()
	require.NoError(err)
	require.Equal(pub1, pub2)

	_, err = substrate.NewSignerFromSeed("some mnemonic words here")
	require.ErrorContains(err, "only raw seed")

	_, err = substrate.NewSignerFromSeed("0xdeadbeef")
	require.ErrorContains(err, "expected seed to be 32 bytes")
}

func TestSignAndVerify(t *testing.T) {
	require := require.New(t)

	signer, err := substrate.NewSignerFromSeed("0xfac7959dbfe72f052e5a0c3c8d6530f202b02fd8f9f5ca3580ec8deb7797479e")
	require.NoError(err)

	payload := []byte("superburn test payload")
	sig, err := signer.Sign(payload)
	require.NoError(err)
	require.Len(sig, 64)

	require.True(signer.Verify(payload, sig))
	require.False(signer.Verify([]byte("different payload"), sig))
	require.False(signer.Verify(payload, sig[:63]))
}
