package commands_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/bittensor-church/superburn/address"
	"github.com/bittensor-church/superburn/cmd/superburn/commands"
	"github.com/stretchr/testify/require"
)

func TestGenerateKeypair(t *testing.T) {
	require := require.New(t)

	keypair, err := commands.GenerateKeypair(42)
	require.NoError(err)

	require.True(strings.HasPrefix(keypair.PrivateKey, "0x"))
	require.Len(keypair.PrivateKey, 2+64)
	require.Len(keypair.Address, 2+40)

	// the ss58 field must be this keypair's address under the codec
	ss58, err := address.EncodeHex(keypair.Address, 42)
	require.NoError(err)
	require.Equal(ss58, keypair.Ss58)

	// two runs never collide
	other, err := commands.GenerateKeypair(42)
	require.NoError(err)
	require.NotEqual(keypair.PrivateKey, other.PrivateKey)
	require.NotEqual(keypair.Address, other.Address)

	bz, err := json.Marshal(keypair)
	require.NoError(err)
	for _, field := range []string{"private_key", "public_key", "address", "ss58"} {
		require.Contains(string(bz), field)
	}
}
