package sink_test

import (
	"bytes"
	"math/big"
	"testing"

	superburn "github.com/bittensor-church/superburn"
	"github.com/bittensor-church/superburn/sink"
	"github.com/stretchr/testify/require"
)

func TestPackStake(t *testing.T) {
	require := require.New(t)

	hotkey := superburn.Hotkey{0x01, 0x02}
	amount := superburn.NewAmountRaoFromUint64(50_000_000)
	data, err := sink.PackStake(hotkey, 285, amount)
	require.NoError(err)

	// 4-byte selector + 3 static words
	require.Len(data, 4+3*32)
	require.True(bytes.HasPrefix(data, sink.ABI.Methods["stake"].ID))

	args, err := sink.ABI.Methods["stake"].Inputs.Unpack(data[4:])
	require.NoError(err)
	require.Equal([32]byte(hotkey), args[0])
	require.Equal(big.NewInt(285), args[1])
	require.Equal(big.NewInt(50_000_000), args[2])
}

func TestPackUnstakeAndBurn(t *testing.T) {
	require := require.New(t)

	hotkeys := []superburn.Hotkey{{0xaa}, {0xbb}}
	amounts := []superburn.AmountRao{
		superburn.NewAmountRaoFromUint64(1),
		superburn.NewAmountRaoFromUint64(2),
	}
	data, err := sink.PackUnstakeAndBurn(hotkeys, 285, amounts)
	require.NoError(err)
	require.True(bytes.HasPrefix(data, sink.ABI.Methods["unstakeAndBurn"].ID))

	args, err := sink.ABI.Methods["unstakeAndBurn"].Inputs.Unpack(data[4:])
	require.NoError(err)
	require.Equal([][32]byte{{0xaa}, {0xbb}}, args[0])
	require.Equal([]*big.Int{big.NewInt(1), big.NewInt(2)}, args[2])

	_, err = sink.PackUnstakeAndBurn(hotkeys, 285, amounts[:1])
	require.ErrorContains(err, "2 hotkeys but 1 amounts")
}

func TestPackRegisterNeuron(t *testing.T) {
	require := require.New(t)

	data, err := sink.PackRegisterNeuron(12, superburn.Hotkey{0x19, 0x2c})
	require.NoError(err)
	require.True(bytes.HasPrefix(data, sink.ABI.Methods["registerNeuron"].ID))
	require.Len(data, 4+2*32)
}

func TestGetBalanceRoundTrip(t *testing.T) {
	require := require.New(t)

	data, err := sink.PackGetBalance()
	require.NoError(err)
	require.Len(data, 4)

	encoded, err := sink.ABI.Methods["getBalance"].Outputs.Pack(big.NewInt(123_456_789))
	require.NoError(err)
	balance, err := sink.UnpackGetBalance(encoded)
	require.NoError(err)
	require.Equal("123456789", balance.String())
	require.Equal("0.000000000123456789", superburn.NewAmountTaoFromWei(balance).String())
}
