package evm_test

import (
	"testing"

	"github.com/bittensor-church/superburn/client/evm"
	"github.com/stretchr/testify/require"
)

func TestApplyGasBuffer(t *testing.T) {
	require := require.New(t)

	require.Equal(uint64(110_000), evm.ApplyGasBuffer(100_000, 1.1))
	require.Equal(uint64(120_000), evm.ApplyGasBuffer(100_000, 1.2))
	// no buffer below 1.0
	require.Equal(uint64(100_000), evm.ApplyGasBuffer(100_000, 0.5))
	require.Equal(uint64(100_000), evm.ApplyGasBuffer(100_000, 1.0))
	require.Equal(uint64(0), evm.ApplyGasBuffer(0, 1.2))
}

func TestDecodeRevertData(t *testing.T) {
	require := require.New(t)

	// Error("insufficient stake"): selector 0x08c379a0 + offset + length + data
	encoded := "0x08c379a0" +
		"0000000000000000000000000000000000000000000000000000000000000020" +
		"0000000000000000000000000000000000000000000000000000000000000012" +
		"696e73756666696369656e74207374616b650000000000000000000000000000"
	reason, err := evm.DecodeRevertData(encoded)
	require.NoError(err)
	require.Equal("insufficient stake", reason)

	// custom error selectors are reported raw
	_, err = evm.DecodeRevertData("0xdeadbeef")
	require.ErrorContains(err, "raw revert data: 0xdeadbeef")
}
