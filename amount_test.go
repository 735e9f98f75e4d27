package superburn_test

import (
	"testing"

	superburn "github.com/bittensor-church/superburn"
	"github.com/stretchr/testify/require"
)

func TestTaoToRao(t *testing.T) {
	require := require.New(t)

	amount, err := superburn.NewAmountTaoFromStr("0.05")
	require.NoError(err)
	require.Equal("50000000", amount.ToRao().String())

	amount, err = superburn.NewAmountTaoFromStr("12.345678999")
	require.NoError(err)
	require.Equal("12345678999", amount.ToRao().String())

	// below 1 rao truncates
	amount, err = superburn.NewAmountTaoFromStr("0.0000000001")
	require.NoError(err)
	require.Equal("0", amount.ToRao().String())

	_, err = superburn.NewAmountTaoFromStr("not-a-number")
	require.Error(err)
}

func TestRaoToTao(t *testing.T) {
	require := require.New(t)

	amount := superburn.NewAmountRaoFromUint64(1_500_000_000)
	require.Equal("1.5", amount.ToTao().String())

	amount = superburn.NewAmountRaoFromUint64(1)
	require.Equal("0.000000001", amount.ToTao().String())

	amount, err := superburn.NewAmountRaoFromStr("987654321000000000")
	require.NoError(err)
	require.Equal("987654321", amount.ToTao().String())
}

func TestAmountArithmetic(t *testing.T) {
	require := require.New(t)

	a := superburn.NewAmountRaoFromUint64(100)
	b := superburn.NewAmountRaoFromUint64(23)
	sum := a.Add(&b)
	require.Equal(uint64(123), sum.Uint64())
	// operands unchanged
	require.Equal(uint64(100), a.Uint64())

	require.Equal(1, a.Cmp(&b))
	require.False(a.IsZero())
	z := superburn.NewAmountRaoFromUint64(0)
	require.True(z.IsZero())
}
