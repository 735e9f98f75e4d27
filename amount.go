package superburn

import (
	"fmt"
	"math/big"

	"github.com/shopspring/decimal"
)

// TaoDecimals is the number of decimals of TAO; the base unit is the rao.
const TaoDecimals = 9

// EvmDecimals is the number of decimals TAO carries on the EVM layer, where
// balances and gas costs are denominated in wei.
const EvmDecimals = 18

// AmountRao is a big integer amount in rao, as the chain expects it for tx.
type AmountRao big.Int

// AmountTao is a decimal amount of TAO as a human expects it for readability.
type AmountTao decimal.Decimal

func (amount AmountRao) String() string {
	bigInt := big.Int(amount)
	return bigInt.String()
}

// Int converts an AmountRao into *big.Int
func (amount AmountRao) Int() *big.Int {
	bigInt := big.Int(amount)
	return &bigInt
}

// Uint64 converts an AmountRao into uint64
func (amount AmountRao) Uint64() uint64 {
	bigInt := big.Int(amount)
	return bigInt.Uint64()
}

// Use the underlying big.Int.Cmp()
func (amount *AmountRao) Cmp(other *AmountRao) int {
	return amount.Int().Cmp(other.Int())
}

// Use the underlying big.Int.Add()
func (amount *AmountRao) Add(x *AmountRao) AmountRao {
	sum := new(big.Int)
	sum.Set((*big.Int)(amount))
	return AmountRao(*sum.Add(sum, x.Int()))
}

// Use the underlying big.Int.Mul()
func (amount *AmountRao) Mul(x *AmountRao) AmountRao {
	prod := new(big.Int)
	prod.Set((*big.Int)(amount))
	return AmountRao(*prod.Mul(prod, x.Int()))
}

var zero = big.NewInt(0)

func (amount *AmountRao) IsZero() bool {
	return amount.Int().Cmp(zero) == 0
}

// ToTao converts a rao amount to a decimal TAO amount.
func (amount *AmountRao) ToTao() AmountTao {
	dec := decimal.NewFromBigInt(amount.Int(), -TaoDecimals)
	return AmountTao(dec)
}

// NewAmountRaoFromUint64 creates a new AmountRao from a uint64
func NewAmountRaoFromUint64(u64 uint64) AmountRao {
	bigInt := new(big.Int).SetUint64(u64)
	return AmountRao(*bigInt)
}

// NewAmountRaoFromBigInt copies a *big.Int into an AmountRao
func NewAmountRaoFromBigInt(i *big.Int) AmountRao {
	cpy := new(big.Int).Set(i)
	return AmountRao(*cpy)
}

// NewAmountRaoFromStr creates a new AmountRao from a base-10 string
func NewAmountRaoFromStr(str string) (AmountRao, error) {
	bigInt, ok := new(big.Int).SetString(str, 10)
	if !ok {
		return AmountRao{}, fmt.Errorf("invalid rao amount: %s", str)
	}
	return AmountRao(*bigInt), nil
}

// NewAmountTaoFromStr parses a decimal TAO amount, e.g. "0.05"
func NewAmountTaoFromStr(str string) (AmountTao, error) {
	dec, err := decimal.NewFromString(str)
	if err != nil {
		return AmountTao{}, fmt.Errorf("invalid TAO amount: %s", str)
	}
	return AmountTao(dec), nil
}

func (amount AmountTao) Decimal() decimal.Decimal {
	return decimal.Decimal(amount)
}

func (amount AmountTao) String() string {
	return decimal.Decimal(amount).String()
}

// ToRao converts a decimal TAO amount to its rao base-unit amount,
// truncating anything below 1 rao.
func (amount AmountTao) ToRao() AmountRao {
	raw := decimal.Decimal(amount).Shift(TaoDecimals)
	return AmountRao(*raw.BigInt())
}

// NewAmountTaoFromWei converts an EVM-layer wei amount (18 decimals) to TAO.
func NewAmountTaoFromWei(wei *big.Int) AmountTao {
	return AmountTao(decimal.NewFromBigInt(wei, -EvmDecimals))
}

func (amount AmountTao) MarshalJSON() ([]byte, error) {
	return []byte("\"" + amount.String() + "\""), nil
}
