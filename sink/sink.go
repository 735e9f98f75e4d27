// Package sink wraps the ABI of the SuperBurn "Sink" contract deployed on the
// subtensor EVM layer.
package sink

import (
	_ "embed"
	"fmt"
	"math/big"
	"strings"

	superburn "github.com/bittensor-church/superburn"
	"github.com/ethereum/go-ethereum/accounts/abi"
)

//go:embed abi.json
var abiJson string

// ABI is the parsed Sink contract ABI.
var ABI abi.ABI

func init() {
	var err error
	ABI, err = abi.JSON(strings.NewReader(abiJson))
	if err != nil {
		panic(err)
	}
}

// PackStake packs Sink.stake(hotkey, netuid, amount).
func PackStake(hotkey superburn.Hotkey, netuid uint16, amount superburn.AmountRao) ([]byte, error) {
	return ABI.Pack("stake", [32]byte(hotkey), new(big.Int).SetUint64(uint64(netuid)), amount.Int())
}

// PackUnstakeAndBurn packs Sink.unstakeAndBurn(hotkeys, netuid, amounts).
func PackUnstakeAndBurn(hotkeys []superburn.Hotkey, netuid uint16, amounts []superburn.AmountRao) ([]byte, error) {
	if len(hotkeys) != len(amounts) {
		return nil, fmt.Errorf("have %d hotkeys but %d amounts", len(hotkeys), len(amounts))
	}
	rawKeys := make([][32]byte, len(hotkeys))
	rawAmounts := make([]*big.Int, len(amounts))
	for i := range hotkeys {
		rawKeys[i] = [32]byte(hotkeys[i])
		rawAmounts[i] = amounts[i].Int()
	}
	return ABI.Pack("unstakeAndBurn", rawKeys, new(big.Int).SetUint64(uint64(netuid)), rawAmounts)
}

// PackRegisterNeuron packs Sink.registerNeuron(netuid, hotkey). The burned
// amount rides along as the transaction value.
func PackRegisterNeuron(netuid uint16, hotkey superburn.Hotkey) ([]byte, error) {
	return ABI.Pack("registerNeuron", netuid, [32]byte(hotkey))
}

// PackGetBalance packs the Sink.getBalance() read call.
func PackGetBalance() ([]byte, error) {
	return ABI.Pack("getBalance")
}

// UnpackGetBalance decodes the Sink.getBalance() result. The contract reports
// its balance in EVM-layer wei, not rao.
func UnpackGetBalance(data []byte) (*big.Int, error) {
	values, err := ABI.Unpack("getBalance", data)
	if err != nil {
		return nil, err
	}
	if len(values) != 1 {
		return nil, fmt.Errorf("expected 1 return value, got %d", len(values))
	}
	balance, ok := values[0].(*big.Int)
	if !ok {
		return nil, fmt.Errorf("unexpected return type %T", values[0])
	}
	return balance, nil
}
