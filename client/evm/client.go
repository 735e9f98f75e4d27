// Package evm talks to the subtensor EVM layer over JSON-RPC.
package evm

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"fmt"
	"math/big"
	"time"

	superburn "github.com/bittensor-church/superburn"
	"github.com/bittensor-church/superburn/sink"
	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/sirupsen/logrus"
)

const (
	// gas limit used when estimation fails for a simple stake call
	FallbackGasLimit = 500_000
	// gas limit used when estimation fails for a batch call
	FallbackBatchGasLimit = 8_000_000

	ReceiptTimeout      = 300 * time.Second
	ReceiptPollInterval = 2 * time.Second
)

// Client for the subtensor EVM layer
type Client struct {
	EthClient *ethclient.Client
	chainId   *big.Int
}

// NewClient dials an EVM JSON-RPC endpoint.
func NewClient(ctx context.Context, rpcUrl string) (*Client, error) {
	ethClient, err := ethclient.DialContext(ctx, rpcUrl)
	if err != nil {
		return nil, fmt.Errorf("dialing %s: %v", rpcUrl, err)
	}
	return &Client{EthClient: ethClient}, nil
}

// ChainID fetches and caches the chain id.
func (client *Client) ChainID(ctx context.Context) (*big.Int, error) {
	if client.chainId != nil {
		return client.chainId, nil
	}
	chainId, err := client.EthClient.ChainID(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching chain id: %v", err)
	}
	client.chainId = chainId
	return chainId, nil
}

// FetchNativeBalance returns the wei balance of an address.
func (client *Client) FetchNativeBalance(ctx context.Context, addr common.Address) (*big.Int, error) {
	balance, err := client.EthClient.BalanceAt(ctx, addr, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get balance for '%v': %v", addr, err)
	}
	return balance, nil
}

// FetchSinkBalance reads Sink.getBalance() from a deployed contract.
func (client *Client) FetchSinkBalance(ctx context.Context, contract common.Address) (*big.Int, error) {
	data, err := sink.PackGetBalance()
	if err != nil {
		return nil, err
	}
	result, err := client.EthClient.CallContract(ctx, ethereum.CallMsg{To: &contract, Data: data}, nil)
	if err != nil {
		return nil, fmt.Errorf("calling getBalance on %s: %v", contract, err)
	}
	return sink.UnpackGetBalance(result)
}

// GasPrice returns the node's suggested gas price, or the forced price when
// forceGwei is set (>0).
func (client *Client) GasPrice(ctx context.Context, forceGwei float64) (*big.Int, error) {
	if forceGwei > 0 {
		price := new(big.Float).Mul(big.NewFloat(forceGwei), big.NewFloat(1e9))
		wei, _ := price.Int(nil)
		logrus.WithField("gas-price-gwei", forceGwei).Info("using forced gas price")
		return wei, nil
	}
	price, err := client.EthClient.SuggestGasPrice(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching gas price: %v", err)
	}
	return price, nil
}

// EstimateGasWithBuffer estimates gas for a call and applies a safety buffer.
// When estimation fails, the fallback limit is used instead of aborting, so a
// revert still surfaces on chain with a receipt to inspect.
func (client *Client) EstimateGasWithBuffer(ctx context.Context, msg ethereum.CallMsg, buffer float64, fallback uint64) uint64 {
	estimate, err := client.EthClient.EstimateGas(ctx, msg)
	if err != nil {
		logrus.WithError(err).WithField("fallback", fallback).Warn("gas estimation failed")
		return fallback
	}
	return ApplyGasBuffer(estimate, buffer)
}

// ApplyGasBuffer scales a gas estimate by a multiplier, e.g. 1.1 for +10%.
func ApplyGasBuffer(estimate uint64, multiplier float64) uint64 {
	if multiplier <= 1.0 {
		return estimate
	}
	// integer math to keep the result deterministic
	precision := uint64(1000)
	return estimate * uint64(multiplier*float64(precision)) / precision
}

// SubmitCall signs a legacy transaction for a contract call with the pending
// nonce and broadcasts it.
func (client *Client) SubmitCall(
	ctx context.Context,
	key *ecdsa.PrivateKey,
	to common.Address,
	data []byte,
	value *big.Int,
	gasLimit uint64,
	gasPrice *big.Int,
) (superburn.TxHash, error) {
	from := crypto.PubkeyToAddress(key.PublicKey)
	chainId, err := client.ChainID(ctx)
	if err != nil {
		return "", err
	}
	// pending nonce avoids "already known" failures when submitting back to back
	nonce, err := client.EthClient.PendingNonceAt(ctx, from)
	if err != nil {
		return "", fmt.Errorf("fetching nonce for %s: %v", from, err)
	}

	ethTx := types.NewTx(&types.LegacyTx{
		Nonce:    nonce,
		GasPrice: gasPrice,
		Gas:      gasLimit,
		To:       &to,
		Value:    value,
		Data:     data,
	})
	signed, err := types.SignTx(ethTx, types.LatestSignerForChainID(chainId), key)
	if err != nil {
		return "", fmt.Errorf("signing transaction: %v", err)
	}

	logrus.WithFields(logrus.Fields{
		"from":  from.Hex(),
		"to":    to.Hex(),
		"nonce": nonce,
		"gas":   gasLimit,
	}).Info("sending transaction")
	if err := client.EthClient.SendTransaction(ctx, signed); err != nil {
		return "", fmt.Errorf("sending transaction '%v': %v", signed.Hash(), err)
	}
	return superburn.TxHash(signed.Hash().Hex()), nil
}

// WaitForReceipt polls until the transaction is mined or the timeout elapses.
func (client *Client) WaitForReceipt(ctx context.Context, txHash superburn.TxHash) (*types.Receipt, error) {
	ctx, cancel := context.WithTimeout(ctx, ReceiptTimeout)
	defer cancel()

	hash := common.HexToHash(string(txHash))
	ticker := time.NewTicker(ReceiptPollInterval)
	defer ticker.Stop()
	for {
		receipt, err := client.EthClient.TransactionReceipt(ctx, hash)
		if err == nil {
			return receipt, nil
		}
		if !errors.Is(err, ethereum.NotFound) {
			return nil, fmt.Errorf("fetching receipt for %s: %v", txHash, err)
		}
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("timed out waiting for receipt of %s", txHash)
		case <-ticker.C:
		}
	}
}

// ExplainRevert replays a failed transaction at its block to recover the
// revert reason.
func (client *Client) ExplainRevert(ctx context.Context, txHash superburn.TxHash, receipt *types.Receipt) string {
	hash := common.HexToHash(string(txHash))
	ethTx, _, err := client.EthClient.TransactionByHash(ctx, hash)
	if err != nil {
		return fmt.Sprintf("could not fetch transaction to replay: %v", err)
	}
	from, err := types.Sender(types.LatestSignerForChainID(ethTx.ChainId()), ethTx)
	if err != nil {
		return fmt.Sprintf("could not recover sender: %v", err)
	}
	msg := ethereum.CallMsg{
		From:  from,
		To:    ethTx.To(),
		Value: ethTx.Value(),
		Data:  ethTx.Data(),
	}
	_, err = client.EthClient.CallContract(ctx, msg, receipt.BlockNumber)
	if err == nil {
		return "call succeeded on replay; no revert reason available"
	}
	if reason, ok := RevertReason(err); ok {
		return reason
	}
	return err.Error()
}

// RevertReason extracts a solidity Error(string) message from an rpc error
// carrying revert data.
func RevertReason(err error) (string, bool) {
	var dataErr interface{ ErrorData() interface{} }
	if !errors.As(err, &dataErr) {
		return "", false
	}
	hexData, ok := dataErr.ErrorData().(string)
	if !ok {
		return "", false
	}
	raw, decodeErr := DecodeRevertData(hexData)
	if decodeErr != nil {
		return "", false
	}
	return raw, true
}

// DecodeRevertData decodes 0x-prefixed ABI-encoded revert data.
func DecodeRevertData(hexData string) (string, error) {
	data := common.FromHex(hexData)
	reason, err := abi.UnpackRevert(data)
	if err != nil {
		return "", fmt.Errorf("raw revert data: %s", hexData)
	}
	return reason, nil
}
