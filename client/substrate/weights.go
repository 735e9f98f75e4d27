package substrate

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/centrifuge/go-substrate-rpc-client/v4/types"
	"github.com/centrifuge/go-substrate-rpc-client/v4/types/codec"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/blake2b"
)

const (
	callSetWeights = "SubtensorModule.set_weights"
	// u16::MAX, the fixed-point scale the pallet expects
	maxWeight = 0xffff
)

// NormalizeWeights scales weights so they sum to 1.0. All weights must be
// non-negative and at least one must be positive.
func NormalizeWeights(weights []float64) ([]float64, error) {
	sum := 0.0
	for _, weight := range weights {
		if weight < 0 {
			return nil, fmt.Errorf("negative weight: %f", weight)
		}
		sum += weight
	}
	if sum <= 0 {
		return nil, errors.New("weights sum to zero")
	}
	normalized := make([]float64, len(weights))
	for i, weight := range weights {
		normalized[i] = weight / sum
	}
	return normalized, nil
}

// WeightsToFixed converts float weights to the u16 fixed-point form the
// pallet expects: the largest weight maps to 65535, the rest scale linearly.
func WeightsToFixed(weights []float64) ([]uint16, error) {
	max := 0.0
	for _, weight := range weights {
		if weight < 0 {
			return nil, fmt.Errorf("negative weight: %f", weight)
		}
		if weight > max {
			max = weight
		}
	}
	if max <= 0 {
		return nil, errors.New("weights sum to zero")
	}
	fixed := make([]uint16, len(weights))
	for i, weight := range weights {
		fixed[i] = uint16(math.Round(weight / max * maxWeight))
	}
	return fixed, nil
}

// SetWeightsArgs are the arguments of a SubtensorModule.set_weights call.
type SetWeightsArgs struct {
	Netuid     uint16
	Uids       []uint16
	Weights    []uint16
	VersionKey uint64
}

// SetWeights signs and submits a set_weights extrinsic. When waitFinalized is
// set it blocks until the extrinsic is finalized, otherwise it returns after
// the node accepts it.
func (client *Client) SetWeights(ctx context.Context, signer *Signer, args SetWeightsArgs, waitFinalized bool) error {
	if len(args.Uids) != len(args.Weights) {
		return fmt.Errorf("have %d uids but %d weights", len(args.Uids), len(args.Weights))
	}
	uids := make([]types.U16, len(args.Uids))
	for i, uid := range args.Uids {
		uids[i] = types.NewU16(uid)
	}
	weights := make([]types.U16, len(args.Weights))
	for i, weight := range args.Weights {
		weights[i] = types.NewU16(weight)
	}

	call, err := types.NewCall(client.meta, callSetWeights,
		types.NewU16(args.Netuid), uids, weights, types.NewU64(args.VersionKey))
	if err != nil {
		return fmt.Errorf("building %s call: %v", callSetWeights, err)
	}
	ext := types.NewExtrinsic(call)

	genesisHash, err := client.Api.RPC.Chain.GetBlockHash(0)
	if err != nil {
		return fmt.Errorf("fetching genesis hash: %v", err)
	}
	runtimeVersion, err := client.Api.RPC.State.GetRuntimeVersionLatest()
	if err != nil {
		return fmt.Errorf("fetching runtime version: %v", err)
	}
	nonce, err := client.accountNonce(signer)
	if err != nil {
		return err
	}

	opts := types.SignatureOptions{
		BlockHash:          genesisHash,
		Era:                types.ExtrinsicEra{IsImmortalEra: true},
		GenesisHash:        genesisHash,
		Nonce:              types.NewUCompactFromUInt(uint64(nonce)),
		SpecVersion:        runtimeVersion.SpecVersion,
		Tip:                types.NewUCompactFromUInt(0),
		TransactionVersion: runtimeVersion.TransactionVersion,
	}
	if err := signExtrinsic(&ext, signer, opts); err != nil {
		return fmt.Errorf("signing extrinsic: %v", err)
	}

	if !waitFinalized {
		hash, err := client.Api.RPC.Author.SubmitExtrinsic(ext)
		if err != nil {
			return fmt.Errorf("submitting extrinsic: %v", err)
		}
		logrus.WithField("hash", hash.Hex()).Info("extrinsic submitted")
		return nil
	}

	sub, err := client.Api.RPC.Author.SubmitAndWatchExtrinsic(ext)
	if err != nil {
		return fmt.Errorf("submitting extrinsic: %v", err)
	}
	defer sub.Unsubscribe()
	for {
		select {
		case status := <-sub.Chan():
			if status.IsInBlock {
				logrus.WithField("block", status.AsInBlock.Hex()).Info("extrinsic in block")
			}
			if status.IsFinalized {
				logrus.WithField("block", status.AsFinalized.Hex()).Info("extrinsic finalized")
				return nil
			}
			if status.IsDropped || status.IsInvalid || status.IsUsurped {
				return fmt.Errorf("extrinsic was rejected by the chain")
			}
		case err := <-sub.Err():
			return fmt.Errorf("watching extrinsic: %v", err)
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (client *Client) accountNonce(signer *Signer) (uint32, error) {
	pubkey, err := signer.PublicKey()
	if err != nil {
		return 0, err
	}
	key, err := types.CreateStorageKey(client.meta, "System", "Account", pubkey[:])
	if err != nil {
		return 0, fmt.Errorf("building System.Account key: %v", err)
	}
	var info types.AccountInfo
	ok, err := client.Api.RPC.State.GetStorageLatest(key, &info)
	if err != nil {
		return 0, fmt.Errorf("querying System.Account: %v", err)
	}
	if !ok {
		// fresh account
		return 0, nil
	}
	return uint32(info.Nonce), nil
}

// signExtrinsic signs in place with our sr25519 signer. Payloads over 256
// bytes are signed through their blake2b-256 hash, per the substrate rule.
func signExtrinsic(ext *types.Extrinsic, signer *Signer, opts types.SignatureOptions) error {
	if ext.Type() != types.ExtrinsicVersion4 {
		return fmt.Errorf("unsupported extrinsic version: %v", ext.Version)
	}
	methodBytes, err := codec.Encode(ext.Method)
	if err != nil {
		return err
	}
	payload := types.ExtrinsicPayloadV4{
		ExtrinsicPayloadV3: types.ExtrinsicPayloadV3{
			Method:      methodBytes,
			Era:         opts.Era,
			Nonce:       opts.Nonce,
			Tip:         opts.Tip,
			SpecVersion: opts.SpecVersion,
			GenesisHash: opts.GenesisHash,
			BlockHash:   opts.BlockHash,
		},
		TransactionVersion: opts.TransactionVersion,
	}
	data, err := codec.Encode(payload)
	if err != nil {
		return err
	}
	if len(data) > 256 {
		digest := blake2b.Sum256(data)
		data = digest[:]
	}
	sigBytes, err := signer.Sign(data)
	if err != nil {
		return err
	}
	pubkey, err := signer.PublicKey()
	if err != nil {
		return err
	}
	signerAddress, err := types.NewMultiAddressFromAccountID(pubkey[:])
	if err != nil {
		return err
	}

	ext.Signature = types.ExtrinsicSignatureV4{
		Signer:    signerAddress,
		Signature: types.MultiSignature{IsSr25519: true, AsSr25519: types.NewSignature(sigBytes)},
		Era:       opts.Era,
		Nonce:     opts.Nonce,
		Tip:       opts.Tip,
	}
	ext.Version |= types.ExtrinsicBitSigned
	return nil
}
