// Package substrate talks to the subtensor chain directly over substrate RPC.
package substrate

import (
	"context"
	"fmt"

	gsrpc "github.com/centrifuge/go-substrate-rpc-client/v4"
	"github.com/centrifuge/go-substrate-rpc-client/v4/types"
	"github.com/centrifuge/go-substrate-rpc-client/v4/types/codec"
	"github.com/sirupsen/logrus"

	superburn "github.com/bittensor-church/superburn"
	"github.com/bittensor-church/superburn/address"
)

// Storage names under the SubtensorModule pallet. Runtime upgrades
// occasionally move these.
const (
	pallet             = "SubtensorModule"
	storageStakingKeys = "StakingHotkeys"
	storageAlpha       = "Alpha"
)

// Client for the subtensor substrate layer
type Client struct {
	Api  *gsrpc.SubstrateAPI
	meta *types.Metadata
}

// NewClient dials a substrate RPC endpoint and loads the runtime metadata.
func NewClient(rpcUrl string) (*Client, error) {
	api, err := gsrpc.NewSubstrateAPI(rpcUrl)
	if err != nil {
		return nil, fmt.Errorf("dialing %s: %v", rpcUrl, err)
	}
	meta, err := api.RPC.State.GetMetadataLatest()
	if err != nil {
		return nil, fmt.Errorf("fetching metadata: %v", err)
	}
	return &Client{Api: api, meta: meta}, nil
}

// ValidatorStake is one hotkey's stake for a coldkey on a subnet.
type ValidatorStake struct {
	Hotkey superburn.Hotkey
	Amount superburn.AmountRao
}

// FetchValidatorStakes lists the validator hotkeys a coldkey has stake with
// on a netuid, with the staked amount per hotkey. Hotkeys with zero stake on
// the netuid are skipped.
func (client *Client) FetchValidatorStakes(ctx context.Context, coldkey superburn.Address, netuid uint16) ([]ValidatorStake, error) {
	_, coldkeyPub, err := address.Decode(string(coldkey))
	if err != nil {
		return nil, fmt.Errorf("invalid coldkey %s: %w", coldkey, err)
	}

	hotkeysKey, err := types.CreateStorageKey(client.meta, pallet, storageStakingKeys, coldkeyPub[:])
	if err != nil {
		return nil, fmt.Errorf("building %s.%s key: %v", pallet, storageStakingKeys, err)
	}
	var hotkeys []types.AccountID
	ok, err := client.Api.RPC.State.GetStorageLatest(hotkeysKey, &hotkeys)
	if err != nil {
		return nil, fmt.Errorf("querying %s.%s: %v", pallet, storageStakingKeys, err)
	}
	if !ok || len(hotkeys) == 0 {
		return nil, nil
	}
	logrus.WithFields(logrus.Fields{
		"coldkey": coldkey,
		"hotkeys": len(hotkeys),
	}).Debug("found staking hotkeys")

	netuidEnc, err := codec.Encode(types.NewU16(netuid))
	if err != nil {
		return nil, err
	}

	stakes := []ValidatorStake{}
	for _, hotkey := range hotkeys {
		stakeKey, err := types.CreateStorageKey(client.meta, pallet, storageAlpha, hotkey[:], coldkeyPub[:], netuidEnc)
		if err != nil {
			return nil, fmt.Errorf("building %s.%s key: %v", pallet, storageAlpha, err)
		}
		var amount types.U64
		ok, err := client.Api.RPC.State.GetStorageLatest(stakeKey, &amount)
		if err != nil {
			return nil, fmt.Errorf("querying %s.%s: %v", pallet, storageAlpha, err)
		}
		if !ok || amount == 0 {
			continue
		}
		var hk superburn.Hotkey
		copy(hk[:], hotkey[:])
		stakes = append(stakes, ValidatorStake{
			Hotkey: hk,
			Amount: superburn.NewAmountRaoFromUint64(uint64(amount)),
		})
	}
	return stakes, nil
}

// TotalStake sums the amounts of a stake listing.
func TotalStake(stakes []ValidatorStake) superburn.AmountRao {
	total := superburn.NewAmountRaoFromUint64(0)
	for _, stake := range stakes {
		total = total.Add(&stake.Amount)
	}
	return total
}
