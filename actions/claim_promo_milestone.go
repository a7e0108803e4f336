// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package actions

import (
	"context"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/holiman/uint256"

	"github.com/ava-labs/hypersdk/chain"
	"github.com/ava-labs/hypersdk/codec"
	"github.com/ava-labs/hypersdk/examples/launchvm/consts"
	"github.com/ava-labs/hypersdk/examples/launchvm/storage"
	"github.com/ava-labs/hypersdk/state"
)

var (
	_ codec.Typed  = (*ClaimPromoMilestoneResult)(nil)
	_ chain.Action = (*ClaimPromoMilestone)(nil)
)

type ClaimPromoMilestoneResult struct {
	Amount []byte `serialize:"true" json:"amount"`
	Tier   uint64 `serialize:"true" json:"tier"`
}

func (*ClaimPromoMilestoneResult) GetTypeID() uint8 {
	return consts.ClaimPromoMilestoneID
}

// ClaimPromoMilestone releases escrowed promo budget to the creator as the
// raise crosses 25/50/75/100% of the graduation threshold. Claims are
// cumulative: each claim pays the entitled-so-far minus what was already
// released.
type ClaimPromoMilestone struct {
	Token codec.Address `serialize:"true" json:"token"`
}

// ComputeUnits implements chain.Action.
func (*ClaimPromoMilestone) ComputeUnits(chain.Rules) uint64 {
	return ClaimPromoMilestoneComputeUnits
}

// Execute implements chain.Action.
func (c *ClaimPromoMilestone) Execute(ctx context.Context, _ chain.Rules, mu state.Mutable, _ int64, actor codec.Address, _ ids.ID) (codec.Typed, error) {
	launchAddress := storage.LaunchAddress(c.Token)
	launch, err := storage.GetLaunchNoController(ctx, mu, launchAddress)
	if err != nil {
		return nil, ErrOutputLaunchDoesNotExist
	}
	if launch.Creator != actor {
		return nil, ErrOutputUnauthorized
	}

	tier := milestoneTier(launch.FundsRaised, launch.GraduationThreshold)
	entitled := new(uint256.Int).Mul(launch.PromoBudget, uint256.NewInt(tier))
	entitled.Div(entitled, uint256.NewInt(100))

	claimable := new(uint256.Int)
	if entitled.Gt(launch.PromoReleased) {
		claimable.Sub(entitled, launch.PromoReleased)
	}
	if claimable.IsZero() {
		return nil, ErrOutputMilestoneNotUnlocked
	}

	launch.PromoReleased = new(uint256.Int).Add(launch.PromoReleased, claimable)
	if err := storage.SetLaunch(ctx, mu, launchAddress, launch); err != nil {
		return nil, err
	}
	if err := storage.TransferToken(ctx, mu, storage.CoinAddress, launchAddress, actor, claimable); err != nil {
		return nil, err
	}

	return &ClaimPromoMilestoneResult{
		Amount: encodeAmount(claimable),
		Tier:   tier,
	}, nil
}

// GetTypeID implements chain.Action.
func (*ClaimPromoMilestone) GetTypeID() uint8 {
	return consts.ClaimPromoMilestoneID
}

// StateKeys implements chain.Action.
func (c *ClaimPromoMilestone) StateKeys(actor codec.Address) state.Keys {
	launchAddress := storage.LaunchAddress(c.Token)
	return state.Keys{
		string(storage.LaunchKey(launchAddress)):                                   state.All,
		string(storage.TokenAccountBalanceKey(storage.CoinAddress, actor)):         state.All,
		string(storage.TokenAccountBalanceKey(storage.CoinAddress, launchAddress)): state.All,
	}
}

// ValidRange implements chain.Action.
func (*ClaimPromoMilestone) ValidRange(chain.Rules) (start int64, end int64) {
	return -1, -1
}

// milestoneTier maps raise progress against the threshold to the highest
// unlocked tier in {0, 25, 50, 75, 100}.
func milestoneTier(raised *uint256.Int, threshold *uint256.Int) uint64 {
	if threshold.IsZero() {
		return 0
	}
	pct := new(uint256.Int).Mul(raised, uint256.NewInt(100))
	pct.Div(pct, threshold)
	progress := pct.Uint64()
	if pct.GtUint64(100) {
		progress = 100
	}
	for _, tier := range promoTiers {
		if progress >= tier {
			return tier
		}
	}
	return 0
}
