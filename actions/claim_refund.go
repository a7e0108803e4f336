// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package actions

import (
	"context"

	"github.com/ava-labs/avalanchego/ids"

	"github.com/ava-labs/hypersdk/chain"
	"github.com/ava-labs/hypersdk/codec"
	"github.com/ava-labs/hypersdk/examples/launchvm/consts"
	"github.com/ava-labs/hypersdk/examples/launchvm/storage"
	"github.com/ava-labs/hypersdk/state"
)

var (
	_ codec.Typed  = (*ClaimRefundResult)(nil)
	_ chain.Action = (*ClaimRefund)(nil)
)

type ClaimRefundResult struct {
	Amount []byte `serialize:"true" json:"amount"`
}

func (*ClaimRefundResult) GetTypeID() uint8 {
	return consts.ClaimRefundID
}

// ClaimRefund returns a buyer's net contribution after the deadline passed
// without graduation. The first claim flips the launch to refunding; claims
// are per-buyer and idempotent because the contribution is zeroed before
// paying.
type ClaimRefund struct {
	Token codec.Address `serialize:"true" json:"token"`
}

// ComputeUnits implements chain.Action.
func (*ClaimRefund) ComputeUnits(chain.Rules) uint64 {
	return ClaimRefundComputeUnits
}

// Execute implements chain.Action.
func (c *ClaimRefund) Execute(ctx context.Context, _ chain.Rules, mu state.Mutable, timestamp int64, actor codec.Address, _ ids.ID) (codec.Typed, error) {
	launchAddress := storage.LaunchAddress(c.Token)
	launch, err := storage.GetLaunchNoController(ctx, mu, launchAddress)
	if err != nil {
		return nil, ErrOutputLaunchDoesNotExist
	}
	if launch.Locked {
		return nil, ErrOutputLocked
	}
	if launch.Status == storage.StatusGraduated {
		return nil, ErrOutputRefundNotAvailable
	}
	if launch.Status == storage.StatusActive {
		if timestamp < launch.Deadline {
			return nil, ErrOutputDeadlineNotReached
		}
		launch.Status = storage.StatusRefunding
		if err := storage.SetLaunch(ctx, mu, launchAddress, launch); err != nil {
			return nil, err
		}
	}

	contribution, err := storage.GetContributionNoController(ctx, mu, launchAddress, actor)
	if err != nil {
		return nil, err
	}
	if contribution.IsZero() {
		return nil, ErrOutputNoRefundAvailable
	}

	// Zero before paying
	if err := storage.SetContribution(ctx, mu, launchAddress, actor, zeroAmount()); err != nil {
		return nil, err
	}
	if err := storage.TransferToken(ctx, mu, storage.CoinAddress, launchAddress, actor, contribution); err != nil {
		return nil, err
	}

	return &ClaimRefundResult{
		Amount: encodeAmount(contribution),
	}, nil
}

// GetTypeID implements chain.Action.
func (*ClaimRefund) GetTypeID() uint8 {
	return consts.ClaimRefundID
}

// StateKeys implements chain.Action.
func (c *ClaimRefund) StateKeys(actor codec.Address) state.Keys {
	launchAddress := storage.LaunchAddress(c.Token)
	return state.Keys{
		string(storage.LaunchKey(launchAddress)):                                   state.All,
		string(storage.ContributionKey(launchAddress, actor)):                      state.All,
		string(storage.TokenAccountBalanceKey(storage.CoinAddress, actor)):         state.All,
		string(storage.TokenAccountBalanceKey(storage.CoinAddress, launchAddress)): state.All,
	}
}

// ValidRange implements chain.Action.
func (*ClaimRefund) ValidRange(chain.Rules) (start int64, end int64) {
	return -1, -1
}
