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
	_ codec.Typed  = (*WithdrawFeesResult)(nil)
	_ chain.Action = (*WithdrawFees)(nil)
)

type WithdrawFeesResult struct {
	Amount []byte `serialize:"true" json:"amount"`
}

func (*WithdrawFeesResult) GetTypeID() uint8 {
	return consts.WithdrawFeesID
}

// WithdrawFees pays the creator their accrued trading fees. Works in every
// launch status: fees were earned on trades that already happened.
type WithdrawFees struct {
	Token codec.Address `serialize:"true" json:"token"`
}

// ComputeUnits implements chain.Action.
func (*WithdrawFees) ComputeUnits(chain.Rules) uint64 {
	return WithdrawFeesComputeUnits
}

// Execute implements chain.Action.
func (w *WithdrawFees) Execute(ctx context.Context, _ chain.Rules, mu state.Mutable, _ int64, actor codec.Address, _ ids.ID) (codec.Typed, error) {
	launchAddress := storage.LaunchAddress(w.Token)
	launch, err := storage.GetLaunchNoController(ctx, mu, launchAddress)
	if err != nil {
		return nil, ErrOutputLaunchDoesNotExist
	}
	if launch.Creator != actor {
		return nil, ErrOutputUnauthorized
	}
	if launch.CreatorFees.IsZero() {
		return nil, ErrOutputNoFeesAccrued
	}

	amount := launch.CreatorFees
	launch.CreatorFees = zeroAmount()
	if err := storage.SetLaunch(ctx, mu, launchAddress, launch); err != nil {
		return nil, err
	}
	if err := storage.TransferToken(ctx, mu, storage.CoinAddress, launchAddress, actor, amount); err != nil {
		return nil, err
	}

	return &WithdrawFeesResult{
		Amount: encodeAmount(amount),
	}, nil
}

// GetTypeID implements chain.Action.
func (*WithdrawFees) GetTypeID() uint8 {
	return consts.WithdrawFeesID
}

// StateKeys implements chain.Action.
func (w *WithdrawFees) StateKeys(actor codec.Address) state.Keys {
	launchAddress := storage.LaunchAddress(w.Token)
	return state.Keys{
		string(storage.LaunchKey(launchAddress)):                                   state.All,
		string(storage.TokenAccountBalanceKey(storage.CoinAddress, actor)):         state.All,
		string(storage.TokenAccountBalanceKey(storage.CoinAddress, launchAddress)): state.All,
	}
}

// ValidRange implements chain.Action.
func (*WithdrawFees) ValidRange(chain.Rules) (start int64, end int64) {
	return -1, -1
}
