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
	"github.com/ava-labs/hypersdk/examples/launchvm/curves"
	"github.com/ava-labs/hypersdk/examples/launchvm/storage"
	"github.com/ava-labs/hypersdk/state"
)

var (
	_ codec.Typed  = (*CurveSellResult)(nil)
	_ chain.Action = (*CurveSell)(nil)
)

type CurveSellResult struct {
	FundsOut    []byte `serialize:"true" json:"fundsOut"`
	PlatformFee []byte `serialize:"true" json:"platformFee"`
	CreatorFee  []byte `serialize:"true" json:"creatorFee"`
}

func (*CurveSellResult) GetTypeID() uint8 {
	return consts.CurveSellID
}

// CurveSell burns [Amount] launched tokens back into the curve. The gross
// quote uses the midpoint price of the sell range; fees come out of the gross
// and the net pays the seller from the launch escrow.
type CurveSell struct {
	Token          codec.Address `serialize:"true" json:"token"`
	PlatformWallet codec.Address `serialize:"true" json:"platformWallet"`
	Amount         []byte        `serialize:"true" json:"amount"`
}

// ComputeUnits implements chain.Action.
func (*CurveSell) ComputeUnits(chain.Rules) uint64 {
	return CurveSellComputeUnits
}

// Execute implements chain.Action.
func (s *CurveSell) Execute(ctx context.Context, _ chain.Rules, mu state.Mutable, _ int64, actor codec.Address, _ ids.ID) (codec.Typed, error) {
	amount, err := decodeAmount(s.Amount)
	if err != nil {
		return nil, err
	}
	if amount.IsZero() {
		return nil, ErrOutputInvalidAmount
	}

	launchAddress := storage.LaunchAddress(s.Token)
	launch, err := storage.GetLaunchNoController(ctx, mu, launchAddress)
	if err != nil {
		return nil, ErrOutputLaunchDoesNotExist
	}
	if launch.Locked {
		return nil, ErrOutputLocked
	}
	if launch.Status != storage.StatusActive {
		return nil, ErrOutputCurveNotActive
	}
	if launch.PlatformWallet != s.PlatformWallet {
		return nil, ErrOutputWrongPlatformWallet
	}
	if amount.Gt(launch.TokensSold) {
		return nil, ErrOutputInsufficientTokens
	}

	gross := curves.FundsForTokens(launch.Curve, amount, launch.TokensSold, launch.CurveSupply, launch.BasePrice, launch.MaxPrice)
	if gross.IsZero() {
		return nil, ErrOutputInvalidAmount
	}
	// The escrow only holds what buys raised; a gross quote past that cannot
	// be paid out.
	if gross.Gt(launch.FundsRaised) {
		return nil, ErrOutputInsufficientLiquidity
	}

	platformFee := feeOf(gross, launch.PlatformFeeBps)
	creatorFee := feeOf(gross, launch.CreatorFeeBps)
	net := new(uint256.Int).Sub(gross, platformFee)
	net.Sub(net, creatorFee)

	launch.Locked = true
	if err := storage.SetLaunch(ctx, mu, launchAddress, launch); err != nil {
		return nil, err
	}

	balance, err := storage.GetTokenAccountBalanceNoController(ctx, mu, s.Token, actor)
	if err != nil {
		return nil, err
	}
	if balance.Lt(amount) {
		return nil, ErrOutputInsufficientTokenBalance
	}
	if err := storage.BurnToken(ctx, mu, s.Token, actor, amount); err != nil {
		return nil, err
	}

	if !net.IsZero() {
		if err := storage.TransferToken(ctx, mu, storage.CoinAddress, launchAddress, actor, net); err != nil {
			return nil, err
		}
	}
	if !platformFee.IsZero() {
		if err := storage.TransferToken(ctx, mu, storage.CoinAddress, launchAddress, launch.PlatformWallet, platformFee); err != nil {
			return nil, err
		}
	}

	launch.TokensSold = new(uint256.Int).Sub(launch.TokensSold, amount)
	launch.FundsRaised = new(uint256.Int).Sub(launch.FundsRaised, gross)
	launch.CreatorFees = new(uint256.Int).Add(launch.CreatorFees, creatorFee)
	launch.Locked = false
	if err := storage.SetLaunch(ctx, mu, launchAddress, launch); err != nil {
		return nil, err
	}

	return &CurveSellResult{
		FundsOut:    encodeAmount(net),
		PlatformFee: encodeAmount(platformFee),
		CreatorFee:  encodeAmount(creatorFee),
	}, nil
}

// GetTypeID implements chain.Action.
func (*CurveSell) GetTypeID() uint8 {
	return consts.CurveSellID
}

// StateKeys implements chain.Action.
func (s *CurveSell) StateKeys(actor codec.Address) state.Keys {
	launchAddress := storage.LaunchAddress(s.Token)
	return state.Keys{
		string(storage.LaunchKey(launchAddress)):                                      state.All,
		string(storage.TokenInfoKey(s.Token)):                                         state.All,
		string(storage.TokenAccountBalanceKey(s.Token, actor)):                        state.All,
		string(storage.TokenAccountBalanceKey(storage.CoinAddress, actor)):            state.All,
		string(storage.TokenAccountBalanceKey(storage.CoinAddress, launchAddress)):    state.All,
		string(storage.TokenAccountBalanceKey(storage.CoinAddress, s.PlatformWallet)): state.All,
	}
}

// ValidRange implements chain.Action.
func (*CurveSell) ValidRange(chain.Rules) (start int64, end int64) {
	return -1, -1
}
