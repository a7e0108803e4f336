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
	_ codec.Typed  = (*CurveBuyResult)(nil)
	_ chain.Action = (*CurveBuy)(nil)
)

type CurveBuyResult struct {
	TokensOut   []byte `serialize:"true" json:"tokensOut"`
	PlatformFee []byte `serialize:"true" json:"platformFee"`
	CreatorFee  []byte `serialize:"true" json:"creatorFee"`
}

func (*CurveBuyResult) GetTypeID() uint8 {
	return consts.CurveBuyID
}

// CurveBuy spends [Amount] Coin on the bonding curve. Fees come off the top;
// the net amount is quoted at the current spot price and the tokens are
// minted to the buyer. PlatformWallet must match the launch record so the fee
// transfer's state key is declarable up front.
type CurveBuy struct {
	Token          codec.Address `serialize:"true" json:"token"`
	PlatformWallet codec.Address `serialize:"true" json:"platformWallet"`
	Amount         []byte        `serialize:"true" json:"amount"`
}

// ComputeUnits implements chain.Action.
func (*CurveBuy) ComputeUnits(chain.Rules) uint64 {
	return CurveBuyComputeUnits
}

// Execute implements chain.Action.
func (b *CurveBuy) Execute(ctx context.Context, _ chain.Rules, mu state.Mutable, _ int64, actor codec.Address, _ ids.ID) (codec.Typed, error) {
	amount, err := decodeAmount(b.Amount)
	if err != nil {
		return nil, err
	}
	if amount.IsZero() {
		return nil, ErrOutputInvalidAmount
	}

	launchAddress := storage.LaunchAddress(b.Token)
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
	if launch.PlatformWallet != b.PlatformWallet {
		return nil, ErrOutputWrongPlatformWallet
	}

	platformFee := feeOf(amount, launch.PlatformFeeBps)
	creatorFee := feeOf(amount, launch.CreatorFeeBps)
	net := new(uint256.Int).Sub(amount, platformFee)
	net.Sub(net, creatorFee)
	if net.IsZero() {
		return nil, ErrOutputInvalidAmount
	}

	tokens := curves.TokensForFunds(launch.Curve, net, launch.TokensSold, launch.CurveSupply, launch.BasePrice, launch.MaxPrice)
	if tokens.IsZero() {
		return nil, ErrOutputInvalidAmount
	}
	remaining := new(uint256.Int).Sub(launch.CurveSupply, launch.TokensSold)
	if tokens.Gt(remaining) {
		return nil, ErrOutputInsufficientLiquidity
	}

	// Hold the lock while funds move
	launch.Locked = true
	if err := storage.SetLaunch(ctx, mu, launchAddress, launch); err != nil {
		return nil, err
	}

	balance, err := storage.GetTokenAccountBalanceNoController(ctx, mu, storage.CoinAddress, actor)
	if err != nil {
		return nil, err
	}
	if balance.Lt(amount) {
		return nil, ErrOutputInsufficientTokenBalance
	}

	// Net proceeds and the creator's cut stay escrowed with the launch; the
	// platform fee pays out immediately.
	escrow := new(uint256.Int).Add(net, creatorFee)
	if err := storage.TransferToken(ctx, mu, storage.CoinAddress, actor, launchAddress, escrow); err != nil {
		return nil, err
	}
	if !platformFee.IsZero() {
		if err := storage.TransferToken(ctx, mu, storage.CoinAddress, actor, launch.PlatformWallet, platformFee); err != nil {
			return nil, err
		}
	}
	if err := storage.MintToken(ctx, mu, b.Token, actor, tokens); err != nil {
		return nil, err
	}

	contribution, err := storage.GetContributionNoController(ctx, mu, launchAddress, actor)
	if err != nil {
		return nil, err
	}
	if err := storage.SetContribution(ctx, mu, launchAddress, actor, new(uint256.Int).Add(contribution, net)); err != nil {
		return nil, err
	}

	launch.TokensSold = new(uint256.Int).Add(launch.TokensSold, tokens)
	launch.FundsRaised = new(uint256.Int).Add(launch.FundsRaised, net)
	launch.CreatorFees = new(uint256.Int).Add(launch.CreatorFees, creatorFee)
	launch.Locked = false
	if err := storage.SetLaunch(ctx, mu, launchAddress, launch); err != nil {
		return nil, err
	}

	return &CurveBuyResult{
		TokensOut:   encodeAmount(tokens),
		PlatformFee: encodeAmount(platformFee),
		CreatorFee:  encodeAmount(creatorFee),
	}, nil
}

// GetTypeID implements chain.Action.
func (*CurveBuy) GetTypeID() uint8 {
	return consts.CurveBuyID
}

// StateKeys implements chain.Action.
func (b *CurveBuy) StateKeys(actor codec.Address) state.Keys {
	launchAddress := storage.LaunchAddress(b.Token)
	return state.Keys{
		string(storage.LaunchKey(launchAddress)):                                      state.All,
		string(storage.TokenInfoKey(b.Token)):                                         state.All,
		string(storage.TokenAccountBalanceKey(b.Token, actor)):                        state.All,
		string(storage.TokenAccountBalanceKey(storage.CoinAddress, actor)):            state.All,
		string(storage.TokenAccountBalanceKey(storage.CoinAddress, launchAddress)):    state.All,
		string(storage.TokenAccountBalanceKey(storage.CoinAddress, b.PlatformWallet)): state.All,
		string(storage.ContributionKey(launchAddress, actor)):                         state.All,
	}
}

// ValidRange implements chain.Action.
func (*CurveBuy) ValidRange(chain.Rules) (start int64, end int64) {
	return -1, -1
}

// fee = amount * bps / 10000
func feeOf(amount *uint256.Int, bps uint64) *uint256.Int {
	fee := new(uint256.Int).Mul(amount, uint256.NewInt(bps))
	return fee.Div(fee, uint256.NewInt(BpsDenominator))
}
