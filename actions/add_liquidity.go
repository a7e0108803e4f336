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
	"github.com/ava-labs/hypersdk/examples/launchvm/pricing"
	"github.com/ava-labs/hypersdk/examples/launchvm/storage"
	"github.com/ava-labs/hypersdk/state"
)

var (
	_ codec.Typed  = (*AddLiquidityResult)(nil)
	_ chain.Action = (*AddLiquidity)(nil)
)

type AddLiquidityResult struct {
	AmountA   []byte `serialize:"true" json:"amountA"`
	AmountB   []byte `serialize:"true" json:"amountB"`
	Liquidity []byte `serialize:"true" json:"liquidity"`
}

func (*AddLiquidityResult) GetTypeID() uint8 {
	return consts.AddLiquidityID
}

// AddLiquidity sizes a proportional deposit from the desired/minimum bounds,
// moves both sides into the pair, and mints LP tokens to [To]. The first
// deposit into an empty pair takes the desired amounts as-is.
type AddLiquidity struct {
	TokenA         codec.Address `serialize:"true" json:"tokenA"`
	TokenB         codec.Address `serialize:"true" json:"tokenB"`
	AmountADesired []byte        `serialize:"true" json:"amountADesired"`
	AmountBDesired []byte        `serialize:"true" json:"amountBDesired"`
	AmountAMin     []byte        `serialize:"true" json:"amountAMin"`
	AmountBMin     []byte        `serialize:"true" json:"amountBMin"`
	To             codec.Address `serialize:"true" json:"to"`
	Deadline       int64         `serialize:"true" json:"deadline"`
}

// ComputeUnits implements chain.Action.
func (*AddLiquidity) ComputeUnits(chain.Rules) uint64 {
	return AddLiquidityComputeUnits
}

// Execute implements chain.Action.
func (a *AddLiquidity) Execute(ctx context.Context, _ chain.Rules, mu state.Mutable, timestamp int64, actor codec.Address, _ ids.ID) (codec.Typed, error) {
	if timestamp > a.Deadline {
		return nil, ErrOutputExpired
	}

	amountADesired, err := decodeAmount(a.AmountADesired)
	if err != nil {
		return nil, err
	}
	amountBDesired, err := decodeAmount(a.AmountBDesired)
	if err != nil {
		return nil, err
	}
	amountAMin, err := decodeAmount(a.AmountAMin)
	if err != nil {
		return nil, err
	}
	amountBMin, err := decodeAmount(a.AmountBMin)
	if err != nil {
		return nil, err
	}
	if amountADesired.IsZero() || amountBDesired.IsZero() {
		return nil, ErrOutputInvalidAmount
	}

	pairAddress, pair, err := getPair(ctx, mu, a.TokenA, a.TokenB)
	if err != nil {
		return nil, err
	}
	if pair.Locked {
		return nil, ErrOutputPairLocked
	}

	reserveA, reserveB := pair.Reserve0, pair.Reserve1
	if a.TokenA != pair.Token0 {
		reserveA, reserveB = pair.Reserve1, pair.Reserve0
	}

	amountA, amountB, err := optimalAmounts(amountADesired, amountBDesired, amountAMin, amountBMin, reserveA, reserveB)
	if err != nil {
		return nil, err
	}

	if err := storage.TransferToken(ctx, mu, a.TokenA, actor, pairAddress, amountA); err != nil {
		return nil, err
	}
	if err := storage.TransferToken(ctx, mu, a.TokenB, actor, pairAddress, amountB); err != nil {
		return nil, err
	}

	pair.Locked = true
	if err := storage.SetPair(ctx, mu, pairAddress, pair); err != nil {
		return nil, err
	}
	liquidity, err := pairMint(ctx, mu, pairAddress, pair, a.To)
	if err != nil {
		return nil, err
	}
	pair.Locked = false
	if err := storage.SetPair(ctx, mu, pairAddress, pair); err != nil {
		return nil, err
	}

	return &AddLiquidityResult{
		AmountA:   encodeAmount(amountA),
		AmountB:   encodeAmount(amountB),
		Liquidity: encodeAmount(liquidity),
	}, nil
}

// GetTypeID implements chain.Action.
func (*AddLiquidity) GetTypeID() uint8 {
	return consts.AddLiquidityID
}

// StateKeys implements chain.Action.
func (a *AddLiquidity) StateKeys(actor codec.Address) state.Keys {
	keys := pairStateKeys(a.TokenA, a.TokenB)
	pairAddress, err := storage.PairAddress(a.TokenA, a.TokenB)
	if err != nil {
		return keys
	}
	lpToken := storage.PairTokenAddress(pairAddress)
	keys[string(storage.TokenAccountBalanceKey(a.TokenA, actor))] = state.All
	keys[string(storage.TokenAccountBalanceKey(a.TokenB, actor))] = state.All
	keys[string(storage.TokenAccountBalanceKey(lpToken, a.To))] = state.All
	return keys
}

// ValidRange implements chain.Action.
func (*AddLiquidity) ValidRange(chain.Rules) (start int64, end int64) {
	return -1, -1
}

// optimalAmounts holds the deposit to the reserve ratio: try B against A's
// desired amount first, fall back to sizing A against B's.
func optimalAmounts(amountADesired, amountBDesired, amountAMin, amountBMin, reserveA, reserveB *uint256.Int) (*uint256.Int, *uint256.Int, error) {
	if reserveA.IsZero() && reserveB.IsZero() {
		return amountADesired, amountBDesired, nil
	}

	amountBOptimal := pricing.Quote(amountADesired, reserveA, reserveB)
	if !amountBOptimal.Gt(amountBDesired) {
		if amountBOptimal.Lt(amountBMin) {
			return nil, nil, ErrOutputInsufficientBAmount
		}
		return amountADesired, amountBOptimal, nil
	}

	amountAOptimal := pricing.Quote(amountBDesired, reserveB, reserveA)
	if amountAOptimal.Gt(amountADesired) {
		return nil, nil, ErrOutputInsufficientAAmount
	}
	if amountAOptimal.Lt(amountAMin) {
		return nil, nil, ErrOutputInsufficientAAmount
	}
	return amountAOptimal, amountBDesired, nil
}
