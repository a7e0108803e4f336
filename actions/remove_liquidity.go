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
	_ codec.Typed  = (*RemoveLiquidityResult)(nil)
	_ chain.Action = (*RemoveLiquidity)(nil)
)

type RemoveLiquidityResult struct {
	AmountA []byte `serialize:"true" json:"amountA"`
	AmountB []byte `serialize:"true" json:"amountB"`
}

func (*RemoveLiquidityResult) GetTypeID() uint8 {
	return consts.RemoveLiquidityID
}

// RemoveLiquidity moves the actor's LP tokens into the pair, burns them, and
// checks the redeemed amounts against the caller's minimums.
type RemoveLiquidity struct {
	TokenA     codec.Address `serialize:"true" json:"tokenA"`
	TokenB     codec.Address `serialize:"true" json:"tokenB"`
	Liquidity  []byte        `serialize:"true" json:"liquidity"`
	AmountAMin []byte        `serialize:"true" json:"amountAMin"`
	AmountBMin []byte        `serialize:"true" json:"amountBMin"`
	To         codec.Address `serialize:"true" json:"to"`
	Deadline   int64         `serialize:"true" json:"deadline"`
}

// ComputeUnits implements chain.Action.
func (*RemoveLiquidity) ComputeUnits(chain.Rules) uint64 {
	return RemoveLiquidityComputeUnits
}

// Execute implements chain.Action.
func (r *RemoveLiquidity) Execute(ctx context.Context, _ chain.Rules, mu state.Mutable, timestamp int64, actor codec.Address, _ ids.ID) (codec.Typed, error) {
	if timestamp > r.Deadline {
		return nil, ErrOutputExpired
	}

	liquidity, err := decodeAmount(r.Liquidity)
	if err != nil {
		return nil, err
	}
	if liquidity.IsZero() {
		return nil, ErrOutputInvalidAmount
	}
	amountAMin, err := decodeAmount(r.AmountAMin)
	if err != nil {
		return nil, err
	}
	amountBMin, err := decodeAmount(r.AmountBMin)
	if err != nil {
		return nil, err
	}

	pairAddress, pair, err := getPair(ctx, mu, r.TokenA, r.TokenB)
	if err != nil {
		return nil, err
	}
	if pair.Locked {
		return nil, ErrOutputPairLocked
	}

	if err := storage.TransferToken(ctx, mu, pair.LPToken, actor, pairAddress, liquidity); err != nil {
		return nil, err
	}

	pair.Locked = true
	if err := storage.SetPair(ctx, mu, pairAddress, pair); err != nil {
		return nil, err
	}
	amount0, amount1, err := pairBurn(ctx, mu, pairAddress, pair, r.To)
	if err != nil {
		return nil, err
	}
	pair.Locked = false
	if err := storage.SetPair(ctx, mu, pairAddress, pair); err != nil {
		return nil, err
	}

	amountA, amountB := amount0, amount1
	if r.TokenA != pair.Token0 {
		amountA, amountB = amount1, amount0
	}
	if amountA.Lt(amountAMin) {
		return nil, ErrOutputInsufficientAAmount
	}
	if amountB.Lt(amountBMin) {
		return nil, ErrOutputInsufficientBAmount
	}

	return &RemoveLiquidityResult{
		AmountA: encodeAmount(amountA),
		AmountB: encodeAmount(amountB),
	}, nil
}

// GetTypeID implements chain.Action.
func (*RemoveLiquidity) GetTypeID() uint8 {
	return consts.RemoveLiquidityID
}

// StateKeys implements chain.Action.
func (r *RemoveLiquidity) StateKeys(actor codec.Address) state.Keys {
	keys := pairStateKeys(r.TokenA, r.TokenB)
	pairAddress, err := storage.PairAddress(r.TokenA, r.TokenB)
	if err != nil {
		return keys
	}
	lpToken := storage.PairTokenAddress(pairAddress)
	keys[string(storage.TokenAccountBalanceKey(lpToken, actor))] = state.All
	keys[string(storage.TokenAccountBalanceKey(r.TokenA, r.To))] = state.All
	keys[string(storage.TokenAccountBalanceKey(r.TokenB, r.To))] = state.All
	return keys
}

// ValidRange implements chain.Action.
func (*RemoveLiquidity) ValidRange(chain.Rules) (start int64, end int64) {
	return -1, -1
}
