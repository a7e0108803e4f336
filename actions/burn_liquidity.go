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
	_ codec.Typed  = (*BurnLiquidityResult)(nil)
	_ chain.Action = (*BurnLiquidity)(nil)
)

type BurnLiquidityResult struct {
	Amount0 []byte `serialize:"true" json:"amount0"`
	Amount1 []byte `serialize:"true" json:"amount1"`
}

func (*BurnLiquidityResult) GetTypeID() uint8 {
	return consts.BurnLiquidityID
}

// BurnLiquidity redeems the LP tokens already transferred to the pair
// (deposit-then-call) and pays both sides to [To].
type BurnLiquidity struct {
	TokenA codec.Address `serialize:"true" json:"tokenA"`
	TokenB codec.Address `serialize:"true" json:"tokenB"`
	To     codec.Address `serialize:"true" json:"to"`
}

// ComputeUnits implements chain.Action.
func (*BurnLiquidity) ComputeUnits(chain.Rules) uint64 {
	return BurnLiquidityComputeUnits
}

// Execute implements chain.Action.
func (b *BurnLiquidity) Execute(ctx context.Context, _ chain.Rules, mu state.Mutable, _ int64, _ codec.Address, _ ids.ID) (codec.Typed, error) {
	pairAddress, pair, err := getPair(ctx, mu, b.TokenA, b.TokenB)
	if err != nil {
		return nil, err
	}
	if pair.Locked {
		return nil, ErrOutputPairLocked
	}

	pair.Locked = true
	if err := storage.SetPair(ctx, mu, pairAddress, pair); err != nil {
		return nil, err
	}

	amount0, amount1, err := pairBurn(ctx, mu, pairAddress, pair, b.To)
	if err != nil {
		return nil, err
	}

	pair.Locked = false
	if err := storage.SetPair(ctx, mu, pairAddress, pair); err != nil {
		return nil, err
	}

	return &BurnLiquidityResult{
		Amount0: encodeAmount(amount0),
		Amount1: encodeAmount(amount1),
	}, nil
}

// GetTypeID implements chain.Action.
func (*BurnLiquidity) GetTypeID() uint8 {
	return consts.BurnLiquidityID
}

// StateKeys implements chain.Action.
func (b *BurnLiquidity) StateKeys(codec.Address) state.Keys {
	keys := pairStateKeys(b.TokenA, b.TokenB)
	keys[string(storage.TokenAccountBalanceKey(b.TokenA, b.To))] = state.All
	keys[string(storage.TokenAccountBalanceKey(b.TokenB, b.To))] = state.All
	return keys
}

// ValidRange implements chain.Action.
func (*BurnLiquidity) ValidRange(chain.Rules) (start int64, end int64) {
	return -1, -1
}
