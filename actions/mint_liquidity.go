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
	_ codec.Typed  = (*MintLiquidityResult)(nil)
	_ chain.Action = (*MintLiquidity)(nil)
)

type MintLiquidityResult struct {
	Liquidity []byte `serialize:"true" json:"liquidity"`
}

func (*MintLiquidityResult) GetTypeID() uint8 {
	return consts.MintLiquidityID
}

// MintLiquidity issues LP tokens against the deposit already transferred to
// the pair (deposit-then-call). AddLiquidity wraps this with amount sizing;
// calling it directly donates any non-proportional excess.
type MintLiquidity struct {
	TokenA codec.Address `serialize:"true" json:"tokenA"`
	TokenB codec.Address `serialize:"true" json:"tokenB"`
	To     codec.Address `serialize:"true" json:"to"`
}

// ComputeUnits implements chain.Action.
func (*MintLiquidity) ComputeUnits(chain.Rules) uint64 {
	return MintLiquidityComputeUnits
}

// Execute implements chain.Action.
func (m *MintLiquidity) Execute(ctx context.Context, _ chain.Rules, mu state.Mutable, _ int64, _ codec.Address, _ ids.ID) (codec.Typed, error) {
	pairAddress, pair, err := getPair(ctx, mu, m.TokenA, m.TokenB)
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

	liquidity, err := pairMint(ctx, mu, pairAddress, pair, m.To)
	if err != nil {
		return nil, err
	}

	pair.Locked = false
	if err := storage.SetPair(ctx, mu, pairAddress, pair); err != nil {
		return nil, err
	}

	return &MintLiquidityResult{
		Liquidity: encodeAmount(liquidity),
	}, nil
}

// GetTypeID implements chain.Action.
func (*MintLiquidity) GetTypeID() uint8 {
	return consts.MintLiquidityID
}

// StateKeys implements chain.Action.
func (m *MintLiquidity) StateKeys(codec.Address) state.Keys {
	keys := pairStateKeys(m.TokenA, m.TokenB)
	pairAddress, err := storage.PairAddress(m.TokenA, m.TokenB)
	if err != nil {
		return keys
	}
	lpToken := storage.PairTokenAddress(pairAddress)
	keys[string(storage.TokenAccountBalanceKey(lpToken, m.To))] = state.All
	return keys
}

// ValidRange implements chain.Action.
func (*MintLiquidity) ValidRange(chain.Rules) (start int64, end int64) {
	return -1, -1
}
