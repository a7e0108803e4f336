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
	_ codec.Typed  = (*PairSwapResult)(nil)
	_ chain.Action = (*PairSwap)(nil)
)

type PairSwapResult struct {
	Amount0In []byte `serialize:"true" json:"amount0In"`
	Amount1In []byte `serialize:"true" json:"amount1In"`
}

func (*PairSwapResult) GetTypeID() uint8 {
	return consts.PairSwapID
}

// PairSwap is the low-level swap: the trader deposits input to the pair
// first, names the outputs they want, and the invariant check settles
// whether the deposit covered them. The router composes this per hop.
type PairSwap struct {
	TokenA     codec.Address `serialize:"true" json:"tokenA"`
	TokenB     codec.Address `serialize:"true" json:"tokenB"`
	Amount0Out []byte        `serialize:"true" json:"amount0Out"`
	Amount1Out []byte        `serialize:"true" json:"amount1Out"`
	To         codec.Address `serialize:"true" json:"to"`
}

// ComputeUnits implements chain.Action.
func (*PairSwap) ComputeUnits(chain.Rules) uint64 {
	return PairSwapComputeUnits
}

// Execute implements chain.Action.
func (s *PairSwap) Execute(ctx context.Context, _ chain.Rules, mu state.Mutable, _ int64, _ codec.Address, _ ids.ID) (codec.Typed, error) {
	amount0Out, err := decodeAmount(s.Amount0Out)
	if err != nil {
		return nil, err
	}
	amount1Out, err := decodeAmount(s.Amount1Out)
	if err != nil {
		return nil, err
	}

	pairAddress, pair, err := getPair(ctx, mu, s.TokenA, s.TokenB)
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

	amount0In, amount1In, err := pairSwap(ctx, mu, pairAddress, pair, amount0Out, amount1Out, s.To)
	if err != nil {
		return nil, err
	}

	pair.Locked = false
	if err := storage.SetPair(ctx, mu, pairAddress, pair); err != nil {
		return nil, err
	}

	return &PairSwapResult{
		Amount0In: encodeAmount(amount0In),
		Amount1In: encodeAmount(amount1In),
	}, nil
}

// GetTypeID implements chain.Action.
func (*PairSwap) GetTypeID() uint8 {
	return consts.PairSwapID
}

// StateKeys implements chain.Action.
func (s *PairSwap) StateKeys(codec.Address) state.Keys {
	keys := pairStateKeys(s.TokenA, s.TokenB)
	keys[string(storage.TokenAccountBalanceKey(s.TokenA, s.To))] = state.All
	keys[string(storage.TokenAccountBalanceKey(s.TokenB, s.To))] = state.All
	return keys
}

// ValidRange implements chain.Action.
func (*PairSwap) ValidRange(chain.Rules) (start int64, end int64) {
	return -1, -1
}
