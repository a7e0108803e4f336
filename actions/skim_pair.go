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
	_ codec.Typed  = (*SkimPairResult)(nil)
	_ chain.Action = (*SkimPair)(nil)
)

type SkimPairResult struct {
	Amount0 []byte `serialize:"true" json:"amount0"`
	Amount1 []byte `serialize:"true" json:"amount1"`
}

func (*SkimPairResult) GetTypeID() uint8 {
	return consts.SkimPairID
}

// SkimPair pays out whatever the pair holds above its reserves, the inverse
// of SyncPair.
type SkimPair struct {
	TokenA codec.Address `serialize:"true" json:"tokenA"`
	TokenB codec.Address `serialize:"true" json:"tokenB"`
	To     codec.Address `serialize:"true" json:"to"`
}

// ComputeUnits implements chain.Action.
func (*SkimPair) ComputeUnits(chain.Rules) uint64 {
	return SkimPairComputeUnits
}

// Execute implements chain.Action.
func (s *SkimPair) Execute(ctx context.Context, _ chain.Rules, mu state.Mutable, _ int64, _ codec.Address, _ ids.ID) (codec.Typed, error) {
	pairAddress, pair, err := getPair(ctx, mu, s.TokenA, s.TokenB)
	if err != nil {
		return nil, err
	}

	balance0, balance1, err := pairBalances(ctx, mu, pairAddress, pair)
	if err != nil {
		return nil, err
	}

	excess0 := new(uint256.Int)
	if balance0.Gt(pair.Reserve0) {
		excess0.Sub(balance0, pair.Reserve0)
	}
	excess1 := new(uint256.Int)
	if balance1.Gt(pair.Reserve1) {
		excess1.Sub(balance1, pair.Reserve1)
	}

	if !excess0.IsZero() {
		if err := storage.TransferToken(ctx, mu, pair.Token0, pairAddress, s.To, excess0); err != nil {
			return nil, err
		}
	}
	if !excess1.IsZero() {
		if err := storage.TransferToken(ctx, mu, pair.Token1, pairAddress, s.To, excess1); err != nil {
			return nil, err
		}
	}

	return &SkimPairResult{
		Amount0: encodeAmount(excess0),
		Amount1: encodeAmount(excess1),
	}, nil
}

// GetTypeID implements chain.Action.
func (*SkimPair) GetTypeID() uint8 {
	return consts.SkimPairID
}

// StateKeys implements chain.Action.
func (s *SkimPair) StateKeys(codec.Address) state.Keys {
	keys := pairStateKeys(s.TokenA, s.TokenB)
	keys[string(storage.TokenAccountBalanceKey(s.TokenA, s.To))] = state.All
	keys[string(storage.TokenAccountBalanceKey(s.TokenB, s.To))] = state.All
	return keys
}

// ValidRange implements chain.Action.
func (*SkimPair) ValidRange(chain.Rules) (start int64, end int64) {
	return -1, -1
}
