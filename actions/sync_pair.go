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
	_ codec.Typed  = (*SyncPairResult)(nil)
	_ chain.Action = (*SyncPair)(nil)
)

type SyncPairResult struct {
	Reserve0 []byte `serialize:"true" json:"reserve0"`
	Reserve1 []byte `serialize:"true" json:"reserve1"`
}

func (*SyncPairResult) GetTypeID() uint8 {
	return consts.SyncPairID
}

// SyncPair force-matches the reserves to the pair's actual balances,
// absorbing direct transfers into pricing.
type SyncPair struct {
	TokenA codec.Address `serialize:"true" json:"tokenA"`
	TokenB codec.Address `serialize:"true" json:"tokenB"`
}

// ComputeUnits implements chain.Action.
func (*SyncPair) ComputeUnits(chain.Rules) uint64 {
	return SyncPairComputeUnits
}

// Execute implements chain.Action.
func (s *SyncPair) Execute(ctx context.Context, _ chain.Rules, mu state.Mutable, _ int64, _ codec.Address, _ ids.ID) (codec.Typed, error) {
	pairAddress, pair, err := getPair(ctx, mu, s.TokenA, s.TokenB)
	if err != nil {
		return nil, err
	}

	balance0, balance1, err := pairBalances(ctx, mu, pairAddress, pair)
	if err != nil {
		return nil, err
	}

	pair.Reserve0 = balance0
	pair.Reserve1 = balance1
	if err := storage.SetPair(ctx, mu, pairAddress, pair); err != nil {
		return nil, err
	}

	return &SyncPairResult{
		Reserve0: encodeAmount(balance0),
		Reserve1: encodeAmount(balance1),
	}, nil
}

// GetTypeID implements chain.Action.
func (*SyncPair) GetTypeID() uint8 {
	return consts.SyncPairID
}

// StateKeys implements chain.Action.
func (s *SyncPair) StateKeys(codec.Address) state.Keys {
	return pairStateKeys(s.TokenA, s.TokenB)
}

// ValidRange implements chain.Action.
func (*SyncPair) ValidRange(chain.Rules) (start int64, end int64) {
	return -1, -1
}
