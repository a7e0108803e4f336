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
	_ codec.Typed  = (*CreatePairResult)(nil)
	_ chain.Action = (*CreatePair)(nil)
)

type CreatePairResult struct {
	PairAddress    codec.Address `serialize:"true" json:"pairAddress"`
	LPTokenAddress codec.Address `serialize:"true" json:"lpTokenAddress"`
}

func (*CreatePairResult) GetTypeID() uint8 {
	return consts.CreatePairID
}

type CreatePair struct {
	TokenA codec.Address `serialize:"true" json:"tokenA"`
	TokenB codec.Address `serialize:"true" json:"tokenB"`
}

// ComputeUnits implements chain.Action.
func (*CreatePair) ComputeUnits(chain.Rules) uint64 {
	return CreatePairComputeUnits
}

// Execute implements chain.Action.
func (c *CreatePair) Execute(ctx context.Context, _ chain.Rules, mu state.Mutable, _ int64, _ codec.Address, _ ids.ID) (codec.Typed, error) {
	if !storage.TokenExists(ctx, mu, c.TokenA) {
		return nil, ErrOutputTokenDoesNotExist
	}
	if !storage.TokenExists(ctx, mu, c.TokenB) {
		return nil, ErrOutputTokenDoesNotExist
	}

	pairAddress, err := storage.PairAddress(c.TokenA, c.TokenB)
	if err != nil {
		return nil, ErrOutputIdenticalTokens
	}
	if storage.PairExists(ctx, mu, pairAddress) {
		return nil, ErrOutputPairAlreadyExists
	}

	token0, token1, err := storage.SortTokens(c.TokenA, c.TokenB)
	if err != nil {
		return nil, ErrOutputIdenticalTokens
	}

	// The LP token is owned by the pair, so only pair mints can issue it
	lpTokenAddress := storage.PairTokenAddress(pairAddress)
	if err := storage.SetTokenInfo(ctx, mu, lpTokenAddress, []byte(storage.PairTokenName), []byte(storage.PairTokenSymbol), []byte(storage.PairTokenMetadata), zeroAmount(), pairAddress); err != nil {
		return nil, err
	}

	pair := &storage.Pair{
		Token0:   token0,
		Token1:   token1,
		LPToken:  lpTokenAddress,
		Reserve0: zeroAmount(),
		Reserve1: zeroAmount(),
	}
	if err := storage.SetPair(ctx, mu, pairAddress, pair); err != nil {
		return nil, err
	}

	return &CreatePairResult{
		PairAddress:    pairAddress,
		LPTokenAddress: lpTokenAddress,
	}, nil
}

// GetTypeID implements chain.Action.
func (*CreatePair) GetTypeID() uint8 {
	return consts.CreatePairID
}

// StateKeys implements chain.Action.
func (c *CreatePair) StateKeys(codec.Address) state.Keys {
	keys := state.Keys{
		string(storage.TokenInfoKey(c.TokenA)): state.Read,
		string(storage.TokenInfoKey(c.TokenB)): state.Read,
	}
	pairAddress, err := storage.PairAddress(c.TokenA, c.TokenB)
	if err != nil {
		return keys
	}
	keys[string(storage.PairKey(pairAddress))] = state.All
	keys[string(storage.TokenInfoKey(storage.PairTokenAddress(pairAddress)))] = state.All
	return keys
}

// ValidRange implements chain.Action.
func (*CreatePair) ValidRange(chain.Rules) (start int64, end int64) {
	return -1, -1
}
