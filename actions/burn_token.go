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
	_ codec.Typed  = (*BurnTokenResult)(nil)
	_ chain.Action = (*BurnToken)(nil)
)

type BurnTokenResult struct{}

func (*BurnTokenResult) GetTypeID() uint8 {
	return consts.BurnTokenID
}

type BurnToken struct {
	TokenAddress codec.Address `serialize:"true" json:"tokenAddress"`
	Value        []byte        `serialize:"true" json:"value"`
}

// ComputeUnits implements chain.Action.
func (*BurnToken) ComputeUnits(chain.Rules) uint64 {
	return BurnTokenComputeUnits
}

// Execute implements chain.Action.
func (b *BurnToken) Execute(ctx context.Context, _ chain.Rules, mu state.Mutable, _ int64, actor codec.Address, _ ids.ID) (codec.Typed, error) {
	value, err := decodeAmount(b.Value)
	if err != nil {
		return nil, err
	}
	if value.IsZero() {
		return nil, ErrOutputInvalidAmount
	}

	if !storage.TokenExists(ctx, mu, b.TokenAddress) {
		return nil, ErrOutputTokenDoesNotExist
	}
	// Check that actor does not burn more than what they currently have
	balance, err := storage.GetTokenAccountBalanceNoController(ctx, mu, b.TokenAddress, actor)
	if err != nil {
		return nil, err
	}
	if balance.Lt(value) {
		return nil, ErrOutputInsufficientTokenBalance
	}

	if err := storage.BurnToken(ctx, mu, b.TokenAddress, actor, value); err != nil {
		return nil, err
	}

	return &BurnTokenResult{}, nil
}

// GetTypeID implements chain.Action.
func (*BurnToken) GetTypeID() uint8 {
	return consts.BurnTokenID
}

// StateKeys implements chain.Action.
func (b *BurnToken) StateKeys(actor codec.Address) state.Keys {
	return state.Keys{
		string(storage.TokenInfoKey(b.TokenAddress)):                  state.All,
		string(storage.TokenAccountBalanceKey(b.TokenAddress, actor)): state.All,
	}
}

// ValidRange implements chain.Action.
func (*BurnToken) ValidRange(chain.Rules) (start int64, end int64) {
	return -1, -1
}
