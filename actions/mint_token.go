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
	_ codec.Typed  = (*MintTokenResult)(nil)
	_ chain.Action = (*MintToken)(nil)
)

type MintTokenResult struct{}

func (*MintTokenResult) GetTypeID() uint8 {
	return consts.MintTokenID
}

type MintToken struct {
	TokenAddress codec.Address `serialize:"true" json:"tokenAddress"`
	To           codec.Address `serialize:"true" json:"to"`
	Value        []byte        `serialize:"true" json:"value"`
}

// ComputeUnits implements chain.Action.
func (*MintToken) ComputeUnits(chain.Rules) uint64 {
	return MintTokenComputeUnits
}

// Execute implements chain.Action.
func (m *MintToken) Execute(ctx context.Context, _ chain.Rules, mu state.Mutable, _ int64, actor codec.Address, _ ids.ID) (codec.Typed, error) {
	value, err := decodeAmount(m.Value)
	if err != nil {
		return nil, err
	}
	if value.IsZero() {
		return nil, ErrOutputInvalidAmount
	}

	_, _, _, _, owner, err := storage.GetTokenInfoNoController(ctx, mu, m.TokenAddress)
	if err != nil {
		return nil, ErrOutputTokenDoesNotExist
	}
	// Only the owner may mint; launch and pair tokens are owned by their
	// launch/pair address, so nobody can inflate them directly.
	if owner != actor {
		return nil, ErrOutputTokenNotOwner
	}

	if err := storage.MintToken(ctx, mu, m.TokenAddress, m.To, value); err != nil {
		return nil, err
	}

	return &MintTokenResult{}, nil
}

// GetTypeID implements chain.Action.
func (*MintToken) GetTypeID() uint8 {
	return consts.MintTokenID
}

// StateKeys implements chain.Action.
func (m *MintToken) StateKeys(codec.Address) state.Keys {
	return state.Keys{
		string(storage.TokenInfoKey(m.TokenAddress)):                 state.All,
		string(storage.TokenAccountBalanceKey(m.TokenAddress, m.To)): state.All,
	}
}

// ValidRange implements chain.Action.
func (*MintToken) ValidRange(chain.Rules) (start int64, end int64) {
	return -1, -1
}
