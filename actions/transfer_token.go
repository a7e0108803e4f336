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
	_ codec.Typed  = (*TransferTokenResult)(nil)
	_ chain.Action = (*TransferToken)(nil)
)

type TransferTokenResult struct{}

func (*TransferTokenResult) GetTypeID() uint8 {
	return consts.TransferTokenID
}

type TransferToken struct {
	TokenAddress codec.Address `serialize:"true" json:"tokenAddress"`
	To           codec.Address `serialize:"true" json:"to"`
	Value        []byte        `serialize:"true" json:"value"`
}

// ComputeUnits implements chain.Action.
func (*TransferToken) ComputeUnits(chain.Rules) uint64 {
	return TransferTokenComputeUnits
}

// Execute implements chain.Action.
func (t *TransferToken) Execute(ctx context.Context, _ chain.Rules, mu state.Mutable, _ int64, actor codec.Address, _ ids.ID) (codec.Typed, error) {
	value, err := decodeAmount(t.Value)
	if err != nil {
		return nil, err
	}
	if value.IsZero() {
		return nil, ErrOutputInvalidAmount
	}

	if !storage.TokenExists(ctx, mu, t.TokenAddress) {
		return nil, ErrOutputTokenDoesNotExist
	}
	balance, err := storage.GetTokenAccountBalanceNoController(ctx, mu, t.TokenAddress, actor)
	if err != nil {
		return nil, err
	}
	if balance.Lt(value) {
		return nil, ErrOutputInsufficientTokenBalance
	}

	if err := storage.TransferToken(ctx, mu, t.TokenAddress, actor, t.To, value); err != nil {
		return nil, err
	}

	return &TransferTokenResult{}, nil
}

// GetTypeID implements chain.Action.
func (*TransferToken) GetTypeID() uint8 {
	return consts.TransferTokenID
}

// StateKeys implements chain.Action.
func (t *TransferToken) StateKeys(actor codec.Address) state.Keys {
	return state.Keys{
		string(storage.TokenInfoKey(t.TokenAddress)):                  state.Read,
		string(storage.TokenAccountBalanceKey(t.TokenAddress, actor)): state.All,
		string(storage.TokenAccountBalanceKey(t.TokenAddress, t.To)):  state.All,
	}
}

// ValidRange implements chain.Action.
func (*TransferToken) ValidRange(chain.Rules) (start int64, end int64) {
	return -1, -1
}
