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
	_ codec.Typed  = (*SwapTokensForExactTokensResult)(nil)
	_ chain.Action = (*SwapTokensForExactTokens)(nil)
)

type SwapTokensForExactTokensResult struct {
	AmountIn []byte `serialize:"true" json:"amountIn"`
}

func (*SwapTokensForExactTokensResult) GetTypeID() uint8 {
	return consts.SwapForExactTokensID
}

// SwapTokensForExactTokens delivers exactly [AmountOut] of the last path
// token for at most [AmountInMax] of the first. The input chain is quoted
// backwards from the desired output.
type SwapTokensForExactTokens struct {
	AmountOut   []byte          `serialize:"true" json:"amountOut"`
	AmountInMax []byte          `serialize:"true" json:"amountInMax"`
	Path        []codec.Address `serialize:"true" json:"path"`
	To          codec.Address   `serialize:"true" json:"to"`
	Deadline    int64           `serialize:"true" json:"deadline"`
}

// ComputeUnits implements chain.Action.
func (*SwapTokensForExactTokens) ComputeUnits(chain.Rules) uint64 {
	return SwapComputeUnits
}

// Execute implements chain.Action.
func (s *SwapTokensForExactTokens) Execute(ctx context.Context, _ chain.Rules, mu state.Mutable, timestamp int64, actor codec.Address, _ ids.ID) (codec.Typed, error) {
	if timestamp > s.Deadline {
		return nil, ErrOutputExpired
	}
	if len(s.Path) < 2 {
		return nil, ErrOutputInvalidPath
	}

	amountOut, err := decodeAmount(s.AmountOut)
	if err != nil {
		return nil, err
	}
	if amountOut.IsZero() {
		return nil, ErrOutputInvalidAmount
	}
	amountInMax, err := decodeAmount(s.AmountInMax)
	if err != nil {
		return nil, err
	}

	amounts, err := getAmountsIn(ctx, mu, amountOut, s.Path)
	if err != nil {
		return nil, err
	}
	amountIn := amounts[0]
	if amountIn.Gt(amountInMax) {
		return nil, ErrOutputExcessiveInputAmount
	}

	firstPair, _, err := getPair(ctx, mu, s.Path[0], s.Path[1])
	if err != nil {
		return nil, err
	}
	if err := storage.TransferToken(ctx, mu, s.Path[0], actor, firstPair, amountIn); err != nil {
		return nil, err
	}
	if err := executeHops(ctx, mu, amounts, s.Path, s.To); err != nil {
		return nil, err
	}

	return &SwapTokensForExactTokensResult{
		AmountIn: encodeAmount(amountIn),
	}, nil
}

// GetTypeID implements chain.Action.
func (*SwapTokensForExactTokens) GetTypeID() uint8 {
	return consts.SwapForExactTokensID
}

// StateKeys implements chain.Action.
func (s *SwapTokensForExactTokens) StateKeys(actor codec.Address) state.Keys {
	return pathStateKeys(actor, s.Path, s.To)
}

// ValidRange implements chain.Action.
func (*SwapTokensForExactTokens) ValidRange(chain.Rules) (start int64, end int64) {
	return -1, -1
}
