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
	_ codec.Typed  = (*SwapExactTokensForTokensResult)(nil)
	_ chain.Action = (*SwapExactTokensForTokens)(nil)
)

type SwapExactTokensForTokensResult struct {
	AmountOut []byte `serialize:"true" json:"amountOut"`
}

func (*SwapExactTokensForTokensResult) GetTypeID() uint8 {
	return consts.SwapExactTokensID
}

// SwapExactTokensForTokens spends exactly [AmountIn] of the first path token
// and requires at least [AmountOutMin] of the last. Quotes for every hop are
// computed up front, then the input moves to the first pair and each hop's
// output chains to the next.
type SwapExactTokensForTokens struct {
	AmountIn     []byte          `serialize:"true" json:"amountIn"`
	AmountOutMin []byte          `serialize:"true" json:"amountOutMin"`
	Path         []codec.Address `serialize:"true" json:"path"`
	To           codec.Address   `serialize:"true" json:"to"`
	Deadline     int64           `serialize:"true" json:"deadline"`
}

// ComputeUnits implements chain.Action.
func (*SwapExactTokensForTokens) ComputeUnits(chain.Rules) uint64 {
	return SwapComputeUnits
}

// Execute implements chain.Action.
func (s *SwapExactTokensForTokens) Execute(ctx context.Context, _ chain.Rules, mu state.Mutable, timestamp int64, actor codec.Address, _ ids.ID) (codec.Typed, error) {
	if timestamp > s.Deadline {
		return nil, ErrOutputExpired
	}
	if len(s.Path) < 2 {
		return nil, ErrOutputInvalidPath
	}

	amountIn, err := decodeAmount(s.AmountIn)
	if err != nil {
		return nil, err
	}
	if amountIn.IsZero() {
		return nil, ErrOutputInvalidAmount
	}
	amountOutMin, err := decodeAmount(s.AmountOutMin)
	if err != nil {
		return nil, err
	}

	amounts, err := getAmountsOut(ctx, mu, amountIn, s.Path)
	if err != nil {
		return nil, err
	}
	amountOut := amounts[len(amounts)-1]
	if amountOut.Lt(amountOutMin) {
		return nil, ErrOutputInsufficientOutputAmount
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

	return &SwapExactTokensForTokensResult{
		AmountOut: encodeAmount(amountOut),
	}, nil
}

// GetTypeID implements chain.Action.
func (*SwapExactTokensForTokens) GetTypeID() uint8 {
	return consts.SwapExactTokensID
}

// StateKeys implements chain.Action.
func (s *SwapExactTokensForTokens) StateKeys(actor codec.Address) state.Keys {
	return pathStateKeys(actor, s.Path, s.To)
}

// ValidRange implements chain.Action.
func (*SwapExactTokensForTokens) ValidRange(chain.Rules) (start int64, end int64) {
	return -1, -1
}
