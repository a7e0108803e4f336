// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package actions

import (
	"context"
	"testing"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/stretchr/testify/require"

	"github.com/ava-labs/hypersdk/chain"
	"github.com/ava-labs/hypersdk/chain/chaintest"
	"github.com/ava-labs/hypersdk/codec"
	"github.com/ava-labs/hypersdk/codec/codectest"
	"github.com/ava-labs/hypersdk/examples/launchvm/storage"
	"github.com/ava-labs/hypersdk/state"
	"github.com/ava-labs/hypersdk/state/tstate"
)

func TestSkimAndSyncPair(t *testing.T) {
	req := require.New(t)
	ts := tstate.New(1)

	addr := codectest.NewRandomAddress()

	pairAddress, err := storage.PairAddress(tokenOneAddress, tokenTwoAddress)
	req.NoError(err)
	lpTokenAddress := storage.PairTokenAddress(pairAddress)
	token0, _, err := storage.SortTokens(tokenOneAddress, tokenTwoAddress)
	req.NoError(err)
	unknownPairAddress, err := storage.PairAddress(tokenOneAddress, tokenThreeAddress)
	req.NoError(err)

	parentState := ts.NewView(
		state.Keys{
			string(storage.TokenInfoKey(tokenOneAddress)):                              state.All,
			string(storage.TokenInfoKey(tokenTwoAddress)):                              state.All,
			string(storage.PairKey(pairAddress)):                                       state.All,
			string(storage.PairKey(unknownPairAddress)):                                state.All,
			string(storage.TokenInfoKey(lpTokenAddress)):                               state.All,
			string(storage.TokenAccountBalanceKey(tokenOneAddress, addr)):              state.All,
			string(storage.TokenAccountBalanceKey(tokenTwoAddress, addr)):              state.All,
			string(storage.TokenAccountBalanceKey(tokenOneAddress, pairAddress)):       state.All,
			string(storage.TokenAccountBalanceKey(tokenTwoAddress, pairAddress)):       state.All,
			string(storage.TokenAccountBalanceKey(lpTokenAddress, pairAddress)):        state.All,
			string(storage.TokenAccountBalanceKey(lpTokenAddress, addr)):               state.All,
			string(storage.TokenAccountBalanceKey(lpTokenAddress, codec.EmptyAddress)): state.All,
		},
		chaintest.NewInMemoryStore().Storage,
	)

	setupActions := []chain.Action{
		&CreateToken{
			Name:     []byte(TokenOneName),
			Symbol:   []byte(TokenOneSymbol),
			Metadata: []byte(TokenOneMetadata),
		},
		&CreateToken{
			Name:     []byte(TokenTwoName),
			Symbol:   []byte(TokenTwoSymbol),
			Metadata: []byte(TokenTwoMetadata),
		},
		&CreatePair{
			TokenA: tokenOneAddress,
			TokenB: tokenTwoAddress,
		},
		&MintToken{
			TokenAddress: tokenOneAddress,
			To:           pairAddress,
			Value:        amountBytes(10_000),
		},
		&MintToken{
			TokenAddress: tokenTwoAddress,
			To:           pairAddress,
			Value:        amountBytes(10_000),
		},
		&MintLiquidity{
			TokenA: tokenOneAddress,
			TokenB: tokenTwoAddress,
			To:     addr,
		},
		// Stray transfer above the reserves
		&MintToken{
			TokenAddress: token0,
			To:           pairAddress,
			Value:        amountBytes(500),
		},
	}
	for _, action := range setupActions {
		_, err := action.Execute(context.Background(), nil, parentState, 0, addr, ids.Empty)
		req.NoError(err)
	}

	tests := []chaintest.ActionTest{
		{
			Name: "Skim needs an existing pair",
			Action: &SkimPair{
				TokenA: tokenOneAddress,
				TokenB: tokenThreeAddress,
				To:     addr,
			},
			ExpectedOutputs: nil,
			ExpectedErr:     ErrOutputPairDoesNotExist,
			State:           parentState,
			Actor:           addr,
		},
		{
			Name: "Skim pays out the excess",
			Action: &SkimPair{
				TokenA: tokenOneAddress,
				TokenB: tokenTwoAddress,
				To:     addr,
			},
			ExpectedOutputs: &SkimPairResult{
				Amount0: amountBytes(500),
				Amount1: []byte{},
			},
			ExpectedErr: nil,
			State:       parentState,
			Assertion: func(ctx context.Context, t *testing.T, m state.Mutable) {
				require := require.New(t)
				balance, err := storage.GetTokenAccountBalanceNoController(ctx, m, token0, addr)
				require.NoError(err)
				require.Equal(uint64(500), balance.Uint64())
				pairBalance, err := storage.GetTokenAccountBalanceNoController(ctx, m, token0, pairAddress)
				require.NoError(err)
				require.Equal(uint64(10_000), pairBalance.Uint64())
			},
			Actor: addr,
		},
	}
	for _, tt := range tests {
		tt.Run(context.Background(), t)
	}

	// Another stray transfer, absorbed into the reserves this time
	mint := &MintToken{
		TokenAddress: token0,
		To:           pairAddress,
		Value:        amountBytes(500),
	}
	_, err = mint.Execute(context.Background(), nil, parentState, 0, addr, ids.Empty)
	req.NoError(err)

	tests = []chaintest.ActionTest{
		{
			Name: "Sync needs an existing pair",
			Action: &SyncPair{
				TokenA: tokenOneAddress,
				TokenB: tokenThreeAddress,
			},
			ExpectedOutputs: nil,
			ExpectedErr:     ErrOutputPairDoesNotExist,
			State:           parentState,
			Actor:           addr,
		},
		{
			Name: "Sync absorbs balances into the reserves",
			Action: &SyncPair{
				TokenA: tokenOneAddress,
				TokenB: tokenTwoAddress,
			},
			ExpectedOutputs: &SyncPairResult{
				Reserve0: amountBytes(10_500),
				Reserve1: amountBytes(10_000),
			},
			ExpectedErr: nil,
			State:       parentState,
			Assertion: func(ctx context.Context, t *testing.T, m state.Mutable) {
				require := require.New(t)
				pair, err := storage.GetPairNoController(ctx, m, pairAddress)
				require.NoError(err)
				require.Equal(uint64(10_500), pair.Reserve0.Uint64())
				require.Equal(uint64(10_000), pair.Reserve1.Uint64())
			},
			Actor: addr,
		},
	}
	for _, tt := range tests {
		tt.Run(context.Background(), t)
	}
}
