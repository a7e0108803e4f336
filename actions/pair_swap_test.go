// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package actions

import (
	"context"
	"testing"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/require"

	"github.com/ava-labs/hypersdk/chain"
	"github.com/ava-labs/hypersdk/chain/chaintest"
	"github.com/ava-labs/hypersdk/codec"
	"github.com/ava-labs/hypersdk/codec/codectest"
	"github.com/ava-labs/hypersdk/examples/launchvm/storage"
	"github.com/ava-labs/hypersdk/state"
	"github.com/ava-labs/hypersdk/state/tstate"
)

func TestPairSwap(t *testing.T) {
	req := require.New(t)
	ts := tstate.New(1)

	addr := codectest.NewRandomAddress()

	pairAddress, err := storage.PairAddress(tokenOneAddress, tokenTwoAddress)
	req.NoError(err)
	lpTokenAddress := storage.PairTokenAddress(pairAddress)
	token0, token1, err := storage.SortTokens(tokenOneAddress, tokenTwoAddress)
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
			string(storage.TokenAccountBalanceKey(token0, addr)):                       state.All,
			string(storage.TokenAccountBalanceKey(token1, addr)):                       state.All,
			string(storage.TokenAccountBalanceKey(token0, pairAddress)):                state.All,
			string(storage.TokenAccountBalanceKey(token1, pairAddress)):                state.All,
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
			TokenAddress: token0,
			To:           pairAddress,
			Value:        amountBytes(10_000),
		},
		&MintToken{
			TokenAddress: token1,
			To:           pairAddress,
			Value:        amountBytes(10_000),
		},
		&MintLiquidity{
			TokenA: tokenOneAddress,
			TokenB: tokenTwoAddress,
			To:     addr,
		},
		&MintToken{
			TokenAddress: token0,
			To:           addr,
			Value:        amountBytes(1_000),
		},
	}
	for _, action := range setupActions {
		_, err := action.Execute(context.Background(), nil, parentState, 0, addr, ids.Empty)
		req.NoError(err)
	}

	unlockPair := func() {
		pair, err := storage.GetPairNoController(context.Background(), parentState, pairAddress)
		req.NoError(err)
		pair.Locked = false
		req.NoError(storage.SetPair(context.Background(), parentState, pairAddress, pair))
	}

	tests := []chaintest.ActionTest{
		{
			Name: "Pair must exist",
			Action: &PairSwap{
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
			Name: "No swap without requested output",
			Action: &PairSwap{
				TokenA:     token0,
				TokenB:     token1,
				Amount0Out: []byte{},
				Amount1Out: []byte{},
				To:         addr,
			},
			ExpectedOutputs: nil,
			ExpectedErr:     ErrOutputInsufficientOutputAmount,
			State:           parentState,
			Actor:           addr,
		},
	}
	for _, tt := range tests {
		tt.Run(context.Background(), t)
	}
	unlockPair()

	tests = []chaintest.ActionTest{
		{
			Name: "No draining a reserve",
			Action: &PairSwap{
				TokenA:     token0,
				TokenB:     token1,
				Amount1Out: amountBytes(10_000),
				To:         addr,
			},
			ExpectedOutputs: nil,
			ExpectedErr:     ErrOutputInsufficientLiquidity,
			State:           parentState,
			Actor:           addr,
		},
	}
	for _, tt := range tests {
		tt.Run(context.Background(), t)
	}
	unlockPair()

	tests = []chaintest.ActionTest{
		{
			Name: "No swap without a deposit",
			Action: &PairSwap{
				TokenA:     token0,
				TokenB:     token1,
				Amount1Out: amountBytes(98),
				To:         addr,
			},
			ExpectedOutputs: nil,
			ExpectedErr:     ErrOutputInsufficientInputAmount,
			State:           parentState,
			Actor:           addr,
		},
	}
	for _, tt := range tests {
		tt.Run(context.Background(), t)
	}
	// The optimistic transfer went through before the invariant check failed;
	// put the output back and unlock.
	req.NoError(storage.TransferToken(context.Background(), parentState, token1, addr, pairAddress, uint256.NewInt(98)))
	unlockPair()

	// Deposit the input up front (deposit-then-call)
	deposit := &TransferToken{
		TokenAddress: token0,
		To:           pairAddress,
		Value:        amountBytes(100),
	}
	_, err = deposit.Execute(context.Background(), nil, parentState, 0, addr, ids.Empty)
	req.NoError(err)

	tests = []chaintest.ActionTest{
		{
			Name: "Underpaying the invariant fails",
			Action: &PairSwap{
				TokenA:     token0,
				TokenB:     token1,
				Amount1Out: amountBytes(99),
				To:         addr,
			},
			ExpectedOutputs: nil,
			ExpectedErr:     ErrOutputK,
			State:           parentState,
			Actor:           addr,
		},
	}
	for _, tt := range tests {
		tt.Run(context.Background(), t)
	}
	req.NoError(storage.TransferToken(context.Background(), parentState, token1, addr, pairAddress, uint256.NewInt(99)))
	unlockPair()

	tests = []chaintest.ActionTest{
		{
			Name: "Fair swap settles against the deposit",
			Action: &PairSwap{
				TokenA:     token0,
				TokenB:     token1,
				Amount1Out: amountBytes(98),
				To:         addr,
			},
			ExpectedOutputs: &PairSwapResult{
				Amount0In: amountBytes(100),
				Amount1In: []byte{},
			},
			ExpectedErr: nil,
			State:       parentState,
			Assertion: func(ctx context.Context, t *testing.T, m state.Mutable) {
				require := require.New(t)
				pair, err := storage.GetPairNoController(ctx, m, pairAddress)
				require.NoError(err)
				require.Equal(uint64(10_100), pair.Reserve0.Uint64())
				require.Equal(uint64(9_902), pair.Reserve1.Uint64())
				require.False(pair.Locked)
				balance1, err := storage.GetTokenAccountBalanceNoController(ctx, m, token1, addr)
				require.NoError(err)
				require.Equal(uint64(98), balance1.Uint64())
				balance0, err := storage.GetTokenAccountBalanceNoController(ctx, m, token0, addr)
				require.NoError(err)
				require.Equal(uint64(900), balance0.Uint64())
			},
			Actor: addr,
		},
	}
	for _, tt := range tests {
		tt.Run(context.Background(), t)
	}
}
