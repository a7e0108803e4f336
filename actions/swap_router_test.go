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

// routerTestState seeds two pairs (one/two and two/three) with 100,000 on
// each side and gives [addr] the leftover balances.
func routerTestState(t *testing.T, ts *tstate.TState, addr codec.Address) state.Mutable {
	req := require.New(t)

	pairOneTwo, err := storage.PairAddress(tokenOneAddress, tokenTwoAddress)
	req.NoError(err)
	lpOneTwo := storage.PairTokenAddress(pairOneTwo)
	pairTwoThree, err := storage.PairAddress(tokenTwoAddress, tokenThreeAddress)
	req.NoError(err)
	lpTwoThree := storage.PairTokenAddress(pairTwoThree)

	parentState := ts.NewView(
		state.Keys{
			string(storage.TokenInfoKey(tokenOneAddress)):                           state.All,
			string(storage.TokenInfoKey(tokenTwoAddress)):                           state.All,
			string(storage.TokenInfoKey(tokenThreeAddress)):                         state.All,
			string(storage.PairKey(pairOneTwo)):                                     state.All,
			string(storage.PairKey(pairTwoThree)):                                   state.All,
			string(storage.TokenInfoKey(lpOneTwo)):                                  state.All,
			string(storage.TokenInfoKey(lpTwoThree)):                                state.All,
			string(storage.TokenAccountBalanceKey(tokenOneAddress, addr)):           state.All,
			string(storage.TokenAccountBalanceKey(tokenTwoAddress, addr)):           state.All,
			string(storage.TokenAccountBalanceKey(tokenThreeAddress, addr)):         state.All,
			string(storage.TokenAccountBalanceKey(tokenOneAddress, pairOneTwo)):     state.All,
			string(storage.TokenAccountBalanceKey(tokenTwoAddress, pairOneTwo)):     state.All,
			string(storage.TokenAccountBalanceKey(tokenTwoAddress, pairTwoThree)):   state.All,
			string(storage.TokenAccountBalanceKey(tokenThreeAddress, pairTwoThree)): state.All,
			string(storage.TokenAccountBalanceKey(lpOneTwo, pairOneTwo)):            state.All,
			string(storage.TokenAccountBalanceKey(lpTwoThree, pairTwoThree)):        state.All,
			string(storage.TokenAccountBalanceKey(lpOneTwo, addr)):                  state.All,
			string(storage.TokenAccountBalanceKey(lpTwoThree, addr)):                state.All,
			string(storage.TokenAccountBalanceKey(lpOneTwo, codec.EmptyAddress)):    state.All,
			string(storage.TokenAccountBalanceKey(lpTwoThree, codec.EmptyAddress)):  state.All,
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
		&CreateToken{
			Name:     []byte(TokenThreeName),
			Symbol:   []byte(TokenThreeSymbol),
			Metadata: []byte(TokenThreeMetadata),
		},
		&MintToken{
			TokenAddress: tokenOneAddress,
			To:           addr,
			Value:        amountBytes(1_000_000),
		},
		&MintToken{
			TokenAddress: tokenTwoAddress,
			To:           addr,
			Value:        amountBytes(1_000_000),
		},
		&MintToken{
			TokenAddress: tokenThreeAddress,
			To:           addr,
			Value:        amountBytes(1_000_000),
		},
		&CreatePair{
			TokenA: tokenOneAddress,
			TokenB: tokenTwoAddress,
		},
		&CreatePair{
			TokenA: tokenTwoAddress,
			TokenB: tokenThreeAddress,
		},
		&AddLiquidity{
			TokenA:         tokenOneAddress,
			TokenB:         tokenTwoAddress,
			AmountADesired: amountBytes(100_000),
			AmountBDesired: amountBytes(100_000),
			To:             addr,
			Deadline:       testDeadline,
		},
		&AddLiquidity{
			TokenA:         tokenTwoAddress,
			TokenB:         tokenThreeAddress,
			AmountADesired: amountBytes(100_000),
			AmountBDesired: amountBytes(100_000),
			To:             addr,
			Deadline:       testDeadline,
		},
	}
	for _, action := range setupActions {
		_, err := action.Execute(context.Background(), nil, parentState, 0, addr, ids.Empty)
		req.NoError(err)
	}

	return parentState
}

func TestSwapExactTokensForTokens(t *testing.T) {
	ts := tstate.New(1)
	addr := codectest.NewRandomAddress()
	parentState := routerTestState(t, ts, addr)

	tests := []chaintest.ActionTest{
		{
			Name: "No swaps past the deadline",
			Action: &SwapExactTokensForTokens{
				AmountIn: amountBytes(1_000),
				Path:     []codec.Address{tokenOneAddress, tokenTwoAddress},
				To:       addr,
				Deadline: testDeadline,
			},
			ExpectedOutputs: nil,
			ExpectedErr:     ErrOutputExpired,
			State:           parentState,
			Timestamp:       2_000_000,
			Actor:           addr,
		},
		{
			Name: "Path needs at least two tokens",
			Action: &SwapExactTokensForTokens{
				AmountIn: amountBytes(1_000),
				Path:     []codec.Address{tokenOneAddress},
				To:       addr,
				Deadline: testDeadline,
			},
			ExpectedOutputs: nil,
			ExpectedErr:     ErrOutputInvalidPath,
			State:           parentState,
			Actor:           addr,
		},
		{
			Name: "No zero-input swaps",
			Action: &SwapExactTokensForTokens{
				AmountIn: []byte{},
				Path:     []codec.Address{tokenOneAddress, tokenTwoAddress},
				To:       addr,
				Deadline: testDeadline,
			},
			ExpectedOutputs: nil,
			ExpectedErr:     ErrOutputInvalidAmount,
			State:           parentState,
			Actor:           addr,
		},
		{
			Name: "Slippage bound holds",
			Action: &SwapExactTokensForTokens{
				AmountIn:     amountBytes(1_000),
				AmountOutMin: amountBytes(2_000),
				Path:         []codec.Address{tokenOneAddress, tokenTwoAddress},
				To:           addr,
				Deadline:     testDeadline,
			},
			ExpectedOutputs: nil,
			ExpectedErr:     ErrOutputInsufficientOutputAmount,
			State:           parentState,
			Actor:           addr,
		},
		{
			Name: "Two-hop swap chains outputs through the pairs",
			Action: &SwapExactTokensForTokens{
				AmountIn:     amountBytes(1_000),
				AmountOutMin: amountBytes(974),
				Path:         []codec.Address{tokenOneAddress, tokenTwoAddress, tokenThreeAddress},
				To:           addr,
				Deadline:     testDeadline,
			},
			ExpectedOutputs: &SwapExactTokensForTokensResult{
				AmountOut: amountBytes(974),
			},
			ExpectedErr: nil,
			State:       parentState,
			Assertion: func(ctx context.Context, t *testing.T, m state.Mutable) {
				require := require.New(t)
				balanceOne, err := storage.GetTokenAccountBalanceNoController(ctx, m, tokenOneAddress, addr)
				require.NoError(err)
				require.Equal(uint64(899_000), balanceOne.Uint64())
				balanceThree, err := storage.GetTokenAccountBalanceNoController(ctx, m, tokenThreeAddress, addr)
				require.NoError(err)
				require.Equal(uint64(900_974), balanceThree.Uint64())
			},
			Actor: addr,
		},
	}

	for _, tt := range tests {
		tt.Run(context.Background(), t)
	}
}

func TestSwapTokensForExactTokens(t *testing.T) {
	ts := tstate.New(1)
	addr := codectest.NewRandomAddress()
	parentState := routerTestState(t, ts, addr)

	tests := []chaintest.ActionTest{
		{
			Name: "No swaps past the deadline",
			Action: &SwapTokensForExactTokens{
				AmountOut: amountBytes(987),
				Path:      []codec.Address{tokenOneAddress, tokenTwoAddress},
				To:        addr,
				Deadline:  testDeadline,
			},
			ExpectedOutputs: nil,
			ExpectedErr:     ErrOutputExpired,
			State:           parentState,
			Timestamp:       2_000_000,
			Actor:           addr,
		},
		{
			Name: "Path needs at least two tokens",
			Action: &SwapTokensForExactTokens{
				AmountOut: amountBytes(987),
				Path:      []codec.Address{tokenOneAddress},
				To:        addr,
				Deadline:  testDeadline,
			},
			ExpectedOutputs: nil,
			ExpectedErr:     ErrOutputInvalidPath,
			State:           parentState,
			Actor:           addr,
		},
		{
			Name: "No zero-output swaps",
			Action: &SwapTokensForExactTokens{
				AmountOut: []byte{},
				Path:      []codec.Address{tokenOneAddress, tokenTwoAddress},
				To:        addr,
				Deadline:  testDeadline,
			},
			ExpectedOutputs: nil,
			ExpectedErr:     ErrOutputInvalidAmount,
			State:           parentState,
			Actor:           addr,
		},
		{
			Name: "Input cap holds",
			Action: &SwapTokensForExactTokens{
				AmountOut:   amountBytes(987),
				AmountInMax: amountBytes(999),
				Path:        []codec.Address{tokenOneAddress, tokenTwoAddress},
				To:          addr,
				Deadline:    testDeadline,
			},
			ExpectedOutputs: nil,
			ExpectedErr:     ErrOutputExcessiveInputAmount,
			State:           parentState,
			Actor:           addr,
		},
		{
			Name: "Backward quote charges exactly enough input",
			Action: &SwapTokensForExactTokens{
				AmountOut:   amountBytes(987),
				AmountInMax: amountBytes(1_000),
				Path:        []codec.Address{tokenOneAddress, tokenTwoAddress},
				To:          addr,
				Deadline:    testDeadline,
			},
			ExpectedOutputs: &SwapTokensForExactTokensResult{
				AmountIn: amountBytes(1_000),
			},
			ExpectedErr: nil,
			State:       parentState,
			Assertion: func(ctx context.Context, t *testing.T, m state.Mutable) {
				require := require.New(t)
				balanceOne, err := storage.GetTokenAccountBalanceNoController(ctx, m, tokenOneAddress, addr)
				require.NoError(err)
				require.Equal(uint64(899_000), balanceOne.Uint64())
				balanceTwo, err := storage.GetTokenAccountBalanceNoController(ctx, m, tokenTwoAddress, addr)
				require.NoError(err)
				require.Equal(uint64(800_987), balanceTwo.Uint64())
			},
			Actor: addr,
		},
	}

	for _, tt := range tests {
		tt.Run(context.Background(), t)
	}
}
