// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package storage

import (
	"context"
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/require"

	"github.com/ava-labs/hypersdk/chain/chaintest"
	"github.com/ava-labs/hypersdk/codec/codectest"
	"github.com/ava-labs/hypersdk/keys"
	"github.com/ava-labs/hypersdk/state"
	"github.com/ava-labs/hypersdk/state/tstate"
)

func TestLaunchRecordRoundTrip(t *testing.T) {
	req := require.New(t)
	ts := tstate.New(1)

	token := codectest.NewRandomAddress()
	launchAddress := LaunchAddress(token)

	parentState := ts.NewView(
		state.Keys{
			string(LaunchKey(launchAddress)): state.All,
		},
		chaintest.NewInMemoryStore().Storage,
	)

	launch := &Launch{
		Token:               token,
		Creator:             codectest.NewRandomAddress(),
		PlatformWallet:      codectest.NewRandomAddress(),
		Curve:               1,
		Status:              StatusRefunding,
		Locked:              true,
		BasePrice:           uint256.NewInt(1_000_000_000),
		MaxPrice:            uint256.NewInt(100_000_000_000),
		CurveSupply:         uint256.MustFromDecimal("1000000000000000000000000"),
		TokensSold:          uint256.MustFromDecimal("4950000000000000000000"),
		FundsRaised:         uint256.NewInt(4_950_000_000_000),
		GraduationThreshold: uint256.NewInt(50_000_000_000_000),
		Deadline:            1_000_000,
		PlatformFeeBps:      100,
		CreatorFeeBps:       50,
		CreatorFees:         uint256.NewInt(7_000_000_000),
		PromoBudget:         uint256.NewInt(1_000_000_000_000),
		PromoReleased:       uint256.NewInt(250_000_000_000),
	}
	req.NoError(SetLaunch(context.Background(), parentState, launchAddress, launch))

	// The packed record must fit the chunk bound its key declares
	v, err := parentState.GetValue(context.Background(), LaunchKey(launchAddress))
	req.NoError(err)
	chunks, ok := keys.NumChunks(v)
	req.True(ok)
	req.LessOrEqual(chunks, LaunchChunks)

	got, err := GetLaunchNoController(context.Background(), parentState, launchAddress)
	req.NoError(err)
	req.Equal(launch.Token, got.Token)
	req.Equal(launch.Creator, got.Creator)
	req.Equal(launch.PlatformWallet, got.PlatformWallet)
	req.Equal(launch.Curve, got.Curve)
	req.Equal(launch.Status, got.Status)
	req.Equal(launch.Locked, got.Locked)
	req.True(got.BasePrice.Eq(launch.BasePrice))
	req.True(got.MaxPrice.Eq(launch.MaxPrice))
	req.True(got.CurveSupply.Eq(launch.CurveSupply))
	req.True(got.TokensSold.Eq(launch.TokensSold))
	req.True(got.FundsRaised.Eq(launch.FundsRaised))
	req.True(got.GraduationThreshold.Eq(launch.GraduationThreshold))
	req.Equal(launch.Deadline, got.Deadline)
	req.Equal(launch.PlatformFeeBps, got.PlatformFeeBps)
	req.Equal(launch.CreatorFeeBps, got.CreatorFeeBps)
	req.True(got.CreatorFees.Eq(launch.CreatorFees))
	req.True(got.PromoBudget.Eq(launch.PromoBudget))
	req.True(got.PromoReleased.Eq(launch.PromoReleased))
}

func TestPairRecordRoundTrip(t *testing.T) {
	req := require.New(t)
	ts := tstate.New(1)

	token0, token1, err := SortTokens(codectest.NewRandomAddress(), codectest.NewRandomAddress())
	req.NoError(err)
	pairAddress, err := PairAddress(token0, token1)
	req.NoError(err)

	parentState := ts.NewView(
		state.Keys{
			string(PairKey(pairAddress)): state.All,
		},
		chaintest.NewInMemoryStore().Storage,
	)

	pair := &Pair{
		Token0:   token0,
		Token1:   token1,
		LPToken:  PairTokenAddress(pairAddress),
		Locked:   true,
		Reserve0: uint256.NewInt(10_000),
		Reserve1: uint256.NewInt(10_000),
	}
	req.NoError(SetPair(context.Background(), parentState, pairAddress, pair))

	v, err := parentState.GetValue(context.Background(), PairKey(pairAddress))
	req.NoError(err)
	chunks, ok := keys.NumChunks(v)
	req.True(ok)
	req.LessOrEqual(chunks, PairChunks)

	got, err := GetPairNoController(context.Background(), parentState, pairAddress)
	req.NoError(err)
	req.Equal(pair.Token0, got.Token0)
	req.Equal(pair.Token1, got.Token1)
	req.Equal(pair.LPToken, got.LPToken)
	req.Equal(pair.Locked, got.Locked)
	req.True(got.Reserve0.Eq(pair.Reserve0))
	req.True(got.Reserve1.Eq(pair.Reserve1))
}

func TestTransferTokenToSelf(t *testing.T) {
	req := require.New(t)
	ts := tstate.New(1)

	token := codectest.NewRandomAddress()
	addr := codectest.NewRandomAddress()

	parentState := ts.NewView(
		state.Keys{
			string(TokenAccountBalanceKey(token, addr)): state.All,
		},
		chaintest.NewInMemoryStore().Storage,
	)

	req.NoError(SetTokenAccountBalance(context.Background(), parentState, token, addr, uint256.NewInt(100)))
	req.NoError(TransferToken(context.Background(), parentState, token, addr, addr, uint256.NewInt(60)))

	balance, err := GetTokenAccountBalanceNoController(context.Background(), parentState, token, addr)
	req.NoError(err)
	req.Equal(uint64(100), balance.Uint64())
}
