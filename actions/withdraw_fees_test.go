// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package actions

import (
	"context"
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/require"

	"github.com/ava-labs/hypersdk/chain/chaintest"
	"github.com/ava-labs/hypersdk/codec/codectest"
	"github.com/ava-labs/hypersdk/examples/launchvm/storage"
	"github.com/ava-labs/hypersdk/state"
	"github.com/ava-labs/hypersdk/state/tstate"
)

func TestWithdrawFees(t *testing.T) {
	req := require.New(t)
	ts := tstate.New(1)

	creator := codectest.NewRandomAddress()
	other := codectest.NewRandomAddress()
	platformWallet := codectest.NewRandomAddress()

	parentState := ts.NewView(
		state.Keys{
			string(storage.LaunchKey(testLaunchAddress)):                                   state.All,
			string(storage.LaunchKey(storage.LaunchAddress(tokenOneAddress))):              state.All,
			string(storage.TokenAccountBalanceKey(storage.CoinAddress, creator)):           state.All,
			string(storage.TokenAccountBalanceKey(storage.CoinAddress, testLaunchAddress)): state.All,
		},
		chaintest.NewInMemoryStore().Storage,
	)

	launch := newTestLaunch(creator, platformWallet)
	launch.CreatorFees = uint256.NewInt(7_000_000_000)
	req.NoError(storage.SetLaunch(context.Background(), parentState, testLaunchAddress, launch))
	req.NoError(storage.SetTokenAccountBalance(context.Background(), parentState, storage.CoinAddress, testLaunchAddress, uint256.NewInt(7_000_000_000)))

	tests := []chaintest.ActionTest{
		{
			Name: "Launch must exist",
			Action: &WithdrawFees{
				Token: tokenOneAddress,
			},
			ExpectedOutputs: nil,
			ExpectedErr:     ErrOutputLaunchDoesNotExist,
			State:           parentState,
			Actor:           creator,
		},
		{
			Name: "Only the creator can withdraw",
			Action: &WithdrawFees{
				Token: launchTokenAddress,
			},
			ExpectedOutputs: nil,
			ExpectedErr:     ErrOutputUnauthorized,
			State:           parentState,
			Actor:           other,
		},
		{
			Name: "Creator collects accrued fees",
			Action: &WithdrawFees{
				Token: launchTokenAddress,
			},
			ExpectedOutputs: &WithdrawFeesResult{
				Amount: amountBytes(7_000_000_000),
			},
			ExpectedErr: nil,
			State:       parentState,
			Assertion: func(ctx context.Context, t *testing.T, m state.Mutable) {
				require := require.New(t)
				balance, err := storage.GetTokenAccountBalanceNoController(ctx, m, storage.CoinAddress, creator)
				require.NoError(err)
				require.Equal(uint64(7_000_000_000), balance.Uint64())
				launch, err := storage.GetLaunchNoController(ctx, m, testLaunchAddress)
				require.NoError(err)
				require.True(launch.CreatorFees.IsZero())
			},
			Actor: creator,
		},
		{
			Name: "Nothing left after a withdrawal",
			Action: &WithdrawFees{
				Token: launchTokenAddress,
			},
			ExpectedOutputs: nil,
			ExpectedErr:     ErrOutputNoFeesAccrued,
			State:           parentState,
			Actor:           creator,
		},
	}

	for _, tt := range tests {
		tt.Run(context.Background(), t)
	}
}
