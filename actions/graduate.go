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
	_ codec.Typed  = (*GraduateResult)(nil)
	_ chain.Action = (*Graduate)(nil)
)

type GraduateResult struct {
	PairAddress codec.Address `serialize:"true" json:"pairAddress"`
	FundsRaised []byte        `serialize:"true" json:"fundsRaised"`
}

func (*GraduateResult) GetTypeID() uint8 {
	return consts.GraduateID
}

// Graduate closes a curve that met its threshold. The terminal state ends
// buys, sells, and refunds forever; seeding the Coin/token pair is done with
// separate pair actions, so the result reports the pair address liquidity
// should move to.
type Graduate struct {
	Token codec.Address `serialize:"true" json:"token"`
}

// ComputeUnits implements chain.Action.
func (*Graduate) ComputeUnits(chain.Rules) uint64 {
	return GraduateComputeUnits
}

// Execute implements chain.Action.
func (g *Graduate) Execute(ctx context.Context, _ chain.Rules, mu state.Mutable, _ int64, _ codec.Address, _ ids.ID) (codec.Typed, error) {
	launchAddress := storage.LaunchAddress(g.Token)
	launch, err := storage.GetLaunchNoController(ctx, mu, launchAddress)
	if err != nil {
		return nil, ErrOutputLaunchDoesNotExist
	}
	if launch.Locked {
		return nil, ErrOutputLocked
	}
	if launch.Status == storage.StatusGraduated {
		return nil, ErrOutputAlreadyGraduated
	}
	if launch.Status != storage.StatusActive {
		return nil, ErrOutputCurveNotActive
	}
	if launch.FundsRaised.Lt(launch.GraduationThreshold) {
		return nil, ErrOutputThresholdNotMet
	}

	launch.Status = storage.StatusGraduated
	if err := storage.SetLaunch(ctx, mu, launchAddress, launch); err != nil {
		return nil, err
	}

	pairAddress, err := storage.PairAddress(storage.CoinAddress, g.Token)
	if err != nil {
		return nil, err
	}

	return &GraduateResult{
		PairAddress: pairAddress,
		FundsRaised: encodeAmount(launch.FundsRaised),
	}, nil
}

// GetTypeID implements chain.Action.
func (*Graduate) GetTypeID() uint8 {
	return consts.GraduateID
}

// StateKeys implements chain.Action.
func (g *Graduate) StateKeys(codec.Address) state.Keys {
	return state.Keys{
		string(storage.LaunchKey(storage.LaunchAddress(g.Token))): state.All,
	}
}

// ValidRange implements chain.Action.
func (*Graduate) ValidRange(chain.Rules) (start int64, end int64) {
	return -1, -1
}
