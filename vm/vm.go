// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package vm

import (
	"github.com/ava-labs/avalanchego/utils/wrappers"

	"github.com/ava-labs/hypersdk/api/indexer"
	"github.com/ava-labs/hypersdk/api/jsonrpc"
	"github.com/ava-labs/hypersdk/api/ws"
	"github.com/ava-labs/hypersdk/auth"
	"github.com/ava-labs/hypersdk/chain"
	"github.com/ava-labs/hypersdk/codec"
	"github.com/ava-labs/hypersdk/examples/launchvm/actions"
	"github.com/ava-labs/hypersdk/examples/launchvm/consts"
	"github.com/ava-labs/hypersdk/examples/launchvm/storage"
	"github.com/ava-labs/hypersdk/extension/externalsubscriber"
	"github.com/ava-labs/hypersdk/genesis"
	"github.com/ava-labs/hypersdk/vm"
)

var (
	ActionParser *codec.TypeParser[chain.Action]
	AuthParser   *codec.TypeParser[chain.Auth]
	OutputParser *codec.TypeParser[codec.Typed]
)

// Setup types
func init() {
	ActionParser = codec.NewTypeParser[chain.Action]()
	AuthParser = codec.NewTypeParser[chain.Auth]()
	OutputParser = codec.NewTypeParser[codec.Typed]()

	errs := &wrappers.Errs{}
	errs.Add(
		// Token-related actions
		ActionParser.Register(&actions.CreateToken{}, nil),
		ActionParser.Register(&actions.MintToken{}, nil),
		ActionParser.Register(&actions.BurnToken{}, nil),
		ActionParser.Register(&actions.TransferToken{}, nil),

		// Launch-related actions
		ActionParser.Register(&actions.CreateLaunch{}, nil),
		ActionParser.Register(&actions.CurveBuy{}, nil),
		ActionParser.Register(&actions.CurveSell{}, nil),
		ActionParser.Register(&actions.ClaimRefund{}, nil),
		ActionParser.Register(&actions.Graduate{}, nil),
		ActionParser.Register(&actions.WithdrawFees{}, nil),
		ActionParser.Register(&actions.ClaimPromoMilestone{}, nil),

		// Pair-related actions
		ActionParser.Register(&actions.CreatePair{}, nil),
		ActionParser.Register(&actions.MintLiquidity{}, nil),
		ActionParser.Register(&actions.BurnLiquidity{}, nil),
		ActionParser.Register(&actions.PairSwap{}, nil),
		ActionParser.Register(&actions.SyncPair{}, nil),
		ActionParser.Register(&actions.SkimPair{}, nil),

		// Router actions
		ActionParser.Register(&actions.AddLiquidity{}, nil),
		ActionParser.Register(&actions.RemoveLiquidity{}, nil),
		ActionParser.Register(&actions.SwapExactTokensForTokens{}, nil),
		ActionParser.Register(&actions.SwapTokensForExactTokens{}, nil),

		AuthParser.Register(&auth.ED25519{}, auth.UnmarshalED25519),
		AuthParser.Register(&auth.SECP256R1{}, auth.UnmarshalSECP256R1),
		AuthParser.Register(&auth.BLS{}, auth.UnmarshalBLS),

		OutputParser.Register(&actions.CreateTokenResult{}, nil),
		OutputParser.Register(&actions.MintTokenResult{}, nil),
		OutputParser.Register(&actions.BurnTokenResult{}, nil),
		OutputParser.Register(&actions.TransferTokenResult{}, nil),
		OutputParser.Register(&actions.CreateLaunchResult{}, nil),
		OutputParser.Register(&actions.CurveBuyResult{}, nil),
		OutputParser.Register(&actions.CurveSellResult{}, nil),
		OutputParser.Register(&actions.ClaimRefundResult{}, nil),
		OutputParser.Register(&actions.GraduateResult{}, nil),
		OutputParser.Register(&actions.WithdrawFeesResult{}, nil),
		OutputParser.Register(&actions.ClaimPromoMilestoneResult{}, nil),
		OutputParser.Register(&actions.CreatePairResult{}, nil),
		OutputParser.Register(&actions.MintLiquidityResult{}, nil),
		OutputParser.Register(&actions.BurnLiquidityResult{}, nil),
		OutputParser.Register(&actions.PairSwapResult{}, nil),
		OutputParser.Register(&actions.SyncPairResult{}, nil),
		OutputParser.Register(&actions.SkimPairResult{}, nil),
		OutputParser.Register(&actions.AddLiquidityResult{}, nil),
		OutputParser.Register(&actions.RemoveLiquidityResult{}, nil),
		OutputParser.Register(&actions.SwapExactTokensForTokensResult{}, nil),
		OutputParser.Register(&actions.SwapTokensForExactTokensResult{}, nil),
	)
	if errs.Errored() {
		panic(errs.Err)
	}
}

// New returns a VM with the indexer, websocket, rpc, and external subscriber apis enabled.
func New(options ...vm.Option) (*vm.VM, error) {
	opts := append([]vm.Option{
		indexer.With(),
		ws.With(),
		jsonrpc.With(),
		With(), // Add Controller API
		externalsubscriber.With(),
	}, options...)

	return NewWithOptions(opts...)
}

// NewWithOptions returns a VM with the specified options
func NewWithOptions(options ...vm.Option) (*vm.VM, error) {
	return vm.New(
		consts.Version,
		genesis.DefaultGenesisFactory{},
		&storage.StateManager{},
		ActionParser,
		AuthParser,
		OutputParser,
		auth.Engines(),
		options...,
	)
}
