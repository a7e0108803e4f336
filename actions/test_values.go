// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package actions

import (
	"github.com/holiman/uint256"

	"github.com/ava-labs/hypersdk/codec"
	"github.com/ava-labs/hypersdk/examples/launchvm/curves"
	"github.com/ava-labs/hypersdk/examples/launchvm/storage"
)

const (
	TokenOneName     = "LuigiCoin"
	TokenOneSymbol   = "LC"
	TokenOneMetadata = "A coin that represents Luigi" // #nosec G101

	TokenTwoName     = "Martin"
	TokenTwoSymbol   = "MC"
	TokenTwoMetadata = "A coin that represents Martin" // #nosec G101

	TokenThreeName     = "Peach"
	TokenThreeSymbol   = "PC"
	TokenThreeMetadata = "A coin that represents Peach" // #nosec G101

	TooLargeTokenName     = "Lorem ipsum dolor sit amet, consectetur adipiscing elit pharetra." // #nosec G101
	TooLargeTokenSymbol   = "AAAAAAAAA"
	TooLargeTokenMetadata = "Lorem ipsum dolor sit amet, consectetur adipiscing elit. Etiam gravida mauris vitae tortor vehicula dictum. Maecenas rhoncus magna sed justo euismod, eu cursus nunc dapibus. Nunc vestibulum metus sit amet eros pellentesque blandit non at lacus. Ut at donec." // #nosec G101

	LaunchTokenName     = "MoonCoin"
	LaunchTokenSymbol   = "MOON"
	LaunchTokenMetadata = "A coin headed for graduation"
)

var (
	tokenOneAddress   = storage.TokenAddress([]byte(TokenOneName), []byte(TokenOneSymbol), []byte(TokenOneMetadata))
	tokenTwoAddress   = storage.TokenAddress([]byte(TokenTwoName), []byte(TokenTwoSymbol), []byte(TokenTwoMetadata))
	tokenThreeAddress = storage.TokenAddress([]byte(TokenThreeName), []byte(TokenThreeSymbol), []byte(TokenThreeMetadata))

	launchTokenAddress = storage.TokenAddress([]byte(LaunchTokenName), []byte(LaunchTokenSymbol), []byte(LaunchTokenMetadata))
	testLaunchAddress  = storage.LaunchAddress(launchTokenAddress)
)

// Curve parameters shared by the launch tests: a linear curve from 1 Coin-gwei
// to 100 Coin-gwei per token over a million-token supply, graduating at
// 50,000 Coin-gwei raised, with a 1% platform fee.
var (
	testBasePrice   = uint256.NewInt(1_000_000_000)
	testMaxPrice    = uint256.NewInt(100_000_000_000)
	testCurveSupply = uint256.MustFromDecimal("1000000000000000000000000")
	testThreshold   = uint256.NewInt(50_000_000_000_000)
)

const (
	testPlatformFeeBps = 100
	testCreatorFeeBps  = 0
	testDeadline       = 1_000_000
)

func newTestLaunch(creator codec.Address, platformWallet codec.Address) *storage.Launch {
	return &storage.Launch{
		Token:               launchTokenAddress,
		Creator:             creator,
		PlatformWallet:      platformWallet,
		Curve:               curves.Linear,
		Status:              storage.StatusActive,
		BasePrice:           new(uint256.Int).Set(testBasePrice),
		MaxPrice:            new(uint256.Int).Set(testMaxPrice),
		CurveSupply:         new(uint256.Int).Set(testCurveSupply),
		TokensSold:          new(uint256.Int),
		FundsRaised:         new(uint256.Int),
		GraduationThreshold: new(uint256.Int).Set(testThreshold),
		Deadline:            testDeadline,
		PlatformFeeBps:      testPlatformFeeBps,
		CreatorFeeBps:       testCreatorFeeBps,
		CreatorFees:         new(uint256.Int),
		PromoBudget:         new(uint256.Int),
		PromoReleased:       new(uint256.Int),
	}
}

func amountBytes(v uint64) []byte {
	return uint256.NewInt(v).Bytes()
}

func amountFromDecimal(s string) []byte {
	return uint256.MustFromDecimal(s).Bytes()
}
