// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package storage

import (
	"github.com/holiman/uint256"

	"github.com/ava-labs/hypersdk/codec"
	"github.com/ava-labs/hypersdk/examples/launchvm/consts"
)

// Key prefixes
const (
	// Required for StateManager
	heightPrefix byte = iota
	timestampPrefix
	feePrefix

	// Required for LaunchVM
	tokenInfoPrefix
	tokenAccountBalancePrefix
	launchPrefix
	contributionPrefix
	pairPrefix
)

// Chunks
const (
	TokenInfoChunks           uint16 = 3
	TokenAccountBalanceChunks uint16 = 1
	LaunchChunks              uint16 = 7
	ContributionChunks        uint16 = 1
	PairChunks                uint16 = 3
)

// Related to action invariants
const (
	MaxTokenNameSize     = 64
	MaxTokenSymbolSize   = 8
	MaxTokenMetadataSize = 256
)

// All LP tokens have the following data
const (
	PairTokenName     = "Launch-Pair" // #nosec G101
	PairTokenSymbol   = "LAUNCHP"
	PairTokenMetadata = "A liquidity pair"
)

// Data for the LaunchVM Coin, the quote asset every curve and pair prices
// against
const (
	Symbol   = "LVM"
	Metadata = "A token launch platform implementation"
)

var (
	// MaxAmount caps every token supply and curve price at creation time
	// (2^112 - 1, the uniswap-v2 reserve bound) so downstream products of two
	// amounts always fit in 256 bits.
	MaxAmount = new(uint256.Int).SubUint64(
		new(uint256.Int).Lsh(uint256.NewInt(1), 112),
		1,
	)

	CoinAddress codec.Address
)

func init() {
	CoinAddress = TokenAddress([]byte(consts.Name), []byte(Symbol), []byte(Metadata))
}
