// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package actions

const (
	CreateTokenComputeUnits   = 1
	MintTokenComputeUnits     = 1
	BurnTokenComputeUnits     = 1
	TransferTokenComputeUnits = 1

	CreateLaunchComputeUnits        = 2
	CurveBuyComputeUnits            = 2
	CurveSellComputeUnits           = 2
	ClaimRefundComputeUnits         = 1
	GraduateComputeUnits            = 1
	WithdrawFeesComputeUnits        = 1
	ClaimPromoMilestoneComputeUnits = 1

	CreatePairComputeUnits    = 2
	MintLiquidityComputeUnits = 2
	BurnLiquidityComputeUnits = 2
	PairSwapComputeUnits      = 2
	SyncPairComputeUnits      = 1
	SkimPairComputeUnits      = 1

	AddLiquidityComputeUnits    = 3
	RemoveLiquidityComputeUnits = 3
	SwapComputeUnits            = 3
)

// Fee bounds, in basis points
const (
	BpsDenominator    = 10_000
	MaxPlatformFeeBps = 1_000
)

// Milestone tiers for promo budget release, in percent of the graduation
// threshold
var promoTiers = []uint64{100, 75, 50, 25}
