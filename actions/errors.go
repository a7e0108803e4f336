// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package actions

import "errors"

var (
	// Token-related errors
	ErrOutputTokenNameEmpty           = errors.New("token name is empty")
	ErrOutputTokenNameTooLarge        = errors.New("token name is too large")
	ErrOutputForbiddenTokenName       = errors.New("forbidden token name")
	ErrOutputTokenSymbolEmpty         = errors.New("token symbol is empty")
	ErrOutputTokenSymbolTooLarge      = errors.New("token symbol is too large")
	ErrOutputTokenMetadataEmpty       = errors.New("token metadata is empty")
	ErrOutputTokenMetadataTooLarge    = errors.New("token metadata is too large")
	ErrOutputTokenAlreadyExists       = errors.New("token already exists")
	ErrOutputTokenDoesNotExist        = errors.New("token does not exist")
	ErrOutputTokenNotOwner            = errors.New("actor is not token owner")
	ErrOutputInsufficientTokenBalance = errors.New("insufficient token balance")

	// Launch-related errors
	ErrOutputInvalidAmount        = errors.New("invalid amount")
	ErrOutputInvalidCurveType     = errors.New("invalid curve type")
	ErrOutputInvalidPrices        = errors.New("base price must be less than max price")
	ErrOutputInvalidFee           = errors.New("platform fee exceeds maximum")
	ErrOutputInvalidThreshold     = errors.New("graduation threshold is zero")
	ErrOutputInvalidDeadline      = errors.New("deadline must be in the future")
	ErrOutputLaunchAlreadyExists  = errors.New("launch already exists")
	ErrOutputLaunchDoesNotExist   = errors.New("launch does not exist")
	ErrOutputWrongPlatformWallet  = errors.New("platform wallet does not match launch")
	ErrOutputLocked               = errors.New("launch is locked")
	ErrOutputCurveNotActive       = errors.New("launch is not active")
	ErrOutputAlreadyGraduated     = errors.New("launch already graduated")
	ErrOutputInsufficientTokens   = errors.New("insufficient tokens sold")
	ErrOutputDeadlineNotReached   = errors.New("deadline not reached")
	ErrOutputThresholdNotMet      = errors.New("graduation threshold not met")
	ErrOutputRefundNotAvailable   = errors.New("refund not available")
	ErrOutputNoRefundAvailable    = errors.New("no refund available")
	ErrOutputUnauthorized         = errors.New("actor is not launch creator")
	ErrOutputNoFeesAccrued        = errors.New("no creator fees accrued")
	ErrOutputMilestoneNotUnlocked = errors.New("milestone not unlocked")

	// Pair-related errors
	ErrOutputIdenticalTokens             = errors.New("pair tokens are identical")
	ErrOutputPairAlreadyExists           = errors.New("pair already exists")
	ErrOutputPairDoesNotExist            = errors.New("pair does not exist")
	ErrOutputPairLocked                  = errors.New("pair is locked")
	ErrOutputInsufficientLiquidity       = errors.New("insufficient liquidity")
	ErrOutputInsufficientLiquidityMinted = errors.New("insufficient liquidity minted")
	ErrOutputInsufficientLiquidityBurned = errors.New("insufficient liquidity burned")
	ErrOutputInsufficientInputAmount     = errors.New("insufficient input amount")
	ErrOutputInsufficientOutputAmount    = errors.New("insufficient output amount")
	ErrOutputK                           = errors.New("constant product invariant violated")

	// Router-related errors
	ErrOutputExpired              = errors.New("deadline has passed")
	ErrOutputInvalidPath          = errors.New("invalid path")
	ErrOutputInsufficientAAmount  = errors.New("insufficient A amount")
	ErrOutputInsufficientBAmount  = errors.New("insufficient B amount")
	ErrOutputExcessiveInputAmount = errors.New("excessive input amount")
)
