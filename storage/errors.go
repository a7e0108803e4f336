// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package storage

import "errors"

var (
	ErrIdenticalAddresses = errors.New("identical token addresses")
	ErrExceedsMaxSupply   = errors.New("supply would exceed maximum amount")
	ErrInsufficientTokens = errors.New("insufficient token balance")
	ErrInvalidBalance     = errors.New("invalid balance")
	ErrAmountTooLarge     = errors.New("amount exceeds maximum")
)
