// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package actions

import (
	"github.com/holiman/uint256"

	"github.com/ava-labs/hypersdk/examples/launchvm/storage"
)

// Wire amounts are big-endian byte strings of at most 32 bytes; an empty
// slice is zero.

func decodeAmount(v []byte) (*uint256.Int, error) {
	amount, err := storage.ToAmount(v)
	if err != nil {
		return nil, ErrOutputInvalidAmount
	}
	return amount, nil
}

func encodeAmount(v *uint256.Int) []byte {
	return v.Bytes()
}

func zeroAmount() *uint256.Int {
	return new(uint256.Int)
}
