// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package storage

import (
	"context"

	"github.com/holiman/uint256"

	"github.com/ava-labs/hypersdk/chain"
	"github.com/ava-labs/hypersdk/codec"
	"github.com/ava-labs/hypersdk/state"
)

var _ chain.StateManager = (*StateManager)(nil)

func HeightKey() []byte {
	return []byte{heightPrefix}
}

func TimestampKey() []byte {
	return []byte{timestampPrefix}
}

func FeeKey() []byte {
	return []byte{feePrefix}
}

// StateManager pays transaction fees out of Coin balances.
type StateManager struct{}

func (*StateManager) HeightKey() []byte {
	return HeightKey()
}

func (*StateManager) TimestampKey() []byte {
	return TimestampKey()
}

func (*StateManager) FeeKey() []byte {
	return FeeKey()
}

func (*StateManager) SponsorStateKeys(addr codec.Address) state.Keys {
	return state.Keys{
		string(TokenAccountBalanceKey(CoinAddress, addr)): state.Read | state.Write,
	}
}

func (*StateManager) CanDeduct(
	ctx context.Context,
	addr codec.Address,
	im state.Immutable,
	amount uint64,
) error {
	bal, err := GetTokenAccountBalanceNoController(ctx, im, CoinAddress, addr)
	if err != nil {
		return err
	}
	if bal.Lt(uint256.NewInt(amount)) {
		return ErrInvalidBalance
	}
	return nil
}

func (*StateManager) Deduct(
	ctx context.Context,
	addr codec.Address,
	mu state.Mutable,
	amount uint64,
) error {
	bal, err := GetTokenAccountBalanceNoController(ctx, mu, CoinAddress, addr)
	if err != nil {
		return err
	}
	fee := uint256.NewInt(amount)
	if bal.Lt(fee) {
		return ErrInvalidBalance
	}
	return SetTokenAccountBalance(ctx, mu, CoinAddress, addr, new(uint256.Int).Sub(bal, fee))
}

func (*StateManager) AddBalance(
	ctx context.Context,
	addr codec.Address,
	mu state.Mutable,
	amount uint64,
	_ bool,
) error {
	bal, err := GetTokenAccountBalanceNoController(ctx, mu, CoinAddress, addr)
	if err != nil {
		return err
	}
	return SetTokenAccountBalance(ctx, mu, CoinAddress, addr, new(uint256.Int).Add(bal, uint256.NewInt(amount)))
}
