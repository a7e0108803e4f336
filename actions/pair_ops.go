// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package actions

import (
	"context"
	"errors"

	"github.com/holiman/uint256"

	"github.com/ava-labs/hypersdk/codec"
	"github.com/ava-labs/hypersdk/examples/launchvm/pricing"
	"github.com/ava-labs/hypersdk/examples/launchvm/storage"
	"github.com/ava-labs/hypersdk/state"
)

// Shared pair cores. The pair actions and the router both settle through
// these; callers are responsible for moving deposits into the pair first
// (deposit-then-call, like the token transfers a swap router performs).

func getPair(ctx context.Context, mu state.Mutable, tokenA codec.Address, tokenB codec.Address) (codec.Address, *storage.Pair, error) {
	pairAddress, err := storage.PairAddress(tokenA, tokenB)
	if err != nil {
		return codec.EmptyAddress, nil, ErrOutputIdenticalTokens
	}
	pair, err := storage.GetPairNoController(ctx, mu, pairAddress)
	if err != nil {
		return codec.EmptyAddress, nil, ErrOutputPairDoesNotExist
	}
	return pairAddress, pair, nil
}

func pairBalances(ctx context.Context, mu state.Mutable, pairAddress codec.Address, pair *storage.Pair) (*uint256.Int, *uint256.Int, error) {
	balance0, err := storage.GetTokenAccountBalanceNoController(ctx, mu, pair.Token0, pairAddress)
	if err != nil {
		return nil, nil, err
	}
	balance1, err := storage.GetTokenAccountBalanceNoController(ctx, mu, pair.Token1, pairAddress)
	if err != nil {
		return nil, nil, err
	}
	return balance0, balance1, nil
}

// pairMint sizes and mints LP tokens for whatever sits in the pair above its
// reserves. The first mint locks pricing.MinimumLiquidity at the empty
// address forever.
func pairMint(ctx context.Context, mu state.Mutable, pairAddress codec.Address, pair *storage.Pair, to codec.Address) (*uint256.Int, error) {
	balance0, balance1, err := pairBalances(ctx, mu, pairAddress, pair)
	if err != nil {
		return nil, err
	}
	_, _, _, lpSupply, _, err := storage.GetTokenInfoNoController(ctx, mu, pair.LPToken)
	if err != nil {
		return nil, err
	}

	engine := pricing.NewConstantProduct(pair.Reserve0, pair.Reserve1)
	liquidity, locked, err := engine.Mint(balance0, balance1, lpSupply)
	if err != nil {
		if errors.Is(err, pricing.ErrInsufficientLiquidityMinted) {
			return nil, ErrOutputInsufficientLiquidityMinted
		}
		return nil, err
	}

	if !locked.IsZero() {
		if err := storage.MintToken(ctx, mu, pair.LPToken, codec.EmptyAddress, locked); err != nil {
			return nil, err
		}
	}
	if err := storage.MintToken(ctx, mu, pair.LPToken, to, liquidity); err != nil {
		return nil, err
	}

	pair.Reserve0, pair.Reserve1 = engine.Reserves()
	return liquidity, nil
}

// pairBurn redeems the LP tokens sitting at the pair's own address and pays
// both sides to [to].
func pairBurn(ctx context.Context, mu state.Mutable, pairAddress codec.Address, pair *storage.Pair, to codec.Address) (*uint256.Int, *uint256.Int, error) {
	balance0, balance1, err := pairBalances(ctx, mu, pairAddress, pair)
	if err != nil {
		return nil, nil, err
	}
	liquidity, err := storage.GetTokenAccountBalanceNoController(ctx, mu, pair.LPToken, pairAddress)
	if err != nil {
		return nil, nil, err
	}
	_, _, _, lpSupply, _, err := storage.GetTokenInfoNoController(ctx, mu, pair.LPToken)
	if err != nil {
		return nil, nil, err
	}

	engine := pricing.NewConstantProduct(pair.Reserve0, pair.Reserve1)
	amount0, amount1, err := engine.Burn(balance0, balance1, liquidity, lpSupply)
	if err != nil {
		if errors.Is(err, pricing.ErrInsufficientLiquidityBurned) {
			return nil, nil, ErrOutputInsufficientLiquidityBurned
		}
		return nil, nil, err
	}

	if err := storage.BurnToken(ctx, mu, pair.LPToken, pairAddress, liquidity); err != nil {
		return nil, nil, err
	}
	if err := storage.TransferToken(ctx, mu, pair.Token0, pairAddress, to, amount0); err != nil {
		return nil, nil, err
	}
	if err := storage.TransferToken(ctx, mu, pair.Token1, pairAddress, to, amount1); err != nil {
		return nil, nil, err
	}

	pair.Reserve0, pair.Reserve1 = engine.Reserves()
	return amount0, amount1, nil
}

// pairSwap transfers the requested outputs optimistically and then holds the
// pair to the fee-adjusted invariant against whatever was deposited.
func pairSwap(ctx context.Context, mu state.Mutable, pairAddress codec.Address, pair *storage.Pair, amount0Out *uint256.Int, amount1Out *uint256.Int, to codec.Address) (*uint256.Int, *uint256.Int, error) {
	if amount0Out.IsZero() && amount1Out.IsZero() {
		return nil, nil, ErrOutputInsufficientOutputAmount
	}
	if !amount0Out.Lt(pair.Reserve0) || !amount1Out.Lt(pair.Reserve1) {
		return nil, nil, ErrOutputInsufficientLiquidity
	}

	if !amount0Out.IsZero() {
		if err := storage.TransferToken(ctx, mu, pair.Token0, pairAddress, to, amount0Out); err != nil {
			return nil, nil, err
		}
	}
	if !amount1Out.IsZero() {
		if err := storage.TransferToken(ctx, mu, pair.Token1, pairAddress, to, amount1Out); err != nil {
			return nil, nil, err
		}
	}

	balance0, balance1, err := pairBalances(ctx, mu, pairAddress, pair)
	if err != nil {
		return nil, nil, err
	}

	engine := pricing.NewConstantProduct(pair.Reserve0, pair.Reserve1)
	amount0In, amount1In, err := engine.Swap(balance0, balance1, amount0Out, amount1Out)
	if err != nil {
		switch {
		case errors.Is(err, pricing.ErrInsufficientInputAmount):
			return nil, nil, ErrOutputInsufficientInputAmount
		case errors.Is(err, pricing.ErrK):
			return nil, nil, ErrOutputK
		default:
			return nil, nil, err
		}
	}

	pair.Reserve0, pair.Reserve1 = engine.Reserves()
	return amount0In, amount1In, nil
}

// pairStateKeys covers everything the pair cores may touch for one pair.
func pairStateKeys(tokenA codec.Address, tokenB codec.Address) state.Keys {
	pairAddress, err := storage.PairAddress(tokenA, tokenB)
	if err != nil {
		return state.Keys{}
	}
	lpToken := storage.PairTokenAddress(pairAddress)
	return state.Keys{
		string(storage.PairKey(pairAddress)):                                state.All,
		string(storage.TokenInfoKey(lpToken)):                               state.All,
		string(storage.TokenAccountBalanceKey(lpToken, pairAddress)):        state.All,
		string(storage.TokenAccountBalanceKey(tokenA, pairAddress)):         state.All,
		string(storage.TokenAccountBalanceKey(tokenB, pairAddress)):         state.All,
		string(storage.TokenAccountBalanceKey(lpToken, codec.EmptyAddress)): state.All,
	}
}
