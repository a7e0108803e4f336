// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package actions

import (
	"context"

	"github.com/holiman/uint256"

	"github.com/ava-labs/hypersdk/codec"
	"github.com/ava-labs/hypersdk/examples/launchvm/pricing"
	"github.com/ava-labs/hypersdk/examples/launchvm/storage"
	"github.com/ava-labs/hypersdk/state"
)

// Router helpers: reserve lookups oriented to a trade direction and the
// hop-folded quote chains.

// orientedReserves returns the pair's reserves ordered (in, out) for a trade
// from [tokenIn] to [tokenOut].
func orientedReserves(ctx context.Context, mu state.Mutable, tokenIn codec.Address, tokenOut codec.Address) (*uint256.Int, *uint256.Int, error) {
	_, pair, err := getPair(ctx, mu, tokenIn, tokenOut)
	if err != nil {
		return nil, nil, err
	}
	if tokenIn == pair.Token0 {
		return pair.Reserve0, pair.Reserve1, nil
	}
	return pair.Reserve1, pair.Reserve0, nil
}

// getAmountsOut folds GetAmountOut along [path]; amounts[0] is the input.
func getAmountsOut(ctx context.Context, mu state.Mutable, amountIn *uint256.Int, path []codec.Address) ([]*uint256.Int, error) {
	amounts := make([]*uint256.Int, len(path))
	amounts[0] = amountIn
	for i := 0; i < len(path)-1; i++ {
		reserveIn, reserveOut, err := orientedReserves(ctx, mu, path[i], path[i+1])
		if err != nil {
			return nil, err
		}
		amounts[i+1] = pricing.GetAmountOut(amounts[i], reserveIn, reserveOut)
	}
	return amounts, nil
}

// getAmountsIn folds GetAmountIn backwards along [path]; the last element is
// the desired output.
func getAmountsIn(ctx context.Context, mu state.Mutable, amountOut *uint256.Int, path []codec.Address) ([]*uint256.Int, error) {
	amounts := make([]*uint256.Int, len(path))
	amounts[len(path)-1] = amountOut
	for i := len(path) - 1; i > 0; i-- {
		reserveIn, reserveOut, err := orientedReserves(ctx, mu, path[i-1], path[i])
		if err != nil {
			return nil, err
		}
		amounts[i-1] = pricing.GetAmountIn(amounts[i], reserveIn, reserveOut)
		if amounts[i-1].IsZero() {
			return nil, ErrOutputInsufficientLiquidity
		}
	}
	return amounts, nil
}

// executeHops moves [amounts] along [path]. The input for hop i must already
// sit at pair i; each hop's output lands at the next pair, the last at [to].
func executeHops(ctx context.Context, mu state.Mutable, amounts []*uint256.Int, path []codec.Address, to codec.Address) error {
	for i := 0; i < len(path)-1; i++ {
		pairAddress, pair, err := getPair(ctx, mu, path[i], path[i+1])
		if err != nil {
			return err
		}
		if pair.Locked {
			return ErrOutputPairLocked
		}

		amountOut := amounts[i+1]
		amount0Out := new(uint256.Int)
		amount1Out := new(uint256.Int)
		if path[i] == pair.Token0 {
			amount1Out = amountOut
		} else {
			amount0Out = amountOut
		}

		recipient := to
		if i < len(path)-2 {
			recipient, _, err = getPair(ctx, mu, path[i+1], path[i+2])
			if err != nil {
				return err
			}
		}

		pair.Locked = true
		if err := storage.SetPair(ctx, mu, pairAddress, pair); err != nil {
			return err
		}
		if _, _, err := pairSwap(ctx, mu, pairAddress, pair, amount0Out, amount1Out, recipient); err != nil {
			return err
		}
		pair.Locked = false
		if err := storage.SetPair(ctx, mu, pairAddress, pair); err != nil {
			return err
		}
	}
	return nil
}

// pathStateKeys covers every pair and every intermediate balance a multi-hop
// swap can touch.
func pathStateKeys(actor codec.Address, path []codec.Address, to codec.Address) state.Keys {
	keys := state.Keys{}
	if len(path) == 0 {
		return keys
	}
	for i := 0; i < len(path)-1; i++ {
		for k, v := range pairStateKeys(path[i], path[i+1]) {
			keys[k] = v
		}
		pairAddress, err := storage.PairAddress(path[i], path[i+1])
		if err != nil {
			continue
		}
		// Hop outputs can land at the next pair's address
		if i < len(path)-2 {
			nextPair, err := storage.PairAddress(path[i+1], path[i+2])
			if err == nil {
				keys[string(storage.TokenAccountBalanceKey(path[i+1], nextPair))] = state.All
			}
		}
		keys[string(storage.TokenAccountBalanceKey(path[i], pairAddress))] = state.All
	}
	keys[string(storage.TokenAccountBalanceKey(path[0], actor))] = state.All
	keys[string(storage.TokenAccountBalanceKey(path[len(path)-1], to))] = state.All
	return keys
}
