// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package pricing

import (
	"github.com/holiman/uint256"
)

// MinimumLiquidity is permanently minted to a burn address on the first
// deposit so the next depositor cannot be griefed by a zero-supply
// divide-by-zero or share inflation.
var MinimumLiquidity = uint256.NewInt(1000)

// ConstantProduct prices one pair against the 0.3%-fee-adjusted
// constant-product invariant. It works on the pair's stored reserves and the
// actual token balances the pair holds; callers persist the updated reserves
// after a successful operation.
type ConstantProduct struct {
	reserve0 *uint256.Int
	reserve1 *uint256.Int
}

func NewConstantProduct(reserve0 *uint256.Int, reserve1 *uint256.Int) *ConstantProduct {
	return &ConstantProduct{
		reserve0: new(uint256.Int).Set(reserve0),
		reserve1: new(uint256.Int).Set(reserve1),
	}
}

// Mint sizes the LP tokens for a deposit already sitting in the pair
// (amounts are balance - reserve). The first deposit gets
// sqrt(amount0*amount1) - MinimumLiquidity and the caller must mint the
// locked remainder to the burn address; later deposits get the proportional
// minimum, silently donating any non-proportional excess to existing
// holders.
// Returns: liquidity for the depositor, liquidity to permanently lock.
func (c *ConstantProduct) Mint(balance0 *uint256.Int, balance1 *uint256.Int, lpSupply *uint256.Int) (*uint256.Int, *uint256.Int, error) {
	amount0 := new(uint256.Int).Sub(balance0, c.reserve0)
	amount1 := new(uint256.Int).Sub(balance1, c.reserve1)

	var (
		liquidity = new(uint256.Int)
		locked    = new(uint256.Int)
	)
	if lpSupply.IsZero() {
		product := new(uint256.Int).Mul(amount0, amount1)
		root := Sqrt(product)
		if !root.Gt(MinimumLiquidity) {
			return nil, nil, ErrInsufficientLiquidityMinted
		}
		liquidity.Sub(root, MinimumLiquidity)
		locked.Set(MinimumLiquidity)
	} else {
		liquidity0 := new(uint256.Int).Mul(amount0, lpSupply)
		liquidity0.Div(liquidity0, c.reserve0)
		liquidity1 := new(uint256.Int).Mul(amount1, lpSupply)
		liquidity1.Div(liquidity1, c.reserve1)
		if liquidity0.Lt(liquidity1) {
			liquidity.Set(liquidity0)
		} else {
			liquidity.Set(liquidity1)
		}
	}

	if liquidity.IsZero() {
		return nil, nil, ErrInsufficientLiquidityMinted
	}

	c.reserve0.Set(balance0)
	c.reserve1.Set(balance1)
	return liquidity, locked, nil
}

// Burn redeems [liquidity] LP tokens pro rata against the pair's actual
// balances. Returns the two amounts owed; callers transfer them out and then
// set the reserves to the post-transfer balances.
func (c *ConstantProduct) Burn(balance0 *uint256.Int, balance1 *uint256.Int, liquidity *uint256.Int, lpSupply *uint256.Int) (*uint256.Int, *uint256.Int, error) {
	if lpSupply.IsZero() {
		return nil, nil, ErrInsufficientLiquidityBurned
	}

	amount0 := new(uint256.Int).Mul(liquidity, balance0)
	amount0.Div(amount0, lpSupply)
	amount1 := new(uint256.Int).Mul(liquidity, balance1)
	amount1.Div(amount1, lpSupply)

	if amount0.IsZero() || amount1.IsZero() {
		return nil, nil, ErrInsufficientLiquidityBurned
	}

	c.reserve0.Sub(balance0, amount0)
	c.reserve1.Sub(balance1, amount1)
	return amount0, amount1, nil
}

// Swap settles a swap after the requested outputs were optimistically
// transferred out: [balance0]/[balance1] are the pair's balances after those
// transfers (and after whatever the trader deposited). Inputs are inferred
// from the balances, and the fee-adjusted invariant
// (b0*1000 - 3*in0)(b1*1000 - 3*in1) >= r0*r1*1000^2 is enforced.
// Returns the inferred input amounts.
func (c *ConstantProduct) Swap(balance0 *uint256.Int, balance1 *uint256.Int, amount0Out *uint256.Int, amount1Out *uint256.Int) (*uint256.Int, *uint256.Int, error) {
	amount0In := inferInput(balance0, c.reserve0, amount0Out)
	amount1In := inferInput(balance1, c.reserve1, amount1Out)

	if amount0In.IsZero() && amount1In.IsZero() {
		return nil, nil, ErrInsufficientInputAmount
	}

	thousand := uint256.NewInt(1000)
	three := uint256.NewInt(3)

	adjusted0 := new(uint256.Int).Mul(balance0, thousand)
	adjusted0.Sub(adjusted0, new(uint256.Int).Mul(amount0In, three))
	adjusted1 := new(uint256.Int).Mul(balance1, thousand)
	adjusted1.Sub(adjusted1, new(uint256.Int).Mul(amount1In, three))

	kBefore := new(uint256.Int).Mul(c.reserve0, c.reserve1)
	kBefore.Mul(kBefore, uint256.NewInt(1_000_000))
	kAfter := new(uint256.Int).Mul(adjusted0, adjusted1)

	if kAfter.Lt(kBefore) {
		return nil, nil, ErrK
	}

	c.reserve0.Set(balance0)
	c.reserve1.Set(balance1)
	return amount0In, amount1In, nil
}

// Reserves returns the engine's current view of the reserves.
func (c *ConstantProduct) Reserves() (*uint256.Int, *uint256.Int) {
	return new(uint256.Int).Set(c.reserve0), new(uint256.Int).Set(c.reserve1)
}

// amountIn = balance - (reserve - amountOut), clamped at zero
func inferInput(balance *uint256.Int, reserve *uint256.Int, amountOut *uint256.Int) *uint256.Int {
	expected := new(uint256.Int).Sub(reserve, amountOut)
	if balance.Gt(expected) {
		return new(uint256.Int).Sub(balance, expected)
	}
	return new(uint256.Int)
}

// Sqrt is the integer square root by Newton's method, used only for
// first-deposit liquidity sizing.
// https://github.com/Uniswap/v2-core/blob/ee547b17853e71ed4e0101ccfd52e70d5acded58/contracts/libraries/Math.sol#L10
func Sqrt(y *uint256.Int) *uint256.Int {
	three := uint256.NewInt(3)
	if y.Gt(three) {
		z := new(uint256.Int).Set(y)
		x := new(uint256.Int).Div(y, uint256.NewInt(2))
		x.AddUint64(x, 1)
		for x.Lt(z) {
			z.Set(x)
			t := new(uint256.Int).Div(y, x)
			t.Add(t, x)
			x.Div(t, uint256.NewInt(2))
		}
		return z
	}
	if !y.IsZero() {
		return uint256.NewInt(1)
	}
	return new(uint256.Int)
}
