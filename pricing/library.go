// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package pricing

import (
	"github.com/holiman/uint256"
)

// Router quoting helpers. These never error: a quote against empty reserves
// or a zero input is zero, and the caller's slippage checks reject the trade.

// Quote converts [amountA] into the equivalent amount of the other asset at
// the current reserve ratio, fee-free. Used for sizing liquidity deposits.
func Quote(amountA *uint256.Int, reserveA *uint256.Int, reserveB *uint256.Int) *uint256.Int {
	if amountA.IsZero() || reserveA.IsZero() || reserveB.IsZero() {
		return new(uint256.Int)
	}
	out := new(uint256.Int).Mul(amountA, reserveB)
	return out.Div(out, reserveA)
}

// GetAmountOut returns the output a swap of [amountIn] yields after the 0.3%
// fee: out = in*997*rOut / (rIn*1000 + in*997).
func GetAmountOut(amountIn *uint256.Int, reserveIn *uint256.Int, reserveOut *uint256.Int) *uint256.Int {
	if amountIn.IsZero() || reserveIn.IsZero() || reserveOut.IsZero() {
		return new(uint256.Int)
	}
	amountInWithFee := new(uint256.Int).Mul(amountIn, uint256.NewInt(997))
	numerator := new(uint256.Int).Mul(amountInWithFee, reserveOut)
	denominator := new(uint256.Int).Mul(reserveIn, uint256.NewInt(1000))
	denominator.Add(denominator, amountInWithFee)
	return numerator.Div(numerator, denominator)
}

// GetAmountIn returns the input required for a swap to yield [amountOut]:
// in = rIn*out*1000 / ((rOut-out)*997) + 1. The +1 rounds against the trader
// so GetAmountOut(GetAmountIn(x)) >= x.
func GetAmountIn(amountOut *uint256.Int, reserveIn *uint256.Int, reserveOut *uint256.Int) *uint256.Int {
	if amountOut.IsZero() || reserveIn.IsZero() || reserveOut.IsZero() || !reserveOut.Gt(amountOut) {
		return new(uint256.Int)
	}
	numerator := new(uint256.Int).Mul(reserveIn, amountOut)
	numerator.Mul(numerator, uint256.NewInt(1000))
	denominator := new(uint256.Int).Sub(reserveOut, amountOut)
	denominator.Mul(denominator, uint256.NewInt(997))
	in := numerator.Div(numerator, denominator)
	return in.AddUint64(in, 1)
}
