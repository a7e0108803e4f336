// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package curves implements the bonding-curve pricing engine. All functions
// are pure: callers cap supplies and prices at storage.MaxAmount, which keeps
// every intermediate product inside 256 bits (or inside the 512-bit
// mul-div where noted), so no arithmetic failure modes remain.
package curves

import (
	"github.com/holiman/uint256"
)

type Curve uint8

const (
	Linear Curve = iota
	Sigmoid
	Steep
)

// Fixed-point scale for progress fractions and price-per-token conversions
// (18 decimals).
var Scale = uint256.NewInt(1_000_000_000_000_000_000)

func FromByte(v uint8) (Curve, bool) {
	switch Curve(v) {
	case Linear, Sigmoid, Steep:
		return Curve(v), true
	default:
		return 0, false
	}
}

// Price returns the current spot price per token after [sold] of [supply]
// tokens have been sold, with the curve running from [base] at zero progress
// to [max] at full progress.
func Price(curve Curve, sold *uint256.Int, supply *uint256.Int, base *uint256.Int, max *uint256.Int) *uint256.Int {
	if supply.IsZero() {
		return new(uint256.Int).Set(base)
	}

	// progress = sold * Scale / supply, a fraction in [0, Scale]
	progress := new(uint256.Int).Mul(sold, Scale)
	progress.Div(progress, supply)

	priceRange := new(uint256.Int).Sub(max, base)

	switch curve {
	case Sigmoid:
		return sigmoidPrice(progress, base, priceRange)
	case Steep:
		return steepPrice(progress, base, priceRange)
	default:
		return linearPrice(progress, base, priceRange)
	}
}

// price = base + progress * range / Scale
func linearPrice(progress *uint256.Int, base *uint256.Int, priceRange *uint256.Int) *uint256.Int {
	p := new(uint256.Int).Mul(progress, priceRange)
	p.Div(p, Scale)
	return p.Add(p, base)
}

// Smoothstep (3x^2 - 2x^3) gives an S-shaped path without transcendental
// functions: s = progress^2/Scale * (3*Scale - 2*progress)/Scale
func sigmoidPrice(progress *uint256.Int, base *uint256.Int, priceRange *uint256.Int) *uint256.Int {
	progressSquared := new(uint256.Int).Mul(progress, progress)
	progressSquared.Div(progressSquared, Scale)

	threeScaled := new(uint256.Int).Mul(uint256.NewInt(3), Scale)
	twoProgress := new(uint256.Int).Mul(uint256.NewInt(2), progress)
	factor := new(uint256.Int)
	if threeScaled.Gt(twoProgress) {
		factor.Sub(threeScaled, twoProgress)
	}

	s := new(uint256.Int).Mul(progressSquared, factor)
	s.Div(s, Scale)

	p := new(uint256.Int).Mul(s, priceRange)
	p.Div(p, Scale)
	return p.Add(p, base)
}

// Quadratic growth, faster-than-linear early on:
// price = base + progress^2/Scale * range / Scale
func steepPrice(progress *uint256.Int, base *uint256.Int, priceRange *uint256.Int) *uint256.Int {
	s := new(uint256.Int).Mul(progress, progress)
	s.Div(s, Scale)

	p := new(uint256.Int).Mul(s, priceRange)
	p.Div(p, Scale)
	return p.Add(p, base)
}

// TokensForFunds returns how many tokens [fundsIn] buys at the current spot
// price, capped at the unsold remainder. This is a first-order approximation
// (spot price, not the integral); Integral exists for exact linear
// conversions.
func TokensForFunds(curve Curve, fundsIn *uint256.Int, sold *uint256.Int, supply *uint256.Int, base *uint256.Int, max *uint256.Int) *uint256.Int {
	if fundsIn.IsZero() || supply.IsZero() {
		return new(uint256.Int)
	}

	price := Price(curve, sold, supply, base, max)
	if price.IsZero() {
		return new(uint256.Int)
	}

	// tokens = fundsIn * Scale / price (512-bit intermediate)
	tokens, _ := new(uint256.Int).MulDivOverflow(fundsIn, Scale, price)

	remaining := new(uint256.Int).Sub(supply, sold)
	if tokens.Gt(remaining) {
		return remaining
	}
	return tokens
}

// FundsForTokens returns the funds received for selling [tokens] back,
// priced at the midpoint of the sell range as an average-price
// approximation. Deliberately asymmetric with TokensForFunds.
func FundsForTokens(curve Curve, tokens *uint256.Int, sold *uint256.Int, supply *uint256.Int, base *uint256.Int, max *uint256.Int) *uint256.Int {
	if tokens.IsZero() || sold.IsZero() {
		return new(uint256.Int)
	}

	sellFrom := new(uint256.Int)
	if sold.Gt(tokens) {
		sellFrom.Sub(sold, tokens)
	}
	mid := new(uint256.Int).Add(sold, sellFrom)
	mid.Div(mid, uint256.NewInt(2))

	price := Price(curve, mid, supply, base, max)

	funds, _ := new(uint256.Int).MulDivOverflow(tokens, price, Scale)
	return funds
}

// Integral returns the area under the price curve between [from] and [to]
// tokens sold: the exact closed form for Linear, the midpoint rule for the
// other shapes.
func Integral(curve Curve, from *uint256.Int, to *uint256.Int, supply *uint256.Int, base *uint256.Int, max *uint256.Int) *uint256.Int {
	if !to.Gt(from) || supply.IsZero() {
		return new(uint256.Int)
	}

	diff := new(uint256.Int).Sub(to, from)

	if curve != Linear {
		mid := new(uint256.Int).Add(from, to)
		mid.Div(mid, uint256.NewInt(2))
		price := Price(curve, mid, supply, base, max)
		funds, _ := new(uint256.Int).MulDivOverflow(price, diff, Scale)
		return funds
	}

	// base*(to-from) + range*(to^2-from^2)/(2*supply), all scaled by 1/Scale
	priceRange := new(uint256.Int).Sub(max, base)
	baseCost := new(uint256.Int).Mul(base, diff)

	// (to^2 - from^2) = (to-from)(to+from)
	sum := new(uint256.Int).Add(from, to)
	rangeDiff := new(uint256.Int).Mul(priceRange, diff)
	twoSupply := new(uint256.Int).Mul(uint256.NewInt(2), supply)
	rangeCost, _ := new(uint256.Int).MulDivOverflow(rangeDiff, sum, twoSupply)

	funds := new(uint256.Int).Add(baseCost, rangeCost)
	return funds.Div(funds, Scale)
}
