// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package pricing

import (
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/require"
)

func TestMintFirstDeposit(t *testing.T) {
	req := require.New(t)

	cp := NewConstantProduct(new(uint256.Int), new(uint256.Int))
	liquidity, locked, err := cp.Mint(uint256.NewInt(10_000), uint256.NewInt(10_000), new(uint256.Int))
	req.NoError(err)

	// sqrt(10000*10000) = 10000, minus the 1000 locked forever
	req.Equal(uint256.NewInt(9_000), liquidity)
	req.Equal(MinimumLiquidity, locked)

	r0, r1 := cp.Reserves()
	req.Equal(uint256.NewInt(10_000), r0)
	req.Equal(uint256.NewInt(10_000), r1)
}

func TestMintFirstDepositTooSmall(t *testing.T) {
	req := require.New(t)

	cp := NewConstantProduct(new(uint256.Int), new(uint256.Int))
	_, _, err := cp.Mint(uint256.NewInt(100), uint256.NewInt(100), new(uint256.Int))
	req.ErrorIs(err, ErrInsufficientLiquidityMinted)
}

func TestMintProportional(t *testing.T) {
	req := require.New(t)

	cp := NewConstantProduct(uint256.NewInt(10_000), uint256.NewInt(10_000))
	liquidity, locked, err := cp.Mint(uint256.NewInt(15_000), uint256.NewInt(15_000), uint256.NewInt(10_000))
	req.NoError(err)

	req.Equal(uint256.NewInt(5_000), liquidity)
	req.True(locked.IsZero())
}

func TestMintUnbalancedTakesMinimum(t *testing.T) {
	req := require.New(t)

	cp := NewConstantProduct(uint256.NewInt(10_000), uint256.NewInt(10_000))
	// Excess on side 0 is donated to existing holders.
	liquidity, _, err := cp.Mint(uint256.NewInt(20_000), uint256.NewInt(12_000), uint256.NewInt(10_000))
	req.NoError(err)

	req.Equal(uint256.NewInt(2_000), liquidity)
}

func TestBurnProRata(t *testing.T) {
	req := require.New(t)

	cp := NewConstantProduct(uint256.NewInt(10_000), uint256.NewInt(40_000))
	amount0, amount1, err := cp.Burn(uint256.NewInt(10_000), uint256.NewInt(40_000), uint256.NewInt(5_000), uint256.NewInt(20_000))
	req.NoError(err)

	req.Equal(uint256.NewInt(2_500), amount0)
	req.Equal(uint256.NewInt(10_000), amount1)

	r0, r1 := cp.Reserves()
	req.Equal(uint256.NewInt(7_500), r0)
	req.Equal(uint256.NewInt(30_000), r1)
}

func TestBurnZeroLiquidity(t *testing.T) {
	req := require.New(t)

	cp := NewConstantProduct(uint256.NewInt(10_000), uint256.NewInt(10_000))
	_, _, err := cp.Burn(uint256.NewInt(10_000), uint256.NewInt(10_000), new(uint256.Int), uint256.NewInt(10_000))
	req.ErrorIs(err, ErrInsufficientLiquidityBurned)
}

func TestSwapHonorsInvariant(t *testing.T) {
	req := require.New(t)

	reserve := uint256.NewInt(100_000)
	cp := NewConstantProduct(reserve, reserve)

	amountIn := uint256.NewInt(10_000)
	amountOut := GetAmountOut(amountIn, reserve, reserve)
	req.False(amountOut.IsZero())

	balance0 := new(uint256.Int).Add(reserve, amountIn)
	balance1 := new(uint256.Int).Sub(reserve, amountOut)

	in0, in1, err := cp.Swap(balance0, balance1, new(uint256.Int), amountOut)
	req.NoError(err)
	req.Equal(amountIn, in0)
	req.True(in1.IsZero())

	r0, r1 := cp.Reserves()
	req.Equal(balance0, r0)
	req.Equal(balance1, r1)
}

func TestSwapNoInput(t *testing.T) {
	req := require.New(t)

	reserve := uint256.NewInt(100_000)
	cp := NewConstantProduct(reserve, reserve)

	// Taking output without depositing anything
	amountOut := uint256.NewInt(1_000)
	balance1 := new(uint256.Int).Sub(reserve, amountOut)
	_, _, err := cp.Swap(reserve, balance1, new(uint256.Int), amountOut)
	req.ErrorIs(err, ErrInsufficientInputAmount)
}

func TestSwapUnderpaidFee(t *testing.T) {
	req := require.New(t)

	reserve := uint256.NewInt(100_000)
	cp := NewConstantProduct(reserve, reserve)

	// Fee-free output for a 10k input; the 0.3% fee makes it unaffordable.
	amountIn := uint256.NewInt(10_000)
	rawOut := new(uint256.Int).Mul(amountIn, reserve)
	rawOut.Div(rawOut, new(uint256.Int).Add(reserve, amountIn))

	balance0 := new(uint256.Int).Add(reserve, amountIn)
	balance1 := new(uint256.Int).Sub(reserve, rawOut)
	_, _, err := cp.Swap(balance0, balance1, new(uint256.Int), rawOut)
	req.ErrorIs(err, ErrK)
}

func TestSqrt(t *testing.T) {
	req := require.New(t)

	for _, tc := range []struct {
		in   uint64
		want uint64
	}{
		{0, 0},
		{1, 1},
		{3, 1},
		{4, 2},
		{15, 3},
		{16, 4},
		{1_000_000, 1_000},
		{1_000_001, 1_000},
	} {
		req.Equal(uint256.NewInt(tc.want), Sqrt(uint256.NewInt(tc.in)), "sqrt(%d)", tc.in)
	}
}

func FuzzSwapInvariant(f *testing.F) {
	f.Add(uint64(100_000), uint64(100_000), uint64(10_000))
	f.Add(uint64(1_000_000_000), uint64(5_000), uint64(123_456))
	f.Fuzz(func(t *testing.T, r0 uint64, r1 uint64, in uint64) {
		if r0 == 0 || r1 == 0 || in == 0 {
			t.Skip()
		}
		req := require.New(t)

		reserve0 := uint256.NewInt(r0)
		reserve1 := uint256.NewInt(r1)
		amountIn := uint256.NewInt(in)

		amountOut := GetAmountOut(amountIn, reserve0, reserve1)
		if amountOut.IsZero() || !reserve1.Gt(amountOut) {
			t.Skip()
		}

		cp := NewConstantProduct(reserve0, reserve1)
		balance0 := new(uint256.Int).Add(reserve0, amountIn)
		balance1 := new(uint256.Int).Sub(reserve1, amountOut)
		_, _, err := cp.Swap(balance0, balance1, new(uint256.Int), amountOut)
		req.NoError(err)

		// Fee-free product never decreases across a quoted swap.
		before := new(uint256.Int).Mul(reserve0, reserve1)
		after := new(uint256.Int).Mul(balance0, balance1)
		req.False(after.Lt(before))
	})
}
