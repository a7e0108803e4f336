// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package storage

import (
	"context"
	"encoding/binary"

	"github.com/holiman/uint256"

	"github.com/ava-labs/hypersdk/codec"
	"github.com/ava-labs/hypersdk/examples/launchvm/consts"
	"github.com/ava-labs/hypersdk/state"
	"github.com/ava-labs/hypersdk/utils"

	hconsts "github.com/ava-labs/hypersdk/consts"
)

type ComparisonValue int

const (
	LessThan ComparisonValue = iota - 1
	Equal
	GreaterThan
)

// Pair is one constant-product pool. Token0 < Token1 by address ordering.
type Pair struct {
	Token0  codec.Address
	Token1  codec.Address
	LPToken codec.Address
	Locked  bool

	Reserve0 *uint256.Int
	Reserve1 *uint256.Int
}

const pairRecordSize = 3*codec.AddressLen + hconsts.ByteLen + 2*AmountLen

func PairKey(pairAddress codec.Address) []byte {
	k := make([]byte, 1+codec.AddressLen+hconsts.Uint16Len)
	k[0] = pairPrefix
	copy(k[1:1+codec.AddressLen], pairAddress[:])
	binary.BigEndian.PutUint16(k[1+codec.AddressLen:], PairChunks)
	return k
}

// SortTokens orders two token addresses the way every pair stores them.
func SortTokens(tokenA codec.Address, tokenB codec.Address) (codec.Address, codec.Address, error) {
	switch CompareAddress(tokenA, tokenB) {
	case LessThan:
		return tokenA, tokenB, nil
	case GreaterThan:
		return tokenB, tokenA, nil
	default:
		return codec.EmptyAddress, codec.EmptyAddress, ErrIdenticalAddresses
	}
}

// Token ordering is handled here, so both argument orders yield the same
// pair address.
func PairAddress(tokenA codec.Address, tokenB codec.Address) (codec.Address, error) {
	token0, token1, err := SortTokens(tokenA, tokenB)
	if err != nil {
		return codec.EmptyAddress, err
	}
	v := make([]byte, codec.AddressLen+codec.AddressLen)
	copy(v, token0[:])
	copy(v[codec.AddressLen:], token1[:])
	id := utils.ToID(v)
	return codec.CreateAddress(consts.PAIRID, id), nil
}

func PairTokenAddress(pairAddress codec.Address) codec.Address {
	id := utils.ToID(pairAddress[:])
	return codec.CreateAddress(consts.PAIRTOKENID, id)
}

func SetPair(
	ctx context.Context,
	mu state.Mutable,
	pairAddress codec.Address,
	pair *Pair,
) error {
	p := codec.NewWriter(pairRecordSize, pairRecordSize)
	p.PackAddress(pair.Token0)
	p.PackAddress(pair.Token1)
	p.PackAddress(pair.LPToken)
	if pair.Locked {
		p.PackByte(1)
	} else {
		p.PackByte(0)
	}
	packAmount(p, pair.Reserve0)
	packAmount(p, pair.Reserve1)
	if err := p.Err(); err != nil {
		return err
	}
	return mu.Insert(ctx, PairKey(pairAddress), p.Bytes())
}

func GetPairNoController(
	ctx context.Context,
	mu state.Immutable,
	pairAddress codec.Address,
) (*Pair, error) {
	v, err := mu.GetValue(ctx, PairKey(pairAddress))
	if err != nil {
		return nil, err
	}
	return innerGetPair(v)
}

// Used to serve RPC queries
func GetPairFromState(
	ctx context.Context,
	f ReadState,
	pairAddress codec.Address,
) (*Pair, error) {
	values, errs := f(ctx, [][]byte{PairKey(pairAddress)})
	if errs[0] != nil {
		return nil, errs[0]
	}
	return innerGetPair(values[0])
}

func innerGetPair(v []byte) (*Pair, error) {
	p := codec.NewReader(v, len(v))
	pair := &Pair{}
	p.UnpackAddress(&pair.Token0)
	p.UnpackAddress(&pair.Token1)
	p.UnpackAddress(&pair.LPToken)
	pair.Locked = p.UnpackByte() == 1
	pair.Reserve0 = unpackAmount(p)
	pair.Reserve1 = unpackAmount(p)
	if err := p.Err(); err != nil {
		return nil, err
	}
	return pair, nil
}

func PairExists(
	ctx context.Context,
	mu state.Immutable,
	pairAddress codec.Address,
) bool {
	v, err := mu.GetValue(ctx, PairKey(pairAddress))
	return v != nil && err == nil
}

func CompareAddress(a codec.Address, b codec.Address) ComparisonValue {
	for i := range a {
		if a[i] < b[i] {
			return LessThan
		} else if a[i] > b[i] {
			return GreaterThan
		}
	}
	return Equal
}
