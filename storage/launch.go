// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package storage

import (
	"context"
	"encoding/binary"
	"errors"

	"github.com/ava-labs/avalanchego/database"
	"github.com/holiman/uint256"

	"github.com/ava-labs/hypersdk/codec"
	"github.com/ava-labs/hypersdk/examples/launchvm/consts"
	"github.com/ava-labs/hypersdk/examples/launchvm/curves"
	"github.com/ava-labs/hypersdk/state"
	"github.com/ava-labs/hypersdk/utils"

	hconsts "github.com/ava-labs/hypersdk/consts"
)

type LaunchStatus uint8

const (
	StatusActive LaunchStatus = iota
	StatusGraduated
	StatusRefunding
)

// Launch is one bonding-curve sale. Amounts are denominated in the token
// being launched (supply-side fields) or in the Coin (funds-side fields).
type Launch struct {
	Token          codec.Address
	Creator        codec.Address
	PlatformWallet codec.Address

	Curve  curves.Curve
	Status LaunchStatus
	Locked bool

	BasePrice   *uint256.Int
	MaxPrice    *uint256.Int
	CurveSupply *uint256.Int
	TokensSold  *uint256.Int
	FundsRaised *uint256.Int

	GraduationThreshold *uint256.Int
	Deadline            int64

	PlatformFeeBps uint64
	CreatorFeeBps  uint64
	CreatorFees    *uint256.Int

	PromoBudget   *uint256.Int
	PromoReleased *uint256.Int
}

const launchRecordSize = 3*codec.AddressLen +
	3*hconsts.ByteLen +
	6*AmountLen +
	3*hconsts.Uint64Len +
	3*AmountLen

func LaunchAddress(token codec.Address) codec.Address {
	id := utils.ToID(token[:])
	return codec.CreateAddress(consts.LAUNCHID, id)
}

func LaunchKey(launchAddress codec.Address) []byte {
	k := make([]byte, 1+codec.AddressLen+hconsts.Uint16Len)
	k[0] = launchPrefix
	copy(k[1:1+codec.AddressLen], launchAddress[:])
	binary.BigEndian.PutUint16(k[1+codec.AddressLen:], LaunchChunks)
	return k
}

func SetLaunch(
	ctx context.Context,
	mu state.Mutable,
	launchAddress codec.Address,
	launch *Launch,
) error {
	p := codec.NewWriter(launchRecordSize, launchRecordSize)
	p.PackAddress(launch.Token)
	p.PackAddress(launch.Creator)
	p.PackAddress(launch.PlatformWallet)
	p.PackByte(byte(launch.Curve))
	p.PackByte(byte(launch.Status))
	if launch.Locked {
		p.PackByte(1)
	} else {
		p.PackByte(0)
	}
	packAmount(p, launch.BasePrice)
	packAmount(p, launch.MaxPrice)
	packAmount(p, launch.CurveSupply)
	packAmount(p, launch.TokensSold)
	packAmount(p, launch.FundsRaised)
	packAmount(p, launch.GraduationThreshold)
	p.PackInt64(launch.Deadline)
	p.PackUint64(launch.PlatformFeeBps)
	p.PackUint64(launch.CreatorFeeBps)
	packAmount(p, launch.CreatorFees)
	packAmount(p, launch.PromoBudget)
	packAmount(p, launch.PromoReleased)
	if err := p.Err(); err != nil {
		return err
	}
	return mu.Insert(ctx, LaunchKey(launchAddress), p.Bytes())
}

func GetLaunchNoController(
	ctx context.Context,
	mu state.Immutable,
	launchAddress codec.Address,
) (*Launch, error) {
	v, err := mu.GetValue(ctx, LaunchKey(launchAddress))
	if err != nil {
		return nil, err
	}
	return innerGetLaunch(v)
}

// Used to serve RPC queries
func GetLaunchFromState(
	ctx context.Context,
	f ReadState,
	launchAddress codec.Address,
) (*Launch, error) {
	values, errs := f(ctx, [][]byte{LaunchKey(launchAddress)})
	if errs[0] != nil {
		return nil, errs[0]
	}
	return innerGetLaunch(values[0])
}

func innerGetLaunch(v []byte) (*Launch, error) {
	p := codec.NewReader(v, len(v))
	launch := &Launch{}
	p.UnpackAddress(&launch.Token)
	p.UnpackAddress(&launch.Creator)
	p.UnpackAddress(&launch.PlatformWallet)
	launch.Curve = curves.Curve(p.UnpackByte())
	launch.Status = LaunchStatus(p.UnpackByte())
	launch.Locked = p.UnpackByte() == 1
	launch.BasePrice = unpackAmount(p)
	launch.MaxPrice = unpackAmount(p)
	launch.CurveSupply = unpackAmount(p)
	launch.TokensSold = unpackAmount(p)
	launch.FundsRaised = unpackAmount(p)
	launch.GraduationThreshold = unpackAmount(p)
	launch.Deadline = p.UnpackInt64(false)
	launch.PlatformFeeBps = p.UnpackUint64(false)
	launch.CreatorFeeBps = p.UnpackUint64(false)
	launch.CreatorFees = unpackAmount(p)
	launch.PromoBudget = unpackAmount(p)
	launch.PromoReleased = unpackAmount(p)
	if err := p.Err(); err != nil {
		return nil, err
	}
	return launch, nil
}

func LaunchExists(
	ctx context.Context,
	mu state.Immutable,
	launchAddress codec.Address,
) bool {
	v, err := mu.GetValue(ctx, LaunchKey(launchAddress))
	return v != nil && err == nil
}

func ContributionKey(launchAddress codec.Address, account codec.Address) []byte {
	k := make([]byte, 1+codec.AddressLen+codec.AddressLen+hconsts.Uint16Len)
	k[0] = contributionPrefix
	copy(k[1:], launchAddress[:])
	copy(k[1+codec.AddressLen:], account[:])
	binary.BigEndian.PutUint16(k[1+codec.AddressLen+codec.AddressLen:], ContributionChunks)
	return k
}

// Contributions track net Coin paid into a launch per buyer, the refund
// entitlement if the launch flips to refunding.
func SetContribution(
	ctx context.Context,
	mu state.Mutable,
	launchAddress codec.Address,
	account codec.Address,
	amount *uint256.Int,
) error {
	k := ContributionKey(launchAddress, account)
	word := amount.Bytes32()
	return mu.Insert(ctx, k, word[:])
}

func GetContributionNoController(
	ctx context.Context,
	mu state.Immutable,
	launchAddress codec.Address,
	account codec.Address,
) (*uint256.Int, error) {
	v, err := mu.GetValue(ctx, ContributionKey(launchAddress, account))
	if errors.Is(err, database.ErrNotFound) {
		return new(uint256.Int), nil
	}
	if err != nil {
		return nil, err
	}
	return new(uint256.Int).SetBytes(v), nil
}

func packAmount(p *codec.Packer, v *uint256.Int) {
	word := v.Bytes32()
	p.PackFixedBytes(word[:])
}

func unpackAmount(p *codec.Packer) *uint256.Int {
	b := make([]byte, AmountLen)
	p.UnpackFixedBytes(AmountLen, &b)
	return new(uint256.Int).SetBytes(b)
}
