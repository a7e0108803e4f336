// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package actions

import (
	"bytes"
	"context"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/holiman/uint256"

	"github.com/ava-labs/hypersdk/chain"
	"github.com/ava-labs/hypersdk/codec"
	"github.com/ava-labs/hypersdk/examples/launchvm/consts"
	"github.com/ava-labs/hypersdk/examples/launchvm/curves"
	"github.com/ava-labs/hypersdk/examples/launchvm/storage"
	"github.com/ava-labs/hypersdk/state"
)

var (
	_ codec.Typed  = (*CreateLaunchResult)(nil)
	_ chain.Action = (*CreateLaunch)(nil)
)

// Defaults applied when the corresponding field is zero
var (
	defaultBasePrice   = uint256.NewInt(1_000_000_000)
	defaultMaxPrice    = uint256.NewInt(100_000_000_000)
	defaultCurveSupply = uint256.MustFromDecimal("1000000000000000000000000")
)

type CreateLaunchResult struct {
	LaunchAddress codec.Address `serialize:"true" json:"launchAddress"`
	TokenAddress  codec.Address `serialize:"true" json:"tokenAddress"`
}

func (*CreateLaunchResult) GetTypeID() uint8 {
	return consts.CreateLaunchID
}

// CreateLaunch creates the launched token and its bonding-curve sale in one
// shot. The token is owned by the launch address, so only curve buys can mint
// it. The promo budget is escrowed in Coin from the creator at creation.
type CreateLaunch struct {
	Name     []byte `serialize:"true" json:"name"`
	Symbol   []byte `serialize:"true" json:"symbol"`
	Metadata []byte `serialize:"true" json:"metadata"`

	Curve               uint8  `serialize:"true" json:"curve"`
	BasePrice           []byte `serialize:"true" json:"basePrice"`
	MaxPrice            []byte `serialize:"true" json:"maxPrice"`
	CurveSupply         []byte `serialize:"true" json:"curveSupply"`
	GraduationThreshold []byte `serialize:"true" json:"graduationThreshold"`
	Deadline            int64  `serialize:"true" json:"deadline"`

	PlatformFeeBps uint64        `serialize:"true" json:"platformFeeBps"`
	CreatorFeeBps  uint64        `serialize:"true" json:"creatorFeeBps"`
	PlatformWallet codec.Address `serialize:"true" json:"platformWallet"`

	PromoBudget []byte `serialize:"true" json:"promoBudget"`
}

// ComputeUnits implements chain.Action.
func (*CreateLaunch) ComputeUnits(chain.Rules) uint64 {
	return CreateLaunchComputeUnits
}

// Execute implements chain.Action.
func (c *CreateLaunch) Execute(ctx context.Context, _ chain.Rules, mu state.Mutable, timestamp int64, actor codec.Address, _ ids.ID) (codec.Typed, error) {
	if len(c.Name) == 0 {
		return nil, ErrOutputTokenNameEmpty
	}
	if len(c.Symbol) == 0 {
		return nil, ErrOutputTokenSymbolEmpty
	}
	if len(c.Metadata) == 0 {
		return nil, ErrOutputTokenMetadataEmpty
	}
	if len(c.Name) > storage.MaxTokenNameSize {
		return nil, ErrOutputTokenNameTooLarge
	}
	if len(c.Symbol) > storage.MaxTokenSymbolSize {
		return nil, ErrOutputTokenSymbolTooLarge
	}
	if len(c.Metadata) > storage.MaxTokenMetadataSize {
		return nil, ErrOutputTokenMetadataTooLarge
	}
	if bytes.Equal(c.Name, []byte(consts.Name)) {
		return nil, ErrOutputForbiddenTokenName
	}

	curve, ok := curves.FromByte(c.Curve)
	if !ok {
		return nil, ErrOutputInvalidCurveType
	}
	if c.PlatformFeeBps > MaxPlatformFeeBps || c.CreatorFeeBps > MaxPlatformFeeBps {
		return nil, ErrOutputInvalidFee
	}

	basePrice, err := amountOrDefault(c.BasePrice, defaultBasePrice)
	if err != nil {
		return nil, err
	}
	maxPrice, err := amountOrDefault(c.MaxPrice, defaultMaxPrice)
	if err != nil {
		return nil, err
	}
	curveSupply, err := amountOrDefault(c.CurveSupply, defaultCurveSupply)
	if err != nil {
		return nil, err
	}
	threshold, err := decodeAmount(c.GraduationThreshold)
	if err != nil {
		return nil, err
	}
	promoBudget, err := decodeAmount(c.PromoBudget)
	if err != nil {
		return nil, err
	}

	if !basePrice.Lt(maxPrice) {
		return nil, ErrOutputInvalidPrices
	}
	// Caps keep every curve product within 256 bits
	if maxPrice.Gt(storage.MaxAmount) || curveSupply.Gt(storage.MaxAmount) {
		return nil, ErrOutputInvalidAmount
	}
	if curveSupply.IsZero() {
		return nil, ErrOutputInvalidAmount
	}
	if threshold.IsZero() {
		return nil, ErrOutputInvalidThreshold
	}
	if c.Deadline <= timestamp {
		return nil, ErrOutputInvalidDeadline
	}

	tokenAddress := storage.TokenAddress(c.Name, c.Symbol, c.Metadata)
	if storage.TokenExists(ctx, mu, tokenAddress) {
		return nil, ErrOutputTokenAlreadyExists
	}
	launchAddress := storage.LaunchAddress(tokenAddress)
	if storage.LaunchExists(ctx, mu, launchAddress) {
		return nil, ErrOutputLaunchAlreadyExists
	}

	if err := storage.SetTokenInfo(ctx, mu, tokenAddress, c.Name, c.Symbol, c.Metadata, zeroAmount(), launchAddress); err != nil {
		return nil, err
	}

	// Escrow the promo budget so milestone claims are always payable
	if !promoBudget.IsZero() {
		balance, err := storage.GetTokenAccountBalanceNoController(ctx, mu, storage.CoinAddress, actor)
		if err != nil {
			return nil, err
		}
		if balance.Lt(promoBudget) {
			return nil, ErrOutputInsufficientTokenBalance
		}
		if err := storage.TransferToken(ctx, mu, storage.CoinAddress, actor, launchAddress, promoBudget); err != nil {
			return nil, err
		}
	}

	launch := &storage.Launch{
		Token:               tokenAddress,
		Creator:             actor,
		PlatformWallet:      c.PlatformWallet,
		Curve:               curve,
		Status:              storage.StatusActive,
		BasePrice:           basePrice,
		MaxPrice:            maxPrice,
		CurveSupply:         curveSupply,
		TokensSold:          zeroAmount(),
		FundsRaised:         zeroAmount(),
		GraduationThreshold: threshold,
		Deadline:            c.Deadline,
		PlatformFeeBps:      c.PlatformFeeBps,
		CreatorFeeBps:       c.CreatorFeeBps,
		CreatorFees:         zeroAmount(),
		PromoBudget:         promoBudget,
		PromoReleased:       zeroAmount(),
	}
	if err := storage.SetLaunch(ctx, mu, launchAddress, launch); err != nil {
		return nil, err
	}

	return &CreateLaunchResult{
		LaunchAddress: launchAddress,
		TokenAddress:  tokenAddress,
	}, nil
}

// GetTypeID implements chain.Action.
func (*CreateLaunch) GetTypeID() uint8 {
	return consts.CreateLaunchID
}

// StateKeys implements chain.Action.
func (c *CreateLaunch) StateKeys(actor codec.Address) state.Keys {
	tokenAddress := storage.TokenAddress(c.Name, c.Symbol, c.Metadata)
	launchAddress := storage.LaunchAddress(tokenAddress)
	return state.Keys{
		string(storage.TokenInfoKey(tokenAddress)):                                 state.All,
		string(storage.LaunchKey(launchAddress)):                                   state.All,
		string(storage.TokenAccountBalanceKey(storage.CoinAddress, actor)):         state.All,
		string(storage.TokenAccountBalanceKey(storage.CoinAddress, launchAddress)): state.All,
	}
}

// ValidRange implements chain.Action.
func (*CreateLaunch) ValidRange(chain.Rules) (start int64, end int64) {
	return -1, -1
}

func amountOrDefault(v []byte, def *uint256.Int) (*uint256.Int, error) {
	amount, err := decodeAmount(v)
	if err != nil {
		return nil, err
	}
	if amount.IsZero() {
		return new(uint256.Int).Set(def), nil
	}
	return amount, nil
}
