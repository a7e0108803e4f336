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
	"github.com/ava-labs/hypersdk/state"
	"github.com/ava-labs/hypersdk/utils"

	hconsts "github.com/ava-labs/hypersdk/consts"
)

type ReadState func(context.Context, [][]byte) ([][]byte, []error)

// Amounts live in state as 32-byte big-endian words.
const AmountLen = 32

// ToAmount decodes a wire amount (big-endian, at most 32 bytes).
func ToAmount(v []byte) (*uint256.Int, error) {
	if len(v) > AmountLen {
		return nil, ErrAmountTooLarge
	}
	return new(uint256.Int).SetBytes(v), nil
}

func TokenAddress(name []byte, symbol []byte, metadata []byte) codec.Address {
	v := make([]byte, len(name)+len(symbol)+len(metadata))
	copy(v, name)
	copy(v[len(name):], symbol)
	copy(v[len(name)+len(symbol):], metadata)
	id := utils.ToID(v)
	return codec.CreateAddress(consts.TOKENID, id)
}

func TokenInfoKey(tokenAddress codec.Address) []byte {
	k := make([]byte, 1+codec.AddressLen+hconsts.Uint16Len)
	k[0] = tokenInfoPrefix
	copy(k[1:1+codec.AddressLen], tokenAddress[:])
	binary.BigEndian.PutUint16(k[1+codec.AddressLen:], TokenInfoChunks)
	return k
}

func TokenAccountBalanceKey(token codec.Address, account codec.Address) []byte {
	k := make([]byte, 1+codec.AddressLen+codec.AddressLen+hconsts.Uint16Len)
	k[0] = tokenAccountBalancePrefix
	copy(k[1:], token[:])
	copy(k[1+codec.AddressLen:], account[:])
	binary.BigEndian.PutUint16(k[1+codec.AddressLen+codec.AddressLen:], TokenAccountBalanceChunks)
	return k
}

func SetTokenInfo(
	ctx context.Context,
	mu state.Mutable,
	tokenAddress codec.Address,
	name []byte,
	symbol []byte,
	metadata []byte,
	totalSupply *uint256.Int,
	owner codec.Address,
) error {
	k := TokenInfoKey(tokenAddress)
	nameLen := len(name)
	symbolLen := len(symbol)
	metadataLen := len(metadata)
	tokenInfoSize := hconsts.Uint16Len + nameLen + hconsts.Uint16Len + symbolLen + hconsts.Uint16Len + metadataLen + AmountLen + codec.AddressLen
	v := make([]byte, tokenInfoSize)

	binary.BigEndian.PutUint16(v, uint16(nameLen))
	copy(v[hconsts.Uint16Len:], name)
	offset := hconsts.Uint16Len + nameLen
	binary.BigEndian.PutUint16(v[offset:], uint16(symbolLen))
	copy(v[offset+hconsts.Uint16Len:], symbol)
	offset += hconsts.Uint16Len + symbolLen
	binary.BigEndian.PutUint16(v[offset:], uint16(metadataLen))
	copy(v[offset+hconsts.Uint16Len:], metadata)
	offset += hconsts.Uint16Len + metadataLen
	supplyWord := totalSupply.Bytes32()
	copy(v[offset:], supplyWord[:])
	copy(v[offset+AmountLen:], owner[:])
	return mu.Insert(ctx, k, v)
}

func GetTokenInfoNoController(
	ctx context.Context,
	mu state.Immutable,
	tokenAddress codec.Address,
) ([]byte, []byte, []byte, *uint256.Int, codec.Address, error) {
	k := TokenInfoKey(tokenAddress)
	v, err := mu.GetValue(ctx, k)
	if err != nil {
		return nil, nil, nil, nil, codec.EmptyAddress, err
	}
	return innerGetTokenInfo(v)
}

// Used to serve RPC queries
func GetTokenInfoFromState(
	ctx context.Context,
	f ReadState,
	tokenAddress codec.Address,
) ([]byte, []byte, []byte, *uint256.Int, codec.Address, error) {
	k := TokenInfoKey(tokenAddress)
	values, errs := f(ctx, [][]byte{k})
	if errs[0] != nil {
		return nil, nil, nil, nil, codec.EmptyAddress, errs[0]
	}
	return innerGetTokenInfo(values[0])
}

func innerGetTokenInfo(
	v []byte,
) ([]byte, []byte, []byte, *uint256.Int, codec.Address, error) {
	nameLen := binary.BigEndian.Uint16(v)
	name := v[hconsts.Uint16Len : hconsts.Uint16Len+nameLen]
	offset := hconsts.Uint16Len + int(nameLen)
	symbolLen := binary.BigEndian.Uint16(v[offset:])
	symbol := v[offset+hconsts.Uint16Len : offset+hconsts.Uint16Len+int(symbolLen)]
	offset += hconsts.Uint16Len + int(symbolLen)
	metadataLen := binary.BigEndian.Uint16(v[offset:])
	metadata := v[offset+hconsts.Uint16Len : offset+hconsts.Uint16Len+int(metadataLen)]
	offset += hconsts.Uint16Len + int(metadataLen)
	totalSupply := new(uint256.Int).SetBytes(v[offset : offset+AmountLen])
	owner := codec.Address(v[offset+AmountLen:])

	return name, symbol, metadata, totalSupply, owner, nil
}

func SetTokenAccountBalance(
	ctx context.Context,
	mu state.Mutable,
	tokenAddress codec.Address,
	account codec.Address,
	balance *uint256.Int,
) error {
	k := TokenAccountBalanceKey(tokenAddress, account)
	word := balance.Bytes32()
	return mu.Insert(ctx, k, word[:])
}

func GetTokenAccountBalanceNoController(
	ctx context.Context,
	mu state.Immutable,
	tokenAddress codec.Address,
	account codec.Address,
) (*uint256.Int, error) {
	k := TokenAccountBalanceKey(tokenAddress, account)
	v, err := mu.GetValue(ctx, k)
	if errors.Is(err, database.ErrNotFound) {
		return new(uint256.Int), nil
	}
	if err != nil {
		return nil, err
	}
	return new(uint256.Int).SetBytes(v), nil
}

// Used to serve RPC queries
func GetTokenAccountBalanceFromState(
	ctx context.Context,
	f ReadState,
	tokenAddress codec.Address,
	account codec.Address,
) (*uint256.Int, error) {
	k := TokenAccountBalanceKey(tokenAddress, account)
	values, errs := f(ctx, [][]byte{k})
	if errors.Is(errs[0], database.ErrNotFound) {
		return new(uint256.Int), nil
	}
	if errs[0] != nil {
		return nil, errs[0]
	}
	return new(uint256.Int).SetBytes(values[0]), nil
}

// MintToken updates both the token info state and the recipient's account.
// Minting past MaxAmount fails so amount products stay within 256 bits.
func MintToken(
	ctx context.Context,
	mu state.Mutable,
	tokenAddress codec.Address,
	to codec.Address,
	mintAmount *uint256.Int,
) error {
	tName, tSymbol, tMetadata, tSupply, tOwner, err := GetTokenInfoNoController(ctx, mu, tokenAddress)
	if err != nil {
		return err
	}
	balance, err := GetTokenAccountBalanceNoController(ctx, mu, tokenAddress, to)
	if err != nil {
		return err
	}
	newTotalSupply := new(uint256.Int).Add(tSupply, mintAmount)
	if newTotalSupply.Gt(MaxAmount) {
		return ErrExceedsMaxSupply
	}
	newBalance := new(uint256.Int).Add(balance, mintAmount)
	if err := SetTokenInfo(ctx, mu, tokenAddress, tName, tSymbol, tMetadata, newTotalSupply, tOwner); err != nil {
		return err
	}
	return SetTokenAccountBalance(ctx, mu, tokenAddress, to, newBalance)
}

func BurnToken(
	ctx context.Context,
	mu state.Mutable,
	tokenAddress codec.Address,
	from codec.Address,
	value *uint256.Int,
) error {
	balance, err := GetTokenAccountBalanceNoController(ctx, mu, tokenAddress, from)
	if err != nil {
		return err
	}
	name, symbol, metadata, totalSupply, owner, err := GetTokenInfoNoController(ctx, mu, tokenAddress)
	if err != nil {
		return err
	}

	if balance.Lt(value) {
		return ErrInsufficientTokens
	}
	if totalSupply.Lt(value) {
		return ErrInvalidBalance
	}
	newBalance := new(uint256.Int).Sub(balance, value)
	newTotalSupply := new(uint256.Int).Sub(totalSupply, value)

	if err = SetTokenAccountBalance(ctx, mu, tokenAddress, from, newBalance); err != nil {
		return err
	}
	return SetTokenInfo(ctx, mu, tokenAddress, name, symbol, metadata, newTotalSupply, owner)
}

func TransferToken(
	ctx context.Context,
	mu state.Mutable,
	tokenAddress codec.Address,
	from codec.Address,
	to codec.Address,
	value *uint256.Int,
) error {
	fromBalance, err := GetTokenAccountBalanceNoController(ctx, mu, tokenAddress, from)
	if err != nil {
		return err
	}
	if fromBalance.Lt(value) {
		return ErrInsufficientTokens
	}
	// A self-transfer is a no-op; writing both legs would double-count
	if from == to {
		return nil
	}
	toBalance, err := GetTokenAccountBalanceNoController(ctx, mu, tokenAddress, to)
	if err != nil {
		return err
	}
	newFromBalance := new(uint256.Int).Sub(fromBalance, value)
	newToBalance := new(uint256.Int).Add(toBalance, value)
	if err = SetTokenAccountBalance(ctx, mu, tokenAddress, from, newFromBalance); err != nil {
		return err
	}
	return SetTokenAccountBalance(ctx, mu, tokenAddress, to, newToBalance)
}

func TokenExists(
	ctx context.Context,
	mu state.Immutable,
	tokenAddress codec.Address,
) bool {
	v, err := mu.GetValue(ctx, TokenInfoKey(tokenAddress))
	return v != nil && err == nil
}
