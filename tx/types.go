// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// Licensed under the Apache License, Version 2.0

// Package tx encodes and decodes the Ethereum transaction variants the
// device can sign: legacy (EIP-155), access-list (EIP-2930) and fee-market
// (EIP-1559).
package tx

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/holiman/uint256"
	"github.com/pkg/errors"
)

// Type is the EIP-2718 transaction type.
type Type byte

const (
	LegacyTxType     Type = 0x00
	AccessListTxType Type = 0x01
	DynamicFeeTxType Type = 0x02
)

func (t Type) String() string {
	switch t {
	case LegacyTxType:
		return "legacy"
	case AccessListTxType:
		return "access-list"
	case DynamicFeeTxType:
		return "fee-market"
	}
	return fmt.Sprintf("type 0x%02x", byte(t))
}

// DefaultChainID is used when a transaction leaves its chain id unset.
const DefaultChainID = 1

var (
	// MaxLegacyChainID is the largest chain id the device signs correctly
	// for a legacy transaction.
	MaxLegacyChainID = uint256.NewInt(0xffffffff + 1)

	// MaxChainID is the largest chain id the device can render for typed
	// transactions.
	MaxChainID = uint256.NewInt(999_999_999_999_999)
)

var (
	ErrChainIDOutOfRange      = errors.New("chain id out of range")
	ErrUnknownTransactionType = errors.New("unknown transaction type")
	ErrMalformedTransaction   = errors.New("malformed transaction")
	ErrIncompatibleFees       = errors.New("gas price is incompatible with max priority fee and max fee")
	ErrMissingPriorityFee     = errors.New("max fee per gas requires max priority fee per gas")
)

// AccessList is an EIP-2930 access list: (address, storage keys) pairs.
type AccessList = types.AccessList

// AccessTuple is one access list entry.
type AccessTuple = types.AccessTuple

// field is one named entry of a variant's serialization, in wire order.
type field struct {
	name  string
	value interface{}
}

// TxData is the closed set of transaction variants. Each variant fixes its
// field order, type prefix and chain id ceiling.
type TxData interface {
	txType() Type
	chainID() *uint256.Int
	chainIDCeiling() *uint256.Int
	// fieldList is the unsigned serialization order.
	fieldList() []field
	// signedPrefix is the number of leading fieldList entries kept in the
	// signed serialization.
	signedPrefix() int
	// copy returns a deep copy with unset numbers, data and access lists
	// replaced by their zero values.
	copy() TxData
}

func cloneInt(x *uint256.Int) *uint256.Int {
	if x == nil {
		return new(uint256.Int)
	}
	return new(uint256.Int).Set(x)
}

func cloneAddress(a *common.Address) *common.Address {
	if a == nil {
		return nil
	}
	cpy := *a
	return &cpy
}

func cloneBytes(b []byte) []byte {
	return append([]byte{}, b...)
}

func cloneAccessList(al AccessList) AccessList {
	cpy := make(AccessList, len(al))
	for i, tuple := range al {
		cpy[i] = AccessTuple{
			Address:     tuple.Address,
			StorageKeys: append([]common.Hash{}, tuple.StorageKeys...),
		}
	}
	return cpy
}

func cloneChainID(id *uint256.Int) *uint256.Int {
	if id == nil {
		return uint256.NewInt(DefaultChainID)
	}
	return new(uint256.Int).Set(id)
}
