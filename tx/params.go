// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// Licensed under the Apache License, Version 2.0

package tx

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

// Params describes a transaction without committing to a variant.
type Params struct {
	Destination *common.Address
	Amount      *uint256.Int
	GasLimit    *uint256.Int
	Nonce       *uint256.Int
	Data        []byte
	ChainID     *uint256.Int

	GasPrice             *uint256.Int
	MaxPriorityFeePerGas *uint256.Int
	MaxFeePerGas         *uint256.Int

	// AccessList selects an access-list transaction when non-nil, even if
	// empty, unless a fee-market transaction is built.
	AccessList AccessList
}

func isSet(x *uint256.Int) bool {
	return x != nil && !x.IsZero()
}

// Build picks the variant for p:
// a max fee selects a fee-market transaction, an access list selects an
// access-list transaction, anything else is legacy.
func Build(p Params) (*Transaction, error) {
	if isSet(p.GasPrice) && (isSet(p.MaxPriorityFeePerGas) || isSet(p.MaxFeePerGas)) {
		return nil, ErrIncompatibleFees
	}

	if isSet(p.MaxFeePerGas) {
		if p.MaxPriorityFeePerGas == nil {
			return nil, ErrMissingPriorityFee
		}
		return NewTx(&DynamicFeeTx{
			ChainID:              p.ChainID,
			Nonce:                p.Nonce,
			MaxPriorityFeePerGas: p.MaxPriorityFeePerGas,
			MaxFeePerGas:         p.MaxFeePerGas,
			GasLimit:             p.GasLimit,
			Destination:          p.Destination,
			Amount:               p.Amount,
			Data:                 p.Data,
			AccessList:           p.AccessList,
		})
	}

	// Without any fee field the gas price defaults to zero.
	if p.AccessList != nil {
		return NewTx(&AccessListTx{
			ChainID:     p.ChainID,
			Nonce:       p.Nonce,
			GasPrice:    p.GasPrice,
			GasLimit:    p.GasLimit,
			Destination: p.Destination,
			Amount:      p.Amount,
			Data:        p.Data,
			AccessList:  p.AccessList,
		})
	}

	return NewTx(&LegacyTx{
		Nonce:       p.Nonce,
		GasPrice:    p.GasPrice,
		GasLimit:    p.GasLimit,
		Destination: p.Destination,
		Amount:      p.Amount,
		Data:        p.Data,
		ChainID:     p.ChainID,
	})
}
