// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// Licensed under the Apache License, Version 2.0

package tx

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

// DynamicFeeTx is an unsigned EIP-1559 transaction, serialized as
// 0x02 || rlp([chainId, nonce, maxPriorityFeePerGas, maxFeePerGas, gasLimit,
// destination, amount, data, accessList]).
type DynamicFeeTx struct {
	ChainID              *uint256.Int
	Nonce                *uint256.Int
	MaxPriorityFeePerGas *uint256.Int
	MaxFeePerGas         *uint256.Int
	GasLimit             *uint256.Int
	Destination          *common.Address
	Amount               *uint256.Int
	Data                 []byte
	AccessList           AccessList
}

func (tx *DynamicFeeTx) txType() Type                 { return DynamicFeeTxType }
func (tx *DynamicFeeTx) chainID() *uint256.Int        { return tx.ChainID }
func (tx *DynamicFeeTx) chainIDCeiling() *uint256.Int { return MaxChainID }
func (tx *DynamicFeeTx) signedPrefix() int            { return 9 }

func (tx *DynamicFeeTx) fieldList() []field {
	return []field{
		{"chain_id", tx.ChainID},
		{"nonce", tx.Nonce},
		{"max_priority_fee_per_gas", tx.MaxPriorityFeePerGas},
		{"max_fee_per_gas", tx.MaxFeePerGas},
		{"gas_limit", tx.GasLimit},
		{"destination", tx.Destination},
		{"amount", tx.Amount},
		{"data", tx.Data},
		{"access_list", tx.AccessList},
	}
}

func (tx *DynamicFeeTx) copy() TxData {
	return &DynamicFeeTx{
		ChainID:              cloneChainID(tx.ChainID),
		Nonce:                cloneInt(tx.Nonce),
		MaxPriorityFeePerGas: cloneInt(tx.MaxPriorityFeePerGas),
		MaxFeePerGas:         cloneInt(tx.MaxFeePerGas),
		GasLimit:             cloneInt(tx.GasLimit),
		Destination:          cloneAddress(tx.Destination),
		Amount:               cloneInt(tx.Amount),
		Data:                 cloneBytes(tx.Data),
		AccessList:           cloneAccessList(tx.AccessList),
	}
}

type dynamicFeeUnsignedRLP struct {
	ChainID              *uint256.Int
	Nonce                *uint256.Int
	MaxPriorityFeePerGas *uint256.Int
	MaxFeePerGas         *uint256.Int
	GasLimit             *uint256.Int
	Destination          *common.Address `rlp:"nil"`
	Amount               *uint256.Int
	Data                 []byte
	AccessList           AccessList
}

type dynamicFeeSignedRLP struct {
	ChainID              *uint256.Int
	Nonce                *uint256.Int
	MaxPriorityFeePerGas *uint256.Int
	MaxFeePerGas         *uint256.Int
	GasLimit             *uint256.Int
	Destination          *common.Address `rlp:"nil"`
	Amount               *uint256.Int
	Data                 []byte
	AccessList           AccessList
	YParity              *uint256.Int
	R, S                 *uint256.Int
}
