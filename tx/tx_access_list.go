// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// Licensed under the Apache License, Version 2.0

package tx

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

// AccessListTx is an unsigned EIP-2930 transaction, serialized as
// 0x01 || rlp([chainId, nonce, gasPrice, gasLimit, destination, amount, data, accessList]).
type AccessListTx struct {
	ChainID     *uint256.Int
	Nonce       *uint256.Int
	GasPrice    *uint256.Int
	GasLimit    *uint256.Int
	Destination *common.Address
	Amount      *uint256.Int
	Data        []byte
	AccessList  AccessList
}

func (tx *AccessListTx) txType() Type                 { return AccessListTxType }
func (tx *AccessListTx) chainID() *uint256.Int        { return tx.ChainID }
func (tx *AccessListTx) chainIDCeiling() *uint256.Int { return MaxChainID }
func (tx *AccessListTx) signedPrefix() int            { return 8 }

func (tx *AccessListTx) fieldList() []field {
	return []field{
		{"chain_id", tx.ChainID},
		{"nonce", tx.Nonce},
		{"gas_price", tx.GasPrice},
		{"gas_limit", tx.GasLimit},
		{"destination", tx.Destination},
		{"amount", tx.Amount},
		{"data", tx.Data},
		{"access_list", tx.AccessList},
	}
}

func (tx *AccessListTx) copy() TxData {
	return &AccessListTx{
		ChainID:     cloneChainID(tx.ChainID),
		Nonce:       cloneInt(tx.Nonce),
		GasPrice:    cloneInt(tx.GasPrice),
		GasLimit:    cloneInt(tx.GasLimit),
		Destination: cloneAddress(tx.Destination),
		Amount:      cloneInt(tx.Amount),
		Data:        cloneBytes(tx.Data),
		AccessList:  cloneAccessList(tx.AccessList),
	}
}

type accessListUnsignedRLP struct {
	ChainID     *uint256.Int
	Nonce       *uint256.Int
	GasPrice    *uint256.Int
	GasLimit    *uint256.Int
	Destination *common.Address `rlp:"nil"`
	Amount      *uint256.Int
	Data        []byte
	AccessList  AccessList
}

type accessListSignedRLP struct {
	ChainID     *uint256.Int
	Nonce       *uint256.Int
	GasPrice    *uint256.Int
	GasLimit    *uint256.Int
	Destination *common.Address `rlp:"nil"`
	Amount      *uint256.Int
	Data        []byte
	AccessList  AccessList
	YParity     *uint256.Int
	R, S        *uint256.Int
}
