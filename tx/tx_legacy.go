// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// Licensed under the Apache License, Version 2.0

package tx

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

// LegacyTx is an unsigned EIP-155 transaction.
//
// The device signs rlp([nonce, gasPrice, gasLimit, destination, amount, data,
// chainId, 0, 0]). ChainID must not exceed MaxLegacyChainID.
type LegacyTx struct {
	Nonce       *uint256.Int
	GasPrice    *uint256.Int
	GasLimit    *uint256.Int
	Destination *common.Address // nil means contract creation
	Amount      *uint256.Int
	Data        []byte
	ChainID     *uint256.Int
}

func (tx *LegacyTx) txType() Type                 { return LegacyTxType }
func (tx *LegacyTx) chainID() *uint256.Int        { return tx.ChainID }
func (tx *LegacyTx) chainIDCeiling() *uint256.Int { return MaxLegacyChainID }
func (tx *LegacyTx) signedPrefix() int            { return 6 }

func (tx *LegacyTx) fieldList() []field {
	return []field{
		{"nonce", tx.Nonce},
		{"gas_price", tx.GasPrice},
		{"gas_limit", tx.GasLimit},
		{"destination", tx.Destination},
		{"amount", tx.Amount},
		{"data", tx.Data},
		{"chain_id", tx.ChainID},
		{"dummy1", new(uint256.Int)},
		{"dummy2", new(uint256.Int)},
	}
}

func (tx *LegacyTx) copy() TxData {
	return &LegacyTx{
		Nonce:       cloneInt(tx.Nonce),
		GasPrice:    cloneInt(tx.GasPrice),
		GasLimit:    cloneInt(tx.GasLimit),
		Destination: cloneAddress(tx.Destination),
		Amount:      cloneInt(tx.Amount),
		Data:        cloneBytes(tx.Data),
		ChainID:     cloneChainID(tx.ChainID),
	}
}

// legacyUnsignedRLP is the decode target of the 9-field unsigned form.
type legacyUnsignedRLP struct {
	Nonce       *uint256.Int
	GasPrice    *uint256.Int
	GasLimit    *uint256.Int
	Destination *common.Address `rlp:"nil"`
	Amount      *uint256.Int
	Data        []byte
	ChainID     *uint256.Int
	Dummy1      *uint256.Int
	Dummy2      *uint256.Int
}

type legacySignedRLP struct {
	Nonce       *uint256.Int
	GasPrice    *uint256.Int
	GasLimit    *uint256.Int
	Destination *common.Address `rlp:"nil"`
	Amount      *uint256.Int
	Data        []byte
	V, R, S     *uint256.Int
}
