// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// Licensed under the Apache License, Version 2.0

package tx

import (
	"math/big"

	"github.com/ethereum/go-ethereum/core/types"
	"github.com/holiman/uint256"
	"github.com/pkg/errors"
)

func toUint64(name string, x *uint256.Int) (uint64, error) {
	if !x.IsUint64() {
		return 0, errors.Wrapf(ErrMalformedTransaction, "%s %s overflows uint64", name, x.Dec())
	}
	return x.Uint64(), nil
}

func fromBig(name string, x *big.Int) (*uint256.Int, error) {
	if x == nil {
		return new(uint256.Int), nil
	}
	v, overflow := uint256.FromBig(x)
	if overflow || x.Sign() < 0 {
		return nil, errors.Wrapf(ErrMalformedTransaction, "%s %s out of range", name, x)
	}
	return v, nil
}

func (t *Transaction) ethereumData(v, r, s *big.Int) (types.TxData, error) {
	switch inner := t.inner.(type) {
	case *LegacyTx:
		nonce, err := toUint64("nonce", inner.Nonce)
		if err != nil {
			return nil, err
		}
		gas, err := toUint64("gas limit", inner.GasLimit)
		if err != nil {
			return nil, err
		}
		return &types.LegacyTx{
			Nonce:    nonce,
			GasPrice: inner.GasPrice.ToBig(),
			Gas:      gas,
			To:       cloneAddress(inner.Destination),
			Value:    inner.Amount.ToBig(),
			Data:     cloneBytes(inner.Data),
			V:        v,
			R:        r,
			S:        s,
		}, nil

	case *AccessListTx:
		nonce, err := toUint64("nonce", inner.Nonce)
		if err != nil {
			return nil, err
		}
		gas, err := toUint64("gas limit", inner.GasLimit)
		if err != nil {
			return nil, err
		}
		return &types.AccessListTx{
			ChainID:    inner.ChainID.ToBig(),
			Nonce:      nonce,
			GasPrice:   inner.GasPrice.ToBig(),
			Gas:        gas,
			To:         cloneAddress(inner.Destination),
			Value:      inner.Amount.ToBig(),
			Data:       cloneBytes(inner.Data),
			AccessList: cloneAccessList(inner.AccessList),
			V:          v,
			R:          r,
			S:          s,
		}, nil

	case *DynamicFeeTx:
		nonce, err := toUint64("nonce", inner.Nonce)
		if err != nil {
			return nil, err
		}
		gas, err := toUint64("gas limit", inner.GasLimit)
		if err != nil {
			return nil, err
		}
		return &types.DynamicFeeTx{
			ChainID:    inner.ChainID.ToBig(),
			Nonce:      nonce,
			GasTipCap:  inner.MaxPriorityFeePerGas.ToBig(),
			GasFeeCap:  inner.MaxFeePerGas.ToBig(),
			Gas:        gas,
			To:         cloneAddress(inner.Destination),
			Value:      inner.Amount.ToBig(),
			Data:       cloneBytes(inner.Data),
			AccessList: cloneAccessList(inner.AccessList),
			V:          v,
			R:          r,
			S:          s,
		}, nil
	}
	return nil, errors.Wrapf(ErrUnknownTransactionType, "%s", t.Type())
}

// Ethereum returns the unsigned go-ethereum equivalent of t.
func (t *Transaction) Ethereum() (*types.Transaction, error) {
	data, err := t.ethereumData(new(big.Int), new(big.Int), new(big.Int))
	if err != nil {
		return nil, err
	}
	return types.NewTx(data), nil
}

// Ethereum returns the signed go-ethereum equivalent of s.
func (s *SignedTransaction) Ethereum() (*types.Transaction, error) {
	data, err := s.tx.ethereumData(cloneInt(s.sig.V).ToBig(), cloneInt(s.sig.R).ToBig(), cloneInt(s.sig.S).ToBig())
	if err != nil {
		return nil, err
	}
	return types.NewTx(data), nil
}

// FromEthereum builds an unsigned transaction from a go-ethereum one. Legacy
// transactions that are not replay protected get DefaultChainID.
func FromEthereum(etx *types.Transaction) (*Transaction, error) {
	value, err := fromBig("value", etx.Value())
	if err != nil {
		return nil, err
	}

	switch Type(etx.Type()) {
	case LegacyTxType:
		gasPrice, err := fromBig("gas price", etx.GasPrice())
		if err != nil {
			return nil, err
		}
		chainID := uint256.NewInt(DefaultChainID)
		if etx.Protected() {
			if chainID, err = fromBig("chain id", etx.ChainId()); err != nil {
				return nil, err
			}
		}
		return NewTx(&LegacyTx{
			Nonce:       uint256.NewInt(etx.Nonce()),
			GasPrice:    gasPrice,
			GasLimit:    uint256.NewInt(etx.Gas()),
			Destination: etx.To(),
			Amount:      value,
			Data:        etx.Data(),
			ChainID:     chainID,
		})

	case AccessListTxType:
		gasPrice, err := fromBig("gas price", etx.GasPrice())
		if err != nil {
			return nil, err
		}
		chainID, err := fromBig("chain id", etx.ChainId())
		if err != nil {
			return nil, err
		}
		return NewTx(&AccessListTx{
			ChainID:     chainID,
			Nonce:       uint256.NewInt(etx.Nonce()),
			GasPrice:    gasPrice,
			GasLimit:    uint256.NewInt(etx.Gas()),
			Destination: etx.To(),
			Amount:      value,
			Data:        etx.Data(),
			AccessList:  etx.AccessList(),
		})

	case DynamicFeeTxType:
		tip, err := fromBig("max priority fee", etx.GasTipCap())
		if err != nil {
			return nil, err
		}
		feeCap, err := fromBig("max fee", etx.GasFeeCap())
		if err != nil {
			return nil, err
		}
		chainID, err := fromBig("chain id", etx.ChainId())
		if err != nil {
			return nil, err
		}
		return NewTx(&DynamicFeeTx{
			ChainID:              chainID,
			Nonce:                uint256.NewInt(etx.Nonce()),
			MaxPriorityFeePerGas: tip,
			MaxFeePerGas:         feeCap,
			GasLimit:             uint256.NewInt(etx.Gas()),
			Destination:          etx.To(),
			Amount:               value,
			Data:                 etx.Data(),
			AccessList:           etx.AccessList(),
		})
	}
	return nil, errors.Wrapf(ErrUnknownTransactionType, "type 0x%02x", etx.Type())
}
