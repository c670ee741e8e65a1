// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// Licensed under the Apache License, Version 2.0

package tx

import (
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/holiman/uint256"
	"github.com/pkg/errors"

	"github.com/luxfi/ledger-eth/signature"
)

// DetectType inspects the leading byte of a raw transaction. A byte of 0x7f
// or above starts an RLP list and marks a legacy transaction.
func DetectType(raw []byte) (Type, error) {
	if len(raw) == 0 {
		return 0, errors.Wrap(ErrMalformedTransaction, "empty transaction")
	}

	switch b := raw[0]; {
	case b >= 0x7f:
		return LegacyTxType, nil
	case Type(b) == AccessListTxType, Type(b) == DynamicFeeTxType:
		return Type(b), nil
	default:
		return 0, errors.Wrapf(ErrUnknownTransactionType, "type 0x%02x", b)
	}
}

func decodePayload(raw []byte, typ Type, into interface{}) error {
	payload := raw
	if typ != LegacyTxType {
		payload = raw[1:]
	}
	if err := rlp.DecodeBytes(payload, into); err != nil {
		return errors.Wrapf(ErrMalformedTransaction, "%s transaction: %v", typ, err)
	}
	return nil
}

// DecodeUnsigned parses an unsigned serialization as produced by
// Transaction.MarshalBinary.
func DecodeUnsigned(raw []byte) (*Transaction, error) {
	typ, err := DetectType(raw)
	if err != nil {
		return nil, err
	}
	return DecodeUnsignedAs(typ, raw)
}

// DecodeUnsignedAs parses an unsigned serialization that must be of type typ.
func DecodeUnsignedAs(typ Type, raw []byte) (*Transaction, error) {
	if err := expectType(typ, raw); err != nil {
		return nil, err
	}

	switch typ {
	case LegacyTxType:
		var dec legacyUnsignedRLP
		if err := decodePayload(raw, typ, &dec); err != nil {
			return nil, err
		}
		if !dec.Dummy1.IsZero() || !dec.Dummy2.IsZero() {
			return nil, errors.Wrap(ErrMalformedTransaction, "legacy transaction has non-zero EIP-155 placeholders")
		}
		return NewTx(&LegacyTx{
			Nonce:       dec.Nonce,
			GasPrice:    dec.GasPrice,
			GasLimit:    dec.GasLimit,
			Destination: dec.Destination,
			Amount:      dec.Amount,
			Data:        dec.Data,
			ChainID:     dec.ChainID,
		})

	case AccessListTxType:
		var dec accessListUnsignedRLP
		if err := decodePayload(raw, typ, &dec); err != nil {
			return nil, err
		}
		return NewTx(&AccessListTx{
			ChainID:     dec.ChainID,
			Nonce:       dec.Nonce,
			GasPrice:    dec.GasPrice,
			GasLimit:    dec.GasLimit,
			Destination: dec.Destination,
			Amount:      dec.Amount,
			Data:        dec.Data,
			AccessList:  dec.AccessList,
		})

	case DynamicFeeTxType:
		var dec dynamicFeeUnsignedRLP
		if err := decodePayload(raw, typ, &dec); err != nil {
			return nil, err
		}
		return NewTx(&DynamicFeeTx{
			ChainID:              dec.ChainID,
			Nonce:                dec.Nonce,
			MaxPriorityFeePerGas: dec.MaxPriorityFeePerGas,
			MaxFeePerGas:         dec.MaxFeePerGas,
			GasLimit:             dec.GasLimit,
			Destination:          dec.Destination,
			Amount:               dec.Amount,
			Data:                 dec.Data,
			AccessList:           dec.AccessList,
		})
	}
	return nil, errors.Wrapf(ErrUnknownTransactionType, "%s", typ)
}

// DecodeSigned parses a network serialization as produced by
// SignedTransaction.MarshalBinary.
//
// The chain id of a legacy transaction is derived from v; a pre-EIP-155 v
// of 27 or 28 yields chain id zero. Chain id ceilings are not enforced on
// transactions that are already signed.
func DecodeSigned(raw []byte) (*SignedTransaction, error) {
	typ, err := DetectType(raw)
	if err != nil {
		return nil, err
	}
	return DecodeSignedAs(typ, raw)
}

// DecodeSignedHex is DecodeSigned for a 0x-prefixed hex string.
func DecodeSignedHex(s string) (*SignedTransaction, error) {
	raw, err := hexutil.Decode(s)
	if err != nil {
		return nil, errors.Wrap(ErrMalformedTransaction, err.Error())
	}
	return DecodeSigned(raw)
}

// DecodeSignedAs parses a network serialization that must be of type typ.
func DecodeSignedAs(typ Type, raw []byte) (*SignedTransaction, error) {
	if err := expectType(typ, raw); err != nil {
		return nil, err
	}

	switch typ {
	case LegacyTxType:
		var dec legacySignedRLP
		if err := decodePayload(raw, typ, &dec); err != nil {
			return nil, err
		}
		inner := &LegacyTx{
			Nonce:       dec.Nonce,
			GasPrice:    dec.GasPrice,
			GasLimit:    dec.GasLimit,
			Destination: dec.Destination,
			Amount:      dec.Amount,
			Data:        dec.Data,
			ChainID:     chainIDFromV(dec.V),
		}
		t := &Transaction{inner: inner.copy()}
		return t.WithSignature(signature.New(dec.V, dec.R, dec.S)), nil

	case AccessListTxType:
		var dec accessListSignedRLP
		if err := decodePayload(raw, typ, &dec); err != nil {
			return nil, err
		}
		inner := &AccessListTx{
			ChainID:     dec.ChainID,
			Nonce:       dec.Nonce,
			GasPrice:    dec.GasPrice,
			GasLimit:    dec.GasLimit,
			Destination: dec.Destination,
			Amount:      dec.Amount,
			Data:        dec.Data,
			AccessList:  dec.AccessList,
		}
		t := &Transaction{inner: inner.copy()}
		return t.WithSignature(signature.NewYParity(dec.YParity, dec.R, dec.S)), nil

	case DynamicFeeTxType:
		var dec dynamicFeeSignedRLP
		if err := decodePayload(raw, typ, &dec); err != nil {
			return nil, err
		}
		inner := &DynamicFeeTx{
			ChainID:              dec.ChainID,
			Nonce:                dec.Nonce,
			MaxPriorityFeePerGas: dec.MaxPriorityFeePerGas,
			MaxFeePerGas:         dec.MaxFeePerGas,
			GasLimit:             dec.GasLimit,
			Destination:          dec.Destination,
			Amount:               dec.Amount,
			Data:                 dec.Data,
			AccessList:           dec.AccessList,
		}
		t := &Transaction{inner: inner.copy()}
		return t.WithSignature(signature.NewYParity(dec.YParity, dec.R, dec.S)), nil
	}
	return nil, errors.Wrapf(ErrUnknownTransactionType, "%s", typ)
}

func expectType(typ Type, raw []byte) error {
	got, err := DetectType(raw)
	if err != nil {
		return err
	}
	if got != typ {
		return errors.Wrapf(ErrMalformedTransaction, "not a %s transaction", typ)
	}
	return nil
}

func chainIDFromV(v *uint256.Int) *uint256.Int {
	if v == nil || v.LtUint64(35) {
		return new(uint256.Int)
	}
	id := new(uint256.Int).SubUint64(v, 35)
	return id.Rsh(id, 1)
}
