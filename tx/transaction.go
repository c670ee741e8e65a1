// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// Licensed under the Apache License, Version 2.0

package tx

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/holiman/uint256"
	"github.com/pkg/errors"

	"github.com/luxfi/ledger-eth/apdu"
	"github.com/luxfi/ledger-eth/signature"
)

// Transaction is an unsigned transaction of one of the supported variants.
// It is immutable once built.
type Transaction struct {
	inner TxData
}

// NewTx copies inner, fills unset fields with their zero values (chain id
// defaults to DefaultChainID) and checks the variant's chain id ceiling.
func NewTx(inner TxData) (*Transaction, error) {
	if inner == nil {
		return nil, errors.Wrap(ErrUnknownTransactionType, "nil transaction data")
	}

	t := &Transaction{inner: inner.copy()}
	id, ceiling := t.inner.chainID(), t.inner.chainIDCeiling()
	if id.Gt(ceiling) {
		return nil, errors.Wrapf(ErrChainIDOutOfRange, "%s transaction chain id %s exceeds %s", t.Type(), id.Dec(), ceiling.Dec())
	}
	return t, nil
}

// Type returns the EIP-2718 type of the transaction.
func (t *Transaction) Type() Type {
	return t.inner.txType()
}

// ChainID returns a copy of the chain id.
func (t *Transaction) ChainID() *uint256.Int {
	return new(uint256.Int).Set(t.inner.chainID())
}

// Inner returns a copy of the variant data.
func (t *Transaction) Inner() TxData {
	return t.inner.copy()
}

func (t *Transaction) values(fields []field) []interface{} {
	values := make([]interface{}, len(fields))
	for i, f := range fields {
		values[i] = f.value
	}
	return values
}

func (t *Transaction) encode(values []interface{}) ([]byte, error) {
	payload, err := rlp.EncodeToBytes(values)
	if err != nil {
		return nil, errors.Wrapf(err, "encoding %s transaction", t.Type())
	}
	if t.Type() == LegacyTxType {
		return payload, nil
	}
	return append([]byte{byte(t.Type())}, payload...), nil
}

// MarshalBinary returns the unsigned serialization: the bytes the device
// signs. Typed variants are prefixed by their type byte.
func (t *Transaction) MarshalBinary() ([]byte, error) {
	if t == nil || t.inner == nil {
		return nil, errors.Wrap(ErrUnknownTransactionType, "transaction has no variant data")
	}
	return t.encode(t.values(t.inner.fieldList()))
}

// Hex returns the unsigned serialization as a 0x-prefixed string.
func (t *Transaction) Hex() (string, error) {
	b, err := t.MarshalBinary()
	if err != nil {
		return "", err
	}
	return hexutil.Encode(b), nil
}

// SigningHash is the keccak256 digest of the unsigned serialization.
func (t *Transaction) SigningHash() (common.Hash, error) {
	b, err := t.MarshalBinary()
	if err != nil {
		return common.Hash{}, err
	}
	return crypto.Keccak256Hash(b), nil
}

// WireFields projects the transaction onto JSON-RPC field names.
func (t *Transaction) WireFields() WireFields {
	return project(t.inner.fieldList())
}

// WithSignature attaches sig. For typed variants V is taken as y-parity.
func (t *Transaction) WithSignature(sig signature.Signature) *SignedTransaction {
	sig.YParity = t.Type() != LegacyTxType
	return &SignedTransaction{tx: t, sig: sig}
}

// DeviceSignature converts a device reply into the signature of t.
//
// For legacy transactions the device computes v = chainId*2 + 35 + parity
// but only returns its low byte, so v is rebuilt from the chain id once it
// no longer fits in one byte. Typed variants return the y-parity directly.
func (t *Transaction) DeviceSignature(raw apdu.RawSignature) signature.Signature {
	if t.Type() != LegacyTxType {
		return signature.FromDevice(raw, true)
	}

	sig := signature.FromDevice(raw, false)
	base := new(uint256.Int).Mul(t.inner.chainID(), uint256.NewInt(2))
	base.AddUint64(base, 35)

	if base.GtUint64(254) {
		parity := raw.V - byte(base.Uint64())
		sig.V = base.AddUint64(base, uint64(parity))
	}
	return sig
}
