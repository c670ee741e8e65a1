// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// Licensed under the Apache License, Version 2.0

package tx

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/pkg/errors"

	"github.com/luxfi/ledger-eth/signature"
)

// SignedTransaction is a transaction together with its signature.
type SignedTransaction struct {
	tx  *Transaction
	sig signature.Signature
}

// Transaction returns the unsigned transaction.
func (s *SignedTransaction) Transaction() *Transaction {
	return s.tx
}

// Type returns the EIP-2718 type of the transaction.
func (s *SignedTransaction) Type() Type {
	return s.tx.Type()
}

// Signature returns v (or y-parity), r and s.
func (s *SignedTransaction) Signature() signature.Signature {
	return s.sig
}

// MarshalBinary returns the network serialization: the variant's fields
// (without the EIP-155 placeholders for legacy) followed by v, r and s.
func (s *SignedTransaction) MarshalBinary() ([]byte, error) {
	fields := s.tx.inner.fieldList()
	values := s.tx.values(fields[:s.tx.inner.signedPrefix()])
	values = append(values, cloneInt(s.sig.V), cloneInt(s.sig.R), cloneInt(s.sig.S))
	return s.tx.encode(values)
}

// RawTransaction returns the broadcastable 0x-prefixed hex encoding.
func (s *SignedTransaction) RawTransaction() (string, error) {
	b, err := s.MarshalBinary()
	if err != nil {
		return "", err
	}
	return hexutil.Encode(b), nil
}

// Hash returns the transaction hash as known to the network.
func (s *SignedTransaction) Hash() (common.Hash, error) {
	b, err := s.MarshalBinary()
	if err != nil {
		return common.Hash{}, err
	}
	return crypto.Keccak256Hash(b), nil
}

// Sender recovers the address that signed the transaction.
func (s *SignedTransaction) Sender() (common.Address, error) {
	if err := s.sig.Validate(); err != nil {
		return common.Address{}, err
	}

	etx, err := s.Ethereum()
	if err != nil {
		return common.Address{}, err
	}

	signer := types.LatestSignerForChainID(nil)
	if etx.Protected() {
		signer = types.LatestSignerForChainID(etx.ChainId())
	}
	from, err := types.Sender(signer, etx)
	if err != nil {
		return common.Address{}, errors.Wrap(signature.ErrInvalidSignature, err.Error())
	}
	return from, nil
}

// WireFields projects the transaction onto JSON-RPC field names. Signature
// values are not part of the projection.
func (s *SignedTransaction) WireFields() WireFields {
	return s.tx.WireFields()
}
