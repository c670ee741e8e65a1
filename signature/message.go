// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// Licensed under the Apache License, Version 2.0

package signature

import (
	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// SignedMessage is an EIP-191 personal message and its signature.
type SignedMessage struct {
	Message []byte
	Signature
}

// Hash is the digest the device signed.
func (m *SignedMessage) Hash() common.Hash {
	return common.BytesToHash(accounts.TextHash(m.Message))
}

// Signer recovers the address that signed the message.
func (m *SignedMessage) Signer() (common.Address, error) {
	return m.Recover(m.Hash())
}

// SignedTypedMessage is an EIP-712 domain/message hash pair and its
// signature.
type SignedTypedMessage struct {
	DomainHash  common.Hash
	MessageHash common.Hash
	Signature
}

// TypedDataHash returns keccak256(0x19 0x01 || domainHash || messageHash).
func TypedDataHash(domainHash, messageHash common.Hash) common.Hash {
	return crypto.Keccak256Hash([]byte{0x19, 0x01}, domainHash[:], messageHash[:])
}

// Hash is the digest the device signed.
func (m *SignedTypedMessage) Hash() common.Hash {
	return TypedDataHash(m.DomainHash, m.MessageHash)
}

// Signer recovers the address that signed the typed data.
func (m *SignedTypedMessage) Signer() (common.Address, error) {
	return m.Recover(m.Hash())
}
