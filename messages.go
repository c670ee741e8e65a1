// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// Licensed under the Apache License, Version 2.0

package ledger_eth

import (
	"encoding/binary"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"

	"github.com/luxfi/ledger-eth/apdu"
	"github.com/luxfi/ledger-eth/signature"
)

// SignMessage signs an EIP-191 personal message. The device adds the
// "\x19Ethereum Signed Message:\n" prefix itself.
func (s *Session) SignMessage(message []byte, path string) (*signature.SignedMessage, error) {
	payload, err := encodePathString(path)
	if err != nil {
		return nil, err
	}
	payload = binary.BigEndian.AppendUint32(payload, uint32(len(message)))
	payload = append(payload, message...)

	reply, err := s.sendChunked(apdu.SignMessageFirstData, apdu.SignMessageSecondaryData, payload)
	if err != nil {
		return nil, err
	}
	raw, err := apdu.DecodeSignature(reply)
	if err != nil {
		return nil, s.fail(err)
	}

	return &signature.SignedMessage{
		Message:   append([]byte(nil), message...),
		Signature: signature.FromDevice(raw, false),
	}, nil
}

// SignTypedData signs the EIP-712 digest of a domain hash and a message
// hash, both 32 bytes.
func (s *Session) SignTypedData(domainHash, messageHash []byte, path string) (*signature.SignedTypedMessage, error) {
	if len(domainHash) != common.HashLength || len(messageHash) != common.HashLength {
		return nil, errors.Wrapf(ErrInvalidTypedDataHash, "got %d and %d bytes", len(domainHash), len(messageHash))
	}
	payload, err := encodePathString(path)
	if err != nil {
		return nil, err
	}
	payload = append(payload, domainHash...)
	payload = append(payload, messageHash...)

	reply, err := s.Send(apdu.SignTypedData, payload)
	if err != nil {
		return nil, err
	}
	raw, err := apdu.DecodeSignature(reply)
	if err != nil {
		return nil, s.fail(err)
	}

	return &signature.SignedTypedMessage{
		DomainHash:  common.BytesToHash(domainHash),
		MessageHash: common.BytesToHash(messageHash),
		Signature:   signature.FromDevice(raw, false),
	}, nil
}
