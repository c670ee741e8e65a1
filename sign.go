// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// Licensed under the Apache License, Version 2.0

package ledger_eth

import (
	"github.com/luxfi/ledger-eth/apdu"
	"github.com/luxfi/ledger-eth/tx"
)

// SignTransaction has the device sign t with the key at path.
func (s *Session) SignTransaction(t *tx.Transaction, path string) (*tx.SignedTransaction, error) {
	encodedPath, err := encodePathString(path)
	if err != nil {
		return nil, err
	}
	unsigned, err := t.MarshalBinary()
	if err != nil {
		return nil, err
	}

	payload := append(encodedPath, unsigned...)
	reply, err := s.sendChunked(apdu.SignTxFirstData, apdu.SignTxSecondaryData, payload)
	if err != nil {
		return nil, err
	}

	raw, err := apdu.DecodeSignature(reply)
	if err != nil {
		return nil, s.fail(err)
	}
	return t.WithSignature(t.DeviceSignature(raw)), nil
}

// CreateTransaction builds the transaction variant p describes and signs it.
func (s *Session) CreateTransaction(p tx.Params, path string) (*tx.SignedTransaction, error) {
	t, err := tx.Build(p)
	if err != nil {
		return nil, err
	}
	return s.SignTransaction(t, path)
}
