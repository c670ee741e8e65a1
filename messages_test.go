// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// Licensed under the Apache License, Version 2.0

package ledger_eth_test

import (
	"testing"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ledger "github.com/luxfi/ledger-eth"
	"github.com/luxfi/ledger-eth/ledgertest"
)

func TestSignMessage(t *testing.T) {
	device := ledgertest.NewDevice()
	signed, err := newSession(device).SignMessage([]byte("Hello, Ledger"), "44'/60'/2'/0/0")
	require.NoError(t, err)

	assert.Equal(t, []byte("Hello, Ledger"), signed.Message)
	v := signed.V.Uint64()
	assert.True(t, v == 27 || v == 28, "v = %d", v)

	signer, err := signed.Signer()
	require.NoError(t, err)
	assert.Equal(t, device.MustAddress("m/44'/60'/2'/0/0"), signer)

	encoded, err := signed.Hex()
	require.NoError(t, err)
	assert.Len(t, encoded, 2+2*65)
}

func TestSignEmptyMessage(t *testing.T) {
	device := ledgertest.NewDevice()
	signed, err := newSession(device).SignMessage(nil, defaultPath)
	require.NoError(t, err)

	signer, err := signed.Signer()
	require.NoError(t, err)
	assert.Equal(t, device.MustAddress("m/"+defaultPath), signer)
}

func TestSignTypedData(t *testing.T) {
	device := ledgertest.NewDevice()
	domain := crypto.Keccak256([]byte("domain"))
	message := crypto.Keccak256([]byte("message"))

	signed, err := newSession(device).SignTypedData(domain, message, defaultPath)
	require.NoError(t, err)
	assert.Equal(t, domain, signed.DomainHash.Bytes())
	assert.Equal(t, message, signed.MessageHash.Bytes())

	signer, err := signed.Signer()
	require.NoError(t, err)
	assert.Equal(t, device.MustAddress("m/"+defaultPath), signer)

	frame := device.Frames[1]
	assert.Equal(t, []byte{0xe0, 0x0c, 0x00, 0x00, 21 + 64}, frame[:5])
}

func TestSignTypedDataHashLength(t *testing.T) {
	device := ledgertest.NewDevice()
	s := newSession(device)

	_, err := s.SignTypedData([]byte("domain"), crypto.Keccak256([]byte("message")), defaultPath)
	assert.True(t, errors.Is(err, ledger.ErrInvalidTypedDataHash))

	_, err = s.SignTypedData(crypto.Keccak256([]byte("domain")), nil, defaultPath)
	assert.True(t, errors.Is(err, ledger.ErrInvalidTypedDataHash))
	assert.Empty(t, device.Frames)
}
