// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// Forked from github.com/zondax/ledger-go
// Licensed under the Apache License, Version 2.0

package ledger_eth_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ledger "github.com/luxfi/ledger-eth"
)

func TestWrapCommandAPDU(t *testing.T) {
	command := bytes.Repeat([]byte{0xaa}, 100)

	packets, err := ledger.WrapCommandAPDU(ledger.Channel, command, ledger.PacketSize)
	require.NoError(t, err)
	require.Len(t, packets, 2)

	assert.Equal(t, []byte{0x01, 0x01, 0x05, 0x00, 0x00, 0x00, 100}, packets[0][:7])
	assert.Equal(t, []byte{0x01, 0x01, 0x05, 0x00, 0x01}, packets[1][:5])
	for _, packet := range packets {
		assert.Len(t, packet, ledger.PacketSize)
	}

	// 57 bytes fit the first packet, 43 the second, the rest is padding
	assert.Equal(t, command[57:], packets[1][5:5+43])
	assert.Equal(t, make([]byte, ledger.PacketSize-5-43), packets[1][5+43:])
}

func TestWrapCommandAPDUExactFit(t *testing.T) {
	packets, err := ledger.WrapCommandAPDU(ledger.Channel, bytes.Repeat([]byte{1}, 57), ledger.PacketSize)
	require.NoError(t, err)
	assert.Len(t, packets, 1)

	packets, err = ledger.WrapCommandAPDU(ledger.Channel, bytes.Repeat([]byte{1}, 58), ledger.PacketSize)
	require.NoError(t, err)
	assert.Len(t, packets, 2)
}

func TestWrapUnwrapRoundTrip(t *testing.T) {
	for _, size := range []int{0, 1, 57, 58, 255, 260, 1000} {
		command := make([]byte, size)
		for i := range command {
			command[i] = byte(i)
		}
		packets, err := ledger.WrapCommandAPDU(ledger.Channel, command, ledger.PacketSize)
		require.NoError(t, err)

		got, err := ledger.UnwrapResponseAPDU(ledger.Channel, packets)
		require.NoError(t, err)
		assert.Equal(t, command, got, "size %d", size)
	}
}

func TestUnwrapResponseAPDUErrors(t *testing.T) {
	packets, err := ledger.WrapCommandAPDU(ledger.Channel, bytes.Repeat([]byte{2}, 100), ledger.PacketSize)
	require.NoError(t, err)

	_, err = ledger.UnwrapResponseAPDU(0x0202, packets)
	assert.Error(t, err, "wrong channel")

	_, err = ledger.UnwrapResponseAPDU(ledger.Channel, [][]byte{packets[1], packets[0]})
	assert.Error(t, err, "out of sequence")

	_, err = ledger.UnwrapResponseAPDU(ledger.Channel, packets[:1])
	assert.Error(t, err, "incomplete")

	bad := append([]byte(nil), packets[0]...)
	bad[2] = 0x02
	_, err = ledger.UnwrapResponseAPDU(ledger.Channel, [][]byte{bad, packets[1]})
	assert.Error(t, err, "wrong tag")
}

func TestWrapCommandAPDUPacketSize(t *testing.T) {
	_, err := ledger.WrapCommandAPDU(ledger.Channel, []byte{1}, 4)
	assert.Error(t, err)
}
