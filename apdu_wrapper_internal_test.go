// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// Licensed under the Apache License, Version 2.0

package ledger_eth

import (
	"bytes"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// reportWriter records every write, accepting at most limit bytes per call
// when limit is positive.
type reportWriter struct {
	limit  int
	writes [][]byte
	err    error
}

func (w *reportWriter) Write(b []byte) (int, error) {
	if w.err != nil {
		return 0, w.err
	}
	n := len(b)
	if w.limit > 0 && n > w.limit {
		n = w.limit
	}
	w.writes = append(w.writes, append([]byte(nil), b[:n]...))
	return n, nil
}

func TestWriteCommandAPDUSendsBarePackets(t *testing.T) {
	command := bytes.Repeat([]byte{0xe0}, 100)
	w := &reportWriter{}

	require.NoError(t, writeCommandAPDU(w, Channel, command, PacketSize))
	require.Len(t, w.writes, 2)
	for seq, packet := range w.writes {
		assert.Len(t, packet, PacketSize)
		assert.Equal(t, []byte{0x01, 0x01, tagAPDU, 0x00, byte(seq)}, packet[:5])
	}
}

func TestWriteCommandAPDUPartialWrites(t *testing.T) {
	command := bytes.Repeat([]byte{0x11}, 30)
	w := &reportWriter{limit: 20}

	require.NoError(t, writeCommandAPDU(w, Channel, command, PacketSize))
	assert.Len(t, w.writes, 4)

	expected, err := WrapCommandAPDU(Channel, command, PacketSize)
	require.NoError(t, err)
	assert.Equal(t, expected[0], bytes.Join(w.writes, nil))
}

func TestWriteCommandAPDUError(t *testing.T) {
	w := &reportWriter{err: errors.New("hidapi: device disconnected")}
	err := writeCommandAPDU(w, Channel, []byte{0xe0, 0x06, 0x00, 0x00, 0x00}, PacketSize)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "device disconnected")
}
