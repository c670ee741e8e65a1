// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// Licensed under the Apache License, Version 2.0

package apdu_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luxfi/ledger-eth/apdu"
)

func TestEncodeGetConfiguration(t *testing.T) {
	frame, err := apdu.Encode(apdu.GetConfiguration, nil)
	require.NoError(t, err)
	assert.Equal(t, []byte{0xe0, 0x06, 0x00, 0x00, 0x00, 0x04}, frame)
}

func TestEncodeDefaultAddress(t *testing.T) {
	frame, err := apdu.Encode(apdu.GetDefaultAddressNoConfirm, nil)
	require.NoError(t, err)

	want := []byte{0xe0, 0x02, 0x00, 0x00, 21, 5}
	want = append(want, apdu.DefaultPathEncoded...)
	assert.Equal(t, want, frame)
}

func TestEncodeWithData(t *testing.T) {
	data := []byte{0x01, 0x02, 0x03}

	frame, err := apdu.Encode(apdu.SignTxFirstData, data)
	require.NoError(t, err)
	assert.Equal(t, []byte{0xe0, 0x04, 0x00, 0x00, 0x03, 0x01, 0x02, 0x03}, frame)

	frame, err = apdu.Encode(apdu.SignTxSecondaryData, data)
	require.NoError(t, err)
	assert.Equal(t, byte(0x80), frame[2])
}

func TestEncodeOverrides(t *testing.T) {
	frame, err := apdu.Encode(apdu.GetAddressNoConfirm, []byte{0xaa}, apdu.WithLength(0x07), apdu.WithExpectedLength(0x41))
	require.NoError(t, err)
	assert.Equal(t, []byte{0xe0, 0x02, 0x00, 0x00, 0x07, 0xaa, 0x41}, frame)

	frame, err = apdu.Encode(apdu.GetConfiguration, nil, apdu.WithExpectedLength(0x02))
	require.NoError(t, err)
	assert.Equal(t, []byte{0xe0, 0x06, 0x00, 0x00, 0x00, 0x02}, frame)
}

func TestEncodeDoesNotMutateTemplate(t *testing.T) {
	_, err := apdu.Encode(apdu.GetDefaultAddressNoConfirm, []byte{0x01})
	require.NoError(t, err)

	frame, err := apdu.Encode(apdu.GetDefaultAddressNoConfirm, nil)
	require.NoError(t, err)
	assert.Len(t, frame, 5+21)
}

func TestEncodeUnknownCommand(t *testing.T) {
	_, err := apdu.Encode(apdu.CommandID(99), nil)
	assert.True(t, errors.Is(err, apdu.ErrCommandUnavailable))

	_, err = apdu.ParseCommandID("SIGN_EVERYTHING")
	assert.True(t, errors.Is(err, apdu.ErrCommandUnavailable))

	id, err := apdu.ParseCommandID("SIGN_TYPED_DATA")
	require.NoError(t, err)
	assert.Equal(t, apdu.SignTypedData, id)
	assert.Equal(t, "SIGN_TYPED_DATA", id.String())
}

func TestEncodeDataTooLong(t *testing.T) {
	_, err := apdu.Encode(apdu.SignTxFirstData, make([]byte, 256))
	assert.True(t, errors.Is(err, apdu.ErrDataTooLong))

	frame, err := apdu.Encode(apdu.SignTxFirstData, make([]byte, 255))
	require.NoError(t, err)
	assert.Equal(t, byte(0xff), frame[4])
}

func TestVersionSupported(t *testing.T) {
	cases := []struct {
		major, minor, patch byte
		ok                  bool
	}{
		{9, 9, 9, true},
		{9, 0, 0, true},
		{1, 2, 4, true},
		{1, 9, 17, true},
		{1, 2, 3, false},
		{1, 1, 9, false},
		{0, 9, 9, false},
		{2, 0, 0, false},
	}
	for _, c := range cases {
		v, err := apdu.DecodeVersion([]byte{0x00, c.major, c.minor, c.patch})
		require.NoError(t, err)
		assert.Equal(t, c.ok, v.Supported(), v.String())
	}

	_, err := apdu.DecodeVersion([]byte{0x00, 0x01})
	assert.True(t, errors.Is(err, apdu.ErrInvalidReply))
}

func addressReply(pubkeyLen int, hexAddr string, trailer []byte) []byte {
	reply := []byte{byte(pubkeyLen)}
	reply = append(reply, bytes.Repeat([]byte{0x04}, pubkeyLen)...)
	reply = append(reply, byte(len(hexAddr)))
	reply = append(reply, hexAddr...)
	return append(reply, trailer...)
}

func TestDecodeAddress(t *testing.T) {
	lower := "5b38da6a701c568545dcfcb03fcb875f56beddc4"
	want := common.HexToAddress(lower).Hex()

	got, err := apdu.DecodeAddress(addressReply(65, lower, nil))
	require.NoError(t, err)
	assert.Equal(t, want, got)

	// A chain code after the address does not move it.
	got, err = apdu.DecodeAddress(addressReply(65, lower, bytes.Repeat([]byte{0xcc}, 32)))
	require.NoError(t, err)
	assert.Equal(t, want, got)

	got, err = apdu.DecodeAddress(addressReply(33, strings.ToUpper(lower), nil))
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestDecodeAddressInvalid(t *testing.T) {
	for name, reply := range map[string][]byte{
		"empty":     {},
		"truncated": addressReply(65, "5b38da6a701c568545dcfcb03fcb875f56beddc4", nil)[:80],
		"short":     addressReply(65, "5b38da6a", nil),
		"not hex":   addressReply(65, strings.Repeat("zz", 20), nil),
		"no length": bytes.Repeat([]byte{0x04}, 66),
	} {
		_, err := apdu.DecodeAddress(reply)
		assert.True(t, errors.Is(err, apdu.ErrInvalidReply), name)
	}
}

func TestDecodeSignature(t *testing.T) {
	reply := make([]byte, 0, 65)
	reply = append(reply, 0x26)
	reply = append(reply, bytes.Repeat([]byte{0x11}, 32)...)
	reply = append(reply, bytes.Repeat([]byte{0x22}, 32)...)

	sig, err := apdu.DecodeSignature(reply)
	require.NoError(t, err)
	assert.Equal(t, byte(0x26), sig.V)
	assert.Equal(t, byte(0x11), sig.R[0])
	assert.Equal(t, byte(0x22), sig.S[31])

	canonical := sig.Bytes()
	require.Len(t, canonical, 65)
	assert.Equal(t, byte(0x11), canonical[0])
	assert.Equal(t, byte(0x22), canonical[32])
	assert.Equal(t, byte(0x26), canonical[64])

	assert.Equal(t, reply, apdu.EncodeSignature(sig))

	_, err = apdu.DecodeSignature(reply[:64])
	assert.True(t, errors.Is(err, apdu.ErrInvalidReply))
}

func TestChunks(t *testing.T) {
	assert.Equal(t, [][]byte{{}}, apdu.Chunks(nil, apdu.MaxDataSize))

	for _, n := range []int{1, 254, 255, 256, 510, 511, 1000} {
		payload := make([]byte, n)
		for i := range payload {
			payload[i] = byte(i)
		}

		chunks := apdu.Chunks(payload, apdu.MaxDataSize)
		continuation := (n - 255 + 254) / 255
		if n <= 255 {
			continuation = 0
		}
		assert.Len(t, chunks, 1+continuation, "payload of %d bytes", n)
		assert.Equal(t, payload, bytes.Join(chunks, nil))
		for _, c := range chunks {
			assert.LessOrEqual(t, len(c), apdu.MaxDataSize)
		}
	}
}

func TestFrames(t *testing.T) {
	payload := bytes.Repeat([]byte{0xab}, 600)

	frames, err := apdu.Frames(apdu.SignMessageFirstData, apdu.SignMessageSecondaryData, payload)
	require.NoError(t, err)
	require.Len(t, frames, 3)

	assert.Equal(t, []byte{0xe0, 0x08, 0x00, 0x00, 0xff}, frames[0][:5])
	assert.Equal(t, []byte{0xe0, 0x08, 0x80, 0x00, 0xff}, frames[1][:5])
	assert.Equal(t, []byte{0xe0, 0x08, 0x80, 0x00, 90}, frames[2][:5])

	var joined []byte
	for _, f := range frames {
		joined = append(joined, f[5:]...)
	}
	assert.Equal(t, payload, joined)
}

func TestCheckStatus(t *testing.T) {
	data, err := apdu.CheckStatus([]byte{0x01, 0x02, 0x90, 0x00})
	require.NoError(t, err)
	assert.Equal(t, []byte{0x01, 0x02}, data)

	_, err = apdu.CheckStatus([]byte{0x69, 0x85})
	var statusErr *apdu.StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, apdu.StatusDeclined, statusErr.SW)
	assert.Equal(t, "ledger status 0x6985 DECLINED", statusErr.Error())

	_, err = apdu.CheckStatus([]byte{0x90})
	require.Error(t, err)
	assert.Equal(t, "reply too short: 1 bytes", err.Error())
	_, hasStack := err.(interface{ StackTrace() errors.StackTrace })
	assert.True(t, hasStack)

	assert.Equal(t, "UNKNOWN", apdu.StatusWord(0x1234).Name())
}
