// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// Licensed under the Apache License, Version 2.0

package ledger_eth_test

import (
	"bytes"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	ledger "github.com/luxfi/ledger-eth"
	"github.com/luxfi/ledger-eth/apdu"
	"github.com/luxfi/ledger-eth/ledgertest"
)

const defaultPath = "44'/60'/0'/0/0"

func newSession(device ledger.LedgerDevice, opts ...ledger.Option) *ledger.Session {
	opts = append([]ledger.Option{ledger.WithDevice(device), ledger.WithLogger(zap.NewNop().Sugar())}, opts...)
	return ledger.NewSession(opts...)
}

// flakyDevice forwards to an emulator until failAfter exchanges have
// succeeded, then fails like an unplugged device.
type flakyDevice struct {
	*ledgertest.Device
	failAfter int
	calls     int
}

func (f *flakyDevice) Exchange(command []byte) ([]byte, error) {
	f.calls++
	if f.calls > f.failAfter {
		return nil, errors.New("hidapi: write failed")
	}
	return f.Device.Exchange(command)
}

func TestAppVersionIsCachedPerDevice(t *testing.T) {
	device := ledgertest.NewDevice()
	s := newSession(device)

	version, err := s.AppVersion(false)
	require.NoError(t, err)
	assert.Equal(t, ledgertest.EmulatorVersion, version)
	assert.Equal(t, []byte{0xe0, 0x06, 0x00, 0x00, 0x00, 0x04}, device.Frames[0])

	_, err = s.AppVersion(false)
	require.NoError(t, err)
	assert.Len(t, device.Frames, 1)

	_, err = s.AppVersion(true)
	require.NoError(t, err)
	assert.Len(t, device.Frames, 2)
}

func TestAcquireDropsCachedVersion(t *testing.T) {
	first := ledgertest.NewDevice()
	s := newSession(first)
	_, err := s.AppVersion(false)
	require.NoError(t, err)

	second := ledgertest.NewDevice()
	second.Version = apdu.Version{Major: 1, Minor: 2, Patch: 3}
	got, err := s.Acquire(second)
	require.NoError(t, err)
	assert.Equal(t, second, got)

	_, err = s.GetAccountByPath(defaultPath)
	assert.True(t, errors.Is(err, ledger.ErrUnsupportedFirmware))
	require.Len(t, second.Frames, 1, "only the configuration frame reaches an unsupported device")
	assert.Equal(t, byte(0x06), second.Frames[0][1])
}

func TestFirmwareVersions(t *testing.T) {
	cases := []struct {
		version apdu.Version
		ok      bool
	}{
		{apdu.Version{Major: 9, Minor: 0, Patch: 0}, true},
		{apdu.Version{Major: 9, Minor: 9, Patch: 9}, true},
		{apdu.Version{Major: 1, Minor: 2, Patch: 4}, true},
		{apdu.Version{Major: 1, Minor: 9, Patch: 17}, true},
		{apdu.Version{Major: 1, Minor: 2, Patch: 3}, false},
		{apdu.Version{Major: 0, Minor: 9, Patch: 9}, false},
		{apdu.Version{Major: 2, Minor: 0, Patch: 0}, false},
	}
	for _, c := range cases {
		device := ledgertest.NewDevice()
		device.Version = c.version
		_, err := newSession(device).AppVersion(false)
		if c.ok {
			assert.NoError(t, err, c.version.String())
		} else {
			assert.True(t, errors.Is(err, ledger.ErrUnsupportedFirmware), c.version.String())
		}
	}
}

func TestOpen(t *testing.T) {
	device := ledgertest.NewDevice()
	s, err := ledger.Open(false, ledger.WithAdmin(ledger.NewStaticAdmin(device)))
	require.NoError(t, err)
	assert.Len(t, device.Frames, 1)

	require.NoError(t, s.Close())
	assert.True(t, device.Closed)
}

func TestOpenWithoutDevice(t *testing.T) {
	_, err := ledger.Open(false, ledger.WithAdmin(ledger.NewStaticAdmin()))
	assert.True(t, errors.Is(err, ledger.ErrDeviceUnavailable))
}

func TestOpenClosesUnsupportedDevice(t *testing.T) {
	device := ledgertest.NewDevice()
	device.Version = apdu.Version{Major: 1, Minor: 0, Patch: 0}
	_, err := ledger.Open(true, ledger.WithAdmin(ledger.NewStaticAdmin(device)))
	assert.True(t, errors.Is(err, ledger.ErrUnsupportedFirmware))
	assert.True(t, device.Closed)
}

func TestTransportErrorsAreTranslated(t *testing.T) {
	device := &ledgertest.FailingDevice{Err: errors.New("hidapi: read timeout")}
	_, err := newSession(device).AppVersion(false)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ledger.ErrDeviceUnavailable))
	assert.Contains(t, err.Error(), "read timeout")
	assert.Equal(t, 1, device.Calls)
}

func TestStatusWordsAreTranslated(t *testing.T) {
	cases := []struct {
		status apdu.StatusWord
		reason string
	}{
		{apdu.StatusDeviceLocked, "Ledger appears to be locked"},
		{apdu.StatusAppNotStarted, "Expected Ledger Ethereum app not open"},
		{apdu.StatusAppSleep, "Expected Ledger Ethereum app not open"},
		{apdu.StatusCanceledByUser, "Action cancelled by the user"},
		{apdu.StatusDeclined, "Action cancelled by the user"},
		{apdu.StatusAPDUSizeMismatch, "Internal error. Invalid data unit sent to ledger."},
		{apdu.StatusInvalidData, `Invalid data sent to ledger or "blind signing" is not enabled`},
		{apdu.StatusTxTypeUnsupported, "Unexpected error: 0x6501 TX_TYPE_UNSUPPORTED"},
		{apdu.StatusWord(0x1234), "Unexpected error: 0x1234 UNKNOWN"},
	}
	for _, c := range cases {
		device := ledgertest.NewDevice()
		device.Reject = c.status
		_, err := newSession(device).SignMessage([]byte("hello"), defaultPath)

		var rejected *ledger.DeviceRejectedError
		require.True(t, errors.As(err, &rejected), c.status.String())
		assert.True(t, errors.Is(err, ledger.ErrDeviceRejected))
		assert.Equal(t, c.status, rejected.Status)
		assert.Equal(t, c.reason, rejected.Reason)

		var statusErr *apdu.StatusError
		assert.False(t, errors.As(err, &statusErr), "transport error type escaped")
	}
}

func TestUnknownStatusMeansUnavailable(t *testing.T) {
	device := ledgertest.NewDevice()
	device.Reject = apdu.StatusUnknown
	_, err := newSession(device).SignMessage([]byte("hello"), defaultPath)
	assert.True(t, errors.Is(err, ledger.ErrDeviceUnavailable))
	assert.False(t, errors.Is(err, ledger.ErrDeviceRejected))
}

func TestSendUnknownCommand(t *testing.T) {
	device := ledgertest.NewDevice()
	_, err := newSession(device).Send(apdu.CommandID(99), nil)
	assert.True(t, errors.Is(err, ledger.ErrCommandUnavailable))
}

func TestChunkedTransferFrames(t *testing.T) {
	device := ledgertest.NewDevice()
	s := newSession(device)

	message := bytes.Repeat([]byte{'a'}, 600)
	_, err := s.SignMessage(message, defaultPath)
	require.NoError(t, err)

	// configuration, first block, two continuations
	require.Len(t, device.Frames, 4)
	transfer := device.Frames[1:]

	var payload []byte
	for i, frame := range transfer {
		assert.Equal(t, byte(0x08), frame[1])
		if i == 0 {
			assert.Equal(t, apdu.P1FirstBlock, frame[2])
		} else {
			assert.Equal(t, apdu.P1ContinuationBlock, frame[2])
		}
		assert.Equal(t, int(frame[4]), len(frame)-5)
		payload = append(payload, frame[5:]...)
	}

	want, err := ledger.ParsePath(defaultPath)
	require.NoError(t, err)
	expected := ledger.EncodePath(want)
	expected = append(expected, 0x00, 0x00, 0x02, 0x58)
	expected = append(expected, message...)
	assert.Equal(t, expected, payload)
	assert.Len(t, expected, 625)
}

func TestChunkedTransferAbortsOnFailure(t *testing.T) {
	device := &flakyDevice{Device: ledgertest.NewDevice(), failAfter: 2}
	s := newSession(device)

	_, err := s.SignMessage(bytes.Repeat([]byte{'b'}, 600), defaultPath)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ledger.ErrDeviceUnavailable))

	// configuration and first block went through, the first continuation
	// failed and the last block was never sent
	assert.Equal(t, 3, device.calls)
	assert.Len(t, device.Frames, 2)
}

func TestSingleBlockTransfer(t *testing.T) {
	device := ledgertest.NewDevice()
	_, err := newSession(device).SignMessage([]byte("short"), defaultPath)
	require.NoError(t, err)
	require.Len(t, device.Frames, 2)
	assert.Equal(t, apdu.P1FirstBlock, device.Frames[1][2])
}
