// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// Licensed under the Apache License, Version 2.0

package apdu

import (
	"fmt"

	"github.com/pkg/errors"
)

// StatusWord is the two-byte trailer of every device reply.
type StatusWord uint16

// Known status words of the Ethereum app.
const (
	StatusOK StatusWord = 0x9000

	StatusTxTypeUnsupported    StatusWord = 0x6501
	StatusIncorrectLength      StatusWord = 0x6700
	StatusInvalidTxChunks      StatusWord = 0x6b00
	StatusCanceledByUser       StatusWord = 0x6982
	StatusAPDUSizeMismatch     StatusWord = 0x6983
	StatusInvalidData          StatusWord = 0x6a80
	StatusAppSleep             StatusWord = 0x6804
	StatusAppNotStarted        StatusWord = 0x6d00
	StatusDeviceLocked         StatusWord = 0x6b0c
	StatusPluginNotPresent     StatusWord = 0x6984
	StatusIntConversionError   StatusWord = 0x6504
	StatusOutputBufferTooSmall StatusWord = 0x6502
	StatusPluginError          StatusWord = 0x6503
	StatusDeclined             StatusWord = 0x6985
	StatusUnknown              StatusWord = 0x6f00
	StatusAppNotFound          StatusWord = 0x6d02
)

var statusNames = map[StatusWord]string{
	StatusOK:                   "OK",
	StatusTxTypeUnsupported:    "TX_TYPE_UNSUPPORTED",
	StatusIncorrectLength:      "INCORRECT_LENGTH",
	StatusInvalidTxChunks:      "INVALID_TX_CHUNKS",
	StatusCanceledByUser:       "CANCELED_BY_USER",
	StatusAPDUSizeMismatch:     "APDU_SIZE_MISMATCH",
	StatusInvalidData:          "INVALID_DATA",
	StatusAppSleep:             "APP_SLEEP",
	StatusAppNotStarted:        "APP_NOT_STARTED",
	StatusDeviceLocked:         "DEVICE_LOCKED",
	StatusPluginNotPresent:     "PLUGIN_NOT_PRESENT",
	StatusIntConversionError:   "INT_CONVERSION_ERROR",
	StatusOutputBufferTooSmall: "OUTPUT_BUFFER_TOO_SMALL",
	StatusPluginError:          "PLUGIN_ERROR",
	StatusDeclined:             "DECLINED",
	StatusUnknown:              "UNKNOWN",
	StatusAppNotFound:          "APP_NOT_FOUND",
}

// Name returns the symbolic name of the status word, or "UNKNOWN".
func (sw StatusWord) Name() string {
	if name, ok := statusNames[sw]; ok {
		return name
	}
	return "UNKNOWN"
}

func (sw StatusWord) String() string {
	return fmt.Sprintf("0x%04x %s", uint16(sw), sw.Name())
}

// StatusError is returned by a transport when the device answers with a
// status word other than StatusOK.
type StatusError struct {
	SW StatusWord
}

func (e *StatusError) Error() string {
	return "ledger status " + e.SW.String()
}

// SplitStatus separates a raw reply into its data and trailing status word.
func SplitStatus(reply []byte) ([]byte, StatusWord, error) {
	if len(reply) < 2 {
		return nil, 0, errors.Errorf("reply too short: %d bytes", len(reply))
	}
	n := len(reply) - 2
	sw := StatusWord(uint16(reply[n])<<8 | uint16(reply[n+1]))
	return reply[:n], sw, nil
}

// CheckStatus strips the status word and turns a non-OK status into a
// *StatusError.
func CheckStatus(reply []byte) ([]byte, error) {
	data, sw, err := SplitStatus(reply)
	if err != nil {
		return nil, err
	}
	if sw != StatusOK {
		return nil, &StatusError{SW: sw}
	}
	return data, nil
}
