// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// Licensed under the Apache License, Version 2.0

package ledger_eth

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/luxfi/ledger-eth/apdu"
	"github.com/luxfi/ledger-eth/signature"
	"github.com/luxfi/ledger-eth/tx"
)

var (
	// ErrDeviceUnavailable means no transport could be opened or the open
	// one stopped answering.
	ErrDeviceUnavailable = errors.New("unable to find Ledger device")
	// ErrUnsupportedFirmware means the Ethereum app version is too old.
	ErrUnsupportedFirmware = errors.New("unsupported Ledger Ethereum app version")
	// ErrDeviceRejected is matched by every *DeviceRejectedError.
	ErrDeviceRejected = errors.New("rejected by Ledger device")

	ErrInvalidPath          = errors.New("invalid derivation path")
	ErrInvalidTypedDataHash = errors.New("typed data hashes must be 32 bytes")
	ErrAccountNotFound      = errors.New("account not found on Ledger device")
)

// Errors raised by the codec packages, re-exported for callers of this one.
var (
	ErrCommandUnavailable     = apdu.ErrCommandUnavailable
	ErrInvalidReply           = apdu.ErrInvalidReply
	ErrUnknownTransactionType = tx.ErrUnknownTransactionType
	ErrMalformedTransaction   = tx.ErrMalformedTransaction
	ErrChainIDOutOfRange      = tx.ErrChainIDOutOfRange
	ErrIncompatibleFees       = tx.ErrIncompatibleFees
	ErrMissingPriorityFee     = tx.ErrMissingPriorityFee
	ErrIncompleteSignature    = signature.ErrIncompleteSignature
)

// DeviceRejectedError is a status word reported by the device, with a
// human readable reason.
type DeviceRejectedError struct {
	Status apdu.StatusWord
	Reason string
}

func (e *DeviceRejectedError) Error() string {
	return e.Reason
}

// Is reports ErrDeviceRejected as a match.
func (e *DeviceRejectedError) Is(target error) bool {
	return target == ErrDeviceRejected
}

var statusReasons = map[apdu.StatusWord]string{
	apdu.StatusDeviceLocked:     "Ledger appears to be locked",
	apdu.StatusAppSleep:         "Expected Ledger Ethereum app not open",
	apdu.StatusAppNotStarted:    "Expected Ledger Ethereum app not open",
	apdu.StatusAppNotFound:      "Expected Ledger Ethereum app not open",
	apdu.StatusCanceledByUser:   "Action cancelled by the user",
	apdu.StatusDeclined:         "Action cancelled by the user",
	apdu.StatusAPDUSizeMismatch: "Internal error. Invalid data unit sent to ledger.",
	apdu.StatusInvalidData:      `Invalid data sent to ledger or "blind signing" is not enabled`,
}

// translateError maps a transport error onto the error kinds of this
// package. Transport specific types never leave the session.
func translateError(err error) error {
	if err == nil {
		return nil
	}

	var statusErr *apdu.StatusError
	if !errors.As(err, &statusErr) {
		return errors.Wrap(ErrDeviceUnavailable, err.Error())
	}

	sw := statusErr.SW
	if sw == apdu.StatusUnknown {
		return errors.Wrap(ErrDeviceUnavailable, sw.String())
	}
	reason, ok := statusReasons[sw]
	if !ok {
		reason = fmt.Sprintf("Unexpected error: %s", sw)
	}
	return &DeviceRejectedError{Status: sw, Reason: reason}
}

func errorKind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrDeviceRejected):
		return "rejected"
	case errors.Is(err, ErrDeviceUnavailable):
		return "unavailable"
	case errors.Is(err, ErrUnsupportedFirmware):
		return "firmware"
	case errors.Is(err, ErrInvalidReply):
		return "reply"
	default:
		return "input"
	}
}
