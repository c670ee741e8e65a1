// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// Licensed under the Apache License, Version 2.0

package apdu

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
)

const (
	// SignatureLength is the size of a v||r||s reply.
	SignatureLength = 65

	addressHexLength = 2 * common.AddressLength
)

// ErrInvalidReply is returned when a reply is too short or its fields are
// inconsistent.
var ErrInvalidReply = errors.New("invalid device reply")

// Version is the reply to GET_CONFIGURATION.
type Version struct {
	Flags byte
	Major byte
	Minor byte
	Patch byte
}

// Supported reports whether the app version can be trusted. Major 9 is the
// emulator firmware.
func (v Version) Supported() bool {
	if v.Major == 9 {
		return true
	}
	return v.Major == 1 && v.Minor >= 2 && v.Patch >= 4
}

func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// DecodeVersion reads major, minor and patch at offsets 1..3.
func DecodeVersion(reply []byte) (Version, error) {
	if len(reply) < 4 {
		return Version{}, errors.Wrapf(ErrInvalidReply, "configuration reply has %d bytes", len(reply))
	}
	return Version{Flags: reply[0], Major: reply[1], Minor: reply[2], Patch: reply[3]}, nil
}

// DecodeAddress extracts the checksummed address from a GET_ADDRESS reply.
//
// The reply is [pubkey length][pubkey][address length][ascii hex address]
// and may be followed by a chain code, so the address is located through the
// length bytes rather than at a fixed offset.
func DecodeAddress(reply []byte) (string, error) {
	if len(reply) < 1 {
		return "", errors.Wrap(ErrInvalidReply, "empty address reply")
	}

	offset := 1 + int(reply[0])
	if offset >= len(reply) {
		return "", errors.Wrapf(ErrInvalidReply, "address length byte at %d beyond %d-byte reply", offset, len(reply))
	}

	n := int(reply[offset])
	start := offset + 1
	if start+n > len(reply) {
		return "", errors.Wrapf(ErrInvalidReply, "address of %d chars overruns reply", n)
	}
	if n != addressHexLength {
		return "", errors.Wrapf(ErrInvalidReply, "address has %d chars, want %d", n, addressHexLength)
	}

	hexAddr := "0x" + string(reply[start:start+n])
	if !common.IsHexAddress(hexAddr) {
		return "", errors.Wrapf(ErrInvalidReply, "address %q is not hex", hexAddr)
	}

	return common.HexToAddress(hexAddr).Hex(), nil
}

// RawSignature is a signature as returned by the device.
type RawSignature struct {
	V byte
	R [32]byte
	S [32]byte
}

// Bytes returns the canonical r||s||v layout.
func (s RawSignature) Bytes() []byte {
	out := make([]byte, 0, SignatureLength)
	out = append(out, s.R[:]...)
	out = append(out, s.S[:]...)
	return append(out, s.V)
}

// DecodeSignature reads the v||r||s layout the device answers signing
// commands with. Trailing bytes are ignored.
func DecodeSignature(reply []byte) (RawSignature, error) {
	if len(reply) < SignatureLength {
		return RawSignature{}, errors.Wrapf(ErrInvalidReply, "signature reply has %d bytes", len(reply))
	}

	var sig RawSignature
	sig.V = reply[0]
	copy(sig.R[:], reply[1:33])
	copy(sig.S[:], reply[33:65])
	return sig, nil
}

// EncodeSignature produces the device's v||r||s layout.
func EncodeSignature(sig RawSignature) []byte {
	out := make([]byte, 0, SignatureLength)
	out = append(out, sig.V)
	out = append(out, sig.R[:]...)
	return append(out, sig.S[:]...)
}
