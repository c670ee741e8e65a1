// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// Licensed under the Apache License, Version 2.0

// Package signature models the signatures returned by the device and the
// artifacts (messages, typed data) they were produced over.
package signature

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/holiman/uint256"
	"github.com/pkg/errors"

	"github.com/luxfi/ledger-eth/apdu"
)

// Length of the canonical r||s||v encoding.
const Length = 65

var (
	// ErrIncompleteSignature is returned when a signature component is
	// missing or zero.
	ErrIncompleteSignature = errors.New("incomplete signature")

	// ErrInvalidSignature is returned for a signature that cannot be encoded
	// or recovered.
	ErrInvalidSignature = errors.New("invalid signature")
)

// Signature holds v (or y-parity), r and s.
type Signature struct {
	V *uint256.Int
	R *uint256.Int
	S *uint256.Int

	// YParity marks V as a 0/1 recovery id instead of a legacy v value, so a
	// zero V is a valid signature.
	YParity bool
}

// New builds a legacy-style signature.
func New(v, r, s *uint256.Int) Signature {
	return Signature{V: v, R: r, S: s}
}

// NewYParity builds a signature whose first component is a y-parity bit.
func NewYParity(yParity, r, s *uint256.Int) Signature {
	return Signature{V: yParity, R: r, S: s, YParity: true}
}

// FromDevice converts a decoded device reply.
func FromDevice(raw apdu.RawSignature, yParity bool) Signature {
	return Signature{
		V:       uint256.NewInt(uint64(raw.V)),
		R:       new(uint256.Int).SetBytes32(raw.R[:]),
		S:       new(uint256.Int).SetBytes32(raw.S[:]),
		YParity: yParity,
	}
}

// FromBytes parses the canonical r||s||v encoding.
func FromBytes(b []byte) (Signature, error) {
	if len(b) != Length {
		return Signature{}, errors.Wrapf(ErrInvalidSignature, "got %d bytes, want %d", len(b), Length)
	}
	sig := Signature{
		R: new(uint256.Int).SetBytes32(b[:32]),
		S: new(uint256.Int).SetBytes32(b[32:64]),
		V: uint256.NewInt(uint64(b[64])),
	}
	sig.YParity = b[64] < 27
	return sig, nil
}

// FromHex parses a 0x-prefixed canonical encoding.
func FromHex(s string) (Signature, error) {
	b, err := hexutil.Decode(s)
	if err != nil {
		return Signature{}, errors.Wrap(ErrInvalidSignature, err.Error())
	}
	return FromBytes(b)
}

// Validate reports ErrIncompleteSignature if any component is absent, if r
// or s is zero, or if a legacy v is zero.
func (s Signature) Validate() error {
	switch {
	case s.R == nil || s.R.IsZero():
		return errors.Wrap(ErrIncompleteSignature, "missing r")
	case s.S == nil || s.S.IsZero():
		return errors.Wrap(ErrIncompleteSignature, "missing s")
	case s.V == nil:
		return errors.Wrap(ErrIncompleteSignature, "missing v")
	case s.V.IsZero() && !s.YParity:
		return errors.Wrap(ErrIncompleteSignature, "missing v")
	}
	return nil
}

// Bytes returns r (32 bytes) || s (32 bytes) || v (1 byte).
func (s Signature) Bytes() ([]byte, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	if !s.V.IsUint64() || s.V.Uint64() > 0xff {
		return nil, errors.Wrapf(ErrInvalidSignature, "v %s does not fit in one byte", s.V.Dec())
	}

	r := s.R.Bytes32()
	sb := s.S.Bytes32()
	out := make([]byte, 0, Length)
	out = append(out, r[:]...)
	out = append(out, sb[:]...)
	return append(out, byte(s.V.Uint64())), nil
}

// Hex returns the canonical encoding as a 0x-prefixed hex string.
func (s Signature) Hex() (string, error) {
	b, err := s.Bytes()
	if err != nil {
		return "", err
	}
	return hexutil.Encode(b), nil
}

// RecoveryID returns the 0/1 recovery id carried by V. It understands
// y-parity, 27/28 and EIP-155 encodings.
func (s Signature) RecoveryID() (byte, error) {
	if s.V == nil {
		return 0, errors.Wrap(ErrIncompleteSignature, "missing v")
	}
	if s.YParity {
		if s.V.GtUint64(1) {
			return 0, errors.Wrapf(ErrInvalidSignature, "y-parity %s", s.V.Dec())
		}
		return byte(s.V.Uint64()), nil
	}

	switch {
	case s.V.Eq(uint256.NewInt(27)), s.V.Eq(uint256.NewInt(28)):
		return byte(s.V.Uint64() - 27), nil
	case !s.V.LtUint64(35):
		rec := new(uint256.Int).Sub(s.V, uint256.NewInt(35))
		return byte(rec.Uint64() & 1), nil
	case s.V.LtUint64(2):
		return byte(s.V.Uint64()), nil
	}
	return 0, errors.Wrapf(ErrInvalidSignature, "cannot derive recovery id from v %s", s.V.Dec())
}

// Recover returns the address that produced this signature over hash.
func (s Signature) Recover(hash common.Hash) (common.Address, error) {
	if err := s.Validate(); err != nil {
		return common.Address{}, err
	}
	rec, err := s.RecoveryID()
	if err != nil {
		return common.Address{}, err
	}

	r := s.R.Bytes32()
	sb := s.S.Bytes32()
	sig := make([]byte, 0, Length)
	sig = append(sig, r[:]...)
	sig = append(sig, sb[:]...)
	sig = append(sig, rec)

	pub, err := crypto.SigToPub(hash[:], sig)
	if err != nil {
		return common.Address{}, errors.Wrap(ErrInvalidSignature, err.Error())
	}
	return crypto.PubkeyToAddress(*pub), nil
}
