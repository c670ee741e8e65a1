// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// Licensed under the Apache License, Version 2.0

// Package apdu builds the ISO-7816 command frames understood by the Ledger
// Ethereum application and decodes the fields of its replies.
package apdu

import (
	"github.com/pkg/errors"
)

const (
	// CLA is the instruction class of every Ethereum app command.
	CLA byte = 0xe0

	// MaxDataSize is the largest data segment a single frame can carry.
	MaxDataSize = 255

	// P1FirstBlock marks the first block of a chunked payload.
	P1FirstBlock byte = 0x00
	// P1ContinuationBlock marks every block after the first.
	P1ContinuationBlock byte = 0x80
)

var (
	// ErrCommandUnavailable is returned for a command the table does not know.
	ErrCommandUnavailable = errors.New("command not available")

	// ErrDataTooLong is returned when a frame's data exceeds MaxDataSize.
	ErrDataTooLong = errors.New("apdu data exceeds 255 bytes")
)

// Command is a single frame: CLA INS P1 P2 [Lc DATA] [Le].
//
// Lc and Le are optional. When Data is set and Lc is nil, the length byte is
// derived from the data.
type Command struct {
	CLA  byte
	INS  byte
	P1   byte
	P2   byte
	Lc   *byte
	Le   *byte
	Data []byte
}

// MarshalBinary serializes the frame in wire order.
func (c Command) MarshalBinary() ([]byte, error) {
	if len(c.Data) > MaxDataSize {
		return nil, errors.Wrapf(ErrDataTooLong, "got %d bytes", len(c.Data))
	}

	out := make([]byte, 4, 6+len(c.Data))
	out[0] = c.CLA
	out[1] = c.INS
	out[2] = c.P1
	out[3] = c.P2

	if c.Data != nil {
		lc := byte(len(c.Data))
		if c.Lc != nil {
			lc = *c.Lc
		}
		out = append(out, lc)
		out = append(out, c.Data...)
	} else {
		var lc byte
		if c.Lc != nil {
			lc = *c.Lc
		}
		out = append(out, lc)
	}

	if c.Le != nil {
		out = append(out, *c.Le)
	}

	return out, nil
}

func lengthByte(b byte) *byte {
	return &b
}
