// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// Licensed under the Apache License, Version 2.0

package apdu

import (
	"github.com/pkg/errors"
)

// CommandID names one entry of the Ethereum app command table.
type CommandID int

const (
	GetConfiguration CommandID = iota + 1
	GetDefaultAddressNoConfirm
	GetAddressNoConfirm
	SignTxFirstData
	SignTxSecondaryData
	SignMessageFirstData
	SignMessageSecondaryData
	SignTypedData
)

const (
	insGetAddress       byte = 0x02
	insSignTransaction  byte = 0x04
	insGetConfiguration byte = 0x06
	insSignMessage      byte = 0x08
	insSignTypedData    byte = 0x0c
)

// DefaultPathEncoded is 44'/60'/0'/0/0 as sent to the device.
var DefaultPathEncoded = []byte{
	0x80, 0x00, 0x00, 0x2c,
	0x80, 0x00, 0x00, 0x3c,
	0x80, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00,
}

var commandNames = map[CommandID]string{
	GetConfiguration:           "GET_CONFIGURATION",
	GetDefaultAddressNoConfirm: "GET_DEFAULT_ADDRESS_NO_CONFIRM",
	GetAddressNoConfirm:        "GET_ADDRESS_NO_CONFIRM",
	SignTxFirstData:            "SIGN_TX_FIRST_DATA",
	SignTxSecondaryData:        "SIGN_TX_SECONDARY_DATA",
	SignMessageFirstData:       "SIGN_MESSAGE_FIRST_DATA",
	SignMessageSecondaryData:   "SIGN_MESSAGE_SECONDARY_DATA",
	SignTypedData:              "SIGN_TYPED_DATA",
}

// commandTable holds the frame template of every command. Templates are
// values; Encode never mutates them.
var commandTable = map[CommandID]Command{
	GetConfiguration: {
		CLA: CLA, INS: insGetConfiguration, P1: 0x00, P2: 0x00,
		Lc: lengthByte(0x00),
		Le: lengthByte(0x04),
	},
	// P1 0x00 returns the address, 0x01 confirms first. P2 0x00 omits the chain code.
	GetDefaultAddressNoConfirm: {
		CLA: CLA, INS: insGetAddress, P1: 0x00, P2: 0x00,
		Data: append([]byte{byte(len(DefaultPathEncoded) / 4)}, DefaultPathEncoded...),
	},
	GetAddressNoConfirm: {CLA: CLA, INS: insGetAddress, P1: 0x00, P2: 0x00},
	SignTxFirstData:     {CLA: CLA, INS: insSignTransaction, P1: P1FirstBlock, P2: 0x00},
	SignTxSecondaryData: {CLA: CLA, INS: insSignTransaction, P1: P1ContinuationBlock, P2: 0x00},
	SignMessageFirstData: {
		CLA: CLA, INS: insSignMessage, P1: P1FirstBlock, P2: 0x00,
	},
	SignMessageSecondaryData: {
		CLA: CLA, INS: insSignMessage, P1: P1ContinuationBlock, P2: 0x00,
	},
	SignTypedData: {CLA: CLA, INS: insSignTypedData, P1: 0x00, P2: 0x00},
}

// String returns the table name of the command.
func (id CommandID) String() string {
	if name, ok := commandNames[id]; ok {
		return name
	}
	return "UNKNOWN"
}

// ParseCommandID looks a command up by its table name.
func ParseCommandID(name string) (CommandID, error) {
	for id, n := range commandNames {
		if n == name {
			return id, nil
		}
	}
	return 0, errors.Wrapf(ErrCommandUnavailable, "%q", name)
}

// Template returns a copy of the frame template for id.
func Template(id CommandID) (Command, error) {
	cmd, ok := commandTable[id]
	if !ok {
		return Command{}, errors.Wrapf(ErrCommandUnavailable, "id %d", int(id))
	}
	if cmd.Data != nil {
		cmd.Data = append([]byte(nil), cmd.Data...)
	}
	return cmd, nil
}

// EncodeOption overrides a length byte of the template.
type EncodeOption func(*Command)

// WithLength overrides the Lc byte.
func WithLength(lc byte) EncodeOption {
	return func(c *Command) { c.Lc = lengthByte(lc) }
}

// WithExpectedLength overrides the trailing Le byte.
func WithExpectedLength(le byte) EncodeOption {
	return func(c *Command) { c.Le = lengthByte(le) }
}

// Encode serializes command id. A nil data keeps the template's own data (or
// its default length byte); non-nil data replaces it and, unless WithLength is
// given, sets Lc to its length.
func Encode(id CommandID, data []byte, opts ...EncodeOption) ([]byte, error) {
	cmd, err := Template(id)
	if err != nil {
		return nil, err
	}

	if data != nil {
		cmd.Data = data
		cmd.Lc = nil
	}
	for _, opt := range opts {
		opt(&cmd)
	}

	return cmd.MarshalBinary()
}
