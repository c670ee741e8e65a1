// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// Forked from github.com/zondax/ledger-go
// Licensed under the Apache License, Version 2.0

// Package ledger_eth talks to the Ethereum application of a Ledger device:
// it retrieves accounts and signs transactions, personal messages and
// EIP-712 typed data.
package ledger_eth

// LedgerAdmin enumerates Ledger devices and opens them.
type LedgerAdmin interface {
	CountDevices() int
	ListDevices() ([]string, error)
	Connect(deviceIndex int) (LedgerDevice, error)
}

// LedgerDevice is an open transport to one device.
//
// Exchange sends one command frame and returns the reply data without its
// status word. A status word other than 0x9000 is reported as an
// *apdu.StatusError; any other error means the transport itself failed.
type LedgerDevice interface {
	Exchange(command []byte) ([]byte, error)
	Close() error
}
