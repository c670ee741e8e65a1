//go:build ledger_mock
// +build ledger_mock

// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// Forked from github.com/zondax/ledger-go
// Licensed under the Apache License, Version 2.0

package ledger_eth

import "github.com/luxfi/ledger-eth/ledgertest"

// NewLedgerAdmin returns an admin over a single emulated device seeded from
// ledgertest.Mnemonic.
func NewLedgerAdmin() LedgerAdmin {
	return NewStaticAdmin(ledgertest.NewDevice())
}
