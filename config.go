// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// Licensed under the Apache License, Version 2.0

package ledger_eth

import (
	"os"
	"strconv"

	"github.com/ethereum/go-ethereum/accounts"
)

const (
	DefaultAccountsFetch = 3
	DefaultMaxAccounts   = 5
)

// Config holds the settings a Session reads.
type Config struct {
	// DeviceIndex selects the device among those the admin lists.
	DeviceIndex int
	// Debug logs every frame at debug level.
	Debug bool
	// LegacyAccounts enumerates 44'/60'/0'/i instead of 44'/60'/i'/0/0.
	LegacyAccounts bool
	// DefaultAccountsFetch is the number of accounts GetAccounts returns
	// when asked for zero.
	DefaultAccountsFetch int
	// MaxAccountsFetch bounds FindAccount.
	MaxAccountsFetch int
}

func DefaultConfig() Config {
	return Config{
		DefaultAccountsFetch: DefaultAccountsFetch,
		MaxAccountsFetch:     DefaultMaxAccounts,
	}
}

// ConfigFromEnv returns DefaultConfig overridden by MAX_ACCOUNTS_FETCH,
// LEDGER_LEGACY_ACCOUNTS and LEDGER_DEVICE_INDEX. Malformed numbers are
// ignored.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()
	if n, err := strconv.Atoi(os.Getenv("MAX_ACCOUNTS_FETCH")); err == nil && n > 0 {
		cfg.MaxAccountsFetch = n
	}
	if _, ok := os.LookupEnv("LEDGER_LEGACY_ACCOUNTS"); ok {
		cfg.LegacyAccounts = true
	}
	if n, err := strconv.Atoi(os.Getenv("LEDGER_DEVICE_INDEX")); err == nil && n >= 0 {
		cfg.DeviceIndex = n
	}
	return cfg
}

// DefaultPath is the path of the first account.
func (c Config) DefaultPath() string {
	return c.baseDerivationPath().String()
}

func (c Config) baseDerivationPath() accounts.DerivationPath {
	if c.LegacyAccounts {
		return accounts.LegacyLedgerBaseDerivationPath
	}
	return accounts.DefaultBaseDerivationPath
}
