// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// Licensed under the Apache License, Version 2.0

package ledger_eth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	ledger "github.com/luxfi/ledger-eth"
)

func TestDefaultConfig(t *testing.T) {
	cfg := ledger.DefaultConfig()
	assert.Equal(t, 3, cfg.DefaultAccountsFetch)
	assert.Equal(t, 5, cfg.MaxAccountsFetch)
	assert.False(t, cfg.LegacyAccounts)
	assert.Equal(t, "m/44'/60'/0'/0/0", cfg.DefaultPath())
}

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("MAX_ACCOUNTS_FETCH", "12")
	t.Setenv("LEDGER_LEGACY_ACCOUNTS", "")
	t.Setenv("LEDGER_DEVICE_INDEX", "1")

	cfg := ledger.ConfigFromEnv()
	assert.Equal(t, 12, cfg.MaxAccountsFetch)
	assert.True(t, cfg.LegacyAccounts)
	assert.Equal(t, 1, cfg.DeviceIndex)
	assert.Equal(t, "m/44'/60'/0'/0", cfg.DefaultPath())
}

func TestConfigFromEnvIgnoresGarbage(t *testing.T) {
	t.Setenv("MAX_ACCOUNTS_FETCH", "many")
	t.Setenv("LEDGER_DEVICE_INDEX", "-3")

	cfg := ledger.ConfigFromEnv()
	assert.Equal(t, ledger.DefaultMaxAccounts, cfg.MaxAccountsFetch)
	assert.Equal(t, 0, cfg.DeviceIndex)
}
