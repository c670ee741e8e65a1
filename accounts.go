// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// Licensed under the Apache License, Version 2.0

package ledger_eth

import (
	"strings"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"

	"github.com/luxfi/ledger-eth/apdu"
)

// Account is an address held by the device and the path it derives from.
type Account struct {
	Path    string         `json:"path"`
	Address common.Address `json:"address"`
}

// GetAccountByPath returns the account at path without asking the user to
// confirm it on the device.
func (s *Session) GetAccountByPath(path string) (Account, error) {
	encoded, err := encodePathString(path)
	if err != nil {
		return Account{}, err
	}
	reply, err := s.Send(apdu.GetAddressNoConfirm, encoded)
	if err != nil {
		return Account{}, err
	}
	address, err := apdu.DecodeAddress(reply)
	if err != nil {
		return Account{}, s.fail(err)
	}
	return Account{Path: strings.TrimPrefix(path, "m/"), Address: common.HexToAddress(address)}, nil
}

// GetDefaultAccount returns the first account: 44'/60'/0'/0/0, or
// 44'/60'/0'/0 with LegacyAccounts.
func (s *Session) GetDefaultAccount() (Account, error) {
	if s.cfg.LegacyAccounts {
		return s.GetAccountByPath(s.cfg.DefaultPath())
	}

	reply, err := s.Send(apdu.GetDefaultAddressNoConfirm, nil)
	if err != nil {
		return Account{}, err
	}
	address, err := apdu.DecodeAddress(reply)
	if err != nil {
		return Account{}, s.fail(err)
	}
	return Account{Path: strings.TrimPrefix(s.cfg.DefaultPath(), "m/"), Address: common.HexToAddress(address)}, nil
}

// GetAccounts returns the first count accounts, or
// Config.DefaultAccountsFetch of them when count is not positive. Accounts
// are enumerated as 44'/60'/i'/0/0, or 44'/60'/0'/i with LegacyAccounts.
func (s *Session) GetAccounts(count int) ([]Account, error) {
	if count <= 0 {
		count = s.cfg.DefaultAccountsFetch
	}

	var next func() accounts.DerivationPath
	if s.cfg.LegacyAccounts {
		next = accounts.DefaultIterator(accounts.LegacyLedgerBaseDerivationPath)
	} else {
		next = accounts.LedgerLiveIterator(accounts.DefaultBaseDerivationPath)
	}

	found := make([]Account, 0, count)
	for i := 0; i < count; i++ {
		path := strings.TrimPrefix(next().String(), "m/")
		account, err := s.GetAccountByPath(path)
		if err != nil {
			return nil, err
		}
		found = append(found, account)
	}
	return found, nil
}

// FindAccount looks for address among the first Config.MaxAccountsFetch
// accounts.
func (s *Session) FindAccount(address common.Address) (Account, error) {
	found, err := s.GetAccounts(s.cfg.MaxAccountsFetch)
	if err != nil {
		return Account{}, err
	}
	for _, account := range found {
		if account.Address == address {
			return account, nil
		}
	}
	return Account{}, errors.Wrapf(ErrAccountNotFound, "%s in first %d accounts", address.Hex(), len(found))
}
