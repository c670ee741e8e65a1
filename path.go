// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// Licensed under the Apache License, Version 2.0

package ledger_eth

import (
	"encoding/binary"
	"strings"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/pkg/errors"
)

const (
	purposeBIP44   = 0x80000000 + 44
	coinTypeEther  = 0x80000000 + 60
	legacyPathSize = 4
	pathSize       = 5
)

// ParsePath parses an Ethereum BIP44 path such as 44'/60'/0'/0/0. The
// leading "m/" is optional. Only the five component layout and the four
// component legacy layout are accepted.
func ParsePath(path string) (accounts.DerivationPath, error) {
	path = strings.TrimSpace(path)
	if !strings.HasPrefix(path, "m/") {
		path = "m/" + path
	}
	parsed, err := accounts.ParseDerivationPath(path)
	if err != nil {
		return nil, errors.Wrap(ErrInvalidPath, err.Error())
	}
	if len(parsed) != pathSize && len(parsed) != legacyPathSize {
		return nil, errors.Wrapf(ErrInvalidPath, "%s has %d components", path, len(parsed))
	}
	if parsed[0] != purposeBIP44 || parsed[1] != coinTypeEther {
		return nil, errors.Wrapf(ErrInvalidPath, "%s is not an Ethereum path", path)
	}
	return parsed, nil
}

// EncodePath serializes path as a component count followed by each
// component as a big-endian uint32.
func EncodePath(path accounts.DerivationPath) []byte {
	out := make([]byte, 1+4*len(path))
	out[0] = byte(len(path))
	for i, component := range path {
		binary.BigEndian.PutUint32(out[1+4*i:], component)
	}
	return out
}

func encodePathString(path string) ([]byte, error) {
	parsed, err := ParsePath(path)
	if err != nil {
		return nil, err
	}
	return EncodePath(parsed), nil
}
