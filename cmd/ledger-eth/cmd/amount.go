// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// Licensed under the Apache License, Version 2.0

package cmd

import (
	"strings"

	"github.com/holiman/uint256"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

var units = []struct {
	suffix   string
	exponent int32
}{
	{"ether", 18},
	{"eth", 18},
	{"gwei", 9},
	{"wei", 0},
}

// parseAmount reads a non-negative amount such as "21000", "1.5ether" or
// "30gwei" and returns it in wei. A bare number is wei.
func parseAmount(s string) (*uint256.Int, error) {
	text := strings.ToLower(strings.TrimSpace(s))
	var exponent int32
	for _, u := range units {
		if strings.HasSuffix(text, u.suffix) {
			text = strings.TrimSpace(strings.TrimSuffix(text, u.suffix))
			exponent = u.exponent
			break
		}
	}

	d, err := decimal.NewFromString(text)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid amount %q", s)
	}
	if d.IsNegative() {
		return nil, errors.Errorf("negative amount %q", s)
	}

	wei := d.Shift(exponent)
	if !wei.Equal(wei.Truncate(0)) {
		return nil, errors.Errorf("amount %q is not a whole number of wei", s)
	}

	n, overflow := uint256.FromBig(wei.BigInt())
	if overflow {
		return nil, errors.Errorf("amount %q does not fit 256 bits", s)
	}
	return n, nil
}
