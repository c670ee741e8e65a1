// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// Licensed under the Apache License, Version 2.0

package cmd

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	ledger "github.com/luxfi/ledger-eth"
)

func (a *app) signCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sign ADDRESS MESSAGE",
		Short: "Sign a text message with a Ledger account (EIP-191)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			address, err := parseAddress(args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Signing %q with %s\n", args[1], address.Hex())

			return a.withSession(func(s *ledger.Session) error {
				account, err := s.FindAccount(address)
				if err != nil {
					return err
				}
				signed, err := s.SignMessage([]byte(args[1]), account.Path)
				if err != nil {
					return err
				}
				sig, err := signed.Hex()
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "Signature: %s\n", sig)
				return nil
			})
		},
	}
}

func (a *app) signTypedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "signtyped ADDRESS DOMAIN MESSAGE",
		Short: "Sign an EIP-712 domain hash and message hash with a Ledger account",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			address, err := parseAddress(args[0])
			if err != nil {
				return err
			}
			domain, err := hexutil.Decode(args[1])
			if err != nil {
				return errors.Wrap(err, "domain hash")
			}
			message, err := hexutil.Decode(args[2])
			if err != nil {
				return errors.Wrap(err, "message hash")
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Signing typed data with account %s\n", address.Hex())
			fmt.Fprintf(out, "Domain hash: %s\n", args[1])
			fmt.Fprintf(out, "Message hash: %s\n", args[2])

			return a.withSession(func(s *ledger.Session) error {
				account, err := s.FindAccount(address)
				if err != nil {
					return err
				}
				signed, err := s.SignTypedData(domain, message, account.Path)
				if err != nil {
					return err
				}
				sig, err := signed.Hex()
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "Signature: %s\n", sig)
				return nil
			})
		},
	}
}
