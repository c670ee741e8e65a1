// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// Licensed under the Apache License, Version 2.0

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	ledger "github.com/luxfi/ledger-eth"
)

func (a *app) accountsCmd() *cobra.Command {
	var count int

	cmd := &cobra.Command{
		Use:   "accounts [PATH]",
		Short: "Print accounts from the Ledger",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withSession(func(s *ledger.Session) error {
				out := cmd.OutOrStdout()
				if len(args) == 1 {
					account, err := s.GetAccountByPath(args[0])
					if err != nil {
						return err
					}
					fmt.Fprintf(out, "Account %s %s\n", account.Path, account.Address.Hex())
					return nil
				}

				found, err := s.GetAccounts(count)
				if err != nil {
					return err
				}
				for i, account := range found {
					fmt.Fprintf(out, "Account %d: %s %s\n", i, account.Path, account.Address.Hex())
				}
				return nil
			})
		},
	}
	cmd.Flags().IntVarP(&count, "count", "c", ledger.DefaultAccountsFetch, "How many accounts to fetch")
	return cmd
}
