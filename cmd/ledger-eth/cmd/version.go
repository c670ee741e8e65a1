// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// Licensed under the Apache License, Version 2.0

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	ledger "github.com/luxfi/ledger-eth"
)

func (a *app) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version of the Ethereum app",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withSession(func(s *ledger.Session) error {
				version, err := s.AppVersion(false)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Ethereum app %s\n", version)
				return nil
			})
		},
	}
}
