// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// Licensed under the Apache License, Version 2.0

package cmd

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	ledger "github.com/luxfi/ledger-eth"
	"github.com/luxfi/ledger-eth/tx"
)

type sendFlags struct {
	nonce       uint64
	chainID     uint64
	gas         uint64
	gasPrice    string
	maxFee      string
	priorityFee string
	data        string
}

func (a *app) sendCmd() *cobra.Command {
	var f sendFlags

	cmd := &cobra.Command{
		Use:   "send FROM TO AMOUNT",
		Short: "Sign a value transfer from a Ledger account",
		Long: `Sign a value transfer and print the raw transaction.

AMOUNT and the fee flags are wei unless suffixed with gwei or ether.
Either --gasprice or --max-fee must be given; --max-fee builds a fee-market
transaction.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("nonce") {
				return errors.New("--nonce is required")
			}
			from, err := parseAddress(args[0])
			if err != nil {
				return err
			}
			to, err := parseAddress(args[1])
			if err != nil {
				return err
			}
			params, err := f.params(to, args[2])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Sending %s wei from %s to %s\n", params.Amount.Dec(), from.Hex(), to.Hex())

			return a.withSession(func(s *ledger.Session) error {
				account, err := s.FindAccount(from)
				if err != nil {
					return err
				}
				signed, err := s.CreateTransaction(params, account.Path)
				if err != nil {
					return err
				}
				raw, err := signed.RawTransaction()
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "Signed Raw Transaction: %s\n", raw)
				return nil
			})
		},
	}

	flags := cmd.Flags()
	flags.Uint64VarP(&f.nonce, "nonce", "n", 0, "Nonce to use for the transaction")
	flags.Uint64VarP(&f.chainID, "chainid", "c", tx.DefaultChainID, "Chain ID")
	flags.Uint64VarP(&f.gas, "gas", "g", 22000, "Gas limit")
	flags.StringVarP(&f.gasPrice, "gasprice", "p", "", "Gas price")
	flags.StringVarP(&f.maxFee, "max-fee", "f", "", "Max fee per gas")
	flags.StringVarP(&f.priorityFee, "priority-fee", "b", "0", "Priority fee per gas")
	flags.StringVarP(&f.data, "data", "d", "", "Hex data to send with the transaction")
	return cmd
}

func (f sendFlags) params(to common.Address, amount string) (tx.Params, error) {
	if f.gasPrice == "" && f.maxFee == "" {
		return tx.Params{}, errors.New("either --gasprice or --max-fee must be provided")
	}

	value, err := parseAmount(amount)
	if err != nil {
		return tx.Params{}, err
	}
	p := tx.Params{
		Destination: &to,
		Amount:      value,
		GasLimit:    uint256.NewInt(f.gas),
		Nonce:       uint256.NewInt(f.nonce),
		ChainID:     uint256.NewInt(f.chainID),
		Data:        common.FromHex(f.data),
	}

	if f.gasPrice != "" {
		if p.GasPrice, err = parseAmount(f.gasPrice); err != nil {
			return tx.Params{}, err
		}
	}
	if f.maxFee != "" {
		if p.MaxFeePerGas, err = parseAmount(f.maxFee); err != nil {
			return tx.Params{}, err
		}
		if p.MaxPriorityFeePerGas, err = parseAmount(f.priorityFee); err != nil {
			return tx.Params{}, err
		}
	}
	return p, nil
}
