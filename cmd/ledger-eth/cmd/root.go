// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// Licensed under the Apache License, Version 2.0

// Package cmd implements the ledger-eth command line tool.
package cmd

import (
	"fmt"
	"os"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	ledger "github.com/luxfi/ledger-eth"
)

// openSession connects to the first usable device. Tests replace it.
var openSession = func(cfg ledger.Config, logger *zap.SugaredLogger) (*ledger.Session, error) {
	return ledger.Open(cfg.Debug, ledger.WithConfig(cfg), ledger.WithLogger(logger))
}

type app struct {
	v      *viper.Viper
	logger *zap.SugaredLogger
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	a := &app{v: viper.New()}

	root := &cobra.Command{
		Use:           "ledger-eth",
		Short:         "Ethereum accounts and signing on a Ledger device",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init()
		},
	}

	flags := root.PersistentFlags()
	flags.Bool("debug", false, "Print extra debugging information")
	flags.Bool("legacy-accounts", false, "Enumerate accounts as 44'/60'/0'/i")
	flags.Int("max-accounts", ledger.DefaultMaxAccounts, "How many accounts to scan when looking one up")
	flags.Int("device", 0, "Index of the device to use")
	flags.String("config", "", "Config file (default ./ledger-eth.yaml)")
	_ = a.v.BindPFlags(flags)
	_ = a.v.BindEnv("legacy-accounts", "LEDGER_LEGACY_ACCOUNTS")
	_ = a.v.BindEnv("max-accounts", "MAX_ACCOUNTS_FETCH")
	_ = a.v.BindEnv("device", "LEDGER_DEVICE_INDEX")

	root.AddCommand(
		a.accountsCmd(),
		a.sendCmd(),
		a.signCmd(),
		a.signTypedCmd(),
		a.versionCmd(),
	)
	return root
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	root := NewRootCmd()
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func (a *app) init() error {
	if file := a.v.GetString("config"); file != "" {
		a.v.SetConfigFile(file)
	} else {
		a.v.SetConfigName("ledger-eth")
		a.v.SetConfigType("yaml")
		a.v.AddConfigPath(".")
	}
	if err := a.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return errors.Wrap(err, "reading config file")
		}
	}

	config := zap.NewDevelopmentConfig()
	config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	config.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	if a.v.GetBool("debug") {
		config.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	logger, err := config.Build()
	if err != nil {
		return errors.Wrap(err, "building logger")
	}
	a.logger = logger.Sugar()
	return nil
}

func (a *app) config() ledger.Config {
	cfg := ledger.ConfigFromEnv()
	cfg.Debug = a.v.GetBool("debug")
	cfg.LegacyAccounts = cfg.LegacyAccounts || a.v.GetBool("legacy-accounts")
	if a.v.IsSet("max-accounts") {
		cfg.MaxAccountsFetch = a.v.GetInt("max-accounts")
	}
	if a.v.IsSet("device") {
		cfg.DeviceIndex = a.v.GetInt("device")
	}
	return cfg
}

// withSession opens a session for the duration of fn.
func (a *app) withSession(fn func(s *ledger.Session) error) error {
	s, err := openSession(a.config(), a.logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := s.Close(); err != nil {
			a.logger.Debugf("closing device: %v", err)
		}
	}()
	return fn(s)
}

func parseAddress(s string) (common.Address, error) {
	if !common.IsHexAddress(s) {
		return common.Address{}, errors.Errorf("invalid address %q", s)
	}
	return common.HexToAddress(s), nil
}
