// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// Licensed under the Apache License, Version 2.0

package main

import "github.com/luxfi/ledger-eth/cmd/ledger-eth/cmd"

func main() {
	cmd.Execute()
}
