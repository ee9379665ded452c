// Copyright (c) 2024 The EXCCoin developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	flags "github.com/jessevdk/go-flags"
)

// config defines the command-line options for walletpolicy.
type config struct {
	Hex         string `short:"x" long:"hex" description:"hex-encoded wallet header (type byte, name, policy body, key count, Merkle root)"`
	DebugLevel  string `short:"d" long:"debuglevel" description:"logging level: trace, debug, info, warn, error, critical" default:"info"`
	ShowVersion bool   `short:"V" long:"version" description:"Display version information and exit"`
}

func loadConfig() (*config, []string, error) {
	cfg := config{DebugLevel: "info"}

	parser := flags.NewParser(&cfg, flags.Default)
	remaining, err := parser.Parse()
	if err != nil {
		if e, ok := err.(*flags.Error); ok && e.Type == flags.ErrHelp {
			return nil, nil, err
		}
		return nil, nil, err
	}

	appName := filepath.Base(os.Args[0])
	appName = strings.TrimSuffix(appName, filepath.Ext(appName))
	if cfg.ShowVersion {
		fmt.Println(appName, "version", version())
		os.Exit(0)
	}

	return &cfg, remaining, nil
}
