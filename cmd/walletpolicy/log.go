// Copyright (c) 2024 The EXCCoin developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"os"

	"github.com/decred/slog"

	"github.com/EXCCoin/walletpolicy/keyinfo"
	"github.com/EXCCoin/walletpolicy/policy"
	"github.com/EXCCoin/walletpolicy/walletheader"
)

var (
	backend = slog.NewBackend(os.Stdout)
	log     = backend.Logger("WPOL")
)

var subsystemLoggers = map[string]slog.Logger{
	"WPOL": log,
	"WHDR": backend.Logger("WHDR"),
	"KYIN": backend.Logger("KYIN"),
	"POLY": backend.Logger("POLY"),
}

func init() {
	walletheader.UseLogger(subsystemLoggers["WHDR"])
	keyinfo.UseLogger(subsystemLoggers["KYIN"])
	policy.UseLogger(subsystemLoggers["POLY"])
}

// setLogLevel sets the verbosity of every subsystem logger in
// subsystemLoggers from a level name such as "debug" or "trace".
// Unrecognized names leave the level unchanged.
func setLogLevel(levelName string) {
	level, ok := slog.LevelFromString(levelName)
	if !ok {
		return
	}
	for _, l := range subsystemLoggers {
		l.SetLevel(level)
	}
}
