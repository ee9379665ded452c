// Copyright (c) 2024 The EXCCoin developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Command walletpolicy decodes a wallet header, parses its embedded
// policy body, and prints the wallet name, key count, script shape, and
// canonical wallet policy ID.
package main

import (
	"encoding/hex"
	"fmt"
	"os"

	"github.com/EXCCoin/walletpolicy/arena"
	"github.com/EXCCoin/walletpolicy/buffer"
	"github.com/EXCCoin/walletpolicy/policy"
	"github.com/EXCCoin/walletpolicy/walletheader"
	"github.com/EXCCoin/walletpolicy/walletid"
)

// maxPolicyNodes bounds the arena backing a single parse. The grammar's
// depth and child-count limits (spec.md §4) keep real policy bodies to a
// few dozen nodes at most; this is a generous multiple of that.
const maxPolicyNodes = 512

func main() {
	cfg, _, err := loadConfig()
	if err != nil {
		os.Exit(1)
	}
	setLogLevel(cfg.DebugLevel)

	if cfg.Hex == "" {
		fmt.Fprintln(os.Stderr, "walletpolicy: missing -x/--hex input")
		os.Exit(1)
	}

	raw, err := hex.DecodeString(cfg.Hex)
	if err != nil {
		log.Errorf("invalid hex input: %v", err)
		os.Exit(1)
	}

	if err := run(raw); err != nil {
		log.Errorf("%v", err)
		os.Exit(1)
	}
}

func run(raw []byte) error {
	cur := buffer.New(raw)
	header, err := walletheader.Decode(cur)
	if err != nil {
		return fmt.Errorf("decoding wallet header: %w", err)
	}
	log.Infof("decoded header: name=%q n_keys=%d policy_body=%q",
		header.Name, header.NKeys, header.PolicyBody)

	a := arena.New[policy.Node](maxPolicyNodes)
	parser := policy.NewParser(a)
	root, err := parser.ParsePolicy(buffer.New(header.PolicyBody))
	if err != nil {
		return fmt.Errorf("parsing policy body: %w", err)
	}

	shape := policy.Shape(a, root)
	log.Infof("policy shape: %s", shape)

	id, err := walletid.Compute(header)
	if err != nil {
		return fmt.Errorf("computing wallet id: %w", err)
	}

	fmt.Printf("name:       %s\n", header.Name)
	fmt.Printf("keys:       %d\n", header.NKeys)
	fmt.Printf("shape:      %s\n", shape)
	fmt.Printf("wallet id:  %s\n", hex.EncodeToString(id[:]))
	return nil
}
