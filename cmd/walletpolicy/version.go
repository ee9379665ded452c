// Copyright (c) 2024 The EXCCoin developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import "fmt"

const (
	appMajor uint = 0
	appMinor uint = 1
	appPatch uint = 0
)

func version() string {
	return fmt.Sprintf("%d.%d.%d", appMajor, appMinor, appPatch)
}
