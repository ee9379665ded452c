// Copyright (c) 2024 The EXCCoin developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package policy

import "github.com/decred/slog"

// log is this package's subsystem logger. It is disabled by default;
// callers that want parse-decision tracing call UseLogger, the same
// per-package logger convention used throughout the teacher's tree.
var log = slog.Disabled

// UseLogger sets the logger used by this package. Suitable for
// calling from the application's logging setup.
func UseLogger(logger slog.Logger) {
	log = logger
}
