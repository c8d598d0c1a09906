// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package testutil provides shared test helpers for cartpack packages.
//
// [RandomSymbols] and [RunSymbols] generate deterministic symbol
// streams from a seed, so codec tests exercise the same inputs on
// every run without checked-in fixtures. [RunSymbols] produces the
// long runs that real quantized images have; [RandomSymbols] produces
// noise that defeats run-length coding.
//
// [WriteFile] and [ReadFile] wrap file I/O for fixtures in t.TempDir().
//
// All helpers call t.Fatalf on failure rather than returning errors,
// since test setup failures are not recoverable.
//
// This package has no cartpack-internal dependencies.
package testutil
