// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides configuration loading for cartpack.
//
// Configuration comes from a single file named by the --config flag
// (via [LoadFile]), or from [Default] when no flag is given. There is
// no ~/.config discovery and no environment variable overrides: the
// same file always produces the same cartridge.
//
// Files ending in .json or .jsonc are parsed as JSON with comments and
// trailing commas (tidwall/jsonc); anything else is YAML. Both forms
// use the same keys.
//
// Path fields expand ${HOME} and ${CONFIG_DIR} (the directory holding
// the config file), so a config can name a preview path next to itself.
//
// Key exports:
//
//   - [Config] -- master struct with Image, Palette, Codec, Container,
//     Output sections
//   - [Default] -- the 136-pixel planet defaults
//   - [LoadFile] -- read, expand and validate a config file
//   - [Config.Colors], [Config.NewCodec], [Config.CartridgeOptions] --
//     convert sections into the types lib/palette, lib/symbolcodec and
//     lib/cartridge consume
package config
