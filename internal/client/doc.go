// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the ontime command-line client runtime.
//
// It parses a subcommand and its arguments, calls the server through
// [adapter.ServerAdapter] and renders the results for the terminal.
package client
