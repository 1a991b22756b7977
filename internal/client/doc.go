// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Mark Karpenko

// Package client implements the interactive client application runtime.
//
// It wires the terminal UI, account services, local profile cache, and the
// crypto worker pool into a single process lifecycle.
package client
