// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the interactive client application runtime.
//
// It resolves the current identity, opens its workspace, hands it to the
// terminal UI and locks whatever workspace is open when the UI exits.
package client
