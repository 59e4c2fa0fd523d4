// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

// Package bootstrap resolves a project root and opens its Store, enforcing
// the command surface's not-initialized / wrong-project error taxonomy
// ahead of the Pipeline or any query.
package bootstrap
