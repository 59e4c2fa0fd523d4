// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

package watch

import "testing"

func TestIsIgnoredPath(t *testing.T) {
	cases := map[string]bool{
		"/proj/.ctx/store.db":         true,
		"/proj/.git/HEAD":             true,
		"/proj/target/debug/main":     true,
		"/proj/node_modules/pkg/a.js": true,
		"/proj/src/main.go":           false,
		"/proj/README.md":             false,
	}
	for path, want := range cases {
		if got := isIgnoredPath(path); got != want {
			t.Errorf("isIgnoredPath(%q) = %v, want %v", path, got, want)
		}
	}
}

func TestIsIgnoredDir(t *testing.T) {
	for _, name := range []string{".ctx", ".git", "target", "node_modules"} {
		if !isIgnoredDir(name) {
			t.Errorf("isIgnoredDir(%q) = false, want true", name)
		}
	}
	if isIgnoredDir("src") {
		t.Errorf("isIgnoredDir(%q) = true, want false", "src")
	}
}
