// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

package history

import "testing"

func TestIsDecisionCommit(t *testing.T) {
	cases := map[string]bool{
		"feat: add thing":           true,
		"feat(api): add endpoint":   true,
		"refactor: simplify":        true,
		"refactor(core): simplify":  true,
		"fix: a BREAKING change":    true,
		"run the migration scripts": true,
		"replace old client":        true,
		"switch to new provider":    true,
		"switch from old provider":  true,
		"fix: typo":                 false,
		"":                          false,
	}
	for msg, want := range cases {
		if got := isDecisionCommit(msg); got != want {
			t.Errorf("isDecisionCommit(%q) = %v, want %v", msg, got, want)
		}
	}
}
