// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

// Package migrate imports decisions recorded by older, file-based ctx-agent
// stores (a YAML export of decisions and their related files) into the
// current SQLite-backed Store. It exists for users upgrading a project that
// predates the database-backed store.
package migrate

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/kraklabs/ctx-agent/internal/store"
)

// legacyExport is the shape of a pre-database decisions export.
type legacyExport struct {
	Decisions []legacyDecision `yaml:"decisions"`
}

type legacyDecision struct {
	Description  string   `yaml:"description"`
	CommitHash   string   `yaml:"commit_hash"`
	RelatedFiles []string `yaml:"related_files"`
}

// ImportYAML reads a legacy decisions export at path and inserts every
// qualifying entry into s as a commit-sourced decision, skipping entries with
// a blank description. It returns the number of decisions imported.
func ImportYAML(s *store.Store, path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("reading legacy export: %w", err)
	}

	var export legacyExport
	if err := yaml.Unmarshal(data, &export); err != nil {
		return 0, fmt.Errorf("parsing legacy export: %w", err)
	}

	imported := 0
	for _, d := range export.Decisions {
		description := strings.TrimSpace(d.Description)
		if description == "" {
			continue
		}

		var commitHash *string
		if hash := strings.TrimSpace(d.CommitHash); hash != "" {
			commitHash = &hash
		}

		if err := s.InsertDecision(description, store.SourceCommit, commitHash, d.RelatedFiles); err != nil {
			continue
		}
		imported++
	}

	return imported, nil
}
