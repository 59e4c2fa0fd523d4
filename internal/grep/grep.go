// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

// Package grep implements the regex-over-file-contents external collaborator
//: it walks the project with the same rules as the Scanner
// and reports bounded (file, line, text) matches.
package grep

import (
	"regexp"
	"strings"

	"github.com/kraklabs/ctx-agent/internal/scan"
)

// DefaultMaxResults and MaxResultsCap bound the result count.
const (
	DefaultMaxResults = 60
	MaxResultsCap = 200
)

// Match is one (file, line, text) hit.
type Match struct {
	Path string
	Line int64
	Text string
}

// Search compiles pattern and scans projectRoot for matches, honoring the
// Scanner's walk and ignore rules. maxResults <= 0 uses DefaultMaxResults;
// values above MaxResultsCap are clamped.
func Search(projectRoot, pattern string, maxResults int) ([]Match, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, err
	}

	limit := maxResults
	if limit <= 0 {
		limit = DefaultMaxResults
	}
	if limit > MaxResultsCap {
		limit = MaxResultsCap
	}

	records, err := scan.Scan(projectRoot)
	if err != nil {
		return nil, err
	}

	var matches []Match
	for _, rec := range records {
		if len(matches) >= limit {
			break
		}
		lines := strings.Split(rec.Content, "\n")
		for i, line := range lines {
			if re.MatchString(line) {
				matches = append(matches, Match{Path: rec.RelPath, Line: int64(i + 1), Text: line})
				if len(matches) >= limit {
					break
				}
			}
		}
	}
	return matches, nil
}
