// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

package store

import "strings"

// searchResultCap bounds the number of rows a search query returns.
const searchResultCap = 50

// RebuildSearchIndex fully rebuilds the denormalized FTS5 search_index from
// the current symbols/files tables, atomically, at the end of each
// pipeline pass.
func (s *Store) RebuildSearchIndex() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.Exec(`DELETE FROM search_index`); err != nil {
		return wrapStoreErr("Cannot clear search index", err)
	}
	_, err := s.db.Exec(`
		INSERT INTO search_index(name, path, kind, signature)
		SELECT s.name, f.path, s.kind, s.signature
		FROM symbols s JOIN files f ON f.id = s.file_id
	`)
	return wrapStoreErr("Cannot rebuild search index", err)
}

// Search runs a prefix full-text query over the search index. The user's
// term is split on whitespace, each token suffixed with * for prefix
// matching, and the tokens joined with a space before being matched against
// the FTS5 table.
func (s *Store) Search(term string) ([]SearchHit, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := buildFTSQuery(term)
	if query == "" {
		return nil, nil
	}

	rows, err := s.db.Query(
		`SELECT name, path, kind, signature FROM search_index WHERE search_index MATCH ? LIMIT ?`,
		query, searchResultCap,
	)
	if err != nil {
		return nil, wrapStoreErr("Cannot search", err)
	}
	defer rows.Close()

	var out []SearchHit
	for rows.Next() {
		var h SearchHit
		var kind string
		if err := rows.Scan(&h.Name, &h.Path, &kind, &h.Signature); err != nil {
			return nil, wrapStoreErr("Cannot scan search row", err)
		}
		h.Kind = SymbolKind(kind)
		out = append(out, h)
	}
	return out, rows.Err()
}

func buildFTSQuery(term string) string {
	fields := strings.Fields(term)
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		f = strings.Map(func(r rune) rune {
			if r == '"' || r == '*' {
				return -1
			}
			return r
		}, f)
		if f == "" {
			continue
		}
		tokens = append(tokens, f+"*")
	}
	return strings.Join(tokens, " ")
}
