// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

package store

// ClearSymbols deletes every symbol belonging to fileID: symbols are
// regenerated, not merged, for every changed file.
func (s *Store) ClearSymbols(fileID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.db.Exec(`DELETE FROM symbols WHERE file_id = ?`, fileID)
	return wrapStoreErr("Cannot clear symbols", err)
}

// InsertSymbol inserts one symbol and returns its assigned id. Callers must
// insert parents before children so parentID can reference an already
// assigned row.
func (s *Store) InsertSymbol(fileID int64, name string, kind SymbolKind, startLine, endLine int64, signature string, parentID *int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec(
		`INSERT INTO symbols (file_id, name, kind, start_line, end_line, signature, parent_symbol_id)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		fileID, name, string(kind), startLine, endLine, signature, parentID,
	)
	if err != nil {
		return 0, wrapStoreErr("Cannot insert symbol", err)
	}
	return res.LastInsertId()
}

// ListSymbolsForFile returns every symbol for fileID ordered by start line.
func (s *Store) ListSymbolsForFile(fileID int64) ([]Symbol, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(
		`SELECT id, file_id, name, kind, start_line, end_line, signature, parent_symbol_id
		 FROM symbols WHERE file_id = ? ORDER BY start_line`, fileID,
	)
	if err != nil {
		return nil, wrapStoreErr("Cannot list symbols", err)
	}
	defer rows.Close()

	var out []Symbol
	for rows.Next() {
		var sym Symbol
		var kind string
		if err := rows.Scan(&sym.ID, &sym.FileID, &sym.Name, &kind, &sym.StartLine, &sym.EndLine, &sym.Signature, &sym.ParentSymbolID); err != nil {
			return nil, wrapStoreErr("Cannot scan symbol row", err)
		}
		sym.Kind = SymbolKind(kind)
		out = append(out, sym)
	}
	return out, rows.Err()
}

// CountSymbols returns the total number of tracked symbols.
func (s *Store) CountSymbols() (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var n int64
	err := s.db.QueryRow(`SELECT COUNT(*) FROM symbols`).Scan(&n)
	return n, wrapStoreErr("Cannot count symbols", err)
}

// CountSymbolsByKind returns the symbol count for each kind as a map, which
// carries no ordering.
func (s *Store) CountSymbolsByKind() (map[SymbolKind]int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`SELECT kind, COUNT(*) FROM symbols GROUP BY kind ORDER BY COUNT(*) DESC`)
	if err != nil {
		return nil, wrapStoreErr("Cannot count symbols by kind", err)
	}
	defer rows.Close()

	out := make(map[SymbolKind]int64)
	for rows.Next() {
		var kind string
		var n int64
		if err := rows.Scan(&kind, &n); err != nil {
			return nil, wrapStoreErr("Cannot scan kind count row", err)
		}
		out[SymbolKind(kind)] = n
	}
	return out, rows.Err()
}
