// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

package store

// InsertKnowledge records a free-form note.
func (s *Store) InsertKnowledge(content string, source DecisionSource, relatedFile *string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.db.Exec(
		`INSERT INTO knowledge (content, source, related_file) VALUES (?, ?, ?)`,
		content, string(source), relatedFile,
	)
	return wrapStoreErr("Cannot insert knowledge", err)
}

// ListKnowledge returns notes newest first, capped at limit.
func (s *Store) ListKnowledge(limit int) ([]Knowledge, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(
		`SELECT id, content, source, related_file, timestamp
		 FROM knowledge ORDER BY timestamp DESC, id DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, wrapStoreErr("Cannot list knowledge", err)
	}
	defer rows.Close()

	var out []Knowledge
	for rows.Next() {
		var k Knowledge
		var ts, source string
		if err := rows.Scan(&k.ID, &k.Content, &source, &k.RelatedFile, &ts); err != nil {
			return nil, wrapStoreErr("Cannot scan knowledge row", err)
		}
		k.Source = DecisionSource(source)
		k.Timestamp = parseTimestamp(ts)
		out = append(out, k)
	}
	return out, rows.Err()
}
