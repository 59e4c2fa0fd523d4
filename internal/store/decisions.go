// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

package store

import "encoding/json"

// InsertDecision records a decision. For source = commit with a non-null
// commit hash, the partial unique index silently no-ops on a duplicate
// commit hash.
func (s *Store) InsertDecision(description string, source DecisionSource, commitHash *string, relatedFiles []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	related, err := json.Marshal(relatedFiles)
	if err != nil {
		return wrapStoreErr("Cannot encode related files", err)
	}

	_, err = s.db.Exec(
		`INSERT INTO decisions (description, source, commit_hash, related_files)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT DO NOTHING`,
		description, string(source), commitHash, string(related),
	)
	return wrapStoreErr("Cannot insert decision", err)
}

// ListDecisions returns recent decisions, newest first, capped at limit.
func (s *Store) ListDecisions(limit int) ([]Decision, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(
		`SELECT id, timestamp, description, source, commit_hash, related_files
		 FROM decisions ORDER BY timestamp DESC, id DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, wrapStoreErr("Cannot list decisions", err)
	}
	defer rows.Close()

	var out []Decision
	for rows.Next() {
		var d Decision
		var ts, related string
		var source string
		if err := rows.Scan(&d.ID, &ts, &d.Description, &source, &d.CommitHash, &related); err != nil {
			return nil, wrapStoreErr("Cannot scan decision row", err)
		}
		d.Timestamp = parseTimestamp(ts)
		d.Source = DecisionSource(source)
		_ = json.Unmarshal([]byte(related), &d.RelatedFiles)
		out = append(out, d)
	}
	return out, rows.Err()
}

// CountDecisions returns the total number of recorded decisions.
func (s *Store) CountDecisions() (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var n int64
	err := s.db.QueryRow(`SELECT COUNT(*) FROM decisions`).Scan(&n)
	return n, wrapStoreErr("Cannot count decisions", err)
}
