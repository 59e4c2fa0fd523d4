// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

package store

import (
	"database/sql"
	"errors"
)

// UpsertFileStats records churn statistics for a file, upserted by the
// History Miner.
func (s *Store) UpsertFileStats(fileID, commitCount int64, lastModified *string, churnScore float64, contributors int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(
		`INSERT INTO file_stats (file_id, commit_count, last_modified, churn_score, contributors)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(file_id) DO UPDATE SET
			commit_count = excluded.commit_count,
			last_modified = excluded.last_modified,
			churn_score = excluded.churn_score,
			contributors = excluded.contributors`,
		fileID, commitCount, lastModified, churnScore, contributors,
	)
	return wrapStoreErr("Cannot upsert file stats", err)
}

// GetFileStats returns the stats row for fileID, or nil if the History
// Miner has not yet analyzed it.
func (s *Store) GetFileStats(fileID int64) (*FileStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var st FileStats
	var lastModified *string
	st.FileID = fileID
	err := s.db.QueryRow(
		`SELECT commit_count, last_modified, churn_score, contributors
		 FROM file_stats WHERE file_id = ?`, fileID,
	).Scan(&st.CommitCount, &lastModified, &st.ChurnScore, &st.Contributors)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, wrapStoreErr("Cannot read file stats", err)
	}
	if lastModified != nil {
		t := parseTimestamp(*lastModified)
		st.LastModified = &t
	}
	return &st, nil
}

// ListFileHealth joins every file with its stats and incoming-edge count,
// deriving the fragile/dead flags.
func (s *Store) ListFileHealth() ([]FileHealth, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT f.id, f.path, f.language, f.size_bytes, f.hash, f.line_count, f.last_analyzed,
		 COALESCE(fs.commit_count, 0), fs.last_modified, COALESCE(fs.churn_score, 0.0), COALESCE(fs.contributors, 0),
		 (SELECT COUNT(*) FROM dependencies d WHERE d.to_file_id = f.id) AS incoming
		FROM files f
		LEFT JOIN file_stats fs ON fs.file_id = f.id
	`)
	if err != nil {
		return nil, wrapStoreErr("Cannot list file health", err)
	}
	defer rows.Close()

	var out []FileHealth
	for rows.Next() {
		var h FileHealth
		var lastAnalyzed string
		var lastModified *string
		var commitCount, contributors, incoming int64
		var churn float64

		if err := rows.Scan(
			&h.File.ID, &h.File.Path, &h.File.Language, &h.File.SizeBytes, &h.File.Hash, &h.File.LineCount, &lastAnalyzed,
			&commitCount, &lastModified, &churn, &contributors, &incoming,
		); err != nil {
			return nil, wrapStoreErr("Cannot scan file health row", err)
		}

		h.File.LastAnalyzed = parseTimestamp(lastAnalyzed)
		h.IncomingEdgeCount = incoming
		h.Stats = &FileStats{
			FileID: h.File.ID,
			CommitCount: commitCount,
			ChurnScore: churn,
			Contributors: contributors,
		}
		if lastModified != nil {
			t := parseTimestamp(*lastModified)
			h.Stats.LastModified = &t
		}

		// fragile: high churn, heavily depended on
		h.Fragile = churn > 0.7 && incoming > 3
		// dead: never committed, nothing depends on it
		h.Dead = commitCount == 0 && incoming == 0

		out = append(out, h)
	}
	return out, rows.Err()
}
