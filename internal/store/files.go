// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

package store

import (
	"database/sql"
	"time"
)

// UpsertFile inserts or updates a file record by path and returns its id.
func (s *Store) UpsertFile(path, language string, sizeBytes int64, hash string, lineCount int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(
		`INSERT INTO files (path, language, size_bytes, hash, line_count, last_analyzed)
		 VALUES (?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(path) DO UPDATE SET
			language = excluded.language,
			size_bytes = excluded.size_bytes,
			hash = excluded.hash,
			line_count = excluded.line_count,
			last_analyzed = CURRENT_TIMESTAMP`,
		path, language, sizeBytes, hash, lineCount,
	)
	if err != nil {
		return 0, wrapStoreErr("Cannot upsert file", err)
	}

	var id int64
	if err := s.db.QueryRow(`SELECT id FROM files WHERE path = ?`, path).Scan(&id); err != nil {
		return 0, wrapStoreErr("Cannot read back file id", err)
	}
	return id, nil
}

// GetFileByPath returns the file record for path, or nil if untracked.
func (s *Store) GetFileByPath(path string) (*File, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRow(
		`SELECT id, path, language, size_bytes, hash, line_count, last_analyzed
		 FROM files WHERE path = ?`, path,
	)
	f, err := scanFile(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, wrapStoreErr("Cannot read file", err)
	}
	return f, nil
}

// GetFileID returns the id for path, or nil if untracked.
func (s *Store) GetFileID(path string) (*int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var id int64
	err := s.db.QueryRow(`SELECT id FROM files WHERE path = ?`, path).Scan(&id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, wrapStoreErr("Cannot read file id", err)
	}
	return &id, nil
}

// ListAllFiles returns every tracked file ordered by path.
func (s *Store) ListAllFiles() ([]File, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(
		`SELECT id, path, language, size_bytes, hash, line_count, last_analyzed
		 FROM files ORDER BY path`,
	)
	if err != nil {
		return nil, wrapStoreErr("Cannot list files", err)
	}
	defer rows.Close()

	var out []File
	for rows.Next() {
		f, err := scanFile(rows)
		if err != nil {
			return nil, wrapStoreErr("Cannot scan file row", err)
		}
		out = append(out, *f)
	}
	return out, rows.Err()
}

// RemoveFilesNotIn deletes files whose path is not in keep, for detecting
// files vanished from disk between passes. Deletion
// cascades to symbols, dependencies-from, and stats.
func (s *Store) RemoveFilesNotIn(keep []string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(keep) == 0 {
		res, err := s.db.Exec(`DELETE FROM files`)
		if err != nil {
			return 0, wrapStoreErr("Cannot remove vanished files", err)
		}
		n, _ := res.RowsAffected()
		return n, nil
	}

	placeholders := make([]byte, 0, len(keep)*2)
	args := make([]any, len(keep))
	for i, p := range keep {
		if i > 0 {
			placeholders = append(placeholders, ',')
		}
		placeholders = append(placeholders, '?')
		args[i] = p
	}

	res, err := s.db.Exec(
		`DELETE FROM files WHERE path NOT IN (`+string(placeholders)+`)`, args...,
	)
	if err != nil {
		return 0, wrapStoreErr("Cannot remove vanished files", err)
	}
	n, _ := res.RowsAffected()
	return n, nil
}

type rowScanner interface {
	Scan(dest...any) error
}

func scanFile(row rowScanner) (*File, error) {
	var f File
	var lastAnalyzed string
	if err := row.Scan(&f.ID, &f.Path, &f.Language, &f.SizeBytes, &f.Hash, &f.LineCount, &lastAnalyzed); err != nil {
		return nil, err
	}
	f.LastAnalyzed = parseTimestamp(lastAnalyzed)
	return &f, nil
}

func parseTimestamp(s string) time.Time {
	for _, layout := range []string{
		"2006-01-02 15:04:05",
		time.RFC3339,
	} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
