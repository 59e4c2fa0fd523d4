// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

package store

import "encoding/json"

// ClearDependencies deletes every outgoing edge from fileID.
func (s *Store) ClearDependencies(fileID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.db.Exec(`DELETE FROM dependencies WHERE from_file_id = ?`, fileID)
	return wrapStoreErr("Cannot clear dependencies", err)
}

// InsertDependency inserts an unresolved dependency edge. Resolution (filling
// in to_file_id) is a separate step run by internal/resolve over
// ListUnresolvedDependencies.
func (s *Store) InsertDependency(fromFileID int64, toPath, kind string, importedNames []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	names, err := json.Marshal(importedNames)
	if err != nil {
		return wrapStoreErr("Cannot encode imported names", err)
	}

	_, err = s.db.Exec(
		`INSERT INTO dependencies (from_file_id, to_path, kind, imported_names) VALUES (?, ?, ?, ?)`,
		fromFileID, toPath, kind, string(names),
	)
	return wrapStoreErr("Cannot insert dependency", err)
}

// UnresolvedDependency is one row with a null to_file_id, joined with the
// path of its owning file (needed by the resolver's candidate algorithm).
type UnresolvedDependency struct {
	ID int64
	ToPath string
	FromPath string
}

// ListUnresolvedDependencies returns every edge with a null to_file_id.
func (s *Store) ListUnresolvedDependencies() ([]UnresolvedDependency, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(
		`SELECT d.id, d.to_path, f.path
		 FROM dependencies d JOIN files f ON f.id = d.from_file_id
		 WHERE d.to_file_id IS NULL`,
	)
	if err != nil {
		return nil, wrapStoreErr("Cannot list unresolved dependencies", err)
	}
	defer rows.Close()

	var out []UnresolvedDependency
	for rows.Next() {
		var u UnresolvedDependency
		if err := rows.Scan(&u.ID, &u.ToPath, &u.FromPath); err != nil {
			return nil, wrapStoreErr("Cannot scan unresolved dependency row", err)
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

// SetDependencyTarget fills in the resolved to_file_id for a dependency edge.
func (s *Store) SetDependencyTarget(depID, fileID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.db.Exec(`UPDATE dependencies SET to_file_id = ? WHERE id = ?`, fileID, depID)
	return wrapStoreErr("Cannot set dependency target", err)
}

// ListDependents returns the (id, path) of every file that imports fileID —
// the one-hop "direct dependents" view.
func (s *Store) ListDependents(fileID int64) ([]File, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(
		`SELECT DISTINCT f.id, f.path FROM dependencies d
		 JOIN files f ON f.id = d.from_file_id
		 WHERE d.to_file_id = ?`, fileID,
	)
	if err != nil {
		return nil, wrapStoreErr("Cannot list dependents", err)
	}
	defer rows.Close()

	var out []File
	for rows.Next() {
		var f File
		if err := rows.Scan(&f.ID, &f.Path); err != nil {
			return nil, wrapStoreErr("Cannot scan dependent row", err)
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

// ListDependenciesOf returns the (optional file id, raw to_path) of every
// edge fileID declares — the one-hop "direct dependencies" view.
func (s *Store) ListDependenciesOf(fileID int64) ([]Dependency, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(
		`SELECT id, to_file_id, to_path, kind, imported_names FROM dependencies WHERE from_file_id = ?`,
		fileID,
	)
	if err != nil {
		return nil, wrapStoreErr("Cannot list dependencies", err)
	}
	defer rows.Close()

	var out []Dependency
	for rows.Next() {
		var d Dependency
		var names string
		d.FromFileID = fileID
		if err := rows.Scan(&d.ID, &d.ToFileID, &d.ToPath, &d.Kind, &names); err != nil {
			return nil, wrapStoreErr("Cannot scan dependency row", err)
		}
		_ = json.Unmarshal([]byte(names), &d.ImportedNames)
		out = append(out, d)
	}
	return out, rows.Err()
}

// CountDependencies returns the total number of tracked dependency edges.
func (s *Store) CountDependencies() (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var n int64
	err := s.db.QueryRow(`SELECT COUNT(*) FROM dependencies`).Scan(&n)
	return n, wrapStoreErr("Cannot count dependencies", err)
}

// CountIncomingEdges returns the number of dependency edges resolved to
// fileID, used by file-health classification.
func (s *Store) CountIncomingEdges(fileID int64) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var n int64
	err := s.db.QueryRow(`SELECT COUNT(*) FROM dependencies WHERE to_file_id = ?`, fileID).Scan(&n)
	return n, wrapStoreErr("Cannot count incoming edges", err)
}
