// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

// Package store implements the persistent relational model: one SQLite
// database per project, opened from a fixed hidden subdirectory at the
// project root, enforcing project-root binding.
//
// The store is built on github.com/mattn/go-sqlite3, compiled with the
// sqlite_fts5 build tag so the Porter-stemmed search_index virtual table
// is available.
package store

import (
	"database/sql"
	"os"
	"path/filepath"
	"sync"

	_ "github.com/mattn/go-sqlite3"

	cerrors "github.com/kraklabs/ctx-agent/internal/errors"
)

// DirName is the hidden storage subdirectory created at the project root.
const DirName = ".ctx"

// dbFileName is the SQLite database file inside DirName.
const dbFileName = "ctx.db"

// metaProjectRootKey is the meta table key holding the canonical project root.
const metaProjectRootKey = "project_root"

// Store is the project's persistent relational model. It wraps a single
// SQLite connection; callers are expected to serialize writer passes.
type Store struct {
	db *sql.DB
	dir string
	mu sync.RWMutex
	closed bool
}

// Exists reports whether a store already exists for projectRoot, without
// opening it.
func Exists(projectRoot string) bool {
	_, err := os.Stat(filepath.Join(projectRoot, DirName, dbFileName))
	return err == nil
}

// Open creates or opens the store rooted at projectRoot. It creates the
// hidden storage subdirectory, runs schema migrations, enables WAL mode and
// normal-synchronous durability, and enforces project-root binding: a store
// previously bound to a different canonical root fails with WrongProject.
func Open(projectRoot string) (*Store, error) {
	canonicalRoot, err := filepath.Abs(projectRoot)
	if err != nil {
		return nil, cerrors.NewStoreIOError(
			"Cannot resolve project root",
			err.Error(),
			"Check that the path exists",
			err,
		)
	}
	canonicalRoot = filepath.Clean(canonicalRoot)

	dir := filepath.Join(canonicalRoot, DirName)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, cerrors.NewStoreIOError(
			"Cannot create storage directory",
			err.Error(),
			"Check filesystem permissions",
			err,
		)
	}

	dbPath := filepath.Join(dir, dbFileName)
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on")
	if err != nil {
		return nil, cerrors.NewStoreIOError(
			"Cannot open the project store",
			err.Error(),
			"Check that the database file is not corrupted",
			err,
		)
	}
	// go-sqlite3 connections are not safe for concurrent writers; the store
	// is used by at most one writer pass at a time.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(`PRAGMA journal_mode=WAL; PRAGMA synchronous=NORMAL; PRAGMA foreign_keys=ON;`); err != nil {
		_ = db.Close()
		return nil, cerrors.NewStoreIOError(
			"Cannot configure the project store",
			err.Error(),
			"",
			err,
		)
	}

	if err := runMigrations(db); err != nil {
		_ = db.Close()
		return nil, cerrors.NewStoreIOError(
			"Cannot migrate the project store",
			err.Error(),
			"",
			err,
		)
	}

	s := &Store{db: db, dir: dir}
	if err := s.bindProjectRoot(canonicalRoot); err != nil {
		_ = db.Close()
		return nil, err
	}

	return s, nil
}

// bindProjectRoot enforces project binding: if a canonical root is already
// recorded and differs from the current one, the open fails hard;
// otherwise it is written.
func (s *Store) bindProjectRoot(canonicalRoot string) error {
	var bound string
	err := s.db.QueryRow(`SELECT value FROM meta WHERE key = ?`, metaProjectRootKey).Scan(&bound)
	switch {
	case err == sql.ErrNoRows:
		_, err := s.db.Exec(
			`INSERT INTO meta (key, value) VALUES (?, ?)`,
			metaProjectRootKey, canonicalRoot,
		)
		if err != nil {
			return cerrors.NewStoreIOError("Cannot bind project root", err.Error(), "", err)
		}
		return nil
	case err != nil:
		return cerrors.NewStoreIOError("Cannot read project binding", err.Error(), "", err)
	case bound != canonicalRoot:
		return cerrors.NewWrongProjectError(bound, canonicalRoot)
	default:
		return nil
	}
}

// Close closes the underlying database connection. Safe to call more than once.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	return s.db.Close()
}

// Dir returns the hidden storage directory (<project_root>/.ctx).
func (s *Store) Dir() string {
	return s.dir
}

func wrapStoreErr(msg string, err error) error {
	if err == nil {
		return nil
	}
	return cerrors.NewStoreIOError(msg, err.Error(), "", err)
}
