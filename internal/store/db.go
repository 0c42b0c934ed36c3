// Package store keeps a short history of ingest runs in a local SQLite
// file, so "what did the last good fetch look like" survives restarts.
// The live dashboard never reads from here; it is introspection only.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/gofrs/flock"

	_ "modernc.org/sqlite"
)

type DB struct {
	Pool *sql.DB
	lock *flock.Flock
}

// Open opens (and locks) the snapshot database. The flock guards against
// a second engine instance writing the same data dir.
func Open(path string) (*DB, error) {
	lk := flock.New(path + ".lock")
	locked, err := lk.TryLock()
	if err != nil {
		return nil, fmt.Errorf("store lock: %w", err)
	}
	if !locked {
		return nil, fmt.Errorf("store %s is locked by another engine instance", path)
	}

	// modernc sqlite uses DSN like: file:foo.db?_pragma=busy_timeout(5000)
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)", path)

	pool, err := sql.Open("sqlite", dsn)
	if err != nil {
		_ = lk.Unlock()
		return nil, err
	}

	pool.SetMaxOpenConns(1) // sqlite wants one writer
	pool.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := pool.PingContext(ctx); err != nil {
		_ = pool.Close()
		_ = lk.Unlock()
		return nil, err
	}

	return &DB{Pool: pool, lock: lk}, nil
}

func (d *DB) Close() error {
	if d == nil {
		return nil
	}
	if d.lock != nil {
		_ = d.lock.Unlock()
	}
	if d.Pool == nil {
		return nil
	}
	return d.Pool.Close()
}
