package store

import (
	"database/sql"
	_ "embed"
	"fmt"
	"log"

	_ "modernc.org/sqlite"
)

// DB is the scene archive database
type DB struct {
	*sql.DB
}

// schema.sql creates the scene table and its lookup indexes
//
//go:embed schema.sql
var schemaSQL string

// Open opens or creates the archive at path and applies the schema
func Open(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}

	// Each pooled connection to ":memory:" would see its own empty database
	if path == ":memory:" {
		db.SetMaxOpenConns(1)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	log.Printf("store: opened scene archive %s", path)
	return &DB{db}, nil
}
