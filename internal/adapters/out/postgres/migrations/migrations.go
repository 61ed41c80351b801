// Package migrations holds the versioned schema and applies it with goose.
package migrations

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/lib/pq"
	"github.com/pressly/goose/v3"
)

//go:embed *.sql
var files embed.FS

// Result describes one applied migration.
type Result struct {
	Version  int64
	Source   string
	Duration string
}

// Up applies every pending migration to db and returns what was applied.
func Up(ctx context.Context, db *sql.DB) ([]Result, error) {
	provider, err := goose.NewProvider(goose.DialectPostgres, db, files)
	if err != nil {
		return nil, fmt.Errorf("goose provider: %w", err)
	}

	applied, err := provider.Up(ctx)
	if err != nil {
		return nil, fmt.Errorf("migrate up: %w", err)
	}

	results := make([]Result, 0, len(applied))
	for _, r := range applied {
		results = append(results, Result{
			Version:  r.Source.Version,
			Source:   r.Source.Path,
			Duration: r.Duration.String(),
		})
	}
	return results, nil
}

// UpURL opens databaseURL with lib/pq, creating the database first when it
// does not exist, and applies the pending migrations.
func UpURL(ctx context.Context, databaseURL string) ([]Result, error) {
	if err := EnsureDatabase(ctx, databaseURL); err != nil {
		return nil, fmt.Errorf("ensure database: %w", err)
	}

	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	return Up(ctx, db)
}

// EnsureDatabase connects to the maintenance database of the same server and
// creates the database named in databaseURL if it is missing.
func EnsureDatabase(ctx context.Context, databaseURL string) error {
	u, err := url.Parse(databaseURL)
	if err != nil {
		return fmt.Errorf("parse database url: %w", err)
	}
	name := strings.TrimPrefix(u.Path, "/")
	if name == "" {
		return errors.New("database name is empty in url")
	}
	u.Path = "/postgres"

	admin, err := sql.Open("postgres", u.String())
	if err != nil {
		return fmt.Errorf("open admin connection: %w", err)
	}
	defer admin.Close()

	var exists bool
	err = admin.QueryRowContext(ctx, "SELECT true FROM pg_database WHERE datname = $1", name).Scan(&exists)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("check database existence: %w", err)
	}
	if exists {
		return nil
	}

	if _, err = admin.ExecContext(ctx, "CREATE DATABASE "+pq.QuoteIdentifier(name)); err != nil {
		return fmt.Errorf("create database %q: %w", name, err)
	}
	return nil
}
