package main

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"genfs/internal/database"
	"genfs/internal/database/migrations"
)

func main() {
	db, err := database.OpenConnection(database.MemoryPath, 0)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open database: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := migrations.MigrateUp(db); err != nil {
		fmt.Fprintf(os.Stderr, "Migration failed: %v\n", err)
		os.Exit(1)
	}

	version, err := migrations.LatestVersion()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to read migration version: %v\n", err)
		os.Exit(1)
	}

	schema, err := extractSchema(db)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to extract schema: %v\n", err)
		os.Exit(1)
	}

	outPath := filepath.Join("internal", "database", "sqlc", "schema.sql")

	if err := os.WriteFile(outPath, []byte(schema), 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to write schema file: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("wrote %s (schema version %d)\n", outPath, version)
}

// extractSchema returns the CREATE statements of every table and index
// except SQLite internals and the migration bookkeeping table.
func extractSchema(db *sql.DB) (string, error) {
	query := `
		SELECT sql || ';'
		FROM sqlite_master
		WHERE type IN ('table', 'index')
		  AND name NOT LIKE 'sqlite_%'
		  AND name != 'schema_migrations'
		  AND tbl_name != 'schema_migrations'
		ORDER BY
		  CASE type
		    WHEN 'table' THEN 1
		    WHEN 'index' THEN 2
		  END,
		  name
	`

	rows, err := db.Query(query)
	if err != nil {
		return "", fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	var schema strings.Builder
	for rows.Next() {
		var stmt string
		if err := rows.Scan(&stmt); err != nil {
			return "", fmt.Errorf("scan failed: %w", err)
		}
		schema.WriteString(stmt)
		schema.WriteString("\n\n")
	}

	if err := rows.Err(); err != nil {
		return "", fmt.Errorf("rows error: %w", err)
	}

	header := `-- This file is auto-generated from migration files.
-- DO NOT EDIT MANUALLY. Run 'go generate ./internal/database' to regenerate.
-- Source: internal/database/migrations/files/*.sql

`
	return header + schema.String(), nil
}
