package database

// Code generation for the database package.
//
// sqlc/schema.sql is dumped from a database migrated with the embedded
// migrations, then sqlc generates the query layer from it:
//   go generate ./internal/database

//go:generate sh -c "cd ../.. && go run internal/database/tools/generate_schema.go"
//go:generate sh -c "cd ../.. && sqlc generate -f internal/database/sqlc/sqlc.yaml"
