// Package migrations embarque le schéma SQL et l'applique avec goose.
package migrations

import (
	"context"
	"database/sql"
	"embed"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

//go:embed sql/*.sql
var Migrations embed.FS

// gooseUpContext est remplaçable dans les tests
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// Up applique toutes les migrations en attente sur le pool fourni
func Up(ctx context.Context, pool *pgxpool.Pool) error {
	db := stdlib.OpenDBFromPool(pool)
	defer db.Close()

	return UpDB(ctx, db)
}

// UpDB applique les migrations sur une connexion database/sql
func UpDB(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(Migrations)
	goose.SetLogger(goose.NopLogger())

	if err := goose.SetDialect("pgx"); err != nil {
		return fmt.Errorf("dialecte goose: %w", err)
	}

	if err := gooseUpContext(ctx, db, "sql"); err != nil {
		return fmt.Errorf("application des migrations: %w", err)
	}
	return nil
}
