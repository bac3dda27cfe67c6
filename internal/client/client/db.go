package client

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"

	"github.com/dmitrijs2005/timemachine/internal/client/migrations"
	"github.com/dmitrijs2005/timemachine/internal/logging"
)

// migrationLogger sends goose output to the client logger at debug level,
// so nothing reaches the terminal the REPL is using.
type migrationLogger struct {
	log logging.Logger
}

func (m migrationLogger) Printf(format string, v ...any) {
	m.log.Debug(context.Background(), strings.TrimSpace(fmt.Sprintf(format, v...)))
}

func (m migrationLogger) Fatalf(format string, v ...any) {
	msg := strings.TrimSpace(fmt.Sprintf(format, v...))
	m.log.Error(context.Background(), msg)
	panic(msg)
}

// RunMigrations brings the local session database to the latest schema.
func RunMigrations(ctx context.Context, db *sql.DB, log logging.Logger) error {
	provider, err := goose.NewProvider(goose.DialectSQLite3, db, migrations.Migrations,
		goose.WithVerbose(true),
		goose.WithLogger(migrationLogger{log: log.With("component", "migrations")}),
	)
	if err != nil {
		return fmt.Errorf("failed to create goose provider: %w", err)
	}

	if _, err := provider.Up(ctx); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	return nil
}

// InitDatabase opens (creating if needed) the SQLite file at dsn and
// migrates it.
func InitDatabase(ctx context.Context, dsn string, log logging.Logger) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	// one writer; the metadata table is tiny
	db.SetMaxOpenConns(1)

	if err := RunMigrations(ctx, db, log); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate %s: %w", dsn, err)
	}

	return db, nil
}
