package metadata

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/dmitrijs2005/timemachine/internal/dbx"
)

// SQLiteRepository keeps pairs in the metadata table. It runs on a *sql.DB
// or inside a *sql.Tx.
type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// placeholders returns "(?, ?), (?, ?)" style groups.
func placeholders(n int, group string) string {
	parts := make([]string, n)
	for i := range parts {
		parts[i] = group
	}
	return strings.Join(parts, ", ")
}

func (r *SQLiteRepository) Lookup(ctx context.Context, keys ...string) (map[string][]byte, error) {
	found := make(map[string][]byte, len(keys))
	if len(keys) == 0 {
		return found, nil
	}

	args := make([]any, len(keys))
	for i, k := range keys {
		args[i] = k
	}

	query := `SELECT key, value FROM metadata WHERE key IN (` + placeholders(len(keys), "?") + `)`
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("lookup metadata %v: %w", keys, err)
	}
	defer rows.Close()

	for rows.Next() {
		var k string
		var v []byte
		if err := rows.Scan(&k, &v); err != nil {
			return nil, fmt.Errorf("scan metadata: %w", err)
		}
		found[k] = v
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("lookup metadata %v: %w", keys, err)
	}
	return found, nil
}

// Put upserts all pairs in one statement. Keys are written in sorted order.
func (r *SQLiteRepository) Put(ctx context.Context, pairs map[string][]byte) error {
	if len(pairs) == 0 {
		return nil
	}

	keys := make([]string, 0, len(pairs))
	for k := range pairs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	args := make([]any, 0, 2*len(keys))
	for _, k := range keys {
		args = append(args, k, pairs[k])
	}

	query := `INSERT INTO metadata (key, value) VALUES ` + placeholders(len(keys), "(?, ?)") +
		` ON CONFLICT(key) DO UPDATE SET value = excluded.value`
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("put metadata %v: %w", keys, err)
	}
	return nil
}

func (r *SQLiteRepository) Clear(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM metadata`); err != nil {
		return fmt.Errorf("clear metadata: %w", err)
	}
	return nil
}
