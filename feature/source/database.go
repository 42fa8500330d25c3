package source

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"netviz/core/database"
	"netviz/core/graph"
	"netviz/core/transform"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Database turns query results into snapshots.
type Database struct {
	db      *gorm.DB
	queries map[string]string
	logger  *zap.Logger
}

// NewDatabase creates a database source with named queries.
func NewDatabase(db *gorm.DB, queries map[string]string, logger *zap.Logger) *Database {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Database{db: db, queries: queries, logger: logger}
}

// Queries returns the configured query names, sorted.
func (d *Database) Queries() []string {
	names := make([]string, 0, len(d.queries))
	for name := range d.queries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Load runs the named query.
func (d *Database) Load(ctx context.Context, name string) (graph.Snapshot, error) {
	query, ok := d.queries[name]
	if !ok {
		return graph.Snapshot{}, fmt.Errorf("%w: %s", ErrUnknownQuery, name)
	}
	snap, err := d.run(ctx, query)
	if err != nil {
		return graph.Snapshot{}, fmt.Errorf("query %s: %w", name, err)
	}
	d.logger.Info("Loaded snapshot from query",
		zap.String("query", name),
		zap.Int("nodes", snap.Nodes.Len()),
		zap.Int("edges", snap.Edges.Len()))
	return snap, nil
}

// LoadTable reads every row of table. The first column is the subject.
func (d *Database) LoadTable(ctx context.Context, table string) (graph.Snapshot, error) {
	cols, err := database.TableColumns(d.db.WithContext(ctx), table)
	if err != nil {
		return graph.Snapshot{}, err
	}
	quoted := make([]string, len(cols))
	for i, c := range cols {
		quoted[i] = quoteIdent(c)
	}
	return d.run(ctx, fmt.Sprintf("SELECT %s FROM %s", strings.Join(quoted, ", "), quoteIdent(table)))
}

func (d *Database) run(ctx context.Context, query string) (graph.Snapshot, error) {
	rows, err := d.db.WithContext(ctx).Raw(query).Rows()
	if err != nil {
		return graph.Snapshot{}, err
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return graph.Snapshot{}, err
	}
	var records []map[string]any
	for rows.Next() {
		values := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return graph.Snapshot{}, err
		}
		record := make(map[string]any, len(cols))
		for i, c := range cols {
			record[c] = values[i]
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return graph.Snapshot{}, err
	}
	return transform.FromRows(cols, records)
}

func quoteIdent(name string) string {
	return "`" + strings.ReplaceAll(name, "`", "``") + "`"
}
