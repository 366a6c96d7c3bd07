package peers

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/goliatone/go-sluggable/pkg/interfaces"
)

// Querier is satisfied by *pgxpool.Pool, *pgx.Conn and pgx.Tx.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// PgxFinder looks up similar slugs on Postgres through pgx. Every record
// type must be registered.
type PgxFinder struct {
	db     Querier
	tables registry
}

var _ interfaces.PeerFinder = (*PgxFinder)(nil)

// NewPgxFinder constructs a finder over db.
func NewPgxFinder(db Querier) *PgxFinder {
	if db == nil {
		panic("peers: pgx finder requires a querier")
	}
	return &PgxFinder{db: db}
}

// Register maps typeName onto table.
func (f *PgxFinder) Register(typeName string, table Table) *PgxFinder {
	f.tables.register(typeName, table)
	return f
}

func (f *PgxFinder) FindSimilarSlugs(ctx context.Context, query interfaces.SimilarSlugsQuery) ([]interfaces.SlugPeer, error) {
	table, ok := f.tables.lookup(query.TypeName)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrTableUnknown, query.TypeName)
	}
	sql, args, err := buildPgxQuery(table, query)
	if err != nil {
		return nil, err
	}

	rows, err := f.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (interfaces.SlugPeer, error) {
		var peer interfaces.SlugPeer
		err := row.Scan(&peer.Key, &peer.Slug)
		return peer, err
	})
}

// buildPgxQuery renders the peer lookup with positional parameters. The key
// is cast to text so uuid and integer keys scan into strings.
func buildPgxQuery(table Table, query interfaces.SimilarSlugsQuery) (string, []any, error) {
	if err := table.validate(query.Attribute, query.Constraints); err != nil {
		return "", nil, err
	}

	ident := func(name string) string { return pgx.Identifier{name}.Sanitize() }
	key := ident(table.keyColumn())
	column := ident(table.column(query.Attribute))

	args := []any{query.Slug, escapeLike(query.Slug+query.Separator) + "%"}
	var b strings.Builder
	fmt.Fprintf(&b, "SELECT %s::text, %s FROM %s WHERE (%s = $1 OR %s LIKE $2 ESCAPE '\\')",
		key, column, ident(table.Name), column, column)

	for _, col := range sortedColumns(query.Constraints) {
		args = append(args, query.Constraints[col])
		b.WriteString(" AND " + ident(col) + " = $" + strconv.Itoa(len(args)))
	}
	if table.SoftDelete != "" && !query.IncludeTrashed {
		b.WriteString(" AND " + ident(table.SoftDelete) + " IS NULL")
	}
	b.WriteString(" ORDER BY " + key)
	return b.String(), args, nil
}
