package peers

import (
	"context"
	"fmt"
	"reflect"
	"unicode/utf8"

	"github.com/uptrace/bun"

	"github.com/goliatone/go-sluggable/pkg/interfaces"
)

// BunFinder looks up similar slugs with bun. Record types are mapped to
// tables explicitly with Register or derived from the bun model of the record.
type BunFinder struct {
	db     bun.IDB
	tables registry
}

var _ interfaces.PeerFinder = (*BunFinder)(nil)

// NewBunFinder constructs a finder over db.
func NewBunFinder(db bun.IDB) *BunFinder {
	if db == nil {
		panic("peers: bun finder requires a database")
	}
	return &BunFinder{db: db}
}

// Register maps typeName onto table.
func (f *BunFinder) Register(typeName string, table Table) *BunFinder {
	f.tables.register(typeName, table)
	return f
}

// RegisterModel maps typeName onto the table of a bun model, using its
// first primary key and a deleted_at column when present.
func (f *BunFinder) RegisterModel(typeName string, model any) *BunFinder {
	f.tables.register(typeName, f.tableFor(reflect.TypeOf(model)))
	return f
}

func (f *BunFinder) tableFor(typ reflect.Type) Table {
	for typ.Kind() == reflect.Pointer {
		typ = typ.Elem()
	}
	schemaTable := f.db.Dialect().Tables().Get(typ)
	table := Table{Name: schemaTable.Name}
	if len(schemaTable.PKs) > 0 {
		table.Key = schemaTable.PKs[0].Name
	}
	if _, ok := schemaTable.FieldMap["deleted_at"]; ok {
		table.SoftDelete = "deleted_at"
	}
	return table
}

type peerRow struct {
	Key  string `bun:"peer_key"`
	Slug string `bun:"peer_slug"`
}

// FindSimilarSlugs returns rows whose slug equals the candidate or extends
// it with the separator, ordered by key. The substr comparison keeps the
// prefix match case-sensitive where LIKE folds ASCII case.
func (f *BunFinder) FindSimilarSlugs(ctx context.Context, query interfaces.SimilarSlugsQuery) ([]interfaces.SlugPeer, error) {
	table, ok := f.tables.lookup(query.TypeName)
	if !ok {
		if query.Record == nil {
			return nil, fmt.Errorf("%w: %s", ErrTableUnknown, query.TypeName)
		}
		table = f.tableFor(reflect.TypeOf(query.Record))
		f.tables.register(query.TypeName, table)
	}
	if err := table.validate(query.Attribute, query.Constraints); err != nil {
		return nil, err
	}

	column := table.column(query.Attribute)
	prefix := query.Slug + query.Separator
	q := f.db.NewSelect().
		TableExpr("? AS t", bun.Ident(table.Name)).
		ColumnExpr("t.? AS peer_key", bun.Ident(table.keyColumn())).
		ColumnExpr("t.? AS peer_slug", bun.Ident(column)).
		WhereGroup(" AND ", func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.
				Where("t.? = ?", bun.Ident(column), query.Slug).
				WhereOr(`(t.? LIKE ? ESCAPE '\' AND substr(t.?, 1, ?) = ?)`,
					bun.Ident(column), escapeLike(prefix)+"%",
					bun.Ident(column), utf8.RuneCountInString(prefix), prefix)
		})

	for _, col := range sortedColumns(query.Constraints) {
		q = q.Where("t.? = ?", bun.Ident(col), query.Constraints[col])
	}
	if table.SoftDelete != "" && !query.IncludeTrashed {
		q = q.Where("t.? IS NULL", bun.Ident(table.SoftDelete))
	}
	q = q.OrderExpr("t.? ASC", bun.Ident(table.keyColumn()))

	var rows []peerRow
	if err := q.Scan(ctx, &rows); err != nil {
		return nil, err
	}
	out := make([]interfaces.SlugPeer, len(rows))
	for i, row := range rows {
		out[i] = interfaces.SlugPeer{Key: row.Key, Slug: row.Slug}
	}
	return out, nil
}
