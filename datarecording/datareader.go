package datarecording

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"sort"

	"github.com/cockroachdb/errors"
)

// ProductQuery selects recorded products. A zero query selects all products
// of all generators.
type ProductQuery struct {
	// Generator restricts the products to one generator.
	Generator string

	// Limit is the maximum number of products to return, 0 for no limit.
	Limit int

	// Offset is the number of products to skip.
	Offset int
}

// GeneratorSummary describes what one generator did during a recording.
type GeneratorSummary struct {
	Generator string `json:"generator" yaml:"generator"`
	Products  int64  `json:"products" yaml:"products"`
	Depleted  bool   `json:"depleted" yaml:"depleted"`
	Resets    int64  `json:"resets" yaml:"resets"`
}

func (s GeneratorSummary) String() string {
	state := "active"
	if s.Depleted {
		state = "depleted"
	}

	return fmt.Sprintf("%s: %d products, %s, %d resets",
		s.Generator, s.Products, state, s.Resets)
}

// Reader reads the products and lifecycle events written by a
// ProductRecordingHook back.
type Reader struct {
	db *sql.DB
}

// Open opens an existing recording database file.
func Open(filename string) (*Reader, error) {
	if _, err := os.Stat(filename); err != nil {
		return nil, errors.Wrapf(err, "open recording %s", filename)
	}

	db, err := sql.Open("sqlite3", filename)
	if err != nil {
		return nil, errors.Wrapf(err, "open recording %s", filename)
	}

	return NewReaderWithDB(db), nil
}

// NewReaderWithDB creates a reader over an open database.
func NewReaderWithDB(db *sql.DB) *Reader {
	return &Reader{db: db}
}

// Products returns the selected products in recording order, together with
// the number of products matching the query regardless of limit and offset.
func (r *Reader) Products(
	ctx context.Context,
	q ProductQuery,
) ([]ProductEntry, int, error) {
	where, args := "", []any{}
	if q.Generator != "" {
		where = " WHERE Generator = ?"
		args = append(args, q.Generator)
	}

	var total int

	err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM "+ProductTable+where, args...).Scan(&total)
	if err != nil {
		return nil, 0, errors.Wrap(err, "count products")
	}

	query := "SELECT Generator, Seq, Value, Last FROM " + ProductTable + where +
		" ORDER BY rowid LIMIT ? OFFSET ?"

	limit := q.Limit
	if limit <= 0 {
		limit = -1
	}

	rows, err := r.db.QueryContext(ctx, query, append(args, limit, q.Offset)...)
	if err != nil {
		return nil, 0, errors.Wrap(err, "query products")
	}
	defer rows.Close()

	var products []ProductEntry

	for rows.Next() {
		var p ProductEntry
		if err := rows.Scan(&p.Generator, &p.Seq, &p.Value, &p.Last); err != nil {
			return nil, 0, errors.Wrap(err, "scan products")
		}

		products = append(products, p)
	}

	return products, total, errors.Wrap(rows.Err(), "scan products")
}

// Lifecycle returns the lifecycle events of a generator in recording order.
func (r *Reader) Lifecycle(
	ctx context.Context,
	generator string,
) ([]LifecycleEntry, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT Generator, Event, Products FROM "+LifecycleTable+
			" WHERE Generator = ? ORDER BY rowid", generator)
	if err != nil {
		return nil, errors.Wrap(err, "query lifecycle")
	}
	defer rows.Close()

	var events []LifecycleEntry

	for rows.Next() {
		var e LifecycleEntry
		if err := rows.Scan(&e.Generator, &e.Event, &e.Products); err != nil {
			return nil, errors.Wrap(err, "scan lifecycle")
		}

		events = append(events, e)
	}

	return events, errors.Wrap(rows.Err(), "scan lifecycle")
}

// Summaries returns one summary per recorded generator, sorted by name.
func (r *Reader) Summaries(ctx context.Context) ([]GeneratorSummary, error) {
	byName := make(map[string]*GeneratorSummary)
	summary := func(name string) *GeneratorSummary {
		s, ok := byName[name]
		if !ok {
			s = &GeneratorSummary{Generator: name}
			byName[name] = s
		}

		return s
	}

	err := r.scanGroups(ctx,
		"SELECT Generator, COUNT(*) FROM "+ProductTable+" GROUP BY Generator",
		func(name string, n int64) { summary(name).Products = n })
	if err != nil {
		return nil, err
	}

	err = r.scanGroups(ctx,
		"SELECT Generator, SUM(Event = 'HookPosDeplete') FROM "+LifecycleTable+
			" GROUP BY Generator",
		func(name string, n int64) { summary(name).Depleted = n > 0 })
	if err != nil {
		return nil, err
	}

	err = r.scanGroups(ctx,
		"SELECT Generator, SUM(Event = 'HookPosReset') FROM "+LifecycleTable+
			" GROUP BY Generator",
		func(name string, n int64) { summary(name).Resets = n })
	if err != nil {
		return nil, err
	}

	summaries := make([]GeneratorSummary, 0, len(byName))
	for _, s := range byName {
		summaries = append(summaries, *s)
	}

	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].Generator < summaries[j].Generator
	})

	return summaries, nil
}

func (r *Reader) scanGroups(
	ctx context.Context,
	query string,
	fn func(name string, n int64),
) error {
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return errors.Wrap(err, "summarize recording")
	}
	defer rows.Close()

	for rows.Next() {
		var (
			name string
			n    int64
		)

		if err := rows.Scan(&name, &n); err != nil {
			return errors.Wrap(err, "summarize recording")
		}

		fn(name, n)
	}

	return errors.Wrap(rows.Err(), "summarize recording")
}

// Close closes the database.
func (r *Reader) Close() error {
	return r.db.Close()
}
