// Package datarecording stores generated products in SQLite databases.
package datarecording

import (
	"database/sql"
	"fmt"
	"os"
	"reflect"
	"slices"
	"strings"
	"sync"

	"github.com/cockroachdb/errors"

	// Need to use SQLite connections.
	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/xid"
	"github.com/tebeka/atexit"
)

// DefaultBatchSize is the number of entries buffered before a flush.
const DefaultBatchSize = 10000

// DataRecorder is a backend that can record and store data
type DataRecorder interface {
	// CreateTable creates a table whose columns are the exported fields of
	// sampleEntry.
	CreateTable(tableName string, sampleEntry any) error

	// InsertData buffers an entry for a table that already exists.
	InsertData(tableName string, entry any) error

	// ListTables returns the names of all tables in alphabetical order.
	ListTables() []string

	// Flush writes all the buffered entries into the database.
	Flush() error

	// Close flushes and closes the database.
	Close() error
}

// New creates a recorder that writes into path + ".sqlite3". An empty path
// generates a unique database name. The buffered entries are flushed when the
// program exits through atexit.
func New(path string) (DataRecorder, error) {
	if path == "" {
		path = "datagen_recording_" + xid.New().String()
	}

	filename := path + ".sqlite3"

	if _, err := os.Stat(filename); err == nil {
		return nil, errors.Newf("file %s already exists", filename)
	}

	db, err := sql.Open("sqlite3", filename)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", filename)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, errors.Wrapf(err, "create %s", filename)
	}

	fmt.Fprintf(os.Stderr, "Database created for recording: %s\n", filename)

	w := newWriter(db)

	atexit.Register(func() { _ = w.Flush() })

	return w, nil
}

// NewWithDB creates a recorder that writes into an open database.
func NewWithDB(db *sql.DB) DataRecorder {
	w := newWriter(db)

	atexit.Register(func() { _ = w.Flush() })

	return w
}

func newWriter(db *sql.DB) *sqliteWriter {
	return &sqliteWriter{
		DB:        db,
		batchSize: DefaultBatchSize,
		tables:    make(map[string]*table),
	}
}

type table struct {
	structType reflect.Type
	columns    []string
	entries    []any
}

// sqliteWriter is the writer that writes data into SQLite database
type sqliteWriter struct {
	*sql.DB

	lock       sync.Mutex
	tables     map[string]*table
	batchSize  int
	entryCount int
}

func isAllowedType(kind reflect.Kind) bool {
	switch kind {
	case
		reflect.Bool,
		reflect.Int,
		reflect.Int8,
		reflect.Int16,
		reflect.Int32,
		reflect.Int64,
		reflect.Uint,
		reflect.Uint8,
		reflect.Uint16,
		reflect.Uint32,
		reflect.Uint64,
		reflect.Float32,
		reflect.Float64,
		reflect.String:
		return true
	default:
		return false
	}
}

func columnsOf(entry any) ([]string, reflect.Type, error) {
	t := reflect.TypeOf(entry)
	if t == nil || t.Kind() != reflect.Struct {
		return nil, nil, errors.Newf("entry of type %v is not a struct", t)
	}

	var columns []string

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}

		if !isAllowedType(field.Type.Kind()) {
			return nil, nil, errors.Newf("field %s of type %v cannot be stored",
				field.Name, field.Type)
		}

		columns = append(columns, field.Name)
	}

	if len(columns) == 0 {
		return nil, nil, errors.Newf("entry of type %v has no exported fields", t)
	}

	return columns, t, nil
}

func (t *sqliteWriter) CreateTable(tableName string, sampleEntry any) error {
	columns, structType, err := columnsOf(sampleEntry)
	if err != nil {
		return errors.Wrapf(err, "create table %s", tableName)
	}

	t.lock.Lock()
	defer t.lock.Unlock()

	if _, exists := t.tables[tableName]; exists {
		return errors.Newf("table %s already exists", tableName)
	}

	createTableSQL := `CREATE TABLE ` + tableName +
		` (` + "\n\t" + strings.Join(columns, ", \n\t") + "\n" + `);`
	if _, err := t.Exec(createTableSQL); err != nil {
		return errors.Wrapf(err, "create table %s", tableName)
	}

	t.tables[tableName] = &table{
		structType: structType,
		columns:    columns,
	}

	return nil
}

func (t *sqliteWriter) InsertData(tableName string, entry any) error {
	t.lock.Lock()

	table, exists := t.tables[tableName]
	if !exists {
		t.lock.Unlock()
		return errors.Newf("table %s does not exist", tableName)
	}

	if reflect.TypeOf(entry) != table.structType {
		t.lock.Unlock()
		return errors.Newf("entry of type %T does not fit table %s",
			entry, tableName)
	}

	table.entries = append(table.entries, entry)
	t.entryCount++
	full := t.entryCount >= t.batchSize

	t.lock.Unlock()

	if full {
		return t.Flush()
	}

	return nil
}

func (t *sqliteWriter) ListTables() []string {
	t.lock.Lock()
	defer t.lock.Unlock()

	tables := make([]string, 0, len(t.tables))
	for table := range t.tables {
		tables = append(tables, table)
	}

	slices.Sort(tables)

	return tables
}

func (t *sqliteWriter) Flush() error {
	t.lock.Lock()
	defer t.lock.Unlock()

	if t.entryCount == 0 {
		return nil
	}

	tx, err := t.Begin()
	if err != nil {
		return errors.Wrap(err, "begin transaction")
	}

	for tableName, table := range t.tables {
		if err := insertEntries(tx, tableName, table); err != nil {
			_ = tx.Rollback()
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return errors.Wrap(err, "commit transaction")
	}

	for _, table := range t.tables {
		table.entries = nil
	}

	t.entryCount = 0

	return nil
}

func insertEntries(tx *sql.Tx, tableName string, table *table) error {
	if len(table.entries) == 0 {
		return nil
	}

	placeholders := make([]string, len(table.columns))
	for i := range placeholders {
		placeholders[i] = "?"
	}

	sqlStr := "INSERT INTO " + tableName +
		" (" + strings.Join(table.columns, ", ") + ")" +
		" VALUES (" + strings.Join(placeholders, ", ") + ")"

	stmt, err := tx.Prepare(sqlStr)
	if err != nil {
		return errors.Wrapf(err, "prepare insert into %s", tableName)
	}
	defer stmt.Close()

	for _, entry := range table.entries {
		v := reflect.ValueOf(entry)
		args := make([]any, len(table.columns))

		for i, column := range table.columns {
			args[i] = v.FieldByName(column).Interface()
		}

		if _, err := stmt.Exec(args...); err != nil {
			return errors.Wrapf(err, "insert into %s", tableName)
		}
	}

	return nil
}

func (t *sqliteWriter) Close() error {
	if err := t.Flush(); err != nil {
		return err
	}

	return t.DB.Close()
}
