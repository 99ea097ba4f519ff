// Package record stores a machine description in a SQLite database so
// other tools can inspect the topology a run was planned against.
package record

import (
	"database/sql"
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/fatih/structs"

	// Need to use SQLite connections.
	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/xid"
	"github.com/tebeka/atexit"
)

// A Recorder writes rows of struct-shaped entries into tables of a SQLite
// database, buffering them in batches.
type Recorder struct {
	*sql.DB

	dbName     string
	tables     map[string]*table
	batchSize  int
	entryCount int
}

type table struct {
	structType reflect.Type
	entries    []any
}

// New creates a Recorder backed by a new SQLite database file. An empty
// path generates a unique name. Buffered rows are flushed at exit.
func New(path string) (*Recorder, error) {
	r := &Recorder{
		dbName:    path,
		batchSize: 100000,
		tables:    make(map[string]*table),
	}

	if err := r.init(); err != nil {
		return nil, err
	}

	atexit.Register(func() { r.Flush() })

	return r, nil
}

// NewWithDB creates a Recorder writing into an already-open database.
func NewWithDB(db *sql.DB) *Recorder {
	r := &Recorder{
		DB:        db,
		batchSize: 100000,
		tables:    make(map[string]*table),
	}

	atexit.Register(func() { r.Flush() })

	return r
}

func (r *Recorder) init() error {
	if r.dbName == "" {
		r.dbName = "machine_recording_" + xid.New().String()
	}

	filename := r.dbName + ".sqlite3"

	if _, err := os.Stat(filename); err == nil {
		return fmt.Errorf("file %s already exists", filename)
	}

	db, err := sql.Open("sqlite3", filename)
	if err != nil {
		return err
	}

	r.DB = db

	return nil
}

// CreateTable creates a table whose columns are the fields of the sample
// entry's struct type.
func (r *Recorder) CreateTable(tableName string, sampleEntry any) error {
	fields := strings.Join(structs.Names(sampleEntry), ", \n\t")

	createTableSQL := `CREATE TABLE ` + tableName +
		` (` + "\n\t" + fields + "\n" + `);`
	if _, err := r.Exec(createTableSQL); err != nil {
		return err
	}

	r.tables[tableName] = &table{
		structType: reflect.TypeOf(sampleEntry),
		entries:    []any{},
	}

	return nil
}

// Insert buffers one entry for a table that already exists.
func (r *Recorder) Insert(tableName string, entry any) error {
	table, exists := r.tables[tableName]
	if !exists {
		return fmt.Errorf("table %s does not exist", tableName)
	}

	table.entries = append(table.entries, entry)

	r.entryCount++
	if r.entryCount >= r.batchSize {
		return r.Flush()
	}

	return nil
}

// ListTables returns the names of all the tables created so far.
func (r *Recorder) ListTables() []string {
	tables := make([]string, 0, len(r.tables))
	for name := range r.tables {
		tables = append(tables, name)
	}

	return tables
}

// Flush writes all the buffered entries into the database.
func (r *Recorder) Flush() error {
	if r.entryCount == 0 {
		return nil
	}

	if _, err := r.Exec("BEGIN TRANSACTION"); err != nil {
		return err
	}

	for tableName, table := range r.tables {
		if len(table.entries) == 0 {
			continue
		}

		statement, err := r.prepareStatement(tableName, table.entries[0])
		if err != nil {
			r.Exec("ROLLBACK TRANSACTION")
			return err
		}

		for _, entry := range table.entries {
			v := []any{}

			values := reflect.ValueOf(entry)
			for i := 0; i < values.NumField(); i++ {
				v = append(v, values.Field(i).Interface())
			}

			if _, err := statement.Exec(v...); err != nil {
				statement.Close()
				r.Exec("ROLLBACK TRANSACTION")
				return err
			}
		}

		table.entries = nil
		statement.Close()
	}

	r.entryCount = 0

	_, err := r.Exec("COMMIT TRANSACTION")

	return err
}

func (r *Recorder) prepareStatement(
	tableName string, sampleEntry any,
) (*sql.Stmt, error) {
	n := structs.Names(sampleEntry)
	for i := range n {
		n[i] = "?"
	}

	sqlStr := "INSERT INTO " + tableName +
		" VALUES (" + strings.Join(n, ", ") + ")"

	return r.Prepare(sqlStr)
}
