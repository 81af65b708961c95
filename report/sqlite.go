package report

import (
	"database/sql"
	"fmt"
	"os"
	"strings"

	// Need to use SQLite connections.
	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/xid"

	"github.com/sarchlab/bpsim/sweep"
)

// SQLiteRecorder stores sweep tables in a SQLite database, one database
// table per sweep table name with an extra trace column.
type SQLiteRecorder struct {
	*sql.DB

	dbName  string
	created map[string]bool
}

// NewSQLiteRecorder creates a new database at path + ".sqlite3". An empty
// path picks a unique name. Existing files are never overwritten.
func NewSQLiteRecorder(path string) (*SQLiteRecorder, error) {
	if path == "" {
		path = "bpsim_" + xid.New().String()
	}

	filename := path + ".sqlite3"
	if _, err := os.Stat(filename); err == nil {
		return nil, fmt.Errorf("file %s already exists", filename)
	}

	db, err := sql.Open("sqlite3", filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open result database: %w", err)
	}

	return &SQLiteRecorder{
		DB:      db,
		dbName:  filename,
		created: make(map[string]bool),
	}, nil
}

// Filename returns the database file name.
func (r *SQLiteRecorder) Filename() string {
	return r.dbName
}

func quote(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

func (r *SQLiteRecorder) createTable(table sweep.Table) error {
	if r.created[table.Name] {
		return nil
	}

	columns := []string{quote("trace") + " TEXT"}
	for _, c := range table.KeyColumns {
		columns = append(columns, quote(c)+" INTEGER")
	}
	for _, c := range table.Columns {
		columns = append(columns, quote(c)+" REAL")
	}

	query := "CREATE TABLE IF NOT EXISTS " + quote(table.Name) +
		" (\n\t" + strings.Join(columns, ",\n\t") + "\n);"
	if _, err := r.Exec(query); err != nil {
		return fmt.Errorf("failed to create table %s: %w", table.Name, err)
	}

	r.created[table.Name] = true
	return nil
}

// Record inserts every row of table, labeled with the trace name, in one
// transaction.
func (r *SQLiteRecorder) Record(label string, table sweep.Table) error {
	if err := r.createTable(table); err != nil {
		return err
	}

	n := 1 + len(table.KeyColumns) + len(table.Columns)
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
	query := "INSERT INTO " + quote(table.Name) + " VALUES (" + placeholders + ")"

	tx, err := r.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	stmt, err := tx.Prepare(query)
	if err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, row := range table.Rows {
		args := make([]any, 0, n)
		args = append(args, label)
		for _, k := range row.Key {
			args = append(args, k)
		}
		for _, v := range row.Values {
			args = append(args, v)
		}

		if _, err := stmt.Exec(args...); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to insert row %v: %w", row.Key, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit %s: %w", table.Name, err)
	}

	return nil
}
