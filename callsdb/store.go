package callsdb

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"
)

// ErrNotFound is returned by Lookup for unknown call signs.
var ErrNotFound = errors.New("call sign not found")

// DB is open call sign database. Table name comes from configuration and is
// validated there to be alphanumeric.
type DB struct {
	conn  *sqlite.Conn
	table string
}

// Open opens (creating when necessary) database file.
func Open(path, table string) (*DB, error) {
	conn, err := sqlite.OpenConn(path, sqlite.OpenReadWrite, sqlite.OpenCreate, sqlite.OpenWAL)
	if err != nil {
		return nil, fmt.Errorf("open database %s: %w", path, err)
	}
	return &DB{conn: conn, table: table}, nil
}

// OpenReadOnly opens existing database file for lookups.
func OpenReadOnly(path, table string) (*DB, error) {
	conn, err := sqlite.OpenConn(path, sqlite.OpenReadOnly)
	if err != nil {
		return nil, fmt.Errorf("open database %s: %w", path, err)
	}
	return &DB{conn: conn, table: table}, nil
}

// Close releases database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

// Replace drops table and fills it again with entries produced by fill. All
// of it happens in a single transaction, previous content survives any
// failure. Returns number of rows stored.
func (db *DB) Replace(ctx context.Context, fill func(add func(Entry) error) error) (n int, err error) {
	db.conn.SetInterrupt(ctx.Done())
	defer db.conn.SetInterrupt(nil)

	defer sqlitex.Save(db.conn)(&err)

	if err = sqlitex.ExecuteTransient(db.conn, fmt.Sprintf(`DROP TABLE IF EXISTS "%s"`, db.table), nil); err != nil {
		return 0, fmt.Errorf("drop table: %w", err)
	}
	if err = sqlitex.ExecuteTransient(db.conn, fmt.Sprintf(`CREATE TABLE "%s" (call TEXT, state TEXT)`, db.table), nil); err != nil {
		return 0, fmt.Errorf("create table: %w", err)
	}

	stmt, err := db.conn.Prepare(fmt.Sprintf(`INSERT INTO "%s" (call, state) VALUES ($call, $state)`, db.table))
	if err != nil {
		return 0, fmt.Errorf("prepare insert: %w", err)
	}

	err = fill(func(e Entry) error {
		if err := stmt.Reset(); err != nil {
			return err
		}
		stmt.SetText("$call", e.Call)
		stmt.SetText("$state", e.State)
		if _, err := stmt.Step(); err != nil {
			return fmt.Errorf("insert %s: %w", e.Call, err)
		}
		n++
		return nil
	})
	if err != nil {
		return 0, err
	}

	if err = sqlitex.ExecuteTransient(db.conn, fmt.Sprintf(`CREATE INDEX "%s_call" ON "%s" (call)`, db.table, db.table), nil); err != nil {
		return 0, fmt.Errorf("create index: %w", err)
	}
	return n, nil
}

// Lookup returns state for the call sign. When license database has several
// records for the call, first non empty state wins.
func (db *DB) Lookup(call string) (string, error) {
	var (
		state string
		found bool
	)
	err := sqlitex.Execute(db.conn,
		fmt.Sprintf(`SELECT state FROM "%s" WHERE call = ? ORDER BY state = '' LIMIT 1`, db.table),
		&sqlitex.ExecOptions{
			Args: []any{strings.ToUpper(strings.TrimSpace(call))},
			ResultFunc: func(stmt *sqlite.Stmt) error {
				state, found = stmt.ColumnText(0), true
				return nil
			},
		})
	if err != nil {
		return "", fmt.Errorf("lookup %s: %w", call, err)
	}
	if !found {
		return "", fmt.Errorf("%w: %s", ErrNotFound, call)
	}
	return state, nil
}

// Count returns number of rows in the table.
func (db *DB) Count() (n int, err error) {
	err = sqlitex.Execute(db.conn, fmt.Sprintf(`SELECT count(*) FROM "%s"`, db.table),
		&sqlitex.ExecOptions{ResultFunc: func(stmt *sqlite.Stmt) error {
			n = stmt.ColumnInt(0)
			return nil
		}})
	return n, err
}
