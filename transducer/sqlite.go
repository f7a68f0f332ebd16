package transducer

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// SQLiteTransducer persists every record emitted by a Trigger call into a
// SQLite database, one row per field (an entity-attribute-value layout,
// since the set of extra fields is only known at registration time and
// xDEVS lets callers add/drop fields at any point before the run starts).
//
// Grounded on xdevs/abc/transducer.py's Transducer plus the relational
// backends shipped alongside it; mattn/go-sqlite3 stands in for the
// Python original's sqlite3 module.
type SQLiteTransducer struct {
	*Base

	db        *sql.DB
	path      string
	tableName string
	insert    *sql.Stmt
}

// NewSQLiteTransducer opens (creating if absent) the SQLite database at
// path and prepares it to receive records under tableName.
func NewSQLiteTransducer(id, path, tableName string, exhaustive bool) (*SQLiteTransducer, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("transducer: opening sqlite database %q: %w", path, err)
	}

	t := &SQLiteTransducer{db: db, path: path, tableName: tableName}
	t.Base = NewBase(id, exhaustive, t.insertRecords)
	return t, nil
}

// Initialize creates the backing table and prepares the insert statement.
func (t *SQLiteTransducer) Initialize() error {
	schema := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
		sim_time REAL NOT NULL,
		model_name TEXT,
		port_name TEXT,
		field TEXT NOT NULL,
		value TEXT
	)`, t.tableName)
	if _, err := t.db.Exec(schema); err != nil {
		return fmt.Errorf("transducer: creating table %q: %w", t.tableName, err)
	}

	stmt, err := t.db.Prepare(fmt.Sprintf(
		`INSERT INTO %s (sim_time, model_name, port_name, field, value) VALUES (?, ?, ?, ?, ?)`,
		t.tableName))
	if err != nil {
		return fmt.Errorf("transducer: preparing insert statement: %w", err)
	}
	t.insert = stmt
	return nil
}

func (t *SQLiteTransducer) insertRecords(simTime float64, records []Record) error {
	if len(records) == 0 {
		return nil
	}

	tx, err := t.db.Begin()
	if err != nil {
		return fmt.Errorf("transducer: beginning transaction: %w", err)
	}

	stmt := tx.Stmt(t.insert)
	for _, rec := range records {
		modelName, _ := rec[t.ModelNameID].(string)
		portName, _ := rec[t.PortNameID].(string)
		for field, value := range rec {
			if field == t.SimTimeID || field == t.ModelNameID || field == t.PortNameID {
				continue
			}
			if _, err := stmt.Exec(simTime, modelName, portName, field, anyToString(value)); err != nil {
				_ = tx.Rollback()
				return fmt.Errorf("transducer: inserting field %q: %w", field, err)
			}
		}
	}
	return tx.Commit()
}

// Exit closes the prepared statement and the database handle.
func (t *SQLiteTransducer) Exit() error {
	if t.insert != nil {
		_ = t.insert.Close()
	}
	return t.db.Close()
}
