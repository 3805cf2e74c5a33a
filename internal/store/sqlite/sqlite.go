package sqlite

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/maloquacious/fineas/internal/store"
	_ "modernc.org/sqlite"
)

const driverName = "sqlite"

func init() {
	// sqlx only knows the cgo driver name; modernc registers "sqlite".
	sqlx.BindDriver(driverName, sqlx.QUESTION)
}

var _ store.Store = (*SQLiteStore)(nil)

// SQLiteStore implements the Store interface using modernc.org/sqlite.
// It holds a single long-lived connection between Open and Close.
type SQLiteStore struct {
	dbPath string
	db     *sqlx.DB
}

// New creates a new SQLiteStore.
func New(dbPath string) *SQLiteStore {
	return &SQLiteStore{
		dbPath: dbPath,
	}
}

// Path returns the database file the store operates on.
func (s *SQLiteStore) Path() string {
	return s.dbPath
}

// Open opens the SQLite database with safe defaults.
func (s *SQLiteStore) Open() error {
	db, err := connect(s.dbPath)
	if err != nil {
		return err
	}
	s.db = db
	return nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	if s.db != nil {
		err := s.db.Close()
		s.db = nil
		return err
	}
	return nil
}

// CreateTable creates the transactions table if it does not already exist.
func (s *SQLiteStore) CreateTable() error {
	if s.db == nil {
		return fmt.Errorf("database not opened")
	}
	return createTable(s.db)
}

// AddTransaction inserts one record. The assigned id is not returned.
func (s *SQLiteStore) AddTransaction(t store.Transaction) error {
	if s.db == nil {
		return fmt.Errorf("database not opened")
	}
	return addTransaction(s.db, t)
}

// CheckState returns the current state of the datastore.
func (s *SQLiteStore) CheckState() (store.StoreState, error) {
	if s.db == nil {
		return store.StateMissing, fmt.Errorf("database not opened")
	}
	return checkState(s.db)
}

// CreateTable opens dbPath, ensures the transactions table exists and
// closes the connection again.
func CreateTable(dbPath string) error {
	db, err := connect(dbPath)
	if err != nil {
		return err
	}
	defer db.Close()

	return createTable(db)
}

// AddTransaction opens dbPath, inserts t and closes the connection again.
func AddTransaction(dbPath string, t store.Transaction) error {
	db, err := connect(dbPath)
	if err != nil {
		return err
	}
	defer db.Close()

	return addTransaction(db, t)
}

// Inspect reports the state of the database at dbPath without creating it.
func Inspect(dbPath string) (store.StoreState, error) {
	exists, err := store.CheckFile(dbPath)
	if err != nil {
		return store.StateMissing, err
	} else if !exists {
		return store.StateMissing, nil
	}

	db, err := connect(dbPath)
	if err != nil {
		return store.StateMissing, err
	}
	defer db.Close()

	return checkState(db)
}

func connect(dbPath string) (*sqlx.DB, error) {
	db, err := sqlx.Open(driverName, dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// pragmas are per connection
	db.SetMaxOpenConns(1)

	// journal mode, sync level and lock waits are left at engine defaults;
	// foreign_keys is connection state and is not written to the file.
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set pragma %q: %w", "PRAGMA foreign_keys=ON", err)
	}

	return db, nil
}

func createTable(db *sqlx.DB) error {
	tx, err := db.Beginx()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(transactionsSchema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

func addTransaction(db *sqlx.DB, t store.Transaction) error {
	tx, err := db.Beginx()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.NamedExec(insertTransaction, t); err != nil {
		return fmt.Errorf("failed to insert transaction: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

func checkState(db *sqlx.DB) (store.StoreState, error) {
	var count int
	err := db.Get(&count, `SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='transactions'`)
	if err != nil {
		return store.StateUninitialized, fmt.Errorf("failed to check transactions table: %w", err)
	}

	if count == 0 {
		return store.StateUninitialized, nil
	}

	var cols []column
	if err := db.Select(&cols, `PRAGMA table_info(transactions)`); err != nil {
		return store.StateUninitialized, fmt.Errorf("failed to read table info: %w", err)
	}

	if !matchesSchema(cols) {
		return store.StateSchemaMismatch, nil
	}

	return store.StateReady, nil
}
