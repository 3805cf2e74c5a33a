package store

// StoreState represents the initialization state of the datastore.
type StoreState int

const (
	StateMissing        StoreState = iota // File doesn't exist
	StateUninitialized                    // File exists but no transactions table
	StateSchemaMismatch                   // Table exists with unexpected columns
	StateReady                            // Table exists with the expected columns
)

func (s StoreState) String() string {
	switch s {
	case StateMissing:
		return "missing"
	case StateUninitialized:
		return "uninitialized"
	case StateSchemaMismatch:
		return "schema-mismatch"
	case StateReady:
		return "ready"
	}
	return "unknown"
}

// Transaction is one row of the transactions table.
// Nullable columns are pointers; a nil Type or Amount is sent to the engine
// as NULL.
type Transaction struct {
	ID          int64    `db:"id" json:"id"`
	Type        *string  `db:"type" json:"type"`
	Amount      *float64 `db:"amount" json:"amount"`
	Description *string  `db:"description" json:"description,omitempty"`
	Date        *string  `db:"date" json:"date,omitempty"`
}

// Float returns a pointer to v.
func Float(v float64) *float64 { return &v }

// String returns a pointer to v.
func String(v string) *string { return &v }

// Store defines the fineas datastore contract.
type Store interface {
	// Open opens the datastore connection
	Open() error

	// Close closes the datastore connection
	Close() error

	// CreateTable creates the transactions table if it does not exist
	CreateTable() error

	// AddTransaction appends one record; the id is assigned by the engine
	AddTransaction(t Transaction) error

	// CheckState returns the current state of the datastore
	CheckState() (StoreState, error)
}
