package sqlite

// transactionsSchema creates the single transactions table.
// An existing table is left untouched.
const transactionsSchema = `
CREATE TABLE IF NOT EXISTS transactions (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    type TEXT NOT NULL,
    amount REAL NOT NULL,
    description TEXT,
    date TEXT
);
`

const insertTransaction = `
INSERT INTO transactions (type, amount, description, date)
VALUES (:type, :amount, :description, :date)
`

// column mirrors one row of PRAGMA table_info.
type column struct {
	CID     int     `db:"cid"`
	Name    string  `db:"name"`
	Type    string  `db:"type"`
	NotNull bool    `db:"notnull"`
	Default *string `db:"dflt_value"`
	PK      int     `db:"pk"`
}

// expectedColumns is the shape CheckState compares against.
var expectedColumns = []column{
	{CID: 0, Name: "id", Type: "INTEGER", PK: 1},
	{CID: 1, Name: "type", Type: "TEXT", NotNull: true},
	{CID: 2, Name: "amount", Type: "REAL", NotNull: true},
	{CID: 3, Name: "description", Type: "TEXT"},
	{CID: 4, Name: "date", Type: "TEXT"},
}

func matchesSchema(cols []column) bool {
	if len(cols) != len(expectedColumns) {
		return false
	}
	for i, want := range expectedColumns {
		got := cols[i]
		if got.CID != want.CID || got.Name != want.Name || got.Type != want.Type || got.NotNull != want.NotNull || got.PK != want.PK {
			return false
		}
	}
	return true
}
