package ingest

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/ppiankov/paperverify/internal/model"
)

// SQLiteAdapter loads numeric column values from SQLite result databases.
// Every user table is scanned; a table that cannot be read is skipped
// without failing the rest of the database.
type SQLiteAdapter struct{}

// NewSQLiteAdapter creates a new SQLite adapter
func NewSQLiteAdapter() *SQLiteAdapter {
	return &SQLiteAdapter{}
}

func (a *SQLiteAdapter) Name() string { return "sqlite" }

func (a *SQLiteAdapter) Extensions() []string { return []string{".sqlite", ".db"} }

func (a *SQLiteAdapter) Load(path string) ([]model.Observation, error) {
	db, err := sql.Open("sqlite3", path+"?mode=ro")
	if err != nil {
		return nil, err
	}
	defer func() { _ = db.Close() }()

	tables, err := listTables(db)
	if err != nil {
		return nil, fmt.Errorf("list tables: %w", err)
	}

	modelName, dataset := parseFilename(path)

	var observations []model.Observation
	for _, table := range tables {
		obs, err := a.loadTable(db, path, table, modelName, dataset)
		if err != nil {
			continue
		}
		observations = append(observations, obs...)
	}

	return observations, nil
}

func (a *SQLiteAdapter) loadTable(db *sql.DB, path, table, modelName, dataset string) ([]model.Observation, error) {
	rows, err := db.Query(fmt.Sprintf("SELECT * FROM %q", table))
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	var observations []model.Observation
	rowNum := 0
	for rows.Next() {
		values := make([]any, len(columns))
		ptrs := make([]any, len(columns))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}

		for i, col := range columns {
			value, ok := sqlNumericValue(values[i])
			if !ok {
				continue
			}
			observations = append(observations, model.Observation{
				Value:      value,
				SourceFile: path,
				Locator:    fmt.Sprintf("%s.%s.row%d", table, col, rowNum),
				Model:      modelName,
				Dataset:    dataset,
				Metric:     guessMetric(col),
			})
		}
		rowNum++
	}

	return observations, rows.Err()
}

// listTables returns the user table names in the database
func listTables(db *sql.DB) ([]string, error) {
	rows, err := db.Query("SELECT name FROM sqlite_master WHERE type='table'")
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var tables []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		tables = append(tables, name)
	}
	return tables, rows.Err()
}

// sqlNumericValue converts the numeric types the sqlite3 driver produces
func sqlNumericValue(v any) (float64, bool) {
	switch n := v.(type) {
	case int64:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}
