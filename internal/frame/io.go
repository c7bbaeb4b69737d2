package frame

import (
	"context"
	"database/sql"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// FromCSV reads a CSV stream with a header row. Cells that parse as numbers
// become float64, RFC 3339 or ISO dates become time.Time, anything else
// stays a string. Empty cells are nil.
func FromCSV(r io.Reader) (*Frame, error) {
	cr := csv.NewReader(r)
	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}
	cols := make([][]any, len(header))
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv line %d: %w", line, err)
		}
		for i := range header {
			cols[i] = append(cols[i], parseCell(rec[i]))
		}
	}
	f := &Frame{index: make(map[string]int)}
	for i, name := range header {
		if err := f.Add(name, cols[i]); err != nil {
			return nil, err
		}
	}
	return f, nil
}

func parseCell(s string) any {
	if s == "" {
		return nil
	}
	if v, err := strconv.ParseFloat(s, 64); err == nil && !math.IsNaN(v) && !math.IsInf(v, 0) {
		return v
	}
	for _, layout := range []string{time.RFC3339Nano, time.DateTime, time.DateOnly} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return s
}

// OpenSQLite opens a SQLite database file read-only.
func OpenSQLite(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", "file:"+path+"?mode=ro")
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	return db, nil
}

// FromSQL runs query and loads the result set into a frame, one column per
// result column. Byte slices are converted to strings.
func FromSQL(ctx context.Context, db *sql.DB, query string, args ...any) (*Frame, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	names, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("columns: %w", err)
	}
	cols := make([][]any, len(names))
	for rows.Next() {
		vals := make([]any, len(names))
		ptrs := make([]any, len(names))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		for i, v := range vals {
			if b, ok := v.([]byte); ok {
				v = string(b)
			}
			cols[i] = append(cols[i], v)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	f := &Frame{index: make(map[string]int)}
	for i, n := range names {
		if cols[i] == nil {
			cols[i] = []any{}
		}
		if err := f.Add(n, cols[i]); err != nil {
			return nil, err
		}
	}
	return f, nil
}
