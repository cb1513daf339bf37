// Package store abstracts the workbook-shaped tabular backing store.
//
// The store deliberately preserves spreadsheet semantics: tabs hold ordered
// positional rows, rows may be ragged, row 0 is a header, and nothing enforces
// key uniqueness. Reconciliation policy (scan all rows, update all matches)
// lives in the callers, keeping the store a dumb cell grid.
package store

import (
	"context"
	"errors"
)

// Conventional tab names, mirroring the original workbook layout.
const (
	TabSubmissions = "Users Info"
	TabAlerts      = "Sheet1"
	TabAIFeed      = "Alerts"
)

// ErrTabNotFound is returned when an operation names an unknown tab.
var ErrTabNotFound = errors.New("tab not found")

// Tabular is a minimal workbook interface: whole-tab reads, row appends, and
// single-cell updates. There is no transactional grouping; a sequence of
// UpdateCell calls can partially apply if one fails.
type Tabular interface {
	// Rows returns every row of a tab, header included, in order.
	Rows(ctx context.Context, tab string) ([][]string, error)

	// Append adds a row after the last existing row of a tab.
	Append(ctx context.Context, tab string, row []string) error

	// UpdateCell overwrites one cell, growing the row with empty cells if the
	// column does not exist yet. rowIndex is 0-based and includes the header.
	UpdateCell(ctx context.Context, tab string, rowIndex, colIndex int, value string) error
}
