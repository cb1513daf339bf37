package store

import (
	"context"
	"fmt"
	"sync"
)

// Memory is a thread-safe in-memory workbook.
type Memory struct {
	mu   sync.RWMutex
	tabs map[string][][]string
}

// NewMemory creates an empty workbook with no tabs.
func NewMemory() *Memory {
	return &Memory{tabs: make(map[string][][]string)}
}

// Seeded creates a workbook with the conventional tab layout and headers.
func Seeded() *Memory {
	m := NewMemory()
	m.Restore(map[string][][]string{
		TabSubmissions: {
			{"Phone No.", "Area", "City", "Alerts Type", "Description"},
		},
		TabAlerts: {
			{"Alert ID", "Pub Date", "Title", "Category", "Severity", "Status", "Source", "Notes"},
		},
		TabAIFeed: {
			{"PubDate", "RiskPercentage", "Title"},
		},
	})
	return m
}

// Rows returns a deep copy of a tab's rows.
func (m *Memory) Rows(_ context.Context, tab string) ([][]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rows, ok := m.tabs[tab]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrTabNotFound, tab)
	}
	return copyRows(rows), nil
}

// Append adds a row to the end of a tab.
func (m *Memory) Append(_ context.Context, tab string, row []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	rows, ok := m.tabs[tab]
	if !ok {
		return fmt.Errorf("%w: %q", ErrTabNotFound, tab)
	}
	m.tabs[tab] = append(rows, copyRow(row))
	return nil
}

// UpdateCell overwrites one cell in place, padding the row with empty cells
// when the column lies beyond its current width.
func (m *Memory) UpdateCell(_ context.Context, tab string, rowIndex, colIndex int, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	rows, ok := m.tabs[tab]
	if !ok {
		return fmt.Errorf("%w: %q", ErrTabNotFound, tab)
	}
	if rowIndex < 0 || rowIndex >= len(rows) {
		return fmt.Errorf("tab %q: row %d out of range", tab, rowIndex)
	}
	if colIndex < 0 {
		return fmt.Errorf("tab %q: column %d out of range", tab, colIndex)
	}

	row := rows[rowIndex]
	for len(row) <= colIndex {
		row = append(row, "")
	}
	row[colIndex] = value
	rows[rowIndex] = row
	return nil
}

// Snapshot returns a deep copy of every tab, for export.
func (m *Memory) Snapshot() map[string][][]string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make(map[string][][]string, len(m.tabs))
	for tab, rows := range m.tabs {
		out[tab] = copyRows(rows)
	}
	return out
}

// Restore replaces the workbook's contents with a deep copy of tabs.
func (m *Memory) Restore(tabs map[string][][]string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.tabs = make(map[string][][]string, len(tabs))
	for tab, rows := range tabs {
		m.tabs[tab] = copyRows(rows)
	}
}

func copyRows(rows [][]string) [][]string {
	out := make([][]string, len(rows))
	for i, row := range rows {
		out[i] = copyRow(row)
	}
	return out
}

func copyRow(row []string) []string {
	out := make([]string, len(row))
	copy(out, row)
	return out
}
