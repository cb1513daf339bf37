package store

import (
	"encoding/json"
	"fmt"
	"os"
)

// LoadFile reads a workbook JSON file (tab name -> rows) into a Memory store.
func LoadFile(path string) (*Memory, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read workbook: %w", err)
	}

	var tabs map[string][][]string
	if err := json.Unmarshal(data, &tabs); err != nil {
		return nil, fmt.Errorf("parse workbook: %w", err)
	}

	m := NewMemory()
	m.Restore(tabs)
	return m, nil
}

// SaveFile writes a Memory store's snapshot as indented workbook JSON.
func SaveFile(path string, m *Memory) error {
	data, err := json.MarshalIndent(m.Snapshot(), "", "  ")
	if err != nil {
		return fmt.Errorf("serialize workbook: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}
