package billformat

import (
	"encoding/json"
	"fmt"
	"os"
)

// Parse parses a bill summary from a byte slice
func Parse(data []byte) (*BillSummary, error) {
	var summary BillSummary
	if err := json.Unmarshal(data, &summary); err != nil {
		return nil, fmt.Errorf("failed to parse bill summary: %w", err)
	}

	if err := Validate(&summary); err != nil {
		return nil, err
	}

	return &summary, nil
}

// ParseFile parses a bill summary from disk
func ParseFile(path string) (*BillSummary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read bill file: %w", err)
	}

	return Parse(data)
}

// ToJSON converts a BillSummary to JSON bytes
func (s *BillSummary) ToJSON() ([]byte, error) {
	return json.MarshalIndent(s, "", "  ")
}
