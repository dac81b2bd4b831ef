package restcountries

import (
	"encoding/json"
	"fmt"
	"os"
)

// DefaultSnapshotPath is where a fetched country set is cached locally.
const DefaultSnapshotPath = "countries_raw.json"

// SaveSnapshot writes the merged country set to path as indented JSON. The
// snapshot lets later runs skip the API entirely.
func SaveSnapshot(path string, countries []Country) error {
	data, err := json.MarshalIndent(countries, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write snapshot %s: %w", path, err)
	}
	return nil
}

// LoadSnapshot reads a previously saved country set. A missing file is
// reported as-is via os.IsNotExist so callers can fall back to a live fetch.
func LoadSnapshot(path string) ([]Country, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var countries []Country
	if err := json.Unmarshal(data, &countries); err != nil {
		return nil, fmt.Errorf("decode snapshot %s: %w", path, err)
	}
	return countries, nil
}
