package dataset

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Load parses a YAML dataset document, validates it, and fills Version from
// the content fingerprint when the document does not pin one.
func Load(data []byte) (*Dataset, error) {
	var ds Dataset
	if err := yaml.Unmarshal(data, &ds); err != nil {
		return nil, fmt.Errorf("failed to parse dataset: %w", err)
	}

	if err := ds.Validate(); err != nil {
		return nil, err
	}

	if ds.Version == "" {
		ds.Version = ds.Fingerprint()
	}
	return &ds, nil
}

// LoadFile reads and parses a dataset file.
func LoadFile(path string) (*Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset file: %w", err)
	}

	ds, err := Load(data)
	if err != nil {
		return nil, fmt.Errorf("dataset %s: %w", path, err)
	}
	return ds, nil
}
