// Package dataset defines the declarative schema+seed-row bundle used to
// reset a database to a known state. A Dataset is read-only once defined:
// operations receive it by value semantics and never mutate it.
package dataset

import (
	"crypto/sha256"
	"encoding/hex"

	"gopkg.in/yaml.v3"
)

// Dataset is an ordered collection of table definitions and their seed rows.
// Declaration order matters: tables are created and seeded front to back, so
// parents must be declared before the children that reference them.
type Dataset struct {
	Name    string  `yaml:"name"`
	Version string  `yaml:"version,omitempty"`
	Tables  []Table `yaml:"tables"`

	// Seeds holds out-of-line rows keyed by table name, appended after the
	// table's inline rows. Every key must name a declared table.
	Seeds map[string][]Row `yaml:"seeds,omitempty"`
}

type Table struct {
	Name    string   `yaml:"name"`
	Columns []Column `yaml:"columns"`
	Rows    []Row    `yaml:"rows,omitempty"`
}

type Column struct {
	Name       string      `yaml:"name"`
	Type       string      `yaml:"type"`
	PrimaryKey bool        `yaml:"primary_key,omitempty"`
	Unique     bool        `yaml:"unique,omitempty"`
	NotNull    bool        `yaml:"not_null,omitempty"`
	Default    string      `yaml:"default,omitempty"`
	References *ForeignKey `yaml:"references,omitempty"`
}

type ForeignKey struct {
	Table    string `yaml:"table"`
	Column   string `yaml:"column"`
	OnDelete string `yaml:"on_delete,omitempty"`
}

// Row maps column names to values. Keys must name declared columns; omitted
// columns fall back to the database's NULL/default handling.
type Row map[string]any

// TableNames returns the table names in declaration order.
func (d *Dataset) TableNames() []string {
	names := make([]string, len(d.Tables))
	for i, t := range d.Tables {
		names[i] = t.Name
	}
	return names
}

// Table returns the declared table with the given name, or nil.
func (d *Dataset) Table(name string) *Table {
	for i := range d.Tables {
		if d.Tables[i].Name == name {
			return &d.Tables[i]
		}
	}
	return nil
}

// RowsFor returns the seed rows for a table in insertion order: inline rows
// first, then any out-of-line rows from Seeds.
func (d *Dataset) RowsFor(name string) []Row {
	t := d.Table(name)
	if t == nil {
		return nil
	}
	extra := d.Seeds[name]
	if len(extra) == 0 {
		return t.Rows
	}
	rows := make([]Row, 0, len(t.Rows)+len(extra))
	rows = append(rows, t.Rows...)
	rows = append(rows, extra...)
	return rows
}

// Fingerprint computes a sha256 checksum over the canonical serialized
// content, ignoring Version itself. Structurally equal datasets produce the
// same fingerprint regardless of how they were built or formatted on disk.
func (d *Dataset) Fingerprint() string {
	clone := *d
	clone.Version = ""
	data, _ := yaml.Marshal(&clone)
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
