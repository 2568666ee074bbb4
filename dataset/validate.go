package dataset

import (
	"fmt"
	"regexp"
)

// validIdentifier validates SQL identifiers (table/column names) to prevent SQL injection
var validIdentifier = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

func isValidIdentifier(name string) bool {
	return validIdentifier.MatchString(name)
}

// Validate checks the dataset for structural problems: missing or duplicate
// declarations, invalid identifiers, and rows that reference columns or
// tables the dataset never declares. It does not check foreign-key ordering;
// a mis-ordered dataset surfaces at the database during seeding.
func (d *Dataset) Validate() error {
	if len(d.Tables) == 0 {
		return fmt.Errorf("dataset declares no tables")
	}

	seen := make(map[string]*Table, len(d.Tables))
	for i := range d.Tables {
		t := &d.Tables[i]
		if !isValidIdentifier(t.Name) {
			return fmt.Errorf("invalid table name: %q", t.Name)
		}
		if seen[t.Name] != nil {
			return fmt.Errorf("duplicate table name: %s", t.Name)
		}
		seen[t.Name] = t

		if err := validateTable(t); err != nil {
			return err
		}
	}

	for name, rows := range d.Seeds {
		t := seen[name]
		if t == nil {
			return fmt.Errorf("seed rows reference undeclared table %q", name)
		}
		for i, row := range rows {
			if err := validateRow(t, row, i); err != nil {
				return err
			}
		}
	}

	return nil
}

func validateTable(t *Table) error {
	if len(t.Columns) == 0 {
		return fmt.Errorf("table %s declares no columns", t.Name)
	}

	cols := make(map[string]bool, len(t.Columns))
	for _, c := range t.Columns {
		if !isValidIdentifier(c.Name) {
			return fmt.Errorf("invalid column name in table %s: %q", t.Name, c.Name)
		}
		if cols[c.Name] {
			return fmt.Errorf("duplicate column %s in table %s", c.Name, t.Name)
		}
		cols[c.Name] = true

		if c.Type == "" {
			return fmt.Errorf("column %s in table %s has no type", c.Name, t.Name)
		}
		if ref := c.References; ref != nil {
			if !isValidIdentifier(ref.Table) || !isValidIdentifier(ref.Column) {
				return fmt.Errorf("column %s in table %s has an invalid reference", c.Name, t.Name)
			}
		}
	}

	for i, row := range t.Rows {
		if err := validateRow(t, row, i); err != nil {
			return err
		}
	}
	return nil
}

func validateRow(t *Table, row Row, idx int) error {
	for key := range row {
		if t.column(key) == nil {
			return fmt.Errorf("row %d in table %s references undeclared column %q", idx, t.Name, key)
		}
	}
	return nil
}

func (t *Table) column(name string) *Column {
	for i := range t.Columns {
		if t.Columns[i].Name == name {
			return &t.Columns[i]
		}
	}
	return nil
}
