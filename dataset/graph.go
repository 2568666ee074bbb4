package dataset

import "fmt"

// dependencies returns the names of tables this table references through
// foreign keys, excluding self-references.
func (t *Table) dependencies() []string {
	var deps []string
	for _, c := range t.Columns {
		if c.References != nil && c.References.Table != t.Name {
			deps = append(deps, c.References.Table)
		}
	}
	return deps
}

// InsertionOrder computes a foreign-key-safe table order: every table appears
// after the tables it references. Returns an error when the references form a
// cycle. Seeding itself always follows declaration order; this order is the
// suggestion offered alongside OrderWarnings.
func (d *Dataset) InsertionOrder() ([]string, error) {
	visited := make(map[string]bool)
	temp := make(map[string]bool)
	var order []string

	var visit func(string) error
	visit = func(name string) error {
		if temp[name] {
			return fmt.Errorf("circular dependency detected involving table: %s", name)
		}
		if visited[name] {
			return nil
		}

		temp[name] = true
		if t := d.Table(name); t != nil {
			for _, dep := range t.dependencies() {
				if err := visit(dep); err != nil {
					return err
				}
			}
		}
		temp[name] = false
		visited[name] = true
		order = append(order, name)
		return nil
	}

	for _, t := range d.Tables {
		if !visited[t.Name] {
			if err := visit(t.Name); err != nil {
				return nil, err
			}
		}
	}
	return order, nil
}

// OrderWarnings reports declaration-order hazards: tables declared before a
// parent they reference, and references to tables the dataset never declares.
// These are advisories. Seeding still runs in declaration order and lets the
// database enforce its constraints.
func (d *Dataset) OrderWarnings() []string {
	position := make(map[string]int, len(d.Tables))
	for i, t := range d.Tables {
		position[t.Name] = i
	}

	var warnings []string
	for i, t := range d.Tables {
		for _, dep := range t.dependencies() {
			refPos, declared := position[dep]
			switch {
			case !declared:
				warnings = append(warnings,
					fmt.Sprintf("table %s references %s, which the dataset does not declare", t.Name, dep))
			case refPos > i:
				warnings = append(warnings,
					fmt.Sprintf("table %s is declared before %s, which it references; inserts will run child-first", t.Name, dep))
			}
		}
	}
	return warnings
}
