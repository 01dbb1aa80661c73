package schema

import "fmt"

// valueColumn is the attribute name routed to the table's text value.
const valueColumn = "value"

// Column is one attribute-derived column of a table.
type Column struct {
	Name string
	Type DataType
}

// Table accumulates everything observed about one entity while the
// document is walked: attribute column types, the text value type, and
// the maximum per-instance occurrence count of each child tag. Foreign
// keys are filled in later by Database.Flush.
type Table struct {
	name string

	columns     map[string]DataType
	columnOrder []string

	value    DataType
	hasValue bool

	children   map[string]int
	childOrder []string

	keys   []string
	keySet map[string]bool
}

func newTable(name string) *Table {
	return &Table{
		name:     name,
		columns:  make(map[string]DataType),
		children: make(map[string]int),
		keySet:   make(map[string]bool),
	}
}

// Name returns the entity name, which is also the table name.
func (t *Table) Name() string {
	return t.name
}

// PrimaryKey returns the reserved name of the generated primary key.
func (t *Table) PrimaryKey() string {
	return "prk_" + t.name + "_id"
}

// ObserveAttribute merges one attribute observation into the column set.
// An attribute named "value" feeds the text value instead, and an
// attribute shadowing the generated primary key is a fatal collision.
func (t *Table) ObserveAttribute(name, literal string) error {
	if name == valueColumn {
		t.ObserveValue(literal)
		return nil
	}
	if name == t.PrimaryKey() {
		return fmt.Errorf("%w: attribute %q shadows the primary key of table %q", ErrNameCollision, name, t.name)
	}

	prev, seen := t.columns[name]
	if !seen {
		prev = Bit
		t.columnOrder = append(t.columnOrder, name)
	}
	t.columns[name] = Merge(prev, literal, false)
	return nil
}

// ObserveValue merges one text-content observation into the value type.
func (t *Table) ObserveValue(literal string) {
	prev := Bit
	if t.hasValue {
		prev = t.value
	}
	t.value = Merge(prev, literal, true)
	t.hasValue = true
}

// ObserveChildren records the child tag counts of one instance of this
// entity. Across instances only the maximum count per tag is retained.
func (t *Table) ObserveChildren(counts map[string]int) {
	for child, count := range counts {
		if prev, seen := t.children[child]; seen {
			if count > prev {
				t.children[child] = count
			}
		} else {
			t.children[child] = count
			t.childOrder = append(t.childOrder, child)
		}
	}
}

// Columns returns the attribute-derived columns in discovery order.
func (t *Table) Columns() []Column {
	cols := make([]Column, 0, len(t.columnOrder))
	for _, name := range t.columnOrder {
		cols = append(cols, Column{Name: name, Type: t.columns[name]})
	}
	return cols
}

// ColumnType returns the accumulated type of one column.
func (t *Table) ColumnType(name string) (DataType, bool) {
	typ, ok := t.columns[name]
	return typ, ok
}

// Value returns the accumulated text value type, if any text was seen.
func (t *Table) Value() (DataType, bool) {
	return t.value, t.hasValue
}

// ChildCount returns the maximum observed occurrence count of childTag
// among the direct children of one instance of this entity.
func (t *Table) ChildCount(childTag string) int {
	return t.children[childTag]
}

// ForeignKeys returns the generated foreign key column names in the
// order finalization created them. Empty before Flush.
func (t *Table) ForeignKeys() []string {
	return t.keys
}

// addKey appends the foreign key column <ref>_id, rejecting any name
// already taken by a column, another key, or the primary key.
func (t *Table) addKey(ref string) error {
	name := ref + "_id"
	if _, ok := t.columns[name]; ok {
		return fmt.Errorf("%w: foreign key %q collides with a column of table %q", ErrNameCollision, name, t.name)
	}
	if t.keySet[name] {
		return fmt.Errorf("%w: foreign key %q generated twice on table %q", ErrNameCollision, name, t.name)
	}
	if name == t.PrimaryKey() {
		return fmt.Errorf("%w: foreign key %q collides with the primary key of table %q", ErrNameCollision, name, t.name)
	}
	t.keys = append(t.keys, name)
	t.keySet[name] = true
	return nil
}
