package schema

import (
	"fmt"
	"strconv"
)

// Database indexes every table discovered in a document. Tables are
// created lazily on first reference and keep their discovery order, which
// is also the rendering order.
//
// The lifecycle has three strict phases: observation (the tree walk feeds
// Observe* calls), finalization (Flush, exactly once), and read-only
// consumption by the renderers and the classifier.
type Database struct {
	cfg Config

	tables map[string]*Table
	order  []string

	// relations maps each table to the set of tables it holds a foreign
	// key to. Built by Flush, consumed only by the classifier.
	relations map[string]map[string]bool
}

// NewDatabase creates an empty database with a validated configuration.
func NewDatabase(cfg Config) (*Database, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Database{
		cfg:    cfg,
		tables: make(map[string]*Table),
	}, nil
}

// table returns the named table, creating it on first reference.
func (d *Database) table(name string) *Table {
	t, ok := d.tables[name]
	if !ok {
		t = newTable(name)
		d.tables[name] = t
		d.order = append(d.order, name)
	}
	return t
}

// Table returns the named table if the document mentioned it.
func (d *Database) Table(name string) (*Table, bool) {
	t, ok := d.tables[name]
	return t, ok
}

// Tables returns all tables in discovery order.
func (d *Database) Tables() []*Table {
	tables := make([]*Table, 0, len(d.order))
	for _, name := range d.order {
		tables = append(tables, d.tables[name])
	}
	return tables
}

// ObserveAttribute merges one attribute observation into the named table.
// With SkipColumns set, attributes are discarded entirely.
func (d *Database) ObserveAttribute(table, column, literal string) error {
	if d.cfg.SkipColumns {
		return nil
	}
	return d.table(table).ObserveAttribute(column, literal)
}

// ObserveValue merges one text-content observation into the named table.
func (d *Database) ObserveValue(table, literal string) {
	d.table(table).ObserveValue(literal)
}

// ObserveChildren records the child tag counts of one instance of the
// named table. The table is created even when counts is empty, so leaf
// entities without attributes still become tables.
func (d *Database) ObserveChildren(table string, counts map[string]int) {
	d.table(table).ObserveChildren(counts)
}

// Flush turns the accumulated child occurrence counts into concrete
// foreign key columns and the relation graph, applying the configured
// policy to every (parent, child) pair. It must run exactly once, after
// the whole document has been observed.
func (d *Database) Flush() error {
	d.relations = make(map[string]map[string]bool, len(d.tables))
	for _, name := range d.order {
		d.relations[name] = make(map[string]bool)
	}

	// Snapshot the order: inverted relations may create a referenced
	// table that the walk never materialized.
	names := make([]string, len(d.order))
	copy(names, d.order)

	for _, name := range names {
		parent := d.tables[name]
		for _, childTag := range parent.childOrder {
			count := parent.children[childTag]
			switch {
			case d.cfg.DuplicateKeys:
				// Child belongs to parent: one <parent>_id on the child,
				// no matter how often the child repeats.
				if err := d.link(d.table(childTag), parent.name, parent.name); err != nil {
					return err
				}
			case d.cfg.MaxColumns >= 0 && count > d.cfg.MaxColumns:
				// Threshold exceeded: invert instead of flattening the
				// parent into an unbounded column list.
				if err := d.link(d.table(childTag), parent.name, parent.name); err != nil {
					return err
				}
			case count == 1:
				if err := d.link(parent, childTag, childTag); err != nil {
					return err
				}
			default:
				// Fixed positional multiplicity: <child>1_id .. <child>N_id.
				for n := 1; n <= count; n++ {
					if err := d.link(parent, childTag+strconv.Itoa(n), childTag); err != nil {
						return err
					}
				}
			}
		}
	}
	return nil
}

// link places the foreign key <keyBase>_id on holder, referencing the
// table named ref, and records the graph edge. A child tag name that is
// already a column of the holder is fatal in every mode.
func (d *Database) link(holder *Table, keyBase, ref string) error {
	if _, ok := holder.columns[keyBase]; ok {
		return fmt.Errorf("%w: table %q already has a column named %q", ErrNameCollision, holder.name, keyBase)
	}
	if err := holder.addKey(keyBase); err != nil {
		return err
	}
	edges, ok := d.relations[holder.name]
	if !ok {
		edges = make(map[string]bool)
		d.relations[holder.name] = edges
	}
	edges[ref] = true
	return nil
}

// references reports whether holder carries a foreign key to target.
func (d *Database) references(holder, target string) bool {
	return d.relations[holder][target]
}

// referencesOf returns the tables holder references, in discovery order.
func (d *Database) referencesOf(holder string) []string {
	edges := d.relations[holder]
	if len(edges) == 0 {
		return nil
	}
	refs := make([]string, 0, len(edges))
	for _, name := range d.order {
		if edges[name] {
			refs = append(refs, name)
		}
	}
	return refs
}

// IsSubset reports whether candidate is storable inside this database:
// every candidate table must exist here, every candidate column must
// exist with a type wide enough for the candidate's, and a candidate
// value type needs a value slot wide enough to hold it.
func (d *Database) IsSubset(candidate *Database) bool {
	for _, name := range candidate.order {
		ct := candidate.tables[name]
		target, ok := d.tables[name]
		if !ok {
			return false
		}
		for _, col := range ct.columnOrder {
			targetType, ok := target.columns[col]
			if !ok {
				return false
			}
			if !IsStorable(targetType, ct.columns[col]) {
				return false
			}
		}
		if ct.hasValue {
			if !target.hasValue || !IsStorable(target.value, ct.value) {
				return false
			}
		}
	}
	return true
}
