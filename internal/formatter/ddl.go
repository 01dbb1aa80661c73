package formatter

import (
	"fmt"
	"io"
	"strings"

	"github.com/pkratky/xmlddl/internal/schema"
)

// Dialect selects the SQL spelling of the inferred column types. The
// default dialect keeps the lattice's own names; the others map onto
// types the respective engine actually knows, so the generated DDL can be
// executed against it.
type Dialect int

const (
	DialectDefault Dialect = iota
	DialectSQLite
	DialectPostgres
	DialectMySQL
)

var dialectTypes = map[Dialect]map[schema.DataType]string{
	DialectSQLite: {
		schema.Bit:      "INTEGER",
		schema.Int:      "INTEGER",
		schema.Float:    "REAL",
		schema.NVarChar: "TEXT",
		schema.NText:    "TEXT",
	},
	DialectPostgres: {
		schema.Bit:      "BOOLEAN",
		schema.Int:      "INTEGER",
		schema.Float:    "DOUBLE PRECISION",
		schema.NVarChar: "VARCHAR(255)",
		schema.NText:    "TEXT",
	},
	DialectMySQL: {
		schema.Bit:      "TINYINT(1)",
		schema.Int:      "INT",
		schema.Float:    "DOUBLE",
		schema.NVarChar: "VARCHAR(255)",
		schema.NText:    "TEXT",
	},
}

// TypeName returns the dialect's spelling of t.
func TypeName(d Dialect, t schema.DataType) string {
	if names, ok := dialectTypes[d]; ok {
		return names[t]
	}
	return t.String()
}

// DDLFormatter renders one CREATE TABLE statement per inferred table.
type DDLFormatter struct {
	writer  io.Writer
	dialect Dialect
}

// NewDDLFormatter creates a new DDL formatter.
func NewDDLFormatter(w io.Writer, dialect Dialect) *DDLFormatter {
	return &DDLFormatter{writer: w, dialect: dialect}
}

// Format writes the full schema as DDL, tables in discovery order.
func (f *DDLFormatter) Format(db *schema.Database) error {
	for _, table := range db.Tables() {
		_, _ = io.WriteString(f.writer, Statement(table, f.dialect))
		_, _ = io.WriteString(f.writer, ";\n\n")
	}
	return nil
}

// Statements returns one executable CREATE TABLE statement per table,
// without trailing semicolons, in discovery order.
func Statements(db *schema.Database, dialect Dialect) []string {
	tables := db.Tables()
	statements := make([]string, 0, len(tables))
	for _, table := range tables {
		statements = append(statements, Statement(table, dialect))
	}
	return statements
}

// Statement renders a single table: the generated primary key first, then
// the foreign keys finalization produced, then the attribute columns, and
// last the value column when the entity carried text content.
func Statement(table *schema.Table, dialect Dialect) string {
	intName := TypeName(dialect, schema.Int)

	var b strings.Builder
	fmt.Fprintf(&b, "CREATE TABLE %s(\n   %s %s PRIMARY KEY", table.Name(), table.PrimaryKey(), intName)
	for _, key := range table.ForeignKeys() {
		fmt.Fprintf(&b, ",\n   %s %s", key, intName)
	}
	for _, col := range table.Columns() {
		fmt.Fprintf(&b, ",\n   %s %s", col.Name, TypeName(dialect, col.Type))
	}
	if value, ok := table.Value(); ok {
		fmt.Fprintf(&b, ",\n   value %s", TypeName(dialect, value))
	}
	b.WriteString("\n)")
	return b.String()
}
