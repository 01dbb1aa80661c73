package formatter

import (
	"fmt"
	"io"

	"github.com/pkratky/xmlddl/internal/schema"
)

// RelationFormatter renders the per-table cardinality report as XML.
type RelationFormatter struct {
	writer io.Writer
}

// NewRelationFormatter creates a new relation report formatter.
func NewRelationFormatter(w io.Writer) *RelationFormatter {
	return &RelationFormatter{writer: w}
}

// Format writes one <table> block per inferred table, each containing the
// classified relations visible from that table as origin.
func (f *RelationFormatter) Format(db *schema.Database) error {
	_, _ = fmt.Fprintln(f.writer, "<tables>")
	for _, table := range db.Tables() {
		_, _ = fmt.Fprintf(f.writer, "  <table name=%q>\n", table.Name())
		for _, rel := range db.Relations(table.Name()) {
			_, _ = fmt.Fprintf(f.writer, "    <relation to=%q relation_type=%q />\n", rel.Table, rel.Type)
		}
		_, _ = fmt.Fprintln(f.writer, "  </table>")
	}
	_, _ = fmt.Fprintln(f.writer, "</tables>")
	return nil
}
