package xmlddl

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/pkratky/xmlddl/internal/schema"
)

func render(t *testing.T, doc string, opts *Options, outOpts *OutputOptions) string {
	t.Helper()
	db, err := Infer(strings.NewReader(doc), opts)
	if err != nil {
		t.Fatalf("Infer failed: %v", err)
	}
	var buf bytes.Buffer
	if outOpts == nil {
		outOpts = &OutputOptions{}
	}
	outOpts.Writer = &buf
	if err := Format(db, outOpts); err != nil {
		t.Fatalf("Format failed: %v", err)
	}
	return buf.String()
}

func TestInferSimpleOneToMany(t *testing.T) {
	doc := `<root><person name="Al" age="5"><pet name="Rex"/></person></root>`

	want := `CREATE TABLE person(
   prk_person_id INT PRIMARY KEY,
   pet_id INT,
   name NVARCHAR,
   age INT
);

CREATE TABLE pet(
   prk_pet_id INT PRIMARY KEY,
   name NVARCHAR
);

`
	if got := render(t, doc, nil, nil); got != want {
		t.Errorf("DDL output:\n%s\nwant:\n%s", got, want)
	}
}

func TestInferRepeatedChildren(t *testing.T) {
	doc := `<root><person><pet name="Rex"/><pet name="Fido"/></person></root>`

	got := render(t, doc, nil, nil)
	for _, column := range []string{"pet1_id INT", "pet2_id INT"} {
		if !strings.Contains(got, column) {
			t.Errorf("output missing %q:\n%s", column, got)
		}
	}
}

func TestInferMaxColumnsInversion(t *testing.T) {
	doc := `<root><person><pet name="Rex"/><pet name="Fido"/></person></root>`

	got := render(t, doc, &Options{MaxColumns: 1}, nil)
	if !strings.Contains(got, "CREATE TABLE pet(\n   prk_pet_id INT PRIMARY KEY,\n   person_id INT,") {
		t.Errorf("pet did not receive person_id:\n%s", got)
	}
	if strings.Contains(got, "pet1_id") || strings.Contains(got, "\n   pet_id INT") {
		t.Errorf("person still carries pet keys after inversion:\n%s", got)
	}
}

func TestInferDuplicateKeys(t *testing.T) {
	doc := `<root><person><pet name="Rex"/><pet name="Fido"/></person></root>`

	got := render(t, doc, &Options{DuplicateKeys: true, MaxColumns: -1}, nil)
	if !strings.Contains(got, "CREATE TABLE pet(\n   prk_pet_id INT PRIMARY KEY,\n   person_id INT,") {
		t.Errorf("pet did not receive person_id:\n%s", got)
	}
	if strings.Contains(got, "pet1_id") {
		t.Errorf("numbered keys generated in duplicate-keys mode:\n%s", got)
	}
}

func TestInferConfigConflict(t *testing.T) {
	doc := `<root><a/></root>`
	_, err := Infer(strings.NewReader(doc), &Options{DuplicateKeys: true, MaxColumns: 2})
	if !errors.Is(err, schema.ErrConfigConflict) {
		t.Errorf("Infer = %v, want ErrConfigConflict", err)
	}
}

func TestInferNamingCollision(t *testing.T) {
	doc := `<root><person prk_person_id="1"/></root>`
	_, err := Infer(strings.NewReader(doc), nil)
	if !errors.Is(err, schema.ErrNameCollision) {
		t.Errorf("Infer = %v, want ErrNameCollision", err)
	}
}

func TestFormatHeader(t *testing.T) {
	doc := `<root><a/></root>`
	got := render(t, doc, nil, &OutputOptions{Header: "generated schema"})
	if !strings.HasPrefix(got, "--generated schema\n\n") {
		t.Errorf("missing header comment:\n%s", got)
	}
}

func TestFormatRelationReport(t *testing.T) {
	doc := `<root><person name="Al"><pet name="Rex"/></person></root>`

	want := `<tables>
  <table name="person">
    <relation to="pet" relation_type="N:1" />
    <relation to="person" relation_type="1:1" />
  </table>
  <table name="pet">
    <relation to="person" relation_type="1:N" />
    <relation to="pet" relation_type="1:1" />
  </table>
</tables>
`
	if got := render(t, doc, nil, &OutputOptions{Relations: true}); got != want {
		t.Errorf("relation report:\n%s\nwant:\n%s", got, want)
	}
}

func TestFormatRelationReportCycle(t *testing.T) {
	// a nests b and b nests a: the pair collapses to a single N:M edge
	// per origin.
	doc := `<root><a><b><a/></b></a></root>`

	got := render(t, doc, nil, &OutputOptions{Relations: true})
	if strings.Count(got, `relation_type="N:M"`) != 2 {
		t.Errorf("want one N:M edge per origin:\n%s", got)
	}
	if strings.Contains(got, `relation_type="N:1"`) || strings.Contains(got, `relation_type="1:N"`) {
		t.Errorf("cycle leaked a simple cardinality:\n%s", got)
	}
}

func TestValidate(t *testing.T) {
	infer := func(t *testing.T, doc string) *schema.Database {
		t.Helper()
		db, err := Infer(strings.NewReader(doc), nil)
		if err != nil {
			t.Fatalf("Infer failed: %v", err)
		}
		return db
	}

	wide := infer(t, `<root><person name="Al" age="5"/></root>`)
	narrow := infer(t, `<root><person name="Bob"/></root>`)

	if err := Validate(wide, narrow); err != nil {
		t.Errorf("narrow schema should be storable in wide: %v", err)
	}
	if err := Validate(narrow, wide); !errors.Is(err, schema.ErrNotSubset) {
		t.Errorf("Validate = %v, want ErrNotSubset", err)
	}
}

func TestValidateValueWidth(t *testing.T) {
	infer := func(t *testing.T, doc string) *schema.Database {
		t.Helper()
		db, err := Infer(strings.NewReader(doc), nil)
		if err != nil {
			t.Fatalf("Infer failed: %v", err)
		}
		return db
	}

	text := infer(t, `<root><note>free prose</note></root>`)
	numeric := infer(t, `<root><note>42</note></root>`)

	if err := Validate(text, numeric); err != nil {
		t.Errorf("Int value should be storable in NText: %v", err)
	}
	if err := Validate(numeric, text); !errors.Is(err, schema.ErrNotSubset) {
		t.Errorf("Validate = %v, want ErrNotSubset", err)
	}
}

func TestParseDatabaseURL(t *testing.T) {
	tests := []struct {
		name     string
		url      string
		wantType string
		wantConn string
		wantErr  bool
	}{
		{name: "postgres", url: "postgres://u:p@localhost/db", wantType: "postgres", wantConn: "postgres://u:p@localhost/db"},
		{name: "postgresql", url: "postgresql://u:p@localhost/db", wantType: "postgres", wantConn: "postgresql://u:p@localhost/db"},
		{name: "mysql", url: "mysql://u:p@tcp(localhost:3306)/db", wantType: "mysql", wantConn: "u:p@tcp(localhost:3306)/db"},
		{name: "sqlite", url: "sqlite://schema.db", wantType: "sqlite", wantConn: "schema.db"},
		{name: "unknown scheme", url: "oracle://db", wantErr: true},
		{name: "empty", url: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dbType, conn, err := parseDatabaseURL(tt.url)
			if tt.wantErr {
				if err == nil {
					t.Error("expected an error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if dbType != tt.wantType || conn != tt.wantConn {
				t.Errorf("got (%q, %q), want (%q, %q)", dbType, conn, tt.wantType, tt.wantConn)
			}
		})
	}
}
