// Package xmlwalk feeds a parsed XML document into a schema database.
//
// The walk is depth first and strictly sequential: every element below
// the document root contributes its attributes, its text content, and the
// per-instance occurrence counts of its child tags. Tag and attribute
// names are lowercased, so entity identity is case insensitive.
package xmlwalk

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/beevik/etree"

	"github.com/pkratky/xmlddl/internal/schema"
)

// ErrMalformedInput is returned when the source document fails to parse.
var ErrMalformedInput = errors.New("malformed XML input")

// Walk parses the document from r and observes every element below the
// root into db. The root element itself is not an entity; its direct
// children are the top-level entities.
func Walk(r io.Reader, db *schema.Database) error {
	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(r); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedInput, err)
	}
	root := doc.Root()
	if root == nil {
		return fmt.Errorf("%w: document has no root element", ErrMalformedInput)
	}

	for _, el := range root.ChildElements() {
		if err := walkElement(el, db); err != nil {
			return err
		}
	}
	return nil
}

func walkElement(el *etree.Element, db *schema.Database) error {
	name := strings.ToLower(el.Tag)

	for _, attr := range el.Attr {
		if err := db.ObserveAttribute(name, strings.ToLower(attr.Key), attr.Value); err != nil {
			return err
		}
	}

	if text := el.Text(); strings.TrimSpace(text) != "" {
		db.ObserveValue(name, text)
	}

	counts := make(map[string]int)
	for _, child := range el.ChildElements() {
		counts[strings.ToLower(child.Tag)]++
		if err := walkElement(child, db); err != nil {
			return err
		}
	}

	// Recorded after the subtree walk, so the counts belong to this
	// specific instance and merge as a running maximum across instances.
	db.ObserveChildren(name, counts)
	return nil
}
