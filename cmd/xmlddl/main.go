package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pkratky/xmlddl"
	"github.com/pkratky/xmlddl/internal/schema"
	"github.com/pkratky/xmlddl/internal/xmlwalk"
)

// Exit codes, one per error class: usage and malformed input mirror the
// generic failure paths, naming collisions and failed subset validation
// get their own codes so scripts can tell them apart.
const (
	exitUsage        = 1
	exitBadInput     = 2
	exitNameConflict = 90
	exitNotValid     = 91
)

var (
	inputFile     string
	outputFile    string
	validateFile  string
	header        string
	maxColumns    int
	duplicateKeys bool
	skipColumns   bool
	relationsOnly bool
	applyURL      string
)

var rootCmd = &cobra.Command{
	Use:   "xmlddl",
	Short: "Infer a relational schema from an XML document",
	Long: `xmlddl walks an XML document and infers a relational schema from its
structural nesting: tags become tables, attributes become typed columns,
and parent/child nesting becomes foreign keys. The result is emitted as
CREATE TABLE definitions or as a report classifying every inter-table
relationship (1:1, 1:N, N:1, N:M), and can optionally be materialized
into a SQLite, PostgreSQL, or MySQL database.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          run,
}

func init() {
	rootCmd.Flags().StringVarP(&inputFile, "input", "i", "", "Input XML file (default: stdin)")
	rootCmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output file (default: stdout)")
	rootCmd.Flags().StringVar(&validateFile, "isvalid", "", "Validate that the schema inferred from this file is storable in the primary schema")
	rootCmd.Flags().StringVar(&header, "header", "", "Leading comment emitted before the output")
	rootCmd.Flags().IntVar(&maxColumns, "max-columns", -1, "Invert a relation when a child repeats more than this many times (mutually exclusive with -b)")
	rootCmd.Flags().BoolVarP(&duplicateKeys, "duplicate-keys", "b", false, "Key every child to its parent regardless of repetition (mutually exclusive with --max-columns)")
	rootCmd.Flags().BoolVarP(&skipColumns, "skip-columns", "a", false, "Do not generate columns from attributes")
	rootCmd.Flags().BoolVarP(&relationsOnly, "relations", "g", false, "Emit the relation report instead of DDL")
	rootCmd.Flags().StringVar(&applyURL, "apply", "", "Execute the generated DDL against this database URL (sqlite://, postgres://, mysql://)")
}

func run(cmd *cobra.Command, args []string) error {
	opts := &xmlddl.Options{
		DuplicateKeys: duplicateKeys,
		MaxColumns:    maxColumns,
		SkipColumns:   skipColumns,
	}

	var db *schema.Database
	var err error
	if inputFile != "" {
		db, err = xmlddl.InferFile(inputFile, opts)
	} else {
		db, err = xmlddl.Infer(os.Stdin, opts)
	}
	if err != nil {
		return err
	}

	if validateFile != "" {
		candidate, err := xmlddl.InferFile(validateFile, opts)
		if err != nil {
			return err
		}
		if err := xmlddl.Validate(db, candidate); err != nil {
			return err
		}
	}

	// Render fully before touching the output file, so a failure leaves
	// no partial artifact behind.
	var buf bytes.Buffer
	outOpts := &xmlddl.OutputOptions{
		Writer:    &buf,
		Relations: relationsOnly,
		Header:    header,
	}
	if err := xmlddl.Format(db, outOpts); err != nil {
		return err
	}

	if applyURL != "" {
		if err := xmlddl.Apply(context.Background(), applyURL, db); err != nil {
			return err
		}
	}

	writer := os.Stdout
	if outputFile != "" {
		f, err := os.Create(outputFile)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer func() {
			if err := f.Close(); err != nil {
				fmt.Fprintf(os.Stderr, "warning: failed to close output file: %v\n", err)
			}
		}()
		writer = f
	}

	if _, err := writer.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

// exitCode maps an error onto the tool's exit code taxonomy.
func exitCode(err error) int {
	switch {
	case errors.Is(err, schema.ErrNameCollision):
		return exitNameConflict
	case errors.Is(err, schema.ErrNotSubset):
		return exitNotValid
	case errors.Is(err, xmlwalk.ErrMalformedInput):
		return exitBadInput
	default:
		return exitUsage
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(exitCode(err))
	}
}
