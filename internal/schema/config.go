package schema

import "fmt"

// Config selects the finalization policy Flush applies when it turns
// child occurrence counts into foreign keys.
type Config struct {
	// DuplicateKeys keys every child to its parent with a single
	// <parent>_id on the child, regardless of how often the child
	// repeats. Mutually exclusive with MaxColumns.
	DuplicateKeys bool

	// MaxColumns inverts a relation once a child repeats more than this
	// many times within one parent instance: the child receives the
	// foreign key instead of the parent being flattened. Negative
	// disables the threshold.
	MaxColumns int

	// SkipColumns suppresses attribute-derived columns entirely. Text
	// values are still observed.
	SkipColumns bool
}

// DefaultConfig returns the default finalization policy: one <child>_id
// on the parent for a single child, numbered keys for repeated children.
func DefaultConfig() Config {
	return Config{MaxColumns: -1}
}

// Validate rejects mutually exclusive option combinations. It runs once
// when the Database is created.
func (c Config) Validate() error {
	if c.DuplicateKeys && c.MaxColumns >= 0 {
		return fmt.Errorf("%w: duplicate keys and a max-columns threshold cannot be combined", ErrConfigConflict)
	}
	return nil
}
