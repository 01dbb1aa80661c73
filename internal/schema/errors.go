package schema

import "errors"

var (
	// ErrNameCollision is returned when a generated primary key, foreign
	// key, or attribute column would collide with an existing column name
	// on the same table.
	ErrNameCollision = errors.New("name collision")

	// ErrNotSubset is returned by validation when a schema cannot be
	// stored inside the target schema.
	ErrNotSubset = errors.New("schema is not a storable subset")

	// ErrConfigConflict is returned when mutually exclusive configuration
	// options are requested together.
	ErrConfigConflict = errors.New("conflicting configuration options")
)
