package schema

// Relation is one classified edge in a table's relation report.
type Relation struct {
	Type  string // "1:1", "1:N", "N:1" or "N:M"
	Table string
}

// relMode selects how the edge currently being followed is classified.
type relMode int

const (
	// relForward follows an edge the current table holds: plain N:1,
	// or N:M when the reverse edge exists too.
	relForward relMode = iota
	// relBackward follows an edge held by the other table: plain 1:N,
	// or N:M when the forward edge exists too.
	relBackward
	// relMany propagates ambiguity: once a branch has passed through an
	// N:M edge, everything further on it is N:M as well.
	relMany
)

// classification is the state of one origin's traversal: the route guard
// bounding recursion on cycles, the one-shot marker for the mandatory 1:1
// self relation, and the edges collected so far.
type classification struct {
	db         *Database
	origin     string
	route      map[string]bool
	originSeen bool
	relations  []Relation
}

// Relations classifies every relation visible from origin, covering both
// directions of reference. Flush must have run. The route guard is shared
// across the whole traversal for one origin, so a table contributes at
// most one edge to the report.
func (d *Database) Relations(origin string) []Relation {
	c := &classification{
		db:     d,
		origin: origin,
		route:  make(map[string]bool),
	}

	// Tables the origin can reach through keys it holds.
	for _, other := range d.order {
		if other != origin {
			c.visit(origin, other, relForward)
		}
	}

	// Tables holding a key to the origin, including the origin itself
	// when it references itself.
	for _, other := range d.order {
		if !d.references(other, origin) {
			continue
		}
		if other == origin {
			c.reachOrigin()
		} else {
			c.visit(origin, other, relBackward)
		}
	}

	return c.relations
}

func (c *classification) emit(relType, table string) {
	c.relations = append(c.relations, Relation{Type: relType, Table: table})
}

// reachOrigin emits the single 1:1 relation back to the origin the first
// time any path returns to it; later returns are suppressed.
func (c *classification) reachOrigin() {
	if c.originSeen {
		return
	}
	c.emit("1:1", c.origin)
	c.route[c.origin] = true
	c.originSeen = true
}

// visit classifies the edge from -> to under the given mode and recurses
// into everything reachable beyond it. A table already on the route is
// never re-entered.
func (c *classification) visit(from, to string, mode relMode) {
	switch mode {
	case relForward:
		if !c.db.references(from, to) || c.route[to] {
			return
		}
		// A bidirectional pair collapses to a single N:M edge; only this
		// direction is traversed further.
		if c.db.references(to, from) {
			c.emit("N:M", to)
		} else {
			c.emit("N:1", to)
		}
		c.route[to] = true
		c.descend(to, relForward, relMany)

	case relBackward:
		if !c.db.references(to, from) || c.route[to] {
			return
		}
		if c.db.references(from, to) {
			if from != c.origin {
				c.emit("N:M", to)
			}
		} else {
			c.emit("1:N", to)
		}
		c.route[to] = true
		c.descend(to, relMany, relBackward)

	case relMany:
		if c.route[to] || to == c.origin {
			return
		}
		c.emit("N:M", to)
		c.route[to] = true
		c.descend(to, relMany, relMany)
	}
}

// descend continues the traversal from at: first along the keys at holds
// (outMode), then along the tables holding a key to at (inMode). Either
// loop emits the 1:1 self relation when it rediscovers the origin.
func (c *classification) descend(at string, outMode, inMode relMode) {
	for _, table := range c.db.referencesOf(at) {
		if table == c.origin && !c.originSeen {
			c.reachOrigin()
		} else if !c.route[table] {
			c.visit(at, table, outMode)
		}
	}

	for _, table := range c.db.order {
		if !c.db.references(table, at) {
			continue
		}
		if table == c.origin && !c.originSeen {
			c.reachOrigin()
		}
		if table != c.origin && !c.route[table] {
			c.visit(at, table, inMode)
		}
	}
}
