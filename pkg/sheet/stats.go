package sheet

// Stats summarizes the shape of a tree.
type Stats struct {
	Blocks  int // selector blocks at any depth
	Leaves  int // key/value statements
	Extends int // ?name statements
	Imports int // pending import references
	Depth   int // deepest block nesting (0 for an empty mapping)
}

// Stats walks m and counts its nodes.
func (m Mapping) Stats() Stats {
	var s Stats
	s.Depth = m.collect(&s, 0)
	return s
}

func (m Mapping) collect(s *Stats, depth int) int {
	deepest := depth
	for _, n := range m {
		switch v := n.(type) {
		case Mapping:
			s.Blocks++
			if d := v.collect(s, depth+1); d > deepest {
				deepest = d
			}
		case Leaf:
			s.Leaves++
		case Extend:
			s.Extends++
		case Import:
			s.Imports++
		}
	}
	return deepest
}
