package bvh

import "github.com/flier/gobvh/pkg/bv"

// selectChild asks the query volume's sibling-selection oracle which of
// the two candidate children to descend into. Volumes without the
// capability always pick child 0.
func selectChild[B bv.Volume[B]](query, c0, c1 B) int {
	if s, ok := any(query).(bv.Selector[B]); ok {
		return s.Select(c0, c1)
	}

	return 0
}
