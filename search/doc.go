// Package search implements backtracking A-trail search over a rotation system.
//
// An A-trail is a closed trail that uses every edge of an embedded Eulerian
// multigraph exactly once and, at every vertex, pairs incoming and outgoing
// edge ends by a non-crossing matching of the vertex's rotation. Search finds
// one (first-found) or proves that none exists.
//
// Rationale (succinct):
//  1. Vertices are processed in a fixed order (see WithOrder). Each vertex
//     commits a whole non-crossing matching of its slots at once, taken from
//     its own meander.Enumerator in catalog order.
//  2. Every pair of a candidate is linked in a fragment tracker. A link that
//     would close a cycle missing some edges is rejected on the spot; the
//     partial candidate is undone and the next one tried (pruning).
//  3. Recursion is an explicit frame stack, so depth is bounded only by
//     memory and cancellation can unwind cleanly from any point.
//  4. When every vertex is committed and the tracker holds one closed cycle,
//     the trail is extracted from the end-to-end partner assignment.
//
// Complexity:
//   - Worst case Π Catalan(deg(v)/2) candidates; pruning cuts most of them.
//   - Per candidate: O(d log m) links.
//   - Memory: O(n + m).
//
// Concurrency:
//
//	A Search call owns all of its state. A *rotation.Graph is read-only and
//	may be searched from any number of goroutines at once.
//
// Errors:
//
//	ErrInvalidInput  - bad edge code or nil graph (wraps the rotation cause).
//	ErrNoTrail       - exhaustive search without an A-trail.
//	ErrAborted       - context or node budget; wraps the cause.
//	ErrNotATrail     - Extract/Verify rejected an assignment or trail.
//
// Example:
//
//	res, err := search.SearchEdgeCode([][]int{{0, 3}, {0, 1}, {1, 2}, {2, 3}})
//	// res.Trail.Edges    == [0 1 2 3]
//	// res.Trail.Vertices == [0 1 2 3 0]
package search
