// Package rotation provides the read-only Rotation Graph consumed by the
// A-trail search: an Eulerian multigraph whose vertices each carry the cyclic
// order of their incident edges (a rotation system, i.e. a 2-cell embedding).
//
// What:
//
//   - A rotation system is given as an edge code: rot[v] lists the edge indices
//     incident to vertex v in rotational order. Vertex count is len(rot); edge
//     count is half the total number of entries.
//   - Every appearance of an edge in a rotation is a slot. Slots are numbered
//     globally, vertex by vertex: Slot(v, i) = Offset(v) + i.
//   - Every edge e has two ends, 2e and 2e+1. End 2e is the first appearance of
//     e when scanning vertices 0..n-1 and positions left to right, 2e+1 the
//     second one. A self-loop has both ends at the same vertex.
//
// Validation (New):
//
//   - at least one vertex                         (ErrEmpty)
//   - every vertex has non-zero degree            (ErrIsolatedVertex)
//   - every vertex has even degree                (ErrOddDegree)
//   - every entry lies in 0..m-1                  (ErrEdgeRange)
//   - every edge appears exactly twice            (ErrEdgeOccurrence)
//
// Every validation failure also matches ErrInvalidInput via errors.Is, which is
// the only class the search reports before it starts.
//
// Complexity:
//
//   - New: O(n + m) time and memory.
//   - All accessors: O(1), except Rotation/EdgeCode/Neighbors which copy.
package rotation
