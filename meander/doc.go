// Package meander enumerates non-crossing perfect matchings ("meanders") of
// points laid out on a circle. At a vertex of degree 2d of an embedded graph
// these matchings are exactly the planar transition systems: every way a
// closed trail can pass through the vertex without its passes crossing.
//
// Encoding:
//
//	A non-crossing matching of 2d points in cyclic order is the same object as
//	a balanced parenthesis word of length 2d read from any fixed starting
//	point: '(' opens an arc, ')' closes the most recently opened one.
//
//	()()()  ↔  (0,1) (2,3) (4,5)
//	(()())  ↔  (0,5) (1,2) (3,4)
//
// Order:
//
//	Enumerator produces words in lexicographic order with ')' < '(': the
//	first matching pairs neighbouring slots, the last one nests every arc.
//	Advancing to the next word is O(d) and needs no memory beyond the current
//	word, so degrees far beyond what Catalan(d) storage would allow can still
//	be enumerated lazily and restarted with Reset.
//
// Counting:
//
//	The number of matchings of 2d points is the Catalan number C(d):
//	1, 1, 2, 5, 14, 42, 132, ... (d = 0, 1, 2, ...). Catalan saturates at
//	math.MaxUint64 instead of overflowing.
//
// Errors:
//
//   - ErrNoSlots   slots ≤ 0
//   - ErrOddSlots  slots is odd
package meander
