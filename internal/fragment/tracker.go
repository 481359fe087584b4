// Package fragment tracks how committed transitions chain edges into open
// path fragments during the A-trail search, and detects premature cycles.
//
// Model:
//
//   - Edges are numbered 0..m-1; edge e has two ends, 2e and 2e+1.
//   - A transition links two free ends. Linking ends of two different
//     fragments merges them; linking the two free ends of one fragment closes
//     it into a cycle, which is legal only when the fragment spans every edge.
//   - Membership is a union-find over edges with union by size and no path
//     compression, so the most recent link is undone in O(1) from the undo log.
//
// Complexity: Link O(log m), Undo O(1), IsComplete O(1); memory O(m) plus one
// log entry per live link.
//
// A Tracker belongs to one search and is not safe for concurrent use.
package fragment

import "errors"

var (
	// ErrAlreadyLinked indicates that an end already carries a transition, or
	// that both arguments name the same end.
	ErrAlreadyLinked = errors.New("fragment: end already linked")

	// ErrPrematureCycle indicates that the link would close a cycle that does
	// not contain every edge.
	ErrPrematureCycle = errors.New("fragment: premature cycle")

	// ErrEndRange indicates an end outside 0..2m-1.
	ErrEndRange = errors.New("fragment: end out of range")

	// ErrUndoOrder indicates an UndoLink that does not name the latest link.
	ErrUndoOrder = errors.New("fragment: undo out of order")
)

// entry is one undo record. child == -1 marks the link that closed the cycle.
type entry struct {
	a, b  int
	child int
	root  int
}

// Tracker is a union-find with rollback over edges.
type Tracker struct {
	edges     int
	parent    []int // edge → parent edge; roots point to themselves
	size      []int // root → edge count of its fragment
	partner   []int // end → linked end, -1 while free
	fragments int
	closed    bool
	log       []entry
}

// New returns a Tracker in which every edge is its own fragment.
func New(edges int) *Tracker {
	t := &Tracker{
		edges:   edges,
		parent:  make([]int, edges),
		size:    make([]int, edges),
		partner: make([]int, 2*edges),
		log:     make([]entry, 0, edges),
	}
	t.Reset()

	return t
}

// Reset drops every link.
func (t *Tracker) Reset() {
	for e := 0; e < t.edges; e++ {
		t.parent[e] = e
		t.size[e] = 1
	}
	for x := range t.partner {
		t.partner[x] = -1
	}
	t.fragments = t.edges
	t.closed = false
	t.log = t.log[:0]
}

func (t *Tracker) find(e int) int {
	for t.parent[e] != e {
		e = t.parent[e]
	}

	return e
}

// Link commits the transition joining ends a and b.
func (t *Tracker) Link(a, b int) error {
	n := len(t.partner)
	if a < 0 || a >= n || b < 0 || b >= n {
		return ErrEndRange
	}
	if a == b || t.partner[a] >= 0 || t.partner[b] >= 0 {
		return ErrAlreadyLinked
	}

	ra, rb := t.find(a>>1), t.find(b>>1)
	if ra == rb {
		// a and b are the two free ends of one path.
		if t.size[ra] != t.edges {
			return ErrPrematureCycle
		}
		t.partner[a], t.partner[b] = b, a
		t.closed = true
		t.log = append(t.log, entry{a: a, b: b, child: -1, root: ra})

		return nil
	}

	if t.size[ra] < t.size[rb] {
		ra, rb = rb, ra
	}
	t.parent[rb] = ra
	t.size[ra] += t.size[rb]
	t.fragments--
	t.partner[a], t.partner[b] = b, a
	t.log = append(t.log, entry{a: a, b: b, child: rb, root: ra})

	return nil
}

// Undo reverts the most recent link and returns its ends.
func (t *Tracker) Undo() (a, b int, ok bool) {
	if len(t.log) == 0 {
		return -1, -1, false
	}
	top := t.log[len(t.log)-1]
	t.log = t.log[:len(t.log)-1]

	t.partner[top.a], t.partner[top.b] = -1, -1
	if top.child < 0 {
		t.closed = false
	} else {
		t.parent[top.child] = top.child
		t.size[top.root] -= t.size[top.child]
		t.fragments++
	}

	return top.a, top.b, true
}

// UndoLink reverts the link (a, b), which must be the most recent one
// (in either argument order).
func (t *Tracker) UndoLink(a, b int) error {
	if len(t.log) == 0 {
		return ErrUndoOrder
	}
	top := t.log[len(t.log)-1]
	if !(top.a == a && top.b == b) && !(top.a == b && top.b == a) {
		return ErrUndoOrder
	}
	t.Undo()

	return nil
}

// Partner returns the end linked to x, or -1 if x is free.
func (t *Tracker) Partner(x int) int { return t.partner[x] }

// Partners returns a copy of the end → end assignment (-1 for free ends).
func (t *Tracker) Partners() []int { return append([]int(nil), t.partner...) }

// Same reports whether edges e and f lie in the same fragment.
func (t *Tracker) Same(e, f int) bool { return t.find(e) == t.find(f) }

// Fragments returns the current number of fragments.
func (t *Tracker) Fragments() int { return t.fragments }

// Closed reports whether the global cycle has been closed.
func (t *Tracker) Closed() bool { return t.closed }

// IsComplete reports whether all edges form one closed cycle.
func (t *Tracker) IsComplete() bool { return t.closed && t.fragments == 1 }

// Depth returns the number of live links.
func (t *Tracker) Depth() int { return len(t.log) }

// Edges returns m.
func (t *Tracker) Edges() int { return t.edges }
