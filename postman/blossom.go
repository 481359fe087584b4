package postman

// blossom computes a maximum-weight maximum-cardinality matching of a general
// graph with Edmonds' blossom algorithm and dual variables, O(n³).
//
// Vocabulary:
//   - Edge k joins edges[k][0] and edges[k][1]; its endpoints are numbered
//     p = 2k (the first vertex) and 2k+1 (the second), endpoint[p] is the
//     vertex.
//   - Ids 0..n-1 are vertices, n..2n-1 are (possibly unused) blossoms.
//   - Labels: 0 free, 1 S (outer), 2 T (inner); bit 4 marks a blossom seen
//     by scanBlossom.
//   - mate[v] is the remote endpoint of v's matched edge, or -1.
//
// Weights are integers and all arithmetic stays integral: the slack between
// two S-blossoms is always even.
type blossom struct {
	n         int
	edges     [][3]int
	endpoint  []int
	neighbend [][]int

	mate      []int
	label     []int
	labelend  []int
	inblossom []int
	parent    []int
	childs    [][]int
	base      []int
	endps     [][]int
	bestedge  []int
	bestedges [][]int // nil: not computed
	unused    []int
	dual      []int
	allow     []bool
	queue     []int
}

// maxWeightMatching returns mate[v] (the vertex matched to v, or -1) for a
// maximum-cardinality matching of greatest total weight.
func maxWeightMatching(n int, edges [][3]int) []int {
	if n == 0 || len(edges) == 0 {
		return filled(n, -1)
	}
	s := newBlossom(n, edges)
	s.solve()

	out := filled(n, -1)
	for v, p := range s.mate {
		if p >= 0 {
			out[v] = s.endpoint[p]
		}
	}

	return out
}

func newBlossom(n int, edges [][3]int) *blossom {
	maxw := 0
	for _, e := range edges {
		if e[2] > maxw {
			maxw = e[2]
		}
	}

	s := &blossom{
		n:         n,
		edges:     edges,
		endpoint:  make([]int, 2*len(edges)),
		neighbend: make([][]int, n),
		mate:      filled(n, -1),
		label:     make([]int, 2*n),
		labelend:  filled(2*n, -1),
		inblossom: make([]int, n),
		parent:    filled(2*n, -1),
		childs:    make([][]int, 2*n),
		base:      filled(2*n, -1),
		endps:     make([][]int, 2*n),
		bestedge:  filled(2*n, -1),
		bestedges: make([][]int, 2*n),
		unused:    make([]int, 0, n),
		dual:      make([]int, 2*n),
		allow:     make([]bool, len(edges)),
	}
	for p := range s.endpoint {
		s.endpoint[p] = edges[p/2][p%2]
	}
	for k, e := range edges {
		s.neighbend[e[0]] = append(s.neighbend[e[0]], 2*k+1)
		s.neighbend[e[1]] = append(s.neighbend[e[1]], 2*k)
	}
	for v := 0; v < n; v++ {
		s.inblossom[v] = v
		s.base[v] = v
		s.dual[v] = maxw
		s.unused = append(s.unused, n+v)
	}

	return s
}

func (s *blossom) slack(k int) int {
	e := s.edges[k]
	return s.dual[e[0]] + s.dual[e[1]] - 2*e[2]
}

// leaves appends the vertices inside blossom b to out.
func (s *blossom) leaves(b int, out []int) []int {
	if b < s.n {
		return append(out, b)
	}
	for _, c := range s.childs[b] {
		out = s.leaves(c, out)
	}

	return out
}

// assignLabel labels vertex w and its top-level blossom with t, reached
// through endpoint p. A T-blossom's mate becomes an S-blossom in turn.
func (s *blossom) assignLabel(w, t, p int) {
	for {
		b := s.inblossom[w]
		s.label[w], s.label[b] = t, t
		s.labelend[w], s.labelend[b] = p, p
		s.bestedge[w], s.bestedge[b] = -1, -1
		if t == 1 {
			s.queue = s.leaves(b, s.queue)
			return
		}
		mb := s.mate[s.base[b]]
		w, t, p = s.endpoint[mb], 1, mb^1
	}
}

// scanBlossom traces back from v and w towards the roots of their trees and
// returns the base of a new blossom, or -1 when the trees differ (an
// augmenting path).
func (s *blossom) scanBlossom(v, w int) int {
	var path []int
	base := -1
	for v != -1 || w != -1 {
		b := s.inblossom[v]
		if s.label[b]&4 != 0 {
			base = s.base[b]
			break
		}
		path = append(path, b)
		s.label[b] = 5
		if s.labelend[b] == -1 {
			v = -1
		} else {
			v = s.endpoint[s.labelend[b]]
			b = s.inblossom[v]
			v = s.endpoint[s.labelend[b]]
		}
		if w != -1 {
			v, w = w, v
		}
	}
	for _, b := range path {
		s.label[b] = 1
	}

	return base
}

// addBlossom shrinks the odd cycle closed by edge k, with the given base,
// into a new S-blossom.
func (s *blossom) addBlossom(base, k int) {
	v, w := s.edges[k][0], s.edges[k][1]
	bb, bv, bw := s.inblossom[base], s.inblossom[v], s.inblossom[w]
	b := s.unused[len(s.unused)-1]
	s.unused = s.unused[:len(s.unused)-1]
	s.base[b] = base
	s.parent[b] = -1
	s.parent[bb] = b

	// 1) Children in cycle order starting at the base, with the endpoints
	// that connect consecutive children.
	var path, endps []int
	for bv != bb {
		s.parent[bv] = b
		path = append(path, bv)
		endps = append(endps, s.labelend[bv])
		v = s.endpoint[s.labelend[bv]]
		bv = s.inblossom[v]
	}
	path = append(path, bb)
	reverseInts(path)
	reverseInts(endps)
	endps = append(endps, 2*k)
	for bw != bb {
		s.parent[bw] = b
		path = append(path, bw)
		endps = append(endps, s.labelend[bw]^1)
		w = s.endpoint[s.labelend[bw]]
		bw = s.inblossom[w]
	}
	s.childs[b], s.endps[b] = path, endps

	// 2) Label and relink the leaves; former T-vertices become S and get
	// scanned.
	s.label[b] = 1
	s.labelend[b] = s.labelend[bb]
	s.dual[b] = 0
	for _, x := range s.leaves(b, nil) {
		if s.label[s.inblossom[x]] == 2 {
			s.queue = append(s.queue, x)
		}
		s.inblossom[x] = b
	}

	// 3) Least-slack edges to every other S-blossom.
	bestTo := filled(2*s.n, -1)
	for _, c := range path {
		var lists [][]int
		if s.bestedges[c] == nil {
			for _, x := range s.leaves(c, nil) {
				l := make([]int, 0, len(s.neighbend[x]))
				for _, p := range s.neighbend[x] {
					l = append(l, p/2)
				}
				lists = append(lists, l)
			}
		} else {
			lists = [][]int{s.bestedges[c]}
		}
		for _, l := range lists {
			for _, kk := range l {
				j := s.edges[kk][1]
				if s.inblossom[j] == b {
					j = s.edges[kk][0]
				}
				bj := s.inblossom[j]
				if bj != b && s.label[bj] == 1 && (bestTo[bj] == -1 || s.slack(kk) < s.slack(bestTo[bj])) {
					bestTo[bj] = kk
				}
			}
		}
		s.bestedges[c] = nil
		s.bestedge[c] = -1
	}
	best := make([]int, 0)
	for _, kk := range bestTo {
		if kk != -1 {
			best = append(best, kk)
		}
	}
	s.bestedges[b] = best
	s.bestedge[b] = -1
	for _, kk := range best {
		if s.bestedge[b] == -1 || s.slack(kk) < s.slack(s.bestedge[b]) {
			s.bestedge[b] = kk
		}
	}
}

// expandBlossom dissolves blossom b into its children. Mid-stage, a
// T-blossom's children are relabelled along the even path from the entry
// child to the base.
func (s *blossom) expandBlossom(b int, endStage bool) {
	for _, c := range s.childs[b] {
		s.parent[c] = -1
		switch {
		case c < s.n:
			s.inblossom[c] = c
		case endStage && s.dual[c] == 0:
			s.expandBlossom(c, endStage)
		default:
			for _, x := range s.leaves(c, nil) {
				s.inblossom[x] = c
			}
		}
	}

	if !endStage && s.label[b] == 2 {
		childs, endps := s.childs[b], s.endps[b]
		at := cyclic(len(childs))
		entry := s.inblossom[s.endpoint[s.labelend[b]^1]]
		j := indexOf(childs, entry)
		jstep, trick := -1, 1
		if j&1 != 0 {
			j -= len(childs)
			jstep, trick = 1, 0
		}

		// 1) Relabel the even path from the entry child to the base.
		p := s.labelend[b]
		for j != 0 {
			s.label[s.endpoint[p^1]] = 0
			s.label[s.endpoint[endps[at(j-trick)]^trick^1]] = 0
			s.assignLabel(s.endpoint[p^1], 2, p)
			s.allow[endps[at(j-trick)]/2] = true
			j += jstep
			p = endps[at(j-trick)] ^ trick
			s.allow[p/2] = true
			j += jstep
		}

		// 2) The base child becomes T without relabelling its mate.
		bv := childs[at(j)]
		s.label[s.endpoint[p^1]], s.label[bv] = 2, 2
		s.labelend[s.endpoint[p^1]], s.labelend[bv] = p, p
		s.bestedge[bv] = -1

		// 3) Children on the odd path keep a T label only if reachable.
		j += jstep
		for childs[at(j)] != entry {
			bv = childs[at(j)]
			if s.label[bv] == 1 {
				j += jstep
				continue
			}
			v := -1
			for _, x := range s.leaves(bv, nil) {
				if s.label[x] != 0 {
					v = x
					break
				}
			}
			if v >= 0 {
				s.label[v] = 0
				s.label[s.endpoint[s.mate[s.base[bv]]]] = 0
				s.assignLabel(v, 2, s.labelend[v])
			}
			j += jstep
		}
	}

	s.label[b], s.labelend[b] = -1, -1
	s.childs[b], s.endps[b] = nil, nil
	s.base[b] = -1
	s.bestedges[b] = nil
	s.bestedge[b] = -1
	s.unused = append(s.unused, b)
}

// augmentBlossom swaps matched and unmatched edges along the even path from
// vertex v to the base of blossom b, then rotates b so that v's child is its
// new base.
func (s *blossom) augmentBlossom(b, v int) {
	t := v
	for s.parent[t] != b {
		t = s.parent[t]
	}
	if t >= s.n {
		s.augmentBlossom(t, v)
	}

	childs, endps := s.childs[b], s.endps[b]
	at := cyclic(len(childs))
	i := indexOf(childs, t)
	j := i
	jstep, trick := -1, 1
	if i&1 != 0 {
		j -= len(childs)
		jstep, trick = 1, 0
	}
	for j != 0 {
		j += jstep
		t = childs[at(j)]
		p := endps[at(j-trick)] ^ trick
		if t >= s.n {
			s.augmentBlossom(t, s.endpoint[p])
		}
		j += jstep
		t = childs[at(j)]
		if t >= s.n {
			s.augmentBlossom(t, s.endpoint[p^1])
		}
		s.mate[s.endpoint[p]] = p ^ 1
		s.mate[s.endpoint[p^1]] = p
	}

	s.childs[b] = append(append([]int(nil), childs[i:]...), childs[:i]...)
	s.endps[b] = append(append([]int(nil), endps[i:]...), endps[:i]...)
	s.base[b] = s.base[s.childs[b][0]]
}

// augmentMatching flips the augmenting path through edge k, walking from
// both ends back to the exposed roots.
func (s *blossom) augmentMatching(k int) {
	for _, start := range [2][2]int{{s.edges[k][0], 2*k + 1}, {s.edges[k][1], 2 * k}} {
		x, p := start[0], start[1]
		for {
			bs := s.inblossom[x]
			if bs >= s.n {
				s.augmentBlossom(bs, x)
			}
			s.mate[x] = p
			if s.labelend[bs] == -1 {
				break
			}
			t := s.endpoint[s.labelend[bs]]
			bt := s.inblossom[t]
			x = s.endpoint[s.labelend[bt]]
			j := s.endpoint[s.labelend[bt]^1]
			if bt >= s.n {
				s.augmentBlossom(bt, j)
			}
			s.mate[j] = s.labelend[bt]
			p = s.labelend[bt] ^ 1
		}
	}
}

// solve runs at most n stages; each grows alternating trees from every
// exposed vertex until it augments or no dual change can help.
func (s *blossom) solve() {
	n := s.n
	for stage := 0; stage < n; stage++ {
		// 1) Fresh labels; every exposed vertex roots an S-tree.
		for i := range s.label {
			s.label[i] = 0
			s.bestedge[i] = -1
		}
		for b := n; b < 2*n; b++ {
			s.bestedges[b] = nil
		}
		for k := range s.allow {
			s.allow[k] = false
		}
		s.queue = s.queue[:0]
		for v := 0; v < n; v++ {
			if s.mate[v] == -1 && s.label[s.inblossom[v]] == 0 {
				s.assignLabel(v, 1, -1)
			}
		}

		augmented := false
		for {
			// 2) Grow the trees over tight edges.
			for len(s.queue) > 0 && !augmented {
				v := s.queue[len(s.queue)-1]
				s.queue = s.queue[:len(s.queue)-1]
				for _, p := range s.neighbend[v] {
					k, w := p/2, s.endpoint[p]
					if s.inblossom[v] == s.inblossom[w] {
						continue
					}
					kslack := 0
					if !s.allow[k] {
						kslack = s.slack(k)
						if kslack <= 0 {
							s.allow[k] = true
						}
					}
					switch {
					case s.allow[k] && s.label[s.inblossom[w]] == 0:
						s.assignLabel(w, 2, p^1)
					case s.allow[k] && s.label[s.inblossom[w]] == 1:
						if base := s.scanBlossom(v, w); base >= 0 {
							s.addBlossom(base, k)
						} else {
							s.augmentMatching(k)
							augmented = true
						}
					case s.allow[k]:
						if s.label[w] == 0 {
							s.label[w] = 2
							s.labelend[w] = p ^ 1
						}
					case s.label[s.inblossom[w]] == 1:
						b := s.inblossom[v]
						if s.bestedge[b] == -1 || kslack < s.slack(s.bestedge[b]) {
							s.bestedge[b] = k
						}
					case s.label[w] == 0:
						if s.bestedge[w] == -1 || kslack < s.slack(s.bestedge[w]) {
							s.bestedge[w] = k
						}
					}
					if augmented {
						break
					}
				}
			}
			if augmented {
				break
			}

			// 3) Smallest dual change that makes progress.
			deltaType, delta, deltaEdge, deltaBlossom := -1, 0, -1, -1
			for v := 0; v < n; v++ {
				if s.label[s.inblossom[v]] == 0 && s.bestedge[v] != -1 {
					if d := s.slack(s.bestedge[v]); deltaType == -1 || d < delta {
						deltaType, delta, deltaEdge = 2, d, s.bestedge[v]
					}
				}
			}
			for b := 0; b < 2*n; b++ {
				if s.parent[b] == -1 && s.label[b] == 1 && s.bestedge[b] != -1 {
					if d := s.slack(s.bestedge[b]) / 2; deltaType == -1 || d < delta {
						deltaType, delta, deltaEdge = 3, d, s.bestedge[b]
					}
				}
			}
			for b := n; b < 2*n; b++ {
				if s.base[b] >= 0 && s.parent[b] == -1 && s.label[b] == 2 && (deltaType == -1 || s.dual[b] < delta) {
					deltaType, delta, deltaBlossom = 4, s.dual[b], b
				}
			}
			if deltaType == -1 {
				// Maximum cardinality reached: finish with the optimum duals.
				deltaType = 1
				delta = s.dual[0]
				for v := 1; v < n; v++ {
					delta = min(delta, s.dual[v])
				}
				delta = max(delta, 0)
			}

			// 4) Apply it.
			for v := 0; v < n; v++ {
				switch s.label[s.inblossom[v]] {
				case 1:
					s.dual[v] -= delta
				case 2:
					s.dual[v] += delta
				}
			}
			for b := n; b < 2*n; b++ {
				if s.base[b] >= 0 && s.parent[b] == -1 {
					switch s.label[b] {
					case 1:
						s.dual[b] += delta
					case 2:
						s.dual[b] -= delta
					}
				}
			}

			if deltaType == 1 {
				break
			}
			switch deltaType {
			case 2:
				s.allow[deltaEdge] = true
				i := s.edges[deltaEdge][0]
				if s.label[s.inblossom[i]] == 0 {
					i = s.edges[deltaEdge][1]
				}
				s.queue = append(s.queue, i)
			case 3:
				s.allow[deltaEdge] = true
				s.queue = append(s.queue, s.edges[deltaEdge][0])
			case 4:
				s.expandBlossom(deltaBlossom, false)
			}
		}

		if !augmented {
			break
		}

		// 5) S-blossoms whose dual reached zero are expanded for the next stage.
		for b := n; b < 2*n; b++ {
			if s.parent[b] == -1 && s.base[b] >= 0 && s.label[b] == 1 && s.dual[b] == 0 {
				s.expandBlossom(b, true)
			}
		}
	}
}

func filled(n, x int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = x
	}

	return out
}

func reverseInts(a []int) {
	for i, j := 0, len(a)-1; i < j; i, j = i+1, j-1 {
		a[i], a[j] = a[j], a[i]
	}
}

func indexOf(a []int, x int) int {
	for i, y := range a {
		if y == x {
			return i
		}
	}

	return -1
}

// cyclic returns an index function that wraps negative and overflowing
// positions into 0..n-1.
func cyclic(n int) func(int) int {
	return func(j int) int { return ((j % n) + n) % n }
}
