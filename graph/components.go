package graph

// OddVertices returns the vertices of odd degree in ascending order.
func (g *Graph) OddVertices() []int {
	g.mu.RLock()
	defer g.mu.RUnlock()

	var out []int
	for v, d := range g.deg {
		if d%2 != 0 {
			out = append(out, v)
		}
	}

	return out
}

// IsEven reports whether every vertex has even degree.
func (g *Graph) IsEven() bool { return len(g.OddVertices()) == 0 }

// Components labels the connected components with an iterative depth-first
// walk. label[v] is the component of v, numbered in order of their smallest
// vertex; isolated vertices form components of their own.
func (g *Graph) Components() (count int, label []int) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	label = make([]int, g.n)
	for v := range label {
		label[v] = -1
	}

	stack := make([]int, 0, g.n)
	for root := 0; root < g.n; root++ {
		if label[root] >= 0 {
			continue
		}
		label[root] = count
		stack = append(stack[:0], root)
		for len(stack) > 0 {
			v := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			for _, id := range g.adj[v] {
				if !g.alive[id] {
					continue
				}
				u := g.edges[id].Other(v)
				if label[u] < 0 {
					label[u] = count
					stack = append(stack, u)
				}
			}
		}
		count++
	}

	return count, label
}
