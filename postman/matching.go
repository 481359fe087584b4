package postman

import "math"

// exactLimit is the largest odd-vertex count solved by the bitmask table,
// which has 2^exactLimit entries.
const exactLimit = 20

// Match pairs up the vertices in odd (an even number of them) with a
// minimum-weight perfect matching; dist is indexed by position in odd.
//
// Up to exactLimit vertices a bitmask dynamic programme is used
// (O(2^k · k)). Larger sets go to Edmonds' weighted blossom algorithm
// (O(k³)) on weights maxDist+1-dist, where a maximum-weight perfect matching
// is exactly a minimum-distance one.
//
// Pairs are returned as vertex ids, ordered by the position of their first
// element in odd. The result is deterministic.
func Match(odd []int, dist [][]int) [][2]int {
	k := len(odd)
	if k == 0 {
		return nil
	}
	var idx [][2]int
	if k <= exactLimit {
		idx = exactMatch(dist)
	} else {
		idx = blossomMatch(dist)
	}

	out := make([][2]int, len(idx))
	for i, p := range idx {
		out[i] = [2]int{odd[p[0]], odd[p[1]]}
	}

	return out
}

// blossomMatch solves the matching on the complete graph over positions.
// Weights are doubled so every dual stays integral.
func blossomMatch(dist [][]int) [][2]int {
	k := len(dist)
	top := 0
	for i := range dist {
		for j := i + 1; j < k; j++ {
			top = max(top, dist[i][j])
		}
	}
	edges := make([][3]int, 0, k*(k-1)/2)
	for i := 0; i < k; i++ {
		for j := i + 1; j < k; j++ {
			edges = append(edges, [3]int{i, j, 2 * (top + 1 - dist[i][j])})
		}
	}

	mate := maxWeightMatching(k, edges)
	pairs := make([][2]int, 0, k/2)
	for i, j := range mate {
		if j > i {
			pairs = append(pairs, [2]int{i, j})
		}
	}

	return pairs
}

// exactMatch solves the matching over all subsets, always pairing the lowest
// unmatched position first.
func exactMatch(dist [][]int) [][2]int {
	k := len(dist)
	full := 1<<k - 1
	cost := make([]int, 1<<k)
	choice := make([]uint8, 1<<k)
	for mask := range cost {
		cost[mask] = math.MaxInt
	}
	cost[full] = 0

	// cost[mask] = cheapest way to match the positions not in mask. Every
	// transition adds bits, so a descending scan sees each successor first.
	for mask := full - 1; mask >= 0; mask-- {
		i := lowestZero(mask)
		if i >= k {
			continue
		}
		for j := i + 1; j < k; j++ {
			if mask&(1<<j) != 0 {
				continue
			}
			next := mask | 1<<i | 1<<j
			if cost[next] == math.MaxInt {
				continue
			}
			if c := cost[next] + dist[i][j]; c < cost[mask] {
				cost[mask] = c
				choice[mask] = uint8(j)
			}
		}
	}

	pairs := make([][2]int, 0, k/2)
	for mask := 0; mask != full; {
		i := lowestZero(mask)
		j := int(choice[mask])
		pairs = append(pairs, [2]int{i, j})
		mask |= 1<<i | 1<<j
	}

	return pairs
}

// lowestZero returns the index of the lowest clear bit of mask.
func lowestZero(mask int) int {
	i := 0
	for mask&(1<<i) != 0 {
		i++
	}

	return i
}
