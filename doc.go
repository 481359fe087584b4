// Package atrail is a toolkit for A-trails: closed trails through every edge
// of a plane Eulerian multigraph whose turn at each vertex never crosses
// another turn at that vertex.
//
// 🚀 What is in the box?
//
//	A pipeline from polygon meshes to trails, one package per stage:
//		• ply/       ASCII PLY reader (faces only)
//		• mesh/      mesh → simple graph, mesh → vertex rotation, Platonic solids
//		• graph/     int-indexed multigraph with degrees and components
//		• postman/   Eulerization by min-weight matching, Hierholzer circuits
//		• embed/     vertex rotation + Eulerian multigraph → edge code
//		• format/    dimacs, vcode, edge code and trail files
//		• rotation/  validated rotation system (the search input)
//		• meander/   lazy enumeration of non-crossing matchings
//		• search/    backtracking A-trail search, extraction and verification
//
// ✨ Why an A-trail?
//
//   - It draws every edge once without lifting the pen and without crossing
//     its own path, which is what DNA origami routing and plotter tool paths
//     on meshes want.
//   - Existence is not guaranteed: the search decides it and returns a
//     witness trail when there is one.
//
// Quick ASCII example:
//
//	    0───1
//	    │   │
//	    3───2
//
//	the 4-cycle has exactly one A-trail: edges 0 1 2 3, vertices 0 1 2 3 0.
//
// The command in cmd/atrail runs any stage, or all of them:
//
//	go run ./cmd/atrail pipeline mesh.ply
package atrail
