package search

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/katalvlaran/atrail/internal/fragment"
	"github.com/katalvlaran/atrail/meander"
	"github.com/katalvlaran/atrail/rotation"
)

const methodSearch = "Search"

// frame is one vertex on the explicit search stack.
type frame struct {
	v         int
	en        *meander.Enumerator
	committed bool // the current candidate is fully linked
}

// engine owns all mutable state of a single search.
type engine struct {
	g     *rotation.Graph
	opts  Options
	ctx   context.Context
	tr    *fragment.Tracker
	order []int
	enums []*meander.Enumerator // per vertex, allocated on first push
	state []VertexState
	stack []frame
	stats Stats
}

// Search looks for an A-trail of g: a closed trail using every edge once whose
// transition at every vertex is a non-crossing matching of its rotation.
//
// Returns:
//   - (*Result{State: Found}, nil) with the trail.
//   - (*Result{State: Failed}, ErrNoTrail) when none exists.
//   - (*Result{State: Aborted}, error wrapping ErrAborted and its cause) when
//     the context or node budget stopped the search; all links are undone.
//   - (nil, error wrapping ErrInvalidInput) for a nil graph, and
//     (nil, ErrOptionViolation) for invalid options.
//
// The search is deterministic: the same graph and options give the same
// result.
func Search(g *rotation.Graph, opts ...Option) (*Result, error) {
	// 1) Options.
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, fmt.Errorf("%s: %w", methodSearch, o.err)
	}
	if g == nil {
		return nil, fmt.Errorf("%s: %w: %w", methodSearch, ErrInvalidInput, ErrNilGraph)
	}

	// 2) Budget context.
	ctx := o.Ctx
	if o.TimeLimit > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.TimeLimit)
		defer cancel()
	}

	// 3) Engine.
	e := &engine{
		g:     g,
		opts:  o,
		ctx:   ctx,
		tr:    fragment.New(g.EdgeCount()),
		order: vertexOrder(g, o.Order),
		enums: make([]*meander.Enumerator, g.VertexCount()),
		state: make([]VertexState, g.VertexCount()),
		stack: make([]frame, 0, g.VertexCount()),
	}
	e.stats.Order = e.order

	start := time.Now()
	res, err := e.run()
	res.Stats = e.stats
	res.Stats.Elapsed = time.Since(start)
	if err != nil {
		return res, fmt.Errorf("%s: %w", methodSearch, err)
	}

	return res, nil
}

// SearchEdgeCode validates an edge code with rotation.New and searches it.
func SearchEdgeCode(code [][]int, opts ...Option) (*Result, error) {
	g, err := rotation.New(code)
	if err != nil {
		return nil, err
	}

	return Search(g, opts...)
}

// run drives the frame stack until Found, Failed or Aborted.
func (e *engine) run() (*Result, error) {
	n := e.g.VertexCount()
	if err := e.push(e.order[0]); err != nil {
		return &Result{State: Failed}, err
	}

	for len(e.stack) > 0 {
		top := &e.stack[len(e.stack)-1]

		// Returning to a committed frame means its subtree failed.
		if top.committed {
			e.release(top)
			e.stats.Backtracks++
		}

		ok, err := e.nextCandidate(top)
		if err != nil {
			e.unwind()
			if errors.Is(err, ErrAborted) {
				return &Result{State: Aborted}, err
			}
			return &Result{State: Failed}, err
		}
		if !ok {
			e.state[top.v] = Exhausted
			e.stack = e.stack[:len(e.stack)-1]
			continue
		}

		if len(e.stack) < n {
			if err = e.push(e.order[len(e.stack)]); err != nil {
				e.unwind()
				return &Result{State: Failed}, err
			}
			continue
		}
		if e.tr.IsComplete() {
			return e.found()
		}
	}

	return &Result{State: Failed}, ErrNoTrail
}

// push places v on the stack with its enumerator rewound.
func (e *engine) push(v int) error {
	en := e.enums[v]
	if en == nil {
		var err error
		en, err = meander.NewEnumerator(e.g.Degree(v))
		if err != nil {
			// rotation.New rejects odd and empty rotations.
			return fmt.Errorf("vertex %d: %w: %w", v, ErrInternal, err)
		}
		e.enums[v] = en
	}
	en.Reset()
	e.stack = append(e.stack, frame{v: v, en: en})
	e.state[v] = Trying
	if len(e.stack) > e.stats.MaxDepth {
		e.stats.MaxDepth = len(e.stack)
	}

	return nil
}

// nextCandidate advances top to the next candidate that links completely.
// The budget is checked before every candidate; this is the only point at
// which the search stops early.
func (e *engine) nextCandidate(top *frame) (bool, error) {
	for {
		if err := e.checkBudget(); err != nil {
			return false, err
		}
		if !top.en.Next() {
			return false, nil
		}
		e.stats.Nodes++

		linked, err := e.apply(top)
		if err != nil {
			return false, err
		}
		if linked {
			top.committed = true
			e.state[top.v] = Committed
			if e.opts.OnCommit != nil {
				e.opts.OnCommit(top.v, top.en.Index())
			}
			return true, nil
		}
		e.stats.Pruned++
	}
}

// apply links every pair of the current candidate of top. On a premature
// cycle the links made so far are undone and false is returned.
func (e *engine) apply(top *frame) (bool, error) {
	off := e.g.Offset(top.v)
	made := 0
	for i, j := range top.en.Matching() {
		if i > j {
			continue
		}
		err := e.tr.Link(e.g.SlotEnd(off+i), e.g.SlotEnd(off+j))
		if err == nil {
			made++
			continue
		}
		for ; made > 0; made-- {
			e.tr.Undo()
		}
		if errors.Is(err, fragment.ErrPrematureCycle) {
			return false, nil
		}
		return false, fmt.Errorf("vertex %d: %w: %w", top.v, ErrInternal, err)
	}

	return true, nil
}

// release undoes the committed candidate of f.
func (e *engine) release(f *frame) {
	for k := f.en.Slots() / 2; k > 0; k-- {
		e.tr.Undo()
	}
	f.committed = false
	e.state[f.v] = Trying
}

// unwind releases every committed frame and empties the stack.
func (e *engine) unwind() {
	for i := len(e.stack) - 1; i >= 0; i-- {
		if e.stack[i].committed {
			e.release(&e.stack[i])
		}
		e.state[e.stack[i].v] = Unvisited
	}
	e.stack = e.stack[:0]
}

// checkBudget reports an abort once the node budget is spent or the context
// is done.
func (e *engine) checkBudget() error {
	if e.opts.MaxNodes > 0 && e.stats.Nodes >= e.opts.MaxNodes {
		return fmt.Errorf("%w: %w", ErrAborted, ErrNodeLimit)
	}
	if err := e.ctx.Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrAborted, err)
	}

	return nil
}

// found verifies the transition assignment (when enabled), extracts the
// trail, then unwinds.
func (e *engine) found() (*Result, error) {
	partner := e.tr.Partners()
	var err error
	if e.opts.Verify {
		err = VerifyPartners(e.g, partner)
	}
	var trail Trail
	if err == nil {
		trail, err = Extract(e.g, partner)
	}
	e.unwind()
	if err != nil {
		return &Result{State: Failed}, fmt.Errorf("%w: %w", ErrInternal, err)
	}

	return &Result{State: Found, Trail: trail}, nil
}
