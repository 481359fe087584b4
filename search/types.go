package search

import (
	"context"
	"errors"
	"time"

	"github.com/katalvlaran/atrail/rotation"
)

// ErrInvalidInput is the class of every input rejection; it is the same
// sentinel the rotation package uses, so either name works with errors.Is.
var ErrInvalidInput = rotation.ErrInvalidInput

var (
	// ErrNilGraph is returned (wrapped with ErrInvalidInput) for a nil graph.
	ErrNilGraph = errors.New("search: graph is nil")

	// ErrNoTrail reports a completed exhaustive search without an A-trail.
	// It is an expected outcome, not a defect.
	ErrNoTrail = errors.New("search: no A-trail exists for this embedding")

	// ErrAborted reports a search stopped by its context or node budget.
	// The returned error also wraps the cause (context error or ErrNodeLimit).
	ErrAborted = errors.New("search: aborted")

	// ErrNodeLimit is the abort cause when WithMaxNodes is exceeded.
	ErrNodeLimit = errors.New("search: node limit reached")

	// ErrOptionViolation indicates an invalid option value.
	ErrOptionViolation = errors.New("search: option violation")

	// ErrNotATrail is returned by Extract and Verify for assignments or trails
	// that are not A-trails of the graph.
	ErrNotATrail = errors.New("search: not an A-trail")

	// ErrInternal reports a broken engine invariant (a link on an end that is
	// already linked). It never happens for graphs accepted by rotation.New.
	ErrInternal = errors.New("search: internal consistency violation")
)

// Order selects the fixed vertex processing order. It only affects speed.
type Order int

const (
	// OrderConnected processes next the vertex with the most edges into
	// already ordered vertices (ties: higher degree, then lower index),
	// starting from the highest-degree vertex. Default.
	OrderConnected Order = iota

	// OrderDegree processes vertices by ascending degree, index tiebreak.
	OrderDegree

	// OrderInput processes vertices 0..n-1.
	OrderInput
)

// String returns the configuration name of the order.
func (o Order) String() string {
	switch o {
	case OrderConnected:
		return "connected"
	case OrderDegree:
		return "degree"
	case OrderInput:
		return "input"
	default:
		return "unknown"
	}
}

// ParseOrder maps a configuration name to an Order.
func ParseOrder(s string) (Order, error) {
	switch s {
	case "connected", "":
		return OrderConnected, nil
	case "degree":
		return OrderDegree, nil
	case "input":
		return OrderInput, nil
	default:
		return 0, ErrOptionViolation
	}
}

// State is the global search state.
type State int

const (
	Searching State = iota
	Found
	Failed
	Aborted
)

// String returns a lower-case state name for logs.
func (s State) String() string {
	switch s {
	case Searching:
		return "searching"
	case Found:
		return "found"
	case Failed:
		return "failed"
	case Aborted:
		return "aborted"
	default:
		return "unknown"
	}
}

// VertexState is the per-vertex state of the driver.
type VertexState int

const (
	Unvisited VertexState = iota // not on the frame stack
	Trying                       // on the stack, looking for a candidate that links
	Committed                    // current candidate fully linked
	Exhausted                    // every candidate failed; popped until its predecessor advances
)

// Option configures Search.
type Option func(*Options)

// Options holds the search configuration. Build it with DefaultOptions and
// Option functions; the zero value is not valid (nil context).
type Options struct {
	// Ctx is checked cooperatively before every candidate.
	Ctx context.Context

	// MaxNodes caps the number of candidates tried; 0 means unlimited.
	MaxNodes int

	// TimeLimit caps wall-clock time; 0 means unlimited.
	TimeLimit time.Duration

	// Order is the vertex processing order.
	Order Order

	// OnCommit, if non-nil, runs after a vertex commits candidate k.
	OnCommit func(vertex, candidate int)

	// Verify re-checks the final transition assignment with VerifyPartners
	// before the trail is returned.
	Verify bool

	err error
}

// DefaultOptions returns background context, no budgets, OrderConnected,
// no hook and verification on.
func DefaultOptions() Options {
	return Options{
		Ctx:    context.Background(),
		Order:  OrderConnected,
		Verify: true,
	}
}

// WithContext sets the cancellation context. A nil ctx is ignored.
func WithContext(ctx context.Context) Option {
	return func(o *Options) {
		if ctx != nil {
			o.Ctx = ctx
		}
	}
}

// WithMaxNodes caps the number of candidates tried (n ≥ 0, 0 = unlimited).
func WithMaxNodes(n int) Option {
	return func(o *Options) {
		if n < 0 {
			o.err = ErrOptionViolation
			return
		}
		o.MaxNodes = n
	}
}

// WithTimeLimit caps wall-clock time (d ≥ 0, 0 = unlimited).
func WithTimeLimit(d time.Duration) Option {
	return func(o *Options) {
		if d < 0 {
			o.err = ErrOptionViolation
			return
		}
		o.TimeLimit = d
	}
}

// WithOrder selects the vertex processing order.
func WithOrder(ord Order) Option {
	return func(o *Options) {
		if ord < OrderConnected || ord > OrderInput {
			o.err = ErrOptionViolation
			return
		}
		o.Order = ord
	}
}

// WithOnCommit installs a hook called after each whole-vertex commit.
func WithOnCommit(fn func(vertex, candidate int)) Option {
	return func(o *Options) { o.OnCommit = fn }
}

// WithVerify toggles verification of the final transition assignment.
func WithVerify(on bool) Option {
	return func(o *Options) { o.Verify = on }
}

// Trail is a closed A-trail.
type Trail struct {
	// Edges lists every edge index exactly once, in traversal order.
	Edges []int

	// Vertices lists the vertex at the start of each edge, followed by the
	// first vertex again: len(Vertices) == len(Edges)+1.
	Vertices []int
}

// Stats are search diagnostics.
type Stats struct {
	Nodes      int           // candidates tried
	Pruned     int           // candidates rejected by a premature cycle
	Backtracks int           // committed vertices undone
	MaxDepth   int           // deepest frame stack
	Order      []int         // vertex processing order
	Elapsed    time.Duration // wall-clock time of the search
}

// Result is returned by Search. Trail is set only when State == Found.
type Result struct {
	State State
	Trail Trail
	Stats Stats
}
