package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/atrail/format"
	"github.com/katalvlaran/atrail/internal/cache"
	"github.com/katalvlaran/atrail/rotation"
	"github.com/katalvlaran/atrail/search"
)

// searchFlags are the search tunables a command may override.
type searchFlags struct {
	order     string
	maxNodes  int
	timeLimit time.Duration
	verify    bool
	jobs      int
	cacheDir  string
}

func (f *searchFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.order, "order", "", "Vertex order: connected, degree or input")
	cmd.Flags().IntVar(&f.maxNodes, "max-nodes", 0, "Abort after this many candidates (0 = unlimited)")
	cmd.Flags().DurationVar(&f.timeLimit, "time-limit", 0, "Abort after this long (0 = unlimited)")
	cmd.Flags().BoolVar(&f.verify, "verify", true, "Verify the trail before writing it")
	cmd.Flags().StringVar(&f.cacheDir, "cache-dir", "", "Verdict cache directory")
}

// apply copies the flags the user set into cfg and revalidates it.
func (f *searchFlags) apply(cmd *cobra.Command) error {
	fs := cmd.Flags()
	if fs.Changed("order") {
		cfg.Search.Order = f.order
	}
	if fs.Changed("max-nodes") {
		cfg.Search.MaxNodes = f.maxNodes
	}
	if fs.Changed("time-limit") {
		cfg.Search.TimeLimit = f.timeLimit
	}
	if fs.Changed("verify") {
		cfg.Search.Verify = f.verify
	}
	if fs.Changed("jobs") {
		cfg.Jobs = f.jobs
	}
	if fs.Changed("cache-dir") {
		cfg.Cache.Dir = f.cacheDir
	}
	if err := cfg.Validate(); err != nil {
		return usageError(err)
	}

	return nil
}

// openStore opens the configured verdict cache, or returns nil when caching
// is off.
func openStore() (*cache.Store, error) {
	if cfg.Cache.Dir == "" {
		return nil, nil
	}
	s, err := cache.Open(cfg.Cache.Dir)
	if err != nil {
		return nil, ioError(err)
	}

	return s, nil
}

func newSearchCmd() *cobra.Command {
	var (
		flags           searchFlags
		trailOut, nodes string
	)
	cmd := &cobra.Command{
		Use:   "search input.ecode [input.ecode ...]",
		Short: "Search an edge code for an A-trail",
		Long: `Reads an edge code (one line of edge indices per vertex, in rotational
order) and searches for an A-trail. The trail is written as edge indices to
<input>.trail and as vertex indices to <input>.ntrail.

Several inputs are searched concurrently (--jobs). The exit code reflects
the most severe outcome.`,
		Args: func(cmd *cobra.Command, args []string) error {
			if err := cobra.MinimumNArgs(1)(cmd, args); err != nil {
				return usageError(err)
			}
			if len(args) > 1 && (trailOut != "" || nodes != "") {
				return usageError(errors.New("--trail and --ntrail need a single input"))
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := flags.apply(cmd); err != nil {
				return err
			}
			store, err := openStore()
			if err != nil {
				return err
			}
			if store != nil {
				defer store.Close()
			}
			if len(args) == 1 {
				return searchFile(cmd.Context(), store, args[0], trailOut, nodes)
			}
			return searchBatch(cmd.Context(), store, args)
		},
	}
	flags.register(cmd)
	cmd.Flags().IntVarP(&flags.jobs, "jobs", "j", 1, "Concurrent searches")
	cmd.Flags().StringVar(&trailOut, "trail", "", "Edge trail output (default <input>.trail)")
	cmd.Flags().StringVar(&nodes, "ntrail", "", "Vertex trail output (default <input>.ntrail)")

	return cmd
}

// searchFile searches one edge code file and writes its trail files.
func searchFile(ctx context.Context, store *cache.Store, in, edgeOut, vertexOut string) error {
	code, err := readEdgeCode(in)
	if err != nil {
		return err
	}
	g, err := rotation.New(code)
	if err != nil {
		return fmt.Errorf("%s: %w", in, err)
	}
	logger.Info("read graph from the edge code", zap.String("file", in),
		zap.Int("vertices", g.VertexCount()), zap.Int("edges", g.EdgeCount()))

	res, err := searchGraph(ctx, store, g)
	if err != nil {
		return fmt.Errorf("%s: %w", in, err)
	}
	logger.Info("found an A-trail", zap.String("file", in),
		zap.Int("nodes", res.Stats.Nodes), zap.Duration("elapsed", res.Stats.Elapsed))

	if edgeOut == "" {
		edgeOut = format.OutputName(in, format.ExtTrail)
	}
	if vertexOut == "" {
		vertexOut = format.OutputName(in, format.ExtNTrail)
	}
	if err = writeTrail(edgeOut, vertexOut, res.Trail); err != nil {
		return err
	}
	logger.Info("wrote trail", zap.String("edges", edgeOut), zap.String("vertices", vertexOut))

	return nil
}

// searchGraph runs the search with the configured options, consulting and
// filling the cache when store is non-nil. Only Found and Failed verdicts
// are cached.
func searchGraph(ctx context.Context, store *cache.Store, g *rotation.Graph) (*search.Result, error) {
	var key uint64
	if store != nil {
		key = cache.Key(g)
		res, ok, err := cached(store, key, g)
		if err != nil {
			return nil, err
		}
		if ok {
			if res.State == search.Failed {
				return res, search.ErrNoTrail
			}
			return res, nil
		}
	}

	opts := append(cfg.SearchOptions(), search.WithContext(ctx))
	res, err := search.Search(g, opts...)
	if res != nil {
		logger.Debug("search finished", zap.Stringer("state", res.State),
			zap.Int("nodes", res.Stats.Nodes), zap.Int("pruned", res.Stats.Pruned),
			zap.Int("backtracks", res.Stats.Backtracks), zap.Duration("elapsed", res.Stats.Elapsed))
	}
	if store == nil || res == nil || (res.State != search.Found && res.State != search.Failed) {
		return res, err
	}

	entry := cache.Entry{Found: res.State == search.Found}
	if entry.Found {
		entry.Edges, entry.Vertices = res.Trail.Edges, res.Trail.Vertices
	}
	if perr := store.Put(key, entry); perr != nil {
		logger.Warn("cache write failed", zap.Error(perr))
	}

	return res, err
}

// cached looks key up in store. A corrupt entry, or a stored trail that is
// not an A-trail of g when verification is on, counts as a miss so that the
// search runs again and overwrites it.
func cached(store *cache.Store, key uint64, g *rotation.Graph) (*search.Result, bool, error) {
	e, ok, err := store.Get(key)
	switch {
	case errors.Is(err, cache.ErrCorrupt):
		logger.Warn("ignoring corrupt cache entry", zap.Uint64("key", key), zap.Error(err))
		return nil, false, nil
	case err != nil:
		return nil, false, ioError(err)
	case !ok:
		return nil, false, nil
	}
	logger.Debug("cache hit", zap.Uint64("key", key), zap.Bool("found", e.Found))
	if !e.Found {
		return &search.Result{State: search.Failed}, true, nil
	}

	trail := search.Trail{Edges: e.Edges, Vertices: e.Vertices}
	if cfg.Search.Verify {
		if err = search.Verify(g, trail); err != nil {
			logger.Warn("ignoring cached trail that does not verify", zap.Uint64("key", key), zap.Error(err))
			return nil, false, nil
		}
	}

	return &search.Result{State: search.Found, Trail: trail}, true, nil
}

// searchBatch searches every input with at most cfg.Jobs searches at a
// time. Each file is independent: a failure is logged and does not stop the
// others. The returned error is the most severe one.
func searchBatch(ctx context.Context, store *cache.Store, inputs []string) error {
	errs := make([]error, len(inputs))
	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(cfg.Jobs)
	for i, in := range inputs {
		i, in := i, in
		eg.Go(func() error {
			errs[i] = searchFile(egCtx, store, in, "", "")
			if errs[i] != nil {
				logger.Warn("search failed", zap.String("file", in), zap.Error(errs[i]))
			}
			return nil
		})
	}
	_ = eg.Wait()

	return worst(errs)
}

// severity orders exit codes from benign to severe.
var severity = map[int]int{
	exitOK:           0,
	exitNoTrail:      1,
	exitAborted:      2,
	exitInvalidInput: 3,
	exitIO:           4,
	exitUsage:        5,
}

// worst returns the first error of the most severe class.
func worst(errs []error) error {
	var out error
	for _, err := range errs {
		if severity[exitCode(err)] > severity[exitCode(out)] {
			out = err
		}
	}

	return out
}
