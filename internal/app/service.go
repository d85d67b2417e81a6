// Package service provides the core business service that implements
// the dependencies required by the HTTP API and the CLI.
package service

import (
	"context"
	"fmt"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/okian/heropick/internal/adapters/repository"
	"github.com/okian/heropick/internal/domain/catalog"
	"github.com/okian/heropick/internal/domain/memo"
	"github.com/okian/heropick/internal/domain/model"
	"github.com/okian/heropick/internal/domain/ranking"
	"github.com/okian/heropick/internal/domain/roles"
	"github.com/okian/heropick/internal/domain/scoring"
	"github.com/okian/heropick/internal/domain/types"
	"github.com/okian/heropick/pkg/logger"
	"github.com/okian/heropick/pkg/metrics"
)

// state is one loaded data set with the engine built over it. It is never
// mutated after construction.
type state struct {
	ds           catalog.Dataset
	engine       *scoring.Engine
	ranker       *ranking.Ranker
	matchupsFrom string
	loadedAt     time.Time
	generation   uint64
}

// Service owns the data set and answers draft requests.
type Service struct {
	mu    sync.RWMutex
	state *state

	// Data
	catalogPath   string
	poolPath      string
	matchupsPath  string
	dbPath        string
	source        repository.Source
	store         *repository.SQLiteStore
	watch         bool
	watchDebounce time.Duration
	watcher       *repository.Watcher

	// Scoring
	desiredRoles []string
	comfort      model.ComfortTable
	weights      scoring.Weights
	useMatchups  bool
	parallelism  int
	defaultTopN  int
	maxTopN      int

	cacheSize int
	cache     memo.Cache[[]ranking.Candidate]

	// State
	started     bool
	reloadMu    sync.Mutex
	reloads     int
	reloadFails int

	logger logger.Logger
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		catalogPath:  "data/hero_tags.json",
		poolPath:     "config/hero_pool.json",
		matchupsPath: "data/hero_synergy_matchups.json",
		desiredRoles: []string{"Frontliner", "Disabler", "Initiator", "Tower Push", "Wave Clear"},
		comfort:      model.DefaultComfortTable(),
		weights:      scoring.DefaultWeights(),
		useMatchups:  true,
		parallelism:  1,
		defaultTopN:  5,
		maxTopN:      50,
		cacheSize:    1024,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.maxTopN < s.defaultTopN {
		s.maxTopN = s.defaultTopN
	}
	if s.logger == nil {
		s.logger = logger.Get().Named("service")
	}
	s.cache = memo.New[[]ranking.Candidate](memo.WithMaxSize(s.cacheSize))
	return s
}

// Start loads the data set and, when enabled, starts watching the data files.
func (s *Service) Start(ctx context.Context) error {
	s.mu.RLock()
	started := s.started
	s.mu.RUnlock()
	if started {
		return nil
	}

	s.logger.Info(ctx, "starting draft service...")

	if s.source == nil {
		var opts []repository.Option
		if s.dbPath != "" {
			store, err := repository.OpenSQLite(ctx, s.dbPath)
			if err != nil {
				return err
			}
			s.store = store
			opts = append(opts, repository.WithSnapshotStore(store))
		}
		s.source = repository.NewFileSource(s.catalogPath, s.poolPath, s.matchupsPath, opts...)
	}

	if err := s.Reload(ctx); err != nil {
		s.closeStore()
		return err
	}

	if s.watch {
		if err := s.startWatcher(ctx); err != nil {
			s.closeStore()
			return err
		}
	}

	s.mu.Lock()
	s.started = true
	s.mu.Unlock()

	s.logger.Info(ctx, "draft service started",
		logger.Strings("desired_roles", s.desiredRoles),
		logger.Int("parallelism", s.parallelism),
		logger.Int("cache_size", s.cacheSize),
		logger.Bool("watch", s.watch),
	)
	return nil
}

func (s *Service) startWatcher(ctx context.Context) error {
	pathed, ok := s.source.(interface{ Paths() []string })
	if !ok {
		s.logger.Warn(ctx, "data source has no files to watch")
		return nil
	}
	var opts []repository.WatchOption
	if s.watchDebounce > 0 {
		opts = append(opts, repository.WithDebounce(s.watchDebounce))
	}
	s.watcher = repository.NewWatcher(pathed.Paths(),
		func(ctx context.Context) {
			if err := s.Reload(ctx); err != nil {
				s.logger.Error(ctx, "reload after file change failed", logger.Error(err))
			}
		},
		func(err error) {
			s.logger.Warn(context.Background(), "file watcher error", logger.Error(err))
		},
		opts...,
	)
	return s.watcher.Start(ctx)
}

// Stop stops the watcher and closes the snapshot store.
func (s *Service) Stop() {
	s.mu.Lock()
	if !s.started {
		s.mu.Unlock()
		return
	}
	s.started = false
	s.mu.Unlock()

	ctx := context.Background()
	s.logger.Info(ctx, "stopping draft service...")
	if s.watcher != nil {
		if err := s.watcher.Stop(); err != nil {
			s.logger.Warn(ctx, "error stopping file watcher", logger.Error(err))
		}
	}
	s.closeStore()
	s.logger.Info(ctx, "draft service stopped")
}

func (s *Service) closeStore() {
	if s.store != nil {
		if err := s.store.Close(); err != nil {
			s.logger.Warn(context.Background(), "error closing snapshot store", logger.Error(err))
		}
	}
}

// Reload reads the data set again and swaps it in. On failure the previous
// data set stays active.
func (s *Service) Reload(ctx context.Context) error {
	s.reloadMu.Lock()
	defer s.reloadMu.Unlock()

	start := time.Now()
	st, err := s.build(ctx)
	elapsed := float64(time.Since(start).Milliseconds())
	if err != nil {
		s.reloadFails++
		metrics.RecordDataReload(metrics.ResultError, elapsed, 0)
		return fmt.Errorf("failed to load data: %w", err)
	}

	s.mu.Lock()
	if s.state != nil {
		st.generation = s.state.generation + 1
	}
	s.state = st
	s.mu.Unlock()
	s.cache.Purge()
	s.reloads++

	metrics.RecordDataReload(metrics.ResultOK, elapsed, st.loadedAt.Unix())
	metrics.UpdateDataSize(st.ds.Catalog.Len(), st.ds.Pool.Len(), st.ds.Matchups.Len())
	s.logger.Info(ctx, "data set loaded",
		logger.Int("heroes", st.ds.Catalog.Len()),
		logger.Int("pool", st.ds.Pool.Len()),
		logger.Int("matchups", st.ds.Matchups.Len()),
		logger.String("matchups_from", st.matchupsFrom),
		logger.Bool("uses_matchups", st.engine.UsesMatchups()),
	)
	return nil
}

func (s *Service) build(ctx context.Context) (*state, error) {
	snap, err := s.source.Load(ctx)
	if err != nil {
		return nil, err
	}
	engine, err := scoring.New(snap.Dataset,
		scoring.WithWeights(s.weights),
		scoring.WithComfortTable(s.comfort),
		scoring.WithMatchups(s.useMatchups && snap.Matchups.Len() > 0),
	)
	if err != nil {
		return nil, err
	}
	ranker, err := ranking.New(snap.Dataset, engine, ranking.WithParallelism(s.parallelism))
	if err != nil {
		return nil, err
	}
	return &state{
		ds:           snap.Dataset,
		engine:       engine,
		ranker:       ranker,
		matchupsFrom: snap.MatchupsFrom,
		loadedAt:     time.Now(),
	}, nil
}

func (s *Service) current() (*state, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state == nil {
		return nil, ErrNotReady
	}
	return s.state, nil
}

// DesiredRoles returns the configured default role list.
func (s *Service) DesiredRoles() []string {
	return append([]string(nil), s.desiredRoles...)
}

// Limits returns the default and maximum number of suggestions.
func (s *Service) Limits() (def, maxN int) {
	return s.defaultTopN, s.maxTopN
}

// Recommend ranks the pool for a draft and assembles the report.
func (s *Service) Recommend(ctx context.Context, req types.Request) (types.Report, error) {
	start := time.Now()
	report, err := s.recommend(ctx, req)
	metrics.RecordRecommendationLatency(float64(time.Since(start).Milliseconds()))
	switch {
	case err != nil:
		metrics.RecordRecommendation(metrics.ResultError)
	case report.Cached:
		metrics.RecordRecommendation(metrics.ResultCached)
	default:
		metrics.RecordRecommendation(metrics.ResultOK)
	}
	return report, err
}

func (s *Service) recommend(ctx context.Context, req types.Request) (types.Report, error) {
	st, err := s.current()
	if err != nil {
		return types.Report{}, err
	}
	if req.Limit < 0 {
		return types.Report{}, ErrInvalidLimit
	}
	limit := req.Limit
	if limit == 0 {
		limit = s.defaultTopN
	}
	limit = min(limit, s.maxTopN)

	team := clean(req.Team)
	enemy := clean(req.Enemy)
	desired := clean(req.Roles)
	if len(desired) == 0 {
		desired = s.desiredRoles
	}

	key := fmt.Sprintf("%d#%s", st.generation, memo.Key(team, enemy, desired))
	cands, cached := s.cache.Get(ctx, key)
	if cached {
		metrics.RecordCacheHit()
	} else {
		metrics.RecordCacheMiss()
		cands, err = st.ranker.Rank(ctx, team, enemy, desired)
		if err != nil {
			return types.Report{}, err
		}
		metrics.RecordCandidatesScored(len(cands))
		s.cache.Put(ctx, key, cands)
	}

	cat := st.ds.Catalog
	missing := st.ranker.Missing(team, desired)
	excluded := make(map[string]struct{}, len(team)+len(enemy))
	for _, h := range team {
		excluded[h] = struct{}{}
	}
	for _, h := range enemy {
		excluded[h] = struct{}{}
	}

	return types.Report{
		Team:         team,
		Enemy:        enemy,
		DesiredRoles: desired,
		MissingRoles: missing,
		TeamAttack:   roles.CountAttackTypes(cat, team),
		TeamTags:     roles.SortedTagCounts(roles.Tally(cat, team)),
		EnemyTags:    roles.SortedTagCounts(roles.Tally(cat, enemy)),
		RoleFillers:  roles.HeroesFillingRoles(cat, st.ds.Pool.Names(), missing, excluded),
		Suggestions:  types.Suggestions(cands, limit),
		Considered:   len(cands),
		Cached:       cached,
	}, nil
}

// clean trims names and drops empty ones. A nil input yields an empty slice.
func clean(names []string) []string {
	out := make([]string, 0, len(names))
	for _, n := range names {
		if n = strings.TrimSpace(n); n != "" {
			out = append(out, n)
		}
	}
	return out
}

// Heroes lists the catalog in file order.
func (s *Service) Heroes(_ context.Context) ([]types.HeroView, error) {
	st, err := s.current()
	if err != nil {
		return nil, err
	}
	heroes := st.ds.Catalog.Heroes()
	out := make([]types.HeroView, len(heroes))
	for i, h := range heroes {
		out[i] = types.HeroView{Name: h.Name, Tags: h.Tags, AttackType: string(h.AttackType())}
	}
	return out, nil
}

// Pool lists the comfort pool in file order with resolved multipliers.
func (s *Service) Pool(_ context.Context) ([]types.PoolView, error) {
	st, err := s.current()
	if err != nil {
		return nil, err
	}
	entries := st.ds.Pool.Entries()
	out := make([]types.PoolView, len(entries))
	for i, e := range entries {
		out[i] = types.PoolView{Hero: e.Hero, Comfort: string(e.Comfort), Multiplier: s.comfort.Multiplier(e.Comfort)}
	}
	return out, nil
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]any {
	s.mu.RLock()
	st := s.state
	started := s.started
	s.mu.RUnlock()

	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)
	goroutines := runtime.NumGoroutine()
	metrics.UpdateSystemMemoryUsage(mem.Alloc)
	metrics.UpdateSystemGoroutineCount(goroutines)

	s.reloadMu.Lock()
	reloads, fails := s.reloads, s.reloadFails
	s.reloadMu.Unlock()

	stats := map[string]any{
		"started":       started,
		"desired_roles": s.desiredRoles,
		"parallelism":   s.parallelism,
		"cache_entries": s.cache.Size(),
		"reloads":       reloads,
		"reload_errors": fails,
		"goroutines":    goroutines,
		"memory_bytes":  mem.Alloc,
	}
	if st != nil {
		stats["heroes"] = st.ds.Catalog.Len()
		stats["pool"] = st.ds.Pool.Len()
		stats["matchups"] = st.ds.Matchups.Len()
		stats["matchups_from"] = st.matchupsFrom
		stats["uses_matchups"] = st.engine.UsesMatchups()
		stats["loaded_at"] = st.loadedAt.UTC().Format(time.RFC3339)
	}
	return stats
}
