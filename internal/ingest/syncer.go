// Package ingest refreshes the hero catalog and the matchup table from the
// statistics provider.
package ingest

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/okian/heropick/internal/adapters/mq/queue"
	"github.com/okian/heropick/internal/adapters/mq/worker"
	"github.com/okian/heropick/internal/adapters/repository"
	"github.com/okian/heropick/internal/adapters/stratz"
	"github.com/okian/heropick/internal/domain/model"
	"github.com/okian/heropick/internal/domain/scoring"
	"github.com/okian/heropick/pkg/logger"
	"github.com/okian/heropick/pkg/metrics"
)

const (
	defaultCatalogPath  = "data/hero_tags.json"
	defaultPoolPath     = "config/hero_pool.json"
	defaultMatchupsPath = "data/hero_synergy_matchups.json"
	defaultWorkers      = 2
	defaultQueueSize    = 256
	valuePlaces         = 1
)

// Provider is the subset of the statistics client the syncer needs.
type Provider interface {
	FetchHeroes(ctx context.Context) ([]stratz.HeroInfo, error)
	FetchMatchups(ctx context.Context, heroID int) (stratz.RawMatchups, error)
}

// Result summarises one run.
type Result struct {
	RunID    string        `json:"run_id"`
	Heroes   int           `json:"heroes"`
	Jobs     int           `json:"jobs"`
	Fetched  int           `json:"fetched"`
	Failed   int           `json:"failed"`
	Skipped  []string      `json:"skipped"`
	Duration time.Duration `json:"duration"`
}

// Syncer runs the refresh.
type Syncer struct {
	provider     Provider
	catalogPath  string
	poolPath     string
	matchupsPath string
	store        *repository.SQLiteStore
	workers      int
	queueSize    int
	logger       logger.Logger
}

// New creates a syncer over provider.
func New(provider Provider, opts ...Option) (*Syncer, error) {
	if provider == nil {
		return nil, ErrNoProvider
	}
	s := &Syncer{
		provider:     provider,
		catalogPath:  defaultCatalogPath,
		poolPath:     defaultPoolPath,
		matchupsPath: defaultMatchupsPath,
		workers:      defaultWorkers,
		queueSize:    defaultQueueSize,
		logger:       logger.Get().Named("ingest"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Run fetches hero constants, rewrites the catalog keeping custom tags, then
// fetches matchups for every pool hero and rewrites the matchup table. Heroes
// whose fetch fails keep their previous record.
func (s *Syncer) Run(ctx context.Context) (Result, error) {
	start := time.Now()
	res := Result{RunID: uuid.NewString(), Skipped: []string{}}
	log := s.logger.With(logger.String("run_id", res.RunID))

	heroes, err := s.provider.FetchHeroes(ctx)
	if err != nil {
		return res, err
	}
	if len(heroes) == 0 {
		return res, ErrNoHeroes
	}
	res.Heroes = len(heroes)

	entries, err := s.mergeCatalog(heroes)
	if err != nil {
		return res, err
	}
	if err := repository.SaveCatalog(s.catalogPath, entries); err != nil {
		return res, err
	}
	if s.store != nil {
		if err := s.store.SaveCatalog(ctx, entries); err != nil {
			return res, err
		}
	}
	log.Info(ctx, "catalog written", logger.Int("heroes", len(entries)), logger.String("path", s.catalogPath))

	pool, err := repository.LoadPool(s.poolPath)
	if err != nil {
		return res, err
	}

	ids := make(map[string]int, len(heroes))
	names := make(map[int]string, len(heroes))
	for _, h := range heroes {
		ids[h.DisplayName] = h.ID
		names[h.ID] = h.DisplayName
	}

	var jobs []model.FetchJob
	for _, name := range pool.Names() {
		id, ok := ids[name]
		if !ok {
			log.Warn(ctx, "skipping unknown hero", logger.String("hero", name))
			metrics.RecordSyncJob(metrics.ResultSkipped)
			res.Skipped = append(res.Skipped, name)
			continue
		}
		jobs = append(jobs, model.FetchJob{RunID: res.RunID, Hero: name, HeroID: id})
	}
	res.Jobs = len(jobs)

	records, err := s.previousMatchups()
	if err != nil {
		return res, err
	}

	fetched, failed, err := s.fetchAll(ctx, jobs, names, records)
	res.Fetched, res.Failed = fetched, failed
	if err != nil {
		return res, err
	}

	if err := repository.SaveMatchups(s.matchupsPath, records); err != nil {
		return res, err
	}
	if s.store != nil {
		if err := s.store.SaveMatchups(ctx, records); err != nil {
			return res, err
		}
	}

	res.Duration = time.Since(start)
	log.Info(ctx, "sync finished",
		logger.Int("jobs", res.Jobs),
		logger.Int("fetched", res.Fetched),
		logger.Int("failed", res.Failed),
		logger.Strings("skipped", res.Skipped),
		logger.Duration("duration", res.Duration),
	)
	return res, nil
}

// mergeCatalog builds catalog entries in provider order. Custom tags of
// existing entries survive, and heroes only present locally are kept at the
// end.
func (s *Syncer) mergeCatalog(heroes []stratz.HeroInfo) ([]repository.CatalogEntry, error) {
	existing, err := repository.LoadCatalogEntries(s.catalogPath)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}
	custom := make(map[string][]string, len(existing))
	for _, e := range existing {
		custom[e.Name] = e.CustomTags
	}

	seen := make(map[string]struct{}, len(heroes))
	out := make([]repository.CatalogEntry, 0, len(heroes))
	for _, h := range heroes {
		if _, dup := seen[h.DisplayName]; dup {
			continue
		}
		seen[h.DisplayName] = struct{}{}
		tags := append([]string{}, h.Roles...)
		if h.AttackType != "" {
			tags = append(tags, h.AttackType)
		}
		out = append(out, repository.CatalogEntry{
			Name:       h.DisplayName,
			StratzTags: tags,
			CustomTags: custom[h.DisplayName],
		})
	}
	for _, e := range existing {
		if _, ok := seen[e.Name]; !ok {
			out = append(out, e)
		}
	}
	return out, nil
}

func (s *Syncer) previousMatchups() (map[string]model.MatchupRecord, error) {
	records, err := repository.LoadMatchupRecords(s.matchupsPath)
	switch {
	case err == nil:
		return records, nil
	case errors.Is(err, fs.ErrNotExist):
		return make(map[string]model.MatchupRecord), nil
	default:
		return nil, err
	}
}

// fetchAll runs the jobs through the worker pool and writes every fetched
// record into records.
func (s *Syncer) fetchAll(ctx context.Context, jobs []model.FetchJob, names map[int]string, records map[string]model.MatchupRecord) (int, int, error) {
	if len(jobs) == 0 {
		return 0, 0, nil
	}

	q := queue.NewInMemoryQueue(queue.WithCapacity(max(s.queueSize, len(jobs))))
	var mu sync.Mutex
	handler := worker.HandlerFunc(func(ctx context.Context, j worker.Job) error {
		raw, err := s.provider.FetchMatchups(ctx, j.HeroID)
		if err != nil {
			return err
		}
		rec := ToRecord(raw, names)
		mu.Lock()
		records[j.Hero] = rec
		mu.Unlock()
		return nil
	})
	pool := worker.NewPool(s.workers, q, handler, worker.WithPoolLogger(s.logger))
	pool.Start(ctx)

	for _, j := range jobs {
		if err := q.Enqueue(ctx, j); err != nil {
			_ = pool.Shutdown(context.WithoutCancel(ctx))
			return 0, 0, fmt.Errorf("enqueue %s: %w", j.Hero, err)
		}
	}
	if err := pool.Drain(ctx); err != nil {
		return int(pool.Processed()), int(pool.Failed()), err
	}
	return int(pool.Processed()), int(pool.Failed()), nil
}

// ToRecord converts provider matchups into a record keyed by hero name.
// Entries whose id has no known name are dropped; values are rounded to one
// decimal.
func ToRecord(raw stratz.RawMatchups, names map[int]string) model.MatchupRecord {
	rec := model.MatchupRecord{
		Synergy:      map[string]float64{},
		Counters:     map[string]float64{},
		CounteredBy:  map[string]float64{},
		WorstSynergy: map[string]float64{},
	}
	fill := func(dst map[string]float64, pairs []stratz.Pair) {
		for _, p := range pairs {
			if name, ok := names[p.HeroID2]; ok {
				dst[name] = scoring.Round(p.Synergy, valuePlaces)
			}
		}
	}
	fill(rec.Synergy, raw.Advantage.With)
	fill(rec.Counters, raw.Advantage.Vs)
	fill(rec.CounteredBy, raw.Disadvantage.Vs)
	fill(rec.WorstSynergy, raw.Disadvantage.With)
	return rec
}
