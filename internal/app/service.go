package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/jpp0ca/SetlistStats-API/internal/catalog"
	"github.com/jpp0ca/SetlistStats-API/internal/domain"
	"github.com/jpp0ca/SetlistStats-API/internal/metrics"
	"github.com/jpp0ca/SetlistStats-API/internal/ports"
	"github.com/jpp0ca/SetlistStats-API/internal/setlist"
	"github.com/jpp0ca/SetlistStats-API/internal/tour"
)

// Options tunes caching and tour assembly.
type Options struct {
	CacheTTL     time.Duration
	CacheKey     string
	TourCacheKey string
	TourName     string
	// MaxPages caps how many artist pages tour assembly reads; <= 0 means no cap.
	MaxPages int
	// Workers is the number of concurrent page fetches.
	Workers int
}

// Service implements ports.SetlistService on top of a setlist source and a
// payload store. Page fetches during tour assembly run on a bounded worker
// pool to respect upstream rate limits.
type Service struct {
	source     ports.SetlistSource
	store      ports.PayloadStore
	catalog    *catalog.Catalog
	tour       *tour.Config
	aggregator *setlist.Aggregator
	opts       Options
	metrics    *metrics.Metrics
	log        zerolog.Logger

	now func() time.Time
}

// NewService wires the service. cat and tourCfg default to the bundled
// reference data when nil.
func NewService(
	source ports.SetlistSource,
	store ports.PayloadStore,
	cat *catalog.Catalog,
	tourCfg *tour.Config,
	opts Options,
	m *metrics.Metrics,
	log zerolog.Logger,
) *Service {
	if cat == nil {
		cat = catalog.Default()
	}
	if tourCfg == nil {
		tourCfg = tour.Default()
	}
	if opts.Workers < 1 {
		opts.Workers = 1
	}
	if opts.TourName == "" {
		opts.TourName = tourCfg.Tour.Name
	}
	return &Service{
		source:     source,
		store:      store,
		catalog:    cat,
		tour:       tourCfg,
		aggregator: setlist.NewAggregator(cat),
		opts:       opts,
		metrics:    m,
		log:        log.With().Str("component", "service").Str("source", source.Name()).Logger(),
		now:        time.Now,
	}
}

// -- Setlists ----------------------------------------------------------------

func (s *Service) ArtistSetlists(ctx context.Context, page int, forceRefresh bool) (*domain.SetlistPage, error) {
	page = max(page, 1)

	var stale *domain.SetlistPage
	if entry := s.lookup(ctx, s.opts.CacheKey); entry != nil && entry.Page == page {
		var cached domain.SetlistPage
		if err := json.Unmarshal(entry.Data, &cached); err != nil {
			s.log.Warn().Err(err).Str("key", s.opts.CacheKey).Msg("discarding undecodable cache entry")
		} else if !forceRefresh && s.fresh(entry) {
			s.metrics.CacheLookup(s.opts.CacheKey, "hit")
			s.log.Debug().Int("page", page).Msg("serving setlists from cache")
			return &cached, nil
		} else {
			stale = &cached
		}
	}
	if !forceRefresh {
		s.metrics.CacheLookup(s.opts.CacheKey, lookupResult(stale != nil))
	}

	resp, err := s.source.ArtistSetlists(ctx, page)
	if err != nil {
		if stale != nil && ctx.Err() == nil {
			s.log.Warn().Err(err).Int("page", page).Msg("fetch failed, serving stale cache")
			return stale, nil
		}
		return nil, fmt.Errorf("failed to fetch setlists page %d: %w", page, err)
	}

	s.save(ctx, s.opts.CacheKey, page, resp)
	return resp, nil
}

func (s *Service) SearchSetlists(ctx context.Context, query domain.SearchQuery) (*domain.SetlistPage, error) {
	resp, err := s.source.SearchSetlists(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("search failed: %w", err)
	}
	return resp, nil
}

// -- Shows -------------------------------------------------------------------

func (s *Service) Show(ctx context.Context, id string) (*domain.Show, error) {
	sl, err := s.source.Setlist(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch show %s: %w", id, err)
	}
	show := setlist.Normalize(*sl)
	return &show, nil
}

func (s *Service) CompareShows(ctx context.Context, id1, id2 string) (*domain.Comparison, error) {
	var show1, show2 *domain.Show

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		show1, err = s.Show(gctx, id1)
		return err
	})
	g.Go(func() error {
		var err error
		show2, err = s.Show(gctx, id2)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	cmp := setlist.Compare(*show1, *show2)
	return &cmp, nil
}

// -- Tour --------------------------------------------------------------------

func (s *Service) TourData(ctx context.Context, forceRefresh bool) (*domain.TourData, error) {
	cached := s.cachedTour(ctx)
	if cached != nil && !forceRefresh && cached.fresh {
		s.metrics.CacheLookup(s.opts.TourCacheKey, "hit")
		return &cached.data, nil
	}
	if !forceRefresh {
		s.metrics.CacheLookup(s.opts.TourCacheKey, lookupResult(cached != nil))
	}

	first, err := s.source.ArtistSetlists(ctx, 1)
	if err != nil {
		if cached != nil && ctx.Err() == nil {
			s.log.Warn().Err(err).Msg("tour fetch failed, serving cached tour data")
			return &cached.data, nil
		}
		return nil, fmt.Errorf("failed to fetch tour setlists: %w", err)
	}

	totalPages := first.TotalPages()
	if s.opts.MaxPages > 0 {
		totalPages = min(totalPages, s.opts.MaxPages)
	}

	setlists := slices.Clone(first.Setlist)
	for _, page := range s.fetchPagesParallel(ctx, 2, totalPages) {
		setlists = append(setlists, page...)
	}

	onTour := make([]domain.Setlist, 0, len(setlists))
	for _, sl := range setlists {
		if sl.TourName() == s.opts.TourName {
			onTour = append(onTour, sl)
		}
	}
	if len(onTour) == 0 {
		if cached != nil {
			s.log.Warn().Str("tour", s.opts.TourName).Msg("no tour shows returned, serving cached tour data")
			return &cached.data, nil
		}
		return nil, fmt.Errorf("%w for tour %q", domain.ErrNoSetlists, s.opts.TourName)
	}

	data := s.tour.Assemble(onTour, s.now())
	s.metrics.SetTourShows(len(data.Shows))
	s.log.Info().
		Int("pages", totalPages).
		Int("fetched", len(setlists)).
		Int("shows", len(data.Shows)).
		Msg("tour data assembled")

	s.save(ctx, s.opts.TourCacheKey, 0, data)
	return &data, nil
}

func (s *Service) TourStats(ctx context.Context, legID *int) (*domain.TourStats, error) {
	data, err := s.TourData(ctx, false)
	if err != nil {
		return nil, err
	}

	shows := data.Shows
	if legID != nil {
		if *legID != 0 && !slices.ContainsFunc(data.Legs, func(l domain.Leg) bool { return l.ID == *legID }) {
			return nil, fmt.Errorf("leg %d: %w", *legID, domain.ErrNotFound)
		}
		shows = tour.ShowsByLeg(shows, *legID)
	}

	stats := s.aggregator.TourStats(domain.TourData{Shows: shows}.Setlists())
	return &stats, nil
}

func (s *Service) Legs() []domain.Leg {
	return slices.Clone(s.tour.Legs)
}

func (s *Service) Albums() []domain.Album {
	return s.catalog.Albums()
}

// fetchPagesParallel fetches pages [from, to] on a worker pool. The result
// holds one slice per page in page order; failed pages are logged and left
// empty so the caller keeps whatever was gathered.
func (s *Service) fetchPagesParallel(ctx context.Context, from, to int) [][]domain.Setlist {
	if to < from {
		return nil
	}
	n := to - from + 1

	type indexedPage struct {
		index    int
		setlists []domain.Setlist
	}

	pageCh := make(chan int, n)
	resultCh := make(chan indexedPage, n)

	var wg sync.WaitGroup
	for i := 0; i < min(s.opts.Workers, n); i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			for page := range pageCh {
				if ctx.Err() != nil {
					resultCh <- indexedPage{index: page - from}
					continue
				}

				resp, err := s.source.ArtistSetlists(ctx, page)
				if err != nil {
					s.log.Warn().Err(err).Int("worker", workerID).Int("page", page).Msg("page fetch failed, keeping partial data")
					resultCh <- indexedPage{index: page - from}
					continue
				}
				s.log.Debug().Int("worker", workerID).Int("page", page).Int("setlists", len(resp.Setlist)).Msg("page fetched")
				resultCh <- indexedPage{index: page - from, setlists: resp.Setlist}
			}
		}(i)
	}

	for page := from; page <= to; page++ {
		pageCh <- page
	}
	close(pageCh)

	go func() {
		wg.Wait()
		close(resultCh)
	}()

	// Collect results preserving page order
	pages := make([][]domain.Setlist, n)
	for ip := range resultCh {
		pages[ip.index] = ip.setlists
	}
	return pages
}

// -- Cache -------------------------------------------------------------------

func (s *Service) CacheInfo(ctx context.Context) []domain.CacheInfo {
	keys := []string{s.opts.CacheKey, s.opts.TourCacheKey}
	infos := make([]domain.CacheInfo, 0, len(keys))
	now := s.now()

	for _, key := range keys {
		info := domain.CacheInfo{Key: key}
		if entry := s.lookup(ctx, key); entry != nil {
			info.Exists = true
			info.Age = humanize.RelTime(entry.Timestamp, now, "ago", "from now")
			info.Valid = s.fresh(entry)
			info.Page = entry.Page
		}
		infos = append(infos, info)
	}
	return infos
}

func (s *Service) ClearCache(ctx context.Context) error {
	var errs []error
	for _, key := range []string{s.opts.CacheKey, s.opts.TourCacheKey} {
		if err := s.store.Delete(ctx, key); err != nil {
			errs = append(errs, err)
		}
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("failed to clear cache: %w", err)
	}
	s.log.Info().Msg("cache cleared")
	return nil
}

type cachedTourData struct {
	data  domain.TourData
	fresh bool
}

func (s *Service) cachedTour(ctx context.Context) *cachedTourData {
	entry := s.lookup(ctx, s.opts.TourCacheKey)
	if entry == nil {
		return nil
	}
	var data domain.TourData
	if err := json.Unmarshal(entry.Data, &data); err != nil {
		s.log.Warn().Err(err).Str("key", s.opts.TourCacheKey).Msg("discarding undecodable cache entry")
		return nil
	}
	return &cachedTourData{data: data, fresh: s.fresh(entry)}
}

// lookup reads a cache entry. Store failures are logged and treated as a miss.
func (s *Service) lookup(ctx context.Context, key string) *domain.CacheEntry {
	entry, err := s.store.Get(ctx, key)
	if errors.Is(err, domain.ErrCacheMiss) {
		return nil
	}
	if err != nil {
		s.metrics.CacheLookup(key, "error")
		s.log.Warn().Err(err).Str("key", key).Msg("cache read failed")
		return nil
	}
	return entry
}

// lookupResult labels a cache read that could not be served as fresh.
func lookupResult(expired bool) string {
	if expired {
		return "stale"
	}
	return "miss"
}

func (s *Service) fresh(entry *domain.CacheEntry) bool {
	return s.now().Sub(entry.Timestamp) < s.opts.CacheTTL
}

// save writes a payload to the cache. Failures are logged, never returned.
func (s *Service) save(ctx context.Context, key string, page int, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("cache encode failed")
		return
	}
	entry := domain.CacheEntry{Data: data, Timestamp: s.now(), Page: page}
	if err := s.store.Set(ctx, key, entry); err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("cache write failed")
	}
}
