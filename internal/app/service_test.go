package app

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jpp0ca/SetlistStats-API/internal/adapters/store"
	"github.com/jpp0ca/SetlistStats-API/internal/domain"
	"github.com/jpp0ca/SetlistStats-API/internal/metrics"
	"github.com/jpp0ca/SetlistStats-API/internal/tour"
)

const tourName = "From Zero World Tour"

// -- Mock source -------------------------------------------------------------

type mockSource struct {
	mu        sync.Mutex
	pages     map[int]*domain.SetlistPage
	pageErrs  map[int]error
	setlists  map[string]domain.Setlist
	pageCalls map[int]int
}

func newMockSource() *mockSource {
	return &mockSource{
		pages:     map[int]*domain.SetlistPage{},
		pageErrs:  map[int]error{},
		setlists:  map[string]domain.Setlist{},
		pageCalls: map[int]int{},
	}
}

func (m *mockSource) Name() string { return "mock" }

func (m *mockSource) ArtistSetlists(_ context.Context, page int) (*domain.SetlistPage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pageCalls[page]++

	if err, ok := m.pageErrs[page]; ok {
		return nil, err
	}
	if p, ok := m.pages[page]; ok {
		return p, nil
	}
	return nil, domain.ErrNotFound
}

func (m *mockSource) Setlist(_ context.Context, id string) (*domain.Setlist, error) {
	sl, ok := m.setlists[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &sl, nil
}

func (m *mockSource) SearchSetlists(_ context.Context, q domain.SearchQuery) (*domain.SetlistPage, error) {
	return &domain.SetlistPage{Page: q.Page, Setlist: []domain.Setlist{}}, nil
}

func (m *mockSource) calls(page int) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.pageCalls[page]
}

func (m *mockSource) setPage(n int, p *domain.SetlistPage) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pages[n] = p
}

func (m *mockSource) failPage(page int, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pageErrs[page] = err
}

// failingStore fails every operation.
type failingStore struct{}

func (failingStore) Get(context.Context, string) (*domain.CacheEntry, error) {
	return nil, errors.New("store down")
}
func (failingStore) Set(context.Context, string, domain.CacheEntry) error {
	return errors.New("store down")
}
func (failingStore) Delete(context.Context, string) error { return errors.New("store down") }

// -- Helpers -----------------------------------------------------------------

func played(id, date, tourLabel string, titles ...string) domain.Setlist {
	songs := make([]domain.Song, 0, len(titles))
	for _, title := range titles {
		songs = append(songs, domain.Song{Name: title})
	}
	sl := domain.Setlist{
		ID:        id,
		EventDate: date,
		Venue:     domain.Venue{Name: "Venue " + id, City: domain.City{Name: "City " + id, Country: domain.Country{Code: "US", Name: "United States"}}},
		Sets:      domain.Sets{Set: []domain.Set{{Songs: songs}}},
	}
	if tourLabel != "" {
		sl.Tour = &domain.Tour{Name: tourLabel}
	}
	return sl
}

func page(n, total int, setlists ...domain.Setlist) *domain.SetlistPage {
	return &domain.SetlistPage{ItemsPerPage: 2, Page: n, Total: total, Setlist: setlists}
}

type clock struct{ t time.Time }

func (c *clock) now() time.Time          { return c.t }
func (c *clock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestService(t *testing.T, src *mockSource, opts Options) (*Service, *clock) {
	t.Helper()
	if opts.CacheTTL == 0 {
		opts.CacheTTL = 24 * time.Hour
	}
	if opts.CacheKey == "" {
		opts.CacheKey = "lp-setlists-cache"
	}
	if opts.TourCacheKey == "" {
		opts.TourCacheKey = "fromZeroTourData"
	}
	if opts.TourName == "" {
		opts.TourName = tourName
	}

	c := &clock{t: time.Date(2025, 7, 1, 12, 0, 0, 0, time.UTC)}
	svc := NewService(src, store.NewMemory(), nil, tour.Default(), opts, nil, zerolog.Nop())
	svc.now = c.now
	return svc, c
}

// tourSource serves three pages of two setlists; one setlist is off tour.
func tourSource() *mockSource {
	src := newMockSource()
	src.pages[1] = page(1, 6,
		played("a", "21-06-2025", tourName, "Heavy Is the Crown", "Numb"),
		played("b", "18-06-2025", tourName, "Numb", "Faint"),
	)
	src.pages[2] = page(2, 6,
		played("c", "15-06-2025", "", "Numb"),
		played("d", "11-11-2024", tourName, "Numb", "In the End"),
	)
	src.pages[3] = page(3, 6,
		played("e", "05-09-2024", tourName, "Numb", "Papercut"),
		played("f", "01-01-2020", tourName, "Numb"),
	)
	return src
}

func showIDs(data *domain.TourData) []string {
	ids := make([]string, 0, len(data.Shows))
	for _, s := range data.Shows {
		ids = append(ids, s.ID)
	}
	return ids
}

// -- ArtistSetlists ----------------------------------------------------------

func TestArtistSetlists_CachesPerPage(t *testing.T) {
	src := tourSource()
	svc, clk := newTestService(t, src, Options{})
	ctx := context.Background()

	first, err := svc.ArtistSetlists(ctx, 1, false)
	require.NoError(t, err)
	assert.Len(t, first.Setlist, 2)

	_, err = svc.ArtistSetlists(ctx, 1, false)
	require.NoError(t, err)
	assert.Equal(t, 1, src.calls(1), "second read should hit the cache")

	// a different page is not served from the cache
	_, err = svc.ArtistSetlists(ctx, 2, false)
	require.NoError(t, err)
	assert.Equal(t, 1, src.calls(2))

	// the cache now holds page 2, so page 1 is fetched again
	_, err = svc.ArtistSetlists(ctx, 1, false)
	require.NoError(t, err)
	assert.Equal(t, 2, src.calls(1))

	// expired entries are refetched
	clk.advance(24 * time.Hour)
	_, err = svc.ArtistSetlists(ctx, 1, false)
	require.NoError(t, err)
	assert.Equal(t, 3, src.calls(1))
}

func TestArtistSetlists_ForceRefresh(t *testing.T) {
	src := tourSource()
	svc, clk := newTestService(t, src, Options{})
	ctx := context.Background()

	_, err := svc.ArtistSetlists(ctx, 1, false)
	require.NoError(t, err)

	clk.advance(time.Hour)
	_, err = svc.ArtistSetlists(ctx, 1, true)
	require.NoError(t, err)
	assert.Equal(t, 2, src.calls(1))

	// the forced fetch rewrote the entry
	info := svc.CacheInfo(ctx)
	require.Len(t, info, 2)
	assert.True(t, info[0].Exists)
	assert.True(t, info[0].Valid)
	assert.Equal(t, "now", info[0].Age)
	assert.Equal(t, 1, info[0].Page)
}

func TestArtistSetlists_ServesStaleOnError(t *testing.T) {
	src := tourSource()
	svc, clk := newTestService(t, src, Options{})
	ctx := context.Background()

	_, err := svc.ArtistSetlists(ctx, 1, false)
	require.NoError(t, err)

	clk.advance(48 * time.Hour)
	src.failPage(1, domain.ErrUpstream)

	resp, err := svc.ArtistSetlists(ctx, 1, false)
	require.NoError(t, err)
	assert.Len(t, resp.Setlist, 2)
}

func TestArtistSetlists_Error(t *testing.T) {
	src := newMockSource()
	src.failPage(1, domain.ErrUpstream)
	svc, _ := newTestService(t, src, Options{})

	_, err := svc.ArtistSetlists(context.Background(), 0, false)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUpstream)
}

func TestArtistSetlists_StoreFailureIsNotFatal(t *testing.T) {
	src := tourSource()
	svc := NewService(src, failingStore{}, nil, nil, Options{CacheTTL: time.Hour, CacheKey: "k", TourCacheKey: "t"}, nil, zerolog.Nop())

	resp, err := svc.ArtistSetlists(context.Background(), 1, false)
	require.NoError(t, err)
	assert.Len(t, resp.Setlist, 2)

	assert.Error(t, svc.ClearCache(context.Background()))
}

// -- Shows -------------------------------------------------------------------

func TestShow(t *testing.T) {
	src := newMockSource()
	src.setlists["a"] = played("a", "21-06-2025", tourName, "Numb", "Faint")
	svc, _ := newTestService(t, src, Options{})

	show, err := svc.Show(context.Background(), "a")
	require.NoError(t, err)
	assert.Equal(t, "Jun 21, 2025", show.Date)
	assert.Equal(t, 2, show.Setlist.TotalSongs)

	_, err = svc.Show(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCompareShows(t *testing.T) {
	src := newMockSource()
	src.setlists["a"] = played("a", "21-06-2025", tourName, "Numb", "Faint", "Papercut")
	src.setlists["b"] = played("b", "18-06-2025", tourName, "Numb", "In the End")
	svc, _ := newTestService(t, src, Options{})

	cmp, err := svc.CompareShows(context.Background(), "a", "b")
	require.NoError(t, err)
	assert.Equal(t, 1, cmp.Stats.SharedCount)
	assert.Equal(t, 33, cmp.Stats.SimilarityPercent)
	assert.Equal(t, 3, cmp.Stats.UniqueCount)
	assert.Equal(t, domain.SongStatusShared, cmp.Show2.Setlist.Songs[0].Status)

	_, err = svc.CompareShows(context.Background(), "a", "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// -- Tour --------------------------------------------------------------------

func TestTourData_AllPages(t *testing.T) {
	src := tourSource()
	svc, _ := newTestService(t, src, Options{Workers: 3})

	data, err := svc.TourData(context.Background(), false)
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "b", "d", "e", "f"}, showIDs(data))
	assert.Equal(t, 5, data.Tour.TotalShows)
	assert.NotEmpty(t, data.Legs)

	// a show outside every leg is tagged unknown
	last := data.Shows[len(data.Shows)-1]
	assert.Equal(t, 0, last.LegID)
	assert.Equal(t, "Unknown", last.LegName)

	for p := 1; p <= 3; p++ {
		assert.Equal(t, 1, src.calls(p), "page %d", p)
	}
}

func TestTourData_Cached(t *testing.T) {
	src := tourSource()
	svc, _ := newTestService(t, src, Options{Workers: 2})
	ctx := context.Background()

	_, err := svc.TourData(ctx, false)
	require.NoError(t, err)
	data, err := svc.TourData(ctx, false)
	require.NoError(t, err)

	assert.Len(t, data.Shows, 5)
	assert.Equal(t, 1, src.calls(1))

	_, err = svc.TourData(ctx, true)
	require.NoError(t, err)
	assert.Equal(t, 2, src.calls(1))
}

func TestTourData_MaxPages(t *testing.T) {
	src := tourSource()
	svc, _ := newTestService(t, src, Options{MaxPages: 2, Workers: 2})

	data, err := svc.TourData(context.Background(), false)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "d"}, showIDs(data))
	assert.Zero(t, src.calls(3))
}

func TestTourData_PartialPages(t *testing.T) {
	src := tourSource()
	src.failPage(2, fmt.Errorf("%w: status 503", domain.ErrUpstream))
	svc, _ := newTestService(t, src, Options{Workers: 2})

	data, err := svc.TourData(context.Background(), false)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "e", "f"}, showIDs(data))
}

func TestTourData_FirstPageFailsFallsBackToExpiredCache(t *testing.T) {
	src := tourSource()
	svc, clk := newTestService(t, src, Options{Workers: 2})
	ctx := context.Background()

	_, err := svc.TourData(ctx, false)
	require.NoError(t, err)

	clk.advance(72 * time.Hour)
	src.failPage(1, domain.ErrUpstream)

	data, err := svc.TourData(ctx, false)
	require.NoError(t, err)
	assert.Len(t, data.Shows, 5)
}

func TestTourData_FirstPageFailsWithoutCache(t *testing.T) {
	src := newMockSource()
	src.failPage(1, domain.ErrUpstream)
	svc, _ := newTestService(t, src, Options{})

	_, err := svc.TourData(context.Background(), false)
	assert.ErrorIs(t, err, domain.ErrUpstream)
}

func TestTourData_NoTourShows(t *testing.T) {
	src := newMockSource()
	src.pages[1] = page(1, 1, played("x", "01-01-2025", "Other Tour", "Numb"))
	svc, _ := newTestService(t, src, Options{})

	_, err := svc.TourData(context.Background(), false)
	assert.ErrorIs(t, err, domain.ErrNoSetlists)
}

func TestTourData_NoTourShowsFallsBackToCache(t *testing.T) {
	src := tourSource()
	svc, clk := newTestService(t, src, Options{Workers: 2})
	ctx := context.Background()

	_, err := svc.TourData(ctx, false)
	require.NoError(t, err)

	clk.advance(72 * time.Hour)
	src.setPage(1, page(1, 1, played("x", "01-01-2026", "Other Tour", "Numb")))

	data, err := svc.TourData(ctx, false)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "d", "e", "f"}, showIDs(data))
}

func TestCacheLookupMetrics(t *testing.T) {
	src := tourSource()
	m := metrics.New(prometheus.NewRegistry())
	svc := NewService(src, store.NewMemory(), nil, tour.Default(), Options{
		CacheTTL: time.Hour, CacheKey: "pages", TourCacheKey: "tour", TourName: tourName,
	}, m, zerolog.Nop())
	clk := &clock{t: time.Date(2025, 7, 1, 12, 0, 0, 0, time.UTC)}
	svc.now = clk.now
	ctx := context.Background()

	_, err := svc.ArtistSetlists(ctx, 1, false)
	require.NoError(t, err)
	_, err = svc.ArtistSetlists(ctx, 1, false)
	require.NoError(t, err)
	clk.advance(2 * time.Hour)
	_, err = svc.ArtistSetlists(ctx, 1, false)
	require.NoError(t, err)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.CacheLookups.WithLabelValues("pages", "miss")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CacheLookups.WithLabelValues("pages", "hit")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CacheLookups.WithLabelValues("pages", "stale")))

	_, err = svc.TourData(ctx, false)
	require.NoError(t, err)
	clk.advance(2 * time.Hour)
	_, err = svc.TourData(ctx, false)
	require.NoError(t, err)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.CacheLookups.WithLabelValues("tour", "miss")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CacheLookups.WithLabelValues("tour", "stale")))
}

func TestTourStats(t *testing.T) {
	src := tourSource()
	svc, _ := newTestService(t, src, Options{Workers: 3})
	ctx := context.Background()

	stats, err := svc.TourStats(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, 5, stats.TotalShows)
	require.NotEmpty(t, stats.AllSongs)
	assert.Equal(t, "Numb", stats.AllSongs[0].Title)
	assert.Equal(t, 5, stats.AllSongs[0].TimesPlayed)
	assert.Equal(t, domain.CategoryStaple, stats.AllSongs[0].Category)

	unknown := 0
	legStats, err := svc.TourStats(ctx, &unknown)
	require.NoError(t, err)
	assert.Equal(t, 1, legStats.TotalShows)

	missing := 99
	_, err = svc.TourStats(ctx, &missing)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTourStats_PerLeg(t *testing.T) {
	src := tourSource()
	svc, _ := newTestService(t, src, Options{Workers: 3})
	ctx := context.Background()

	data, err := svc.TourData(ctx, false)
	require.NoError(t, err)

	total := 0
	for _, leg := range svc.Legs() {
		id := leg.ID
		stats, err := svc.TourStats(ctx, &id)
		require.NoError(t, err)
		assert.Equal(t, len(tour.ShowsByLeg(data.Shows, id)), stats.TotalShows)
		total += stats.TotalShows
	}
	assert.Equal(t, 4, total, "every dated show except the 2020 one falls in a leg")
}

// -- Cache -------------------------------------------------------------------

func TestCacheInfoAndClear(t *testing.T) {
	src := tourSource()
	svc, clk := newTestService(t, src, Options{Workers: 2})
	ctx := context.Background()

	info := svc.CacheInfo(ctx)
	require.Len(t, info, 2)
	assert.False(t, info[0].Exists)
	assert.False(t, info[1].Exists)

	_, err := svc.TourData(ctx, false)
	require.NoError(t, err)
	clk.advance(3 * time.Hour)

	info = svc.CacheInfo(ctx)
	assert.Equal(t, "fromZeroTourData", info[1].Key)
	assert.True(t, info[1].Exists)
	assert.True(t, info[1].Valid)
	assert.Equal(t, "3 hours ago", info[1].Age)

	clk.advance(24 * time.Hour)
	info = svc.CacheInfo(ctx)
	assert.False(t, info[1].Valid)

	require.NoError(t, svc.ClearCache(ctx))
	info = svc.CacheInfo(ctx)
	assert.False(t, info[0].Exists)
	assert.False(t, info[1].Exists)
}

func TestAlbumsAndLegs(t *testing.T) {
	svc, _ := newTestService(t, newMockSource(), Options{})

	assert.NotEmpty(t, svc.Albums())
	legs := svc.Legs()
	require.NotEmpty(t, legs)
	legs[0].Name = "mutated"
	assert.NotEqual(t, "mutated", svc.Legs()[0].Name)
}
