package ports

import (
	"context"

	"github.com/jpp0ca/SetlistStats-API/internal/domain"
)

// SetlistSource defines the contract every setlist data adapter must
// implement, whether it talks to the setlist.fm API or serves a bundled
// dataset. This is the primary driven port of the hexagonal architecture.
type SetlistSource interface {
	// ArtistSetlists returns one page (1-based) of the configured artist's
	// setlists, newest first as the upstream orders them.
	ArtistSetlists(ctx context.Context, page int) (*domain.SetlistPage, error)

	// Setlist returns a single setlist by id. Unknown ids yield domain.ErrNotFound.
	Setlist(ctx context.Context, id string) (*domain.Setlist, error)

	// SearchSetlists runs a filtered setlist search.
	SearchSetlists(ctx context.Context, query domain.SearchQuery) (*domain.SetlistPage, error)

	// Name returns the source identifier (e.g., "setlistfm", "static").
	Name() string
}

// PayloadStore is a key/value store for fetched payloads. Get returns
// domain.ErrCacheMiss when the key is absent.
type PayloadStore interface {
	Get(ctx context.Context, key string) (*domain.CacheEntry, error)
	Set(ctx context.Context, key string, entry domain.CacheEntry) error
	Delete(ctx context.Context, key string) error
}

// SetlistService defines the driving port used by the HTTP layer and jobs.
type SetlistService interface {
	// ArtistSetlists returns a page of setlists, served from the cache when a
	// fresh entry for that page exists unless forceRefresh is set.
	ArtistSetlists(ctx context.Context, page int, forceRefresh bool) (*domain.SetlistPage, error)

	// SearchSetlists forwards a search to the source.
	SearchSetlists(ctx context.Context, query domain.SearchQuery) (*domain.SetlistPage, error)

	// Show returns a single normalized show.
	Show(ctx context.Context, id string) (*domain.Show, error)

	// CompareShows loads two shows and compares their setlists.
	CompareShows(ctx context.Context, id1, id2 string) (*domain.Comparison, error)

	// TourData assembles every show of the configured tour with leg info.
	TourData(ctx context.Context, forceRefresh bool) (*domain.TourData, error)

	// TourStats aggregates song statistics over the tour, or a single leg
	// when legID is not nil.
	TourStats(ctx context.Context, legID *int) (*domain.TourStats, error)

	// Legs returns the configured tour legs.
	Legs() []domain.Leg

	// Albums returns the song reference table grouped by album.
	Albums() []domain.Album

	// CacheInfo reports the state of the cached payloads.
	CacheInfo(ctx context.Context) []domain.CacheInfo

	// ClearCache drops every cached payload.
	ClearCache(ctx context.Context) error
}
