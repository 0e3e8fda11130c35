package static

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jpp0ca/SetlistStats-API/internal/domain"
	"github.com/jpp0ca/SetlistStats-API/internal/setlist"
)

// PageSize matches the setlist.fm page size.
const PageSize = 20

// Provider implements ports.SetlistSource over a bundled dataset held in
// memory. Setlists are served newest first.
type Provider struct {
	setlists []domain.Setlist
	byID     map[string]int
}

// New creates a provider serving the given setlists.
func New(setlists []domain.Setlist) *Provider {
	sorted := setlist.SortNewestFirst(setlists)
	byID := make(map[string]int, len(sorted))
	for i, sl := range sorted {
		if sl.ID != "" {
			byID[sl.ID] = i
		}
	}
	return &Provider{setlists: sorted, byID: byID}
}

// Open loads a dataset file.
func Open(path string) (*Provider, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("static: failed to open dataset: %w", err)
	}
	defer f.Close()
	return Load(f)
}

// Load decodes a dataset. Accepted shapes are a setlist.fm page
// ({"setlist": [...]}), tour data ({"shows": [{"setlist": {...}}]}, optionally
// nested under "tourData") or a bare array of setlists.
func Load(r io.Reader) (*Provider, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("static: failed to read dataset: %w", err)
	}
	setlists, err := decode(data)
	if err != nil {
		return nil, fmt.Errorf("static: %w", err)
	}
	return New(setlists), nil
}

type dataset struct {
	Setlist  []domain.Setlist  `json:"setlist"`
	Shows    []domain.TourShow `json:"shows"`
	TourData *struct {
		Shows []domain.TourShow `json:"shows"`
	} `json:"tourData"`
}

func decode(data []byte) ([]domain.Setlist, error) {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '[' {
		var setlists []domain.Setlist
		if err := json.Unmarshal(data, &setlists); err != nil {
			return nil, fmt.Errorf("failed to parse setlist array: %w", err)
		}
		return setlists, nil
	}

	var ds dataset
	if err := json.Unmarshal(data, &ds); err != nil {
		return nil, fmt.Errorf("failed to parse dataset: %w", err)
	}

	shows := ds.Shows
	if ds.TourData != nil && len(shows) == 0 {
		shows = ds.TourData.Shows
	}
	switch {
	case len(ds.Setlist) > 0:
		return ds.Setlist, nil
	case len(shows) > 0:
		return domain.TourData{Shows: shows}.Setlists(), nil
	}
	return []domain.Setlist{}, nil
}

func (p *Provider) Name() string {
	return "static"
}

// Len returns the number of setlists in the dataset.
func (p *Provider) Len() int {
	return len(p.setlists)
}

// -- SetlistSource implementation --------------------------------------------

func (p *Provider) ArtistSetlists(ctx context.Context, page int) (*domain.SetlistPage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return paginate(p.setlists, page), nil
}

func (p *Provider) Setlist(ctx context.Context, id string) (*domain.Setlist, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	i, ok := p.byID[id]
	if !ok {
		return nil, fmt.Errorf("static: setlist %s: %w", id, domain.ErrNotFound)
	}
	sl := p.setlists[i]
	return &sl, nil
}

func (p *Provider) SearchSetlists(ctx context.Context, query domain.SearchQuery) (*domain.SetlistPage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	matches := make([]domain.Setlist, 0)
	for _, sl := range p.setlists {
		if matchesQuery(sl, query) {
			matches = append(matches, sl)
		}
	}
	return paginate(matches, query.Page), nil
}

func paginate(setlists []domain.Setlist, page int) *domain.SetlistPage {
	page = max(page, 1)
	start := min((page-1)*PageSize, len(setlists))
	end := min(start+PageSize, len(setlists))

	items := make([]domain.Setlist, end-start)
	copy(items, setlists[start:end])

	return &domain.SetlistPage{
		Type:         "setlists",
		ItemsPerPage: PageSize,
		Page:         page,
		Total:        len(setlists),
		Setlist:      items,
	}
}

func matchesQuery(sl domain.Setlist, q domain.SearchQuery) bool {
	if q.ArtistName != "" && !strings.EqualFold(sl.Artist.Name, q.ArtistName) {
		return false
	}
	if q.ArtistMBID != "" && sl.Artist.MBID != q.ArtistMBID {
		return false
	}
	if q.Date != "" && sl.EventDate != q.Date {
		return false
	}
	if q.Year > 0 {
		t, ok := setlist.ParseDate(sl.EventDate)
		if !ok || t.Year() != q.Year {
			return false
		}
	}
	if q.CityName != "" && !strings.EqualFold(sl.Venue.City.Name, q.CityName) {
		return false
	}
	if q.CountryCode != "" && !strings.EqualFold(sl.Venue.City.Country.Code, q.CountryCode) {
		return false
	}
	if q.VenueID != "" && sl.Venue.ID != q.VenueID {
		return false
	}
	if q.TourName != "" && sl.TourName() != q.TourName {
		return false
	}
	return true
}
