package setlist

import (
	"slices"
	"strconv"

	"github.com/elliotchance/orderedmap/v3"

	"github.com/jpp0ca/SetlistStats-API/internal/domain"
)

// OverdueAfter is the number of most recent shows a rotation song may be
// missing from before it is reported as overdue.
const OverdueAfter = 3

// SongLookup resolves reference metadata for a song title.
type SongLookup interface {
	Lookup(title string) (domain.SongInfo, bool)
}

// Aggregator computes tour statistics. The reference table is optional.
type Aggregator struct {
	songs SongLookup
}

// NewAggregator creates an Aggregator enriching results from songs, which
// may be nil.
func NewAggregator(songs SongLookup) *Aggregator {
	return &Aggregator{songs: songs}
}

// Categorize buckets a play percentage. Lower bounds are inclusive and every
// value, including out of range ones, maps to a category.
func Categorize(percentage float64) domain.Category {
	switch {
	case percentage >= 80:
		return domain.CategoryStaple
	case percentage >= 40:
		return domain.CategoryRotation
	case percentage >= 20:
		return domain.CategoryRare
	default:
		return domain.CategoryDeepCut
	}
}

// SortNewestFirst returns a copy of setlists ordered by event date,
// most recent first. Shows on the same date keep their input order and
// unparseable dates sort last.
func SortNewestFirst(setlists []domain.Setlist) []domain.Setlist {
	sorted := slices.Clone(setlists)
	slices.SortStableFunc(sorted, func(a, b domain.Setlist) int {
		ta, _ := ParseDate(a.EventDate)
		tb, _ := ParseDate(b.EventDate)
		return tb.Compare(ta)
	})
	return sorted
}

type songTally struct {
	count     int
	lastCity  string
	lastDate  string
	lastIndex int
	minPos    int
	maxPos    int
}

func (t *songTally) positionRange() string {
	switch {
	case t.minPos == 0:
		return ""
	case t.minPos == t.maxPos:
		return strconv.Itoa(t.minPos)
	}
	return strconv.Itoa(t.minPos) + "-" + strconv.Itoa(t.maxPos)
}

// TourStats aggregates play counts, recency, categories and position ranges
// over setlists. The input slice is not modified.
//
// allSongs is ordered by times played descending; ties keep the order in
// which songs were first seen scanning newest show first, in set order.
func (a *Aggregator) TourStats(setlists []domain.Setlist) domain.TourStats {
	stats := domain.TourStats{
		AllSongs:       []domain.SongStats{},
		Staple:         []domain.SongStats{},
		Rotation:       []domain.SongStats{},
		Rare:           []domain.SongStats{},
		DeepCut:        []domain.SongStats{},
		RecentlyPlayed: []string{},
		Overdue:        []domain.SongStats{},
	}
	if len(setlists) == 0 {
		return stats
	}

	sorted := SortNewestFirst(setlists)
	tallies := orderedmap.NewOrderedMap[string, *songTally]()

	for index, sl := range sorted {
		Walk(sl, func(position int, _ domain.Set, song domain.Song) {
			t, ok := tallies.Get(song.Name)
			if !ok {
				// scan order is newest first, so the first sighting is the
				// last time the song was played
				t = &songTally{
					lastCity:  sl.Venue.City.Name,
					lastDate:  sl.EventDate,
					lastIndex: index,
					minPos:    position,
					maxPos:    position,
				}
				tallies.Set(song.Name, t)
			}
			t.count++
			t.minPos = min(t.minPos, position)
			t.maxPos = max(t.maxPos, position)
		})
	}

	total := len(sorted)
	stats.TotalShows = total

	for title := range tallies.Keys() {
		t, _ := tallies.Get(title)
		percentage := float64(t.count*100) / float64(total)
		song := domain.SongStats{
			Title:                title,
			TimesPlayed:          t.count,
			TotalShows:           total,
			Percentage:           percentage,
			LastPlayed:           t.lastCity,
			LastPlayedDate:       t.lastDate,
			ShowsSinceLastPlayed: t.lastIndex,
			Category:             Categorize(percentage),
			PositionRange:        t.positionRange(),
		}
		a.enrich(&song)
		stats.AllSongs = append(stats.AllSongs, song)
	}

	slices.SortStableFunc(stats.AllSongs, func(x, y domain.SongStats) int {
		return y.TimesPlayed - x.TimesPlayed
	})
	stats.UniqueSongs = len(stats.AllSongs)

	for _, song := range stats.AllSongs {
		switch song.Category {
		case domain.CategoryStaple:
			stats.Staple = append(stats.Staple, song)
		case domain.CategoryRotation:
			stats.Rotation = append(stats.Rotation, song)
			if song.ShowsSinceLastPlayed >= OverdueAfter {
				stats.Overdue = append(stats.Overdue, song)
			}
		case domain.CategoryRare:
			stats.Rare = append(stats.Rare, song)
		case domain.CategoryDeepCut:
			stats.DeepCut = append(stats.DeepCut, song)
		}
	}
	slices.SortStableFunc(stats.Overdue, func(x, y domain.SongStats) int {
		return y.ShowsSinceLastPlayed - x.ShowsSinceLastPlayed
	})

	stats.RecentlyPlayed = SongNames(sorted[0])
	return stats
}

func (a *Aggregator) enrich(song *domain.SongStats) {
	if a == nil || a.songs == nil {
		return
	}
	info, ok := a.songs.Lookup(song.Title)
	if !ok {
		return
	}
	song.Album = info.Album
	song.Year = info.Year
	song.CoverURL = info.CoverURL
}
