package setlist

import (
	"math"
	"slices"

	"github.com/jpp0ca/SetlistStats-API/internal/domain"
)

// Compare tags every song of both shows as shared or unique by exact name
// membership in the other show. The inputs are not modified; the returned
// shows carry their own song slices.
func Compare(show1, show2 domain.Show) domain.Comparison {
	a := tagged(show1, nameSet(show2))
	b := tagged(show2, nameSet(show1))

	shared := 0
	for _, song := range a.Setlist.Songs {
		if song.Status == domain.SongStatusShared {
			shared++
		}
	}

	return domain.Comparison{
		Show1: a,
		Show2: b,
		Stats: domain.ComparisonStats{
			SimilarityPercent: Similarity(shared, a.Setlist.TotalSongs),
			SharedCount:       shared,
			UniqueCount:       a.Setlist.UniqueCount + b.Setlist.UniqueCount,
		},
	}
}

// Similarity returns round(shared/total*100), or 0 when total is 0.
func Similarity(shared, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(shared) / float64(total) * 100))
}

func nameSet(show domain.Show) map[string]struct{} {
	names := make(map[string]struct{}, len(show.Setlist.Songs))
	for _, song := range show.Setlist.Songs {
		names[song.Name] = struct{}{}
	}
	return names
}

func tagged(show domain.Show, other map[string]struct{}) domain.Show {
	show.Setlist.Songs = slices.Clone(show.Setlist.Songs)
	if show.Setlist.Songs == nil {
		show.Setlist.Songs = []domain.ProcessedSong{}
	}

	unique := 0
	for i := range show.Setlist.Songs {
		if _, ok := other[show.Setlist.Songs[i].Name]; ok {
			show.Setlist.Songs[i].Status = domain.SongStatusShared
		} else {
			show.Setlist.Songs[i].Status = domain.SongStatusUnique
			unique++
		}
	}
	show.Setlist.UniqueCount = unique
	return show
}
