package setlist

import "github.com/jpp0ca/SetlistStats-API/internal/domain"

// -- Fixtures ----------------------------------------------------------------

func songs(names ...string) []domain.Song {
	out := make([]domain.Song, 0, len(names))
	for _, n := range names {
		out = append(out, domain.Song{Name: n})
	}
	return out
}

func mainSet(s ...domain.Song) domain.Set {
	return domain.Set{Songs: s}
}

func encoreSet(s ...domain.Song) domain.Set {
	return domain.Set{Encore: 1, Songs: s}
}

func setlistOn(id, date, city string, sets ...domain.Set) domain.Setlist {
	return domain.Setlist{
		ID:        id,
		EventDate: date,
		Venue: domain.Venue{
			Name: city + " Arena",
			City: domain.City{
				Name:      city,
				StateCode: "CA",
				Country:   domain.Country{Code: "US", Name: "United States"},
			},
		},
		Sets: domain.Sets{Set: sets},
	}
}

type stubLookup map[string]domain.SongInfo

func (s stubLookup) Lookup(title string) (domain.SongInfo, bool) {
	info, ok := s[title]
	return info, ok
}
