package setlist

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/jpp0ca/SetlistStats-API/internal/domain"
)

const (
	// EventDateLayout is the setlist.fm event date format (dd-MM-yyyy).
	EventDateLayout = "02-01-2006"
	displayLayout   = "Jan 2, 2006"
	encoreSetName   = "Encore"
)

// ParseDate parses a dd-MM-yyyy event date. Single digit days and months
// are accepted.
func ParseDate(raw string) (time.Time, bool) {
	parts := strings.Split(strings.TrimSpace(raw), "-")
	if len(parts) != 3 {
		return time.Time{}, false
	}
	day, err := strconv.Atoi(parts[0])
	if err != nil || day < 1 || day > 31 {
		return time.Time{}, false
	}
	month, err := strconv.Atoi(parts[1])
	if err != nil || month < 1 || month > 12 {
		return time.Time{}, false
	}
	year, err := strconv.Atoi(parts[2])
	if err != nil {
		return time.Time{}, false
	}
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC), true
}

// FormatDate turns "11-11-2024" into "Nov 11, 2024". Dates that cannot be
// parsed are returned unchanged.
func FormatDate(raw string) string {
	t, ok := ParseDate(raw)
	if !ok {
		return raw
	}
	return t.Format(displayLayout)
}

// DisplayName is "City, ST" using the state code, or the country code when
// the venue has no state.
func DisplayName(v domain.Venue) string {
	region := v.City.StateCode
	if region == "" {
		region = v.City.Country.Code
	}
	switch {
	case v.City.Name == "":
		return region
	case region == "":
		return v.City.Name
	}
	return v.City.Name + ", " + region
}

// Normalize converts a raw setlist into a Show. Every song starts out
// unique; Compare corrects the statuses once a second show is known.
func Normalize(sl domain.Setlist) domain.Show {
	songs := make([]domain.ProcessedSong, 0)
	Walk(sl, func(position int, set domain.Set, song domain.Song) {
		setName := set.Name
		if setName == "" && set.IsEncore() {
			setName = encoreSetName
		}
		songs = append(songs, domain.ProcessedSong{
			Name:     song.Name,
			Position: position,
			Status:   domain.SongStatusUnique,
			IsEncore: set.IsEncore(),
			SetName:  setName,
			Info:     song.Info,
		})
	})

	return domain.Show{
		ID:         sl.ID,
		Name:       DisplayName(sl.Venue),
		Venue:      sl.Venue.Name,
		Date:       FormatDate(sl.EventDate),
		RawDate:    sl.EventDate,
		SetlistURL: sl.URL,
		Setlist: domain.ProcessedSetlist{
			Songs:       songs,
			UniqueCount: 0,
			TotalSongs:  len(songs),
		},
	}
}

var nonAlnum = regexp.MustCompile(`[^a-z0-9]+`)

// ShowID builds a slug like "the-forum-11-11-2024" from a venue and date.
func ShowID(venue, date string) string {
	return nonAlnum.ReplaceAllString(strings.ToLower(venue+"-"+date), "-")
}
