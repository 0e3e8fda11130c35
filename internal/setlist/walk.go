// Package setlist holds the pure transforms over setlist data: normalizing a
// single show, comparing two shows and aggregating statistics over a tour.
// Nothing in this package performs I/O or keeps state between calls.
package setlist

import (
	"strings"

	"github.com/jpp0ca/SetlistStats-API/internal/domain"
)

// CompanionAct is the side project whose songs are listed as covers upstream
// but count as the artist's own material.
const CompanionAct = "Fort Minor"

// Counts reports whether a song is part of song lists, positions and
// statistics. Tapes never count; covers only when credited to CompanionAct.
func Counts(song domain.Song) bool {
	if song.Tape {
		return false
	}
	if song.Cover != nil {
		return strings.EqualFold(song.Cover.Name, CompanionAct)
	}
	return true
}

// Walk calls fn for every counted song of sl in performance order. Positions
// start at 1 and are contiguous across sets. It returns the number of
// counted songs.
func Walk(sl domain.Setlist, fn func(position int, set domain.Set, song domain.Song)) int {
	position := 0
	for _, set := range sl.Sets.Set {
		for _, song := range set.Songs {
			if !Counts(song) {
				continue
			}
			position++
			fn(position, set, song)
		}
	}
	return position
}

// SongNames returns the counted song names of sl in performance order.
func SongNames(sl domain.Setlist) []string {
	names := make([]string, 0)
	Walk(sl, func(_ int, _ domain.Set, song domain.Song) {
		names = append(names, song.Name)
	})
	return names
}
