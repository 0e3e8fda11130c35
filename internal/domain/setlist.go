package domain

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// Setlist is one show as returned by the setlist.fm REST API. The JSON shape
// must stay compatible with both live API responses and bundled datasets.
type Setlist struct {
	ID          string `json:"id"`
	VersionID   string `json:"versionId"`
	EventDate   string `json:"eventDate"` // dd-MM-yyyy
	LastUpdated string `json:"lastUpdated,omitempty"`
	Artist      Artist `json:"artist"`
	Venue       Venue  `json:"venue"`
	Tour        *Tour  `json:"tour,omitempty"`
	Sets        Sets   `json:"sets"`
	Info        string `json:"info,omitempty"`
	URL         string `json:"url,omitempty"`
}

// TourName returns the tour label or "" when the show is not part of a tour.
func (s Setlist) TourName() string {
	if s.Tour == nil {
		return ""
	}
	return s.Tour.Name
}

type Artist struct {
	MBID           string `json:"mbid,omitempty"`
	Name           string `json:"name"`
	SortName       string `json:"sortName,omitempty"`
	Disambiguation string `json:"disambiguation,omitempty"`
	URL            string `json:"url,omitempty"`
}

type Venue struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name"`
	City City   `json:"city"`
	URL  string `json:"url,omitempty"`
}

type City struct {
	ID        string  `json:"id,omitempty"`
	Name      string  `json:"name"`
	State     string  `json:"state,omitempty"`
	StateCode string  `json:"stateCode,omitempty"`
	Country   Country `json:"country"`
}

type Country struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

type Tour struct {
	Name string `json:"name"`
}

// Sets wraps the ordered set list the way setlist.fm nests it ("sets": {"set": [...]}).
type Sets struct {
	Set []Set `json:"set"`
}

// Set is a main set or an encore. Song order is performance order.
type Set struct {
	Name   string       `json:"name,omitempty"`
	Encore EncoreMarker `json:"encore,omitempty"`
	Songs  []Song       `json:"song"`
}

// IsEncore reports whether the set is flagged as an encore.
func (s Set) IsEncore() bool {
	return s.Encore != 0
}

// EncoreMarker is the setlist.fm encore number. Datasets in the wild also
// carry booleans or strings here, so decoding is lenient: anything it cannot
// read becomes 0 (not an encore).
type EncoreMarker int

func (e *EncoreMarker) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("true")):
		*e = 1
	case bytes.Equal(data, []byte("false")), bytes.Equal(data, []byte("null")):
		*e = 0
	default:
		raw := string(bytes.Trim(data, `"`))
		n, err := strconv.Atoi(raw)
		if err != nil {
			if f, ferr := strconv.ParseFloat(raw, 64); ferr == nil {
				if f != 0 {
					n = 1
				}
			} else if b, berr := strconv.ParseBool(raw); berr == nil && b {
				n = 1
			}
		}
		*e = EncoreMarker(n)
	}
	return nil
}

// Song is a single entry of a set.
type Song struct {
	Name  string  `json:"name"`
	Info  string  `json:"info,omitempty"`
	Tape  bool    `json:"tape,omitempty"`
	Cover *Artist `json:"cover,omitempty"`
	With  *Artist `json:"with,omitempty"`
}

// SetlistPage is a paginated setlist.fm search or artist response.
type SetlistPage struct {
	Type         string    `json:"type,omitempty"`
	ItemsPerPage int       `json:"itemsPerPage"`
	Page         int       `json:"page"`
	Total        int       `json:"total"`
	Setlist      []Setlist `json:"setlist"`
}

// TotalPages returns the number of pages the upstream reports.
func (p SetlistPage) TotalPages() int {
	if p.ItemsPerPage <= 0 {
		if len(p.Setlist) == 0 {
			return 0
		}
		return 1
	}
	return (p.Total + p.ItemsPerPage - 1) / p.ItemsPerPage
}

// SearchQuery holds the setlist.fm search filters. Zero values are omitted.
type SearchQuery struct {
	ArtistName  string `form:"artistName" json:"artistName,omitempty"`
	ArtistMBID  string `form:"artistMbid" json:"artistMbid,omitempty"`
	Year        int    `form:"year" json:"year,omitempty"`
	Date        string `form:"date" json:"date,omitempty"`
	CityName    string `form:"cityName" json:"cityName,omitempty"`
	CountryCode string `form:"countryCode" json:"countryCode,omitempty"`
	VenueID     string `form:"venueId" json:"venueId,omitempty"`
	TourName    string `form:"tourName" json:"tourName,omitempty"`
	Page        int    `form:"p" json:"p,omitempty"`
}

// IsEmpty reports whether no filter is set.
func (q SearchQuery) IsEmpty() bool {
	return q.ArtistName == "" && q.ArtistMBID == "" && q.Year == 0 && q.Date == "" &&
		q.CityName == "" && q.CountryCode == "" && q.VenueID == "" && q.TourName == ""
}

var _ json.Unmarshaler = (*EncoreMarker)(nil)
