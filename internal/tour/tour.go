// Package tour maps shows onto the configured legs of a tour.
package tour

import (
	_ "embed"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/jpp0ca/SetlistStats-API/internal/domain"
	"github.com/jpp0ca/SetlistStats-API/internal/setlist"
)

const (
	legDateLayout  = "2006-01-02"
	unknownLegName = "Unknown"
)

//go:embed tour.yaml
var embedded []byte

// Config is the tour description and its legs.
type Config struct {
	Tour domain.TourInfo `yaml:"tour"`
	Legs []domain.Leg    `yaml:"legs"`

	ranges []legRange
}

type legRange struct {
	leg        domain.Leg
	start, end time.Time
}

// Default returns the tour configuration bundled with the binary.
func Default() *Config {
	c, err := Parse(embedded)
	if err != nil {
		panic(fmt.Sprintf("tour: bundled tour.yaml is invalid: %v", err))
	}
	return c
}

// Open loads a tour configuration from a YAML file.
func Open(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("tour: %w", err)
	}
	return Parse(data)
}

// Parse reads a tour configuration and validates leg date ranges.
func Parse(data []byte) (*Config, error) {
	var c Config
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("tour: parse: %w", err)
	}

	for _, leg := range c.Legs {
		start, err := time.Parse(legDateLayout, leg.StartDate)
		if err != nil {
			return nil, fmt.Errorf("tour: leg %d start date: %w", leg.ID, err)
		}
		end, err := time.Parse(legDateLayout, leg.EndDate)
		if err != nil {
			return nil, fmt.Errorf("tour: leg %d end date: %w", leg.ID, err)
		}
		if end.Before(start) {
			return nil, fmt.Errorf("tour: leg %d ends before it starts", leg.ID)
		}
		c.ranges = append(c.ranges, legRange{leg: leg, start: start, end: end})
	}
	return &c, nil
}

// FindLeg returns the first leg whose inclusive date range contains date.
func (c *Config) FindLeg(date time.Time) (domain.Leg, bool) {
	for _, r := range c.ranges {
		if !date.Before(r.start) && !date.After(r.end) {
			return r.leg, true
		}
	}
	return domain.Leg{}, false
}

// Enrich attaches leg information to each setlist. Shows outside every leg
// get leg id 0 and the name "Unknown".
func (c *Config) Enrich(setlists []domain.Setlist) []domain.TourShow {
	shows := make([]domain.TourShow, 0, len(setlists))
	for _, sl := range setlists {
		show := domain.TourShow{
			ID:      sl.ID,
			LegName: unknownLegName,
			Date:    sl.EventDate,
			City:    sl.Venue.City.Name,
			Country: sl.Venue.City.Country.Name,
			Venue:   sl.Venue.Name,
			Setlist: sl,
		}
		if date, ok := setlist.ParseDate(sl.EventDate); ok {
			if leg, ok := c.FindLeg(date); ok {
				show.LegID = leg.ID
				show.LegName = leg.Name
			}
		}
		shows = append(shows, show)
	}
	return shows
}

// Assemble builds tour data from raw setlists: shows are enriched with their
// leg and ordered newest first.
func (c *Config) Assemble(setlists []domain.Setlist, now time.Time) domain.TourData {
	shows := c.Enrich(setlist.SortNewestFirst(setlists))

	info := c.Tour
	info.TotalShows = len(shows)
	info.TotalLegs = len(c.Legs)
	info.LastUpdated = now.UTC().Format(time.RFC3339)

	legs := c.Legs
	if legs == nil {
		legs = []domain.Leg{}
	}
	return domain.TourData{Tour: info, Legs: legs, Shows: shows}
}

// ShowsByLeg filters shows down to one leg.
func ShowsByLeg(shows []domain.TourShow, legID int) []domain.TourShow {
	out := make([]domain.TourShow, 0)
	for _, s := range shows {
		if s.LegID == legID {
			out = append(out, s)
		}
	}
	return out
}
