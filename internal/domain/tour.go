package domain

// Leg is a contiguous date range of a tour. Dates are yyyy-MM-dd, inclusive.
type Leg struct {
	ID        int    `json:"id" yaml:"id"`
	Name      string `json:"name" yaml:"name"`
	Region    string `json:"region" yaml:"region"`
	StartDate string `json:"startDate" yaml:"startDate"`
	EndDate   string `json:"endDate" yaml:"endDate"`
	Color     string `json:"color,omitempty" yaml:"color"`
}

// TourInfo describes the tour as a whole.
type TourInfo struct {
	Name        string `json:"name" yaml:"name"`
	StartDate   string `json:"startDate" yaml:"startDate"`
	EndDate     string `json:"endDate" yaml:"endDate"`
	LastUpdated string `json:"lastUpdated,omitempty" yaml:"-"`
	TotalShows  int    `json:"totalShows" yaml:"-"`
	TotalLegs   int    `json:"totalLegs" yaml:"-"`
}

// TourShow is a setlist enriched with the leg it belongs to.
type TourShow struct {
	ID      string  `json:"id"`
	LegID   int     `json:"legId"`
	LegName string  `json:"legName"`
	Date    string  `json:"date"`
	City    string  `json:"city"`
	Country string  `json:"country"`
	Venue   string  `json:"venue"`
	Setlist Setlist `json:"setlist"`
}

// TourData is the assembled tour: metadata, legs and shows newest first.
type TourData struct {
	Tour  TourInfo   `json:"tour"`
	Legs  []Leg      `json:"legs"`
	Shows []TourShow `json:"shows"`
}

// Setlists returns the raw setlists of the shows in order.
func (d TourData) Setlists() []Setlist {
	out := make([]Setlist, 0, len(d.Shows))
	for _, s := range d.Shows {
		out = append(out, s.Setlist)
	}
	return out
}
