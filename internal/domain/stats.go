package domain

// Category buckets a song by the share of shows it was played in.
type Category string

const (
	CategoryStaple   Category = "staple"
	CategoryRotation Category = "rotation"
	CategoryRare     Category = "rare"
	CategoryDeepCut  Category = "deep-cut"
)

// SongStats is the tour-wide record of a single song.
type SongStats struct {
	Title                string   `json:"title"`
	TimesPlayed          int      `json:"timesPlayed"`
	TotalShows           int      `json:"totalShows"`
	Percentage           float64  `json:"percentage"`
	LastPlayed           string   `json:"lastPlayed,omitempty"`
	LastPlayedDate       string   `json:"lastPlayedDate,omitempty"`
	ShowsSinceLastPlayed int      `json:"showsSinceLastPlayed"`
	Category             Category `json:"category"`
	Album                string   `json:"album,omitempty"`
	Year                 int      `json:"year,omitempty"`
	CoverURL             string   `json:"coverUrl,omitempty"`
	PositionRange        string   `json:"positionRange,omitempty"`
}

// TourStats aggregates song statistics over a set of shows.
type TourStats struct {
	AllSongs       []SongStats `json:"allSongs"`
	TotalShows     int         `json:"totalShows"`
	UniqueSongs    int         `json:"uniqueSongs"`
	Staple         []SongStats `json:"staple"`
	Rotation       []SongStats `json:"rotation"`
	Rare           []SongStats `json:"rare"`
	DeepCut        []SongStats `json:"deepCut"`
	RecentlyPlayed []string    `json:"recentlyPlayed"`
	Overdue        []SongStats `json:"overdue"`
}
