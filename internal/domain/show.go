package domain

// SongStatus tags a song during a two-show comparison.
type SongStatus string

const (
	SongStatusShared SongStatus = "shared"
	SongStatusUnique SongStatus = "unique"
)

// ProcessedSong is a counted song of a show with its 1-based position.
type ProcessedSong struct {
	Name     string     `json:"name"`
	Position int        `json:"position"`
	Status   SongStatus `json:"status"`
	IsEncore bool       `json:"isEncore"`
	SetName  string     `json:"setName,omitempty"`
	Info     string     `json:"info,omitempty"`
}

// ProcessedSetlist is the ordered song list of one show. UniqueCount is only
// meaningful after a comparison.
type ProcessedSetlist struct {
	Songs       []ProcessedSong `json:"songs"`
	UniqueCount int             `json:"uniqueCount"`
	TotalSongs  int             `json:"totalSongs"`
}

// Show is a normalized setlist ready for presentation.
type Show struct {
	ID         string           `json:"id"`
	Name       string           `json:"name"`
	Venue      string           `json:"venue"`
	Date       string           `json:"date"`
	RawDate    string           `json:"rawDate"`
	Capacity   string           `json:"capacity,omitempty"`
	SetlistURL string           `json:"setlistUrl,omitempty"`
	Setlist    ProcessedSetlist `json:"setlist"`
}

// ComparisonStats summarizes the overlap of two shows. SimilarityPercent is
// relative to the first show's song count.
type ComparisonStats struct {
	SimilarityPercent int `json:"similarityPercent"`
	SharedCount       int `json:"sharedCount"`
	UniqueCount       int `json:"uniqueCount"`
}

// Comparison holds both shows with their song statuses set.
type Comparison struct {
	Show1 Show            `json:"show1"`
	Show2 Show            `json:"show2"`
	Stats ComparisonStats `json:"stats"`
}
