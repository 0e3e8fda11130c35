package domain

// SongInfo is a row of the static song reference table.
type SongInfo struct {
	Title        string `json:"title" yaml:"title"`
	Abbreviation string `json:"abbreviation,omitempty" yaml:"abbreviation"`
	Album        string `json:"album" yaml:"album"`
	Year         int    `json:"year" yaml:"year"`
	Track        *int   `json:"track,omitempty" yaml:"track"`
	CoverURL     string `json:"coverUrl,omitempty" yaml:"-"`
}

// Album groups reference songs by release.
type Album struct {
	Name     string     `json:"name"`
	Year     int        `json:"year"`
	CoverURL string     `json:"coverUrl,omitempty"`
	Songs    []SongInfo `json:"songs"`
}
