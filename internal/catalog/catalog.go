// Package catalog is the static song reference table: which album and year a
// song title belongs to and which cover art goes with it.
package catalog

import (
	_ "embed"
	"fmt"
	"io"
	"os"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/jpp0ca/SetlistStats-API/internal/domain"
)

//go:embed songs.yaml
var embedded []byte

type file struct {
	Covers struct {
		Default string            `yaml:"default"`
		Albums  map[string]string `yaml:"albums"`
		Titles  map[string]string `yaml:"titles"`
	} `yaml:"covers"`
	Songs []domain.SongInfo `yaml:"songs"`
}

// Catalog is an immutable title keyed lookup table. It is safe for
// concurrent use.
type Catalog struct {
	songs        []domain.SongInfo
	byTitle      map[string]domain.SongInfo
	albumCovers  map[string]string
	titleCovers  map[string]string
	defaultCover string
}

// Default returns the catalog bundled with the binary.
func Default() *Catalog {
	c, err := Parse(embedded)
	if err != nil {
		panic(fmt.Sprintf("catalog: bundled songs.yaml is invalid: %v", err))
	}
	return c
}

// Open loads a catalog from a YAML file on disk.
func Open(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("catalog: %w", err)
	}
	defer f.Close()
	return Load(f)
}

// Load reads a catalog from YAML.
func Load(r io.Reader) (*Catalog, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("catalog: read: %w", err)
	}
	return Parse(data)
}

// Parse builds a catalog from YAML. Later entries with a duplicate title
// are ignored.
func Parse(data []byte) (*Catalog, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("catalog: parse: %w", err)
	}

	c := &Catalog{
		songs:        make([]domain.SongInfo, 0, len(f.Songs)),
		byTitle:      make(map[string]domain.SongInfo, len(f.Songs)),
		albumCovers:  f.Covers.Albums,
		titleCovers:  f.Covers.Titles,
		defaultCover: f.Covers.Default,
	}

	for _, song := range f.Songs {
		if song.Title == "" {
			return nil, fmt.Errorf("catalog: song without title on album %q", song.Album)
		}
		if _, dup := c.byTitle[song.Title]; dup {
			continue
		}
		song.CoverURL = c.CoverFor(song.Album, song.Title)
		c.songs = append(c.songs, song)
		c.byTitle[song.Title] = song
	}
	return c, nil
}

// Lookup returns the reference entry for an exact title. Titles that only
// have special cover art return an entry with just the cover set.
func (c *Catalog) Lookup(title string) (domain.SongInfo, bool) {
	if song, ok := c.byTitle[title]; ok {
		return song, true
	}
	if cover, ok := c.titleCovers[title]; ok {
		return domain.SongInfo{Title: title, CoverURL: cover}, true
	}
	return domain.SongInfo{}, false
}

// CoverFor resolves cover art for an album, falling back to title specials
// when there is no album, then to the default cover.
func (c *Catalog) CoverFor(album, title string) string {
	if album == "" {
		if cover, ok := c.titleCovers[title]; ok {
			return cover
		}
		return c.defaultCover
	}
	if cover, ok := c.albumCovers[album]; ok {
		return cover
	}
	return c.defaultCover
}

// Len returns the number of songs.
func (c *Catalog) Len() int {
	return len(c.songs)
}

// Songs returns all songs in file order.
func (c *Catalog) Songs() []domain.SongInfo {
	return slices.Clone(c.songs)
}

// Albums groups songs by album, ordered by release year. Albums from the
// same year keep file order.
func (c *Catalog) Albums() []domain.Album {
	index := make(map[string]int)
	albums := make([]domain.Album, 0)

	for _, song := range c.songs {
		i, ok := index[song.Album]
		if !ok {
			i = len(albums)
			index[song.Album] = i
			albums = append(albums, domain.Album{
				Name:     song.Album,
				Year:     song.Year,
				CoverURL: c.CoverFor(song.Album, ""),
			})
		}
		albums[i].Songs = append(albums[i].Songs, song)
	}

	slices.SortStableFunc(albums, func(a, b domain.Album) int {
		return a.Year - b.Year
	})
	return albums
}
