package catalog

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fixture = `
covers:
  default: /covers/default.jpg
  albums:
    "Meteora": /covers/meteora.jpg
    "Hybrid Theory": /covers/hybrid.jpg
  titles:
    "Joe Hahn Solo": /covers/mr-hahn.jpg
songs:
  - title: "Numb"
    album: "Meteora"
    year: 2003
    track: 13
  - title: "Papercut"
    abbreviation: PC
    album: "Hybrid Theory"
    year: 2000
    track: 1
  - title: "Friendly Fire"
    album: "Papercuts"
    year: 2024
  - title: "Faint"
    album: "Meteora"
    year: 2003
  - title: "Numb"
    album: "Duplicate"
    year: 1999
`

func TestParse_Lookup(t *testing.T) {
	c, err := Parse([]byte(fixture))
	require.NoError(t, err)
	assert.Equal(t, 4, c.Len())

	numb, ok := c.Lookup("Numb")
	require.True(t, ok)
	assert.Equal(t, "Meteora", numb.Album)
	assert.Equal(t, 2003, numb.Year)
	require.NotNil(t, numb.Track)
	assert.Equal(t, 13, *numb.Track)
	assert.Equal(t, "/covers/meteora.jpg", numb.CoverURL)

	ff, ok := c.Lookup("Friendly Fire")
	require.True(t, ok)
	assert.Equal(t, "/covers/default.jpg", ff.CoverURL)
	assert.Nil(t, ff.Track)

	_, ok = c.Lookup("numb")
	assert.False(t, ok, "lookup is exact")

	solo, ok := c.Lookup("Joe Hahn Solo")
	require.True(t, ok)
	assert.Empty(t, solo.Album)
	assert.Equal(t, "/covers/mr-hahn.jpg", solo.CoverURL)
}

func TestAlbums_GroupedByYear(t *testing.T) {
	c, err := Parse([]byte(fixture))
	require.NoError(t, err)

	albums := c.Albums()
	require.Len(t, albums, 3)
	assert.Equal(t, "Hybrid Theory", albums[0].Name)
	assert.Equal(t, "Meteora", albums[1].Name)
	assert.Equal(t, "Papercuts", albums[2].Name)

	require.Len(t, albums[1].Songs, 2)
	assert.Equal(t, "Numb", albums[1].Songs[0].Title)
	assert.Equal(t, "Faint", albums[1].Songs[1].Title)
	assert.Equal(t, "/covers/meteora.jpg", albums[1].CoverURL)
}

func TestParse_Errors(t *testing.T) {
	_, err := Parse([]byte("songs: [this is: not, valid"))
	require.Error(t, err)

	_, err = Load(strings.NewReader("songs:\n  - album: Meteora\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "without title")
}

func TestDefault(t *testing.T) {
	c := Default()
	assert.Greater(t, c.Len(), 50)

	info, ok := c.Lookup("In the End")
	require.True(t, ok)
	assert.Equal(t, "Hybrid Theory", info.Album)
	assert.Equal(t, 2000, info.Year)

	rtn, ok := c.Lookup("Remember the Name")
	require.True(t, ok)
	assert.Equal(t, "/covers/fort-minor.jpg", rtn.CoverURL)

	albums := c.Albums()
	assert.Equal(t, "Hybrid Theory", albums[0].Name)
}
