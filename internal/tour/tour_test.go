package tour

import (
	"testing"
	"time"

	"github.com/jpp0ca/SetlistStats-API/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fixture = `
tour:
  name: Test Tour
  startDate: "2025-01-01"
  endDate: "2025-03-31"
legs:
  - id: 1
    name: Winter
    region: EU
    startDate: "2025-01-01"
    endDate: "2025-01-31"
  - id: 2
    name: Spring
    region: NA
    startDate: "2025-03-01"
    endDate: "2025-03-31"
`

func show(id, date, city string) domain.Setlist {
	return domain.Setlist{
		ID:        id,
		EventDate: date,
		Venue: domain.Venue{
			Name: city + " Hall",
			City: domain.City{Name: city, Country: domain.Country{Code: "DE", Name: "Germany"}},
		},
	}
}

func TestFindLeg_Inclusive(t *testing.T) {
	c, err := Parse([]byte(fixture))
	require.NoError(t, err)

	leg, ok := c.FindLeg(time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC))
	require.True(t, ok)
	assert.Equal(t, 1, leg.ID)

	leg, ok = c.FindLeg(time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC))
	require.True(t, ok)
	assert.Equal(t, "Spring", leg.Name)

	_, ok = c.FindLeg(time.Date(2025, 2, 14, 0, 0, 0, 0, time.UTC))
	assert.False(t, ok)
}

func TestAssemble(t *testing.T) {
	c, err := Parse([]byte(fixture))
	require.NoError(t, err)

	now := time.Date(2025, 4, 1, 12, 0, 0, 0, time.UTC)
	data := c.Assemble([]domain.Setlist{
		show("a", "15-01-2025", "Berlin"),
		show("b", "10-03-2025", "Toronto"),
		show("c", "14-02-2025", "Paris"),
		show("d", "not-a-date", "Nowhere"),
	}, now)

	assert.Equal(t, "Test Tour", data.Tour.Name)
	assert.Equal(t, 4, data.Tour.TotalShows)
	assert.Equal(t, 2, data.Tour.TotalLegs)
	assert.Equal(t, "2025-04-01T12:00:00Z", data.Tour.LastUpdated)

	require.Len(t, data.Shows, 4)
	assert.Equal(t, []string{"b", "c", "a", "d"}, []string{
		data.Shows[0].ID, data.Shows[1].ID, data.Shows[2].ID, data.Shows[3].ID,
	})

	assert.Equal(t, 2, data.Shows[0].LegID)
	assert.Equal(t, 0, data.Shows[1].LegID)
	assert.Equal(t, "Unknown", data.Shows[1].LegName)
	assert.Equal(t, 1, data.Shows[2].LegID)
	assert.Equal(t, "Germany", data.Shows[2].Country)
	assert.Equal(t, "Berlin Hall", data.Shows[2].Venue)

	assert.Len(t, ShowsByLeg(data.Shows, 1), 1)
	assert.Len(t, ShowsByLeg(data.Shows, 0), 2)
	assert.Empty(t, ShowsByLeg(data.Shows, 9))
}

func TestParse_InvalidLeg(t *testing.T) {
	_, err := Parse([]byte(`legs: [{id: 1, startDate: "2025-02-01", endDate: "2025-01-01"}]`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ends before")

	_, err = Parse([]byte(`legs: [{id: 1, startDate: "01-02-2025", endDate: "2025-01-01"}]`))
	require.Error(t, err)
}

func TestDefault(t *testing.T) {
	c := Default()
	assert.Equal(t, "From Zero World Tour", c.Tour.Name)
	assert.NotEmpty(t, c.Legs)
}
