package venues

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seatsense/internal/ranking"
)

func TestSeatToRanking(t *testing.T) {
	price := 120.0
	seat := Seat{
		Section:    "A",
		Row:        "1",
		SeatNumber: "12",
		Price:      &price,
		X:          480,
		Y:          100,
		Tags:       "aisle, obstructed",
		Status:     SeatStatusAvailable,
	}

	rs := seat.ToRanking()

	assert.Equal(t, "A-1-12", rs.ID)
	assert.Equal(t, 120.0, rs.Price)
	assert.Equal(t, []string{"aisle", "obstructed"}, rs.Tags)
}

func TestSeatToRanking_UnknownPrice(t *testing.T) {
	seat := Seat{Section: "B", Row: "2", SeatNumber: "5"}

	rs := seat.ToRanking()

	assert.True(t, math.IsNaN(rs.Price))
	assert.Empty(t, rs.Tags)
}

func TestVenueReference(t *testing.T) {
	x, y := 300.0, 50.0
	venue := Venue{StageX: &x, StageY: &y}
	assert.Equal(t, ranking.Point{X: 300, Y: 50}, venue.Reference())
}

func TestVenueReference_MissingAnchorFallsBack(t *testing.T) {
	venue := Venue{}
	assert.Equal(t, ranking.DefaultReference(), venue.Reference())

	nan := math.NaN()
	y := 50.0
	venue = Venue{StageX: &nan, StageY: &y}
	assert.Equal(t, ranking.DefaultReference(), venue.Reference())
}

func TestSeatTagList(t *testing.T) {
	seat := Seat{Tags: "aisle,,  obstructed ,"}
	require.Equal(t, []string{"aisle", "obstructed"}, seat.TagList())

	seat.Tags = ""
	assert.Nil(t, seat.TagList())
}
