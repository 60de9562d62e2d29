package venues

import (
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"seatsense/internal/ranking"
)

// Seat statuses
const (
	SeatStatusAvailable = "AVAILABLE"
	SeatStatusSold      = "SOLD"
	SeatStatusBlocked   = "BLOCKED"
)

// Venue defines a seat map with its stage anchor. The anchor is optional;
// ranking falls back to a constant reference when it is absent.
type Venue struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	StageX    *float64  `json:"stage_x,omitempty"`
	StageY    *float64  `json:"stage_y,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relationships
	Seats []Seat `json:"seats,omitempty" gorm:"foreignKey:VenueID;constraint:OnDelete:CASCADE;"`
}

// Seat defines the structure for individual seats in a venue seat map.
// The (venue, section, row, seat_number) tuple is unique, which makes the
// derived seat identity unique within a seat set.
type Seat struct {
	ID         uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	VenueID    uuid.UUID `gorm:"type:uuid;index;not null;uniqueIndex:idx_venue_seat" json:"venue_id"`
	Section    string    `gorm:"not null;uniqueIndex:idx_venue_seat" json:"section"`
	Row        string    `gorm:"not null;uniqueIndex:idx_venue_seat" json:"row"`
	SeatNumber string    `gorm:"not null;uniqueIndex:idx_venue_seat" json:"seat_number"`
	Price      *float64  `json:"price,omitempty"` // NULL when the source page exposes no price
	X          float64   `gorm:"not null" json:"x"`
	Y          float64   `gorm:"not null" json:"y"`
	Tags       string    `json:"tags"` // comma separated, e.g. "aisle,obstructed"
	Status     string    `gorm:"type:varchar(20);check:status IN ('AVAILABLE', 'SOLD', 'BLOCKED');default:'AVAILABLE'" json:"status"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// TableName sets the table name for Venue
func (Venue) TableName() string {
	return "venues"
}

// TableName sets the table name for Seat
func (Seat) TableName() string {
	return "seats"
}

// IsAvailable reports whether the seat may be offered to the assistant
func (s *Seat) IsAvailable() bool {
	return s.Status == SeatStatusAvailable
}

// SeatID derives the canonical identity used across the assistant
func (s *Seat) SeatID() string {
	return ranking.SeatID(s.Section, s.Row, s.SeatNumber)
}

// TagList splits the stored tag string into a clean slice
func (s *Seat) TagList() []string {
	if s.Tags == "" {
		return nil
	}
	parts := strings.Split(s.Tags, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

// ToRanking converts a catalog seat into the immutable value the ranking
// engine scores. An unknown price becomes NaN, which the engine treats as
// worst case.
func (s *Seat) ToRanking() ranking.Seat {
	price := math.NaN()
	if s.Price != nil {
		price = *s.Price
	}
	return ranking.Seat{
		ID:         s.SeatID(),
		Section:    s.Section,
		Row:        s.Row,
		SeatNumber: s.SeatNumber,
		Price:      price,
		X:          s.X,
		Y:          s.Y,
		Tags:       s.TagList(),
	}
}

// Reference returns the venue's stage anchor, or the engine default when the
// venue carries none or a non-finite one.
func (v *Venue) Reference() ranking.Point {
	if v.StageX == nil || v.StageY == nil {
		return ranking.DefaultReference()
	}
	x, y := *v.StageX, *v.StageY
	if math.IsNaN(x) || math.IsInf(x, 0) || math.IsNaN(y) || math.IsInf(y, 0) {
		return ranking.DefaultReference()
	}
	return ranking.Point{X: x, Y: y}
}
