package venues

// StagePoint carries an explicit stage anchor in seat-map coordinates
type StagePoint struct {
	X float64 `json:"x" binding:"required"`
	Y float64 `json:"y" binding:"required"`
}

// SeatIngest is a single seat row in a seat-map upload
type SeatIngest struct {
	Section    string   `json:"section" binding:"required"`
	Row        string   `json:"row" binding:"required"`
	SeatNumber string   `json:"seat_number" binding:"required"`
	Price      *float64 `json:"price,omitempty" binding:"omitempty,gte=0"`
	X          float64  `json:"x"`
	Y          float64  `json:"y"`
	Tags       []string `json:"tags,omitempty" binding:"omitempty,dive,oneof=aisle obstructed"`
	Status     string   `json:"status,omitempty" binding:"omitempty,oneof=AVAILABLE SOLD BLOCKED"`
}

// CreateVenueRequest uploads a venue with its full seat map
type CreateVenueRequest struct {
	Name  string       `json:"name" binding:"required,min=2,max=200"`
	Stage *StagePoint  `json:"stage,omitempty"`
	Seats []SeatIngest `json:"seats" binding:"required,min=1,dive"`
}

// UpdateSeatStatusRequest flips a single seat's availability
type UpdateSeatStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=AVAILABLE SOLD BLOCKED"`
}
