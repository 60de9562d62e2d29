package constants

import "time"

// Redis key and TTL conventions for the seatsense application.
// Pattern: seatsense:{module}:{operation}:{identifier}

const (
	CACHE_PREFIX = "seatsense"
)

// ================== SESSIONS MODULE ==================

// Session Keys
const (
	KEY_SESSION_STATE = CACHE_PREFIX + ":sessions:state:uuid:" // + session-id
)

// ================== VENUES MODULE ==================

// Venue Cache Keys
const (
	CACHE_KEY_VENUE_DETAIL = CACHE_PREFIX + ":venues:detail:uuid:" // + venue-id
	CACHE_KEY_VENUE_SEATS  = CACHE_PREFIX + ":venues:seats:uuid:"  // + venue-id (available seats only)
)

// Venue Cache TTLs
const (
	TTL_VENUE_DETAIL = 12 * time.Hour   // layouts rarely change
	TTL_VENUE_SEATS  = 5 * time.Minute  // availability is dynamic
)

// ================== CACHE INVALIDATION PATTERNS ==================

const (
	PATTERN_INVALIDATE_VENUE_ALL = CACHE_PREFIX + ":venues:*:uuid:" // + venue-id
)

// ================== HELPER FUNCTIONS ==================

func BuildSessionStateKey(sessionID string) string {
	return KEY_SESSION_STATE + sessionID
}

func BuildVenueDetailKey(venueID string) string {
	return CACHE_KEY_VENUE_DETAIL + venueID
}

func BuildVenueSeatsKey(venueID string) string {
	return CACHE_KEY_VENUE_SEATS + venueID
}

func BuildVenueInvalidationPattern(venueID string) string {
	return PATTERN_INVALIDATE_VENUE_ALL + venueID
}
