package models

// Place is a cluster of visits that represent the same real-world location.
// Places are rebuilt from scratch on every analysis run.
type Place struct {
	// Representative coordinate: arithmetic mean of the member visits,
	// computed once at merge time
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`

	// VisitIndexes are positions into the run's visit list, in input order.
	// The founding visit (lowest index) determines place ordering.
	VisitIndexes []int `json:"visitIndexes"`
	VisitCount   int   `json:"visitCount"`

	// Identity/labels from the first member that carried them
	PlaceID   string `json:"placeId,omitempty"`
	PlaceName string `json:"placeName,omitempty"`

	// Country resolved from the boundary dataset; empty when unresolved (e.g. open ocean)
	Country string `json:"country,omitempty"`

	// City is optional enrichment from the place-location cache
	City string `json:"city,omitempty"`
}

// PlaceLocation is a row from the external place-location cache
type PlaceLocation struct {
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
	City    *string `json:"city"`
	Country *string `json:"country"`
	PlaceID string  `json:"place_id"`
}
