package placecache

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"github.com/lib/pq"

	"github.com/travelrecap/timeline-backend-go/internal/models"
)

// Client reads the external place-location cache: a Postgres table of
// already-geocoded places keyed by stable place ID. The cache is strictly
// optional enrichment; analysis correctness never depends on it.
type Client struct {
	db *sql.DB
}

// Open connects to the place cache. The DSN is a standard libpq connection
// string.
func Open(dsn string) (*Client, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open place cache: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping place cache: %w", err)
	}

	log.Printf("[PlaceCache] Connected")
	return &Client{db: db}, nil
}

// Close closes the underlying connection pool
func (c *Client) Close() error {
	return c.db.Close()
}

// ListLocations returns every cached place location, ordered by place ID
func (c *Client) ListLocations(ctx context.Context) ([]models.PlaceLocation, error) {
	rows, err := c.db.QueryContext(ctx, `
		SELECT lat, lng, city, country, place_id
		FROM place_locations
		ORDER BY place_id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query place_locations: %w", err)
	}
	defer rows.Close()

	var locations []models.PlaceLocation
	for rows.Next() {
		var loc models.PlaceLocation
		if err := rows.Scan(&loc.Lat, &loc.Lng, &loc.City, &loc.Country, &loc.PlaceID); err != nil {
			log.Printf("[PlaceCache] Failed to scan row: %v", err)
			continue
		}
		locations = append(locations, loc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate place_locations: %w", err)
	}

	return locations, nil
}

// LookupByPlaceIDs returns cached locations for the given place IDs.
// Missing IDs are simply absent from the result.
func (c *Client) LookupByPlaceIDs(ctx context.Context, ids []string) (map[string]models.PlaceLocation, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	rows, err := c.db.QueryContext(ctx, `
		SELECT lat, lng, city, country, place_id
		FROM place_locations
		WHERE place_id = ANY($1)
	`, pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("failed to query place_locations: %w", err)
	}
	defer rows.Close()

	found := make(map[string]models.PlaceLocation, len(ids))
	for rows.Next() {
		var loc models.PlaceLocation
		if err := rows.Scan(&loc.Lat, &loc.Lng, &loc.City, &loc.Country, &loc.PlaceID); err != nil {
			log.Printf("[PlaceCache] Failed to scan row: %v", err)
			continue
		}
		found[loc.PlaceID] = loc
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate place_locations: %w", err)
	}

	return found, nil
}
