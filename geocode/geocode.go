package geocode

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"sync"
	"time"

	"googlemaps.github.io/maps"
)

// Bounded wait for a geocoding answer. Past this the submission falls back
// to manual coordinate entry instead of hanging.
const lookupTimeout = 5 * time.Second

// ErrUnavailable covers denied, timed-out, or empty geocoding lookups.
var ErrUnavailable = errors.New("geolocation unavailable")

// mapsClient is a singleton maps client instance. initErr outlives the Once
// so every caller sees the same failed-init result, not just the first.
var (
	mapsClient *maps.Client
	clientOnce sync.Once
	initErr    error
)

// InitMapsClient initializes and returns a singleton Google Maps client.
func InitMapsClient() (*maps.Client, error) {
	clientOnce.Do(func() {
		apiKey := os.Getenv("MAPS_CREDENTIALS")
		if apiKey == "" {
			initErr = fmt.Errorf("MAPS_CREDENTIALS environment variable not set")
			return
		}
		mapsClient, initErr = maps.NewClient(maps.WithAPIKey(apiKey))
		if initErr != nil {
			log.Printf("Failed to create maps client: %v", initErr)
		}
	})
	return mapsClient, initErr
}

// LocateVillage forward-geocodes a village name with a bounded wait. Any
// failure maps to ErrUnavailable so callers fall back gracefully.
func LocateVillage(ctx context.Context, village string) (lat, long float64, err error) {
	client, err := InitMapsClient()
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	ctx, cancel := context.WithTimeout(ctx, lookupTimeout)
	defer cancel()

	results, err := client.Geocode(ctx, &maps.GeocodingRequest{Address: village})
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if len(results) == 0 {
		return 0, 0, fmt.Errorf("%w: no results for %q", ErrUnavailable, village)
	}

	loc := results[0].Geometry.Location
	return loc.Lat, loc.Lng, nil
}
