package domain

import "context"

// GeocodingResult contains place data returned by a reverse-geocoding provider.
type GeocodingResult struct {
	PlaceName        string
	FormattedAddress string
	Confidence       float64 // 0.0–1.0 provider confidence score
}

// Geocoder resolves coordinates to place details. Used at ingestion to fill
// in missing area names; the scoring engine itself never geocodes.
type Geocoder interface {
	ReverseGeocode(ctx context.Context, lat, lon float64) (GeocodingResult, error)
}
