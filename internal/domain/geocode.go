package domain

import (
	"context"
	"log/slog"
	"strings"
)

// ResolveArea attempts to fill a missing area name by reverse geocoding the
// input's coordinates. If geocoder is nil, the coordinates are absent, the
// lookup fails, or the provider returns no place, the input is returned
// unchanged: a missing area name never blocks admission and falls through to
// the Unknown sentinel.
func ResolveArea(ctx context.Context, in RecordInput, geocoder Geocoder, logger *slog.Logger) RecordInput {
	if geocoder == nil || in.Latitude == nil || in.Longitude == nil {
		return in
	}
	area := strings.TrimSpace(in.Area)
	if area != "" && area != UnknownArea {
		return in
	}

	result, err := geocoder.ReverseGeocode(ctx, *in.Latitude, *in.Longitude)
	if err != nil {
		logger.Warn("reverse geocoding failed",
			"accident_no", in.AccidentNo,
			"lat", *in.Latitude,
			"lon", *in.Longitude,
			"error", err,
		)
		return in
	}
	if result.PlaceName == "" {
		return in
	}

	in.Area = result.PlaceName
	return in
}
