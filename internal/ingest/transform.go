package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"roadrisk/internal/domain"
)

// RowTransformer implements Transformer by mapping normalized CSV columns
// onto a record input, with optional reverse-geocoding of the area.
type RowTransformer struct {
	geocoder domain.Geocoder
	logger   *slog.Logger
}

// NewTransformer creates a RowTransformer. Pass a nil geocoder to disable
// area resolution.
func NewTransformer(geocoder domain.Geocoder, logger *slog.Logger) *RowTransformer {
	return &RowTransformer{
		geocoder: geocoder,
		logger:   logger,
	}
}

// Transform maps one raw row onto a RecordInput. Numeric parse failures are
// errors; empty numeric columns stay unset and are resolved at admission.
func (t *RowTransformer) Transform(ctx context.Context, row RawRow) (domain.RecordInput, error) {
	in := domain.RecordInput{
		AccidentNo:     row.Fields["accident_no"],
		Date:           row.Fields["date"],
		Time:           row.Fields["time"],
		DayOfWeek:      row.Fields["day_of_week"],
		Area:           row.Fields["area"],
		Severity:       row.Fields["severity"],
		Cause:          row.Fields["cause"],
		Weather:        row.Fields["weather"],
		RoadCondition:  row.Fields["road_condition"],
		LightCondition: row.Fields["light_condition"],
	}

	var err error
	if in.Latitude, err = floatField(row.Fields, "latitude"); err != nil {
		return domain.RecordInput{}, err
	}
	if in.Longitude, err = floatField(row.Fields, "longitude"); err != nil {
		return domain.RecordInput{}, err
	}
	if in.Fatalities, err = intField(row.Fields, "fatalities"); err != nil {
		return domain.RecordInput{}, err
	}
	if in.Injuries, err = intField(row.Fields, "injuries"); err != nil {
		return domain.RecordInput{}, err
	}
	if in.PersonsInvolved, err = intField(row.Fields, "persons_involved"); err != nil {
		return domain.RecordInput{}, err
	}
	if in.PoliceResponseMin, err = floatField(row.Fields, "police_response_min"); err != nil {
		return domain.RecordInput{}, err
	}
	if in.AmbulanceResponseMin, err = floatField(row.Fields, "ambulance_response_min"); err != nil {
		return domain.RecordInput{}, err
	}

	in = domain.ResolveArea(ctx, in, t.geocoder, t.logger)
	return in, nil
}

func intField(fields map[string]string, name string) (*int, error) {
	raw := fields[name]
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: invalid integer %q", name, raw)
	}
	return &v, nil
}

func floatField(fields map[string]string, name string) (*float64, error) {
	raw := fields[name]
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, fmt.Errorf("%s: invalid number %q", name, raw)
	}
	return &v, nil
}
