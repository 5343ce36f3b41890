package domain

import "time"

// UnknownArea is the sentinel assigned to records with no reporting area.
const UnknownArea = "Unknown"

// UnknownCause is the sentinel assigned to records with no recorded cause.
const UnknownCause = "Unknown"

// Canonical severity labels. Source data is free text; these are the values
// the scorer recognizes after case folding.
const (
	SeverityFatal    = "fatal"
	SeveritySevere   = "severe"
	SeverityModerate = "moderate"
	SeverityMinor    = "minor"
)

// Coarse time-of-day labels derived from the parsed hour at admission.
const (
	TimeOfDayNight     = "Night"     // 21:00–04:59
	TimeOfDayMorning   = "Morning"   // 05:00–11:59
	TimeOfDayAfternoon = "Afternoon" // 12:00–16:59
	TimeOfDayEvening   = "Evening"   // 17:00–20:59
)

// RecordInput is the flat client-facing shape of one accident report, as
// submitted for ingestion. Pointer fields distinguish absent from zero.
type RecordInput struct {
	AccidentNo           string   `json:"accident_no" validate:"required"`
	Date                 string   `json:"date"`
	Time                 string   `json:"time"`
	DayOfWeek            string   `json:"day_of_week"`
	Area                 string   `json:"area"`
	Latitude             *float64 `json:"latitude" validate:"required"`
	Longitude            *float64 `json:"longitude" validate:"required"`
	Fatalities           *int     `json:"fatalities" validate:"omitempty,min=0"`
	Injuries             *int     `json:"injuries" validate:"omitempty,min=0"`
	PersonsInvolved      *int     `json:"persons_involved" validate:"omitempty,min=0"`
	Severity             string   `json:"severity"`
	Cause                string   `json:"cause"`
	Weather              string   `json:"weather"`
	RoadCondition        string   `json:"road_condition"`
	LightCondition       string   `json:"light_condition"`
	PoliceResponseMin    *float64 `json:"police_response_min" validate:"omitempty,min=0"`
	AmbulanceResponseMin *float64 `json:"ambulance_response_min" validate:"omitempty,min=0"`
}

// Record is the admitted, normalized representation of one incident.
// Immutable once constructed; scoring and analytics never mutate it.
type Record struct {
	ID                   string    `json:"id"`
	AccidentNo           string    `json:"accident_no"`
	Date                 string    `json:"date,omitempty"`
	Time                 string    `json:"time,omitempty"`
	DayOfWeek            string    `json:"day_of_week,omitempty"`
	TimeOfDay            string    `json:"time_of_day,omitempty"`
	Area                 string    `json:"area"`
	Latitude             float64   `json:"latitude"`
	Longitude            float64   `json:"longitude"`
	Fatalities           int       `json:"fatalities"`
	Injuries             int       `json:"injuries"`
	PersonsInvolved      int       `json:"persons_involved"`
	Severity             string    `json:"severity,omitempty"`
	Cause                string    `json:"cause"`
	Weather              string    `json:"weather,omitempty"`
	RoadCondition        string    `json:"road_condition,omitempty"`
	LightCondition       string    `json:"light_condition,omitempty"`
	PoliceResponseMin    *float64  `json:"police_response_min,omitempty"`
	AmbulanceResponseMin *float64  `json:"ambulance_response_min,omitempty"`
	IngestedAt           time.Time `json:"ingested_at"`
}

// BoundingBox is the geographic admission gate. Records whose coordinates
// fall outside it are rejected at ingestion; nothing downstream re-checks.
type BoundingBox struct {
	MinLat float64
	MaxLat float64
	MinLon float64
	MaxLon float64
}

// Contains reports whether the coordinate lies inside the box (inclusive).
func (b BoundingBox) Contains(lat, lon float64) bool {
	return lat >= b.MinLat && lat <= b.MaxLat && lon >= b.MinLon && lon <= b.MaxLon
}

// WorldBounds admits any valid WGS-84 coordinate.
func WorldBounds() BoundingBox {
	return BoundingBox{MinLat: -90, MaxLat: 90, MinLon: -180, MaxLon: 180}
}
