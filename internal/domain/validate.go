package domain

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// FieldError reports which input field caused an admission rejection.
type FieldError struct {
	Field  string
	Reason string
}

func (e *FieldError) Error() string {
	return e.Field + ": " + e.Reason
}

// Validator admits raw record inputs into the canonical Record form.
// Admission validates required fields and numeric invariants, checks that
// coordinates fall inside the configured bounding box, and normalizes
// temporal and categorical fields.
type Validator struct {
	validate *validator.Validate
	bounds   BoundingBox
}

// NewValidator creates a Validator admitting coordinates within bounds.
func NewValidator(bounds BoundingBox) *Validator {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &Validator{validate: v, bounds: bounds}
}

// Admit validates and normalizes a single input. On success it returns a
// fully populated Record stamped with a fresh ID and the ingestion time; on
// failure it returns a *FieldError naming the offending field. Inputs are
// judged individually so one bad row never poisons its batch.
func (v *Validator) Admit(in RecordInput) (Record, error) {
	if err := v.validate.Struct(in); err != nil {
		return Record{}, fieldError(err)
	}

	lat, lon := *in.Latitude, *in.Longitude
	if !v.bounds.Contains(lat, lon) {
		return Record{}, &FieldError{
			Field:  "latitude/longitude",
			Reason: fmt.Sprintf("coordinates (%.4f, %.4f) outside the configured bounding box", lat, lon),
		}
	}

	rec := Record{
		ID:                   uuid.NewString(),
		AccidentNo:           strings.TrimSpace(in.AccidentNo),
		Date:                 NormalizeDate(in.Date),
		Time:                 strings.TrimSpace(in.Time),
		DayOfWeek:            strings.TrimSpace(in.DayOfWeek),
		Area:                 orUnknown(in.Area, UnknownArea),
		Latitude:             lat,
		Longitude:            lon,
		Fatalities:           intOrZero(in.Fatalities),
		Injuries:             intOrZero(in.Injuries),
		PersonsInvolved:      intOrZero(in.PersonsInvolved),
		Severity:             strings.TrimSpace(in.Severity),
		Cause:                orUnknown(in.Cause, UnknownCause),
		Weather:              strings.TrimSpace(in.Weather),
		RoadCondition:        strings.TrimSpace(in.RoadCondition),
		LightCondition:       strings.TrimSpace(in.LightCondition),
		PoliceResponseMin:    in.PoliceResponseMin,
		AmbulanceResponseMin: in.AmbulanceResponseMin,
		IngestedAt:           clock.Now(),
	}

	if rec.DayOfWeek == "" {
		if t, ok := ParseDate(rec.Date); ok {
			rec.DayOfWeek = t.Weekday().String()
		}
	}
	if rec.Time != "" {
		rec.TimeOfDay = TimeOfDayFor(HourOfDay(rec.Time))
	}

	return rec, nil
}

// fieldError converts a validator error into a FieldError naming the first
// failing field in declaration order.
func fieldError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return &FieldError{Field: "input", Reason: err.Error()}
	}

	fe := verrs[0]
	switch fe.Tag() {
	case "required":
		return &FieldError{Field: fe.Field(), Reason: "is required"}
	case "min":
		return &FieldError{Field: fe.Field(), Reason: "must not be negative"}
	default:
		return &FieldError{Field: fe.Field(), Reason: "failed " + fe.Tag() + " validation"}
	}
}

func orUnknown(s, sentinel string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return sentinel
	}
	return s
}

func intOrZero(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}
