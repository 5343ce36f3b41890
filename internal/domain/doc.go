// Package domain models road-accident incident records.
//
// # Data Source
//
// Records originate from police accident registers, exported as CSV files and
// submitted in bulk through the ingestion API (POST /api/v1/records) or the
// riskctl CLI. Each row describes one incident: where it happened, when, how
// many people were hurt, the recorded severity, and the primary cause.
//
// # Record Conventions
//
// Time format:
//
//	Free-form clock strings. Both 12-hour ("2:30 PM") and 24-hour ("14:30")
//	forms appear in source data, alongside bare labels like "Night" with no
//	clock component. The digits before the first ':' are the hour; strings
//	without a ':' parse as hour 0. See [HourOfDay].
//
// Date format:
//
//	Police register exports use DD/MM/YYYY; the API also accepts ISO 8601. Dates are
//	rewritten to YYYY-MM-DD at admission so lexical comparison orders them
//	chronologically. Unparseable dates are kept verbatim and simply never
//	match a date-range query.
//
// Severity labels:
//
//	Free text, matched case-insensitively. Recognized canonical values are
//	"fatal", "severe", "moderate", and "minor". Unrecognized labels are kept
//	as written; they contribute no severity-classification points during
//	scoring but the record still counts toward fatality sums and totals.
//
// Unknown sentinels:
//
//	A record with no reporting area is assigned [UnknownArea] and a record
//	with no recorded cause is assigned [UnknownCause]. Both sentinels behave
//	as ordinary values downstream: "Unknown" can legitimately top a cause
//	ranking or form its own area group.
//
// Response times:
//
//	Police and ambulance response times are minutes as nullable floats. Null
//	means "not recorded" and is excluded from averages, never zero-filled.
//
// # Admission
//
// Inputs are validated individually at the ingestion boundary: the external
// accident number and coordinates are required, numeric fields must be
// non-negative, and coordinates must fall inside the configured bounding box.
// A violating input is rejected with a per-field reason without affecting the
// rest of its batch. Admitted records are stamped with a random UUID and the
// ingestion time; they are immutable afterwards.
package domain
