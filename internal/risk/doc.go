// Package risk is the scoring and classification engine.
//
// Everything here is a pure function over a slice of admitted records:
// callers fetch a snapshot from storage, the engine computes in memory, and
// nothing is cached or persisted. Concurrent requests are independent.
//
// # Severity Score
//
// A group of records reduces to one non-negative number:
//
//	score = 10 × Σ fatalities
//	      +  5 × count(severity in {"severe", "fatal"})
//	      +  2 × count(severity = "moderate")
//
// Severity labels are matched case-insensitively. A record with an
// unrecognized or missing label still contributes its fatality count, and a
// fatal-labeled record contributes to both terms. Injuries and persons
// involved carry no weight.
//
// # Classification
//
// Scores map to one of three ordered tiers: safe, moderate, high-risk.
// When the caller supplies the score population of all comparable groups,
// cut points are the population's 25th and 75th percentiles (linear
// interpolation between order statistics). Without a population, fixed
// absolute thresholds apply: 50 for high-risk, 20 for moderate. A group
// with no records is always safe.
package risk
