package risk

import (
	"fmt"

	"roadrisk/internal/domain"
)

// Grouping is an ordered partition of records. Keys enumerate in first-seen
// order and records keep their input order within each group, so repeated
// runs over the same snapshot produce identical output.
type Grouping struct {
	keys   []string
	groups map[string][]domain.Record
}

// GroupBy partitions records by the given key function. Every record lands
// in exactly one group; empty input yields an empty grouping.
func GroupBy(records []domain.Record, key func(domain.Record) string) *Grouping {
	g := &Grouping{groups: make(map[string][]domain.Record)}
	for _, r := range records {
		k := key(r)
		if _, seen := g.groups[k]; !seen {
			g.keys = append(g.keys, k)
		}
		g.groups[k] = append(g.groups[k], r)
	}
	return g
}

// Keys returns the group keys in first-seen order.
func (g *Grouping) Keys() []string {
	return g.keys
}

// Group returns the records under key, nil if the key never occurred.
func (g *Grouping) Group(key string) []domain.Record {
	return g.groups[key]
}

// Len returns the number of groups.
func (g *Grouping) Len() int {
	return len(g.keys)
}

// AreaKey groups records by area name.
func AreaKey(r domain.Record) string {
	return r.Area
}

// AreaHourKey groups records by area and parsed hour of day, e.g.
// "Whitefield@14". Records with an unparseable or out-of-range hour land in
// the area's "@00" bucket, matching the hour parser's documented fallback.
func AreaHourKey(r domain.Record) string {
	h := domain.HourOfDay(r.Time)
	if h < 0 || h > 23 {
		h = 0
	}
	return fmt.Sprintf("%s@%02d", r.Area, h)
}
