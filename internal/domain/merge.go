package domain

// Merge left-joins regions to aggregates on region name == county key.
//
// The result has exactly one entry per region, in region order. When two
// aggregates share a key the first one wins; see DuplicateKeys.
func Merge(regions []BoundaryRegion, aggregates []CountyAggregate) []MergedRegion {
	byKey := make(map[string]CountyAggregate, len(aggregates))
	for _, agg := range aggregates {
		k := matchKey(agg.CountyKey)
		if _, seen := byKey[k]; seen {
			continue
		}
		byKey[k] = agg
	}

	out := make([]MergedRegion, len(regions))
	for i, region := range regions {
		out[i] = MergedRegion{Region: region}
		if agg, ok := byKey[matchKey(region.Name)]; ok {
			out[i].Aggregate = &agg
		}
	}
	return out
}

// DuplicateKeys returns the county labels that Merge ignores because an
// earlier label normalized to the same key.
func DuplicateKeys(aggregates []CountyAggregate) []string {
	seen := make(map[string]bool, len(aggregates))
	var dups []string
	for _, agg := range aggregates {
		k := matchKey(agg.CountyKey)
		if seen[k] {
			dups = append(dups, agg.CountyLabel)
			continue
		}
		seen[k] = true
	}
	return dups
}

// Unmatched counts regions without aggregate data.
func Unmatched(merged []MergedRegion) int {
	n := 0
	for _, m := range merged {
		if !m.Matched() {
			n++
		}
	}
	return n
}

// Orphans returns the aggregates whose county key matches no region. Merge
// drops them silently since the join is driven by regions.
func Orphans(regions []BoundaryRegion, aggregates []CountyAggregate) []CountyAggregate {
	names := make(map[string]bool, len(regions))
	for _, region := range regions {
		names[matchKey(region.Name)] = true
	}

	var out []CountyAggregate
	for _, agg := range aggregates {
		if !names[matchKey(agg.CountyKey)] {
			out = append(out, agg)
		}
	}
	return out
}
