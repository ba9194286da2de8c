package model

import "math"

// CoverageStat is derived per call from a Domain's requirements, never cached:
// if a requirement changes, the stat is recomputed from scratch.
type CoverageStat struct {
	DomainName      string
	Total           int
	Now             int
	Partial         int
	Roadmap         int
	CoveragePercent int
}

// Coverage tallies one domain's requirements in a single pass. Only "Now"
// counts toward the percentage; a domain with zero requirements is 0%.
func Coverage(d Domain) CoverageStat {
	st := CoverageStat{DomainName: d.Name, Total: len(d.Requirements)}
	for _, r := range d.Requirements {
		switch r.Status {
		case StatusNow:
			st.Now++
		case StatusPartial:
			st.Partial++
		case StatusRoadmap:
			st.Roadmap++
		}
	}
	st.CoveragePercent = percent(st.Now, st.Total)
	return st
}

// CoverageAll computes per-domain stats in domain order.
func CoverageAll(domains []Domain) []CoverageStat {
	stats := make([]CoverageStat, 0, len(domains))
	for _, d := range domains {
		stats = append(stats, Coverage(d))
	}
	return stats
}

// Aggregate sums a set of stats into a single total row.
func Aggregate(stats []CoverageStat) CoverageStat {
	agg := CoverageStat{DomainName: "TOTAL"}
	for _, s := range stats {
		agg.Total += s.Total
		agg.Now += s.Now
		agg.Partial += s.Partial
		agg.Roadmap += s.Roadmap
	}
	agg.CoveragePercent = percent(agg.Now, agg.Total)
	return agg
}

func percent(part, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(100 * float64(part) / float64(total)))
}

// Percent rounds a part/total ratio to a whole display percentage.
func Percent(part, total int) int { return percent(part, total) }
