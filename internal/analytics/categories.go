package analytics

import "sort"

// CategoryEntry is one observation feeding the category aggregator: an
// activity's minutes, or a transaction's amount, keyed by its category.
type CategoryEntry struct {
	Category string
	Value    float64
}

// CategoryStat is the aggregate for one category. Total, Average, and
// Percentage are rounded to one decimal place; Percentage is on the 0-100
// scale and zero when the grand total is zero.
type CategoryStat struct {
	Category   string
	Total      float64
	Count      int
	Average    float64
	Percentage float64
}

// CategoryBreakdown groups entries by category and reports per-category
// totals, counts, averages, and shares of the grand total, sorted by total
// descending. Ties keep first-encounter order (stable sort).
func CategoryBreakdown(entries []CategoryEntry) []CategoryStat {
	type bucket struct {
		total float64
		count int
	}

	buckets := make(map[string]*bucket)
	order := make([]string, 0)
	grandTotal := 0.0

	for _, e := range entries {
		b, ok := buckets[e.Category]
		if !ok {
			b = &bucket{}
			buckets[e.Category] = b
			order = append(order, e.Category)
		}
		b.total += e.Value
		b.count++
		grandTotal += e.Value
	}

	stats := make([]CategoryStat, 0, len(order))
	for _, category := range order {
		b := buckets[category]
		avg := 0.0
		if b.count > 0 {
			avg = b.total / float64(b.count)
		}
		pct := 0.0
		if grandTotal > 0 {
			pct = b.total / grandTotal * 100
		}
		stats = append(stats, CategoryStat{
			Category:   category,
			Total:      round1(b.total),
			Count:      b.count,
			Average:    round1(avg),
			Percentage: round1(pct),
		})
	}

	sort.SliceStable(stats, func(i, j int) bool { return stats[i].Total > stats[j].Total })
	return stats
}
