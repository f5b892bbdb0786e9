package rangeset

import (
	"iter"
	"slices"
	"strconv"
	"strings"
)

// Format renders values as the canonical range expression: ascending,
// deduplicated, with runs of consecutive indices collapsed to "low-high".
//
//	Format([]int{5, 1, 3, 4, 4}) == "1,3-5"
//
// Parsing the result yields the same selection set.
func Format(values []int) string {
	sorted := slices.Clone(values)
	slices.Sort(sorted)
	return formatSorted(slices.Values(slices.Compact(sorted)))
}

// formatSorted renders a strictly ascending sequence.
func formatSorted(seq iter.Seq[int]) string {
	var (
		sb      strings.Builder
		low     int
		high    int
		started bool
	)

	flush := func() {
		if sb.Len() > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(strconv.Itoa(low))
		if high > low {
			sb.WriteByte('-')
			sb.WriteString(strconv.Itoa(high))
		}
	}

	for v := range seq {
		switch {
		case !started:
			low, high, started = v, v, true
		case v == high+1:
			high = v
		default:
			flush()
			low, high = v, v
		}
	}
	if started {
		flush()
	}

	return sb.String()
}
