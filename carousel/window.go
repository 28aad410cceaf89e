package carousel

import "sort"

// IndicesToRender returns the sorted panel indices that must be fully mounted:
// a window of maxRendered indices around current and, while a transition is in
// flight (from >= 0), the same window around the outgoing index.
// Out-of-range indices wrap when infinite and are dropped otherwise.
func IndicesToRender(current, from, count int, infinite bool, maxRendered int) []int {
	if count <= 0 {
		return nil
	}
	maxRendered = max(1, maxRendered)
	before := (maxRendered - 1) / 2
	after := maxRendered / 2

	seen := make(map[int]struct{}, maxRendered*2)
	add := func(center int) {
		for i := center - before; i <= center+after; i++ {
			idx := i
			if idx < 0 || idx >= count {
				if !infinite {
					continue
				}
				idx = Wrap(idx, count)
			}
			seen[idx] = struct{}{}
		}
	}

	add(current)
	if from != NoIndex {
		add(from)
	}

	indices := make([]int, 0, len(seen))
	for idx := range seen {
		indices = append(indices, idx)
	}
	sort.Ints(indices)
	return indices
}

// prefetchIndices returns the k indices starting floor(k/2) before current,
// wrapped onto the panel set. k is clamped to [1, count].
func prefetchIndices(current, count, k int) []int {
	if count <= 0 {
		return nil
	}
	k = clamp(k, 1, count)
	start := current - k/2
	indices := make([]int, 0, k)
	for i := start; i < start+k; i++ {
		indices = append(indices, Wrap(i, count))
	}
	return indices
}
