package carousel

// Wrap maps any index, including negative ones, onto [0, count).
// Callers must not pass count <= 0; it returns 0 in that case.
func Wrap(index, count int) int {
	if count <= 0 {
		return 0
	}
	index %= count
	if index < 0 {
		index += count
	}
	return index
}

// clamp limits v to [lo, hi].
func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
