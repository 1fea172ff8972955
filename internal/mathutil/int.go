package mathutil

// IntClamp limits v to [lo, hi]
func IntClamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// IntMod returns a mod m in [0, m) for positive m, also for negative a
func IntMod(a, m int) int {
	r := a % m
	if r < 0 {
		r += m
	}
	return r
}
