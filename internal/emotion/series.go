package emotion

// Snapshot is one fetched set of per-emotion percentages keyed by name.
type Snapshot map[string]float64

// Series holds one value per category in chart order.
type Series [Count]float64

// SeriesFrom lays a snapshot out in chart order. Missing categories are 0
// and keys outside the seven categories are ignored.
func SeriesFrom(s Snapshot) Series {
	var out Series
	for i, e := range All {
		out[i] = s[e.String()]
	}
	return out
}

// Value returns the entry for e, or 0 for None.
func (s Series) Value(e Emotion) float64 {
	i := e.Index()
	if i < 0 {
		return 0
	}
	return s[i]
}

// Dominant returns the category with the highest value. Ties go to the
// earliest category, so an all-zero series is Angry.
func (s Series) Dominant() Emotion {
	best := 0
	for i := 1; i < Count; i++ {
		if s[i] > s[best] {
			best = i
		}
	}
	return All[best]
}
