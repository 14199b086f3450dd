package merge

import "math"

// Tracker holds the largest group weight observed so far.
type Tracker struct {
	max int64
}

// NewTracker seeds the maximum with the heaviest singleton. An empty
// universe starts at math.MinInt64.
func NewTracker(weights []int64) *Tracker {
	t := &Tracker{max: math.MinInt64}
	for _, w := range weights {
		t.Observe(w)
	}
	return t
}

// Observe folds size into the running maximum and returns the result.
func (t *Tracker) Observe(size int64) int64 {
	if size > t.max {
		t.max = size
	}
	return t.max
}

// Max returns the current running maximum.
func (t *Tracker) Max() int64 {
	return t.max
}

// Merger pairs a Forest with a Tracker so every merge reports the running
// maximum group weight.
type Merger struct {
	forest  *Forest
	tracker *Tracker
}

// NewMerger creates a Merger over the given initial weights.
func NewMerger(weights []int64) *Merger {
	return &Merger{
		forest:  New(weights),
		tracker: NewTracker(weights),
	}
}

// Merge unions the groups of destination and source and returns the
// running maximum after the merge.
func (m *Merger) Merge(destination, source int) int64 {
	_, running := m.Apply(destination, source)
	return running
}

// Apply is Merge that also returns the weight of the merged group.
func (m *Merger) Apply(destination, source int) (size, running int64) {
	size = m.forest.Union(destination, source)
	return size, m.tracker.Observe(size)
}

// Max returns the running maximum.
func (m *Merger) Max() int64 {
	return m.tracker.Max()
}

// Forest returns the underlying forest.
func (m *Merger) Forest() *Forest {
	return m.forest
}
