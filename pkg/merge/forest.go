package merge

import (
	"fmt"
	"sort"
)

// record is one element of the forest. rank and size are only meaningful
// while the element is a root.
type record struct {
	parent int
	rank   int
	size   int64
}

// IndexError is the panic value raised when an element index falls outside
// the universe.
type IndexError struct {
	Index int
	Len   int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("merge: index %d out of range [0, %d)", e.Index, e.Len)
}

// Forest is a disjoint-set forest over the elements 0..n-1 with path
// compression, union by rank and per-root weight tracking.
// It is not safe for concurrent use; Find mutates parent links.
type Forest struct {
	records []record
	groups  int
}

// New creates a Forest with one singleton group per weight.
func New(weights []int64) *Forest {
	records := make([]record, len(weights))
	for i, w := range weights {
		records[i] = record{parent: i, size: w}
	}
	return &Forest{
		records: records,
		groups:  len(weights),
	}
}

// Len returns the number of elements in the universe.
func (f *Forest) Len() int {
	return len(f.records)
}

// Groups returns the number of disjoint groups.
func (f *Forest) Groups() int {
	return f.groups
}

func (f *Forest) check(x int) {
	if x < 0 || x >= len(f.records) {
		panic(&IndexError{Index: x, Len: len(f.records)})
	}
}

// Find returns the representative of the group containing x and points
// every element on the path directly at it.
func (f *Forest) Find(x int) int {
	f.check(x)

	// Walk to the root.
	root := x
	for f.records[root].parent != root {
		root = f.records[root].parent
	}
	// Relink the path.
	for f.records[x].parent != root {
		x, f.records[x].parent = f.records[x].parent, root
	}
	return root
}

// Union merges the groups containing a and b and returns the weight of the
// merged group. On equal rank the root of b becomes the new root.
// If a and b already share a group the forest is unchanged.
func (f *Forest) Union(a, b int) int64 {
	ra := f.Find(a)
	rb := f.Find(b)
	if ra == rb {
		return f.records[ra].size
	}

	if f.records[ra].rank > f.records[rb].rank {
		f.records[rb].parent = ra
		f.records[ra].size += f.records[rb].size
		f.groups--
		return f.records[ra].size
	}

	f.records[ra].parent = rb
	if f.records[ra].rank == f.records[rb].rank {
		f.records[rb].rank++
	}
	f.records[rb].size += f.records[ra].size
	f.groups--
	return f.records[rb].size
}

// Connected reports whether a and b are in the same group.
func (f *Forest) Connected(a, b int) bool {
	return f.Find(a) == f.Find(b)
}

// Root reports whether x is the representative of its group.
func (f *Forest) Root(x int) bool {
	f.check(x)
	return f.records[x].parent == x
}

// Rank returns the rank recorded at x. It is only an upper bound on subtree
// height while x is a root.
func (f *Forest) Rank(x int) int {
	f.check(x)
	return f.records[x].rank
}

// SizeOf returns the total weight of the group containing x.
func (f *Forest) SizeOf(x int) int64 {
	return f.records[f.Find(x)].size
}

// Sets returns the members of every group. Members are sorted; groups are
// ordered by weight, heaviest first, with ties broken by first member.
func (f *Forest) Sets() [][]int {
	byRoot := make(map[int][]int, f.groups)
	for i := range f.records {
		root := f.Find(i)
		byRoot[root] = append(byRoot[root], i)
	}

	out := make([][]int, 0, len(byRoot))
	for _, set := range byRoot {
		out = append(out, set)
	}
	sort.Slice(out, func(i, j int) bool {
		si, sj := f.SizeOf(out[i][0]), f.SizeOf(out[j][0])
		if si != sj {
			return si > sj
		}
		return out[i][0] < out[j][0]
	})
	return out
}
