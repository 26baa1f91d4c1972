package keywords

import (
	"cmp"
	"slices"
)

// pairKey is an unordered surface pair stored with the smaller surface first.
type pairKey [2]string

func canonical(a, b string) pairKey {
	if b < a {
		a, b = b, a
	}
	return pairKey{a, b}
}

// Pair is one co-occurrence count.
type Pair struct {
	A, B  string
	Count float64
}

// Pairs maps unordered pairs of distinct surfaces to co-occurrence counts.
// Looking up (b, a) finds the entry stored for (a, b).
type Pairs struct {
	counts map[pairKey]float64
	order  [][2]string // first-seen orientation of each key, in insertion order
}

func newPairs() *Pairs {
	return &Pairs{counts: make(map[pairKey]float64)}
}

// Add increments the count of the pair by delta. Pairs of identical surfaces
// are ignored.
func (p *Pairs) Add(a, b string, delta float64) {
	if a == b {
		return
	}
	k := canonical(a, b)
	if _, ok := p.counts[k]; !ok {
		p.order = append(p.order, [2]string{a, b})
	}
	p.counts[k] += delta
}

// Get returns the count of the pair and whether it was ever added.
func (p *Pairs) Get(a, b string) (float64, bool) {
	c, ok := p.counts[canonical(a, b)]
	return c, ok
}

// Len returns the number of distinct pairs.
func (p *Pairs) Len() int {
	return len(p.counts)
}

// Ordered returns every pair in the order it was first added, with A and B
// in the orientation of that first occurrence. Graph construction follows
// this order, which fixes adjacency and summation order.
func (p *Pairs) Ordered() []Pair {
	out := make([]Pair, len(p.order))
	for i, o := range p.order {
		out[i] = Pair{A: o[0], B: o[1], Count: p.counts[canonical(o[0], o[1])]}
	}
	return out
}

// Sorted returns every pair with A before B, ordered by A, then B.
func (p *Pairs) Sorted() []Pair {
	out := make([]Pair, 0, len(p.counts))
	for k, c := range p.counts {
		out = append(out, Pair{A: k[0], B: k[1], Count: c})
	}
	slices.SortFunc(out, func(x, y Pair) int {
		if c := cmp.Compare(x.A, y.A); c != 0 {
			return c
		}
		return cmp.Compare(x.B, y.B)
	})
	return out
}

// buildPairs counts candidate tokens that appear within the window of each
// other. A non-candidate inside the window is skipped without ending the scan.
func (e *Extractor) buildPairs(tokens []Token) *Pairs {
	pairs := newPairs()
	for i, t := range tokens {
		if !e.IsCandidate(t) {
			continue
		}
		end := min(i+e.window, len(tokens))
		for j := i + 1; j < end; j++ {
			if !e.IsCandidate(tokens[j]) {
				continue
			}
			pairs.Add(t.Surface, tokens[j].Surface, 1)
		}
	}
	return pairs
}
