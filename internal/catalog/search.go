package catalog

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
)

// Search returns promoted items matching query, best match first.
// Substring hits rank ahead of fuzzy hits; fuzzy hits compare query words
// against name words and tolerate roughly one typo per four characters.
// An empty query returns every item in catalog order.
func (c *Catalog) Search(query string) []Item {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return c.PromotedItems()
	}
	type hit struct {
		item  Item
		score int
		pos   int
	}
	var hits []hit
	for pos, it := range c.items {
		name := strings.ToLower(it.Name)
		if strings.Contains(name, q) {
			hits = append(hits, hit{item: it, score: 0, pos: pos})
			continue
		}
		if d, ok := fuzzyDistance(q, name); ok {
			hits = append(hits, hit{item: it, score: 1 + d, pos: pos})
		}
	}
	sort.SliceStable(hits, func(i, j int) bool {
		if hits[i].score != hits[j].score {
			return hits[i].score < hits[j].score
		}
		return hits[i].pos < hits[j].pos
	})
	out := make([]Item, 0, len(hits))
	for _, h := range hits {
		out = append(out, h.item)
	}
	return out
}

// fuzzyDistance sums, for every query word, the distance to its closest name
// word. ok is false when any query word has no close enough partner.
func fuzzyDistance(query, name string) (int, bool) {
	nameWords := strings.Fields(name)
	total := 0
	for _, qw := range strings.Fields(query) {
		best := -1
		for _, nw := range nameWords {
			d := levenshtein.ComputeDistance(qw, nw)
			if best < 0 || d < best {
				best = d
			}
		}
		if best < 0 || best > tolerance(qw) {
			return 0, false
		}
		total += best
	}
	return total, true
}

func tolerance(word string) int {
	n := utf8.RuneCountInString(word) / 4
	if n < 1 {
		return 1
	}
	return n
}
