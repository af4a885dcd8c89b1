package lr

import (
	"bytes"
	"fmt"

	"github.com/cnf/structhash"
	"github.com/emirpasic/gods/sets/treeset"
)

// ItemSet is an ordered set of Items, ordered by itemComparator (complete
// items first, then grouped by symbol-at-dot, then by dot, then by rule
// id), backed by a gods treeset so membership, iteration order, and set
// construction all come from one data structure, plus a content Equals
// and a structhash-based Hash used to deduplicate states in the canonical
// collection.
type ItemSet struct {
	set *treeset.Set
}

func newItemSet() *ItemSet {
	return &ItemSet{set: treeset.NewWith(itemComparator)}
}

// Add inserts an item, a no-op if already present.
func (s *ItemSet) Add(it Item) { s.set.Add(it) }

// Contains reports whether it is already a member.
func (s *ItemSet) Contains(it Item) bool { return s.set.Contains(it) }

// Size returns the number of items.
func (s *ItemSet) Size() int { return s.set.Size() }

// Values returns the items in item-order.
func (s *ItemSet) Values() []Item {
	raw := s.set.Values()
	items := make([]Item, len(raw))
	for i, v := range raw {
		items[i] = asItem(v)
	}
	return items
}

// Equals reports whether two item sets contain exactly the same items. Both
// sets are kept in the same total order, so this is a single linear scan,
// which is what makes deduplicating states in the canonical collection
// affordable.
func (s *ItemSet) Equals(other *ItemSet) bool {
	a, b := s.Values(), other.Values()
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Hash returns a content hash over (rule id, dot) pairs, used as a cheap
// pre-filter before the authoritative Equals check when looking up a state
// by its item set.
func (s *ItemSet) Hash() string {
	type kernel struct {
		RuleID int
		Dot    int
	}
	kernels := make([]kernel, 0, s.Size())
	for _, it := range s.Values() {
		kernels = append(kernels, kernel{RuleID: it.Rule.ID, Dot: it.Dot})
	}
	h, err := structhash.Hash(kernels, 1)
	if err != nil {
		panic(fmt.Sprintf("lr: hashing item set: %v", err))
	}
	return h
}

func (s *ItemSet) String() string {
	var b bytes.Buffer
	b.WriteString("{")
	for i, it := range s.Values() {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(it.String())
	}
	b.WriteString("}")
	return b.String()
}
