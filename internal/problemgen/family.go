package problemgen

import (
	"github.com/samber/lo"

	"github.com/abhisek/ziggy/internal/rng"
)

// draft is what a family produces before its choices are built.
type draft struct {
	prompt      string
	correct     string
	distractors []string
	extra       ExtraFunc
	hint        string
	explanation string
}

// Family generates one kind of question for a domain.
type Family struct {
	// Name is the family identifier used in seeds, e.g. "add-sub".
	Name string

	// Prefix starts every question ID the family emits, e.g. "q-num-addsub".
	Prefix string

	// Subskill is the mastery tag given to every question of the family.
	Subskill string

	build func(level int, r *rng.Rand) draft
}

// tiered is a pool entry that becomes eligible from minLevel upwards.
type tiered[T any] struct {
	minLevel int
	item     T
}

// eligible returns the items of pool unlocked at level, in pool order.
func eligible[T any](level int, pool []tiered[T]) []T {
	return lo.FilterMap(pool, func(t tiered[T], _ int) (T, bool) {
		return t.item, t.minLevel <= level
	})
}

// others returns list without exclude, in order.
func others(list []string, exclude string) []string {
	return lo.Without(list, exclude)
}

// pickN shuffles list and keeps the first n items.
func pickN(r *rng.Rand, list []string, n int) []string {
	s := rng.Shuffle(r, list)
	if len(s) > n {
		s = s[:n]
	}
	return s
}

// constant returns an ExtraFunc that always proposes s.
func constant(s string) ExtraFunc {
	return func(string) string { return s }
}

// pickFrom returns an ExtraFunc that draws from pool with r.
func pickFrom(r *rng.Rand, pool []string) ExtraFunc {
	return func(string) string { return rng.Pick(r, pool) }
}
