package memory

import (
	"sort"
	"time"
)

type sortKey struct {
	at time.Time
	id string
}

// sortByCreatedAt orders a slice by creation time then id, so list
// results are deterministic across runs regardless of map iteration.
func sortByCreatedAt[T any](items []T, key func(T) sortKey) {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := key(items[i]), key(items[j])
		if !a.at.Equal(b.at) {
			return a.at.Before(b.at)
		}
		return a.id < b.id
	})
}
