package pagination

// Predicate reports whether an item is kept. A nil Predicate keeps everything.
type Predicate[T any] func(T) bool

// Filter returns the items accepted by every non-nil predicate, preserving
// order. The input slice is not modified.
func Filter[T any](items []T, preds ...Predicate[T]) []T {
	active := make([]Predicate[T], 0, len(preds))
	for _, p := range preds {
		if p != nil {
			active = append(active, p)
		}
	}

	out := make([]T, 0, len(items))
next:
	for _, it := range items {
		for _, p := range active {
			if !p(it) {
				continue next
			}
		}
		out = append(out, it)
	}
	return out
}
