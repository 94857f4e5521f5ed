// Package fn provides small generic helpers: slice transforms, a Result
// type, retry with backoff, and composable pipeline stages.
package fn

// Map applies f to each element.
func Map[T, U any](items []T, f func(T) U) []U {
	out := make([]U, len(items))
	for i, v := range items {
		out[i] = f(v)
	}
	return out
}

// Filter returns elements where pred is true.
func Filter[T any](items []T, pred func(T) bool) []T {
	var out []T
	for _, v := range items {
		if pred(v) {
			out = append(out, v)
		}
	}
	return out
}

// FilterMap applies f and keeps results where ok is true.
func FilterMap[T, U any](items []T, f func(T) (U, bool)) []U {
	var out []U
	for _, v := range items {
		if u, ok := f(v); ok {
			out = append(out, u)
		}
	}
	return out
}

// UniqueBy returns elements with unique keys, preserving first-seen order.
func UniqueBy[T any, K comparable](items []T, key func(T) K) []T {
	seen := make(map[K]struct{})
	var out []T
	for _, v := range items {
		k := key(v)
		if _, ok := seen[k]; !ok {
			seen[k] = struct{}{}
			out = append(out, v)
		}
	}
	return out
}

// GroupBy groups items by a key function.
func GroupBy[T any, K comparable](items []T, key func(T) K) map[K][]T {
	out := make(map[K][]T)
	for _, v := range items {
		k := key(v)
		out[k] = append(out[k], v)
	}
	return out
}
